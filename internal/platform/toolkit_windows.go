//go:build windows

package platform

import (
	"fmt"
	"time"

	"github.com/1broseidon/spotlightd/internal/win32"
)

// Foreground focus has no push notification on Windows without window
// hooks, so focus transitions are derived by polling at this interval.
const focusPollInterval = 100 * time.Millisecond

// win32Toolkit adapts the user32 wrappers to the Toolkit ports.
type win32Toolkit struct {
	shortcuts *win32.HotkeyRegistry
	watcher   *win32.FocusWatcher
	done      chan struct{}
}

var _ Toolkit = (*win32Toolkit)(nil)

// NewToolkit connects to the host windowing system (user32 on Windows).
func NewToolkit() (Toolkit, error) {
	return &win32Toolkit{
		shortcuts: win32.NewHotkeyRegistry(),
		watcher:   win32.NewFocusWatcher(focusPollInterval),
		done:      make(chan struct{}),
	}, nil
}

func (t *win32Toolkit) Window(label string) (Window, error) {
	hwnd, err := win32.FindWindow(label)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrWindowNotFound, label)
	}
	return &win32Window{hwnd: hwnd, label: label, watcher: t.watcher}, nil
}

func (t *win32Toolkit) Shortcuts() ShortcutRegistry { return t.shortcuts }

// EventLoop blocks until Disconnect. Hotkey dispatch and focus polling
// run on their own threads, so there is no pump to drive here.
func (t *win32Toolkit) EventLoop() { <-t.done }

func (t *win32Toolkit) Disconnect() {
	t.watcher.Stop()
	t.shortcuts.Close()
	close(t.done)
}

// win32Window binds a label to a live window handle. Handles go stale
// when the target window closes; IsVisible surfaces that as an error and
// callers re-resolve through Toolkit.Window.
type win32Window struct {
	hwnd    win32.HWND
	label   string
	watcher *win32.FocusWatcher
}

var _ Window = (*win32Window)(nil)

func (w *win32Window) Label() string { return w.label }

func (w *win32Window) IsVisible() (bool, error) { return win32.IsVisible(w.hwnd) }

func (w *win32Window) Show() error { return win32.Show(w.hwnd) }

func (w *win32Window) Hide() error { return win32.Hide(w.hwnd) }

func (w *win32Window) SetFocus() error { return win32.SetForeground(w.hwnd) }

func (w *win32Window) BringToFront() error { return win32.BringToFront(w.hwnd) }

func (w *win32Window) OnFocusChange(fn func(focused bool)) error {
	w.watcher.Watch(w.hwnd, fn)
	return nil
}

func (w *win32Window) Emit(event string, payload uint32) error {
	return win32.PostNamedMessage(w.hwnd, event, payload)
}
