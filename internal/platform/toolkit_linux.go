//go:build linux

package platform

import (
	"errors"
	"fmt"

	"github.com/1broseidon/spotlightd/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
)

// x11Toolkit adapts the X11 connection to the Toolkit ports.
type x11Toolkit struct {
	conn      *x11.Connection
	shortcuts *x11.ShortcutRegistry
}

var _ Toolkit = (*x11Toolkit)(nil)

// NewToolkit connects to the host windowing system (X11 on Linux).
func NewToolkit() (Toolkit, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &x11Toolkit{
		conn:      conn,
		shortcuts: x11.NewShortcutRegistry(conn),
	}, nil
}

func (t *x11Toolkit) Window(label string) (Window, error) {
	windowID, err := t.conn.FindWindow(label)
	if err != nil {
		if errors.Is(err, x11.ErrNoWindow) {
			return nil, fmt.Errorf("%w: %q", ErrWindowNotFound, label)
		}
		return nil, err
	}
	return &x11Window{conn: t.conn, id: windowID, label: label}, nil
}

func (t *x11Toolkit) Shortcuts() ShortcutRegistry { return t.shortcuts }

func (t *x11Toolkit) EventLoop() { t.conn.EventLoop() }

func (t *x11Toolkit) Disconnect() { t.conn.Close() }

// x11Window binds a label to a concrete X11 client window.
type x11Window struct {
	conn  *x11.Connection
	id    xproto.Window
	label string
}

var _ Window = (*x11Window)(nil)

func (w *x11Window) Label() string { return w.label }

func (w *x11Window) IsVisible() (bool, error) { return w.conn.IsViewable(w.id) }

func (w *x11Window) Show() error { return w.conn.ShowWindow(w.id) }

func (w *x11Window) Hide() error { return w.conn.HideWindow(w.id) }

func (w *x11Window) SetFocus() error { return w.conn.ActivateWindow(w.id) }

// BringToFront raises the window and forces input focus directly, which
// defeats focus-stealing prevention where the EWMH activation request in
// SetFocus is merely a polite ask.
func (w *x11Window) BringToFront() error { return w.conn.RaiseWindow(w.id) }

func (w *x11Window) OnFocusChange(fn func(focused bool)) error {
	return w.conn.WatchFocus(w.id, fn)
}

func (w *x11Window) Emit(event string, payload uint32) error {
	return w.conn.EmitClientMessage(w.id, event, payload)
}
