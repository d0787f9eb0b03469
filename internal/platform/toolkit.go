package platform

import "errors"

// ErrWindowNotFound is returned by Toolkit.Window when no window on the
// display matches the requested label.
var ErrWindowNotFound = errors.New("window not found")

// EventDidResignFocus is emitted to a window's content when the window
// loses focus but auto_hide is disabled for it.
const EventDidResignFocus = "window-did-resign-focus"

// Window abstracts visibility and focus operations on one top-level window.
// Implementations deliver focus-change callbacks on the toolkit's own
// dispatch goroutine; callers must be safe to invoke from there.
type Window interface {
	Label() string

	IsVisible() (bool, error)
	Show() error
	Hide() error
	SetFocus() error

	// BringToFront forces OS-level foreground focus onto the window,
	// restoring it from a minimized/background state where the ordinary
	// Show/SetFocus pair is defeated by focus-stealing prevention.
	// Platforms without such a primitive degrade to SetFocus semantics.
	BringToFront() error

	// OnFocusChange installs a focus observer. The callback receives true
	// when the window gains focus and false when it loses it.
	OnFocusChange(fn func(focused bool)) error

	// Emit delivers a named event with a small payload to the window's
	// content.
	Emit(event string, payload uint32) error
}

// ShortcutRegistry is the process-wide global shortcut facility. At most
// one binding exists per combination at a time.
type ShortcutRegistry interface {
	Register(combo string, fn func()) error
	Unregister(combo string) error
	IsRegistered(combo string) (bool, error)
}

// Toolkit abstracts the host windowing system.
type Toolkit interface {
	// Window looks up a managed window by its configured label.
	// Returns ErrWindowNotFound when no matching window exists right now.
	Window(label string) (Window, error)

	Shortcuts() ShortcutRegistry

	// EventLoop runs the toolkit's event dispatch loop (blocking).
	EventLoop()

	Disconnect()
}
