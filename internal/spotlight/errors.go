package spotlight

import "errors"

// Error kinds surfaced by Manager operations. Callers match with errors.Is;
// wrapped errors carry the toolkit failure and the window label.
var (
	// ErrVisibilityCheck means the toolkit could not report whether a
	// window is visible.
	ErrVisibilityCheck = errors.New("failed to check window visibility")

	// ErrShow means the toolkit show or focus call failed.
	ErrShow = errors.New("failed to show window")

	// ErrHide means the toolkit hide call failed.
	ErrHide = errors.New("failed to hide window")

	// ErrShortcut means a register/unregister/query against the OS
	// shortcut registry failed or reported an unexpected state.
	ErrShortcut = errors.New("shortcut operation failed")
)
