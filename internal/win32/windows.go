//go:build windows

// Package win32 wraps the small slice of user32 that spotlightd needs:
// window lookup and visibility, the RegisterHotKey global shortcut
// facility, and the restore-plus-SetForegroundWindow front-bringing
// primitive.
package win32

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procFindWindowW            = user32.NewProc("FindWindowW")
	procIsWindowVisible        = user32.NewProc("IsWindowVisible")
	procIsWindow               = user32.NewProc("IsWindow")
	procShowWindow             = user32.NewProc("ShowWindow")
	procSetForegroundWindow    = user32.NewProc("SetForegroundWindow")
	procGetForegroundWindow    = user32.NewProc("GetForegroundWindow")
	procPostMessageW           = user32.NewProc("PostMessageW")
	procRegisterWindowMessageW = user32.NewProc("RegisterWindowMessageW")
)

// ShowWindow nCmdShow values.
const (
	swHide    = 0
	swShow    = 5
	swRestore = 9
)

// HWND is a Win32 window handle.
type HWND uintptr

// FindWindow locates a top-level window by exact title.
func FindWindow(title string) (HWND, error) {
	titlePtr, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return 0, fmt.Errorf("invalid window title %q: %w", title, err)
	}
	hwnd, _, _ := procFindWindowW.Call(0, uintptr(unsafe.Pointer(titlePtr)))
	if hwnd == 0 {
		return 0, fmt.Errorf("no window titled %q", title)
	}
	return HWND(hwnd), nil
}

// IsWindow reports whether the handle still identifies a live window.
func IsWindow(hwnd HWND) bool {
	ret, _, _ := procIsWindow.Call(uintptr(hwnd))
	return ret != 0
}

// IsVisible reports whether the window is shown.
func IsVisible(hwnd HWND) (bool, error) {
	if !IsWindow(hwnd) {
		return false, fmt.Errorf("window handle %#x is stale", uintptr(hwnd))
	}
	ret, _, _ := procIsWindowVisible.Call(uintptr(hwnd))
	return ret != 0, nil
}

// Show makes the window visible.
func Show(hwnd HWND) error {
	procShowWindow.Call(uintptr(hwnd), swShow)
	return nil
}

// Hide makes the window invisible.
func Hide(hwnd HWND) error {
	procShowWindow.Call(uintptr(hwnd), swHide)
	return nil
}

// SetForeground gives the window OS input focus.
func SetForeground(hwnd HWND) error {
	ret, _, _ := procSetForegroundWindow.Call(uintptr(hwnd))
	if ret == 0 {
		return fmt.Errorf("SetForegroundWindow refused for %#x", uintptr(hwnd))
	}
	return nil
}

// BringToFront restores the window from a minimized state and forces
// foreground focus onto it, defeating another application's foreground
// lock where an ordinary show does not.
func BringToFront(hwnd HWND) error {
	procShowWindow.Call(uintptr(hwnd), swRestore)
	return SetForeground(hwnd)
}

// Foreground returns the window currently holding OS input focus.
func Foreground() HWND {
	hwnd, _, _ := procGetForegroundWindow.Call()
	return HWND(hwnd)
}

// PostNamedMessage delivers an application-defined message to the window.
// The message ID is derived from name via RegisterWindowMessage, so any
// process that registers the same name observes the same ID.
func PostNamedMessage(hwnd HWND, name string, payload uint32) error {
	namePtr, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return fmt.Errorf("invalid message name %q: %w", name, err)
	}
	msg, _, _ := procRegisterWindowMessageW.Call(uintptr(unsafe.Pointer(namePtr)))
	if msg == 0 {
		return fmt.Errorf("RegisterWindowMessage failed for %q", name)
	}
	ret, _, callErr := procPostMessageW.Call(uintptr(hwnd), msg, uintptr(payload), 0)
	if ret == 0 {
		return fmt.Errorf("PostMessage %q to %#x: %w", name, uintptr(hwnd), callErr)
	}
	return nil
}
