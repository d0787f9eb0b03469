package x11

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
)

// ErrNoWindow is returned by FindWindow when no client window matches.
var ErrNoWindow = errors.New("no window matches label")

// FindWindow locates a client window whose WM_CLASS instance or class name
// equals label (case-insensitive), falling back to an exact title match.
// When several windows match, the first in _NET_CLIENT_LIST order wins.
func (c *Connection) FindWindow(label string) (xproto.Window, error) {
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("failed to list client windows: %w", err)
	}

	for _, windowID := range clients {
		if wmClass, err := icccm.WmClassGet(c.XUtil, windowID); err == nil {
			if strings.EqualFold(wmClass.Instance, label) || strings.EqualFold(wmClass.Class, label) {
				return windowID, nil
			}
		}
	}

	for _, windowID := range clients {
		if title, err := ewmh.WmNameGet(c.XUtil, windowID); err == nil && strings.TrimSpace(title) == label {
			return windowID, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrNoWindow, label)
}

// IsViewable reports whether the window is currently mapped and viewable.
func (c *Connection) IsViewable(windowID xproto.Window) (bool, error) {
	attrs, err := xproto.GetWindowAttributes(c.XUtil.Conn(), windowID).Reply()
	if err != nil {
		return false, fmt.Errorf("failed to get window attributes: %w", err)
	}
	return attrs.MapState == xproto.MapStateViewable, nil
}

// ShowWindow maps the window.
func (c *Connection) ShowWindow(windowID xproto.Window) error {
	if err := xproto.MapWindowChecked(c.XUtil.Conn(), windowID).Check(); err != nil {
		return fmt.Errorf("failed to map window: %w", err)
	}
	return nil
}

// HideWindow unmaps the window. The window manager treats this as a
// withdraw, which is exactly what a spotlight window wants: gone from the
// taskbar and pager until the next show.
func (c *Connection) HideWindow(windowID xproto.Window) error {
	if err := xproto.UnmapWindowChecked(c.XUtil.Conn(), windowID).Check(); err != nil {
		return fmt.Errorf("failed to unmap window: %w", err)
	}
	return nil
}

// ActivateWindow asks the window manager to activate and raise a window
// using _NET_ACTIVE_WINDOW. The message is built manually because the
// xgbutil ewmh helpers panic on this library version (uint vs int type
// assertion).
func (c *Connection) ActivateWindow(windowID xproto.Window) error {
	atom, err := c.atom("_NET_ACTIVE_WINDOW")
	if err != nil {
		return err
	}

	const sourceIndication = 2 // pager/direct action
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: windowID,
		Type:   atom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{sourceIndication, 0, 0, 0, 0}),
	}

	return xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		c.Root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check()
}

// RaiseWindow forces the window above the stacking order and moves input
// focus onto it directly, bypassing the window manager's focus-stealing
// prevention. This is the X11 flavor of the native front-bringing
// primitive; ActivateWindow alone is ignored by some window managers when
// another application is foreground.
func (c *Connection) RaiseWindow(windowID xproto.Window) error {
	if err := xproto.ConfigureWindowChecked(
		c.XUtil.Conn(),
		windowID,
		xproto.ConfigWindowStackMode,
		[]uint32{xproto.StackModeAbove},
	).Check(); err != nil {
		return fmt.Errorf("failed to raise window: %w", err)
	}

	if err := xproto.SetInputFocusChecked(
		c.XUtil.Conn(),
		xproto.InputFocusParent,
		windowID,
		xproto.TimeCurrentTime,
	).Check(); err != nil {
		return fmt.Errorf("failed to set input focus: %w", err)
	}

	return nil
}

// EmitClientMessage delivers a named event to a window as a ClientMessage
// whose type atom is the event name. Window content that wants the
// notification selects for client messages and matches on the atom.
func (c *Connection) EmitClientMessage(windowID xproto.Window, name string, payload uint32) error {
	atom, err := c.atom(name)
	if err != nil {
		return err
	}

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: windowID,
		Type:   atom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{payload, 0, 0, 0, 0}),
	}

	return xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		windowID,
		xproto.EventMaskNoEvent,
		string(ev.Bytes()),
	).Check()
}
