package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// WatchFocus selects FocusChange events on the window and invokes fn with
// true on FocusIn and false on FocusOut. Grab-induced transitions are
// filtered out: a keyboard grab (our own shortcut grabs included) briefly
// steals focus and would otherwise look like the user leaving the window.
func (c *Connection) WatchFocus(windowID xproto.Window, fn func(focused bool)) error {
	win := xwindow.New(c.XUtil, windowID)
	if err := win.Listen(xproto.EventMaskFocusChange); err != nil {
		return fmt.Errorf("failed to select focus events: %w", err)
	}

	xevent.FocusInFun(func(xu *xgbutil.XUtil, ev xevent.FocusInEvent) {
		if grabTransition(ev.Mode) {
			return
		}
		fn(true)
	}).Connect(c.XUtil, windowID)

	xevent.FocusOutFun(func(xu *xgbutil.XUtil, ev xevent.FocusOutEvent) {
		if grabTransition(ev.Mode) {
			return
		}
		fn(false)
	}).Connect(c.XUtil, windowID)

	return nil
}

func grabTransition(mode byte) bool {
	return mode == xproto.NotifyModeGrab || mode == xproto.NotifyModeUngrab
}
