package win32

import (
	"fmt"
	"strings"
)

// RegisterHotKey modifier flags.
const (
	modAlt      = 0x0001
	modCtrl     = 0x0002
	modShift    = 0x0004
	modWin      = 0x0008
	modNoRepeat = 0x4000
)

// Virtual-key codes for the named non-character keys accepted in
// accelerator strings.
var namedKeys = map[string]uint32{
	"backspace": 0x08,
	"tab":       0x09,
	"enter":     0x0D,
	"return":    0x0D,
	"esc":       0x1B,
	"escape":    0x1B,
	"space":     0x20,
	"pageup":    0x21,
	"pagedown":  0x22,
	"end":       0x23,
	"home":      0x24,
	"left":      0x25,
	"up":        0x26,
	"right":     0x27,
	"down":      0x28,
	"insert":    0x2D,
	"delete":    0x2E,
	"del":       0x2E,
}

// ParseAccelerator turns a combination like "Ctrl+Shift+Esc" into the
// (modifier flags, virtual-key code) pair RegisterHotKey expects. The
// final token is the key; everything before it must be a modifier.
// Tokens are case-insensitive and separated by "+".
func ParseAccelerator(combo string) (mod uint32, vk uint32, err error) {
	parts := strings.Split(combo, "+")
	if len(parts) == 0 || strings.TrimSpace(combo) == "" {
		return 0, 0, fmt.Errorf("empty accelerator")
	}

	for i, part := range parts {
		token := strings.ToLower(strings.TrimSpace(part))
		if token == "" {
			return 0, 0, fmt.Errorf("accelerator %q has an empty token", combo)
		}
		last := i == len(parts)-1
		if !last {
			m, ok := modifierFlag(token)
			if !ok {
				return 0, 0, fmt.Errorf("accelerator %q: unknown modifier %q", combo, part)
			}
			mod |= m
			continue
		}
		vk, err = keyCode(token)
		if err != nil {
			return 0, 0, fmt.Errorf("accelerator %q: %w", combo, err)
		}
	}
	return mod, vk, nil
}

func modifierFlag(token string) (uint32, bool) {
	switch token {
	case "ctrl", "control":
		return modCtrl, true
	case "alt", "option":
		return modAlt, true
	case "shift":
		return modShift, true
	case "win", "super", "cmd", "meta":
		return modWin, true
	}
	return 0, false
}

func keyCode(token string) (uint32, error) {
	if vk, ok := namedKeys[token]; ok {
		return vk, nil
	}
	if len(token) == 1 {
		c := token[0]
		switch {
		case c >= 'a' && c <= 'z':
			// VK codes for letters match their uppercase ASCII value.
			return uint32(c - 'a' + 'A'), nil
		case c >= '0' && c <= '9':
			return uint32(c), nil
		}
	}
	if len(token) >= 2 && token[0] == 'f' {
		var n int
		if _, err := fmt.Sscanf(token[1:], "%d", &n); err == nil && n >= 1 && n <= 24 {
			return uint32(0x70 + n - 1), nil
		}
	}
	return 0, fmt.Errorf("unknown key %q", token)
}
