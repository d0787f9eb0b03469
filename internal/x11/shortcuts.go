package x11

import (
	"fmt"
	"sync"

	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// ShortcutRegistry grabs global key combinations on the root window. At
// most one callback is bound per combination; binding an occupied
// combination is an error, matching OS shortcut-registry semantics.
type ShortcutRegistry struct {
	conn *Connection

	mu    sync.Mutex
	bound map[string]func()
}

// NewShortcutRegistry creates a registry on the given connection.
func NewShortcutRegistry(conn *Connection) *ShortcutRegistry {
	return &ShortcutRegistry{
		conn:  conn,
		bound: make(map[string]func()),
	}
}

// Register grabs combo on the root window and binds fn to it. The key
// sequence syntax is xgbutil's (e.g. "Mod4-space").
func (r *ShortcutRegistry) Register(combo string, fn func()) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.bound[combo]; dup {
		return fmt.Errorf("shortcut %q is already registered", combo)
	}
	if err := r.connect(combo, fn); err != nil {
		return fmt.Errorf("failed to grab %q: %w", combo, err)
	}
	r.bound[combo] = fn
	return nil
}

// Unregister releases combo. keybind has no per-sequence detach, so all
// grabs on the root window are dropped and the surviving bindings are
// re-established.
func (r *ShortcutRegistry) Unregister(combo string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bound[combo]; !ok {
		return fmt.Errorf("shortcut %q is not registered", combo)
	}
	delete(r.bound, combo)

	keybind.Detach(r.conn.XUtil, r.conn.Root)
	for seq, fn := range r.bound {
		if err := r.connect(seq, fn); err != nil {
			return fmt.Errorf("failed to re-grab %q after unregistering %q: %w", seq, combo, err)
		}
	}
	return nil
}

// IsRegistered reports whether combo currently has a binding.
func (r *ShortcutRegistry) IsRegistered(combo string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.bound[combo]
	return ok, nil
}

func (r *ShortcutRegistry) connect(combo string, fn func()) error {
	return keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		fn()
	}).Connect(r.conn.XUtil, r.conn.Root, combo, true)
}
