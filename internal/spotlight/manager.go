// Package spotlight coordinates visibility and global shortcuts for
// spotlight-style windows: normally hidden, summoned and dismissed by
// global key combinations, and hidden again when they lose focus.
package spotlight

import (
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/1broseidon/spotlightd/internal/config"
	"github.com/1broseidon/spotlightd/internal/platform"
)

// Manager owns the registration state of every managed window. Construct
// one per process and inject it into every collaborator; its methods are
// safe to call from toolkit callback goroutines.
type Manager struct {
	cfg     *config.Config
	toolkit platform.Toolkit

	// registered holds the labels that completed shortcut/observer setup.
	// Shortcut callbacks fire from the toolkit dispatch goroutine while
	// window adoption happens elsewhere, so all access goes through mu.
	mu         sync.Mutex
	registered map[string]struct{}
}

// New creates a Manager for the given configuration and toolkit.
func New(cfg *config.Config, toolkit platform.Toolkit) *Manager {
	return &Manager{
		cfg:        cfg,
		toolkit:    toolkit,
		registered: make(map[string]struct{}),
	}
}

// Init wires up a spotlight window: toggle shortcut, shared close shortcut,
// and focus observer. Windows whose label is not declared in the config are
// ignored (no-op success). Init is idempotent per label; only the first
// call for a label performs registration.
func (m *Manager) Init(win platform.Window) error {
	label := win.Label()
	wc, ok := m.cfg.Window(label)
	if !ok {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, done := m.registered[label]; done {
		return nil
	}

	if err := m.registerToggleShortcut(win, wc); err != nil {
		return err
	}
	if err := m.registerCloseShortcut(); err != nil {
		return err
	}
	if err := win.OnFocusChange(func(focused bool) {
		m.handleFocusChange(win, wc.AutoHideEnabled(), focused)
	}); err != nil {
		return fmt.Errorf("window %q: install focus observer: %w", label, err)
	}

	m.registered[label] = struct{}{}
	return nil
}

// Show makes the window visible and focused. The native front-bringing
// primitive runs after the toolkit focus call so the window wins against
// another application holding OS-level foreground focus. No-op when the
// window is already visible.
func (m *Manager) Show(win platform.Window) error {
	label := win.Label()
	visible, err := win.IsVisible()
	if err != nil {
		return fmt.Errorf("window %q: %w: %w", label, ErrVisibilityCheck, err)
	}
	if visible {
		return nil
	}
	if err := win.Show(); err != nil {
		return fmt.Errorf("window %q: %w: %w", label, ErrShow, err)
	}
	if err := win.SetFocus(); err != nil {
		return fmt.Errorf("window %q: %w: %w", label, ErrShow, err)
	}
	if err := win.BringToFront(); err != nil {
		// Best-effort: the window is already shown and focused through
		// the toolkit at this point.
		log.Printf("spotlight: bring-to-front failed for %q: %v", label, err)
	}
	return nil
}

// Hide makes the window invisible. No-op when already hidden.
func (m *Manager) Hide(win platform.Window) error {
	label := win.Label()
	visible, err := win.IsVisible()
	if err != nil {
		return fmt.Errorf("window %q: %w: %w", label, ErrVisibilityCheck, err)
	}
	if !visible {
		return nil
	}
	if err := win.Hide(); err != nil {
		return fmt.Errorf("window %q: %w: %w", label, ErrHide, err)
	}
	return nil
}

// Toggle shows the window when hidden and hides it when visible. This is
// the body of the per-window toggle shortcut.
func (m *Manager) Toggle(win platform.Window) error {
	visible, err := win.IsVisible()
	if err != nil {
		return fmt.Errorf("window %q: %w: %w", win.Label(), ErrVisibilityCheck, err)
	}
	if visible {
		return m.Hide(win)
	}
	return m.Show(win)
}

// Labels returns a sorted snapshot of the labels that completed
// registration.
func (m *Manager) Labels() []string {
	m.mu.Lock()
	labels := make([]string, 0, len(m.registered))
	for label := range m.registered {
		labels = append(labels, label)
	}
	m.mu.Unlock()

	sort.Strings(labels)
	return labels
}

// HideAll hides every registered window, best-effort: a window that no
// longer exists is skipped. This is the body of the global close shortcut.
// The registration snapshot is taken under the lock and released before any
// toolkit call, so toolkit callbacks that re-enter the Manager cannot
// deadlock against it.
func (m *Manager) HideAll() {
	for _, label := range m.Labels() {
		win, err := m.toolkit.Window(label)
		if err != nil {
			continue
		}
		if err := m.Hide(win); err != nil {
			log.Printf("spotlight: close shortcut: %v", err)
		}
	}
}

// registerToggleShortcut binds the per-window toggle combination, when one
// is configured.
func (m *Manager) registerToggleShortcut(win platform.Window, wc config.WindowConfig) error {
	if wc.Shortcut == "" {
		return nil
	}
	err := m.toolkit.Shortcuts().Register(wc.Shortcut, func() {
		if err := m.Toggle(win); err != nil {
			log.Printf("spotlight: toggle shortcut %q: %v", wc.Shortcut, err)
		}
	})
	if err != nil {
		return fmt.Errorf("window %q: register shortcut %q: %w: %w", wc.Label, wc.Shortcut, ErrShortcut, err)
	}
	return nil
}

// registerCloseShortcut binds the shared close shortcut unless it is
// already bound. The existence check runs first; if the check itself fails
// the operation fails rather than attempting a blind register.
func (m *Manager) registerCloseShortcut() error {
	combo := m.cfg.GlobalCloseShortcut
	if combo == "" {
		return nil
	}
	reg := m.toolkit.Shortcuts()
	registered, err := reg.IsRegistered(combo)
	if err != nil {
		return fmt.Errorf("close shortcut %q: %w: %w", combo, ErrShortcut, err)
	}
	if registered {
		return nil
	}
	if err := reg.Register(combo, m.HideAll); err != nil {
		return fmt.Errorf("close shortcut %q: %w: %w", combo, ErrShortcut, err)
	}
	return nil
}

// unregisterCloseShortcut removes the shared close shortcut if it is
// currently bound.
func (m *Manager) unregisterCloseShortcut() error {
	combo := m.cfg.GlobalCloseShortcut
	if combo == "" {
		return nil
	}
	reg := m.toolkit.Shortcuts()
	registered, err := reg.IsRegistered(combo)
	if err != nil {
		return fmt.Errorf("close shortcut %q: %w: %w", combo, ErrShortcut, err)
	}
	if !registered {
		return nil
	}
	if err := reg.Unregister(combo); err != nil {
		return fmt.Errorf("close shortcut %q: %w: %w", combo, ErrShortcut, err)
	}
	return nil
}

// handleFocusChange drives the close-shortcut lifecycle: the shortcut is
// bound exactly while some spotlight window holds focus, so it never
// shadows the same combination in unrelated foreground applications.
// Failures here are logged and the daemon keeps running; a missed
// (un)register self-corrects on the next focus transition.
func (m *Manager) handleFocusChange(win platform.Window, autoHide bool, focused bool) {
	if focused {
		if err := m.registerCloseShortcut(); err != nil {
			log.Printf("spotlight: focus gained on %q: %v", win.Label(), err)
		}
		return
	}

	if err := m.unregisterCloseShortcut(); err != nil {
		log.Printf("spotlight: focus lost on %q: %v", win.Label(), err)
	}
	if autoHide {
		if err := m.Hide(win); err != nil {
			log.Printf("spotlight: auto-hide of %q: %v", win.Label(), err)
		}
		return
	}
	if err := win.Emit(platform.EventDidResignFocus, 1); err != nil {
		log.Printf("spotlight: notify %q of focus loss: %v", win.Label(), err)
	}
}
