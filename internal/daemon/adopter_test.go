package daemon

import (
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/1broseidon/spotlightd/internal/config"
	"github.com/1broseidon/spotlightd/internal/platform"
	"github.com/1broseidon/spotlightd/internal/spotlight"
)

type stubWindow struct {
	label   string
	visible bool
}

func (w *stubWindow) Label() string                           { return w.label }
func (w *stubWindow) IsVisible() (bool, error)                { return w.visible, nil }
func (w *stubWindow) Show() error                             { w.visible = true; return nil }
func (w *stubWindow) Hide() error                             { w.visible = false; return nil }
func (w *stubWindow) SetFocus() error                         { return nil }
func (w *stubWindow) BringToFront() error                     { return nil }
func (w *stubWindow) OnFocusChange(fn func(bool)) error       { return nil }
func (w *stubWindow) Emit(event string, payload uint32) error { return nil }

type stubRegistry struct {
	bound map[string]func()
}

func (r *stubRegistry) Register(combo string, fn func()) error {
	if _, dup := r.bound[combo]; dup {
		return fmt.Errorf("shortcut %q is already registered", combo)
	}
	r.bound[combo] = fn
	return nil
}

func (r *stubRegistry) Unregister(combo string) error {
	delete(r.bound, combo)
	return nil
}

func (r *stubRegistry) IsRegistered(combo string) (bool, error) {
	_, ok := r.bound[combo]
	return ok, nil
}

type stubToolkit struct {
	windows map[string]*stubWindow
	reg     *stubRegistry
}

func (t *stubToolkit) Window(label string) (platform.Window, error) {
	win, ok := t.windows[label]
	if !ok {
		return nil, fmt.Errorf("%w: %q", platform.ErrWindowNotFound, label)
	}
	return win, nil
}

func (t *stubToolkit) Shortcuts() platform.ShortcutRegistry { return t.reg }
func (t *stubToolkit) EventLoop()                           {}
func (t *stubToolkit) Disconnect()                          {}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAdopter_RegistersWindowWhenItAppears(t *testing.T) {
	cfg := &config.Config{
		Windows: []config.WindowConfig{
			{Label: "scratchpad", Shortcut: "Mod4-space"},
		},
		GlobalCloseShortcut: "Mod4-Escape",
	}
	toolkit := &stubToolkit{
		windows: make(map[string]*stubWindow),
		reg:     &stubRegistry{bound: make(map[string]func())},
	}
	manager := spotlight.New(cfg, toolkit)
	adopter := NewAdopter(AdopterConfig{Logger: quietLogger()}, manager, toolkit, cfg.Labels())

	// Window not on screen yet.
	adopter.AdoptNow()
	if got := manager.Labels(); len(got) != 0 {
		t.Fatalf("expected no registrations, got %v", got)
	}

	// Window appears.
	toolkit.windows["scratchpad"] = &stubWindow{label: "scratchpad"}
	adopter.AdoptNow()
	if got := manager.Labels(); len(got) != 1 || got[0] != "scratchpad" {
		t.Fatalf("expected scratchpad registered, got %v", got)
	}
	if _, ok := toolkit.reg.bound["Mod4-space"]; !ok {
		t.Fatal("toggle shortcut should be bound after adoption")
	}

	// Repeated passes leave the registration alone.
	adopter.AdoptNow()
	if got := manager.Labels(); len(got) != 1 {
		t.Fatalf("expected stable registration, got %v", got)
	}
}

func TestAdopter_SkipsUndeclaredWindows(t *testing.T) {
	cfg := &config.Config{
		Windows: []config.WindowConfig{
			{Label: "scratchpad", Shortcut: "Mod4-space"},
		},
	}
	toolkit := &stubToolkit{
		windows: map[string]*stubWindow{
			"browser": {label: "browser"},
		},
		reg: &stubRegistry{bound: make(map[string]func())},
	}
	manager := spotlight.New(cfg, toolkit)
	adopter := NewAdopter(AdopterConfig{Logger: quietLogger()}, manager, toolkit, cfg.Labels())

	adopter.AdoptNow()
	if got := manager.Labels(); len(got) != 0 {
		t.Fatalf("expected no registrations, got %v", got)
	}
}
