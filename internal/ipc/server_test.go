package ipc

import (
	"fmt"
	"testing"

	"github.com/1broseidon/spotlightd/internal/config"
	"github.com/1broseidon/spotlightd/internal/platform"
	"github.com/1broseidon/spotlightd/internal/spotlight"
)

type stubWindow struct {
	label   string
	visible bool
}

func (w *stubWindow) Label() string                          { return w.label }
func (w *stubWindow) IsVisible() (bool, error)               { return w.visible, nil }
func (w *stubWindow) Show() error                            { w.visible = true; return nil }
func (w *stubWindow) Hide() error                            { w.visible = false; return nil }
func (w *stubWindow) SetFocus() error                        { return nil }
func (w *stubWindow) BringToFront() error                    { return nil }
func (w *stubWindow) OnFocusChange(fn func(bool)) error      { return nil }
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
	if _, ok := r.bound[combo]; !ok {
		return fmt.Errorf("shortcut %q is not registered", combo)
	}
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

func startTestServer(t *testing.T) (*Client, *stubToolkit, *spotlight.Manager) {
	t.Helper()
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())

	cfg := &config.Config{
		Windows: []config.WindowConfig{
			{Label: "scratchpad", Shortcut: "Mod4-space"},
			{Label: "notes", Shortcut: "Mod4-n"},
		},
		GlobalCloseShortcut: "Mod4-Escape",
	}

	toolkit := &stubToolkit{
		windows: map[string]*stubWindow{
			"scratchpad": {label: "scratchpad"},
		},
		reg: &stubRegistry{bound: make(map[string]func())},
	}

	manager := spotlight.New(cfg, toolkit)
	if err := manager.Init(toolkit.windows["scratchpad"]); err != nil {
		t.Fatalf("Init: %v", err)
	}

	server, err := NewServer(cfg, manager, toolkit)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	if err := server.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(server.Stop)

	return NewClient(), toolkit, manager
}

func TestServer_GetStatus(t *testing.T) {
	client, _, _ := startTestServer(t)

	status, err := client.GetStatus()
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if !status.DaemonRunning {
		t.Error("expected daemon_running=true")
	}
	if status.WindowCount != 2 {
		t.Errorf("WindowCount = %d, want 2", status.WindowCount)
	}
	if status.RegisteredCount != 1 {
		t.Errorf("RegisteredCount = %d, want 1", status.RegisteredCount)
	}
	if status.GlobalCloseShortcut != "Mod4-Escape" {
		t.Errorf("GlobalCloseShortcut = %q", status.GlobalCloseShortcut)
	}
}

func TestServer_ListWindows(t *testing.T) {
	client, toolkit, _ := startTestServer(t)
	toolkit.windows["scratchpad"].visible = true

	data, err := client.ListWindows()
	if err != nil {
		t.Fatalf("ListWindows: %v", err)
	}
	if len(data.Windows) != 2 {
		t.Fatalf("got %d windows, want 2", len(data.Windows))
	}

	byLabel := make(map[string]WindowInfo)
	for _, w := range data.Windows {
		byLabel[w.Label] = w
	}

	scratch := byLabel["scratchpad"]
	if !scratch.Registered || !scratch.Found || !scratch.Visible {
		t.Errorf("scratchpad = %+v, want registered, found and visible", scratch)
	}
	if !scratch.AutoHide {
		t.Error("scratchpad auto_hide should default to true")
	}

	notes := byLabel["notes"]
	if notes.Registered || notes.Found || notes.Visible {
		t.Errorf("notes = %+v, want unregistered and absent", notes)
	}
}

func TestServer_ToggleAndHide(t *testing.T) {
	client, toolkit, _ := startTestServer(t)
	win := toolkit.windows["scratchpad"]

	if err := client.ToggleWindow("scratchpad"); err != nil {
		t.Fatalf("ToggleWindow: %v", err)
	}
	if !win.visible {
		t.Fatal("toggle should have shown the window")
	}

	if err := client.HideWindow("scratchpad"); err != nil {
		t.Fatalf("HideWindow: %v", err)
	}
	if win.visible {
		t.Fatal("hide should have hidden the window")
	}
}

func TestServer_RejectsUnknownLabel(t *testing.T) {
	client, _, _ := startTestServer(t)

	if err := client.ShowWindow("undeclared"); err == nil {
		t.Fatal("expected error for undeclared label")
	}
}

func TestServer_HideAll(t *testing.T) {
	client, toolkit, _ := startTestServer(t)
	win := toolkit.windows["scratchpad"]
	win.visible = true

	if err := client.HideAll(); err != nil {
		t.Fatalf("HideAll: %v", err)
	}
	if win.visible {
		t.Fatal("HideAll should have hidden the registered window")
	}
}
