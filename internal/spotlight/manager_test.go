package spotlight

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/1broseidon/spotlightd/internal/config"
	"github.com/1broseidon/spotlightd/internal/platform"
)

// fakeWindow implements platform.Window in-memory.
type fakeWindow struct {
	label   string
	visible bool
	focusFn func(bool)
	events  []string
	fronted int

	visErr  error
	showErr error
	hideErr error

	// onHide, when set, runs synchronously inside Hide, the way a real
	// toolkit delivers events during an unmap.
	onHide func()
}

func (w *fakeWindow) Label() string { return w.label }

func (w *fakeWindow) IsVisible() (bool, error) {
	if w.visErr != nil {
		return false, w.visErr
	}
	return w.visible, nil
}

func (w *fakeWindow) Show() error {
	if w.showErr != nil {
		return w.showErr
	}
	w.visible = true
	return nil
}

func (w *fakeWindow) Hide() error {
	if w.hideErr != nil {
		return w.hideErr
	}
	w.visible = false
	if w.onHide != nil {
		w.onHide()
	}
	return nil
}

func (w *fakeWindow) SetFocus() error { return nil }

func (w *fakeWindow) BringToFront() error {
	w.fronted++
	return nil
}

func (w *fakeWindow) OnFocusChange(fn func(bool)) error {
	w.focusFn = fn
	return nil
}

func (w *fakeWindow) Emit(event string, payload uint32) error {
	w.events = append(w.events, event)
	return nil
}

// setFocus simulates a toolkit focus transition.
func (w *fakeWindow) setFocus(t *testing.T, focused bool) {
	t.Helper()
	if w.focusFn == nil {
		t.Fatalf("window %q has no focus observer installed", w.label)
	}
	w.focusFn(focused)
}

// fakeRegistry implements platform.ShortcutRegistry and rejects duplicate
// registrations, like a real OS registry.
type fakeRegistry struct {
	mu       sync.Mutex
	bound    map[string]func()
	queryErr error
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{bound: make(map[string]func())}
}

func (r *fakeRegistry) Register(combo string, fn func()) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.bound[combo]; dup {
		return fmt.Errorf("combo %q already registered", combo)
	}
	r.bound[combo] = fn
	return nil
}

func (r *fakeRegistry) Unregister(combo string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bound[combo]; !ok {
		return fmt.Errorf("combo %q not registered", combo)
	}
	delete(r.bound, combo)
	return nil
}

func (r *fakeRegistry) IsRegistered(combo string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.queryErr != nil {
		return false, r.queryErr
	}
	_, ok := r.bound[combo]
	return ok, nil
}

// fire invokes the callback bound to combo.
func (r *fakeRegistry) fire(t *testing.T, combo string) {
	t.Helper()
	r.mu.Lock()
	fn, ok := r.bound[combo]
	r.mu.Unlock()
	if !ok {
		t.Fatalf("combo %q not registered", combo)
	}
	fn()
}

type fakeToolkit struct {
	windows map[string]*fakeWindow
	reg     *fakeRegistry
}

func newFakeToolkit(windows ...*fakeWindow) *fakeToolkit {
	tk := &fakeToolkit{
		windows: make(map[string]*fakeWindow),
		reg:     newFakeRegistry(),
	}
	for _, w := range windows {
		tk.windows[w.label] = w
	}
	return tk
}

func (tk *fakeToolkit) Window(label string) (platform.Window, error) {
	w, ok := tk.windows[label]
	if !ok {
		return nil, platform.ErrWindowNotFound
	}
	return w, nil
}

func (tk *fakeToolkit) Shortcuts() platform.ShortcutRegistry { return tk.reg }
func (tk *fakeToolkit) EventLoop()                           {}
func (tk *fakeToolkit) Disconnect()                          {}

func boolPtr(b bool) *bool { return &b }

func TestInit_Idempotent(t *testing.T) {
	win := &fakeWindow{label: "main"}
	tk := newFakeToolkit(win)
	cfg := &config.Config{
		Windows: []config.WindowConfig{{Label: "main", Shortcut: "Mod4-k"}},
	}
	m := New(cfg, tk)

	if err := m.Init(win); err != nil {
		t.Fatalf("first init: %v", err)
	}
	// A second init must not hit the registry again: the fake rejects
	// duplicate registrations, so any re-registration would error here.
	if err := m.Init(win); err != nil {
		t.Fatalf("second init: %v", err)
	}

	labels := m.Labels()
	if len(labels) != 1 || labels[0] != "main" {
		t.Fatalf("expected registration set [main], got %v", labels)
	}
}

func TestInit_UndeclaredLabelIsNoop(t *testing.T) {
	win := &fakeWindow{label: "stray"}
	tk := newFakeToolkit(win)
	cfg := &config.Config{
		Windows:             []config.WindowConfig{{Label: "main"}},
		GlobalCloseShortcut: "Mod4-Escape",
	}
	m := New(cfg, tk)

	if err := m.Init(win); err != nil {
		t.Fatalf("init: %v", err)
	}
	if got := m.Labels(); len(got) != 0 {
		t.Fatalf("expected empty registration set, got %v", got)
	}
	if len(tk.reg.bound) != 0 {
		t.Fatalf("expected no shortcut registrations, got %d", len(tk.reg.bound))
	}
	if win.focusFn != nil {
		t.Fatalf("expected no focus observer on undeclared window")
	}
}

func TestToggleShortcut_RoundTrip(t *testing.T) {
	win := &fakeWindow{label: "main"}
	tk := newFakeToolkit(win)
	cfg := &config.Config{
		Windows: []config.WindowConfig{{Label: "main", Shortcut: "Mod4-k"}},
	}
	m := New(cfg, tk)
	if err := m.Init(win); err != nil {
		t.Fatalf("init: %v", err)
	}

	tk.reg.fire(t, "Mod4-k")
	if !win.visible {
		t.Fatalf("expected window visible after toggle from hidden")
	}
	if win.fronted != 1 {
		t.Fatalf("expected one bring-to-front call, got %d", win.fronted)
	}

	tk.reg.fire(t, "Mod4-k")
	if win.visible {
		t.Fatalf("expected window hidden after second toggle")
	}
	if win.fronted != 1 {
		t.Fatalf("hide must not bring to front, got %d calls", win.fronted)
	}
}

func TestShow_NoopWhenVisible(t *testing.T) {
	win := &fakeWindow{label: "main", visible: true}
	m := New(&config.Config{Windows: []config.WindowConfig{{Label: "main"}}}, newFakeToolkit(win))

	if err := m.Show(win); err != nil {
		t.Fatalf("show: %v", err)
	}
	if win.fronted != 0 {
		t.Fatalf("expected no front-bringing on already-visible window")
	}
}

func TestShow_VisibilityCheckFailure(t *testing.T) {
	win := &fakeWindow{label: "main", visErr: errors.New("toolkit gone")}
	m := New(&config.Config{Windows: []config.WindowConfig{{Label: "main"}}}, newFakeToolkit(win))

	err := m.Show(win)
	if !errors.Is(err, ErrVisibilityCheck) {
		t.Fatalf("expected ErrVisibilityCheck, got %v", err)
	}
}

func TestShow_ShowFailureLeavesStateAlone(t *testing.T) {
	win := &fakeWindow{label: "main", showErr: errors.New("mapping rejected")}
	m := New(&config.Config{Windows: []config.WindowConfig{{Label: "main"}}}, newFakeToolkit(win))

	err := m.Show(win)
	if !errors.Is(err, ErrShow) {
		t.Fatalf("expected ErrShow, got %v", err)
	}
	if win.visible {
		t.Fatalf("window must stay hidden after failed show")
	}
}

func TestHide_Failure(t *testing.T) {
	win := &fakeWindow{label: "main", visible: true, hideErr: errors.New("unmap rejected")}
	m := New(&config.Config{Windows: []config.WindowConfig{{Label: "main"}}}, newFakeToolkit(win))

	if err := m.Hide(win); !errors.Is(err, ErrHide) {
		t.Fatalf("expected ErrHide, got %v", err)
	}
}

func TestInit_ToggleRegistrationFailure(t *testing.T) {
	win := &fakeWindow{label: "main"}
	tk := newFakeToolkit(win)
	// Occupy the combo so registration fails.
	if err := tk.reg.Register("Mod4-k", func() {}); err != nil {
		t.Fatalf("seed registry: %v", err)
	}
	cfg := &config.Config{
		Windows: []config.WindowConfig{{Label: "main", Shortcut: "Mod4-k"}},
	}
	m := New(cfg, tk)

	err := m.Init(win)
	if !errors.Is(err, ErrShortcut) {
		t.Fatalf("expected ErrShortcut, got %v", err)
	}
	if got := m.Labels(); len(got) != 0 {
		t.Fatalf("failed init must not mark the label registered, got %v", got)
	}
}

func TestInit_RegistryQueryFailure(t *testing.T) {
	win := &fakeWindow{label: "main"}
	tk := newFakeToolkit(win)
	tk.reg.queryErr = errors.New("registry unavailable")
	cfg := &config.Config{
		Windows:             []config.WindowConfig{{Label: "main"}},
		GlobalCloseShortcut: "Mod4-Escape",
	}
	m := New(cfg, tk)

	if err := m.Init(win); !errors.Is(err, ErrShortcut) {
		t.Fatalf("expected ErrShortcut from failed existence check, got %v", err)
	}
}

func TestFocusLost_AutoHide(t *testing.T) {
	win := &fakeWindow{label: "main", visible: true}
	tk := newFakeToolkit(win)
	cfg := &config.Config{
		Windows: []config.WindowConfig{{Label: "main"}},
	}
	m := New(cfg, tk)
	if err := m.Init(win); err != nil {
		t.Fatalf("init: %v", err)
	}

	win.setFocus(t, false)
	if win.visible {
		t.Fatalf("expected auto_hide window hidden after focus loss")
	}
	if len(win.events) != 0 {
		t.Fatalf("auto_hide window must not receive resign-focus events, got %v", win.events)
	}
}

func TestFocusLost_NotifyWithoutHiding(t *testing.T) {
	win := &fakeWindow{label: "main", visible: true}
	tk := newFakeToolkit(win)
	cfg := &config.Config{
		Windows: []config.WindowConfig{{Label: "main", AutoHide: boolPtr(false)}},
	}
	m := New(cfg, tk)
	if err := m.Init(win); err != nil {
		t.Fatalf("init: %v", err)
	}

	win.setFocus(t, false)
	if !win.visible {
		t.Fatalf("expected window to stay visible with auto_hide disabled")
	}
	if len(win.events) != 1 || win.events[0] != platform.EventDidResignFocus {
		t.Fatalf("expected one %s event, got %v", platform.EventDidResignFocus, win.events)
	}
}

func TestCloseShortcut_TracksFocusAcrossWindows(t *testing.T) {
	const combo = "Mod4-Escape"
	w1 := &fakeWindow{label: "one", visible: true}
	w2 := &fakeWindow{label: "two", visible: true}
	tk := newFakeToolkit(w1, w2)
	cfg := &config.Config{
		Windows: []config.WindowConfig{
			{Label: "one", AutoHide: boolPtr(false)},
			{Label: "two", AutoHide: boolPtr(false)},
		},
		GlobalCloseShortcut: combo,
	}
	m := New(cfg, tk)
	if err := m.Init(w1); err != nil {
		t.Fatalf("init one: %v", err)
	}
	if err := m.Init(w2); err != nil {
		t.Fatalf("init two: %v", err)
	}

	assertBound := func(want bool) {
		t.Helper()
		got, err := tk.reg.IsRegistered(combo)
		if err != nil {
			t.Fatalf("query: %v", err)
		}
		if got != want {
			t.Fatalf("close shortcut registered = %v, want %v", got, want)
		}
	}

	// Init binds the close shortcut; the second Init must tolerate it
	// being bound already (existence check, not a blind register).
	assertBound(true)

	w1.setFocus(t, true)
	assertBound(true)

	// Focus moving between two spotlight windows: the toolkit orders the
	// loss before the gain per window; the shared binding follows.
	w1.setFocus(t, false)
	assertBound(false)
	w2.setFocus(t, true)
	assertBound(true)

	w2.setFocus(t, false)
	assertBound(false)

	// Repeated loss: unregister is existence-checked, so no error path
	// is hit and the binding stays absent.
	w1.setFocus(t, false)
	assertBound(false)
}

func TestCloseShortcut_HidesAllRegisteredWindows(t *testing.T) {
	const combo = "Mod4-Escape"
	w1 := &fakeWindow{label: "one", visible: true}
	w2 := &fakeWindow{label: "two", visible: true}
	w3 := &fakeWindow{label: "gone", visible: true}
	tk := newFakeToolkit(w1, w2, w3)
	cfg := &config.Config{
		Windows: []config.WindowConfig{
			{Label: "one", AutoHide: boolPtr(false)},
			{Label: "two", AutoHide: boolPtr(false)},
			{Label: "gone", AutoHide: boolPtr(false)},
		},
		GlobalCloseShortcut: combo,
	}
	m := New(cfg, tk)
	for _, w := range []*fakeWindow{w1, w2, w3} {
		if err := m.Init(w); err != nil {
			t.Fatalf("init %s: %v", w.label, err)
		}
	}

	// One window disappears between registration and the shortcut firing;
	// hiding must skip it and still hide the others.
	delete(tk.windows, "gone")

	w1.setFocus(t, true)
	tk.reg.fire(t, combo)

	if w1.visible || w2.visible {
		t.Fatalf("expected both reachable windows hidden, got one=%v two=%v", w1.visible, w2.visible)
	}
}

// TestScenario walks the sequence from the design discussion end to end:
// a single auto-hiding window with a toggle and a global close shortcut.
func TestScenario(t *testing.T) {
	win := &fakeWindow{label: "main"}
	tk := newFakeToolkit(win)
	cfg := &config.Config{
		Windows:             []config.WindowConfig{{Label: "main", Shortcut: "Cmd+K", AutoHide: boolPtr(true)}},
		GlobalCloseShortcut: "Cmd+Shift+Esc",
	}
	m := New(cfg, tk)

	if err := m.Init(win); err != nil {
		t.Fatalf("init: %v", err)
	}

	if err := m.Show(win); err != nil {
		t.Fatalf("show: %v", err)
	}
	if !win.visible {
		t.Fatalf("expected window visible after show")
	}

	win.setFocus(t, true)

	win.setFocus(t, false)
	if win.visible {
		t.Fatalf("expected window hidden after focus loss")
	}
	if bound, _ := tk.reg.IsRegistered("Cmd+Shift+Esc"); bound {
		t.Fatalf("expected close shortcut unregistered after focus loss")
	}

	win.setFocus(t, true)
	if bound, _ := tk.reg.IsRegistered("Cmd+Shift+Esc"); !bound {
		t.Fatalf("expected close shortcut registered after focus gain")
	}

	// Firing the close shortcut on an already-hidden window is a no-op,
	// not an error.
	tk.reg.fire(t, "Cmd+Shift+Esc")
	if win.visible {
		t.Fatalf("expected window to stay hidden")
	}
}

func TestHideAll_SnapshotReleasedBeforeToolkitCalls(t *testing.T) {
	// A toolkit call made during HideAll may re-enter the Manager and
	// read the registration set. That only works because HideAll copies
	// the set under the lock and releases it before touching the
	// toolkit; holding the lock across Hide would deadlock here.
	win := &fakeWindow{label: "main", visible: true}
	tk := newFakeToolkit(win)
	cfg := &config.Config{
		Windows:             []config.WindowConfig{{Label: "main"}},
		GlobalCloseShortcut: "Mod4-Escape",
	}
	m := New(cfg, tk)
	if err := m.Init(win); err != nil {
		t.Fatalf("init: %v", err)
	}

	var reentrant []string
	win.onHide = func() {
		reentrant = m.Labels()
	}

	m.HideAll()

	if win.visible {
		t.Fatalf("expected window hidden")
	}
	if len(reentrant) != 1 || reentrant[0] != "main" {
		t.Fatalf("re-entrant Labels() = %v, want [main]", reentrant)
	}
}
