//go:build windows

package win32

import (
	"sync"
	"time"
)

// FocusWatcher derives per-window focus transitions by polling
// GetForegroundWindow. Windows has no broadcast focus event that a
// plain process can subscribe to without installing hooks, so a short
// polling interval is the portable compromise.
type FocusWatcher struct {
	interval time.Duration

	mu      sync.Mutex
	watched map[HWND][]func(focused bool)
	focused map[HWND]bool

	stop chan struct{}
	once sync.Once
}

// NewFocusWatcher starts the polling loop with the given interval.
func NewFocusWatcher(interval time.Duration) *FocusWatcher {
	w := &FocusWatcher{
		interval: interval,
		watched:  make(map[HWND][]func(bool)),
		focused:  make(map[HWND]bool),
		stop:     make(chan struct{}),
	}
	go w.loop()
	return w
}

// Watch invokes fn with true when hwnd gains foreground focus and false
// when it loses it. The initial state is captured on the next poll.
func (w *FocusWatcher) Watch(hwnd HWND, fn func(focused bool)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.watched[hwnd] = append(w.watched[hwnd], fn)
	if _, ok := w.focused[hwnd]; !ok {
		w.focused[hwnd] = hwnd == Foreground()
	}
}

// Stop terminates the polling loop.
func (w *FocusWatcher) Stop() {
	w.once.Do(func() { close(w.stop) })
}

func (w *FocusWatcher) loop() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
			w.poll(Foreground())
		}
	}
}

func (w *FocusWatcher) poll(fg HWND) {
	type transition struct {
		fns     []func(bool)
		focused bool
	}
	var fired []transition

	w.mu.Lock()
	for hwnd, fns := range w.watched {
		focused := hwnd == fg
		if focused == w.focused[hwnd] {
			continue
		}
		w.focused[hwnd] = focused
		fired = append(fired, transition{fns: fns, focused: focused})
	}
	w.mu.Unlock()

	// Callbacks run outside the lock so they may call back into Watch.
	for _, tr := range fired {
		for _, fn := range tr.fns {
			fn(tr.focused)
		}
	}
}
