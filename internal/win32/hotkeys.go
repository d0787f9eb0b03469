//go:build windows

package win32

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	procRegisterHotKey     = user32.NewProc("RegisterHotKey")
	procUnregisterHotKey   = user32.NewProc("UnregisterHotKey")
	procGetMessageW        = user32.NewProc("GetMessageW")
	procPostThreadMessageW = user32.NewProc("PostThreadMessageW")
)

const (
	wmHotkey = 0x0312
	wmQuit   = 0x0012

	// wmApp wakes the message loop so it can drain pending
	// register/unregister requests. RegisterHotKey only works from the
	// thread that runs the message loop, so requests from other
	// goroutines are shipped there.
	wmApp = 0x8000
)

type wmMsg struct {
	hwnd    uintptr
	message uint32
	wParam  uintptr
	lParam  uintptr
	time    uint32
	pt      [2]int32
}

type hotkeyRequest struct {
	unregister bool
	id         int
	mod        uint32
	vk         uint32
	resp       chan error
}

// HotkeyRegistry binds global key combinations through RegisterHotKey.
// One dedicated OS thread owns every registration and runs the Windows
// message loop; callbacks fire on that thread.
type HotkeyRegistry struct {
	// opMu serializes whole Register/Unregister operations. mu guards the
	// maps and is held only briefly, so the loop thread's dispatch never
	// blocks behind an in-flight request round trip.
	opMu   sync.Mutex
	mu     sync.Mutex
	bound  map[string]int
	fns    map[int]func()
	nextID int

	threadID uint32
	requests chan hotkeyRequest
	ready    chan struct{}
}

// NewHotkeyRegistry starts the message-loop thread and returns once it is
// accepting requests.
func NewHotkeyRegistry() *HotkeyRegistry {
	r := &HotkeyRegistry{
		bound:    make(map[string]int),
		fns:      make(map[int]func()),
		nextID:   1,
		requests: make(chan hotkeyRequest, 8),
		ready:    make(chan struct{}),
	}
	go r.loop()
	<-r.ready
	return r
}

// Register parses combo (e.g. "Ctrl+Shift+Esc") and binds fn to it.
func (r *HotkeyRegistry) Register(combo string, fn func()) error {
	mod, vk, err := ParseAccelerator(combo)
	if err != nil {
		return err
	}

	r.opMu.Lock()
	defer r.opMu.Unlock()

	r.mu.Lock()
	if _, dup := r.bound[combo]; dup {
		r.mu.Unlock()
		return fmt.Errorf("hotkey %q is already registered", combo)
	}
	id := r.nextID
	r.nextID++
	r.mu.Unlock()

	if err := r.roundTrip(hotkeyRequest{id: id, mod: mod, vk: vk}); err != nil {
		return fmt.Errorf("failed to register hotkey %q: %w", combo, err)
	}

	r.mu.Lock()
	r.bound[combo] = id
	r.fns[id] = fn
	r.mu.Unlock()
	return nil
}

// Unregister releases combo.
func (r *HotkeyRegistry) Unregister(combo string) error {
	r.opMu.Lock()
	defer r.opMu.Unlock()

	r.mu.Lock()
	id, ok := r.bound[combo]
	r.mu.Unlock()
	if !ok {
		return fmt.Errorf("hotkey %q is not registered", combo)
	}

	if err := r.roundTrip(hotkeyRequest{unregister: true, id: id}); err != nil {
		return fmt.Errorf("failed to unregister hotkey %q: %w", combo, err)
	}

	r.mu.Lock()
	delete(r.bound, combo)
	delete(r.fns, id)
	r.mu.Unlock()
	return nil
}

// IsRegistered reports whether combo currently has a binding.
func (r *HotkeyRegistry) IsRegistered(combo string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.bound[combo]
	return ok, nil
}

// Close shuts down the message-loop thread, releasing all registrations.
func (r *HotkeyRegistry) Close() {
	procPostThreadMessageW.Call(uintptr(r.threadID), wmQuit, 0, 0)
}

// roundTrip ships a request to the loop thread and waits for its result.
// Caller holds opMu but not mu, so the loop thread stays free to dispatch
// while the request is in flight.
func (r *HotkeyRegistry) roundTrip(req hotkeyRequest) error {
	req.resp = make(chan error, 1)
	r.requests <- req
	procPostThreadMessageW.Call(uintptr(r.threadID), wmApp, 0, 0)
	return <-req.resp
}

func (r *HotkeyRegistry) loop() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	r.threadID = windows.GetCurrentThreadId()
	close(r.ready)

	var m wmMsg
	for {
		// GetMessageW blocks until a message arrives. Returns 0 on
		// WM_QUIT, -1 on error.
		ret, _, _ := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		if int32(ret) <= 0 {
			return
		}
		switch m.message {
		case wmApp:
			r.drainRequests()
		case wmHotkey:
			r.dispatch(int(m.wParam))
		}
	}
}

func (r *HotkeyRegistry) drainRequests() {
	for {
		select {
		case req := <-r.requests:
			req.resp <- r.apply(req)
		default:
			return
		}
	}
}

func (r *HotkeyRegistry) apply(req hotkeyRequest) error {
	if req.unregister {
		ret, _, err := procUnregisterHotKey.Call(0, uintptr(req.id))
		if ret == 0 {
			return fmt.Errorf("UnregisterHotKey(id=%d): %w", req.id, err)
		}
		return nil
	}
	ret, _, err := procRegisterHotKey.Call(0, uintptr(req.id), uintptr(req.mod|modNoRepeat), uintptr(req.vk))
	if ret == 0 {
		return fmt.Errorf("RegisterHotKey(mod=%#x, vk=%#x): %w", req.mod, req.vk, err)
	}
	return nil
}

func (r *HotkeyRegistry) dispatch(id int) {
	r.mu.Lock()
	fn := r.fns[id]
	r.mu.Unlock()
	if fn != nil {
		fn()
	}
}
