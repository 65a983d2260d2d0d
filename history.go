package pagerouter

import (
	"errors"
	"sync"
)

var (
	// ErrNotBrowser is returned by BrowserHistory when not running in a js environment.
	ErrNotBrowser = errors.New("not in browser (js) environment")

	// ErrListenerSet is returned when a pop listener is already registered.
	ErrListenerSet = errors.New("popstate listener already set")

	// ErrListenerNotSet is returned when removing a pop listener that was never added.
	ErrListenerNotSet = errors.New("popstate listener not set")
)

// History is the Router's view of the browser location and history.
type History interface {
	// Path returns the current location path.
	Path() string

	// Push adds path to the history stack and makes it the current location
	// without loading a new page.
	Push(path string)

	// Assign sends the browser to href, loading a new page.
	Assign(href string)

	// OnPop registers f to be called when the user moves through history
	// (back/forward).  The returned func removes the registration.
	OnPop(f func()) (cancel func(), err error)
}

// MemoryHistory is a History kept entirely in memory.  It is useful for tests
// and for running a Router outside of a browser.  The zero value starts at "/".
type MemoryHistory struct {
	mu        sync.Mutex
	entries   []string
	idx       int
	assigned  []string
	listeners map[int]func()
	nextID    int
}

// NewMemoryHistory returns a MemoryHistory positioned at path.
func NewMemoryHistory(path string) *MemoryHistory {
	return &MemoryHistory{entries: []string{path}}
}

func (h *MemoryHistory) init() {
	if len(h.entries) == 0 {
		h.entries = []string{"/"}
	}
}

// Path implements History.
func (h *MemoryHistory) Path() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.init()
	return h.entries[h.idx]
}

// Push implements History.  Forward entries are discarded as a browser would.
func (h *MemoryHistory) Push(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.init()
	h.entries = append(h.entries[:h.idx+1], path)
	h.idx++
}

// Assign implements History.  The href is recorded and becomes the current path.
func (h *MemoryHistory) Assign(href string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.init()
	h.assigned = append(h.assigned, href)
	h.entries = append(h.entries[:h.idx+1], href)
	h.idx++
}

// Assigned returns every href passed to Assign, oldest first.
func (h *MemoryHistory) Assigned() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.assigned...)
}

// Entries returns the history stack, oldest first.
func (h *MemoryHistory) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.init()
	return append([]string(nil), h.entries...)
}

// OnPop implements History.
func (h *MemoryHistory) OnPop(f func()) (func(), error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.listeners == nil {
		h.listeners = make(map[int]func())
	}
	id := h.nextID
	h.nextID++
	h.listeners[id] = f
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.listeners, id)
	}, nil
}

// Back moves one entry back and notifies pop listeners.
// It returns false if already at the oldest entry.
func (h *MemoryHistory) Back() bool { return h.move(-1) }

// Forward moves one entry forward and notifies pop listeners.
// It returns false if already at the newest entry.
func (h *MemoryHistory) Forward() bool { return h.move(1) }

func (h *MemoryHistory) move(delta int) bool {
	h.mu.Lock()
	h.init()
	n := h.idx + delta
	if n < 0 || n >= len(h.entries) {
		h.mu.Unlock()
		return false
	}
	h.idx = n
	fl := make([]func(), 0, len(h.listeners))
	for _, f := range h.listeners {
		fl = append(fl, f)
	}
	h.mu.Unlock()

	for _, f := range fl {
		f()
	}
	return true
}
