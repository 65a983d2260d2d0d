package pagerouter

import (
	"net/url"
	"strings"
	"sync"

	"github.com/vugu/vugu/js"
)

// BrowserHistory implements History on top of window.location and window.history.
// Outside of a js environment Path returns "/", Push and Assign do nothing and
// OnPop returns ErrNotBrowser.
type BrowserHistory struct {
	// UseFragment means the fragment part of the URL (after the "#") is used as
	// the path.  This can be useful for applications which are served statically
	// and cannot handle URL routing on the server side.
	// It should be set before the Router is initialized.
	UseFragment bool

	mu           sync.Mutex
	popStateFunc js.Func
}

// Path implements History.
func (h *BrowserHistory) Path() string {

	g := js.Global()
	if !g.Truthy() {
		return "/"
	}

	loc := g.Get("window").Get("location")

	if !h.UseFragment {
		return loc.Get("pathname").String()
	}

	frag := strings.TrimPrefix(loc.Get("hash").String(), "#")
	u, err := url.Parse(frag)
	if err != nil || u.Path == "" {
		return "/"
	}
	return u.Path
}

// Push implements History.
func (h *BrowserHistory) Push(path string) {

	g := js.Global()
	if !g.Truthy() {
		return
	}

	pv := path
	if h.UseFragment {
		pv = "#" + path
	}
	g.Get("window").Get("history").Call("pushState", nil, "", pv)
}

// Assign implements History.
func (h *BrowserHistory) Assign(href string) {

	g := js.Global()
	if !g.Truthy() {
		return
	}

	g.Get("window").Get("location").Set("href", href)
}

// OnPop implements History.  Only one listener may be registered at a time.
func (h *BrowserHistory) OnPop(f func()) (func(), error) {

	g := js.Global()
	if !g.Truthy() {
		return nil, ErrNotBrowser
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.popStateFunc.IsUndefined() {
		return nil, ErrListenerSet
	}

	jf := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		f()
		return nil
	})

	g.Get("window").Call("addEventListener", "popstate", jf)

	h.popStateFunc = jf

	return func() { _ = h.removePopStateListener() }, nil
}

func (h *BrowserHistory) removePopStateListener() error {

	g := js.Global()
	if !g.Truthy() {
		return ErrNotBrowser
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.popStateFunc.IsUndefined() {
		return ErrListenerNotSet
	}

	g.Get("window").Call("removeEventListener", "popstate", h.popStateFunc)

	h.popStateFunc.Release()
	h.popStateFunc = js.Func{}

	return nil
}
