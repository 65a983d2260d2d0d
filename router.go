package pagerouter

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/vugu/vugu"
)

// DefaultPopDelay is how long the Router waits after a history pop event
// before re-reading the browser location.
const DefaultPopDelay = 10 * time.Millisecond

// EventEnv is our view of a Vugu EventEnv
type EventEnv interface {
	Lock()         // acquire write lock
	UnlockOnly()   // release write lock
	UnlockRender() // release write lock and request re-render
}

// Router is a vugu component that renders the page for the current path.
//
// Each build resolves Routes against the current path and renders the
// matching route's view.  Deferred pages show the Loading view until they
// complete, after which the loaded view is kept until the next navigation.
type Router struct {
	Routes       Table  // routes to choose from, any order
	OverridePath string // if set this path is used instead of the browser location

	NotFound  View                 // shown when nothing matches, defaults to NotFoundView()
	Loading   View                 // shown while a deferred page loads, defaults to LoadingView()
	ErrorView func(err error) View // if set, shown when a page fails, otherwise NotFound is shown

	// DisableAutoReroute turns off re-evaluating the path on history pop events
	// (back/forward buttons).
	DisableAutoReroute bool

	// PopDelay overrides DefaultPopDelay.
	PopDelay time.Duration

	History  History      // defaults to a *BrowserHistory
	EventEnv EventEnv     // taken from the InitCtx if nil
	Logger   *slog.Logger // defaults to slog.Default()

	state  *renderState
	ctx    context.Context
	cancel context.CancelFunc
	unpop  func()

	timerMu  sync.Mutex
	popTimer *time.Timer

	defaults struct {
		notFound, loading, missing, unknown View
	}
}

// renderState is the per-instance state that survives between builds.
type renderState struct {
	pending     string // path requested by navigation and not yet pushed, "" if none
	navigated   bool   // history path wins over OverridePath after a navigation
	path        string // path used by the last build
	resolved    View   // result of a deferred page, rendered without matching
	loadErr     error  // failure of a deferred page
	loadingPath string // path whose load is in flight, "" if none
	gen         uint64 // bumped by each navigation
	redirected  string // path a redirect has already been issued for
}

// Init implements vugu's component lifecycle.
func (r *Router) Init(ctx vugu.InitCtx) {
	if r.EventEnv == nil {
		r.EventEnv = ctx.EventEnv()
	}
	if err := r.init(); err != nil {
		r.logger().Warn("pagerouter: auto reroute disabled", "err", err)
	}
}

// Destroy implements vugu's component lifecycle.
func (r *Router) Destroy(ctx vugu.DestroyCtx) {
	r.teardown()
}

func (r *Router) init() error {

	if r.History == nil {
		r.History = &BrowserHistory{}
	}
	if r.EventEnv == nil {
		r.EventEnv = &lockEnv{}
	}

	r.state = &renderState{}
	r.ctx, r.cancel = context.WithCancel(context.Background())

	if r.DisableAutoReroute {
		return nil
	}

	unpop, err := r.History.OnPop(r.onPop)
	if err != nil {
		return err
	}
	r.unpop = unpop

	return nil
}

func (r *Router) teardown() {

	if r.unpop != nil {
		r.unpop()
		r.unpop = nil
	}

	r.timerMu.Lock()
	if r.popTimer != nil {
		r.popTimer.Stop()
		r.popTimer = nil
	}
	r.timerMu.Unlock()

	if r.cancel != nil {
		r.cancel()
	}

	r.state = nil
}

// Build implements vugu.Builder.
func (r *Router) Build(vgin *vugu.BuildIn) (vgout *vugu.BuildOut) {

	vgout = &vugu.BuildOut{}

	v := r.view()
	if v == nil {
		return vgout
	}

	vgout.Components = append(vgout.Components, v)
	vgout.Out = append(vgout.Out, &vugu.VGNode{Component: v})

	return vgout
}

// Navigate requests that the Router show path.  The path is pushed into history
// on the next build.  Like other vugu event handling code it must be called with
// the EventEnv lock held.
func (r *Router) Navigate(path string) {
	st := r.renderState()
	st.pending = path
	st.resolved = nil
	st.loadErr = nil
	st.loadingPath = ""
	st.redirected = ""
	st.gen++
}

// Reroute re-reads the current history path and navigates to it.
// It must be called with the EventEnv lock held.
func (r *Router) Reroute() {
	r.Navigate(r.history().Path())
}

// Path returns the path used by the most recent build.
func (r *Router) Path() string {
	return r.renderState().path
}

// Wire gives c access to this Router if it implements NavigatorSetter.
// It can be used as a vugu wire function.
func (r *Router) Wire(c interface{}) {
	if s, ok := c.(NavigatorSetter); ok {
		s.NavigatorSet(r)
	}
}

// view works out what to render.  Returning nil means render nothing.
func (r *Router) view() View {

	st := r.renderState()

	if st.resolved != nil {
		return st.resolved
	}
	if st.loadErr != nil {
		return r.errorView(st.loadErr)
	}

	path := r.effectivePath(st)
	st.path = path

	res := Resolve(r.Routes, path)

	r.logger().Debug("pagerouter: resolved", "path", path, "outcome", res.Outcome)

	switch res.Outcome {

	case OutcomeView:
		return res.View

	case OutcomeLoading:
		if st.loadingPath != path {
			r.startLoad(st, path, res.Load)
		}
		return r.loadingView()

	case OutcomeRedirect:
		if st.redirected != path {
			st.redirected = path
			r.history().Assign(res.Redirect)
		}
		return nil

	case OutcomeMissingPage:
		return r.defaultView(&r.defaults.missing, MissingPageView)

	case OutcomeUnknown:
		return r.defaultView(&r.defaults.unknown, UnknownErrorView)

	case OutcomeError:
		r.logger().Warn("pagerouter: page failed", "path", path, "err", res.Err)
		return r.errorView(res.Err)

	}

	return r.notFoundView()
}

// effectivePath is the override path or the history path.  A pending
// navigation is pushed into history once and from then on the history path
// is used even if an override is set.
func (r *Router) effectivePath(st *renderState) string {

	h := r.history()

	if st.pending != "" {
		if st.pending != h.Path() {
			h.Push(st.pending)
		}
		st.pending = ""
		st.navigated = true
	}

	if r.OverridePath != "" && !st.navigated {
		return r.OverridePath
	}

	return h.Path()
}

// startLoad runs a deferred page on its own goroutine.  A result that arrives
// after another navigation, or after the path moved to another load, is dropped.
func (r *Router) startLoad(st *renderState, path string, load func(ctx context.Context) (View, error)) {

	if r.EventEnv == nil {
		r.EventEnv = &lockEnv{}
	}

	st.loadingPath = path
	gen := st.gen
	env := r.EventEnv
	ctx := r.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	go func() {

		v, err := runLoad(ctx, load)

		env.Lock()

		if r.state != st || st.gen != gen || st.loadingPath != path {
			env.UnlockOnly()
			r.logger().Debug("pagerouter: dropping stale page load", "path", path)
			return
		}

		st.loadingPath = ""
		switch {
		case err != nil:
			st.loadErr = &ResolveError{Path: path, Err: err}
			r.logger().Warn("pagerouter: page load failed", "path", path, "err", err)
		case v == nil:
			st.resolved = r.defaultView(&r.defaults.missing, MissingPageView)
		default:
			st.resolved = v
		}

		env.UnlockRender()
	}()
}

func runLoad(ctx context.Context, load func(ctx context.Context) (View, error)) (v View, err error) {
	defer func() {
		if p := recover(); p != nil {
			v, err = nil, panicError(p)
		}
	}()
	return load(ctx)
}

func (r *Router) onPop() {

	d := r.PopDelay
	if d <= 0 {
		d = DefaultPopDelay
	}

	r.timerMu.Lock()
	defer r.timerMu.Unlock()

	if r.popTimer != nil {
		r.popTimer.Stop()
	}
	r.popTimer = time.AfterFunc(d, func() {
		env := r.EventEnv
		env.Lock()
		if r.state == nil {
			env.UnlockOnly()
			return
		}
		r.Reroute()
		env.UnlockRender()
	})
}

func (r *Router) renderState() *renderState {
	if r.state == nil {
		r.state = &renderState{}
	}
	return r.state
}

func (r *Router) history() History {
	if r.History == nil {
		r.History = &BrowserHistory{}
	}
	return r.History
}

func (r *Router) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

func (r *Router) errorView(err error) View {
	if r.ErrorView != nil {
		if v := r.ErrorView(err); v != nil {
			return v
		}
	}
	return r.notFoundView()
}

func (r *Router) notFoundView() View {
	if r.NotFound != nil {
		return r.NotFound
	}
	return r.defaultView(&r.defaults.notFound, NotFoundView)
}

func (r *Router) loadingView() View {
	if r.Loading != nil {
		return r.Loading
	}
	return r.defaultView(&r.defaults.loading, LoadingView)
}

// defaultView keeps one instance of each default view so vugu sees the same
// component from build to build.
func (r *Router) defaultView(slot *View, mk func() View) View {
	if *slot == nil {
		*slot = mk()
	}
	return *slot
}

// lockEnv is the EventEnv used when the Router runs without vugu.
type lockEnv struct {
	sync.Mutex
}

func (e *lockEnv) UnlockOnly()   { e.Unlock() }
func (e *lockEnv) UnlockRender() { e.Unlock() }
