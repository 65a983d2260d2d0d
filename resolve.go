package pagerouter

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoMatchText is returned when a pattern route matched but produced no match text
// to hand to its page function.
var ErrNoMatchText = errors.New("pattern matched without match text")

// Outcome says what a Resolution wants rendered.
type Outcome int

const (
	OutcomeNotFound    Outcome = iota // no eligible route matched
	OutcomeView                       // render Resolution.View
	OutcomeLoading                    // page is deferred, show a loading view and call Resolution.Load
	OutcomeRedirect                   // send the browser to Resolution.Redirect
	OutcomeMissingPage                // route has no view or page, or the page gave no view
	OutcomeUnknown                    // route kind cannot be rendered
	OutcomeError                      // page function failed, see Resolution.Err
)

var outcomeNames = [...]string{
	OutcomeNotFound:    "not-found",
	OutcomeView:        "view",
	OutcomeLoading:     "loading",
	OutcomeRedirect:    "redirect",
	OutcomeMissingPage: "missing-page",
	OutcomeUnknown:     "unknown",
	OutcomeError:       "error",
}

func (o Outcome) String() string {
	if o >= 0 && int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Resolution is the result of resolving a path against a Table.
type Resolution struct {
	Outcome  Outcome
	Path     string
	Route    Route // nil for OutcomeNotFound
	Match    Match
	View     View   // set for OutcomeView
	Redirect string // set for OutcomeRedirect
	Err      error  // set for OutcomeError

	// Load produces the view for OutcomeLoading.
	Load func(ctx context.Context) (View, error)
}

// ResolveError is the error given when a page function fails.
type ResolveError struct {
	Path string
	Err  error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("resolving page for %q: %v", e.Path, e.Err)
}

func (e *ResolveError) Unwrap() error { return e.Err }

// Resolve selects the route for path and works out what to render.
// The table is sorted by priority first.  Resolve does not touch history;
// redirects and deferred loads are left to the caller.  A panic in a matcher,
// condition or page function becomes an OutcomeError.
func Resolve(t Table, path string) (res Resolution) {

	defer func() {
		if p := recover(); p != nil {
			res = Resolution{
				Outcome: OutcomeError,
				Path:    path,
				Err:     &ResolveError{Path: path, Err: panicError(p)},
			}
		}
	}()

	rt, m, ok := t.Sorted().first(path)
	if !ok {
		return Resolution{Outcome: OutcomeNotFound, Path: path}
	}

	res = Resolution{Path: path, Route: rt, Match: m}

	if target := rt.Options().Redirect; target != "" {
		res.Outcome = OutcomeRedirect
		res.Redirect = target
		return res
	}

	c, err := callPage(rt, m)
	if err != nil {
		res.Outcome = OutcomeError
		res.Err = &ResolveError{Path: path, Err: err}
		return res
	}

	switch {
	case c.unknown:
		res.Outcome = OutcomeUnknown
	case c.load != nil:
		res.Outcome = OutcomeLoading
		res.Load = c.load
	case c.view != nil:
		res.Outcome = OutcomeView
		res.View = c.view
	default:
		res.Outcome = OutcomeMissingPage
	}

	return res
}

// panicError turns a recovered value into an error, keeping error values wrapped.
func panicError(p interface{}) error {
	if e, ok := p.(error); ok {
		return fmt.Errorf("panic: %w", e)
	}
	return fmt.Errorf("panic: %v", p)
}

type pageResult struct {
	Content
	unknown bool
}

// callPage runs the page function of rt.
func callPage(rt Route, m Match) (pageResult, error) {

	switch r := rt.(type) {

	case *Exact:
		if r.Page == nil {
			return pageResult{Content: Show(r.View)}, nil
		}
		c, err := r.Page()
		return pageResult{Content: c}, err

	case *Pattern:
		if r.Page == nil {
			return pageResult{Content: Show(r.View)}, nil
		}
		if m.Full == "" && len(m.Groups) == 0 && m.Path != "" {
			return pageResult{}, ErrNoMatchText
		}
		c, err := r.Page(m.Full, m.Groups...)
		return pageResult{Content: c}, err

	}

	return pageResult{unknown: true}, nil
}
