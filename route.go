// Package pagerouter renders the page for the current browser path in vugu apps.
package pagerouter

import (
	"context"
	"regexp"

	"github.com/vugu/vugu"
)

// View is anything the Router can render.  Any vugu component will do.
type View = vugu.Builder

// Route is an entry in a route Table.  The two kinds the Router knows how to
// render pages for are *Exact and *Pattern.  Other implementations may match
// paths but will resolve to OutcomeUnknown.
type Route interface {
	// MatchPath reports whether the route applies to path and returns
	// the match details.
	MatchPath(path string) (Match, bool)

	// Options returns the redirect, priority and condition settings.
	Options() RouteOptions
}

// RouteOptions holds the settings shared by all route kinds.
type RouteOptions struct {
	Redirect  string      // if set the browser is sent here instead of rendering a page
	Priority  int         // higher wins when more than one route matches
	Condition func() bool // route is only eligible if nil or returns true
}

// Options implements Route.
func (o RouteOptions) Options() RouteOptions { return o }

func (o RouteOptions) eligible() bool {
	return o.Condition == nil || o.Condition()
}

// Exact is a route matched by literal path comparison.
type Exact struct {
	Path string

	// View is rendered as-is when Page is nil.
	View View

	// Page produces the view, either immediately or deferred.
	Page func() (Content, error)

	RouteOptions
}

// MatchPath implements Route.
func (r *Exact) MatchPath(path string) (Match, bool) {
	if r.Path != path {
		return Match{}, false
	}
	return Match{Path: path, Full: path}, true
}

// Pattern is a route matched by a regular expression.
type Pattern struct {
	Regexp *regexp.Regexp

	// View is rendered as-is when Page is nil.
	View View

	// Page is called with the full match followed by the capture groups in order.
	Page func(match string, groups ...string) (Content, error)

	RouteOptions
}

// MatchPath implements Route.
func (r *Pattern) MatchPath(path string) (Match, bool) {
	if r.Regexp == nil {
		return Match{}, false
	}
	sm := r.Regexp.FindStringSubmatch(path)
	if sm == nil {
		return Match{}, false
	}
	return Match{
		Path:   path,
		Full:   sm[0],
		Groups: sm[1:],
		names:  r.Regexp.SubexpNames()[1:],
	}, true
}

// Content is the result of a page function: an immediate view or one that loads later.
type Content struct {
	view View
	load func(ctx context.Context) (View, error)
}

// Show returns Content that renders v immediately.
func Show(v View) Content { return Content{view: v} }

// Load returns Content that is produced by fn.  The Router shows its loading
// view and calls fn on its own goroutine.
func Load(fn func(ctx context.Context) (View, error)) Content { return Content{load: fn} }

// Deferred reports whether the content loads later.
func (c Content) Deferred() bool { return c.load != nil }
