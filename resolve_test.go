package pagerouter

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vugu/vugu"
)

// pageView is a stand-in page component.
type pageView struct {
	name string
}

func (p *pageView) Build(vgin *vugu.BuildIn) *vugu.BuildOut { return &vugu.BuildOut{} }

// otherRoute is a route kind the resolver does not know how to render.
type otherRoute struct {
	RouteOptions
}

func (otherRoute) MatchPath(path string) (Match, bool) { return Match{Path: path, Full: path}, true }

// brokenRoute panics while matching.
type brokenRoute struct {
	RouteOptions
}

func (brokenRoute) MatchPath(path string) (Match, bool) { panic("matcher broke") }

func TestResolve(t *testing.T) {

	home := &pageView{name: "home"}
	boom := errors.New("boom")

	var tlist = []struct {
		name    string
		routes  Table
		path    string
		outcome Outcome
		check   func(t *testing.T, res Resolution)
	}{
		{
			name:    "exact static view",
			routes:  Table{&Exact{Path: "/", View: home}},
			path:    "/",
			outcome: OutcomeView,
			check: func(t *testing.T, res Resolution) {
				assert.Same(t, home, res.View)
			},
		},
		{
			name:    "exact needs identical path",
			routes:  Table{&Exact{Path: "/a", View: home}},
			path:    "/a/",
			outcome: OutcomeNotFound,
		},
		{
			name:    "empty table",
			path:    "/",
			outcome: OutcomeNotFound,
		},
		{
			name:    "exact page func",
			routes:  Table{&Exact{Path: "/", Page: func() (Content, error) { return Show(home), nil }}},
			path:    "/",
			outcome: OutcomeView,
			check: func(t *testing.T, res Resolution) {
				assert.Same(t, home, res.View)
			},
		},
		{
			name: "pattern page func gets groups",
			routes: Table{&Pattern{
				Regexp: regexp.MustCompile(`^/user/(\d+)/(\w+)$`),
				Page: func(match string, groups ...string) (Content, error) {
					return Show(&pageView{name: match + "|" + groups[0] + "|" + groups[1]}), nil
				},
			}},
			path:    "/user/42/edit",
			outcome: OutcomeView,
			check: func(t *testing.T, res Resolution) {
				assert.Equal(t, "/user/42/edit|42|edit", res.View.(*pageView).name)
				assert.Equal(t, []string{"42", "edit"}, res.Match.Groups)
			},
		},
		{
			name:    "pattern without groups",
			routes:  Table{&Pattern{Regexp: regexp.MustCompile(`^/about$`), Page: func(match string, groups ...string) (Content, error) { return Show(&pageView{name: match}), nil }}},
			path:    "/about",
			outcome: OutcomeView,
			check: func(t *testing.T, res Resolution) {
				assert.Equal(t, "/about", res.View.(*pageView).name)
			},
		},
		{
			name:    "pattern with empty match text",
			routes:  Table{&Pattern{Regexp: regexp.MustCompile(`x*`), Page: func(match string, groups ...string) (Content, error) { return Show(home), nil }}},
			path:    "/abc",
			outcome: OutcomeError,
			check: func(t *testing.T, res Resolution) {
				assert.ErrorIs(t, res.Err, ErrNoMatchText)
			},
		},
		{
			name:    "nil regexp never matches",
			routes:  Table{&Pattern{View: home}},
			path:    "/",
			outcome: OutcomeNotFound,
		},
		{
			name:    "redirect wins over view",
			routes:  Table{&Exact{Path: "/", View: home, RouteOptions: RouteOptions{Redirect: "/login"}}},
			path:    "/",
			outcome: OutcomeRedirect,
			check: func(t *testing.T, res Resolution) {
				assert.Equal(t, "/login", res.Redirect)
				assert.Nil(t, res.View)
			},
		},
		{
			name:    "missing page",
			routes:  Table{&Exact{Path: "/"}},
			path:    "/",
			outcome: OutcomeMissingPage,
		},
		{
			name:    "page gives nil view",
			routes:  Table{&Exact{Path: "/", Page: func() (Content, error) { return Show(nil), nil }}},
			path:    "/",
			outcome: OutcomeMissingPage,
		},
		{
			name:    "page error",
			routes:  Table{&Exact{Path: "/", Page: func() (Content, error) { return Content{}, boom }}},
			path:    "/",
			outcome: OutcomeError,
			check: func(t *testing.T, res Resolution) {
				assert.ErrorIs(t, res.Err, boom)
				var re *ResolveError
				require.ErrorAs(t, res.Err, &re)
				assert.Equal(t, "/", re.Path)
			},
		},
		{
			name:    "page panic",
			routes:  Table{&Exact{Path: "/", Page: func() (Content, error) { panic(boom) }}},
			path:    "/",
			outcome: OutcomeError,
			check: func(t *testing.T, res Resolution) {
				assert.ErrorIs(t, res.Err, boom)
			},
		},
		{
			name:    "page panic with non-error value",
			routes:  Table{&Exact{Path: "/", Page: func() (Content, error) { panic("nope") }}},
			path:    "/",
			outcome: OutcomeError,
			check: func(t *testing.T, res Resolution) {
				assert.Contains(t, res.Err.Error(), "nope")
			},
		},
		{
			name: "condition panic",
			routes: Table{
				&Exact{Path: "/", View: home, RouteOptions: RouteOptions{Condition: func() bool { panic(boom) }}},
			},
			path:    "/",
			outcome: OutcomeError,
			check: func(t *testing.T, res Resolution) {
				assert.ErrorIs(t, res.Err, boom)
				var re *ResolveError
				require.ErrorAs(t, res.Err, &re)
				assert.Equal(t, "/", re.Path)
				assert.Nil(t, res.Route)
			},
		},
		{
			name:    "matcher panic",
			routes:  Table{brokenRoute{}, &Exact{Path: "/", View: home}},
			path:    "/",
			outcome: OutcomeError,
			check: func(t *testing.T, res Resolution) {
				var re *ResolveError
				require.ErrorAs(t, res.Err, &re)
				assert.Contains(t, re.Error(), "matcher broke")
			},
		},
		{
			name: "deferred page",
			routes: Table{&Exact{Path: "/", Page: func() (Content, error) {
				return Load(func(ctx context.Context) (View, error) { return home, nil }), nil
			}}},
			path:    "/",
			outcome: OutcomeLoading,
			check: func(t *testing.T, res Resolution) {
				require.NotNil(t, res.Load)
				v, err := res.Load(context.Background())
				assert.NoError(t, err)
				assert.Same(t, home, v)
			},
		},
		{
			name:    "unknown route kind",
			routes:  Table{otherRoute{}},
			path:    "/anything",
			outcome: OutcomeUnknown,
		},
		{
			name: "condition false skips route",
			routes: Table{
				&Exact{Path: "/", View: &pageView{name: "hidden"}, RouteOptions: RouteOptions{Priority: 5, Condition: func() bool { return false }}},
				&Exact{Path: "/", View: home},
			},
			path:    "/",
			outcome: OutcomeView,
			check: func(t *testing.T, res Resolution) {
				assert.Same(t, home, res.View)
			},
		},
		{
			name: "all conditions false",
			routes: Table{
				&Exact{Path: "/", View: home, RouteOptions: RouteOptions{Condition: func() bool { return false }}},
			},
			path:    "/",
			outcome: OutcomeNotFound,
		},
	}

	for _, ti := range tlist {
		t.Run(ti.name, func(t *testing.T) {
			res := Resolve(ti.routes, ti.path)
			assert.Equal(t, ti.outcome, res.Outcome, "outcome %v", res.Outcome)
			assert.Equal(t, ti.path, res.Path)
			if ti.check != nil {
				ti.check(t, res)
			}
		})
	}

}

func TestResolvePriority(t *testing.T) {

	low := &pageView{name: "low"}
	high := &pageView{name: "high"}

	routes := Table{
		&Exact{Path: "/a", View: low, RouteOptions: RouteOptions{Priority: 5}},
		&Pattern{Regexp: regexp.MustCompile(`^/a$`), View: high, RouteOptions: RouteOptions{Priority: 10}},
	}

	res := Resolve(routes, "/a")
	assert.Equal(t, OutcomeView, res.Outcome)
	assert.Same(t, high, res.View)

	// the caller's table is left alone
	assert.Same(t, low, routes[0].(*Exact).View)

}

func TestResolveUserExample(t *testing.T) {

	var gotID string
	routes := Table{
		&Exact{Path: "/", Page: func() (Content, error) { return Show(&pageView{name: "home"}), nil }},
		&Pattern{
			Regexp: regexp.MustCompile(`^/user/(\d+)$`),
			Page: func(full string, groups ...string) (Content, error) {
				gotID = groups[0]
				return Show(&pageView{name: "user"}), nil
			},
		},
	}

	res := Resolve(routes, "/user/42")
	assert.Equal(t, OutcomeView, res.Outcome)
	assert.Equal(t, "user", res.View.(*pageView).name)
	assert.Equal(t, "42", gotID)

}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "not-found", OutcomeNotFound.String())
	assert.Equal(t, "loading", OutcomeLoading.String())
	assert.Equal(t, "Outcome(99)", Outcome(99).String())
}
