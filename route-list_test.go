package pagerouter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouteListSorted(t *testing.T) {

	assert := assert.New(t)

	mk := func(path string, prio int) *Exact {
		return &Exact{Path: path, RouteOptions: RouteOptions{Priority: prio}}
	}

	paths := func(tb Table) []string {
		ret := make([]string, 0, len(tb))
		for _, r := range tb {
			ret = append(ret, r.(*Exact).Path)
		}
		return ret
	}

	rl := Table{
		mk("/a", 0),
		mk("/b", 5),
		mk("/c", 0),
		mk("/d", 10),
		mk("/e", 5),
		mk("/f", -1),
		mk("/g", 0),
	}

	assert.Equal([]string{"/d", "/b", "/e", "/a", "/c", "/g", "/f"}, paths(rl.Sorted()))

	// input order untouched
	assert.Equal([]string{"/a", "/b", "/c", "/d", "/e", "/f", "/g"}, paths(rl))

	single := Table{mk("/x", 3)}
	assert.Equal(single, single.Sorted())

	assert.Empty(Table(nil).Sorted())

}

func TestRouteListFirst(t *testing.T) {

	assert := assert.New(t)

	calls := 0
	rl := Table{
		nil,
		&Exact{Path: "/x", RouteOptions: RouteOptions{Condition: func() bool { calls++; return true }}},
		&Exact{Path: "/y", RouteOptions: RouteOptions{Condition: func() bool { calls++; return true }}},
	}

	r, m, ok := rl.first("/y")
	assert.True(ok)
	assert.Equal("/y", r.(*Exact).Path)
	assert.Equal("/y", m.Full)
	// conditions are only checked for routes whose matcher matched
	assert.Equal(1, calls)

	_, _, ok = rl.first("/z")
	assert.False(ok)

}
