package pagerouter

import "sort"

// Table is an ordered list of routes.  Callers do not need to keep it sorted.
type Table []Route

// Sorted returns the routes ordered by descending priority.  Routes of equal
// priority keep their relative order.  A table with fewer than two entries is
// returned unchanged.
func (t Table) Sorted() Table {
	if len(t) <= 1 {
		return t
	}
	ret := make(Table, len(t))
	copy(ret, t)
	sort.SliceStable(ret, func(i, j int) bool {
		return priorityOf(ret[i]) > priorityOf(ret[j])
	})
	return ret
}

// first returns the first eligible route that matches path.
// t must already be sorted.
func (t Table) first(path string) (Route, Match, bool) {
	for _, r := range t {
		if r == nil {
			continue
		}
		m, ok := r.MatchPath(path)
		if !ok {
			continue
		}
		if !r.Options().eligible() {
			continue
		}
		return r, m, true
	}
	return nil, Match{}, false
}

func priorityOf(r Route) int {
	if r == nil {
		return 0
	}
	return r.Options().Priority
}
