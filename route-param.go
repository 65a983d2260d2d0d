package pagerouter

// Match describes how a route matched a path.
type Match struct {
	Path   string   // path that was matched
	Full   string   // text of the full match (equal to Path for exact routes)
	Groups []string // capture groups in order, empty for exact routes

	names []string
}

// Named returns the value of the named capture group or an empty string if not found.
func (m Match) Named(name string) string {
	for i := range m.names {
		if m.names[i] == name && i < len(m.Groups) {
			return m.Groups[i]
		}
	}
	return ""
}
