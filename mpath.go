package pagerouter

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
)

// ErrMissingParam is returned by Expand when a template parameter has no value.
var ErrMissingParam = errors.New("missing param")

var errBadParamName = errors.New("bad param name")

// ParamPattern compiles a path template such as "/user/:id" into a regular
// expression that matches the whole path, with one named capture group per
// parameter.  It is meant for use as Pattern.Regexp.
func ParamPattern(tmpl string) (*regexp.Regexp, error) {
	mp, err := parseMpath(tmpl)
	if err != nil {
		return nil, err
	}
	return regexp.Compile(mp.regexpString())
}

// MustParamPattern panics where ParamPattern would return an error.
// Handy for route tables built in package level vars.
func MustParamPattern(tmpl string) *regexp.Regexp {
	re, err := ParamPattern(tmpl)
	if err != nil {
		panic(err)
	}
	return re
}

// Expand fills the parameters of a path template from v, i.e. "/user/:id" with
// id=42 gives "/user/42".  Values not used in the path are returned in rest so
// they can be sent as a query string.  A missing value gives ErrMissingParam
// and a "_" in its place.
func Expand(tmpl string, v url.Values) (p string, rest url.Values, err error) {
	mp, err := parseMpath(tmpl)
	if err != nil {
		return "", nil, err
	}
	return mp.merge(v)
}

// mpath is a path template split into static text and ":name" parameters,
// e.g. "/a/:b/c" is {"/a/", ":b", "/c"}.  Static parts always start with a slash.
type mpath []string

// parseMpath cleans p and splits it into an mpath.  A segment starting with
// ":" is a parameter and its name must be a valid capture group name.
func parseMpath(p string) (mpath, error) {

	p = path.Clean("/" + p)

	var (
		ret    mpath
		static strings.Builder
	)

	for _, seg := range strings.Split(p[1:], "/") {
		static.WriteByte('/')
		name, isParam := strings.CutPrefix(seg, ":")
		if !isParam {
			static.WriteString(seg)
			continue
		}
		if !validParamName(name) {
			return nil, fmt.Errorf("%w %q in %q", errBadParamName, seg, p)
		}
		ret = append(ret, static.String(), seg)
		static.Reset()
	}

	if static.Len() > 0 {
		ret = append(ret, static.String())
	}

	return ret, nil
}

func validParamName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c != '_' && (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

// String returns the template the mpath was parsed from, in its cleaned form.
func (mp mpath) String() string {
	return strings.Join(mp, "")
}

// regexpString returns an anchored expression for the path, parameters
// match a single path segment.
func (mp mpath) regexpString() string {
	var sb strings.Builder
	sb.WriteString("^")
	for _, part := range mp {
		if name, ok := strings.CutPrefix(part, ":"); ok {
			sb.WriteString("(?P<" + name + ">[^/]+)")
			continue
		}
		sb.WriteString(regexp.QuoteMeta(part))
	}
	sb.WriteString("$")
	return sb.String()
}

// merge substitutes the first value of each parameter from v.  Parameters with
// no value at all are written as "_" and give ErrMissingParam; "?name=" counts
// as a value.  rest holds the values of v that are not path parameters.
func (mp mpath) merge(v url.Values) (string, url.Values, error) {

	rest := make(url.Values, len(v))
	for k, vals := range v {
		rest[k] = vals
	}

	var (
		sb  strings.Builder
		err error
	)

	for _, part := range mp {
		name, isParam := strings.CutPrefix(part, ":")
		if !isParam {
			sb.WriteString(part)
			continue
		}
		vals := v[name]
		if len(vals) == 0 {
			err = ErrMissingParam
			sb.WriteString("_")
			continue
		}
		sb.WriteString(vals[0])
		delete(rest, name)
	}

	if len(rest) == 0 {
		rest = nil
	}

	return sb.String(), rest, err
}
