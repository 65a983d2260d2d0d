package rgen

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
)

var errNoModulePath = errors.New("unable to determine module path from go.mod")

// guessImportPath walks up from dir to the nearest go.mod and returns the
// import path dir would have in that module.
func guessImportPath(dir string) (string, error) {

	var rest []string

	for {
		b, err := os.ReadFile(filepath.Join(dir, "go.mod"))
		if err == nil {
			mod := modulePath(b)
			if mod == "" {
				return "", errNoModulePath
			}
			for i, j := 0, len(rest)-1; i < j; i, j = i+1, j-1 {
				rest[i], rest[j] = rest[j], rest[i]
			}
			return path.Join(append([]string{mod}, rest...)...), nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no go.mod file found, cannot guess import path")
		}
		rest = append(rest, filepath.Base(dir))
		dir = parent
	}

}

// modulePath returns the module path from go.mod contents, or an empty string
// if there is no usable module directive.
func modulePath(mod []byte) string {

	sc := bufio.NewScanner(bytes.NewReader(mod))
	for sc.Scan() {

		line := sc.Text()
		if i := strings.Index(line, "//"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)

		rest, ok := strings.CutPrefix(line, "module")
		if !ok || rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
			continue
		}
		rest = strings.TrimSpace(rest)
		if rest == "" {
			continue
		}

		if rest[0] == '"' || rest[0] == '`' {
			p, err := strconv.Unquote(rest)
			if err != nil {
				return ""
			}
			return p
		}

		return rest
	}

	return ""
}
