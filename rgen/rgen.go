// Package rgen generates route tables for vugu component directories.
//
// Each directory processed gets a 0_routes_vgen.go file with a MakeRoutes
// function.  MakeRoutes().WithRecursive(true).Table() gives a pagerouter.Table
// with one exact route per component, e.g. index.vugu at "/" and page-a.vugu at
// "/page-a".
package rgen

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// RouterImportPath is the import path of the router package referenced by generated code.
const RouterImportPath = "github.com/vugu/pagerouter"

// New returns a new Generator instance.
func New() *Generator {
	return &Generator{}
}

// Generator writes a route table for the components in a directory (and optionally sub-directories).
type Generator struct {
	dir          string                           // starting directory
	recursive    bool                             // if true we will descend into directories
	packageName  string                           // fully qualified package name corresponding to dir
	routerImport string                           // import path of the router package
	pathFunc     func(fileName string) string     // derives the route path from a file name
	includeFunc  func(path, fileName string) bool // decides if a file gets a route
	logger       *slog.Logger                     // progress output, nil for none
}

// SetDir assigns the directory to start generating in.
func (g *Generator) SetDir(dir string) *Generator {
	g.dir = dir
	return g
}

// SetRecursive if passed true will enable the generator recursing
// into sub-directories.
func (g *Generator) SetRecursive(recursive bool) *Generator {
	g.recursive = recursive
	return g
}

// SetPackageName sets the fully qualified package name that corresponds
// with the directory set with SetDir.  If empty it is worked out from go.mod.
func (g *Generator) SetPackageName(packageName string) *Generator {
	g.packageName = packageName
	return g
}

// SetRouterImport overrides RouterImportPath in generated code.
func (g *Generator) SetRouterImport(importPath string) *Generator {
	g.routerImport = importPath
	return g
}

// SetPathFunc sets the function that turns a file name into a route path.
// If not set, DefaultPathFunc will be used.
func (g *Generator) SetPathFunc(f func(fileName string) string) *Generator {
	g.pathFunc = f
	return g
}

// SetIncludeFunc sets the function which determines which files get a route.
// It is passed the directory relative to the one given to SetDir ("" for that
// directory itself, "b/c" for files in /a/b/c given SetDir("/a")) and the base file name.
func (g *Generator) SetIncludeFunc(f func(path, fileName string) bool) *Generator {
	g.includeFunc = f
	return g
}

// SetLogger makes the generator report each file it writes.
func (g *Generator) SetLogger(l *slog.Logger) *Generator {
	g.logger = l
	return g
}

// DefaultPathFunc will return the fileName with any suffix removed and a slash prepended.
// E.g. file name "example.vugu" will return "/example".  The special case of index.vugu
// will return "/".
func DefaultPathFunc(fileName string) string {
	if fileName == "index.vugu" {
		return "/"
	}
	return "/" + strings.TrimSuffix(fileName, path.Ext(fileName))
}

// DefaultIncludeFunc will return true for any file which ends with .vugu.
func DefaultIncludeFunc(path, fileName string) bool {
	return strings.HasSuffix(fileName, ".vugu")
}

// Generate does the route generation.
func (g *Generator) Generate() error {

	dir, err := filepath.Abs(g.dir)
	if err != nil {
		return err
	}
	g.dir = dir

	if g.packageName == "" {
		g.packageName, err = guessImportPath(dir)
		if err != nil {
			return err
		}
	}

	d, err := g.readDir(g.dir)
	if err != nil {
		return err
	}

	return g.writeRoutes(d)
}

// dirInfo is what was found in one directory.
type dirInfo struct {
	path      string              // slash separated, relative to g.dir
	fileNames []string            // included files, sorted
	subdirs   map[string]*dirInfo // non-empty children by base name
}

// Path returns the directory relative to the generator's starting directory.
func (d *dirInfo) Path() string { return d.path }

func (d *dirInfo) empty() bool {
	return len(d.fileNames) == 0 && len(d.subdirs) == 0
}

func (d *dirInfo) sortedSubdirs() []*dirInfo {
	names := make([]string, 0, len(d.subdirs))
	for n := range d.subdirs {
		names = append(names, n)
	}
	sort.Strings(names)
	ret := make([]*dirInfo, 0, len(names))
	for _, n := range names {
		ret = append(ret, d.subdirs[n])
	}
	return ret
}

func (g *Generator) readDir(dirPath string) (*dirInfo, error) {

	include := g.includeFunc
	if include == nil {
		include = DefaultIncludeFunc
	}

	rel, err := filepath.Rel(g.dir, dirPath)
	if err != nil {
		return nil, fmt.Errorf("relative path conversion failed: %w", err)
	}
	rel = strings.TrimPrefix(path.Clean("/"+filepath.ToSlash(rel)), "/")

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, err
	}

	ret := &dirInfo{path: rel}

	for _, e := range entries {

		if !e.IsDir() {
			if include(rel, e.Name()) {
				ret.fileNames = append(ret.fileNames, e.Name())
			}
			continue
		}

		if !g.recursive {
			continue
		}

		sub, err := g.readDir(filepath.Join(dirPath, e.Name()))
		if err != nil {
			return nil, err
		}
		if sub.empty() {
			continue
		}
		if ret.subdirs == nil {
			ret.subdirs = make(map[string]*dirInfo)
		}
		ret.subdirs[e.Name()] = sub
	}

	sort.Strings(ret.fileNames)

	return ret, nil
}

func (g *Generator) routePath(fileName string) string {
	if g.pathFunc != nil {
		return g.pathFunc(fileName)
	}
	return DefaultPathFunc(fileName)
}

func (g *Generator) importPath() string {
	if g.routerImport != "" {
		return g.routerImport
	}
	return RouterImportPath
}

func (g *Generator) logf(format string, args ...interface{}) {
	if g.logger != nil {
		g.logger.Info(fmt.Sprintf(format, args...))
	}
}

// structName transforms a file name into a Go type name the same way vugu does,
// e.g. "page-a.vugu" becomes "PageA".
func structName(fileName string) string {
	base := strings.SplitN(fileName, ".", 2)[0]
	var sb strings.Builder
	for _, part := range strings.Split(base, "-") {
		if part == "" {
			continue
		}
		sb.WriteString(strings.ToUpper(part[:1]))
		sb.WriteString(part[1:])
	}
	return sb.String()
}
