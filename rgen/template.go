package rgen

import (
	"crypto/md5"
	"fmt"
	"go/format"
	"os"
	"path"
	"path/filepath"
	"text/template"

	"github.com/valyala/bytebufferpool"
)

// OutputFileName is the name of the file written into each directory.
const OutputFileName = "0_routes_vgen.go"

var routesTemplate = template.Must(template.New(OutputFileName).Funcs(template.FuncMap{
	"HashIdent": func(s string) string {
		return fmt.Sprintf("ident%x", md5.Sum([]byte(s)))
	},
	"PathBase": path.Base,
}).Parse(`package {{.LocalPackage}}

// WARNING: This file was generated by pagerouter/rgen. Do not modify.

import (
	"path"
	"sort"

	pagerouter "{{.RouterImport}}"
{{if .Recursive}}{{range $k, $subdir := .Subdirs}}	{{HashIdent (printf "%s%s" $.PackageName $subdir.Path)}} "{{$.PackageName}}/{{$subdir.Path}}"
{{end}}{{end}})

// vgRouteViews is the generated route mappings for this package.
// The key is the path and the value is an instance of the component
// that should be rendered for it.
var vgRouteViews = map[string]pagerouter.View{
{{range .Files}}	"{{.Path}}": &{{.Struct}}{},
{{end}}
}

type vgroutes struct {
	prefix    string
	recursive bool
	clean     bool
	priority  int
}

func (r vgroutes) WithRecursive(v bool) vgroutes {
	r.recursive = v
	return r
}

func (r vgroutes) WithPrefix(v string) vgroutes {
	r.prefix = v
	return r
}

func (r vgroutes) WithClean(v bool) vgroutes {
	r.clean = v
	return r
}

func (r vgroutes) WithPriority(v int) vgroutes {
	r.priority = v
	return r
}

func (r vgroutes) Map() map[string]pagerouter.View {
	ret := make(map[string]pagerouter.View, len(vgRouteViews))
	for k, v := range vgRouteViews {
		key := r.prefix + k
		if r.clean {
			key = path.Clean(key)
		}
		ret[key] = v
	}
{{if .Recursive}}
	if r.recursive {
{{range $k, $subdir := .Subdirs}}		for k, v := range {{HashIdent (printf "%s%s" $.PackageName $subdir.Path)}}.
			MakeRoutes().
			WithClean(r.clean).
			WithRecursive(true).
			WithPrefix(r.prefix + "/{{PathBase $subdir.Path}}").
			Map() {
			if r.clean {
				k = path.Clean(k)
			}
			ret[k] = v
		}
{{end}}	}
{{end}}
	return ret
}

// Table returns the routes as exact-match entries ordered by path.
func (r vgroutes) Table() pagerouter.Table {
	m := r.Map()
	plist := make([]string, 0, len(m))
	for p := range m {
		plist = append(plist, p)
	}
	sort.Strings(plist)
	ret := make(pagerouter.Table, 0, len(plist))
	for _, p := range plist {
		e := &pagerouter.Exact{Path: p, View: m[p]}
		e.Priority = r.priority
		ret = append(ret, e)
	}
	return ret
}

// MakeRoutes returns the routes for this package and any sub-packages as applicable.
func MakeRoutes() vgroutes {
	return vgroutes{}
}
`))

// routeFile is one entry of the generated map.
type routeFile struct {
	Path   string // route path, e.g. "/page-a"
	Struct string // component type, e.g. "PageA"
}

// writeRoutes renders and writes the output file for d, then its sub-directories.
func (g *Generator) writeRoutes(d *dirInfo) error {

	localPackage := path.Base("/" + d.path)
	if d.path == "" {
		localPackage = filepath.Base(g.dir)
	}

	files := make([]routeFile, 0, len(d.fileNames))
	for _, fn := range d.fileNames {
		files = append(files, routeFile{Path: g.routePath(fn), Struct: structName(fn)})
	}

	data := map[string]interface{}{
		"RouterImport": g.importPath(),
		"LocalPackage": localPackage,
		"PackageName":  g.packageName,
		"Files":        files,
		"Subdirs":      d.subdirs,
		"Recursive":    g.recursive,
	}

	bb := bytebufferpool.Get()
	defer bytebufferpool.Put(bb)

	if err := routesTemplate.Execute(bb, data); err != nil {
		return err
	}

	outPath := filepath.Join(g.dir, filepath.FromSlash(d.path), OutputFileName)

	src, err := format.Source(bb.B)
	if err != nil {
		return fmt.Errorf("error formatting %q: %w", outPath, err)
	}

	if err := os.WriteFile(outPath, src, 0644); err != nil {
		return err
	}
	g.logf("wrote %s (%d routes)", outPath, len(files))

	if !g.recursive {
		return nil
	}

	for _, sub := range d.sortedSubdirs() {
		if err := g.writeRoutes(sub); err != nil {
			return fmt.Errorf("error in writeRoutes for %q: %w", sub.path, err)
		}
	}

	return nil
}
