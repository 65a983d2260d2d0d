package pagerouter

import (
	"log/slog"
	"sort"

	"github.com/vugu/vugu"
)

// Link renders an anchor that navigates inside the app when clicked instead of
// loading a new page.  The Navigator must be set (see Router.Wire), otherwise the
// click is left to the browser.
type Link struct {
	NavigatorRef

	Href        string            // target path, "#" if empty
	Class       string            // class attribute
	ActiveClass string            // added to Class when the Navigator's current path equals Href
	AttrMap     map[string]string // other attributes for the anchor
	Text        string            // text content, rendered before DefaultSlot

	DefaultSlot vugu.Builder

	// OnClick is called on every click, before navigation.
	OnClick func(event vugu.DOMEvent)

	Logger *slog.Logger
}

// pather is implemented by Navigators that know the current path.
type pather interface {
	Path() string
}

// Build implements vugu.Builder.
func (l *Link) Build(vgin *vugu.BuildIn) (vgout *vugu.BuildOut) {

	vgout = &vugu.BuildOut{}

	n := &vugu.VGNode{Type: vugu.ElementNode, Data: "a"}
	n.Attr = append(n.Attr, vugu.VGAttribute{Key: "href", Val: l.href()})
	if c := l.class(); c != "" {
		n.Attr = append(n.Attr, vugu.VGAttribute{Key: "class", Val: c})
	}

	keys := make([]string, 0, len(l.AttrMap))
	for k := range l.AttrMap {
		if k == "href" || k == "class" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		n.Attr = append(n.Attr, vugu.VGAttribute{Key: k, Val: l.AttrMap[k]})
	}

	n.DOMEventHandlerSpecList = append(n.DOMEventHandlerSpecList, vugu.DOMEventHandlerSpec{
		EventType: "click",
		Func:      func(event vugu.DOMEvent) { l.HandleClick(event) },
	})

	if l.Text != "" {
		n.AppendChild(&vugu.VGNode{Type: vugu.TextNode, Data: l.Text})
	}
	if l.DefaultSlot != nil {
		vgout.Components = append(vgout.Components, l.DefaultSlot)
		n.AppendChild(&vugu.VGNode{Component: l.DefaultSlot})
	}

	vgout.Out = append(vgout.Out, n)

	return vgout
}

// HandleClick intercepts the click and navigates to Href.
func (l *Link) HandleClick(event vugu.DOMEvent) {

	if l.Navigator == nil {
		l.logger().Debug("pagerouter: link has no navigator, leaving click to the browser", "href", l.Href)
		if l.OnClick != nil {
			l.OnClick(event)
		}
		return
	}

	event.PreventDefault()

	if l.OnClick != nil {
		l.OnClick(event)
	}

	l.Navigate(l.href())
}

func (l *Link) href() string {
	if l.Href == "" {
		return "#"
	}
	return l.Href
}

func (l *Link) class() string {
	if l.ActiveClass == "" || l.Navigator == nil {
		return l.Class
	}
	p, ok := l.Navigator.(pather)
	if !ok || p.Path() != l.Href {
		return l.Class
	}
	if l.Class == "" {
		return l.ActiveClass
	}
	return l.Class + " " + l.ActiveClass
}

func (l *Link) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.Default()
}
