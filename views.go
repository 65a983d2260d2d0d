package pagerouter

import "github.com/vugu/vugu"

// nodeView is a View that renders a freshly made node tree on each build.
type nodeView struct {
	node func() *vugu.VGNode
}

func newNodeView(f func() *vugu.VGNode) *nodeView { return &nodeView{node: f} }

// Build implements vugu.Builder.
func (v *nodeView) Build(vgin *vugu.BuildIn) (vgout *vugu.BuildOut) {
	vgout = &vugu.BuildOut{}
	if n := v.node(); n != nil {
		vgout.Out = append(vgout.Out, n)
	}
	return vgout
}

func element(tag string, children ...*vugu.VGNode) *vugu.VGNode {
	n := &vugu.VGNode{Type: vugu.ElementNode, Data: tag}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

func text(s string) *vugu.VGNode {
	return &vugu.VGNode{Type: vugu.TextNode, Data: s}
}

// TextView returns a View that renders s as a text node.
func TextView(s string) View {
	return newNodeView(func() *vugu.VGNode { return text(s) })
}

// Empty returns a View that renders nothing.
func Empty() View {
	return newNodeView(func() *vugu.VGNode { return nil })
}

// NotFoundView is the default view used when no route matches.
func NotFoundView() View {
	return newNodeView(func() *vugu.VGNode {
		return element("div",
			element("h1", text("404")),
			element("p", text("The page could not be found.")),
		)
	})
}

// LoadingView is the default view shown while a deferred page loads.
func LoadingView() View {
	return TextView("Please wait while the page loads...")
}

// MissingPageView is shown when a matched route has neither a view nor a page function,
// or its page function produced no view.
func MissingPageView() View {
	return internalErrorView("Missing page")
}

// UnknownErrorView is shown when a matched route is of a kind the Router cannot render.
func UnknownErrorView() View {
	return internalErrorView("Unknown error")
}

func internalErrorView(msg string) View {
	return newNodeView(func() *vugu.VGNode {
		return element("div",
			element("p", text("Internal Error")),
			element("p", text(msg)),
		)
	})
}
