package pagerouter

// Navigator is implemented by something that can move the app to a new path.
// *Router implements it.
type Navigator interface {
	Navigate(path string)
}

// NavigatorRef can be embedded in a component so a Navigator can be injected
// into it, see Router.Wire.
type NavigatorRef struct {
	Navigator // embed Navigator
}

// NavigatorSet implements NavigatorSetter.
func (h *NavigatorRef) NavigatorSet(o Navigator) {
	h.Navigator = o
}

// NavigatorSetter is implemented by components which accept a Navigator.
type NavigatorSetter interface {
	NavigatorSet(Navigator)
}
