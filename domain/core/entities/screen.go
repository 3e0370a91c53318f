package entities

// Screen is a runtime screen handle produced by the rendering layer
type Screen interface {
	ScreenName() string
}

// ScreenResolver turns a window node into its backing screen
type ScreenResolver interface {
	ResolveScreen(node *Node) (Screen, bool)
}

// ScreenResolverFunc adapts a function to ScreenResolver
type ScreenResolverFunc func(node *Node) (Screen, bool)

// ResolveScreen implements ScreenResolver
func (f ScreenResolverFunc) ResolveScreen(node *Node) (Screen, bool) {
	return f(node)
}

// NodePredicate filters nodes in queries. A nil predicate accepts every node.
type NodePredicate func(node *Node) bool

// Accept applies the predicate
func (p NodePredicate) Accept(node *Node) bool {
	return p == nil || p(node)
}

// ScreenRef is a screen identified only by the node's screen reference
type ScreenRef string

// ScreenName implements Screen
func (s ScreenRef) ScreenName() string { return string(s) }

// RefResolver resolves a node to the screen named by its screen reference.
// Nodes without a reference are unresolved.
var RefResolver ScreenResolver = ScreenResolverFunc(func(node *Node) (Screen, bool) {
	if node == nil || node.ScreenRef() == "" {
		return nil, false
	}
	return ScreenRef(node.ScreenRef()), true
})
