package aggregates

import (
	"uiflow/domain/core/entities"
)

// ActiveWindows returns the enabled non-container nodes. Default-link
// markers are included; they are not containers.
func (g *FlowGraph) ActiveWindows() []*entities.Node {
	return g.filter(func(n *entities.Node) bool {
		return !n.IsContainer() && n.IsEnabled()
	})
}

// ActiveContainers returns the enabled container nodes
func (g *FlowGraph) ActiveContainers() []*entities.Node {
	return g.filter(func(n *entities.Node) bool {
		return n.IsContainer() && n.IsEnabled()
	})
}

// AllScreens resolves every window node that passes the predicate to its
// screen. Default links, containers and unresolved windows are skipped.
func (g *FlowGraph) AllScreens(resolver entities.ScreenResolver, predicate entities.NodePredicate) []entities.Screen {
	screens := []entities.Screen{}
	if resolver == nil {
		return screens
	}

	for _, n := range g.nodes {
		if !n.IsWindow() {
			continue
		}
		if !predicate.Accept(n) {
			continue
		}
		screen, ok := resolver.ResolveScreen(n)
		if !ok || screen == nil {
			continue
		}
		screens = append(screens, screen)
	}

	return screens
}

// DefaultScreens is AllScreens restricted to the default entry ids
func (g *FlowGraph) DefaultScreens(resolver entities.ScreenResolver) []entities.Screen {
	return g.AllScreens(resolver, func(n *entities.Node) bool {
		return g.IsDefaultNode(n.ID())
	})
}

// RootScreen resolves the root node to its screen
func (g *FlowGraph) RootScreen(resolver entities.ScreenResolver) (entities.Screen, bool) {
	if resolver == nil {
		return nil, false
	}
	node, ok := g.Node(g.rootNode)
	if !ok {
		return nil, false
	}
	screen, ok := resolver.ResolveScreen(node)
	if !ok || screen == nil {
		return nil, false
	}
	return screen, true
}

func (g *FlowGraph) filter(keep func(*entities.Node) bool) []*entities.Node {
	out := []*entities.Node{}
	for _, n := range g.nodes {
		if keep(n) {
			out = append(out, n)
		}
	}
	return out
}
