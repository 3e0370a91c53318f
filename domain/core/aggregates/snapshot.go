package aggregates

import (
	"fmt"

	"uiflow/domain/config"
	"uiflow/domain/core/entities"
	"uiflow/domain/core/valueobjects"
	pkgerrors "uiflow/pkg/errors"
)

// Snapshot is the persisted state of a flow graph. The selection is
// transient and not part of it.
type Snapshot struct {
	Name              string         `json:"name" yaml:"name"`
	Namespace         string         `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	ForceRecompile    bool           `json:"force_recompile,omitempty" yaml:"force_recompile,omitempty"`
	LastModified      string         `json:"last_modified" yaml:"last_modified"`
	RootNode          int            `json:"root_node" yaml:"root_node"`
	DefaultNodes      []int          `json:"default_nodes" yaml:"default_nodes"`
	ScrollPosition    ScrollSnapshot `json:"scroll_position" yaml:"scroll_position"`
	WindowsWithLayout bool           `json:"windows_with_layout,omitempty" yaml:"windows_with_layout,omitempty"`
	LayoutScale       float64        `json:"layout_scale,omitempty" yaml:"layout_scale,omitempty"`
	Nodes             []NodeSnapshot `json:"nodes" yaml:"nodes"`
	Tags              []TagSnapshot  `json:"tags" yaml:"tags"`
}

// ScrollSnapshot is the persisted canvas scroll offset
type ScrollSnapshot struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// NodeSnapshot is the persisted state of one node
type NodeSnapshot struct {
	ID        int            `json:"id" yaml:"id"`
	Kind      string         `json:"kind" yaml:"kind"`
	Enabled   bool           `json:"enabled" yaml:"enabled"`
	Title     string         `json:"title,omitempty" yaml:"title,omitempty"`
	ScreenRef string         `json:"screen,omitempty" yaml:"screen,omitempty"`
	Rect      RectSnapshot   `json:"rect" yaml:"rect"`
	Tags      []int          `json:"tags,omitempty" yaml:"tags,omitempty"`
	Links     []LinkSnapshot `json:"links,omitempty" yaml:"links,omitempty"`
}

// RectSnapshot is a persisted rectangle
type RectSnapshot struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// LinkSnapshot is a persisted link
type LinkSnapshot struct {
	Target    int    `json:"target" yaml:"target"`
	OneWay    bool   `json:"one_way" yaml:"one_way"`
	Component string `json:"component,omitempty" yaml:"component,omitempty"`
}

// TagSnapshot is a persisted tag
type TagSnapshot struct {
	ID      int    `json:"id" yaml:"id"`
	Title   string `json:"title" yaml:"title"`
	Color   int    `json:"color" yaml:"color"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
}

// Clone returns a deep copy of the snapshot. Nil and empty slices are
// preserved as they are.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	c := *s
	c.DefaultNodes = cloneSlice(s.DefaultNodes)
	c.Tags = cloneSlice(s.Tags)
	c.Nodes = cloneSlice(s.Nodes)
	for i := range c.Nodes {
		c.Nodes[i].Tags = cloneSlice(c.Nodes[i].Tags)
		c.Nodes[i].Links = cloneSlice(c.Nodes[i].Links)
	}
	return &c
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

// Snapshot captures the persisted state of the graph
func (g *FlowGraph) Snapshot() *Snapshot {
	s := &Snapshot{
		Name:              g.name,
		Namespace:         g.namespace,
		ForceRecompile:    g.forceRecompile,
		LastModified:      g.lastModified,
		RootNode:          int(g.rootNode),
		DefaultNodes:      make([]int, 0, len(g.defaultNodes)),
		ScrollPosition:    ScrollSnapshot{X: g.scrollPosition.X, Y: g.scrollPosition.Y},
		WindowsWithLayout: g.layoutWindows,
		LayoutScale:       g.layoutScale,
		Nodes:             make([]NodeSnapshot, 0, len(g.nodes)),
		Tags:              make([]TagSnapshot, 0, g.tags.Len()),
	}

	for _, id := range g.defaultNodes {
		s.DefaultNodes = append(s.DefaultNodes, int(id))
	}

	for _, n := range g.nodes {
		state := n.State()
		ns := NodeSnapshot{
			ID:        int(n.ID()),
			Kind:      string(n.Kind()),
			Enabled:   state.Enabled,
			Title:     state.Title,
			ScreenRef: state.ScreenRef,
			Rect: RectSnapshot{
				X:      state.Rect.X(),
				Y:      state.Rect.Y(),
				Width:  state.Rect.Width(),
				Height: state.Rect.Height(),
			},
		}
		for _, tagID := range state.TagIDs {
			ns.Tags = append(ns.Tags, int(tagID))
		}
		for _, l := range state.Links {
			ns.Links = append(ns.Links, LinkSnapshot{
				Target:    int(l.Target),
				OneWay:    l.OneWay,
				Component: string(l.Component),
			})
		}
		s.Nodes = append(s.Nodes, ns)
	}

	for _, t := range g.tags.All() {
		s.Tags = append(s.Tags, TagSnapshot{
			ID:      int(t.ID()),
			Title:   t.Title(),
			Color:   t.Color(),
			Enabled: t.IsEnabled(),
		})
	}

	return s
}

// RestoreFlowGraph rebuilds a graph from persisted state. The restored
// graph is clean, has an empty selection and gets its namespace derived
// from the asset name when none was stored. Duplicate node or tag ids,
// duplicate tag titles and invalid kinds are rejected.
func RestoreFlowGraph(s *Snapshot, cfg *config.DomainConfig, opts ...Option) (*FlowGraph, error) {
	if s == nil {
		return nil, pkgerrors.NewValidationError("snapshot cannot be nil")
	}

	g, err := NewFlowGraphWithConfig(s.Name, cfg, opts...)
	if err != nil {
		return nil, err
	}

	g.namespace = s.Namespace
	g.applyDefaultNamespace()
	g.forceRecompile = s.ForceRecompile
	g.lastModified = s.LastModified
	if g.lastModified == "" {
		g.lastModified = neverModified
	}
	g.rootNode = valueobjects.NodeID(s.RootNode)
	g.scrollPosition = valueobjects.Vector2{X: s.ScrollPosition.X, Y: s.ScrollPosition.Y}
	g.layoutWindows = s.WindowsWithLayout
	g.layoutScale = s.LayoutScale

	defaults := make([]valueobjects.NodeID, 0, len(s.DefaultNodes))
	for _, id := range s.DefaultNodes {
		defaults = append(defaults, valueobjects.NodeID(id))
	}
	g.defaultNodes = uniqueIDs(defaults)

	for _, ts := range s.Tags {
		if err := g.restoreTag(ts); err != nil {
			return nil, err
		}
	}

	for _, ns := range s.Nodes {
		if err := g.restoreNode(ns); err != nil {
			return nil, err
		}
	}

	g.dirty = false
	return g, nil
}

func (g *FlowGraph) restoreTag(ts TagSnapshot) error {
	tag, err := entities.ReconstructTag(valueobjects.TagID(ts.ID), ts.Title, ts.Color, ts.Enabled)
	if err != nil {
		return pkgerrors.Wrapf(err, "restore tag %d", ts.ID)
	}
	if _, dup := g.tags.Get(tag.ID()); dup {
		return pkgerrors.NewConflictError(fmt.Sprintf("duplicate tag id %d", ts.ID))
	}
	if existing, dup := g.tags.FindByTitle(tag.Title()); dup {
		return pkgerrors.NewConflictError(
			fmt.Sprintf("tag %d duplicates title of tag %d", ts.ID, existing.ID()))
	}
	g.tags.register(tag)
	return nil
}

func (g *FlowGraph) restoreNode(ns NodeSnapshot) error {
	id := valueobjects.NodeID(ns.ID)
	if _, dup := g.Node(id); dup {
		return pkgerrors.NewConflictError(fmt.Sprintf("duplicate node id %d", ns.ID))
	}

	rect, err := valueobjects.NewRect(ns.Rect.X, ns.Rect.Y, ns.Rect.Width, ns.Rect.Height)
	if err != nil {
		return pkgerrors.Wrapf(err, "restore node %d", ns.ID)
	}

	state := entities.NodeState{
		Enabled:   ns.Enabled,
		Title:     ns.Title,
		ScreenRef: ns.ScreenRef,
		Rect:      rect,
		TagIDs:    make([]valueobjects.TagID, 0, len(ns.Tags)),
		Links:     make([]entities.Link, 0, len(ns.Links)),
	}
	for _, t := range ns.Tags {
		state.TagIDs = append(state.TagIDs, valueobjects.TagID(t))
	}
	for _, l := range ns.Links {
		state.Links = append(state.Links, entities.Link{
			Target:    valueobjects.NodeID(l.Target),
			OneWay:    l.OneWay,
			Component: valueobjects.ComponentRef(l.Component),
		})
	}

	node, err := entities.ReconstructNode(id, entities.NodeKind(ns.Kind), g, state)
	if err != nil {
		return pkgerrors.Wrapf(err, "restore node %d", ns.ID)
	}

	g.nodes = append(g.nodes, node)
	return nil
}
