package queries

import (
	"context"

	"uiflow/domain/core/aggregates"
	"uiflow/domain/core/entities"
	"uiflow/pkg/memo"
)

// GraphSource gives query handlers access to the graph being edited
type GraphSource interface {
	Graph() (*aggregates.FlowGraph, error)
}

// GetGraphViewQuery asks for the render-ready view of the open graph
type GetGraphViewQuery struct {
	EnabledOnly bool `json:"enabled_only"`
}

// Validate checks the query
func (q GetGraphViewQuery) Validate() error { return nil }

// GraphView is the render-ready state of a flow graph
type GraphView struct {
	Name              string     `json:"name"`
	Namespace         string     `json:"namespace"`
	LastModified      string     `json:"last_modified"`
	Dirty             bool       `json:"dirty"`
	RootNode          int        `json:"root_node"`
	Scroll            PointDTO   `json:"scroll"`
	WindowsWithLayout bool       `json:"windows_with_layout"`
	LayoutScale       float64    `json:"layout_scale"`
	Nodes             []NodeDTO  `json:"nodes"`
	Tags              []TagDTO   `json:"tags"`
	Metadata          ViewCounts `json:"metadata"`
}

// NodeDTO is a data transfer object for nodes
type NodeDTO struct {
	ID        int       `json:"id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Screen    string    `json:"screen,omitempty"`
	Enabled   bool      `json:"enabled"`
	Selected  bool      `json:"selected"`
	IsRoot    bool      `json:"is_root"`
	IsDefault bool      `json:"is_default"`
	Rect      RectDTO   `json:"rect"`
	Tags      []int     `json:"tags"`
	Links     []LinkDTO `json:"links"`
}

// LinkDTO is a data transfer object for links
type LinkDTO struct {
	Target    int    `json:"target"`
	OneWay    bool   `json:"one_way"`
	Component string `json:"component,omitempty"`
}

// TagDTO is a data transfer object for tags
type TagDTO struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Color   int    `json:"color"`
	Enabled bool   `json:"enabled"`
}

// RectDTO represents a node rectangle
type RectDTO struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PointDTO represents a canvas coordinate
type PointDTO struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ViewCounts summarizes the view
type ViewCounts struct {
	NodeCount      int `json:"node_count"`
	WindowCount    int `json:"window_count"`
	ContainerCount int `json:"container_count"`
	LinkCount      int `json:"link_count"`
	SelectedCount  int `json:"selected_count"`
}

// GetGraphViewHandler builds the graph view at most once per frame
type GetGraphViewHandler struct {
	source GraphSource
	cache  *memo.Cache
}

// NewGetGraphViewHandler creates a new handler instance
func NewGetGraphViewHandler(source GraphSource, cache *memo.Cache) *GetGraphViewHandler {
	return &GetGraphViewHandler{
		source: source,
		cache:  cache,
	}
}

// Handle executes the graph view query. Within one frame the same view is
// returned even if the graph changed; callers mutate the graph between
// frames.
func (h *GetGraphViewHandler) Handle(ctx context.Context, query GetGraphViewQuery) (*GraphView, error) {
	g, err := h.source.Graph()
	if err != nil {
		return nil, err
	}

	key := "graph_view:" + g.Name()
	if query.EnabledOnly {
		key += ":enabled"
	}
	return memo.ByFrame(h.cache, key, func() *GraphView {
		return BuildGraphView(g, query.EnabledOnly)
	}), nil
}

// BuildGraphView converts the graph into its view without caching
func BuildGraphView(g *aggregates.FlowGraph, enabledOnly bool) *GraphView {
	scroll := g.ScrollPosition()
	layout, scale := g.WindowsWithLayout()

	view := &GraphView{
		Name:              g.Name(),
		Namespace:         g.Namespace(),
		LastModified:      g.LastModified(),
		Dirty:             g.IsDirty(),
		RootNode:          int(g.RootNode()),
		Scroll:            PointDTO{X: scroll.X, Y: scroll.Y},
		WindowsWithLayout: layout,
		LayoutScale:       scale,
		Nodes:             []NodeDTO{},
		Tags:              []TagDTO{},
	}

	for _, n := range g.Nodes() {
		if enabledOnly && !n.IsEnabled() {
			continue
		}
		dto := toNodeDTO(g, n)
		view.Nodes = append(view.Nodes, dto)

		view.Metadata.NodeCount++
		view.Metadata.LinkCount += len(dto.Links)
		switch {
		case n.IsWindow():
			view.Metadata.WindowCount++
		case n.IsContainer():
			view.Metadata.ContainerCount++
		}
		if dto.Selected {
			view.Metadata.SelectedCount++
		}
	}

	for _, t := range g.Tags() {
		view.Tags = append(view.Tags, toTagDTO(t))
	}

	return view
}

func toNodeDTO(g *aggregates.FlowGraph, n *entities.Node) NodeDTO {
	rect := n.Rect().Normalized()
	dto := NodeDTO{
		ID:        int(n.ID()),
		Kind:      string(n.Kind()),
		Title:     n.Title(),
		Screen:    n.ScreenRef(),
		Enabled:   n.IsEnabled(),
		Selected:  g.IsSelected(n.ID()),
		IsRoot:    g.RootNode() == n.ID(),
		IsDefault: g.IsDefaultNode(n.ID()),
		Rect:      RectDTO{X: rect.X(), Y: rect.Y(), Width: rect.Width(), Height: rect.Height()},
		Tags:      []int{},
		Links:     []LinkDTO{},
	}
	for _, id := range n.TagIDs() {
		dto.Tags = append(dto.Tags, int(id))
	}
	for _, l := range n.Links() {
		dto.Links = append(dto.Links, LinkDTO{
			Target:    int(l.Target),
			OneWay:    l.OneWay,
			Component: string(l.Component),
		})
	}
	return dto
}

func toTagDTO(t *entities.Tag) TagDTO {
	return TagDTO{
		ID:      int(t.ID()),
		Title:   t.Title(),
		Color:   t.Color(),
		Enabled: t.IsEnabled(),
	}
}
