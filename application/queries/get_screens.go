package queries

import (
	"context"

	"uiflow/domain/core/entities"
)

// Screen scopes
const (
	ScreensAll     = "all"
	ScreensDefault = "default"
	ScreensActive  = "active"
)

// GetScreensQuery asks for the screens backing the graph's windows
type GetScreensQuery struct {
	Scope string `json:"scope" validate:"omitempty,oneof=all default active"`
}

// Validate checks the query
func (q GetScreensQuery) Validate() error {
	return validateQuery(q)
}

// GetScreensResult lists resolved screen names and the root screen
type GetScreensResult struct {
	Screens []string `json:"screens"`
	Root    string   `json:"root,omitempty"`
	HasRoot bool     `json:"has_root"`
}

// GetScreensHandler resolves windows through the rendering layer
type GetScreensHandler struct {
	source   GraphSource
	resolver entities.ScreenResolver
}

// NewGetScreensHandler creates a new handler instance
func NewGetScreensHandler(source GraphSource, resolver entities.ScreenResolver) *GetScreensHandler {
	return &GetScreensHandler{
		source:   source,
		resolver: resolver,
	}
}

// Handle executes the screens query
func (h *GetScreensHandler) Handle(ctx context.Context, query GetScreensQuery) (*GetScreensResult, error) {
	g, err := h.source.Graph()
	if err != nil {
		return nil, err
	}

	var screens []entities.Screen
	switch query.Scope {
	case ScreensDefault:
		screens = g.DefaultScreens(h.resolver)
	case ScreensActive:
		screens = g.AllScreens(h.resolver, func(n *entities.Node) bool { return n.IsEnabled() })
	default:
		screens = g.AllScreens(h.resolver, nil)
	}

	result := &GetScreensResult{Screens: make([]string, 0, len(screens))}
	for _, s := range screens {
		result.Screens = append(result.Screens, s.ScreenName())
	}
	if root, ok := g.RootScreen(h.resolver); ok {
		result.Root = root.ScreenName()
		result.HasRoot = true
	}
	return result, nil
}
