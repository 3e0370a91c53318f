package queries

import (
	"context"

	"uiflow/domain/core/valueobjects"
	"uiflow/pkg/errors"
)

// GetNodeQuery asks for one node of the open graph
type GetNodeQuery struct {
	NodeID int `json:"node_id" validate:"required,gt=0"`
}

// Validate checks the query
func (q GetNodeQuery) Validate() error {
	return validateQuery(q)
}

// GetNodeResult is the node with its resolved tags
type GetNodeResult struct {
	Node NodeDTO  `json:"node"`
	Tags []TagDTO `json:"tags"`
}

// GetNodeHandler handles the GetNodeQuery
type GetNodeHandler struct {
	source GraphSource
}

// NewGetNodeHandler creates a new handler instance
func NewGetNodeHandler(source GraphSource) *GetNodeHandler {
	return &GetNodeHandler{source: source}
}

// Handle executes the get node query
func (h *GetNodeHandler) Handle(ctx context.Context, query GetNodeQuery) (*GetNodeResult, error) {
	g, err := h.source.Graph()
	if err != nil {
		return nil, err
	}

	node, ok := g.Node(valueobjects.NodeID(query.NodeID))
	if !ok {
		return nil, errors.NewNotFoundError("node").WithDetail("node_id", query.NodeID)
	}

	result := &GetNodeResult{
		Node: toNodeDTO(g, node),
		Tags: []TagDTO{},
	}
	for _, t := range g.TagsOf(node) {
		result.Tags = append(result.Tags, toTagDTO(t))
	}
	return result, nil
}
