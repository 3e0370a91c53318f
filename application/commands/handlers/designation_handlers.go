package handlers

import (
	"context"

	"uiflow/application/commands"
	"uiflow/domain/core/valueobjects"
)

// SetRootNode designates the root node
func (h *GraphHandlers) SetRootNode(ctx context.Context, cmd commands.SetRootNodeCommand) error {
	g, err := h.session.Graph()
	if err != nil {
		return err
	}
	g.SetRootNode(valueobjects.NodeID(cmd.NodeID))
	return nil
}

// SetDefaultNodes replaces the default entry nodes
func (h *GraphHandlers) SetDefaultNodes(ctx context.Context, cmd commands.SetDefaultNodesCommand) error {
	g, err := h.session.Graph()
	if err != nil {
		return err
	}
	g.SetDefaultNodes(toNodeIDs(cmd.NodeIDs))
	return nil
}

func toNodeIDs(ids []int) []valueobjects.NodeID {
	out := make([]valueobjects.NodeID, len(ids))
	for i, id := range ids {
		out[i] = valueobjects.NodeID(id)
	}
	return out
}
