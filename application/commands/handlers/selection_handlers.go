package handlers

import (
	"context"

	"uiflow/application/commands"
	"uiflow/domain/core/entities"
	"uiflow/domain/core/valueobjects"
)

// SelectNodes replaces the selection by id
func (h *GraphHandlers) SelectNodes(ctx context.Context, cmd commands.SelectNodesCommand) error {
	g, err := h.session.Graph()
	if err != nil {
		return err
	}
	g.SelectByIDs(toNodeIDs(cmd.NodeIDs)...)
	return nil
}

// SelectInRect replaces the selection with the nodes under a rectangle
func (h *GraphHandlers) SelectInRect(ctx context.Context, cmd commands.SelectInRectCommand) error {
	g, err := h.session.Graph()
	if err != nil {
		return err
	}

	rect, err := valueobjects.NewRect(cmd.X, cmd.Y, cmd.Width, cmd.Height)
	if err != nil {
		return err
	}

	var predicate entities.NodePredicate
	if cmd.EnabledOnly {
		predicate = func(n *entities.Node) bool { return n.IsEnabled() }
	}
	g.SelectInRect(rect, predicate)
	return nil
}
