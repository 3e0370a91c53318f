package handlers

import (
	"context"

	"go.uber.org/zap"

	"uiflow/application/commands"
	"uiflow/domain/core/entities"
	"uiflow/domain/core/valueobjects"
)

// CreateNode appends a node and applies its optional title, screen and
// rectangle
func (h *GraphHandlers) CreateNode(ctx context.Context, cmd commands.CreateNodeCommand) (*entities.Node, error) {
	g, err := h.session.Graph()
	if err != nil {
		return nil, err
	}

	rect, err := valueobjects.NewRect(cmd.X, cmd.Y, cmd.Width, cmd.Height)
	if err != nil {
		return nil, err
	}

	node, err := g.CreateNode(entities.NodeKind(cmd.Kind))
	if err != nil {
		return nil, err
	}
	node.SetTitle(cmd.Title)
	node.SetScreenRef(cmd.ScreenRef)
	node.MoveTo(rect)

	h.logger.Debug("Node created",
		zap.Int("nodeID", int(node.ID())),
		zap.String("kind", cmd.Kind),
	)
	return node, nil
}

// DestroyNode removes a node. Unknown ids are accepted.
func (h *GraphHandlers) DestroyNode(ctx context.Context, cmd commands.DestroyNodeCommand) error {
	g, err := h.session.Graph()
	if err != nil {
		return err
	}

	id := valueobjects.NodeID(cmd.NodeID)
	if _, ok := g.Node(id); !ok {
		h.logger.Debug("Destroying unknown node", zap.Int("nodeID", cmd.NodeID))
	}
	g.DestroyNode(id)
	return nil
}
