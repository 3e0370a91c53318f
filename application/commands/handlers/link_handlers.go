package handlers

import (
	"context"

	"go.uber.org/zap"

	"uiflow/application/commands"
	"uiflow/domain/core/valueobjects"
)

// AttachNodes links two nodes
func (h *GraphHandlers) AttachNodes(ctx context.Context, cmd commands.AttachNodesCommand) error {
	g, err := h.session.Graph()
	if err != nil {
		return err
	}

	return g.Attach(
		valueobjects.NodeID(cmd.SourceID),
		valueobjects.NodeID(cmd.TargetID),
		cmd.OneWay,
		valueobjects.ComponentRef(cmd.Component),
	)
}

// DetachNodes unlinks two nodes. Detaching a missing link is accepted.
func (h *GraphHandlers) DetachNodes(ctx context.Context, cmd commands.DetachNodesCommand) error {
	g, err := h.session.Graph()
	if err != nil {
		return err
	}

	removed := g.Detach(
		valueobjects.NodeID(cmd.SourceID),
		valueobjects.NodeID(cmd.TargetID),
		cmd.OneWay,
		valueobjects.ComponentRef(cmd.Component),
	)
	if !removed {
		h.logger.Debug("No link to detach",
			zap.Int("sourceID", cmd.SourceID),
			zap.Int("targetID", cmd.TargetID),
			zap.String("component", cmd.Component),
		)
	}
	return nil
}
