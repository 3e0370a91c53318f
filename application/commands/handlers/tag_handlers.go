package handlers

import (
	"context"

	"uiflow/application/commands"
	"uiflow/domain/core/entities"
	"uiflow/domain/core/valueobjects"
	pkgerrors "uiflow/pkg/errors"
)

// TagNode tags a node and returns the registered tag it now references.
// When a tag with the same title exists the new one is discarded, color
// included.
func (h *GraphHandlers) TagNode(ctx context.Context, cmd commands.TagNodeCommand) (*entities.Tag, error) {
	g, err := h.session.Graph()
	if err != nil {
		return nil, err
	}

	node, ok := g.Node(valueobjects.NodeID(cmd.NodeID))
	if !ok {
		return nil, pkgerrors.NewNotFoundError("node").WithDetail("node_id", cmd.NodeID)
	}

	tag, err := g.NewTag(cmd.Title)
	if err != nil {
		return nil, err
	}
	resolved, err := g.AddTag(node, tag)
	if err != nil {
		return nil, err
	}
	if cmd.Color != nil && resolved == tag {
		g.SetTagColor(resolved.ID(), *cmd.Color)
	}
	return resolved, nil
}

// UntagNode drops a tag reference from a node
func (h *GraphHandlers) UntagNode(ctx context.Context, cmd commands.UntagNodeCommand) error {
	g, err := h.session.Graph()
	if err != nil {
		return err
	}

	node, ok := g.Node(valueobjects.NodeID(cmd.NodeID))
	if !ok {
		return pkgerrors.NewNotFoundError("node").WithDetail("node_id", cmd.NodeID)
	}
	tag, ok := g.Tag(valueobjects.TagID(cmd.TagID))
	if !ok {
		return pkgerrors.NewNotFoundError("tag").WithDetail("tag_id", cmd.TagID)
	}

	g.RemoveTag(node, tag)
	return nil
}
