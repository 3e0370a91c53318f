package handlers

import (
	"context"

	"go.uber.org/zap"

	"uiflow/application/commands"
)

// FlushGraph clears the dirty flag without writing
func (h *GraphHandlers) FlushGraph(ctx context.Context, cmd commands.FlushGraphCommand) error {
	g, err := h.session.Graph()
	if err != nil {
		return err
	}
	if g.Flush() {
		h.logger.Debug("Graph flushed", zap.String("lastModified", g.LastModified()))
	}
	return nil
}

// SaveGraph writes the graph when it has unsaved changes
func (h *GraphHandlers) SaveGraph(ctx context.Context, cmd commands.SaveGraphCommand) error {
	_, err := h.session.Save(ctx)
	return err
}
