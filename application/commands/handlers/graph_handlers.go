package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"uiflow/application/commands"
	"uiflow/application/commands/bus"
	"uiflow/domain/core/aggregates"
)

// Session gives handlers access to the graph being edited
type Session interface {
	Graph() (*aggregates.FlowGraph, error)
	Save(ctx context.Context) (bool, error)
}

// GraphHandlers executes editor commands against the session's graph
type GraphHandlers struct {
	session Session
	logger  *zap.Logger
}

// NewGraphHandlers creates the handler set
func NewGraphHandlers(session Session, logger *zap.Logger) *GraphHandlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GraphHandlers{
		session: session,
		logger:  logger,
	}
}

// Register binds every editor command to its handler
func (h *GraphHandlers) Register(b *bus.CommandBus) error {
	registrations := []struct {
		cmd     bus.Command
		handler bus.CommandHandler
	}{
		{commands.CreateNodeCommand{}, typed(func(ctx context.Context, c commands.CreateNodeCommand) error {
			_, err := h.CreateNode(ctx, c)
			return err
		})},
		{commands.DestroyNodeCommand{}, typed(h.DestroyNode)},
		{commands.AttachNodesCommand{}, typed(h.AttachNodes)},
		{commands.DetachNodesCommand{}, typed(h.DetachNodes)},
		{commands.TagNodeCommand{}, typed(func(ctx context.Context, c commands.TagNodeCommand) error {
			_, err := h.TagNode(ctx, c)
			return err
		})},
		{commands.UntagNodeCommand{}, typed(h.UntagNode)},
		{commands.SetRootNodeCommand{}, typed(h.SetRootNode)},
		{commands.SetDefaultNodesCommand{}, typed(h.SetDefaultNodes)},
		{commands.SelectNodesCommand{}, typed(h.SelectNodes)},
		{commands.SelectInRectCommand{}, typed(h.SelectInRect)},
		{commands.FlushGraphCommand{}, typed(h.FlushGraph)},
		{commands.SaveGraphCommand{}, typed(h.SaveGraph)},
	}

	for _, r := range registrations {
		if err := b.Register(r.cmd, r.handler); err != nil {
			return err
		}
	}
	return nil
}

// typed adapts a handler for one concrete command type
func typed[C bus.Command](fn func(ctx context.Context, cmd C) error) bus.CommandHandler {
	return bus.CommandHandlerFunc(func(ctx context.Context, cmd bus.Command) error {
		c, ok := cmd.(C)
		if !ok {
			return fmt.Errorf("unexpected command type %T", cmd)
		}
		return fn(ctx, c)
	})
}
