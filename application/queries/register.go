package queries

import (
	"context"
	"fmt"

	"uiflow/application/ports"
	"uiflow/application/queries/bus"
	"uiflow/domain/core/entities"
	"uiflow/pkg/memo"
)

// Handlers groups the read side of an editor session
type Handlers struct {
	GraphView *GetGraphViewHandler
	Node      *GetNodeHandler
	Screens   *GetScreensHandler
	Assets    *ListAssetsHandler
}

// NewHandlers creates the query handlers
func NewHandlers(source GraphSource, repo ports.GraphRepository, resolver entities.ScreenResolver, cache *memo.Cache) *Handlers {
	return &Handlers{
		GraphView: NewGetGraphViewHandler(source, cache),
		Node:      NewGetNodeHandler(source),
		Screens:   NewGetScreensHandler(source, resolver),
		Assets:    NewListAssetsHandler(repo),
	}
}

// Register binds every handler to the bus. The asset listing is cached by
// the given middleware when it is not nil. Extra middleware wraps every
// handler, the first being outermost.
func (h *Handlers) Register(b *bus.QueryBus, caching *bus.CachingMiddleware, middlewares ...func(bus.QueryHandler) bus.QueryHandler) error {
	var assets bus.QueryHandler = typed(h.Assets.Handle)
	if caching != nil {
		assets = caching.Wrap(assets)
	}

	registrations := []struct {
		query   bus.Query
		handler bus.QueryHandler
	}{
		{GetGraphViewQuery{}, typed(h.GraphView.Handle)},
		{GetNodeQuery{}, typed(h.Node.Handle)},
		{GetScreensQuery{}, typed(h.Screens.Handle)},
		{ListAssetsQuery{}, assets},
	}
	for _, r := range registrations {
		handler := r.handler
		for i := len(middlewares) - 1; i >= 0; i-- {
			handler = middlewares[i](handler)
		}
		if err := b.Register(r.query, handler); err != nil {
			return err
		}
	}
	return nil
}

func typed[Q bus.Query, R any](handle func(context.Context, Q) (R, error)) bus.QueryHandler {
	return bus.QueryHandlerFunc(func(ctx context.Context, query bus.Query) (interface{}, error) {
		q, ok := query.(Q)
		if !ok {
			return nil, fmt.Errorf("unexpected query type %T", query)
		}
		return handle(ctx, q)
	})
}
