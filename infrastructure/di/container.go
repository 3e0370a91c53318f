package di

import (
	"context"

	"uiflow/application/commands/bus"
	"uiflow/application/ports"
	querybus "uiflow/application/queries/bus"
	"uiflow/application/services"
	domainconfig "uiflow/domain/config"
	"uiflow/infrastructure/config"
	"uiflow/infrastructure/messaging"
	"uiflow/pkg/memo"
	"uiflow/pkg/observability"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	DomainConfig *domainconfig.DomainConfig
	Logger       *zap.Logger
	GraphRepo    ports.GraphRepository
	EventBus     *messaging.LocalBus
	Session      *services.EditorSession
	Frames       *memo.FrameCounter
	Cache        *memo.Cache
	Metrics      *observability.Collector
	CommandBus   *bus.CommandBus
	QueryBus     *querybus.QueryBus
}

// Shutdown reports unsaved changes and flushes the logger. Unsaved changes
// are saved first when save is true.
func (c *Container) Shutdown(ctx context.Context, save bool) error {
	defer func() { _ = c.Logger.Sync() }()

	if save && c.Session.IsOpen() {
		if _, err := c.Session.Save(ctx); err != nil {
			return err
		}
	}
	c.Session.Close()
	return nil
}
