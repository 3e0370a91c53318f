package di

import (
	"fmt"

	"uiflow/application/commands/bus"
	commands_handlers "uiflow/application/commands/handlers"
	"uiflow/application/ports"
	"uiflow/application/queries"
	querybus "uiflow/application/queries/bus"
	"uiflow/application/services"
	domainconfig "uiflow/domain/config"
	"uiflow/domain/core/entities"
	"uiflow/infrastructure/config"
	"uiflow/infrastructure/messaging"
	"uiflow/infrastructure/persistence/file"
	"uiflow/infrastructure/persistence/memory"
	"uiflow/pkg/memo"
	"uiflow/pkg/observability"

	"go.uber.org/zap"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	if cfg.LogLevel != "" {
		level, err := zap.ParseAtomicLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
		}
		zapCfg.Level = level
	}

	return zapCfg.Build()
}

// ProvideDomainConfig selects the domain rules for the environment
func ProvideDomainConfig(cfg *config.Config) (*domainconfig.DomainConfig, error) {
	domainCfg := domainconfig.LoadDomainConfig(cfg.Environment)
	if err := domainCfg.Validate(); err != nil {
		return nil, err
	}
	return domainCfg, nil
}

// ProvideGraphRepository creates the graph repository for the configured backend
func ProvideGraphRepository(cfg *config.Config, logger *zap.Logger) (ports.GraphRepository, error) {
	switch cfg.StoreBackend {
	case config.StoreBackendMemory:
		return memory.NewGraphRepository(), nil
	case config.StoreBackendFile:
		return file.NewGraphRepository(cfg.StoreDir, logger)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

// ProvideLocalBus creates the in-process event bus
func ProvideLocalBus(logger *zap.Logger) *messaging.LocalBus {
	return messaging.NewLocalBus(logger)
}

// ProvideEventPublisher exposes the local bus as the event publisher port
func ProvideEventPublisher(eventBus *messaging.LocalBus) ports.EventPublisher {
	return eventBus
}

// ProvideFrameCounter creates the frame source advanced by the editor loop
func ProvideFrameCounter() *memo.FrameCounter {
	return &memo.FrameCounter{}
}

// ProvideMemoCache creates the cache shared by the read side
func ProvideMemoCache(cfg *config.Config, frames *memo.FrameCounter) *memo.Cache {
	return memo.New(
		memo.WithTimeout(cfg.MemoTimeout),
		memo.WithFrameSource(frames),
	)
}

// ProvideMetrics creates the metrics collector and attaches it to the
// memo cache and the event bus
func ProvideMetrics(cache *memo.Cache, eventBus *messaging.LocalBus) (*observability.Collector, error) {
	metrics := observability.NewCollector()
	if err := metrics.WatchCache(cache); err != nil {
		return nil, err
	}
	eventBus.SubscribeAll(metrics.CountEvent)
	return metrics, nil
}

// ProvideSessionOptions maps feature flags onto session options
func ProvideSessionOptions(cfg *config.Config) services.SessionOptions {
	return services.SessionOptions{
		ValidateOnSave: cfg.ValidateOnSave,
	}
}

// ProvideEditorSession creates the editor session
func ProvideEditorSession(
	repo ports.GraphRepository,
	publisher ports.EventPublisher,
	domainCfg *domainconfig.DomainConfig,
	logger *zap.Logger,
	options services.SessionOptions,
) *services.EditorSession {
	return services.NewEditorSession(repo, publisher, domainCfg, logger, options)
}

// ProvideScreenResolver resolves windows by their screen reference
func ProvideScreenResolver() entities.ScreenResolver {
	return entities.RefResolver
}

// ProvideCommandBus creates the command bus with every graph command registered
func ProvideCommandBus(
	session *services.EditorSession,
	metrics *observability.Collector,
	logger *zap.Logger,
) (*bus.CommandBus, error) {
	commandBus := bus.NewCommandBus(
		bus.RecoveryMiddleware(logger),
		bus.MetricsMiddleware(metrics),
		bus.LoggingMiddleware(logger),
	)

	handlers := commands_handlers.NewGraphHandlers(session, logger)
	if err := handlers.Register(commandBus); err != nil {
		return nil, err
	}
	return commandBus, nil
}

// ProvideQueryHandlers creates the read-side handlers
func ProvideQueryHandlers(
	session *services.EditorSession,
	repo ports.GraphRepository,
	resolver entities.ScreenResolver,
	cache *memo.Cache,
) *queries.Handlers {
	return queries.NewHandlers(session, repo, resolver, cache)
}

// ProvideQueryBus creates the query bus with every query registered
func ProvideQueryBus(
	handlers *queries.Handlers,
	cache *memo.Cache,
	metrics *observability.Collector,
	cfg *config.Config,
	logger *zap.Logger,
) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus()

	caching := querybus.NewCachingMiddleware(cache, cfg.MemoTimeout)
	err := handlers.Register(queryBus, caching,
		querybus.MetricsMiddleware(metrics),
		querybus.LoggingMiddleware(logger, cfg.SlowQueryThreshold),
	)
	if err != nil {
		return nil, err
	}
	return queryBus, nil
}
