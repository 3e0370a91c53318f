package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"uiflow/application/ports"
	"uiflow/domain/config"
	"uiflow/domain/core/aggregates"
	"uiflow/domain/core/validators"
	pkgerrors "uiflow/pkg/errors"
)

// SessionOptions tunes an EditorSession
type SessionOptions struct {
	// ValidateOnSave runs the graph validator before every write and
	// refuses to save an inconsistent graph
	ValidateOnSave bool

	// Clock overrides the wall clock used by opened graphs
	Clock func() time.Time
}

// EditorSession owns the flow graph of one asset being edited. It loads
// the graph from the repository, writes it back when it has unsaved
// changes and publishes the domain events the graph recorded.
//
// Like the graph it owns, a session is used from a single goroutine.
type EditorSession struct {
	id           string
	repo         ports.GraphRepository
	publisher    ports.EventPublisher
	domainConfig *config.DomainConfig
	validator    *validators.GraphValidator
	options      SessionOptions
	logger       *zap.Logger

	graph *aggregates.FlowGraph
}

// NewEditorSession creates a session with no graph open
func NewEditorSession(
	repo ports.GraphRepository,
	publisher ports.EventPublisher,
	domainConfig *config.DomainConfig,
	logger *zap.Logger,
	options SessionOptions,
) *EditorSession {
	if domainConfig == nil {
		domainConfig = config.DefaultDomainConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.New().String()
	return &EditorSession{
		id:           id,
		repo:         repo,
		publisher:    publisher,
		domainConfig: domainConfig,
		validator:    validators.NewGraphValidator(domainConfig),
		options:      options,
		logger:       logger.With(zap.String("session", id)),
	}
}

// ID returns the session identifier used in logs
func (s *EditorSession) ID() string {
	return s.id
}

// Open loads the named asset, or starts an empty graph when nothing is
// stored under that name. Any previously open graph is replaced.
func (s *EditorSession) Open(ctx context.Context, asset string) (*aggregates.FlowGraph, error) {
	opts := s.graphOptions()

	snapshot, err := s.repo.Load(ctx, asset)
	switch {
	case pkgerrors.IsNotFound(err):
		g, err := aggregates.NewFlowGraphWithConfig(asset, s.domainConfig, opts...)
		if err != nil {
			return nil, err
		}
		s.logger.Info("Created new flow graph", zap.String("asset", asset))
		s.graph = g
		return g, nil
	case err != nil:
		s.logger.Error("Failed to load flow graph", zap.String("asset", asset), zap.Error(err))
		return nil, err
	}

	// the graph is saved under the name it was opened by
	snapshot.Name = asset
	g, err := aggregates.RestoreFlowGraph(snapshot, s.domainConfig, opts...)
	if err != nil {
		s.logger.Error("Stored flow graph is invalid", zap.String("asset", asset), zap.Error(err))
		return nil, pkgerrors.Wrapf(err, "restore %s", asset)
	}

	if issues := s.validator.Issues(g); issues.HasErrors() {
		s.logger.Warn("Loaded flow graph has inconsistencies",
			zap.String("asset", asset),
			zap.Any("issues", issues.ToMap()),
		)
	}

	s.logger.Info("Opened flow graph",
		zap.String("asset", asset),
		zap.Int("nodes", g.NodeCount()),
		zap.Int("tags", len(g.Tags())),
		zap.String("lastModified", g.LastModified()),
	)
	s.graph = g
	return g, nil
}

// Graph returns the open graph
func (s *EditorSession) Graph() (*aggregates.FlowGraph, error) {
	if s.graph == nil {
		return nil, pkgerrors.NewValidationError("no flow graph is open")
	}
	return s.graph, nil
}

// IsOpen reports whether a graph is open
func (s *EditorSession) IsOpen() bool {
	return s.graph != nil
}

// Save flushes the open graph and writes it when it has unsaved changes.
// It reports whether a write happened. A failed write reverts the flush,
// keeping the previous stamp and the graph dirty so the next Save retries it.
func (s *EditorSession) Save(ctx context.Context) (bool, error) {
	g, err := s.Graph()
	if err != nil {
		return false, err
	}
	if !g.IsDirty() {
		return false, nil
	}

	if s.options.ValidateOnSave {
		if err := s.validator.Validate(g); err != nil {
			s.logger.Warn("Refusing to save inconsistent flow graph",
				zap.String("asset", g.Name()),
				zap.Error(err),
			)
			return false, err
		}
	}

	cp := g.Checkpoint()
	g.Flush()
	if err := s.repo.Save(ctx, g.Snapshot()); err != nil {
		g.RevertFlush(cp)
		s.logger.Error("Failed to save flow graph", zap.String("asset", g.Name()), zap.Error(err))
		return false, err
	}

	s.publishEvents(ctx, g)

	s.logger.Info("Saved flow graph",
		zap.String("asset", g.Name()),
		zap.String("lastModified", g.LastModified()),
	)
	return true, nil
}

// Close drops the open graph. Unsaved changes are discarded unless
// the caller saved first; it reports whether any were dropped.
func (s *EditorSession) Close() bool {
	if s.graph == nil {
		return false
	}
	discarded := s.graph.IsDirty()
	if discarded {
		s.logger.Warn("Discarding unsaved flow graph changes", zap.String("asset", s.graph.Name()))
	}
	s.graph = nil
	return discarded
}

// Assets lists the stored graph names
func (s *EditorSession) Assets(ctx context.Context) ([]string, error) {
	return s.repo.List(ctx)
}

// publishEvents delivers and commits the graph's recorded events.
// A failed delivery is logged and does not fail the save.
func (s *EditorSession) publishEvents(ctx context.Context, g *aggregates.FlowGraph) {
	recorded := g.GetUncommittedEvents()
	if len(recorded) == 0 || s.publisher == nil {
		g.MarkEventsAsCommitted()
		return
	}

	if err := s.publisher.PublishBatch(ctx, recorded); err != nil {
		s.logger.Warn("Failed to publish domain events",
			zap.String("asset", g.Name()),
			zap.Int("count", len(recorded)),
			zap.Error(err),
		)
	}
	g.MarkEventsAsCommitted()
}

func (s *EditorSession) graphOptions() []aggregates.Option {
	if s.options.Clock == nil {
		return nil
	}
	return []aggregates.Option{aggregates.WithClock(s.options.Clock)}
}
