package ports

import (
	"context"

	"uiflow/domain/core/aggregates"
	"uiflow/domain/events"
)

// GraphRepository defines the interface for flow graph persistence.
// This is a port in hexagonal architecture - the domain doesn't know about the implementation.
// Graphs are stored as snapshots keyed by asset name.
type GraphRepository interface {
	// Load retrieves the snapshot stored under name.
	// Returns a NOT_FOUND error when nothing is stored.
	Load(ctx context.Context, name string) (*aggregates.Snapshot, error)

	// Save persists a snapshot (create or update) under snapshot.Name
	Save(ctx context.Context, snapshot *aggregates.Snapshot) error

	// Exists checks if a snapshot is stored under name
	Exists(ctx context.Context, name string) (bool, error)

	// Delete removes the snapshot stored under name
	Delete(ctx context.Context, name string) error

	// List returns the stored asset names in lexical order
	List(ctx context.Context) ([]string, error)
}

// EventPublisher delivers the domain events recorded by a graph
type EventPublisher interface {
	// Publish delivers a single event
	Publish(ctx context.Context, event events.DomainEvent) error

	// PublishBatch delivers events in order
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}
