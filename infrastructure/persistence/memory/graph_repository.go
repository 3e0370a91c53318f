package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"uiflow/application/ports"
	"uiflow/domain/core/aggregates"
	pkgerrors "uiflow/pkg/errors"
)

// GraphRepository keeps flow graph snapshots in process memory.
// Snapshots are copied on the way in and out.
type GraphRepository struct {
	mu        sync.RWMutex
	snapshots map[string]*aggregates.Snapshot
}

var _ ports.GraphRepository = (*GraphRepository)(nil)

// NewGraphRepository creates an empty in-memory repository
func NewGraphRepository() *GraphRepository {
	return &GraphRepository{
		snapshots: make(map[string]*aggregates.Snapshot),
	}
}

// Load retrieves the snapshot stored under name
func (r *GraphRepository) Load(ctx context.Context, name string) (*aggregates.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, pkgerrors.NewStorageError("load", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	s, exists := r.snapshots[name]
	if !exists {
		return nil, pkgerrors.NewNotFoundError("flow graph").WithDetail("name", name)
	}
	return s.Clone(), nil
}

// Save stores a copy of the snapshot
func (r *GraphRepository) Save(ctx context.Context, snapshot *aggregates.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return pkgerrors.NewStorageError("save", err)
	}
	if snapshot == nil || strings.TrimSpace(snapshot.Name) == "" {
		return pkgerrors.NewValidationError("snapshot with a name required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.snapshots[snapshot.Name] = snapshot.Clone()
	return nil
}

// Exists checks if a snapshot is stored under name
func (r *GraphRepository) Exists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, pkgerrors.NewStorageError("exists", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.snapshots[name]
	return exists, nil
}

// Delete removes the snapshot stored under name
func (r *GraphRepository) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return pkgerrors.NewStorageError("delete", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.snapshots[name]; !exists {
		return pkgerrors.NewNotFoundError("flow graph").WithDetail("name", name)
	}
	delete(r.snapshots, name)
	return nil
}

// List returns the stored names in lexical order
func (r *GraphRepository) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, pkgerrors.NewStorageError("list", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.snapshots))
	for name := range r.snapshots {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
