package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"uiflow/application/ports"
	"uiflow/domain/core/aggregates"
	pkgerrors "uiflow/pkg/errors"
)

// Extension is appended to the asset name to form the file name
const Extension = ".flow.yaml"

// GraphRepository stores one YAML document per flow graph in a directory
type GraphRepository struct {
	dir    string
	logger *zap.Logger
}

var _ ports.GraphRepository = (*GraphRepository)(nil)

// NewGraphRepository creates a repository rooted at dir, creating the
// directory when it does not exist
func NewGraphRepository(dir string, logger *zap.Logger) (*GraphRepository, error) {
	if dir == "" {
		return nil, pkgerrors.NewValidationError("store directory required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, pkgerrors.NewStorageError("init", err)
	}
	return &GraphRepository{dir: dir, logger: logger}, nil
}

// Dir returns the storage directory
func (r *GraphRepository) Dir() string {
	return r.dir
}

// Load reads and decodes the snapshot of the named graph.
// Unknown fields are rejected.
func (r *GraphRepository) Load(ctx context.Context, name string) (*aggregates.Snapshot, error) {
	path, err := r.path(name)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, pkgerrors.NewStorageError("load", err)
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, pkgerrors.NewNotFoundError("flow graph").WithDetail("name", name)
	}
	if err != nil {
		return nil, pkgerrors.NewStorageError("load", err)
	}

	var snapshot aggregates.Snapshot
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&snapshot); err != nil {
		return nil, pkgerrors.NewStorageError("decode", err).WithDetail("path", path)
	}
	if snapshot.Name == "" {
		snapshot.Name = name
	}

	r.logger.Debug("Loaded flow graph",
		zap.String("name", name),
		zap.String("path", path),
		zap.Int("nodes", len(snapshot.Nodes)),
	)
	return &snapshot, nil
}

// Save encodes the snapshot and replaces the file atomically
func (r *GraphRepository) Save(ctx context.Context, snapshot *aggregates.Snapshot) error {
	if snapshot == nil {
		return pkgerrors.NewValidationError("snapshot cannot be nil")
	}
	path, err := r.path(snapshot.Name)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return pkgerrors.NewStorageError("save", err)
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(snapshot); err != nil {
		return pkgerrors.NewStorageError("encode", err)
	}
	if err := encoder.Close(); err != nil {
		return pkgerrors.NewStorageError("encode", err)
	}

	tmp, err := os.CreateTemp(r.dir, "."+snapshot.Name+"-*.tmp")
	if err != nil {
		return pkgerrors.NewStorageError("save", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return pkgerrors.NewStorageError("save", err)
	}
	if err := tmp.Close(); err != nil {
		return pkgerrors.NewStorageError("save", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return pkgerrors.NewStorageError("save", err)
	}

	r.logger.Debug("Saved flow graph",
		zap.String("name", snapshot.Name),
		zap.String("path", path),
		zap.Int("bytes", buf.Len()),
	)
	return nil
}

// Exists checks if a file is stored for the named graph
func (r *GraphRepository) Exists(ctx context.Context, name string) (bool, error) {
	path, err := r.path(name)
	if err != nil {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, pkgerrors.NewStorageError("exists", err)
	}

	_, err = os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, pkgerrors.NewStorageError("exists", err)
	}
}

// Delete removes the file of the named graph
func (r *GraphRepository) Delete(ctx context.Context, name string) error {
	path, err := r.path(name)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return pkgerrors.NewStorageError("delete", err)
	}

	err = os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return pkgerrors.NewNotFoundError("flow graph").WithDetail("name", name)
	}
	if err != nil {
		return pkgerrors.NewStorageError("delete", err)
	}
	return nil
}

// List returns the asset names stored in the directory in lexical order
func (r *GraphRepository) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, pkgerrors.NewStorageError("list", err)
	}

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, pkgerrors.NewStorageError("list", err)
	}

	names := []string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), Extension) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), Extension))
	}
	sort.Strings(names)
	return names, nil
}

// path maps an asset name to its file. Names that would escape the
// directory are rejected.
func (r *GraphRepository) path(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", pkgerrors.NewValidationError("graph name required")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." || strings.HasPrefix(name, ".") {
		return "", pkgerrors.NewValidationError(fmt.Sprintf("invalid graph name %q", name))
	}
	return filepath.Join(r.dir, name+Extension), nil
}
