package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{name: "validation", err: NewValidationError("title is empty"), want: "VALIDATION: title is empty"},
		{name: "not found", err: NewNotFoundError("node"), want: "NOT_FOUND: node not found"},
		{name: "conflict", err: NewConflictError("tag exists"), want: "CONFLICT: tag exists"},
		{
			name: "storage with cause",
			err:  NewStorageError("decode", errors.New("bad yaml")),
			want: "STORAGE: decode failed: bad yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestPredicates(t *testing.T) {
	wrapped := fmt.Errorf("open: %w", NewNotFoundError("flow graph").WithDetail("name", "Hud"))

	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsValidation(wrapped))
	assert.False(t, IsStorage(wrapped))
	assert.False(t, IsNotFound(errors.New("plain")))
	assert.False(t, IsNotFound(nil))

	appErr, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, "Hud", appErr.Details["name"])
}

func TestWrapf(t *testing.T) {
	assert.NoError(t, Wrapf(nil, "restore %s", "Hud"))

	t.Run("keeps type of classified errors", func(t *testing.T) {
		orig := NewValidationError("bad rect")
		err := Wrapf(orig, "restore node %d", 3)

		assert.True(t, IsValidation(err))
		assert.Equal(t, "VALIDATION: restore node 3: bad rect", err.Error())
		assert.Equal(t, "bad rect", orig.Message)
	})

	t.Run("classifies plain errors as internal", func(t *testing.T) {
		cause := errors.New("boom")
		err := Wrapf(cause, "restore %s", "Hud")

		assert.True(t, IsType(err, ErrorTypeInternal))
		assert.ErrorIs(t, err, cause)
	})
}

func TestValidationErrors(t *testing.T) {
	issues := NewValidationErrors()
	assert.False(t, issues.HasErrors())
	assert.NoError(t, issues.ErrorOrNil())

	issues.Add("links", "node 1 links to itself")
	issues.Add("links", "node 2 links to missing node 9")
	issues.Add("", "graph is empty")

	assert.Equal(t, 3, issues.Len())
	assert.Equal(t, map[string][]string{
		"links":   {"node 1 links to itself", "node 2 links to missing node 9"},
		"general": {"graph is empty"},
	}, issues.ToMap())

	err := issues.ErrorOrNil()
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "validation failed: node 1 links to itself; ")
}
