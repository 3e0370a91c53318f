package queries

import (
	"context"
	"strings"

	"uiflow/application/ports"
	"uiflow/pkg/errors"
	"uiflow/pkg/utils"
)

// ListAssetsQuery asks for the stored flow graph names
type ListAssetsQuery struct {
	Prefix string `json:"prefix,omitempty" validate:"max=200"`
}

// Validate checks the query
func (q ListAssetsQuery) Validate() error {
	return validateQuery(q)
}

// ListAssetsHandler handles the ListAssetsQuery
type ListAssetsHandler struct {
	repo ports.GraphRepository
}

// NewListAssetsHandler creates a new handler instance
func NewListAssetsHandler(repo ports.GraphRepository) *ListAssetsHandler {
	return &ListAssetsHandler{repo: repo}
}

// Handle executes the list query
func (h *ListAssetsHandler) Handle(ctx context.Context, query ListAssetsQuery) ([]string, error) {
	names, err := h.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if query.Prefix == "" {
		return names, nil
	}

	filtered := []string{}
	for _, name := range names {
		if strings.HasPrefix(name, query.Prefix) {
			filtered = append(filtered, name)
		}
	}
	return filtered, nil
}

func validateQuery(q interface{}) error {
	if err := utils.ValidateStruct(q); err != nil {
		return errors.NewValidationError(err.Error())
	}
	return nil
}
