package errors

import (
	"fmt"
	"strings"
)

type fieldIssue struct {
	field   string
	message string
}

// ValidationErrors collects every broken rule found in one pass over a graph
type ValidationErrors struct {
	issues []fieldIssue
}

func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{}
}

// Add records message against field. An empty field files it under "general".
func (v *ValidationErrors) Add(field, message string) {
	if field == "" {
		field = "general"
	}
	v.issues = append(v.issues, fieldIssue{field: field, message: message})
}

func (v *ValidationErrors) HasErrors() bool { return len(v.issues) > 0 }

func (v *ValidationErrors) Len() int { return len(v.issues) }

func (v *ValidationErrors) Error() string {
	if len(v.issues) == 0 {
		return ""
	}
	messages := make([]string, len(v.issues))
	for i, issue := range v.issues {
		messages[i] = issue.message
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// ErrorOrNil folds the collection into a single VALIDATION AppError
func (v *ValidationErrors) ErrorOrNil() error {
	if !v.HasErrors() {
		return nil
	}
	return NewValidationError(v.Error()).WithDetail("fields", v.ToMap())
}

// ToMap groups messages by field in the order they were added
func (v *ValidationErrors) ToMap() map[string][]string {
	result := make(map[string][]string)
	for _, issue := range v.issues {
		result[issue.field] = append(result[issue.field], issue.message)
	}
	return result
}
