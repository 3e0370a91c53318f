package entities

import (
	"fmt"
	"strings"

	"uiflow/domain/core/valueobjects"
	pkgerrors "uiflow/pkg/errors"
)

// Tag is a titled, colored label that nodes reference by id
type Tag struct {
	id      valueobjects.TagID
	title   string
	color   int
	enabled bool
}

// NewTag creates an enabled tag with the default color
func NewTag(id valueobjects.TagID, title string) (*Tag, error) {
	if id <= 0 {
		return nil, pkgerrors.NewValidationError(fmt.Sprintf("invalid tag id %d", id))
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, pkgerrors.NewValidationError("tag title cannot be empty")
	}

	return &Tag{
		id:      id,
		title:   title,
		color:   0,
		enabled: true,
	}, nil
}

// ReconstructTag rebuilds a tag from persisted state
func ReconstructTag(id valueobjects.TagID, title string, color int, enabled bool) (*Tag, error) {
	tag, err := NewTag(id, title)
	if err != nil {
		return nil, err
	}
	tag.color = color
	tag.enabled = enabled
	return tag, nil
}

// ID returns the tag's identifier
func (t *Tag) ID() valueobjects.TagID {
	return t.id
}

// Title returns the tag title
func (t *Tag) Title() string {
	return t.title
}

// Color returns the palette index of the tag
func (t *Tag) Color() int {
	return t.color
}

// SetColor changes the palette index
func (t *Tag) SetColor(color int) {
	t.color = color
}

// IsEnabled reports whether the tag is used for filtering
func (t *Tag) IsEnabled() bool {
	return t.enabled
}

// SetEnabled toggles the tag filter
func (t *Tag) SetEnabled(enabled bool) {
	t.enabled = enabled
}

// SameTitle compares titles ignoring case
func (t *Tag) SameTitle(title string) bool {
	return strings.EqualFold(t.title, strings.TrimSpace(title))
}
