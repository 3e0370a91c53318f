package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTag(t *testing.T) {
	tag, err := NewTag(1, "  Menu ")
	require.NoError(t, err)
	assert.Equal(t, "Menu", tag.Title())
	assert.True(t, tag.IsEnabled())
	assert.Equal(t, 0, tag.Color())

	_, err = NewTag(1, "   ")
	assert.Error(t, err)

	_, err = NewTag(0, "Menu")
	assert.Error(t, err)
}

func TestTag_SameTitle(t *testing.T) {
	tag, err := NewTag(1, "Menu")
	require.NoError(t, err)

	assert.True(t, tag.SameTitle("menu"))
	assert.True(t, tag.SameTitle("MENU "))
	assert.False(t, tag.SameTitle("menus"))
}
