package aggregates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uiflow/domain/config"
	"uiflow/domain/core/entities"
	"uiflow/domain/core/valueobjects"
	pkgerrors "uiflow/pkg/errors"
)

func newTestTag(t *testing.T, g *FlowGraph, title string) *entities.Tag {
	t.Helper()
	tag, err := g.NewTag(title)
	require.NoError(t, err)
	return tag
}

func TestFlowGraph_AddTagDeduplicatesTitles(t *testing.T) {
	g := createTestGraph(t)
	nodes := createWindows(t, g, 2)
	a, b := nodes[0], nodes[1]

	first, err := g.AddTag(a, newTestTag(t, g, "Menu"))
	require.NoError(t, err)
	second, err := g.AddTag(b, newTestTag(t, g, "menu"))
	require.NoError(t, err)

	require.Len(t, g.Tags(), 1)
	assert.Same(t, first, second)
	assert.Equal(t, "Menu", second.Title(), "first registration keeps its casing")
	assert.Equal(t, []valueobjects.TagID{first.ID()}, a.TagIDs())
	assert.Equal(t, []valueobjects.TagID{first.ID()}, b.TagIDs())
}

func TestFlowGraph_AddTag(t *testing.T) {
	t.Run("distinct titles get distinct ids", func(t *testing.T) {
		g := createTestGraph(t)
		n := createWindows(t, g, 1)[0]

		menu, err := g.AddTag(n, newTestTag(t, g, "Menu"))
		require.NoError(t, err)
		hud, err := g.AddTag(n, newTestTag(t, g, "HUD"))
		require.NoError(t, err)

		assert.Equal(t, valueobjects.TagID(1), menu.ID())
		assert.Equal(t, valueobjects.TagID(2), hud.ID())
		assert.Equal(t, valueobjects.TagID(3), g.NextTagID())
		assert.Equal(t, []*entities.Tag{menu, hud}, g.TagsOf(n))
	})

	t.Run("adding twice keeps one reference", func(t *testing.T) {
		g := createTestGraph(t)
		n := createWindows(t, g, 1)[0]

		tag := newTestTag(t, g, "Menu")
		_, err := g.AddTag(n, tag)
		require.NoError(t, err)
		_, err = g.AddTag(n, tag)
		require.NoError(t, err)

		assert.Len(t, n.TagIDs(), 1)
	})

	t.Run("marks dirty", func(t *testing.T) {
		g := createTestGraph(t)
		n := createWindows(t, g, 1)[0]
		require.True(t, g.Flush())

		_, err := g.AddTag(n, newTestTag(t, g, "Menu"))
		require.NoError(t, err)

		assert.True(t, g.IsDirty())
	})

	tests := []struct {
		name    string
		setup   func(t *testing.T, g *FlowGraph) (*entities.Node, *entities.Tag)
		errType pkgerrors.ErrorType
	}{
		{
			name: "nil tag",
			setup: func(t *testing.T, g *FlowGraph) (*entities.Node, *entities.Tag) {
				return createWindows(t, g, 1)[0], nil
			},
			errType: pkgerrors.ErrorTypeValidation,
		},
		{
			name: "nil node",
			setup: func(t *testing.T, g *FlowGraph) (*entities.Node, *entities.Tag) {
				return nil, newTestTag(t, g, "Menu")
			},
			errType: pkgerrors.ErrorTypeValidation,
		},
		{
			name: "foreign node",
			setup: func(t *testing.T, g *FlowGraph) (*entities.Node, *entities.Tag) {
				other := createTestGraph(t)
				return createWindows(t, other, 1)[0], newTestTag(t, g, "Menu")
			},
			errType: pkgerrors.ErrorTypeValidation,
		},
		{
			name: "id clash with different title",
			setup: func(t *testing.T, g *FlowGraph) (*entities.Node, *entities.Tag) {
				n := createWindows(t, g, 1)[0]
				_, err := g.AddTag(n, newTestTag(t, g, "Menu"))
				require.NoError(t, err)
				clash, err := entities.NewTag(1, "HUD")
				require.NoError(t, err)
				return n, clash
			},
			errType: pkgerrors.ErrorTypeConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := createTestGraph(t)
			node, tag := tt.setup(t, g)

			_, err := g.AddTag(node, tag)

			require.Error(t, err)
			assert.True(t, pkgerrors.IsType(err, tt.errType), "got %v", err)
		})
	}
}

func TestFlowGraph_AddTagLimits(t *testing.T) {
	cfg := config.DefaultDomainConfig()
	cfg.MaxTagsPerNode = 1
	cfg.MaxTagTitleLength = 4
	g, err := NewFlowGraphWithConfig("Limited", cfg)
	require.NoError(t, err)
	n := createWindows(t, g, 1)[0]

	_, err = g.AddTag(n, newTestTag(t, g, "Overlong"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maximum length")
	assert.Empty(t, g.Tags())

	_, err = g.AddTag(n, newTestTag(t, g, "Menu"))
	require.NoError(t, err)

	_, err = g.AddTag(n, newTestTag(t, g, "HUD"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maximum tags reached")
	assert.Len(t, g.Tags(), 1, "rejected tag is not registered")
}

func TestFlowGraph_RemoveTag(t *testing.T) {
	g := createTestGraph(t)
	n := createWindows(t, g, 1)[0]
	tag, err := g.AddTag(n, newTestTag(t, g, "Menu"))
	require.NoError(t, err)
	require.True(t, g.Flush())

	g.RemoveTag(n, tag)

	assert.False(t, n.HasTag(tag.ID()))
	assert.True(t, g.IsDirty())
	registered, ok := g.Tag(tag.ID())
	require.True(t, ok, "registry keeps unreferenced tags")
	assert.Same(t, tag, registered)
}

func TestFlowGraph_TagLookup(t *testing.T) {
	g := createTestGraph(t)

	_, ok := g.Tag(1)
	assert.False(t, ok)
	assert.Equal(t, valueobjects.TagID(1), g.NextTagID())

	n := createWindows(t, g, 1)[0]
	tag, err := g.AddTag(n, newTestTag(t, g, "Menu"))
	require.NoError(t, err)

	assert.True(t, g.SetTagColor(tag.ID(), 5))
	assert.True(t, g.SetTagEnabled(tag.ID(), false))
	assert.False(t, g.SetTagColor(99, 5))
	assert.Equal(t, 5, tag.Color())
	assert.False(t, tag.IsEnabled())
}
