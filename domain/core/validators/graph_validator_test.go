package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uiflow/domain/config"
	"uiflow/domain/core/aggregates"
	"uiflow/pkg/errors"
)

func restore(t *testing.T, s *aggregates.Snapshot) *aggregates.FlowGraph {
	t.Helper()
	g, err := aggregates.RestoreFlowGraph(s, nil)
	require.NoError(t, err)
	return g
}

func TestGraphValidator_ConsistentGraph(t *testing.T) {
	g, err := aggregates.NewFlowGraph("Main")
	require.NoError(t, err)
	a, err := g.CreateWindow()
	require.NoError(t, err)
	b, err := g.CreateWindow()
	require.NoError(t, err)
	require.NoError(t, g.Attach(a.ID(), b.ID(), false, "ok"))
	tag, err := g.NewTag("Menu")
	require.NoError(t, err)
	_, err = g.AddTag(a, tag)
	require.NoError(t, err)
	g.SetRootNode(a.ID())
	g.SetDefaultNodes(nil)

	v := NewGraphValidator(nil)

	assert.NoError(t, v.Validate(g))
	assert.False(t, v.Issues(g).HasErrors())
}

func TestGraphValidator_OneWayDetachOfMirror(t *testing.T) {
	g, err := aggregates.NewFlowGraph("Main")
	require.NoError(t, err)
	a, err := g.CreateWindow()
	require.NoError(t, err)
	b, err := g.CreateWindow()
	require.NoError(t, err)

	require.NoError(t, g.Attach(a.ID(), b.ID(), false, ""))
	require.True(t, g.Detach(b.ID(), a.ID(), true, ""))

	assert.NoError(t, NewGraphValidator(nil).Validate(g))
}

func TestGraphValidator_Issues(t *testing.T) {
	tests := []struct {
		name     string
		snapshot *aggregates.Snapshot
		cfg      *config.DomainConfig
		field    string
	}{
		{
			name: "dangling link",
			snapshot: &aggregates.Snapshot{Name: "Flow", Nodes: []aggregates.NodeSnapshot{
				{ID: 1, Kind: "window", Links: []aggregates.LinkSnapshot{{Target: 9, OneWay: true}}},
			}},
			field: "links",
		},
		{
			name: "missing reverse link",
			snapshot: &aggregates.Snapshot{Name: "Flow", Nodes: []aggregates.NodeSnapshot{
				{ID: 1, Kind: "window", Links: []aggregates.LinkSnapshot{{Target: 2}}},
				{ID: 2, Kind: "window"},
			}},
			field: "links",
		},
		{
			name: "self link",
			snapshot: &aggregates.Snapshot{Name: "Flow", Nodes: []aggregates.NodeSnapshot{
				{ID: 1, Kind: "window", Links: []aggregates.LinkSnapshot{{Target: 1, OneWay: true}}},
			}},
			field: "links",
		},
		{
			name: "unknown tag",
			snapshot: &aggregates.Snapshot{Name: "Flow", Nodes: []aggregates.NodeSnapshot{
				{ID: 1, Kind: "window", Tags: []int{4}},
			}},
			field: "tags",
		},
		{
			name: "too many tags",
			snapshot: &aggregates.Snapshot{
				Name: "Flow",
				Tags: []aggregates.TagSnapshot{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}},
				Nodes: []aggregates.NodeSnapshot{
					{ID: 1, Kind: "window", Tags: []int{1, 2}},
				},
			},
			cfg:   &config.DomainConfig{MaxTagsPerNode: 1, MaxTagTitleLength: 64},
			field: "tags",
		},
		{
			name:     "stale root",
			snapshot: &aggregates.Snapshot{Name: "Flow", RootNode: 3},
			field:    "root_node",
		},
		{
			name:     "stale default",
			snapshot: &aggregates.Snapshot{Name: "Flow", DefaultNodes: []int{2}},
			field:    "default_nodes",
		},
		{
			name: "too many nodes",
			snapshot: &aggregates.Snapshot{Name: "Flow", Nodes: []aggregates.NodeSnapshot{
				{ID: 1, Kind: "window"},
				{ID: 2, Kind: "container"},
			}},
			cfg:   &config.DomainConfig{MaxNodesPerGraph: 1, MaxTagTitleLength: 64},
			field: "nodes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := restore(t, tt.snapshot)
			v := NewGraphValidator(tt.cfg)

			issues := v.Issues(g)

			require.True(t, issues.HasErrors())
			assert.Contains(t, issues.ToMap(), tt.field)

			err := v.Validate(g)
			require.Error(t, err)
			assert.True(t, errors.IsValidation(err))
		})
	}
}

func TestGraphValidator_SelfLinksAllowed(t *testing.T) {
	g := restore(t, &aggregates.Snapshot{Name: "Flow", Nodes: []aggregates.NodeSnapshot{
		{ID: 1, Kind: "window", Links: []aggregates.LinkSnapshot{{Target: 1, OneWay: true}}},
	}})

	v := NewGraphValidator(config.DevelopmentDomainConfig())

	assert.NoError(t, v.Validate(g))
}

func TestGraphValidator_NilGraph(t *testing.T) {
	err := NewGraphValidator(nil).Validate(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "graph cannot be nil")
}
