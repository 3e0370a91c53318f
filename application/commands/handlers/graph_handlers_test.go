package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"uiflow/application/commands"
	"uiflow/application/commands/bus"
	"uiflow/domain/core/aggregates"
	"uiflow/domain/core/valueobjects"
	pkgerrors "uiflow/pkg/errors"
)

type fakeSession struct {
	graph   *aggregates.FlowGraph
	saves   int
	saveErr error
}

func (s *fakeSession) Graph() (*aggregates.FlowGraph, error) {
	if s.graph == nil {
		return nil, pkgerrors.NewValidationError("no flow graph is open")
	}
	return s.graph, nil
}

func (s *fakeSession) Save(context.Context) (bool, error) {
	if s.saveErr != nil {
		return false, s.saveErr
	}
	s.saves++
	return s.graph.Flush(), nil
}

func setup(t *testing.T) (*bus.CommandBus, *fakeSession) {
	t.Helper()
	g, err := aggregates.NewFlowGraph("Main")
	require.NoError(t, err)
	session := &fakeSession{graph: g}

	logger := zaptest.NewLogger(t)
	b := bus.NewCommandBus(bus.RecoveryMiddleware(logger), bus.LoggingMiddleware(logger))
	require.NoError(t, NewGraphHandlers(session, logger).Register(b))
	return b, session
}

func send(t *testing.T, b *bus.CommandBus, cmds ...bus.Command) {
	t.Helper()
	for _, cmd := range cmds {
		require.NoError(t, b.Send(context.Background(), cmd), "%T", cmd)
	}
}

func TestGraphHandlers_EditFlow(t *testing.T) {
	b, session := setup(t)
	g := session.graph

	send(t, b,
		commands.CreateNodeCommand{Kind: "window", Title: "Main menu", ScreenRef: "Screens/Main", Width: 100, Height: 50},
		commands.CreateNodeCommand{Kind: "window", Title: "Options", X: 200, Width: 100, Height: 50},
		commands.CreateNodeCommand{Kind: "container", Width: 400, Height: 400},
		commands.AttachNodesCommand{SourceID: 1, TargetID: 2},
		commands.AttachNodesCommand{SourceID: 3, TargetID: 1, OneWay: true, Component: "close"},
		commands.TagNodeCommand{NodeID: 1, Title: "Menu"},
		commands.TagNodeCommand{NodeID: 2, Title: "MENU"},
		commands.SetRootNodeCommand{NodeID: 1},
		commands.SetDefaultNodesCommand{NodeIDs: []int{2}},
		commands.SelectInRectCommand{X: 0, Y: 0, Width: 500, Height: 500},
	)

	require.Equal(t, 3, g.NodeCount())
	n, _ := g.Node(1)
	assert.Equal(t, "Main menu", n.Title())
	assert.Equal(t, "Screens/Main", n.ScreenRef())
	assert.True(t, g.AlreadyAttached(2, 1, ""))
	assert.True(t, g.AlreadyAttached(3, 1, "close"))
	assert.Len(t, g.Tags(), 1)
	assert.Equal(t, valueobjects.NodeID(1), g.RootNode())
	assert.Equal(t, []valueobjects.NodeID{2}, g.DefaultNodes())
	assert.Equal(t, []valueobjects.NodeID{1, 2}, g.Selected())

	send(t, b,
		commands.DetachNodesCommand{SourceID: 1, TargetID: 2},
		commands.UntagNodeCommand{NodeID: 2, TagID: 1},
		commands.DestroyNodeCommand{NodeID: 1},
		commands.SelectNodesCommand{NodeIDs: []int{2, 3}},
	)

	assert.False(t, g.AlreadyAttached(2, 1, ""))
	assert.False(t, g.AlreadyAttached(3, 1, ""))
	n, _ = g.Node(2)
	assert.Empty(t, n.TagIDs())
	assert.Len(t, g.Tags(), 1)
	assert.Equal(t, []valueobjects.NodeID{2}, g.Selected())

	send(t, b, commands.FlushGraphCommand{})
	assert.False(t, g.IsDirty())

	send(t, b, commands.SetRootNodeCommand{NodeID: 0}, commands.SaveGraphCommand{})
	assert.Equal(t, 1, session.saves)
	assert.False(t, g.IsDirty())
}

func TestGraphHandlers_TagColor(t *testing.T) {
	b, session := setup(t)
	color := 4

	send(t, b,
		commands.CreateNodeCommand{Kind: "window"},
		commands.TagNodeCommand{NodeID: 1, Title: "Hud", Color: &color},
	)

	tag, ok := session.graph.Tag(1)
	require.True(t, ok)
	assert.Equal(t, 4, tag.Color())

	recolor := 9
	send(t, b,
		commands.CreateNodeCommand{Kind: "window"},
		commands.TagNodeCommand{NodeID: 2, Title: "HUD", Color: &recolor},
	)

	assert.Len(t, session.graph.Tags(), 1)
	tag, ok = session.graph.Tag(1)
	require.True(t, ok)
	assert.Equal(t, 4, tag.Color(), "existing tag keeps its color")
}

func TestGraphHandlers_Errors(t *testing.T) {
	tests := []struct {
		name  string
		cmd   bus.Command
		check func(error) bool
	}{
		{
			name:  "invalid kind",
			cmd:   commands.CreateNodeCommand{Kind: "popup"},
			check: func(err error) bool { return errors.Is(err, bus.ErrValidationFailed) && pkgerrors.IsValidation(err) },
		},
		{
			name:  "negative size",
			cmd:   commands.CreateNodeCommand{Kind: "window", Width: -1},
			check: func(err error) bool { return errors.Is(err, bus.ErrValidationFailed) },
		},
		{
			name:  "zero node id",
			cmd:   commands.DestroyNodeCommand{},
			check: pkgerrors.IsValidation,
		},
		{
			name:  "invalid default id",
			cmd:   commands.SetDefaultNodesCommand{NodeIDs: []int{1, -2}},
			check: pkgerrors.IsValidation,
		},
		{
			name:  "tag unknown node",
			cmd:   commands.TagNodeCommand{NodeID: 5, Title: "Menu"},
			check: pkgerrors.IsNotFound,
		},
		{
			name:  "untag unknown tag",
			cmd:   commands.UntagNodeCommand{NodeID: 1, TagID: 9},
			check: pkgerrors.IsNotFound,
		},
		{
			name:  "self link",
			cmd:   commands.AttachNodesCommand{SourceID: 1, TargetID: 1},
			check: func(err error) bool { return errors.Is(err, bus.ErrExecutionFailed) && pkgerrors.IsValidation(err) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := setup(t)
			send(t, b, commands.CreateNodeCommand{Kind: "window"})

			err := b.Send(context.Background(), tt.cmd)

			require.Error(t, err)
			assert.True(t, tt.check(err), "got %v", err)
		})
	}
}

func TestGraphHandlers_NoOpenGraph(t *testing.T) {
	b, session := setup(t)
	session.graph = nil

	err := b.Send(context.Background(), commands.FlushGraphCommand{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no flow graph is open")
}

func TestGraphHandlers_RegisterTwice(t *testing.T) {
	b, session := setup(t)

	err := NewGraphHandlers(session, nil).Register(b)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}
