package commands

import (
	"testing"

	"uiflow/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandValidation(t *testing.T) {
	negative := -1

	tests := []struct {
		name    string
		cmd     interface{ Validate() error }
		wantErr string
	}{
		{name: "create window", cmd: CreateNodeCommand{Kind: "window", Title: "Main", Width: 10}},
		{name: "create unknown kind", cmd: CreateNodeCommand{Kind: "popup"}, wantErr: "kind must be one of"},
		{name: "create negative width", cmd: CreateNodeCommand{Kind: "container", Width: -1}, wantErr: "width must be greater than or equal to 0"},
		{name: "destroy without id", cmd: DestroyNodeCommand{}, wantErr: "node_id is required"},
		{name: "attach", cmd: AttachNodesCommand{SourceID: 1, TargetID: 2, OneWay: true}},
		{name: "attach missing target", cmd: AttachNodesCommand{SourceID: 1}, wantErr: "target_id is required"},
		{name: "tag without title", cmd: TagNodeCommand{NodeID: 1}, wantErr: "title is required"},
		{name: "tag negative color", cmd: TagNodeCommand{NodeID: 1, Title: "Menu", Color: &negative}, wantErr: "color must be greater than or equal to 0"},
		{name: "clear root", cmd: SetRootNodeCommand{NodeID: 0}},
		{name: "defaults with zero id", cmd: SetDefaultNodesCommand{NodeIDs: []int{1, 0}}, wantErr: "must be greater than 0"},
		{name: "select in inverted rect", cmd: SelectInRectCommand{Width: -20, Height: -10}},
		{name: "save", cmd: SaveGraphCommand{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsValidation(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
