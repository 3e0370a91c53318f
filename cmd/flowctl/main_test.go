package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uiflow/application/queries"
)

func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("FLOW_STORE_BACKEND", "file")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--store-dir", dir}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := run(t, dir, args...)
	require.NoError(t, err, out)
	return out
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "flowctl", cmd.Use)
	assert.NotEmpty(t, cmd.Short)

	names := []string{}
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Subset(t, names, []string{"list", "show", "screens", "add", "rm", "link", "unlink", "tag", "untag", "root", "defaults"})
}

func TestEditSession(t *testing.T) {
	dir := t.TempDir()

	out := mustRun(t, dir, "add", "Hud", "window", "--title", "Main", "--screen", "main_screen", "--width", "100", "--height", "40")
	assert.Equal(t, "saved Hud\n", out)
	mustRun(t, dir, "add", "Hud", "window", "--title", "Options", "--screen", "options_screen")
	mustRun(t, dir, "add", "Hud", "container")
	mustRun(t, dir, "link", "Hud", "1", "2")
	mustRun(t, dir, "link", "Hud", "1", "3", "--one-way")
	mustRun(t, dir, "tag", "Hud", "1", "Menu", "--color", "7")
	mustRun(t, dir, "tag", "Hud", "2", "menu")
	mustRun(t, dir, "root", "Hud", "1")
	mustRun(t, dir, "defaults", "Hud", "1", "2")

	var view queries.GraphView
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, dir, "show", "Hud")), &view))
	assert.Equal(t, "Hud.UI", view.Namespace)
	assert.Equal(t, 1, view.RootNode)
	assert.False(t, view.Dirty)
	assert.NotEqual(t, "-", view.LastModified)
	require.Len(t, view.Nodes, 3)
	require.Len(t, view.Tags, 1)
	assert.Equal(t, 7, view.Tags[0].Color)
	assert.Equal(t, []int{1}, view.Nodes[1].Tags)
	assert.Equal(t, []queries.LinkDTO{{Target: 2}, {Target: 3, OneWay: true}}, view.Nodes[0].Links)

	screens := mustRun(t, dir, "screens", "Hud")
	assert.Equal(t, "* main_screen\n  options_screen\n", screens)

	mustRun(t, dir, "rm", "Hud", "2")
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, dir, "show", "Hud")), &view))
	require.Len(t, view.Nodes, 2)
	assert.Equal(t, []queries.LinkDTO{{Target: 3, OneWay: true}}, view.Nodes[0].Links)

	mustRun(t, dir, "add", "Menu", "window")
	assert.Equal(t, "Hud\nMenu\n", mustRun(t, dir, "list"))
	assert.Equal(t, "Menu\n", mustRun(t, dir, "list", "--prefix", "Me"))
}

func TestCommandErrors(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "add", "Hud", "window")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "bad kind", args: []string{"add", "Hud", "popup"}, want: "validation"},
		{name: "bad id", args: []string{"rm", "Hud", "x"}, want: "invalid node id"},
		{name: "self link", args: []string{"link", "Hud", "1", "1"}, want: "itself"},
		{name: "missing args", args: []string{"link", "Hud", "1"}, want: "accepts 3 arg(s)"},
		{name: "untag unknown", args: []string{"untag", "Hud", "1", "9"}, want: "not found"},
		{name: "invalid asset name", args: []string{"show", "../escape"}, want: "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, dir, tt.args...)
			require.Error(t, err)
			assert.Contains(t, strings.ToLower(err.Error()), tt.want)
		})
	}
}

func TestMetricsFlag(t *testing.T) {
	dir := t.TempDir()
	out := mustRun(t, dir, "--metrics", "add", "Hud", "window")

	assert.Contains(t, out, "saved Hud\n")
	assert.Contains(t, out, `uiflow_commands_total{command="CreateNodeCommand",status="success"} 1`)
	assert.Contains(t, out, `uiflow_domain_events_total{type="flow.node_created"} 1`)
}
