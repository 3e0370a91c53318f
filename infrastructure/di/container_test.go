package di

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uiflow/application/commands"
	"uiflow/application/queries"
	"uiflow/domain/events"
	"uiflow/infrastructure/config"
	"uiflow/infrastructure/persistence/file"
)

func testConfig(backend, dir string) *config.Config {
	return &config.Config{
		Environment:        "test",
		LogLevel:           "error",
		StoreBackend:       backend,
		StoreDir:           dir,
		MemoTimeout:        time.Second,
		SlowQueryThreshold: time.Second,
		ValidateOnSave:     true,
	}
}

func TestInitializeContainer(t *testing.T) {
	ctx := context.Background()
	c, err := InitializeContainer(testConfig(config.StoreBackendMemory, ""))
	require.NoError(t, err)

	_, err = c.Session.Open(ctx, "Hud")
	require.NoError(t, err)

	require.NoError(t, c.CommandBus.Send(ctx, commands.CreateNodeCommand{Kind: "window", Title: "Main"}))
	require.NoError(t, c.CommandBus.Send(ctx, commands.CreateNodeCommand{Kind: "window", Title: "Options"}))
	require.NoError(t, c.CommandBus.Send(ctx, commands.AttachNodesCommand{SourceID: 1, TargetID: 2}))

	res, err := c.QueryBus.Ask(ctx, queries.GetGraphViewQuery{})
	require.NoError(t, err)
	view := res.(*queries.GraphView)
	assert.Len(t, view.Nodes, 2)
	assert.Equal(t, 2, view.Metadata.LinkCount)
	assert.True(t, view.Dirty)

	var published []string
	c.EventBus.SubscribeAll(func(ctx context.Context, event events.DomainEvent) error {
		published = append(published, event.GetEventType())
		return nil
	})

	require.NoError(t, c.Shutdown(ctx, true))
	assert.False(t, c.Session.IsOpen())
	assert.NotEmpty(t, published)

	samples, err := c.Metrics.Snapshot()
	require.NoError(t, err)
	counts := map[string]float64{}
	for _, s := range samples {
		if s.Name == "uiflow_commands_total" && s.Labels["status"] == "success" {
			counts[s.Labels["command"]] += s.Value
		}
	}
	assert.Equal(t, 2.0, counts["CreateNodeCommand"])
	assert.Equal(t, 1.0, counts["AttachNodesCommand"])

	exists, err := c.GraphRepo.Exists(ctx, "Hud")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestInitializeContainer_FileBackend(t *testing.T) {
	dir := t.TempDir()
	c, err := InitializeContainer(testConfig(config.StoreBackendFile, dir))
	require.NoError(t, err)

	repo, ok := c.GraphRepo.(*file.GraphRepository)
	require.True(t, ok)
	assert.Equal(t, dir, repo.Dir())
	assert.Equal(t, time.Second, c.Cache.Timeout())
}

func TestInitializeContainer_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.Config
	}{
		{name: "unknown backend", cfg: testConfig("s3", "")},
		{name: "bad log level", cfg: func() *config.Config {
			cfg := testConfig(config.StoreBackendMemory, "")
			cfg.LogLevel = "loud"
			return cfg
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := InitializeContainer(tt.cfg)
			assert.Error(t, err)
		})
	}
}
