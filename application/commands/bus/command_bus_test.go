package bus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type pingCommand struct {
	invalid bool
}

func (c pingCommand) Validate() error {
	if c.invalid {
		return errors.New("ping is invalid")
	}
	return nil
}

type otherCommand struct{}

func (otherCommand) Validate() error { return nil }

func TestCommandBus_Send(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)
	b := NewCommandBus(LoggingMiddleware(logger))

	calls := 0
	require.NoError(t, b.Register(pingCommand{}, CommandHandlerFunc(func(context.Context, Command) error {
		calls++
		return nil
	})))
	assert.True(t, b.Registered(pingCommand{}))
	assert.False(t, b.Registered(otherCommand{}))

	require.NoError(t, b.Send(context.Background(), pingCommand{}))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, logs.FilterMessage("Command succeeded").Len())

	err := b.Send(context.Background(), pingCommand{invalid: true})
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Equal(t, 1, calls, "invalid commands never reach the handler")

	err = b.Send(context.Background(), otherCommand{})
	assert.ErrorIs(t, err, ErrHandlerNotFound)
}

func TestCommandBus_HandlerFailure(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	b := NewCommandBus(LoggingMiddleware(zap.New(core)))
	boom := errors.New("boom")
	require.NoError(t, b.Register(pingCommand{}, CommandHandlerFunc(func(context.Context, Command) error {
		return boom
	})))

	err := b.Send(context.Background(), pingCommand{})

	assert.ErrorIs(t, err, ErrExecutionFailed)
	assert.ErrorIs(t, err, boom)
	failed := logs.FilterMessage("Command failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "pingCommand", failed[0].ContextMap()["type"])
}

func TestCommandBus_Recovery(t *testing.T) {
	b := NewCommandBus(RecoveryMiddleware(zap.NewNop()))
	require.NoError(t, b.Register(pingCommand{}, CommandHandlerFunc(func(context.Context, Command) error {
		panic("kaboom")
	})))

	err := b.Send(context.Background(), pingCommand{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "kaboom")
}

func TestPipeline_Order(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next CommandHandler) CommandHandler {
			return CommandHandlerFunc(func(ctx context.Context, cmd Command) error {
				order = append(order, name)
				return next.Handle(ctx, cmd)
			})
		}
	}
	handler := NewPipeline(mark("outer"), mark("inner")).Execute(CommandHandlerFunc(func(context.Context, Command) error {
		order = append(order, "handler")
		return nil
	}))

	require.NoError(t, handler.Handle(context.Background(), pingCommand{}))
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

type recordingMetrics struct {
	observed []string
	failed   int
}

func (m *recordingMetrics) ObserveCommand(command string, _ time.Duration, err error) {
	m.observed = append(m.observed, command)
	if err != nil {
		m.failed++
	}
}

func TestMetricsMiddleware(t *testing.T) {
	metrics := &recordingMetrics{}
	b := NewCommandBus(MetricsMiddleware(metrics))
	require.NoError(t, b.Register(pingCommand{}, CommandHandlerFunc(func(context.Context, Command) error {
		return nil
	})))
	require.NoError(t, b.Register(otherCommand{}, CommandHandlerFunc(func(context.Context, Command) error {
		return errors.New("boom")
	})))

	require.NoError(t, b.Send(context.Background(), pingCommand{}))
	require.Error(t, b.Send(context.Background(), otherCommand{}))
	require.Error(t, b.Send(context.Background(), pingCommand{invalid: true}))

	assert.Equal(t, []string{"pingCommand", "otherCommand"}, metrics.observed)
	assert.Equal(t, 1, metrics.failed)
}
