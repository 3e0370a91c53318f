package messaging

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"uiflow/application/ports"
	"uiflow/domain/events"
)

// Handler receives a published domain event
type Handler func(ctx context.Context, event events.DomainEvent) error

// wildcard subscribes a handler to every event type
const wildcard = "*"

// LocalBus delivers domain events synchronously to in-process subscribers
// and logs each event
type LocalBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   *zap.Logger
}

var _ ports.EventPublisher = (*LocalBus)(nil)

// NewLocalBus creates a bus without subscribers
func NewLocalBus(logger *zap.Logger) *LocalBus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalBus{
		handlers: make(map[string][]Handler),
		logger:   logger,
	}
}

// Subscribe registers a handler for one event type
func (b *LocalBus) Subscribe(eventType string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// SubscribeAll registers a handler for every event type
func (b *LocalBus) SubscribeAll(handler Handler) {
	b.Subscribe(wildcard, handler)
}

// Publish delivers a single event
func (b *LocalBus) Publish(ctx context.Context, event events.DomainEvent) error {
	return b.PublishBatch(ctx, []events.DomainEvent{event})
}

// PublishBatch delivers events in order. Delivery stops at the first
// handler error.
func (b *LocalBus) PublishBatch(ctx context.Context, domainEvents []events.DomainEvent) error {
	for _, event := range domainEvents {
		if err := ctx.Err(); err != nil {
			return err
		}
		b.log(event)

		for _, h := range b.subscribers(event.GetEventType()) {
			if err := h(ctx, event); err != nil {
				b.logger.Error("Event handler failed",
					zap.String("eventType", event.GetEventType()),
					zap.String("eventID", event.GetEventID()),
					zap.Error(err),
				)
				return err
			}
		}
	}
	return nil
}

func (b *LocalBus) subscribers(eventType string) []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]Handler, 0, len(b.handlers[eventType])+len(b.handlers[wildcard]))
	out = append(out, b.handlers[eventType]...)
	out = append(out, b.handlers[wildcard]...)
	return out
}

func (b *LocalBus) log(event events.DomainEvent) {
	fields := []zap.Field{
		zap.String("eventType", event.GetEventType()),
		zap.String("eventID", event.GetEventID()),
		zap.String("graph", event.GetAggregateID()),
	}
	if ce := b.logger.Check(zap.DebugLevel, "Domain event"); ce != nil {
		if detail, err := json.Marshal(event); err == nil {
			fields = append(fields, zap.ByteString("detail", detail))
		}
		ce.Write(fields...)
	}
}
