// Package event carries the storefront's event and command payloads and
// an in-process bus. The bus speaks the same publisher/subscriber
// contracts the platform's broker adapters implement, so components stay
// transport-agnostic while everything runs inside one process.
package event

import (
	"context"
	"sync"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"
)

// Bus is a synchronous in-process publisher/subscriber. Handlers run on
// the publisher's goroutine; a handler error is logged and does not stop
// delivery to the remaining handlers.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]events.HandlerFunc
	closed   bool
	logger   apt.Logger
}

var (
	_ events.Publisher  = (*Bus)(nil)
	_ events.Subscriber = (*Bus)(nil)
)

func NewBus(logger apt.Logger) *Bus {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Bus{
		handlers: make(map[string][]events.HandlerFunc),
		logger:   logger,
	}
}

func (b *Bus) Publish(ctx context.Context, topic string, msg []byte) error {
	b.mu.RLock()
	subscribed := b.handlers[topic]
	handlers := make([]events.HandlerFunc, len(subscribed))
	copy(handlers, subscribed)
	b.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(ctx, msg); err != nil {
			b.logger.Error("event handler failed", "topic", topic, "error", err)
		}
	}
	return nil
}

func (b *Bus) Subscribe(ctx context.Context, topic string, handler events.HandlerFunc) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBusClosed
	}
	b.handlers[topic] = append(b.handlers[topic], handler)
	return nil
}

func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	b.handlers = make(map[string][]events.HandlerFunc)
	return nil
}
