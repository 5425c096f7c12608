package events

import (
	"context"
	"sync"

	"github.com/devmarket-mx/tienda-backend/pkg/logger"
	"github.com/google/uuid"
)

// CartCountChanged is published whenever the number of lines in a user's
// cart changes. Subscribers receive the fresh count instead of polling.
type CartCountChanged struct {
	UserID uuid.UUID
	Count  int
}

// Handler consumes one cart count event.
type Handler func(ctx context.Context, event CartCountChanged)

// Bus is an in-process fan-out for cart count events. Delivery is
// synchronous and unordered; handlers must not block.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	logg     *logger.Logger
}

// NewBus constructs an empty event bus.
func NewBus(logg *logger.Logger) *Bus {
	return &Bus{
		handlers: make(map[string]Handler),
		logg:     logg,
	}
}

// Subscribe registers a handler and returns an unsubscribe func.
func (b *Bus) Subscribe(handler Handler) func() {
	if b == nil || handler == nil {
		return func() {}
	}
	id := uuid.NewString()

	b.mu.Lock()
	b.handlers[id] = handler
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.handlers, id)
		b.mu.Unlock()
	}
}

// Publish delivers the event to every current subscriber.
func (b *Bus) Publish(ctx context.Context, event CartCountChanged) {
	if b == nil {
		return
	}
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.handlers))
	for _, h := range b.handlers {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		func() {
			defer func() {
				if r := recover(); r != nil && b.logg != nil {
					b.logg.Warn(b.logg.WithField(ctx, "panic", r), "cart count handler panicked")
				}
			}()
			h(ctx, event)
		}()
	}
}
