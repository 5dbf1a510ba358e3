package event

import (
	"context"
	"sync"

	"github.com/almacen/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// InMemoryEventBus implements EventBus with in-memory pub/sub.
// When started, events are dispatched asynchronously by a worker
// pool; before Start (or after Stop) Publish dispatches inline so
// tests and CLI tools work without background goroutines.
type InMemoryEventBus struct {
	registry *HandlerRegistry
	logger   *zap.Logger
	queue    chan shared.DomainEvent
	workers  int

	// mu guards running and orders queue sends before the close in Stop
	mu      sync.RWMutex
	running bool
	wg      sync.WaitGroup
}

// NewInMemoryEventBus creates a new in-memory event bus
func NewInMemoryEventBus(logger *zap.Logger, bufferSize, workers int) *InMemoryEventBus {
	if bufferSize <= 0 {
		bufferSize = 256
	}
	if workers <= 0 {
		workers = 4
	}
	return &InMemoryEventBus{
		registry: NewHandlerRegistry(),
		logger:   logger,
		queue:    make(chan shared.DomainEvent, bufferSize),
		workers:  workers,
	}
}

// Publish publishes events to all registered handlers
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, event := range events {
		if b.enqueue(event) {
			continue
		}
		b.dispatch(ctx, event)
	}
	return nil
}

// enqueue hands an event to the worker pool. It returns false when
// the bus is not running or the queue is full; the read lock keeps a
// concurrent Stop from closing the queue mid-send.
func (b *InMemoryEventBus) enqueue(event shared.DomainEvent) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.running {
		return false
	}
	select {
	case b.queue <- event:
		return true
	default:
		b.logger.Warn("event queue full, dispatching inline",
			zap.String("event_type", event.EventType()),
		)
		return false
	}
}

// Subscribe registers a handler for specific event types
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	b.registry.Register(handler, eventTypes...)
	b.logger.Debug("handler subscribed",
		zap.Strings("event_types", eventTypes),
	)
}

// Unsubscribe removes a handler
func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.registry.Unregister(handler)
	b.logger.Debug("handler unsubscribed")
}

// Start launches the worker pool
func (b *InMemoryEventBus) Start(ctx context.Context) error {
	b.mu.Lock()
	if b.running {
		b.mu.Unlock()
		return nil
	}
	b.running = true
	b.mu.Unlock()

	for i := 0; i < b.workers; i++ {
		b.wg.Add(1)
		go b.worker()
	}

	b.logger.Info("event bus started", zap.Int("workers", b.workers))
	return nil
}

// Stop drains the queue and stops the workers. The write lock waits
// out any in-flight enqueue before the queue closes.
func (b *InMemoryEventBus) Stop(ctx context.Context) error {
	b.mu.Lock()
	if !b.running {
		b.mu.Unlock()
		return nil
	}
	b.running = false
	close(b.queue)
	b.mu.Unlock()

	b.wg.Wait()
	b.logger.Info("event bus stopped")
	return nil
}

func (b *InMemoryEventBus) worker() {
	defer b.wg.Done()
	for event := range b.queue {
		b.dispatch(context.Background(), event)
	}
}

// dispatch delivers an event to every registered handler. A failing
// handler is logged and does not block the others.
func (b *InMemoryEventBus) dispatch(ctx context.Context, event shared.DomainEvent) {
	for _, handler := range b.registry.GetHandlers(event.EventType()) {
		if err := b.dispatchToHandler(ctx, handler, event); err != nil {
			b.logger.Error("handler failed to process event",
				zap.String("event_type", event.EventType()),
				zap.String("event_id", event.EventID().String()),
				zap.Error(err),
			)
		}
	}
}

// dispatchToHandler safely dispatches an event to a handler
func (b *InMemoryEventBus) dispatchToHandler(ctx context.Context, handler shared.EventHandler, event shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("handler panicked",
				zap.String("event_type", event.EventType()),
				zap.Any("panic", r),
			)
		}
	}()

	return handler.Handle(ctx, event)
}

// Ensure InMemoryEventBus implements EventBus
var _ shared.EventBus = (*InMemoryEventBus)(nil)
