package event

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/almacen/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// testEvent implements DomainEvent for testing
type testEvent struct {
	shared.BaseDomainEvent
	Data string `json:"data"`
}

func newTestEvent(eventType string) *testEvent {
	return &testEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "TestAggregate", uuid.New()),
		Data:            "test data",
	}
}

// testHandler implements EventHandler for testing
type testHandler struct {
	eventTypes []string
	handled    []shared.DomainEvent
	err        error
	mu         sync.Mutex
}

func newTestHandler(eventTypes ...string) *testHandler {
	return &testHandler{
		eventTypes: eventTypes,
		handled:    make([]shared.DomainEvent, 0),
	}
}

func (h *testHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handled = append(h.handled, event)
	return h.err
}

func (h *testHandler) EventTypes() []string {
	return h.eventTypes
}

func (h *testHandler) getHandled() []shared.DomainEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]shared.DomainEvent(nil), h.handled...)
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop(), 16, 2)

	handler := newTestHandler("stock.below_minimum")
	bus.Subscribe(handler)

	event := newTestEvent("stock.below_minimum")
	err := bus.Publish(context.Background(), event)

	require.NoError(t, err)
	assert.Len(t, handler.getHandled(), 1)
	assert.Equal(t, event, handler.getHandled()[0])
}

func TestInMemoryEventBus_Publish_OnlyMatchingHandlers(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop(), 16, 2)

	stockHandler := newTestHandler("stock.below_minimum")
	orderHandler := newTestHandler("order.completed")
	bus.Subscribe(stockHandler)
	bus.Subscribe(orderHandler)

	err := bus.Publish(context.Background(), newTestEvent("order.completed"))

	require.NoError(t, err)
	assert.Empty(t, stockHandler.getHandled())
	assert.Len(t, orderHandler.getHandled(), 1)
}

func TestInMemoryEventBus_Publish_WildcardHandler(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop(), 16, 2)

	wildcard := newTestHandler()
	bus.Subscribe(wildcard)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("order.completed")))
	require.NoError(t, bus.Publish(context.Background(), newTestEvent("stock.adjusted")))

	assert.Len(t, wildcard.getHandled(), 2)
}

func TestInMemoryEventBus_Publish_HandlerErrorDoesNotStopOthers(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop(), 16, 2)

	failing := newTestHandler("order.completed")
	failing.err = errors.New("handler broken")
	healthy := newTestHandler("order.completed")
	bus.Subscribe(failing)
	bus.Subscribe(healthy)

	err := bus.Publish(context.Background(), newTestEvent("order.completed"))

	require.NoError(t, err)
	assert.Len(t, healthy.getHandled(), 1)
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop(), 16, 2)

	handler := newTestHandler("order.completed")
	bus.Subscribe(handler)
	bus.Unsubscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("order.completed")))

	assert.Empty(t, handler.getHandled())
}

func TestInMemoryEventBus_AsyncDispatch(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop(), 16, 2)
	require.NoError(t, bus.Start(context.Background()))

	handler := newTestHandler("order.completed")
	bus.Subscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("order.completed")))

	assert.Eventually(t, func() bool {
		return len(handler.getHandled()) == 1
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, bus.Stop(context.Background()))
}

func TestInMemoryEventBus_PublishDuringStop(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop(), 4, 2)
	require.NoError(t, bus.Start(context.Background()))

	handler := newTestHandler("order.completed")
	bus.Subscribe(handler)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				// Must never panic on a closed queue, even while Stop runs
				assert.NoError(t, bus.Publish(context.Background(), newTestEvent("order.completed")))
			}
		}()
	}

	require.NoError(t, bus.Stop(context.Background()))
	wg.Wait()

	assert.Len(t, handler.getHandled(), 8*50)
}

func TestInMemoryEventBus_StopDrainsQueue(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop(), 16, 1)
	require.NoError(t, bus.Start(context.Background()))

	handler := newTestHandler("order.completed")
	bus.Subscribe(handler)

	for i := 0; i < 5; i++ {
		require.NoError(t, bus.Publish(context.Background(), newTestEvent("order.completed")))
	}
	require.NoError(t, bus.Stop(context.Background()))

	assert.Len(t, handler.getHandled(), 5)
}
