package messaging

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomie-hub/roomie-hub/internal/domain/shared"
)

func syncBus() *InMemoryEventBus {
	cfg := DefaultInMemoryEventBusConfig()
	cfg.AsyncMode = false
	return NewInMemoryEventBus(cfg)
}

func testEvent(eventType shared.EventType) shared.Event {
	return stubEvent{BaseEvent: shared.NewBaseEvent(eventType, "profile-1")}
}

type stubEvent struct {
	shared.BaseEvent
}

func (e stubEvent) Payload() map[string]interface{} {
	return map[string]interface{}{"profile_id": e.AggregateID()}
}

func TestInMemoryEventBus_DeliversToTypedSubscribers(t *testing.T) {
	bus := syncBus()
	defer bus.Close()

	var viewed, saved int32
	require.NoError(t, bus.Subscribe(shared.EventProfileViewed, func(shared.Event) error {
		atomic.AddInt32(&viewed, 1)
		return nil
	}))
	require.NoError(t, bus.Subscribe(shared.EventProfileSaved, func(shared.Event) error {
		atomic.AddInt32(&saved, 1)
		return nil
	}))

	require.NoError(t, bus.Publish(testEvent(shared.EventProfileViewed)))
	require.NoError(t, bus.Publish(testEvent(shared.EventProfileViewed)))

	assert.Equal(t, int32(2), atomic.LoadInt32(&viewed))
	assert.Equal(t, int32(0), atomic.LoadInt32(&saved))
}

func TestInMemoryEventBus_SubscribeAllSeesEveryType(t *testing.T) {
	bus := syncBus()
	defer bus.Close()

	var seen []shared.EventType
	require.NoError(t, bus.SubscribeAll(func(event shared.Event) error {
		seen = append(seen, event.EventType())
		return nil
	}))

	require.NoError(t, bus.Publish(testEvent(shared.EventProfileRegistered)))
	require.NoError(t, bus.Publish(testEvent(shared.EventProfileUnsaved)))

	assert.Equal(t, []shared.EventType{shared.EventProfileRegistered, shared.EventProfileUnsaved}, seen)
}

func TestInMemoryEventBus_HandlerPanicDoesNotPropagate(t *testing.T) {
	bus := syncBus()
	defer bus.Close()

	var after int32
	require.NoError(t, bus.Subscribe(shared.EventProfileViewed, func(shared.Event) error {
		panic("boom")
	}))
	require.NoError(t, bus.Subscribe(shared.EventProfileViewed, func(shared.Event) error {
		atomic.AddInt32(&after, 1)
		return nil
	}))

	require.NoError(t, bus.Publish(testEvent(shared.EventProfileViewed)))
	assert.Equal(t, int32(1), atomic.LoadInt32(&after))
}

func TestInMemoryEventBus_HandlerErrorsAreSwallowed(t *testing.T) {
	bus := syncBus()
	defer bus.Close()

	require.NoError(t, bus.Subscribe(shared.EventProfileViewed, func(shared.Event) error {
		return errors.New("downstream unavailable")
	}))

	assert.NoError(t, bus.Publish(testEvent(shared.EventProfileViewed)))
}

func TestInMemoryEventBus_ClosedBusRejectsOperations(t *testing.T) {
	bus := syncBus()
	require.NoError(t, bus.Close())

	assert.ErrorIs(t, bus.Publish(testEvent(shared.EventProfileViewed)), ErrEventBusClosed)
	assert.ErrorIs(t, bus.Subscribe(shared.EventProfileViewed, func(shared.Event) error { return nil }), ErrEventBusClosed)
	assert.NoError(t, bus.Close())
}

func TestInMemoryEventBus_AsyncModeDeliversOffThePublishPath(t *testing.T) {
	cfg := DefaultInMemoryEventBusConfig()
	cfg.AsyncMode = true
	cfg.WorkerPoolSize = 2
	bus := NewInMemoryEventBus(cfg)
	defer bus.Close()

	handled := make(chan struct{}, 5)
	require.NoError(t, bus.SubscribeAll(func(shared.Event) error {
		handled <- struct{}{}
		return nil
	}))

	for i := 0; i < 5; i++ {
		require.NoError(t, bus.Publish(testEvent(shared.EventProfileViewed)))
	}

	for i := 0; i < 5; i++ {
		select {
		case <-handled:
		case <-time.After(2 * time.Second):
			t.Fatalf("handler %d never ran", i)
		}
	}
}
