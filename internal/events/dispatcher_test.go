package events

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []Event
	d.Subscribe(EventProductCreated, func(_ context.Context, e Event) error {
		got = append(got, e)
		return nil
	})
	d.Subscribe(EventCartItemAdded, func(context.Context, Event) error {
		t.Fatal("unexpected delivery")
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventProductCreated}))
	assert.Len(t, got, 1)
}

func TestDispatcherRunsAllHandlersOnError(t *testing.T) {
	d := NewInMemoryDispatcher()
	boom := errors.New("boom")

	calls := 0
	d.Subscribe(EventUserRegistered, func(context.Context, Event) error {
		calls++
		return boom
	})
	d.Subscribe(EventUserRegistered, func(context.Context, Event) error {
		calls++
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventUserRegistered})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}

func TestEmitStampsEvent(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got Event
	d.Subscribe(EventUserLoggedIn, func(_ context.Context, e Event) error {
		got = e
		return nil
	})

	require.NoError(t, Emit(context.Background(), d, Event{Type: EventUserLoggedIn}))
	_, err := uuid.Parse(got.ID)
	assert.NoError(t, err)
	assert.False(t, got.Timestamp.IsZero())

	assert.NoError(t, Emit(context.Background(), nil, Event{Type: EventUserLoggedIn}))
}
