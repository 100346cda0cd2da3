package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/storefront/internal/domain"
	"github.com/spec-kit/storefront/internal/events"
	"github.com/spec-kit/storefront/internal/repository/memory"
)

func TestActivityServiceRecordsEvents(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	dispatcher := events.NewInMemoryDispatcher()
	NewActivityService(dispatcher, nil, zap.New(core)).RegisterHandlers()

	store := seededProducts(t)
	carts := NewCartService(CartDependencies{
		CartRepo:    store.Carts(),
		ProductRepo: store.Products(),
		Dispatcher:  dispatcher,
	})
	_, err := carts.Add(context.Background(), buyer, 1, 2)
	require.NoError(t, err)

	entries := logs.FilterMessage("activity").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, string(events.EventCartItemAdded), fields["event_type"])
	assert.Equal(t, buyer, fields["user_id"])
	assert.Equal(t, string(domain.RoleBuyer), fields["role"])
	assert.NotEmpty(t, fields["event_id"])
}

func TestActivityServiceWithoutDispatcher(t *testing.T) {
	assert.NotPanics(t, func() {
		NewActivityService(nil, nil, zap.NewNop()).RegisterHandlers()
	})
}

func TestActivityServiceStoresEntries(t *testing.T) {
	store := memory.NewStore()
	dispatcher := events.NewInMemoryDispatcher()
	NewActivityService(dispatcher, store.Activity(), zap.NewNop()).RegisterHandlers()

	products := NewProductService(store.Products(), dispatcher)
	product, err := products.Create(context.Background(), sellerA, ProductInput{Name: "Lamp", Category: "Home", Price: 12.5})
	require.NoError(t, err)
	require.NoError(t, products.Delete(context.Background(), sellerA, product.ID))

	entries := store.ActivityEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, string(events.EventProductCreated), entries[0].EventType)
	assert.Equal(t, string(events.EventProductDeleted), entries[1].EventType)
	assert.Equal(t, sellerA, entries[0].UserID)
	assert.Equal(t, domain.RoleSeller, entries[0].Role)
	assert.JSONEq(t, `{"product_id":1,"name":"Lamp","price":12.5}`, string(entries[0].Payload))
	assert.NotEqual(t, entries[0].EventID, entries[1].EventID)
}

func TestActivityServiceRejectsReplayedEvent(t *testing.T) {
	store := memory.NewStore()
	dispatcher := events.NewInMemoryDispatcher()
	NewActivityService(dispatcher, store.Activity(), zap.NewNop()).RegisterHandlers()

	event := events.Event{ID: "6f1c2a9e-0000-4000-8000-000000000001", Type: events.EventUserLoggedIn, Actor: events.Actor{UserID: 1, Role: domain.RoleBuyer}}
	require.NoError(t, events.Emit(context.Background(), dispatcher, event))
	assert.Error(t, events.Emit(context.Background(), dispatcher, event))
	assert.Len(t, store.ActivityEntries(), 1)
}
