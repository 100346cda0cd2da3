package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

type cartState struct {
	CartItemCount int `json:"cart_item_count"`
}

// CartCounter caches the number of items in the buyer's cart for the header
// badge.
type CartCounter struct {
	storage   Storage
	namespace string

	mu    sync.RWMutex
	count int
}

func openCartCounter(ctx context.Context, storage Storage, namespace string) (*CartCounter, error) {
	c := &CartCounter{storage: storage, namespace: namespace}
	raw, ok, err := storage.Get(ctx, namespace, cartKey)
	if err != nil {
		return nil, fmt.Errorf("load cart counter: %w", err)
	}
	if ok {
		var state cartState
		if json.Unmarshal(raw, &state) == nil {
			c.count = state.CartItemCount
		}
	}
	return c, nil
}

// Count returns the cached item count.
func (c *CartCounter) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.count
}

// Update stores n as the current count. Negative values are stored as zero.
func (c *CartCounter) Update(ctx context.Context, n int) error {
	if n < 0 {
		n = 0
	}
	raw, err := json.Marshal(cartState{CartItemCount: n})
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.storage.Set(ctx, c.namespace, cartKey, raw); err != nil {
		return fmt.Errorf("persist cart counter: %w", err)
	}
	c.count = n
	return nil
}

// Reset forgets the count.
func (c *CartCounter) Reset(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.storage.Delete(ctx, c.namespace, cartKey); err != nil {
		return fmt.Errorf("clear cart counter: %w", err)
	}
	c.count = 0
	return nil
}
