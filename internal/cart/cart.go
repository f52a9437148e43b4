// Package cart is the client-side view-model for the authenticated user's
// cart. Mutations go to the backend first; local state changes only after
// the server confirms, so a failed request leaves the view untouched.
package cart

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"yagomarket/internal/types"
)

// backend is the slice of the API client the cart needs.
type backend interface {
	CartItems(ctx context.Context) ([]types.CartItem, error)
	UpdateCartItem(ctx context.Context, id, quantity int) error
	DeleteCartItem(ctx context.Context, id int) error
}

// Cart holds the current lines. Callers must hold a valid session before
// Load; anonymous users are redirected to authentication instead.
type Cart struct {
	api    backend
	logger *zap.Logger

	mu    sync.Mutex
	items []types.CartItem
}

func New(api backend, logger *zap.Logger) *Cart {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cart{api: api, logger: logger}
}

// Load replaces the local view with the server's cart lines.
func (c *Cart) Load(ctx context.Context) ([]types.CartItem, error) {
	items, err := c.api.CartItems(ctx)
	if err != nil {
		c.logger.Warn("cart load failed", zap.Error(err))
		return nil, err
	}

	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	return c.Items(), nil
}

// SetQuantity updates a line's quantity. Quantities below 1 are rejected
// client-side with no request: removal is the only way to reach zero. The
// local line changes only once the server confirms.
func (c *Cart) SetQuantity(ctx context.Context, lineID, quantity int) error {
	if quantity < 1 {
		return nil
	}

	if err := c.api.UpdateCartItem(ctx, lineID, quantity); err != nil {
		c.logger.Warn("quantity update failed",
			zap.Int("line_id", lineID),
			zap.Int("quantity", quantity),
			zap.Error(err))
		return err
	}

	c.mu.Lock()
	for i := range c.items {
		if c.items[i].ID == lineID {
			c.items[i].Quantity = quantity
			break
		}
	}
	c.mu.Unlock()
	return nil
}

// Remove deletes a line. Removing a line that is already gone is a no-op.
func (c *Cart) Remove(ctx context.Context, lineID int) error {
	if !c.has(lineID) {
		return nil
	}

	if err := c.api.DeleteCartItem(ctx, lineID); err != nil {
		c.logger.Warn("cart remove failed",
			zap.Int("line_id", lineID),
			zap.Error(err))
		return err
	}

	c.mu.Lock()
	for i := range c.items {
		if c.items[i].ID == lineID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			break
		}
	}
	c.mu.Unlock()
	return nil
}

func (c *Cart) has(lineID int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range c.items {
		if item.ID == lineID {
			return true
		}
	}
	return false
}

// Items returns a copy of the current lines.
func (c *Cart) Items() []types.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]types.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len is the number of lines.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Total recomputes the monetary total on every read; nothing is cached.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total float64
	for _, item := range c.items {
		total += item.Subtotal()
	}
	return total
}
