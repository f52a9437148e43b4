package api

import (
	"context"
	"fmt"

	"yagomarket/internal/types"
)

// CartItems fetches the authenticated user's cart lines.
func (c *Client) CartItems(ctx context.Context) ([]types.CartItem, error) {
	var out struct {
		Data []types.CartItem `json:"data"`
	}
	if err := c.get(ctx, "/api/cart-items", &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// AddCartItem posts a new cart line. The backend decides whether a repeat
// add merges into an existing line or creates a second one; the client
// never dedups.
func (c *Client) AddCartItem(ctx context.Context, productID, quantity int, price types.Price) error {
	payload := map[string]any{
		"product_id": productID,
		"quantity":   quantity,
		"price":      float64(price),
	}
	return c.post(ctx, "/api/cart-items", payload, nil)
}

// UpdateCartItem sets the quantity of an existing line.
func (c *Client) UpdateCartItem(ctx context.Context, id, quantity int) error {
	payload := map[string]int{"quantity": quantity}
	return c.put(ctx, fmt.Sprintf("/api/cart-items/%d", id), payload, nil)
}

// DeleteCartItem removes a line.
func (c *Client) DeleteCartItem(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/api/cart-items/%d", id))
}

// CartItemsCount returns the line count shown next to the cart icon.
func (c *Client) CartItemsCount(ctx context.Context) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	if err := c.get(ctx, "/api/cart-items-count", &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}
