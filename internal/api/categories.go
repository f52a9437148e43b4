package api

import (
	"context"
	"fmt"

	"yagomarket/internal/types"
)

// Categories fetches the category list.
func (c *Client) Categories(ctx context.Context) ([]types.Category, error) {
	var out struct {
		Data []types.Category `json:"data"`
	}
	if err := c.get(ctx, "/api/categories", &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// Category fetches a single category.
func (c *Client) Category(ctx context.Context, id int) (types.Category, error) {
	var out types.Category
	err := c.get(ctx, fmt.Sprintf("/api/categories/%d", id), &out)
	return out, err
}

// CategoryProducts fetches one page of a category's products.
func (c *Client) CategoryProducts(ctx context.Context, id, page, perPage int) (PagedProducts, error) {
	var out PagedProducts
	path := fmt.Sprintf("/api/categories/%d/products?page=%d&per_page=%d", id, page, perPage)
	err := c.get(ctx, path, &out)
	return out, err
}
