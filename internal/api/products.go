package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"yagomarket/internal/types"
)

// MaxProductImages is the upload limit enforced by the backend.
const MaxProductImages = 5

// PagedProducts is one page of a paginated listing.
type PagedProducts struct {
	Data  []types.Product `json:"data"`
	Total int             `json:"total"`
}

// ListProducts fetches one page of the default product listing.
func (c *Client) ListProducts(ctx context.Context, page int) (PagedProducts, error) {
	var out PagedProducts
	path := "/api/products"
	if page > 1 {
		path = fmt.Sprintf("/api/products?page=%d", page)
	}
	err := c.get(ctx, path, &out)
	return out, err
}

// AllProducts fetches the whole catalog unpaginated.
func (c *Client) AllProducts(ctx context.Context) ([]types.Product, error) {
	var out []types.Product
	err := c.get(ctx, "/api/products?all=true", &out)
	return out, err
}

// GetProduct fetches a product by numeric id or slug, with nested images,
// seller, and reviews. Missing products come back as ErrNotFound.
func (c *Client) GetProduct(ctx context.Context, idOrSlug string) (types.Product, error) {
	var out types.Product
	err := c.get(ctx, "/api/products/"+idOrSlug, &out)
	return out, err
}

// ProductImage resolves the listing image for a product.
func (c *Client) ProductImage(ctx context.Context, productID int) (string, error) {
	var out struct {
		ImageURL string `json:"image_url"`
	}
	if err := c.get(ctx, fmt.Sprintf("/api/product-images/%d", productID), &out); err != nil {
		return "", err
	}
	return out.ImageURL, nil
}

// CreateProductRequest is the seller's new-product form.
type CreateProductRequest struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Price         string `json:"price"`
	StockQuantity string `json:"stock_quantity"`
	CategoryID    string `json:"category_id"`
	Status        string `json:"status"`
}

// CreateProduct registers a product for the authenticated seller.
func (c *Client) CreateProduct(ctx context.Context, req CreateProductRequest) (types.Product, error) {
	var out types.Product
	err := c.post(ctx, "/api/products", req, &out)
	return out, err
}

// UploadProductImages attaches up to MaxProductImages local files to a
// product via multipart form data.
func (c *Client) UploadProductImages(ctx context.Context, productID int, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	if len(paths) > MaxProductImages {
		return fmt.Errorf("at most %d images per product, got %d", MaxProductImages, len(paths))
	}

	select {
	case c.sem <- struct{}{}:
		defer func() { <-c.sem }()
	case <-ctx.Done():
		return ctx.Err()
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return fmt.Errorf("open image %s: %w", p, err)
		}
		part, err := writer.CreateFormFile("images[]", filepath.Base(p))
		if err != nil {
			f.Close()
			return err
		}
		if _, err := io.Copy(part, f); err != nil {
			f.Close()
			return fmt.Errorf("read image %s: %w", p, err)
		}
		f.Close()
	}
	if err := writer.Close(); err != nil {
		return err
	}

	url := fmt.Sprintf("%s/api/products/%d/images", c.baseURL, productID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upload images: %w", err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	c.logger.Debug("upload images",
		zap.String("path", fmt.Sprintf("/api/products/%d/images", productID)),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.apiError(resp.StatusCode, data)
	}
	return nil
}

// RawJSON decodes shape-varying endpoints into a raw message for callers
// that do their own extraction (see internal/profile).
func (c *Client) RawJSON(ctx context.Context, path string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}
