package catalog

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"yagomarket/internal/types"
)

// imageSource is the slice of the API client the resolver needs.
type imageSource interface {
	ProductImage(ctx context.Context, productID int) (string, error)
}

// Resolver maps a product id to a display image URL. Any failure, network
// or 404, becomes the placeholder; the caller never sees an error. No
// caching: repeated calls re-issue the request.
type Resolver struct {
	source imageSource
	logger *zap.Logger
}

func NewResolver(source imageSource, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{source: source, logger: logger}
}

// Resolve returns the listing image for a product, or the placeholder.
func (r *Resolver) Resolve(ctx context.Context, productID int) string {
	url, err := r.source.ProductImage(ctx, productID)
	if err != nil || url == "" {
		if err != nil {
			r.logger.Debug("image resolution failed, using placeholder",
				zap.Int("product_id", productID),
				zap.Error(err))
		}
		return types.PlaceholderImageURL
	}
	return url
}

// ResolveInto fills ImageURL for every product in place, at most limit
// requests in flight. Each goroutine writes to its own slot, so no further
// synchronization is needed. A bad image never fails the batch.
func (r *Resolver) ResolveInto(ctx context.Context, products []types.Product, limit int) {
	if limit <= 0 {
		limit = 1
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := range products {
		g.Go(func() error {
			products[i].ImageURL = r.Resolve(ctx, products[i].ID)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors
}
