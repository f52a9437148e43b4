// Package catalog reconciles paginated product listings with per-product
// image lookups into a consistent client-side view.
package catalog

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"yagomarket/internal/types"
)

// State distinguishes a failed load from a genuinely empty catalog. A page
// must never render "0 products" for what was actually an error.
type State int

const (
	// StateInitial means nothing has been requested yet.
	StateInitial State = iota
	// StateLoaded means the last first-page load succeeded, even with
	// zero results.
	StateLoaded
	// StateFailed means the first page itself could not be fetched.
	StateFailed
)

// PageFunc fetches one page from the backend. The aggregator stays
// agnostic of which listing it is paging (default, category, search).
type PageFunc func(ctx context.Context, page, perPage int) ([]types.Product, int, error)

// Aggregator accumulates pages of products, resolving display images for
// each page concurrently. Pages are requested monotonically; append
// concatenates in server page order.
type Aggregator struct {
	fetch       PageFunc
	resolver    *Resolver
	logger      *zap.Logger
	perPage     int
	concurrency int

	mu       sync.Mutex
	products []types.Product
	total    int
	page     int
	state    State
}

// Option tweaks an Aggregator.
type Option func(*Aggregator)

// WithPerPage sets the page size requested from the backend.
func WithPerPage(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.perPage = n
		}
	}
}

// WithImageConcurrency caps parallel image lookups per page load.
func WithImageConcurrency(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

func NewAggregator(fetch PageFunc, resolver *Resolver, logger *zap.Logger, opts ...Option) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Aggregator{
		fetch:       fetch,
		resolver:    resolver,
		logger:      logger,
		perPage:     15,
		concurrency: 8,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// LoadPage fetches one page and resolves its images. With append=false the
// accumulated view is replaced; with append=true the page is concatenated.
// A failed first page empties the view and moves to StateFailed; a failed
// append leaves the accumulated view untouched.
func (a *Aggregator) LoadPage(ctx context.Context, page int, appendPage bool) ([]types.Product, error) {
	items, total, err := a.fetch(ctx, page, a.perPage)
	if err != nil {
		a.mu.Lock()
		if !appendPage {
			a.products = nil
			a.total = 0
			a.state = StateFailed
		}
		a.mu.Unlock()
		a.logger.Warn("page load failed",
			zap.Int("page", page),
			zap.Bool("append", appendPage),
			zap.Error(err))
		return nil, err
	}

	a.resolver.ResolveInto(ctx, items, a.concurrency)

	a.mu.Lock()
	defer a.mu.Unlock()
	if appendPage {
		a.products = append(a.products, items...)
	} else {
		a.products = items
	}
	a.total = total
	a.page = page
	a.state = StateLoaded

	a.logger.Debug("page loaded",
		zap.Int("page", page),
		zap.Int("items", len(items)),
		zap.Int("accumulated", len(a.products)),
		zap.Int("total", total))

	return items, nil
}

// Products returns a copy of the accumulated view.
func (a *Aggregator) Products() []types.Product {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]types.Product, len(a.products))
	copy(out, a.products)
	return out
}

// Total is the server-reported total count.
func (a *Aggregator) Total() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.total
}

// HasMore reports whether another page remains. It is the sole driver of
// the "load more" affordance.
func (a *Aggregator) HasMore() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.products) < a.total
}

// NextPage is the page number a subsequent append load should request.
func (a *Aggregator) NextPage() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.page + 1
}

// State reports whether the view holds loaded data or a failure.
func (a *Aggregator) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Reset clears the accumulated view, e.g. when switching categories.
func (a *Aggregator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.products = nil
	a.total = 0
	a.page = 0
	a.state = StateInitial
}
