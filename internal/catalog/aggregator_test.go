package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yagomarket/internal/types"
)

// fakeImages serves image lookups from a map; ids absent from the map fail.
type fakeImages struct {
	mu       sync.Mutex
	urls     map[int]string
	calls    int
	inFlight int32
	peak     int32
	delay    time.Duration
}

func (f *fakeImages) ProductImage(ctx context.Context, productID int) (string, error) {
	cur := atomic.AddInt32(&f.inFlight, 1)
	defer atomic.AddInt32(&f.inFlight, -1)
	for {
		old := atomic.LoadInt32(&f.peak)
		if cur <= old || atomic.CompareAndSwapInt32(&f.peak, old, cur) {
			break
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	f.mu.Lock()
	f.calls++
	url, ok := f.urls[productID]
	f.mu.Unlock()
	if !ok {
		return "", errors.New("image lookup failed")
	}
	return url, nil
}

func makePage(start, n int) []types.Product {
	out := make([]types.Product, n)
	for i := range out {
		out[i] = types.Product{ID: start + i, Name: fmt.Sprintf("p%d", start+i)}
	}
	return out
}

func pageFunc(total int, items map[int][]types.Product) PageFunc {
	return func(ctx context.Context, page, perPage int) ([]types.Product, int, error) {
		return items[page], total, nil
	}
}

func TestAggregator_LoadPageResolvesImagesAndReportsHasMore(t *testing.T) {
	images := &fakeImages{urls: map[int]string{
		1: "https://cdn.example/1.jpg",
		2: "https://cdn.example/2.jpg",
		3: "https://cdn.example/3.jpg",
	}}
	fetch := pageFunc(5, map[int][]types.Product{1: makePage(1, 3)})

	agg := NewAggregator(fetch, NewResolver(images, nil), nil, WithPerPage(3))
	items, err := agg.LoadPage(context.Background(), 1, false)
	require.NoError(t, err)

	assert.Len(t, items, 3)
	assert.Equal(t, "https://cdn.example/1.jpg", items[0].ImageURL)
	assert.Equal(t, 5, agg.Total())
	assert.True(t, agg.HasMore(), "3 of 5 loaded")
	assert.Equal(t, StateLoaded, agg.State())
	assert.Equal(t, 2, agg.NextPage())
}

func TestAggregator_BadImageNeverAbortsThePage(t *testing.T) {
	// Only product 2 has an image; 1 and 3 must fall back to the
	// placeholder without failing the load.
	images := &fakeImages{urls: map[int]string{2: "https://cdn.example/2.jpg"}}
	fetch := pageFunc(3, map[int][]types.Product{1: makePage(1, 3)})

	agg := NewAggregator(fetch, NewResolver(images, nil), nil)
	items, err := agg.LoadPage(context.Background(), 1, false)
	require.NoError(t, err)

	assert.Equal(t, types.PlaceholderImageURL, items[0].ImageURL)
	assert.Equal(t, "https://cdn.example/2.jpg", items[1].ImageURL)
	assert.Equal(t, types.PlaceholderImageURL, items[2].ImageURL)
	assert.False(t, agg.HasMore())
}

func TestAggregator_AppendKeepsServerPageOrder(t *testing.T) {
	images := &fakeImages{urls: map[int]string{}}
	fetch := pageFunc(6, map[int][]types.Product{
		1: makePage(1, 3),
		2: makePage(4, 3),
	})

	agg := NewAggregator(fetch, NewResolver(images, nil), nil, WithPerPage(3))
	_, err := agg.LoadPage(context.Background(), 1, false)
	require.NoError(t, err)
	_, err = agg.LoadPage(context.Background(), 2, true)
	require.NoError(t, err)

	got := agg.Products()
	require.Len(t, got, 6)
	for i, p := range got {
		assert.Equal(t, i+1, p.ID, "accumulated ordering must follow server page order")
	}
	assert.False(t, agg.HasMore(), "all 6 of 6 loaded")
}

func TestAggregator_FirstPageFailureIsDistinguishableFromEmpty(t *testing.T) {
	boom := errors.New("backend down")
	failing := func(ctx context.Context, page, perPage int) ([]types.Product, int, error) {
		return nil, 0, boom
	}
	agg := NewAggregator(failing, NewResolver(&fakeImages{}, nil), nil)

	_, err := agg.LoadPage(context.Background(), 1, false)
	require.ErrorIs(t, err, boom)
	assert.Empty(t, agg.Products())
	assert.Equal(t, StateFailed, agg.State(), "a failed load must not look like an empty catalog")

	// An empty catalog, by contrast, loads fine with zero results.
	empty := pageFunc(0, map[int][]types.Product{})
	agg2 := NewAggregator(empty, NewResolver(&fakeImages{}, nil), nil)
	_, err = agg2.LoadPage(context.Background(), 1, false)
	require.NoError(t, err)
	assert.Empty(t, agg2.Products())
	assert.Equal(t, StateLoaded, agg2.State())
}

func TestAggregator_FailedAppendLeavesAccumulatedViewUntouched(t *testing.T) {
	images := &fakeImages{urls: map[int]string{}}
	calls := 0
	fetch := func(ctx context.Context, page, perPage int) ([]types.Product, int, error) {
		calls++
		if page == 2 {
			return nil, 0, errors.New("page 2 unavailable")
		}
		return makePage(1, 3), 6, nil
	}

	agg := NewAggregator(fetch, NewResolver(images, nil), nil)
	_, err := agg.LoadPage(context.Background(), 1, false)
	require.NoError(t, err)
	_, err = agg.LoadPage(context.Background(), 2, true)
	require.Error(t, err)

	assert.Len(t, agg.Products(), 3, "failed append must not drop loaded items")
	assert.Equal(t, StateLoaded, agg.State())
	assert.Equal(t, 2, calls)
}

func TestAggregator_ImageFanOutIsBounded(t *testing.T) {
	urls := make(map[int]string, 21)
	for i := 1; i <= 21; i++ {
		urls[i] = fmt.Sprintf("https://cdn.example/%d.jpg", i)
	}
	images := &fakeImages{urls: urls, delay: 5 * time.Millisecond}
	fetch := pageFunc(21, map[int][]types.Product{1: makePage(1, 21)})

	agg := NewAggregator(fetch, NewResolver(images, nil), nil,
		WithPerPage(21), WithImageConcurrency(4))
	_, err := agg.LoadPage(context.Background(), 1, false)
	require.NoError(t, err)

	assert.Equal(t, 21, images.calls, "one lookup per item")
	assert.LessOrEqual(t, images.peak, int32(4), "fan-out must respect the concurrency cap")
}

func TestAggregator_ResetClearsView(t *testing.T) {
	images := &fakeImages{urls: map[int]string{}}
	fetch := pageFunc(3, map[int][]types.Product{1: makePage(1, 3)})

	agg := NewAggregator(fetch, NewResolver(images, nil), nil)
	_, err := agg.LoadPage(context.Background(), 1, false)
	require.NoError(t, err)
	agg.Reset()

	assert.Empty(t, agg.Products())
	assert.Equal(t, StateInitial, agg.State())
	assert.Equal(t, 1, agg.NextPage())
}
