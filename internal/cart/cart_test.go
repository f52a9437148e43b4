package cart

import (
	"context"
	"errors"
	"testing"

	"yagomarket/internal/types"
)

// fakeBackend records calls and serves a scripted cart.
type fakeBackend struct {
	items       []types.CartItem
	loadCalls   int
	updateCalls int
	deleteCalls int
	failNext    error
}

func (f *fakeBackend) CartItems(ctx context.Context) ([]types.CartItem, error) {
	f.loadCalls++
	if err := f.takeErr(); err != nil {
		return nil, err
	}
	out := make([]types.CartItem, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeBackend) UpdateCartItem(ctx context.Context, id, quantity int) error {
	f.updateCalls++
	if err := f.takeErr(); err != nil {
		return err
	}
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Quantity = quantity
		}
	}
	return nil
}

func (f *fakeBackend) DeleteCartItem(ctx context.Context, id int) error {
	f.deleteCalls++
	if err := f.takeErr(); err != nil {
		return err
	}
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeBackend) takeErr() error {
	err := f.failNext
	f.failNext = nil
	return err
}

func line(id, qty int, price float64) types.CartItem {
	return types.CartItem{
		ID:       id,
		Quantity: qty,
		Product:  types.CartItemProduct{ID: id * 10, Name: "produto", Price: types.Price(price)},
	}
}

func newLoaded(t *testing.T, items ...types.CartItem) (*Cart, *fakeBackend) {
	t.Helper()
	backend := &fakeBackend{items: items}
	c := New(backend, nil)
	if _, err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return c, backend
}

func TestCart_SetQuantityBelowOneIsSilentNoOp(t *testing.T) {
	c, backend := newLoaded(t, line(1, 2, 10))

	if err := c.SetQuantity(context.Background(), 1, 0); err != nil {
		t.Fatalf("SetQuantity(0): %v", err)
	}
	if err := c.SetQuantity(context.Background(), 1, -3); err != nil {
		t.Fatalf("SetQuantity(-3): %v", err)
	}

	if backend.updateCalls != 0 {
		t.Fatalf("quantity < 1 issued %d requests, want 0", backend.updateCalls)
	}
	if got := c.Items()[0].Quantity; got != 2 {
		t.Fatalf("quantity changed to %d, want 2", got)
	}
}

func TestCart_SetQuantityMutatesOnlyOnServerSuccess(t *testing.T) {
	c, backend := newLoaded(t, line(1, 2, 10))

	if err := c.SetQuantity(context.Background(), 1, 5); err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}
	if got := c.Items()[0].Quantity; got != 5 {
		t.Fatalf("quantity = %d, want 5", got)
	}

	backend.failNext = errors.New("network down")
	if err := c.SetQuantity(context.Background(), 1, 9); err == nil {
		t.Fatal("expected error from failed update")
	}
	if got := c.Items()[0].Quantity; got != 5 {
		t.Fatalf("failed update changed local quantity to %d, want 5", got)
	}
}

func TestCart_RemoveExcisesLineAndIsIdempotent(t *testing.T) {
	c, backend := newLoaded(t, line(1, 1, 10), line(2, 2, 20))

	if err := c.Remove(context.Background(), 1); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", c.Len())
	}

	// Second removal: no request, no error.
	if err := c.Remove(context.Background(), 1); err != nil {
		t.Fatalf("second Remove: %v", err)
	}
	if backend.deleteCalls != 1 {
		t.Fatalf("deleteCalls = %d, want 1", backend.deleteCalls)
	}

	// A reload never brings the removed line back.
	items, err := c.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for _, item := range items {
		if item.ID == 1 {
			t.Fatal("removed line came back on reload")
		}
	}
}

func TestCart_RemoveFailureKeepsLine(t *testing.T) {
	c, backend := newLoaded(t, line(1, 1, 10))
	backend.failNext = errors.New("network down")

	if err := c.Remove(context.Background(), 1); err == nil {
		t.Fatal("expected error from failed delete")
	}
	if c.Len() != 1 {
		t.Fatal("failed delete must leave the line present")
	}
}

func TestCart_TotalRecomputesFromLines(t *testing.T) {
	c, _ := newLoaded(t, line(1, 2, 10.5), line(2, 1, 5))

	if got := c.Total(); got != 26.0 {
		t.Fatalf("Total() = %v, want 26.0", got)
	}

	// Adding a line raises the total by exactly price*quantity.
	before := c.Total()
	c2, _ := newLoaded(t, line(1, 2, 10.5), line(2, 1, 5), line(3, 3, 7))
	if diff := c2.Total() - before; diff != 21.0 {
		t.Fatalf("total increased by %v, want 21.0", diff)
	}

	// Quantity changes flow straight into the next read.
	if err := c.SetQuantity(context.Background(), 2, 4); err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}
	if got := c.Total(); got != 41.0 {
		t.Fatalf("Total() after update = %v, want 41.0", got)
	}
}

func TestCart_LoadFailureLeavesStateUnchanged(t *testing.T) {
	c, backend := newLoaded(t, line(1, 1, 10))
	backend.failNext = errors.New("network down")

	if _, err := c.Load(context.Background()); err == nil {
		t.Fatal("expected load error")
	}
	if c.Len() != 1 {
		t.Fatal("failed load must keep the previous lines")
	}
}
