package types

import (
	"encoding/json"
	"testing"
)

func TestPrice_UnmarshalNumberAndString(t *testing.T) {
	var p struct {
		Price Price `json:"price"`
	}

	if err := json.Unmarshal([]byte(`{"price": 149.9}`), &p); err != nil {
		t.Fatalf("number price: %v", err)
	}
	if p.Price != 149.9 {
		t.Fatalf("number price = %v, want 149.9", p.Price)
	}

	if err := json.Unmarshal([]byte(`{"price": "89.50"}`), &p); err != nil {
		t.Fatalf("string price: %v", err)
	}
	if p.Price != 89.5 {
		t.Fatalf("string price = %v, want 89.5", p.Price)
	}

	if err := json.Unmarshal([]byte(`{"price": null}`), &p); err != nil {
		t.Fatalf("null price: %v", err)
	}
	if p.Price != 0 {
		t.Fatalf("null price = %v, want 0", p.Price)
	}

	if err := json.Unmarshal([]byte(`{"price": "abc"}`), &p); err == nil {
		t.Fatal("non-numeric string price should fail to decode")
	}
}

func TestPrice_Format(t *testing.T) {
	if got := Price(1234.5).Format(); got != "R$ 1234.50" {
		t.Fatalf("Format() = %q", got)
	}
}

func TestProduct_DisplayImageNeverEmpty(t *testing.T) {
	var p Product
	if got := p.DisplayImage(); got != PlaceholderImageURL {
		t.Fatalf("zero-image product = %q, want placeholder", got)
	}

	p.ImageURL = "https://cdn.example/listing.jpg"
	if got := p.DisplayImage(); got != "https://cdn.example/listing.jpg" {
		t.Fatalf("resolved listing image = %q", got)
	}

	p.Images = []ProductImage{{ImageURL: "https://cdn.example/first.jpg"}, {ImageURL: "https://cdn.example/second.jpg"}}
	if got := p.DisplayImage(); got != "https://cdn.example/first.jpg" {
		t.Fatalf("first image should win, got %q", got)
	}
}

func TestCartItem_Subtotal(t *testing.T) {
	item := CartItem{
		Quantity: 3,
		Product:  CartItemProduct{Price: 10.5},
	}
	if got := item.Subtotal(); got != 31.5 {
		t.Fatalf("Subtotal() = %v, want 31.5", got)
	}
}
