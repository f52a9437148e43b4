// Package types holds the wire models shared across the Yago Market client.
// Field names and JSON tags follow the backend API responses.
package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// PlaceholderImageURL is shown whenever a product image cannot be resolved.
// A rendered product always has a displayable image, real or placeholder.
const PlaceholderImageURL = "https://via.placeholder.com/300x200?text=No+Image"

// Price is a decimal amount. The backend emits prices both as JSON numbers
// and as numeric strings ("149.90"), so decoding accepts either.
type Price float64

func (p *Price) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		*p = 0
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return fmt.Errorf("price %q is not numeric: %w", str, err)
		}
		*p = Price(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Price(v)
	return nil
}

// Format renders the price the way the storefront displays it.
func (p Price) Format() string {
	return fmt.Sprintf("R$ %.2f", float64(p))
}

// ProductImage is one entry of a product's ordered image list.
type ProductImage struct {
	ID       int    `json:"id,omitempty"`
	ImageURL string `json:"image_url"`
}

// Product is a catalog entry. Images are ordered; the first one is the
// default display image.
type Product struct {
	ID            int            `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Price         Price          `json:"price"`
	StockQuantity int            `json:"stock_quantity"`
	CategoryID    int            `json:"category_id"`
	Slug          string         `json:"slug"`
	Status        string         `json:"status,omitempty"`
	Images        []ProductImage `json:"images,omitempty"`
	Seller        *User          `json:"user,omitempty"`
	Reviews       []Review       `json:"reviews,omitempty"`

	// ImageURL is filled client-side by the image resolver for listings
	// where the backend omits the images relation.
	ImageURL string `json:"-"`
}

// DisplayImage returns the URL to render for this product. It is never
// empty: the first image wins, then the resolved listing image, then the
// placeholder.
func (p Product) DisplayImage() string {
	if len(p.Images) > 0 && p.Images[0].ImageURL != "" {
		return p.Images[0].ImageURL
	}
	if p.ImageURL != "" {
		return p.ImageURL
	}
	return PlaceholderImageURL
}

// Review is a product rating left by a user. Rating is 1..5.
type Review struct {
	ID      int    `json:"id"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
	User    *User  `json:"user,omitempty"`
}

// Category groups products for display. Description is optional.
type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// User is the core identity record returned by login/register.
type User struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Role    string   `json:"role"`
	Profile *Profile `json:"profile,omitempty"`
}

// Profile holds a user's contact info. It is distinct from the identity
// record and may not exist yet for a given user; absence is a valid state.
type Profile struct {
	ID      int    `json:"id,omitempty"`
	UserID  int    `json:"user_id"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	ZipCode string `json:"zip_code"`
}

// CartItem is one line of the authenticated user's cart.
// Quantity never drops below 1; removal is the only way out.
type CartItem struct {
	ID       int             `json:"id"`
	Quantity int             `json:"quantity"`
	Product  CartItemProduct `json:"product"`
}

// CartItemProduct is the product summary embedded on a cart line.
type CartItemProduct struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Price    Price  `json:"price"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Subtotal is price times quantity for this line.
func (c CartItem) Subtotal() float64 {
	return float64(c.Product.Price) * float64(c.Quantity)
}

// Session is the client-side authentication state: an opaque bearer token
// plus the user it belongs to.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
