package ui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"yagomarket/internal/api"
	"yagomarket/internal/cart"
	"yagomarket/internal/catalog"
	"yagomarket/internal/config"
	"yagomarket/internal/profile"
	"yagomarket/internal/session"
)

// Route identifies a page.
type Route int

const (
	RouteHome Route = iota
	RouteCatalog
	RouteCategory
	RouteProduct
	RouteCart
	RouteAuth
	RouteProfile
	RouteEditContact
	RouteEditPersonal
	RoutePublish
)

// Deps is the wiring every page shares.
type Deps struct {
	Client   *api.Client
	Sessions *session.Store
	Cart     *cart.Cart
	Profiles *profile.Service
	Resolver *catalog.Resolver
	Cfg      *config.Config
	Logger   *zap.Logger
	Styles   Styles
}

// NavigateMsg asks the app to switch pages.
type NavigateMsg struct {
	To Route

	// Category navigation payload
	CategoryID   int
	CategoryName string

	// Product navigation payload (id or slug)
	ProductRef string
}

// SessionExpiredMsg reports a 401 from the backend; the app downgrades the
// session to anonymous and shows the auth page.
type SessionExpiredMsg struct{}

// CartChangedMsg reports a successful cart mutation so the navigation bar
// count can refresh.
type CartChangedMsg struct{}

// Navigate wraps a NavigateMsg into a command.
func Navigate(to Route) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{To: to} }
}

// NavigateCategory opens a category listing.
func NavigateCategory(id int, name string) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{To: RouteCategory, CategoryID: id, CategoryName: name}
	}
}

// NavigateProduct opens a product detail page by id or slug.
func NavigateProduct(ref string) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{To: RouteProduct, ProductRef: ref} }
}

// PageContext is the deadline wrapper every page load uses. Commands run
// in their own goroutines; the timeout keeps an unresponsive backend from
// pinning a spinner forever.
func PageContext(cfg *config.Config) (context.Context, context.CancelFunc) {
	timeout := 30 * time.Second
	if cfg != nil && cfg.API.RequestTimeout > 0 {
		// Page loads fan out several requests sequentially; give them
		// a little more room than a single call.
		timeout = 2 * cfg.API.RequestTimeout
	}
	return context.WithTimeout(context.Background(), timeout)
}

// checkExpired turns an unauthorized API error into a SessionExpiredMsg.
// Any other error (or nil) produces no command.
func checkExpired(err error) tea.Cmd {
	if errors.Is(err, api.ErrUnauthorized) {
		return func() tea.Msg { return SessionExpiredMsg{} }
	}
	return nil
}

// truncate shortens s to at most max display cells. Width-aware so pt-BR
// product names with accented runes never get cut mid-rune.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= max {
		return s
	}
	if max <= 3 {
		return runewidth.Truncate(s, max, "")
	}
	return runewidth.Truncate(s, max, "...")
}

// pad right-fills s with spaces up to width display cells.
func pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}
