package ui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"yagomarket/internal/api"
	"yagomarket/internal/config"
	"yagomarket/internal/session"
	"yagomarket/internal/types"
)

func testDeps(t *testing.T) Deps {
	t.Helper()
	sessions, err := session.NewAt(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("session store: %v", err)
	}
	cfg := &config.Config{}
	cfg.Catalog.PageSize = 15
	cfg.Catalog.CategoryPerPage = 21
	cfg.Catalog.ImageConcurrency = 8
	return Deps{
		Sessions: sessions,
		Cfg:      cfg,
		Logger:   zap.NewNop(),
		Styles:   DefaultStyles(),
	}
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := truncate("a very long product name", 10); got != "a very ..." {
		t.Errorf("got %q", got)
	}
	if len(truncate("a very long product name", 10)) != 10 {
		t.Error("truncated string exceeds max")
	}
}

func TestTruncateKeepsRunesIntact(t *testing.T) {
	for _, max := range []int{1, 2, 3, 5, 8, 13} {
		got := truncate("açúcar mascavo orgânico", max)
		if !utf8.ValidString(got) {
			t.Errorf("max=%d produced invalid UTF-8: %q", max, got)
		}
		if w := runewidth.StringWidth(got); w > max {
			t.Errorf("max=%d produced width %d: %q", max, w, got)
		}
	}
	if got := truncate("pão de açúcar", 20); got != "pão de açúcar" {
		t.Errorf("short accented string must pass through, got %q", got)
	}
}

func TestPadUsesDisplayWidth(t *testing.T) {
	ascii := pad("cafe", 10)
	accented := pad("café", 10)
	if runewidth.StringWidth(ascii) != runewidth.StringWidth(accented) {
		t.Errorf("columns misaligned: %q vs %q", ascii, accented)
	}
	if runewidth.StringWidth(accented) != 10 {
		t.Errorf("padded width = %d", runewidth.StringWidth(accented))
	}
}

func TestCheckExpired(t *testing.T) {
	cmd := checkExpired(&api.APIError{StatusCode: 401})
	if cmd == nil {
		t.Fatal("401 must produce a command")
	}
	if _, ok := cmd().(SessionExpiredMsg); !ok {
		t.Fatalf("expected SessionExpiredMsg, got %T", cmd())
	}
	if checkExpired(errors.New("conn refused")) != nil {
		t.Error("transport errors must not expire the session")
	}
	if checkExpired(nil) != nil {
		t.Error("nil error must not expire the session")
	}
}

func TestCategoryShowsDescription(t *testing.T) {
	m := NewCategory(testDeps(t))
	m.loading = true

	m, _ = m.Update(categoryLoadedMsg{
		category: types.Category{ID: 3, Name: "Roupas", Description: "Moda e acessórios"},
	})
	out := m.View()
	if !strings.Contains(out, "Roupas") {
		t.Errorf("expected category name in:\n%s", out)
	}
	if !strings.Contains(out, "Moda e acessórios") {
		t.Errorf("expected category description in:\n%s", out)
	}
}

func TestContactFormFetchesWhenUnprefilled(t *testing.T) {
	deps := testDeps(t)
	if err := deps.Sessions.SetSession("tok", types.User{ID: 1, Name: "Ana"}); err != nil {
		t.Fatalf("seed session: %v", err)
	}
	m := NewContactForm(deps)

	if cmd := m.Open(types.Profile{Phone: "11 99999-0000"}, true); cmd != nil {
		t.Error("prefilled open must not fetch")
	}
	if cmd := m.Open(types.Profile{}, false); cmd == nil {
		t.Fatal("unprefilled open must fetch the profile")
	}

	m.inputs[0].SetValue("11 88888-0000")
	m, _ = m.Update(contactPrefillMsg{
		profile: types.Profile{Phone: "11 99999-0000", City: "São Paulo"},
		found:   true,
	})
	if got := m.inputs[0].Value(); got != "11 88888-0000" {
		t.Errorf("typed value clobbered by late prefill: %q", got)
	}
	if got := m.inputs[2].Value(); got != "São Paulo" {
		t.Errorf("untouched field not prefilled: %q", got)
	}
}

func TestRenderStars(t *testing.T) {
	if got := renderStars(3); got != "⭐⭐⭐☆☆" {
		t.Errorf("got %q", got)
	}
	if got := renderStars(0); got != "☆☆☆☆☆" {
		t.Errorf("got %q", got)
	}
	if got := renderStars(9); got != "⭐⭐⭐⭐⭐" {
		t.Errorf("clamping failed: %q", got)
	}
}

func TestSplitImagePaths(t *testing.T) {
	paths := splitImagePaths(" a.jpg, b.png ,, c.webp ")
	if len(paths) != 3 {
		t.Fatalf("got %d paths", len(paths))
	}
	if paths[0] != "a.jpg" || paths[2] != "c.webp" {
		t.Errorf("got %v", paths)
	}
	if got := splitImagePaths("  ,  "); got != nil {
		t.Errorf("blank input should yield nil, got %v", got)
	}
}

func TestProductListMarksOutOfStock(t *testing.T) {
	products := []types.Product{
		{Name: "Notebook", Price: 3500, StockQuantity: 4},
		{Name: "Mouse", Price: 89.9, StockQuantity: 0},
	}
	out := renderProductList(DefaultStyles(), products, 0, 100)
	if !strings.Contains(out, "fora de estoque") {
		t.Error("expected out-of-stock marker")
	}
	if !strings.Contains(out, "R$ 3500.00") {
		t.Errorf("expected formatted price in:\n%s", out)
	}
}

func TestProductListEmpty(t *testing.T) {
	out := renderProductList(DefaultStyles(), nil, 0, 100)
	if !strings.Contains(out, "Nenhum produto encontrado") {
		t.Errorf("got %q", out)
	}
}

func TestHomeCursorStaysInBounds(t *testing.T) {
	m := NewHome(testDeps(t))
	m.loading = false
	m.products = []types.Product{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}

	m, _ = m.Update(keyMsg("j"))
	m, _ = m.Update(keyMsg("j"))
	m, _ = m.Update(keyMsg("j"))
	if m.prodCursor != 1 {
		t.Errorf("cursor ran past the list: %d", m.prodCursor)
	}
	m, _ = m.Update(keyMsg("k"))
	m, _ = m.Update(keyMsg("k"))
	m, _ = m.Update(keyMsg("k"))
	if m.prodCursor != 0 {
		t.Errorf("cursor ran before the list: %d", m.prodCursor)
	}
}

func TestHomeAddRedirectsAnonymousToAuth(t *testing.T) {
	m := NewHome(testDeps(t))
	m.loading = false
	m.products = []types.Product{{ID: 7, Name: "Notebook", Price: 10}}

	m, cmd := m.Update(keyMsg("a"))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg := cmd()
	nav, ok := msg.(NavigateMsg)
	if !ok {
		t.Fatalf("expected NavigateMsg, got %T", msg)
	}
	if nav.To != RouteAuth {
		t.Errorf("expected auth redirect, got route %d", nav.To)
	}
}

func TestProductQuantityRespectsStock(t *testing.T) {
	m := NewProduct(testDeps(t))
	m.loading = false
	m.quantity = 1
	m.product = types.Product{ID: 1, Name: "Cabo", StockQuantity: 2}

	m, _ = m.Update(keyMsg("+"))
	m, _ = m.Update(keyMsg("+"))
	m, _ = m.Update(keyMsg("+"))
	if m.quantity != 2 {
		t.Errorf("quantity exceeded stock: %d", m.quantity)
	}
	m, _ = m.Update(keyMsg("-"))
	m, _ = m.Update(keyMsg("-"))
	m, _ = m.Update(keyMsg("-"))
	if m.quantity != 1 {
		t.Errorf("quantity dropped below 1: %d", m.quantity)
	}
}

func TestProductThumbnailSelection(t *testing.T) {
	m := NewProduct(testDeps(t))
	m.loading = false
	m.product = types.Product{
		Name:          "Teclado",
		StockQuantity: 1,
		Images: []types.ProductImage{
			{ImageURL: "http://x/1.jpg"},
			{ImageURL: "http://x/2.jpg"},
		},
	}

	if out := m.View(); !strings.Contains(out, "http://x/1.jpg") {
		t.Errorf("default image should be the first one:\n%s", out)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if out := m.View(); !strings.Contains(out, "http://x/2.jpg") {
		t.Errorf("right arrow should select the next image:\n%s", out)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.imageIndex != 1 {
		t.Errorf("selection ran past the last image: %d", m.imageIndex)
	}
}

func TestProductNotFoundState(t *testing.T) {
	m := NewProduct(testDeps(t))
	m.loading = true

	m, _ = m.Update(productLoadedMsg{err: api.ErrNotFound})
	out := m.View()
	if !strings.Contains(out, "Produto não encontrado") {
		t.Errorf("expected not-found state in:\n%s", out)
	}
}

func TestProductViewOutOfStock(t *testing.T) {
	m := NewProduct(testDeps(t))
	m.loading = false
	m.product = types.Product{Name: "Fone", StockQuantity: 0}

	out := m.View()
	if !strings.Contains(out, "Fora de estoque") {
		t.Errorf("expected out-of-stock banner in:\n%s", out)
	}
	if strings.Contains(out, "Quantidade") {
		t.Error("quantity selector should be hidden at zero stock")
	}
}

func TestAuthValidatesBeforeSubmit(t *testing.T) {
	m := NewAuth(testDeps(t))
	if cmd := m.submit(); cmd != nil {
		t.Error("empty form should not submit")
	}
	if m.banner == "" {
		t.Error("expected a validation banner")
	}
}

func TestPersonalFormPasswordRules(t *testing.T) {
	deps := testDeps(t)
	if err := deps.Sessions.SetSession("tok", types.User{ID: 1, Name: "Ana", Email: "ana@x.com"}); err != nil {
		t.Fatalf("seed session: %v", err)
	}
	m := NewPersonalForm(deps)
	m.Open()

	m.inputs[personalFieldNew].SetValue("abc123")
	if cmd := m.submit(); cmd != nil {
		t.Error("missing current password should not submit")
	}

	m.inputs[personalFieldCurrent].SetValue("old")
	m.inputs[personalFieldNew].SetValue("abc")
	m.inputs[personalFieldConfirm].SetValue("abc")
	if cmd := m.submit(); cmd != nil {
		t.Error("short new password should not submit")
	}

	m.inputs[personalFieldNew].SetValue("abc123")
	m.inputs[personalFieldConfirm].SetValue("abc124")
	if cmd := m.submit(); cmd != nil {
		t.Error("mismatched confirmation should not submit")
	}
}
