package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"yagomarket/internal/catalog"
	"yagomarket/internal/types"
)

// HomeModel is the landing page: a categories bar plus the featured
// products page.
type HomeModel struct {
	deps    Deps
	agg     *catalog.Aggregator
	spinner spinner.Model

	loading    bool
	failed     bool
	products   []types.Product
	categories []types.Category
	prodCursor int
	catCursor  int
	status     string
	statusErr  bool

	width  int
	height int
}

type homeLoadedMsg struct {
	products   []types.Product
	categories []types.Category
	err        error
}

type homeAddedMsg struct{ err error }

func NewHome(deps Deps) HomeModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = deps.Styles.Spinner

	fetch := func(ctx context.Context, page, perPage int) ([]types.Product, int, error) {
		paged, err := deps.Client.ListProducts(ctx, page)
		if err != nil {
			return nil, 0, err
		}
		return paged.Data, paged.Total, nil
	}
	agg := catalog.NewAggregator(fetch, deps.Resolver, deps.Logger,
		catalog.WithPerPage(deps.Cfg.Catalog.PageSize),
		catalog.WithImageConcurrency(deps.Cfg.Catalog.ImageConcurrency))

	// The app loads this page on startup, before any Update runs.
	return HomeModel{deps: deps, agg: agg, spinner: sp, loading: true}
}

// Load kicks off the categories and featured-products fetches.
func (m *HomeModel) Load() tea.Cmd {
	m.loading = true
	m.failed = false
	m.status = ""
	agg := m.agg
	deps := m.deps
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx, cancel := PageContext(deps.Cfg)
		defer cancel()

		if _, err := agg.LoadPage(ctx, 1, false); err != nil {
			return homeLoadedMsg{err: err}
		}
		cats, err := deps.Client.Categories(ctx)
		if err != nil {
			// The products grid can still render without the bar.
			deps.Logger.Warn("categories load failed", zap.Error(err))
			cats = nil
		}
		if len(cats) > 10 {
			cats = cats[:10]
		}
		return homeLoadedMsg{products: agg.Products(), categories: cats}
	})
}

func (m *HomeModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m HomeModel) Update(msg tea.Msg) (HomeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case homeLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.failed = true
			return m, nil
		}
		m.products = msg.products
		m.categories = msg.categories
		m.prodCursor = 0
		m.catCursor = 0
		return m, nil

	case homeAddedMsg:
		if msg.err != nil {
			m.status = "❌ Erro ao adicionar ao carrinho"
			m.statusErr = true
			return m, checkExpired(msg.err)
		}
		m.status = "✅ Adicionado ao carrinho!"
		m.statusErr = false
		return m, func() tea.Msg { return CartChangedMsg{} }

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		switch msg.String() {
		case "up", "k":
			if m.prodCursor > 0 {
				m.prodCursor--
			}
		case "down", "j":
			if m.prodCursor < len(m.products)-1 {
				m.prodCursor++
			}
		case "left", "h":
			if m.catCursor > 0 {
				m.catCursor--
			}
		case "right", "l":
			if m.catCursor < len(m.categories)-1 {
				m.catCursor++
			}
		case "enter":
			if p, ok := m.selectedProduct(); ok {
				ref := p.Slug
				if ref == "" {
					ref = fmt.Sprintf("%d", p.ID)
				}
				return m, NavigateProduct(ref)
			}
		case "c":
			if cat, ok := m.selectedCategory(); ok {
				return m, NavigateCategory(cat.ID, cat.Name)
			}
		case "a":
			if p, ok := m.selectedProduct(); ok {
				return m, m.addToCart(p)
			}
		case "v":
			return m, Navigate(RouteCatalog)
		case "r":
			return m, m.Load()
		}
	}
	return m, nil
}

func (m HomeModel) selectedProduct() (types.Product, bool) {
	if m.prodCursor < 0 || m.prodCursor >= len(m.products) {
		return types.Product{}, false
	}
	return m.products[m.prodCursor], true
}

func (m HomeModel) selectedCategory() (types.Category, bool) {
	if m.catCursor < 0 || m.catCursor >= len(m.categories) {
		return types.Category{}, false
	}
	return m.categories[m.catCursor], true
}

// addToCart posts the selected product with quantity 1. Anonymous users go
// to the auth page instead; the cart endpoints need a token.
func (m HomeModel) addToCart(p types.Product) tea.Cmd {
	if !m.deps.Sessions.Authenticated() {
		return Navigate(RouteAuth)
	}
	deps := m.deps
	return func() tea.Msg {
		ctx, cancel := PageContext(deps.Cfg)
		defer cancel()
		err := deps.Client.AddCartItem(ctx, p.ID, 1, p.Price)
		return homeAddedMsg{err: err}
	}
}

func (m HomeModel) View() string {
	var sb strings.Builder
	st := m.deps.Styles

	sb.WriteString(st.Header.Render("Yago Market"))
	sb.WriteString("\n")
	sb.WriteString(st.Muted.Render("Encontre os melhores produtos com os melhores preços"))
	sb.WriteString("\n\n")

	if m.loading {
		sb.WriteString(m.spinner.View())
		sb.WriteString(" Carregando produtos...\n")
		return sb.String()
	}

	if m.failed {
		sb.WriteString(st.Error.Render("Não foi possível carregar os produtos."))
		sb.WriteString("\n")
		sb.WriteString(st.Help.Render("r: tentar novamente"))
		sb.WriteString("\n")
		return sb.String()
	}

	if len(m.categories) > 0 {
		parts := make([]string, 0, len(m.categories))
		for i, cat := range m.categories {
			label := fmt.Sprintf("%s %s", catalog.CategoryIcon(cat.Name), cat.Name)
			if i == m.catCursor {
				label = st.Selected.Render(label)
			}
			parts = append(parts, label)
		}
		sb.WriteString(strings.Join(parts, "  "))
		sb.WriteString("\n\n")
	}

	sb.WriteString(st.Title.Render("Produtos em Destaque"))
	sb.WriteString(st.Muted.Render(fmt.Sprintf("  %d produtos", len(m.products))))
	sb.WriteString("\n")
	sb.WriteString(renderProductList(st, m.products, m.prodCursor, m.width))

	if m.status != "" {
		sb.WriteString("\n")
		if m.statusErr {
			sb.WriteString(st.Error.Render(m.status))
		} else {
			sb.WriteString(st.Success.Render(m.status))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(st.Help.Render("↑/↓ produto · ←/→ categoria · enter: detalhes · c: abrir categoria · a: adicionar · v: ver todos"))
	sb.WriteString("\n")
	return sb.String()
}

// renderProductList is the shared product grid used by the listing pages.
func renderProductList(st Styles, products []types.Product, cursor, width int) string {
	if len(products) == 0 {
		return st.Muted.Render("Nenhum produto encontrado.") + "\n"
	}

	nameWidth := 40
	if width > 0 && width < 80 {
		nameWidth = 24
	}

	var sb strings.Builder
	for i, p := range products {
		marker := "  "
		name := truncate(p.Name, nameWidth)
		line := fmt.Sprintf("%s  %s", pad(name, nameWidth), p.Price.Format())
		if i == cursor {
			marker = st.Badge.Render("> ")
			line = st.Selected.Render(line)
		}
		sb.WriteString(marker)
		sb.WriteString(line)
		if p.StockQuantity == 0 {
			sb.WriteString("  ")
			sb.WriteString(st.Error.Render("fora de estoque"))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
