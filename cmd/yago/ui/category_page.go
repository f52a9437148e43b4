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

// CategoryModel shows one category's products, a page at a time. Further
// pages append to the list until the backend total is reached.
type CategoryModel struct {
	deps    Deps
	agg     *catalog.Aggregator
	spinner spinner.Model

	categoryID   int
	categoryName string
	description  string

	loading     bool
	loadingMore bool
	products    []types.Product
	cursor      int
	status      string

	width  int
	height int
}

type categoryLoadedMsg struct {
	category types.Category
	products []types.Product
	appended bool
	err      error
}

type categoryAddedMsg struct{ err error }

func NewCategory(deps Deps) CategoryModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = deps.Styles.Spinner
	return CategoryModel{deps: deps, spinner: sp}
}

// Open points the page at a category and loads its first page.
func (m *CategoryModel) Open(id int, name string) tea.Cmd {
	m.categoryID = id
	m.categoryName = name
	m.description = ""
	m.products = nil
	m.cursor = 0
	m.status = ""

	deps := m.deps
	fetch := func(ctx context.Context, page, perPage int) ([]types.Product, int, error) {
		paged, err := deps.Client.CategoryProducts(ctx, id, page, perPage)
		if err != nil {
			return nil, 0, err
		}
		return paged.Data, paged.Total, nil
	}
	m.agg = catalog.NewAggregator(fetch, deps.Resolver, deps.Logger,
		catalog.WithPerPage(deps.Cfg.Catalog.CategoryPerPage),
		catalog.WithImageConcurrency(deps.Cfg.Catalog.ImageConcurrency))

	m.loading = true
	agg := m.agg
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx, cancel := PageContext(deps.Cfg)
		defer cancel()
		if _, err := agg.LoadPage(ctx, 1, false); err != nil {
			return categoryLoadedMsg{err: err}
		}
		// The header can fall back to the name carried by navigation.
		cat, err := deps.Client.Category(ctx, id)
		if err != nil {
			deps.Logger.Warn("category detail load failed",
				zap.Int("category_id", id), zap.Error(err))
		}
		return categoryLoadedMsg{category: cat, products: agg.Products()}
	})
}

func (m *CategoryModel) loadMore() tea.Cmd {
	if m.agg == nil || !m.agg.HasMore() || m.loadingMore {
		return nil
	}
	m.loadingMore = true
	agg := m.agg
	deps := m.deps
	page := agg.NextPage()
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx, cancel := PageContext(deps.Cfg)
		defer cancel()
		_, err := agg.LoadPage(ctx, page, true)
		return categoryLoadedMsg{products: agg.Products(), appended: true, err: err}
	})
}

func (m *CategoryModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m CategoryModel) Update(msg tea.Msg) (CategoryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case categoryLoadedMsg:
		if msg.appended {
			m.loadingMore = false
			if msg.err != nil {
				m.status = "❌ Erro ao carregar mais produtos"
				return m, nil
			}
		} else {
			m.loading = false
			if msg.err != nil {
				return m, nil
			}
			if msg.category.Name != "" {
				m.categoryName = msg.category.Name
			}
			m.description = msg.category.Description
		}
		m.products = msg.products
		return m, nil

	case categoryAddedMsg:
		if msg.err != nil {
			m.status = "❌ Erro ao adicionar ao carrinho"
			return m, checkExpired(msg.err)
		}
		m.status = "✅ Adicionado ao carrinho!"
		return m, func() tea.Msg { return CartChangedMsg{} }

	case spinner.TickMsg:
		if m.loading || m.loadingMore {
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
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.products)-1 {
				m.cursor++
			}
		case "m":
			if cmd := m.loadMore(); cmd != nil {
				return m, cmd
			}
		case "enter":
			if p, ok := m.selected(); ok {
				ref := p.Slug
				if ref == "" {
					ref = fmt.Sprintf("%d", p.ID)
				}
				return m, NavigateProduct(ref)
			}
		case "a":
			if p, ok := m.selected(); ok {
				if !m.deps.Sessions.Authenticated() {
					return m, Navigate(RouteAuth)
				}
				deps := m.deps
				return m, func() tea.Msg {
					ctx, cancel := PageContext(deps.Cfg)
					defer cancel()
					return categoryAddedMsg{err: deps.Client.AddCartItem(ctx, p.ID, 1, p.Price)}
				}
			}
		}
	}
	return m, nil
}

func (m CategoryModel) selected() (types.Product, bool) {
	if m.cursor < 0 || m.cursor >= len(m.products) {
		return types.Product{}, false
	}
	return m.products[m.cursor], true
}

func (m CategoryModel) View() string {
	var sb strings.Builder
	st := m.deps.Styles

	title := fmt.Sprintf("%s %s", catalog.CategoryIcon(m.categoryName), m.categoryName)
	sb.WriteString(st.Title.Render(title))
	sb.WriteString("\n")
	if m.description != "" {
		sb.WriteString(st.Muted.Render(m.description))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	if m.loading {
		sb.WriteString(m.spinner.View())
		sb.WriteString(" Carregando produtos...\n")
		return sb.String()
	}

	if m.agg != nil && m.agg.State() == catalog.StateFailed {
		sb.WriteString(st.Error.Render("Não foi possível carregar os produtos desta categoria."))
		sb.WriteString("\n")
		return sb.String()
	}

	total := 0
	if m.agg != nil {
		total = m.agg.Total()
	}
	sb.WriteString(st.Muted.Render(fmt.Sprintf("Mostrando %d de %d produtos", len(m.products), total)))
	sb.WriteString("\n")
	sb.WriteString(renderProductList(st, m.products, m.cursor, m.width))

	sb.WriteString("\n")
	switch {
	case m.loadingMore:
		sb.WriteString(m.spinner.View())
		sb.WriteString(" Carregando mais produtos...")
	case m.agg != nil && m.agg.HasMore():
		sb.WriteString(st.Badge.Render(" m ") + " carregar mais produtos")
	case len(m.products) > 0:
		sb.WriteString(st.Success.Render("🎉 Você viu todos os produtos desta categoria!"))
	}
	sb.WriteString("\n")

	if m.status != "" {
		sb.WriteString(m.status)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(st.Help.Render("↑/↓ navegar · enter: detalhes · a: adicionar · m: mais produtos"))
	sb.WriteString("\n")
	return sb.String()
}
