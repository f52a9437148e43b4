package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"yagomarket/internal/types"
)

// CatalogModel lists the full catalog in one shot.
type CatalogModel struct {
	deps    Deps
	spinner spinner.Model

	loading  bool
	failed   bool
	products []types.Product
	cursor   int
	status   string

	width  int
	height int
}

type catalogLoadedMsg struct {
	products []types.Product
	err      error
}

type catalogAddedMsg struct{ err error }

func NewCatalog(deps Deps) CatalogModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = deps.Styles.Spinner
	return CatalogModel{deps: deps, spinner: sp}
}

func (m *CatalogModel) Load() tea.Cmd {
	m.loading = true
	m.failed = false
	m.status = ""
	deps := m.deps
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx, cancel := PageContext(deps.Cfg)
		defer cancel()

		products, err := deps.Client.AllProducts(ctx)
		if err != nil {
			return catalogLoadedMsg{err: err}
		}
		deps.Resolver.ResolveInto(ctx, products, deps.Cfg.Catalog.ImageConcurrency)
		return catalogLoadedMsg{products: products}
	})
}

func (m *CatalogModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m CatalogModel) Update(msg tea.Msg) (CatalogModel, tea.Cmd) {
	switch msg := msg.(type) {
	case catalogLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.failed = true
			return m, nil
		}
		m.products = msg.products
		m.cursor = 0
		return m, nil

	case catalogAddedMsg:
		if msg.err != nil {
			m.status = "❌ Erro ao adicionar ao carrinho"
			return m, checkExpired(msg.err)
		}
		m.status = "✅ Adicionado ao carrinho!"
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
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.products)-1 {
				m.cursor++
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
					return catalogAddedMsg{err: deps.Client.AddCartItem(ctx, p.ID, 1, p.Price)}
				}
			}
		case "r":
			return m, m.Load()
		}
	}
	return m, nil
}

func (m CatalogModel) selected() (types.Product, bool) {
	if m.cursor < 0 || m.cursor >= len(m.products) {
		return types.Product{}, false
	}
	return m.products[m.cursor], true
}

func (m CatalogModel) View() string {
	var sb strings.Builder
	st := m.deps.Styles

	sb.WriteString(st.Title.Render("Todos os Produtos"))
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

	sb.WriteString(st.Muted.Render(fmt.Sprintf("%d produtos", len(m.products))))
	sb.WriteString("\n")
	sb.WriteString(renderProductList(st, m.products, m.cursor, m.width))

	if m.status != "" {
		sb.WriteString("\n")
		sb.WriteString(st.Success.Render(m.status))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(st.Help.Render("↑/↓ navegar · enter: detalhes · a: adicionar ao carrinho"))
	sb.WriteString("\n")
	return sb.String()
}
