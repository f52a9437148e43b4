package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"yagomarket/internal/api"
	"yagomarket/internal/types"
)

// ProductModel is the detail page for a single product.
type ProductModel struct {
	deps    Deps
	spinner spinner.Model

	ref      string
	loading  bool
	notFound bool
	failed   bool
	product  types.Product

	imageIndex int
	quantity   int
	status     string
	statusErr  bool

	width  int
	height int
}

type productLoadedMsg struct {
	product types.Product
	err     error
}

type productAddedMsg struct{ err error }

func NewProduct(deps Deps) ProductModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = deps.Styles.Spinner
	return ProductModel{deps: deps, spinner: sp}
}

// Open loads a product by numeric id or slug.
func (m *ProductModel) Open(ref string) tea.Cmd {
	m.ref = ref
	m.loading = true
	m.notFound = false
	m.failed = false
	m.imageIndex = 0
	m.quantity = 1
	m.status = ""

	deps := m.deps
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx, cancel := PageContext(deps.Cfg)
		defer cancel()
		p, err := deps.Client.GetProduct(ctx, ref)
		return productLoadedMsg{product: p, err: err}
	})
}

func (m *ProductModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m ProductModel) Update(msg tea.Msg) (ProductModel, tea.Cmd) {
	switch msg := msg.(type) {
	case productLoadedMsg:
		m.loading = false
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrNotFound) {
				m.notFound = true
			} else {
				m.failed = true
			}
			return m, nil
		}
		m.product = msg.product
		return m, nil

	case productAddedMsg:
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
		if m.loading || m.notFound || m.failed {
			return m, nil
		}
		switch msg.String() {
		case "left", "h":
			if m.imageIndex > 0 {
				m.imageIndex--
			}
		case "right", "l":
			if m.imageIndex < len(m.product.Images)-1 {
				m.imageIndex++
			}
		case "+", "=":
			if m.quantity < m.product.StockQuantity {
				m.quantity++
			}
		case "-":
			if m.quantity > 1 {
				m.quantity--
			}
		case "a", "enter":
			if m.product.StockQuantity == 0 {
				return m, nil
			}
			if !m.deps.Sessions.Authenticated() {
				return m, Navigate(RouteAuth)
			}
			deps := m.deps
			p := m.product
			qty := m.quantity
			return m, func() tea.Msg {
				ctx, cancel := PageContext(deps.Cfg)
				defer cancel()
				return productAddedMsg{err: deps.Client.AddCartItem(ctx, p.ID, qty, p.Price)}
			}
		}
	}
	return m, nil
}

func (m ProductModel) View() string {
	var sb strings.Builder
	st := m.deps.Styles

	if m.loading {
		sb.WriteString(m.spinner.View())
		sb.WriteString(" Carregando produto...\n")
		return sb.String()
	}
	if m.notFound {
		sb.WriteString(st.Error.Render("Produto não encontrado"))
		sb.WriteString("\n")
		sb.WriteString(st.Help.Render("esc: voltar"))
		sb.WriteString("\n")
		return sb.String()
	}
	if m.failed {
		sb.WriteString(st.Error.Render("Não foi possível carregar o produto."))
		sb.WriteString("\n")
		return sb.String()
	}

	p := m.product
	sb.WriteString(st.Title.Render(p.Name))
	sb.WriteString("\n")
	sb.WriteString(st.Price.Render(p.Price.Format()))
	sb.WriteString("\n\n")

	sb.WriteString(m.renderImages())
	sb.WriteString("\n")

	if p.StockQuantity > 0 {
		sb.WriteString(st.Success.Render(fmt.Sprintf("✅ Em estoque (%d unidades)", p.StockQuantity)))
	} else {
		sb.WriteString(st.Error.Render("❌ Fora de estoque"))
	}
	sb.WriteString("\n\n")

	if p.Description != "" {
		sb.WriteString(st.Label.Render("Descrição"))
		sb.WriteString("\n")
		sb.WriteString(p.Description)
		sb.WriteString("\n\n")
	}

	if p.Seller != nil {
		sb.WriteString(st.Label.Render("Vendedor"))
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s  %s", p.Seller.Name, st.Muted.Render(p.Seller.Email)))
		sb.WriteString("\n\n")
	}

	if p.StockQuantity > 0 {
		sb.WriteString(fmt.Sprintf("Quantidade: %s %d %s",
			st.Badge.Render("-"), m.quantity, st.Badge.Render("+")))
		sb.WriteString("\n\n")
	}

	sb.WriteString(m.renderReviews())

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
	help := "←/→ imagem · +/- quantidade · a: adicionar ao carrinho · esc: voltar"
	if p.StockQuantity == 0 {
		help = "←/→ imagem · esc: voltar"
	}
	sb.WriteString(st.Help.Render(help))
	sb.WriteString("\n")
	return sb.String()
}

func (m ProductModel) renderImages() string {
	st := m.deps.Styles
	p := m.product

	if len(p.Images) == 0 {
		return st.Muted.Render("🖼  " + p.DisplayImage())
	}

	var sb strings.Builder
	sb.WriteString("🖼  ")
	sb.WriteString(p.Images[m.imageIndex].ImageURL)
	sb.WriteString("\n")
	if len(p.Images) > 1 {
		dots := make([]string, len(p.Images))
		for i := range p.Images {
			if i == m.imageIndex {
				dots[i] = st.Selected.Render("●")
			} else {
				dots[i] = st.Muted.Render("○")
			}
		}
		sb.WriteString(strings.Join(dots, " "))
	}
	return sb.String()
}

func (m ProductModel) renderReviews() string {
	st := m.deps.Styles
	reviews := m.product.Reviews

	var sb strings.Builder
	sb.WriteString(st.Label.Render(fmt.Sprintf("Avaliações (%d)", len(reviews))))
	sb.WriteString("\n")
	if len(reviews) == 0 {
		sb.WriteString(st.Muted.Render("Este produto ainda não tem avaliações."))
		sb.WriteString("\n")
		return sb.String()
	}
	for _, r := range reviews {
		sb.WriteString(renderStars(r.Rating))
		if r.User != nil {
			sb.WriteString("  ")
			sb.WriteString(st.Muted.Render(r.User.Name))
		}
		sb.WriteString("\n")
		if r.Comment != "" {
			sb.WriteString("  ")
			sb.WriteString(r.Comment)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// renderStars draws a 1..5 rating; out-of-range values are clamped.
func renderStars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("⭐", rating) + strings.Repeat("☆", 5-rating)
}
