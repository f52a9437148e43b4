package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"yagomarket/internal/types"
)

// CartModel renders the authenticated user's cart and lets them change
// quantities or remove lines.
type CartModel struct {
	deps    Deps
	spinner spinner.Model

	loading bool
	failed  bool
	items   []types.CartItem
	cursor  int
	status  string

	width  int
	height int
}

type cartLoadedMsg struct {
	items []types.CartItem
	err   error
}

type cartMutatedMsg struct {
	items []types.CartItem
	err   error
}

func NewCart(deps Deps) CartModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = deps.Styles.Spinner
	return CartModel{deps: deps, spinner: sp}
}

func (m *CartModel) Load() tea.Cmd {
	m.loading = true
	m.failed = false
	m.status = ""
	deps := m.deps
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx, cancel := PageContext(deps.Cfg)
		defer cancel()
		items, err := deps.Cart.Load(ctx)
		return cartLoadedMsg{items: items, err: err}
	})
}

func (m *CartModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m CartModel) Update(msg tea.Msg) (CartModel, tea.Cmd) {
	switch msg := msg.(type) {
	case cartLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.failed = true
			return m, checkExpired(msg.err)
		}
		m.items = msg.items
		if m.cursor >= len(m.items) {
			m.cursor = len(m.items) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case cartMutatedMsg:
		if msg.err != nil {
			m.status = "❌ Não foi possível atualizar o carrinho"
			return m, checkExpired(msg.err)
		}
		m.status = ""
		m.items = msg.items
		if m.cursor >= len(m.items) {
			m.cursor = len(m.items) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
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
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "+", "=":
			if it, ok := m.selected(); ok {
				return m, m.setQuantity(it.ID, it.Quantity+1)
			}
		case "-":
			if it, ok := m.selected(); ok {
				// Quantity never drops below 1; use d to remove.
				if it.Quantity > 1 {
					return m, m.setQuantity(it.ID, it.Quantity-1)
				}
			}
		case "d", "delete":
			if it, ok := m.selected(); ok {
				deps := m.deps
				id := it.ID
				return m, func() tea.Msg {
					ctx, cancel := PageContext(deps.Cfg)
					defer cancel()
					err := deps.Cart.Remove(ctx, id)
					return cartMutatedMsg{items: deps.Cart.Items(), err: err}
				}
			}
		case "r":
			return m, m.Load()
		}
	}
	return m, nil
}

func (m CartModel) selected() (types.CartItem, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return types.CartItem{}, false
	}
	return m.items[m.cursor], true
}

func (m CartModel) setQuantity(lineID, quantity int) tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		ctx, cancel := PageContext(deps.Cfg)
		defer cancel()
		err := deps.Cart.SetQuantity(ctx, lineID, quantity)
		return cartMutatedMsg{items: deps.Cart.Items(), err: err}
	}
}

func (m CartModel) View() string {
	var sb strings.Builder
	st := m.deps.Styles

	sb.WriteString(st.Title.Render("🛒 Meu Carrinho"))
	sb.WriteString("\n\n")

	if m.loading {
		sb.WriteString(m.spinner.View())
		sb.WriteString(" Carregando carrinho...\n")
		return sb.String()
	}
	if m.failed {
		sb.WriteString(st.Error.Render("Não foi possível carregar o carrinho."))
		sb.WriteString("\n")
		sb.WriteString(st.Help.Render("r: tentar novamente"))
		sb.WriteString("\n")
		return sb.String()
	}

	if len(m.items) == 0 {
		sb.WriteString(st.Muted.Render("Seu carrinho está vazio"))
		sb.WriteString("\n\n")
		sb.WriteString(st.Help.Render("1: continuar comprando"))
		sb.WriteString("\n")
		return sb.String()
	}

	for i, it := range m.items {
		marker := "  "
		line := fmt.Sprintf("%s  %s x%d  =  %s",
			pad(truncate(it.Product.Name, 34), 34),
			it.Product.Price.Format(),
			it.Quantity,
			types.Price(it.Subtotal()).Format())
		if i == m.cursor {
			marker = st.Badge.Render("> ")
			line = st.Selected.Render(line)
		}
		sb.WriteString(marker)
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	total := m.deps.Cart.Total()
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Subtotal: %s\n", types.Price(total).Format()))
	sb.WriteString("Frete: " + st.Success.Render("Grátis") + "\n")
	sb.WriteString(st.Price.Render(fmt.Sprintf("Total: %s", types.Price(total).Format())))
	sb.WriteString("\n")

	if m.status != "" {
		sb.WriteString("\n")
		sb.WriteString(st.Error.Render(m.status))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(st.Help.Render("↑/↓ item · +/- quantidade · d: remover · r: recarregar"))
	sb.WriteString("\n")
	return sb.String()
}
