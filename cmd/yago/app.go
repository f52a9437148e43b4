package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"yagomarket/cmd/yago/ui"
)

// appModel owns routing and the navigation bar; each page keeps its own
// state and handles its own messages.
type appModel struct {
	deps  ui.Deps
	route ui.Route
	back  []ui.Route

	home     ui.HomeModel
	catalog  ui.CatalogModel
	category ui.CategoryModel
	product  ui.ProductModel
	cart     ui.CartModel
	auth     ui.AuthModel
	profile  ui.ProfileModel
	contact  ui.ContactFormModel
	personal ui.PersonalFormModel
	publish  ui.PublishModel

	cartCount int
	sessionCh chan struct{}

	width  int
	height int
}

type sessionChangedMsg struct{}

type cartCountMsg struct{ count int }

func newAppModel(deps ui.Deps) appModel {
	m := appModel{
		deps:      deps,
		route:     ui.RouteHome,
		home:      ui.NewHome(deps),
		catalog:   ui.NewCatalog(deps),
		category:  ui.NewCategory(deps),
		product:   ui.NewProduct(deps),
		cart:      ui.NewCart(deps),
		auth:      ui.NewAuth(deps),
		profile:   ui.NewProfile(deps),
		contact:   ui.NewContactForm(deps),
		personal:  ui.NewPersonalForm(deps),
		publish:   ui.NewPublish(deps),
		sessionCh: make(chan struct{}, 1),
	}
	ch := m.sessionCh
	deps.Sessions.Subscribe(func() {
		select {
		case ch <- struct{}{}:
		default:
		}
	})
	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.home.Load(), m.refreshCartCount(), m.waitSessionChange())
}

// waitSessionChange re-arms after every sessionChangedMsg so store updates
// keep flowing into the program loop.
func (m appModel) waitSessionChange() tea.Cmd {
	ch := m.sessionCh
	return func() tea.Msg {
		<-ch
		return sessionChangedMsg{}
	}
}

func (m appModel) refreshCartCount() tea.Cmd {
	if !m.deps.Sessions.Authenticated() {
		return func() tea.Msg { return cartCountMsg{count: 0} }
	}
	deps := m.deps
	return func() tea.Msg {
		ctx, cancel := ui.PageContext(deps.Cfg)
		defer cancel()
		n, err := deps.Client.CartItemsCount(ctx)
		if err != nil {
			deps.Logger.Warn("cart count refresh failed", zap.Error(err))
			return cartCountMsg{count: 0}
		}
		return cartCountMsg{count: n}
	}
}

// formRoute reports whether the route captures plain keystrokes, which
// disables the single-letter global shortcuts.
func formRoute(r ui.Route) bool {
	switch r {
	case ui.RouteAuth, ui.RouteEditContact, ui.RouteEditPersonal, ui.RoutePublish:
		return true
	}
	return false
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.home.SetSize(msg.Width, msg.Height)
		m.catalog.SetSize(msg.Width, msg.Height)
		m.category.SetSize(msg.Width, msg.Height)
		m.product.SetSize(msg.Width, msg.Height)
		m.cart.SetSize(msg.Width, msg.Height)
		m.auth.SetSize(msg.Width, msg.Height)
		m.profile.SetSize(msg.Width, msg.Height)
		m.contact.SetSize(msg.Width, msg.Height)
		m.personal.SetSize(msg.Width, msg.Height)
		m.publish.SetSize(msg.Width, msg.Height)
		return m, nil

	case ui.NavigateMsg:
		return m.navigate(msg)

	case ui.SessionExpiredMsg:
		if err := m.deps.Sessions.Clear(); err != nil {
			m.deps.Logger.Warn("session clear failed", zap.Error(err))
		}
		m.auth.Reset()
		m.back = nil
		m.route = ui.RouteAuth
		return m, nil

	case ui.CartChangedMsg:
		return m, m.refreshCartCount()

	case sessionChangedMsg:
		return m, tea.Batch(m.refreshCartCount(), m.waitSessionChange())

	case cartCountMsg:
		m.cartCount = msg.count
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if n := len(m.back); n > 0 {
				m.route = m.back[n-1]
				m.back = m.back[:n-1]
				return m, nil
			}
			if m.route != ui.RouteHome {
				return m.navigate(ui.NavigateMsg{To: ui.RouteHome})
			}
			return m, nil
		}
		if !formRoute(m.route) {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				return m.navigate(ui.NavigateMsg{To: ui.RouteHome})
			case "2":
				return m.navigate(ui.NavigateMsg{To: ui.RouteCatalog})
			case "3":
				return m.navigate(ui.NavigateMsg{To: ui.RouteCart})
			case "4":
				return m.navigate(ui.NavigateMsg{To: ui.RouteProfile})
			case "n":
				return m.navigate(ui.NavigateMsg{To: ui.RoutePublish})
			}
		}
	}

	return m.updatePage(msg)
}

// updatePage forwards a message to the active page only. Spinner ticks and
// page-local messages stay scoped to the page that issued them.
func (m appModel) updatePage(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.route {
	case ui.RouteHome:
		m.home, cmd = m.home.Update(msg)
	case ui.RouteCatalog:
		m.catalog, cmd = m.catalog.Update(msg)
	case ui.RouteCategory:
		m.category, cmd = m.category.Update(msg)
	case ui.RouteProduct:
		m.product, cmd = m.product.Update(msg)
	case ui.RouteCart:
		m.cart, cmd = m.cart.Update(msg)
	case ui.RouteAuth:
		m.auth, cmd = m.auth.Update(msg)
	case ui.RouteProfile:
		m.profile, cmd = m.profile.Update(msg)
	case ui.RouteEditContact:
		m.contact, cmd = m.contact.Update(msg)
	case ui.RouteEditPersonal:
		m.personal, cmd = m.personal.Update(msg)
	case ui.RoutePublish:
		m.publish, cmd = m.publish.Update(msg)
	}
	return m, cmd
}

func (m appModel) navigate(msg ui.NavigateMsg) (tea.Model, tea.Cmd) {
	// The cart, account, and publish pages need a session.
	switch msg.To {
	case ui.RouteCart, ui.RouteProfile, ui.RoutePublish, ui.RouteEditContact, ui.RouteEditPersonal:
		if !m.deps.Sessions.Authenticated() {
			m.auth.Reset()
			m.pushRoute(ui.RouteAuth)
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch msg.To {
	case ui.RouteHome:
		cmd = m.home.Load()
	case ui.RouteCatalog:
		cmd = m.catalog.Load()
	case ui.RouteCategory:
		cmd = m.category.Open(msg.CategoryID, msg.CategoryName)
	case ui.RouteProduct:
		cmd = m.product.Open(msg.ProductRef)
	case ui.RouteCart:
		cmd = m.cart.Load()
	case ui.RouteAuth:
		m.auth.Reset()
	case ui.RouteProfile:
		cmd = m.profile.Load()
	case ui.RouteEditContact:
		p, has := m.profile.Profile()
		cmd = m.contact.Open(p, has)
	case ui.RouteEditPersonal:
		m.personal.Open()
	case ui.RoutePublish:
		cmd = m.publish.Open()
	}
	m.pushRoute(msg.To)
	return m, cmd
}

func (m *appModel) pushRoute(to ui.Route) {
	if to == m.route {
		return
	}
	if to == ui.RouteHome {
		m.back = nil
	} else {
		m.back = append(m.back, m.route)
	}
	m.route = to
}

func (m appModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.navBar())
	sb.WriteString("\n\n")

	switch m.route {
	case ui.RouteHome:
		sb.WriteString(m.home.View())
	case ui.RouteCatalog:
		sb.WriteString(m.catalog.View())
	case ui.RouteCategory:
		sb.WriteString(m.category.View())
	case ui.RouteProduct:
		sb.WriteString(m.product.View())
	case ui.RouteCart:
		sb.WriteString(m.cart.View())
	case ui.RouteAuth:
		sb.WriteString(m.auth.View())
	case ui.RouteProfile:
		sb.WriteString(m.profile.View())
	case ui.RouteEditContact:
		sb.WriteString(m.contact.View())
	case ui.RouteEditPersonal:
		sb.WriteString(m.personal.View())
	case ui.RoutePublish:
		sb.WriteString(m.publish.View())
	}
	return sb.String()
}

func (m appModel) navBar() string {
	st := m.deps.Styles

	items := []string{
		"[1] Início",
		"[2] Produtos",
		fmt.Sprintf("[3] Carrinho (%d)", m.cartCount),
		"[4] Conta",
	}
	left := strings.Join(items, "  ")

	right := "Entrar"
	if sess, ok := m.deps.Sessions.Current(); ok {
		right = "👤 " + sess.User.Name
	}
	return st.NavBar.Render(left + "   " + right)
}
