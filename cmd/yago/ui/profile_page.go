package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"yagomarket/internal/types"
)

// ProfileModel shows the account page: identity data plus the contact
// profile, which may not exist yet.
type ProfileModel struct {
	deps    Deps
	spinner spinner.Model

	loading    bool
	profile    types.Profile
	hasProfile bool

	width  int
	height int
}

type profileLoadedMsg struct {
	profile types.Profile
	found   bool
}

func NewProfile(deps Deps) ProfileModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = deps.Styles.Spinner
	return ProfileModel{deps: deps, spinner: sp}
}

func (m *ProfileModel) Load() tea.Cmd {
	sess, ok := m.deps.Sessions.Current()
	if !ok {
		return Navigate(RouteAuth)
	}
	m.loading = true
	deps := m.deps
	userID := sess.User.ID
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx, cancel := PageContext(deps.Cfg)
		defer cancel()
		p, found := deps.Profiles.Fetch(ctx, userID)
		return profileLoadedMsg{profile: p, found: found}
	})
}

func (m *ProfileModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Profile returns the loaded contact profile for prefilling edit forms.
func (m ProfileModel) Profile() (types.Profile, bool) {
	return m.profile, m.hasProfile
}

func (m ProfileModel) Update(msg tea.Msg) (ProfileModel, tea.Cmd) {
	switch msg := msg.(type) {
	case profileLoadedMsg:
		m.loading = false
		m.profile = msg.profile
		m.hasProfile = msg.found
		return m, nil

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
		case "e":
			return m, Navigate(RouteEditContact)
		case "u":
			return m, Navigate(RouteEditPersonal)
		case "ctrl+l":
			if err := m.deps.Sessions.Clear(); err != nil {
				m.deps.Logger.Warn("session clear failed", zap.Error(err))
			}
			return m, tea.Batch(Navigate(RouteHome), func() tea.Msg { return CartChangedMsg{} })
		}
	}
	return m, nil
}

func (m ProfileModel) View() string {
	var sb strings.Builder
	st := m.deps.Styles

	sb.WriteString(st.Title.Render("👤 Minha Conta"))
	sb.WriteString("\n\n")

	sess, ok := m.deps.Sessions.Current()
	if !ok {
		sb.WriteString(st.Muted.Render("Você não está conectado."))
		sb.WriteString("\n")
		return sb.String()
	}

	sb.WriteString(st.Label.Render("Dados pessoais"))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Nome:  %s\n", sess.User.Name))
	sb.WriteString(fmt.Sprintf("Email: %s\n", sess.User.Email))
	if sess.User.Role != "" {
		sb.WriteString(fmt.Sprintf("Tipo:  %s\n", sess.User.Role))
	}
	sb.WriteString("\n")

	sb.WriteString(st.Label.Render("Contato e endereço"))
	sb.WriteString("\n")
	switch {
	case m.loading:
		sb.WriteString(m.spinner.View())
		sb.WriteString(" Carregando perfil...\n")
	case !m.hasProfile:
		sb.WriteString(st.Muted.Render("Você ainda não cadastrou seus dados de contato."))
		sb.WriteString("\n")
	default:
		p := m.profile
		sb.WriteString(fmt.Sprintf("Telefone: %s\n", p.Phone))
		sb.WriteString(fmt.Sprintf("Endereço: %s\n", p.Address))
		sb.WriteString(fmt.Sprintf("Cidade:   %s - %s\n", p.City, p.State))
		sb.WriteString(fmt.Sprintf("País:     %s\n", p.Country))
		sb.WriteString(fmt.Sprintf("CEP:      %s\n", p.ZipCode))
	}

	sb.WriteString("\n")
	sb.WriteString(st.Help.Render("e: editar contato · u: editar dados pessoais · ctrl+l: sair da conta"))
	sb.WriteString("\n")
	return sb.String()
}
