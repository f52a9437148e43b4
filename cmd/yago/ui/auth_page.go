package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"yagomarket/internal/api"
	"yagomarket/internal/types"
)

const (
	authFieldName = iota
	authFieldEmail
	authFieldPassword
	authFieldRole
	authFieldCount
)

// AuthModel is the combined login/register page.
type AuthModel struct {
	deps    Deps
	spinner spinner.Model

	registering bool
	name        textinput.Model
	email       textinput.Model
	password    textinput.Model
	role        string
	focus       int

	submitting  bool
	banner      string
	fieldErrors map[string][]string

	width  int
	height int
}

type authDoneMsg struct {
	session types.Session
	err     error
}

func NewAuth(deps Deps) AuthModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = deps.Styles.Spinner

	name := textinput.New()
	name.Placeholder = "Nome completo"
	name.CharLimit = 120

	email := textinput.New()
	email.Placeholder = "Email"
	email.CharLimit = 120

	password := textinput.New()
	password.Placeholder = "Senha"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 120

	m := AuthModel{
		deps:     deps,
		spinner:  sp,
		name:     name,
		email:    email,
		password: password,
		role:     "client",
	}
	m.setFocus(authFieldEmail)
	return m
}

// Reset clears the form for a fresh visit.
func (m *AuthModel) Reset() {
	m.registering = false
	m.name.SetValue("")
	m.email.SetValue("")
	m.password.SetValue("")
	m.role = "client"
	m.banner = ""
	m.fieldErrors = nil
	m.submitting = false
	m.setFocus(authFieldEmail)
}

func (m *AuthModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *AuthModel) setFocus(field int) {
	m.focus = field
	m.name.Blur()
	m.email.Blur()
	m.password.Blur()
	switch field {
	case authFieldName:
		m.name.Focus()
	case authFieldEmail:
		m.email.Focus()
	case authFieldPassword:
		m.password.Focus()
	}
}

func (m *AuthModel) cycleFocus(delta int) {
	first := authFieldEmail
	last := authFieldPassword
	if m.registering {
		first = authFieldName
		last = authFieldRole
	}
	next := m.focus + delta
	if next < first {
		next = last
	}
	if next > last {
		next = first
	}
	m.setFocus(next)
}

func (m AuthModel) Update(msg tea.Msg) (AuthModel, tea.Cmd) {
	switch msg := msg.(type) {
	case authDoneMsg:
		m.submitting = false
		if msg.err != nil {
			if apiErr, ok := api.AsAPIError(msg.err); ok {
				m.fieldErrors = apiErr.Fields
				m.banner = apiErr.Message
				if m.banner == "" {
					m.banner = "Credenciais inválidas"
				}
			} else {
				m.banner = "Não foi possível conectar ao servidor"
			}
			return m, nil
		}
		if err := m.deps.Sessions.SetSession(msg.session.Token, msg.session.User); err != nil {
			m.deps.Logger.Warn("session persist failed", zap.Error(err))
		}
		return m, tea.Batch(Navigate(RouteHome), func() tea.Msg { return CartChangedMsg{} })

	case spinner.TickMsg:
		if m.submitting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			m.cycleFocus(1)
			return m, nil
		case "shift+tab", "up":
			m.cycleFocus(-1)
			return m, nil
		case "ctrl+t":
			m.registering = !m.registering
			m.banner = ""
			m.fieldErrors = nil
			if m.registering {
				m.setFocus(authFieldName)
			} else {
				m.setFocus(authFieldEmail)
			}
			return m, nil
		case "left", "right":
			if m.focus == authFieldRole {
				if m.role == "client" {
					m.role = "admin"
				} else {
					m.role = "client"
				}
				return m, nil
			}
		case "enter":
			return m, m.submit()
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case authFieldName:
		m.name, cmd = m.name.Update(msg)
	case authFieldEmail:
		m.email, cmd = m.email.Update(msg)
	case authFieldPassword:
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m *AuthModel) submit() tea.Cmd {
	email := strings.TrimSpace(m.email.Value())
	password := m.password.Value()
	name := strings.TrimSpace(m.name.Value())

	if m.registering && name == "" {
		m.banner = "Informe seu nome"
		return nil
	}
	if email == "" || password == "" {
		m.banner = "Preencha email e senha"
		return nil
	}

	m.submitting = true
	m.banner = ""
	m.fieldErrors = nil

	deps := m.deps
	registering := m.registering
	role := m.role
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx, cancel := PageContext(deps.Cfg)
		defer cancel()
		var (
			sess types.Session
			err  error
		)
		if registering {
			sess, err = deps.Client.Register(ctx, name, email, password, role)
		} else {
			sess, err = deps.Client.Login(ctx, email, password)
		}
		return authDoneMsg{session: sess, err: err}
	})
}

func (m AuthModel) fieldError(field string) string {
	if msgs, ok := m.fieldErrors[field]; ok && len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

func (m AuthModel) View() string {
	var sb strings.Builder
	st := m.deps.Styles

	if m.registering {
		sb.WriteString(st.Title.Render("Criar Conta"))
	} else {
		sb.WriteString(st.Title.Render("Entrar"))
	}
	sb.WriteString("\n\n")

	writeField := func(label string, input textinput.Model, errKey string) {
		sb.WriteString(st.Label.Render(label))
		sb.WriteString("\n")
		sb.WriteString(st.Input.Render(input.View()))
		sb.WriteString("\n")
		if e := m.fieldError(errKey); e != "" {
			sb.WriteString(st.Error.Render(e))
			sb.WriteString("\n")
		}
	}

	if m.registering {
		writeField("Nome", m.name, "name")
	}
	writeField("Email", m.email, "email")
	writeField("Senha", m.password, "password")

	if m.registering {
		label := "Tipo de conta: "
		client := "cliente"
		admin := "administrador"
		if m.role == "client" {
			client = st.Selected.Render(client)
		} else {
			admin = st.Selected.Render(admin)
		}
		line := label + client + " / " + admin
		if m.focus == authFieldRole {
			line = st.Badge.Render("> ") + line
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	if m.submitting {
		sb.WriteString("\n")
		sb.WriteString(m.spinner.View())
		sb.WriteString(" Enviando...\n")
	}

	if m.banner != "" {
		sb.WriteString("\n")
		sb.WriteString(st.Error.Render(m.banner))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	if m.registering {
		sb.WriteString(st.Help.Render("enter: criar conta · ctrl+t: já tenho conta · tab: próximo campo"))
	} else {
		sb.WriteString(st.Help.Render("enter: entrar · ctrl+t: criar conta · tab: próximo campo"))
	}
	sb.WriteString("\n")
	return sb.String()
}
