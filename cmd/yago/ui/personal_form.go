package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"yagomarket/internal/api"
)

const (
	personalFieldName = iota
	personalFieldEmail
	personalFieldCurrent
	personalFieldNew
	personalFieldConfirm
	personalFieldCount
)

// PersonalFormModel edits identity data. The password block is optional;
// leaving all three password fields empty keeps the current password.
type PersonalFormModel struct {
	deps    Deps
	spinner spinner.Model

	inputs [personalFieldCount]textinput.Model
	focus  int

	saving      bool
	banner      string
	fieldErrors map[string][]string

	width  int
	height int
}

type personalSavedMsg struct{ err error }

func NewPersonalForm(deps Deps) PersonalFormModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = deps.Styles.Spinner

	m := PersonalFormModel{deps: deps, spinner: sp}
	labels := []string{"Nome", "Email", "Senha atual", "Nova senha", "Confirmar nova senha"}
	for i, label := range labels {
		in := textinput.New()
		in.Placeholder = label
		in.CharLimit = 120
		if i >= personalFieldCurrent {
			in.EchoMode = textinput.EchoPassword
		}
		m.inputs[i] = in
	}
	return m
}

// Open prefills name and email from the session.
func (m *PersonalFormModel) Open() {
	sess, _ := m.deps.Sessions.Current()
	m.inputs[personalFieldName].SetValue(sess.User.Name)
	m.inputs[personalFieldEmail].SetValue(sess.User.Email)
	for i := personalFieldCurrent; i < personalFieldCount; i++ {
		m.inputs[i].SetValue("")
	}
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.banner = ""
	m.fieldErrors = nil
	m.saving = false
	m.focus = personalFieldName
	m.inputs[m.focus].Focus()
}

func (m *PersonalFormModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *PersonalFormModel) cycleFocus(delta int) {
	m.inputs[m.focus].Blur()
	m.focus += delta
	if m.focus < 0 {
		m.focus = personalFieldCount - 1
	}
	if m.focus >= personalFieldCount {
		m.focus = 0
	}
	m.inputs[m.focus].Focus()
}

func (m PersonalFormModel) Update(msg tea.Msg) (PersonalFormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case personalSavedMsg:
		m.saving = false
		if msg.err != nil {
			if apiErr, ok := api.AsAPIError(msg.err); ok {
				m.fieldErrors = apiErr.Fields
				m.banner = apiErr.Message
				if m.banner == "" {
					m.banner = "Não foi possível atualizar seus dados"
				}
			} else {
				m.banner = "Não foi possível atualizar seus dados"
			}
			return m, checkExpired(msg.err)
		}
		// The backend has the new data; mirror it into the local session
		// so the UI reflects it without a re-login.
		if sess, ok := m.deps.Sessions.Current(); ok {
			user := sess.User
			user.Name = strings.TrimSpace(m.inputs[personalFieldName].Value())
			user.Email = strings.TrimSpace(m.inputs[personalFieldEmail].Value())
			if err := m.deps.Sessions.SetUser(user); err != nil {
				m.deps.Logger.Warn("session update failed", zap.Error(err))
			}
		}
		return m, Navigate(RouteProfile)

	case spinner.TickMsg:
		if m.saving {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if m.saving {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			m.cycleFocus(1)
			return m, nil
		case "shift+tab", "up":
			m.cycleFocus(-1)
			return m, nil
		case "enter":
			return m, m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *PersonalFormModel) submit() tea.Cmd {
	name := strings.TrimSpace(m.inputs[personalFieldName].Value())
	email := strings.TrimSpace(m.inputs[personalFieldEmail].Value())
	current := m.inputs[personalFieldCurrent].Value()
	newPass := m.inputs[personalFieldNew].Value()
	confirm := m.inputs[personalFieldConfirm].Value()

	if name == "" || email == "" {
		m.banner = "Nome e email são obrigatórios"
		return nil
	}

	changingPassword := current != "" || newPass != "" || confirm != ""
	if changingPassword {
		switch {
		case current == "":
			m.banner = "Informe a senha atual para alterá-la"
			return nil
		case len(newPass) < 6:
			m.banner = "A nova senha deve ter pelo menos 6 caracteres"
			return nil
		case newPass != confirm:
			m.banner = "As senhas não coincidem"
			return nil
		}
	}

	sess, ok := m.deps.Sessions.Current()
	if !ok {
		return Navigate(RouteAuth)
	}

	req := api.UpdateUserRequest{Name: name, Email: email}
	if changingPassword {
		req.CurrentPassword = current
		req.NewPassword = newPass
		req.NewPasswordConfirmation = confirm
	}

	m.saving = true
	m.banner = ""
	m.fieldErrors = nil

	deps := m.deps
	userID := sess.User.ID
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx, cancel := PageContext(deps.Cfg)
		defer cancel()
		return personalSavedMsg{err: deps.Client.UpdateUser(ctx, userID, req)}
	})
}

func (m PersonalFormModel) View() string {
	var sb strings.Builder
	st := m.deps.Styles

	sb.WriteString(st.Title.Render("Editar Dados Pessoais"))
	sb.WriteString("\n\n")

	labels := []string{"Nome", "Email", "Senha atual", "Nova senha", "Confirmar nova senha"}
	keys := []string{"name", "email", "current_password", "password", "password_confirmation"}
	for i, in := range m.inputs {
		if i == personalFieldCurrent {
			sb.WriteString("\n")
			sb.WriteString(st.Muted.Render("Deixe em branco para manter a senha atual"))
			sb.WriteString("\n")
		}
		sb.WriteString(st.Label.Render(labels[i]))
		sb.WriteString("\n")
		sb.WriteString(st.Input.Render(in.View()))
		sb.WriteString("\n")
		if msgs, ok := m.fieldErrors[keys[i]]; ok && len(msgs) > 0 {
			sb.WriteString(st.Error.Render(msgs[0]))
			sb.WriteString("\n")
		}
	}

	if m.saving {
		sb.WriteString("\n")
		sb.WriteString(m.spinner.View())
		sb.WriteString(" Salvando...\n")
	}
	if m.banner != "" {
		sb.WriteString("\n")
		sb.WriteString(st.Error.Render(m.banner))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(st.Help.Render("enter: salvar · tab: próximo campo · esc: voltar"))
	sb.WriteString("\n")
	return sb.String()
}
