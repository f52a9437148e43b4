package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"yagomarket/internal/api"
	"yagomarket/internal/types"
)

var contactFieldLabels = []string{"Telefone", "Endereço", "Cidade", "Estado", "País", "CEP"}
var contactFieldKeys = []string{"phone", "address", "city", "state", "country", "zip_code"}

// ContactFormModel edits the contact profile. All six fields are required.
type ContactFormModel struct {
	deps    Deps
	spinner spinner.Model

	inputs []textinput.Model
	focus  int

	saving      bool
	banner      string
	fieldErrors map[string][]string

	width  int
	height int
}

type contactSavedMsg struct{ err error }

type contactPrefillMsg struct {
	profile types.Profile
	found   bool
}

func NewContactForm(deps Deps) ContactFormModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = deps.Styles.Spinner

	inputs := make([]textinput.Model, len(contactFieldLabels))
	for i, label := range contactFieldLabels {
		in := textinput.New()
		in.Placeholder = label
		in.CharLimit = 120
		inputs[i] = in
	}
	return ContactFormModel{deps: deps, spinner: sp, inputs: inputs}
}

// Open prefills the form from the given profile. Without one it fetches
// its own copy, so reaching the form before the account page finished
// loading still prefills an existing profile.
func (m *ContactFormModel) Open(p types.Profile, has bool) tea.Cmd {
	values := []string{"", "", "", "", "", ""}
	if has {
		values = []string{p.Phone, p.Address, p.City, p.State, p.Country, p.ZipCode}
	}
	for i := range m.inputs {
		m.inputs[i].SetValue(values[i])
		m.inputs[i].Blur()
	}
	m.banner = ""
	m.fieldErrors = nil
	m.saving = false
	m.focus = 0
	m.inputs[0].Focus()

	if has {
		return nil
	}
	sess, ok := m.deps.Sessions.Current()
	if !ok {
		return nil
	}
	deps := m.deps
	userID := sess.User.ID
	return func() tea.Msg {
		ctx, cancel := PageContext(deps.Cfg)
		defer cancel()
		fetched, found := deps.Profiles.Fetch(ctx, userID)
		return contactPrefillMsg{profile: fetched, found: found}
	}
}

// prefill fills the fields the user has not touched yet.
func (m *ContactFormModel) prefill(p types.Profile) {
	values := []string{p.Phone, p.Address, p.City, p.State, p.Country, p.ZipCode}
	for i := range m.inputs {
		if m.inputs[i].Value() == "" {
			m.inputs[i].SetValue(values[i])
		}
	}
}

func (m *ContactFormModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *ContactFormModel) cycleFocus(delta int) {
	m.inputs[m.focus].Blur()
	m.focus += delta
	if m.focus < 0 {
		m.focus = len(m.inputs) - 1
	}
	if m.focus >= len(m.inputs) {
		m.focus = 0
	}
	m.inputs[m.focus].Focus()
}

func (m ContactFormModel) Update(msg tea.Msg) (ContactFormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case contactPrefillMsg:
		if msg.found {
			m.prefill(msg.profile)
		}
		return m, nil

	case contactSavedMsg:
		m.saving = false
		if msg.err != nil {
			if apiErr, ok := api.AsAPIError(msg.err); ok {
				m.fieldErrors = apiErr.Fields
				m.banner = apiErr.Message
				if m.banner == "" {
					m.banner = "Não foi possível salvar o perfil"
				}
			} else {
				m.banner = "Não foi possível salvar o perfil"
			}
			return m, checkExpired(msg.err)
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

func (m *ContactFormModel) submit() tea.Cmd {
	for i := range m.inputs {
		if strings.TrimSpace(m.inputs[i].Value()) == "" {
			m.banner = "Preencha todos os campos"
			return nil
		}
	}
	sess, ok := m.deps.Sessions.Current()
	if !ok {
		return Navigate(RouteAuth)
	}

	p := types.Profile{
		Phone:   strings.TrimSpace(m.inputs[0].Value()),
		Address: strings.TrimSpace(m.inputs[1].Value()),
		City:    strings.TrimSpace(m.inputs[2].Value()),
		State:   strings.TrimSpace(m.inputs[3].Value()),
		Country: strings.TrimSpace(m.inputs[4].Value()),
		ZipCode: strings.TrimSpace(m.inputs[5].Value()),
	}

	m.saving = true
	m.banner = ""
	m.fieldErrors = nil

	deps := m.deps
	userID := sess.User.ID
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx, cancel := PageContext(deps.Cfg)
		defer cancel()
		return contactSavedMsg{err: deps.Profiles.Save(ctx, userID, p)}
	})
}

func (m ContactFormModel) View() string {
	var sb strings.Builder
	st := m.deps.Styles

	sb.WriteString(st.Title.Render("Editar Contato"))
	sb.WriteString("\n\n")

	for i, in := range m.inputs {
		sb.WriteString(st.Label.Render(contactFieldLabels[i]))
		sb.WriteString("\n")
		sb.WriteString(st.Input.Render(in.View()))
		sb.WriteString("\n")
		if msgs, ok := m.fieldErrors[contactFieldKeys[i]]; ok && len(msgs) > 0 {
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
