package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"yagomarket/internal/api"
	"yagomarket/internal/types"
)

const (
	publishFieldName = iota
	publishFieldDescription
	publishFieldPrice
	publishFieldStock
	publishFieldCategory
	publishFieldImages
	publishFieldCount
)

// PublishModel is the seller's new-product form. Images are optional local
// file paths, comma separated, uploaded after the product is created.
type PublishModel struct {
	deps    Deps
	spinner spinner.Model

	inputs     [publishFieldCount]textinput.Model
	categories []types.Category
	focus      int

	saving      bool
	banner      string
	bannerErr   bool
	fieldErrors map[string][]string

	width  int
	height int
}

type publishCategoriesMsg struct{ categories []types.Category }

type publishDoneMsg struct {
	product  types.Product
	imageErr error
	err      error
}

func NewPublish(deps Deps) PublishModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = deps.Styles.Spinner

	m := PublishModel{deps: deps, spinner: sp}
	labels := []string{
		"Nome do produto",
		"Descrição",
		"Preço (ex: 149.90)",
		"Quantidade em estoque",
		"ID da categoria",
		"Imagens (caminhos separados por vírgula)",
	}
	for i, label := range labels {
		in := textinput.New()
		in.Placeholder = label
		in.CharLimit = 240
		m.inputs[i] = in
	}
	return m
}

// Open clears the form and refreshes the category list for reference.
func (m *PublishModel) Open() tea.Cmd {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	m.banner = ""
	m.fieldErrors = nil
	m.saving = false
	m.focus = publishFieldName
	m.inputs[m.focus].Focus()

	deps := m.deps
	return func() tea.Msg {
		ctx, cancel := PageContext(deps.Cfg)
		defer cancel()
		cats, err := deps.Client.Categories(ctx)
		if err != nil {
			return publishCategoriesMsg{}
		}
		return publishCategoriesMsg{categories: cats}
	}
}

func (m *PublishModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *PublishModel) cycleFocus(delta int) {
	m.inputs[m.focus].Blur()
	m.focus += delta
	if m.focus < 0 {
		m.focus = publishFieldCount - 1
	}
	if m.focus >= publishFieldCount {
		m.focus = 0
	}
	m.inputs[m.focus].Focus()
}

func (m PublishModel) Update(msg tea.Msg) (PublishModel, tea.Cmd) {
	switch msg := msg.(type) {
	case publishCategoriesMsg:
		m.categories = msg.categories
		return m, nil

	case publishDoneMsg:
		m.saving = false
		if msg.err != nil {
			if apiErr, ok := api.AsAPIError(msg.err); ok {
				m.fieldErrors = apiErr.Fields
				m.banner = apiErr.Message
				if m.banner == "" {
					m.banner = "Não foi possível publicar o produto"
				}
			} else {
				m.banner = "Não foi possível publicar o produto"
			}
			m.bannerErr = true
			return m, checkExpired(msg.err)
		}
		if msg.imageErr != nil {
			m.banner = "Produto publicado, mas o envio das imagens falhou"
			m.bannerErr = true
			return m, nil
		}
		m.banner = "✅ Produto publicado: " + msg.product.Name
		m.bannerErr = false
		for i := range m.inputs {
			m.inputs[i].SetValue("")
		}
		return m, nil

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

func splitImagePaths(raw string) []string {
	var paths []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

func (m *PublishModel) submit() tea.Cmd {
	name := strings.TrimSpace(m.inputs[publishFieldName].Value())
	description := strings.TrimSpace(m.inputs[publishFieldDescription].Value())
	price := strings.TrimSpace(m.inputs[publishFieldPrice].Value())
	stock := strings.TrimSpace(m.inputs[publishFieldStock].Value())
	category := strings.TrimSpace(m.inputs[publishFieldCategory].Value())
	paths := splitImagePaths(m.inputs[publishFieldImages].Value())

	if name == "" || price == "" || stock == "" || category == "" {
		m.banner = "Preencha nome, preço, estoque e categoria"
		m.bannerErr = true
		return nil
	}
	if _, err := strconv.ParseFloat(price, 64); err != nil {
		m.banner = "Preço inválido"
		m.bannerErr = true
		return nil
	}
	if _, err := strconv.Atoi(stock); err != nil {
		m.banner = "Estoque inválido"
		m.bannerErr = true
		return nil
	}
	if len(paths) > api.MaxProductImages {
		m.banner = "No máximo 5 imagens por produto"
		m.bannerErr = true
		return nil
	}

	req := api.CreateProductRequest{
		Name:          name,
		Description:   description,
		Price:         price,
		StockQuantity: stock,
		CategoryID:    category,
		Status:        "active",
	}

	m.saving = true
	m.banner = ""
	m.fieldErrors = nil

	deps := m.deps
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx, cancel := PageContext(deps.Cfg)
		defer cancel()
		product, err := deps.Client.CreateProduct(ctx, req)
		if err != nil {
			return publishDoneMsg{err: err}
		}
		imageErr := deps.Client.UploadProductImages(ctx, product.ID, paths)
		return publishDoneMsg{product: product, imageErr: imageErr}
	})
}

func (m PublishModel) View() string {
	var sb strings.Builder
	st := m.deps.Styles

	sb.WriteString(st.Title.Render("Publicar Produto"))
	sb.WriteString("\n\n")

	labels := []string{"Nome", "Descrição", "Preço", "Estoque", "Categoria", "Imagens"}
	keys := []string{"name", "description", "price", "stock_quantity", "category_id", "images"}
	for i, in := range m.inputs {
		sb.WriteString(st.Label.Render(labels[i]))
		sb.WriteString("\n")
		sb.WriteString(st.Input.Render(in.View()))
		sb.WriteString("\n")
		if msgs, ok := m.fieldErrors[keys[i]]; ok && len(msgs) > 0 {
			sb.WriteString(st.Error.Render(msgs[0]))
			sb.WriteString("\n")
		}
	}

	if len(m.categories) > 0 {
		sb.WriteString("\n")
		sb.WriteString(st.Muted.Render("Categorias disponíveis:"))
		sb.WriteString("\n")
		for _, cat := range m.categories {
			sb.WriteString(st.Muted.Render(strconv.Itoa(cat.ID) + " · " + cat.Name))
			sb.WriteString("\n")
		}
	}

	if m.saving {
		sb.WriteString("\n")
		sb.WriteString(m.spinner.View())
		sb.WriteString(" Publicando...\n")
	}
	if m.banner != "" {
		sb.WriteString("\n")
		if m.bannerErr {
			sb.WriteString(st.Error.Render(m.banner))
		} else {
			sb.WriteString(st.Success.Render(m.banner))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(st.Help.Render("enter: publicar · tab: próximo campo · esc: voltar"))
	sb.WriteString("\n")
	return sb.String()
}
