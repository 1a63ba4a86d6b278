package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"agentchat/internal/models"
)

type pickerAction int

const (
	pickerNone pickerAction = iota
	pickerClose
	pickerSelectModel
	pickerSelectProvider
)

// pickerResult tells the app what the picker wants done
type pickerResult struct {
	action   pickerAction
	model    models.ModelInfo
	provider models.Provider
}

// ModelPicker browses providers and searches their models
type ModelPicker struct {
	providers []models.ProviderInfo
	provider  int
	search    textinput.Model
	cursor    int
	current   string
}

func NewModelPicker(current models.ModelInfo) *ModelPicker {
	search := textinput.New()
	search.Placeholder = "Search models..."
	search.Prompt = "/ "
	search.CharLimit = 64
	search.Focus()

	p := &ModelPicker{
		providers: models.Providers(),
		search:    search,
		current:   current.ID,
	}
	for i, info := range p.providers {
		if info.ID == current.Provider {
			p.provider = i
		}
	}
	for i, m := range p.Models() {
		if m.ID == current.ID {
			p.cursor = i
		}
	}
	return p
}

// Provider is the provider being browsed
func (p *ModelPicker) Provider() models.ProviderInfo {
	return p.providers[p.provider]
}

// Models returns the browsed provider's models matching the search box
func (p *ModelPicker) Models() []models.ModelInfo {
	return models.Search(p.Provider().ID, p.search.Value())
}

// Update handles picker keys. Left/right and tab only browse providers and
// change nothing; enter selects the highlighted model and ctrl+p selects the
// browsed provider's first model. Other keys edit the search box.
func (p *ModelPicker) Update(msg tea.KeyMsg) (pickerResult, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return pickerResult{action: pickerClose}, nil
	case "left", "shift+tab":
		p.switchProvider(-1)
		return pickerResult{}, nil
	case "right", "tab":
		p.switchProvider(1)
		return pickerResult{}, nil
	case "up", "ctrl+k":
		if p.cursor > 0 {
			p.cursor--
		}
		return pickerResult{}, nil
	case "down", "ctrl+j":
		if p.cursor < len(p.Models())-1 {
			p.cursor++
		}
		return pickerResult{}, nil
	case "ctrl+p":
		return pickerResult{action: pickerSelectProvider, provider: p.Provider().ID}, nil
	case "enter":
		list := p.Models()
		if p.cursor < len(list) {
			return pickerResult{action: pickerSelectModel, model: list[p.cursor]}, nil
		}
		return pickerResult{}, nil
	}

	var cmd tea.Cmd
	before := p.search.Value()
	p.search, cmd = p.search.Update(msg)
	if p.search.Value() != before {
		p.cursor = 0
	}
	return pickerResult{}, cmd
}

func (p *ModelPicker) switchProvider(delta int) {
	n := len(p.providers)
	p.provider = (p.provider + delta + n) % n
	p.search.SetValue("")
	p.cursor = 0
}

func (p *ModelPicker) Render(width, height int) string {
	var content strings.Builder

	content.WriteString(TitleStyle.Render("MODEL"))
	content.WriteString("\n\n")

	tabs := make([]string, 0, len(p.providers))
	for i, info := range p.providers {
		if i == p.provider {
			tabs = append(tabs, ActiveTabStyle.Foreground(ProviderColor(info.ID)).Render(info.Name))
		} else {
			tabs = append(tabs, InactiveTabStyle.Render(info.Name))
		}
	}
	content.WriteString(strings.Join(tabs, "  "))
	content.WriteString("\n")
	content.WriteString(DimStyle.Render(p.Provider().Description))
	content.WriteString("\n\n")
	content.WriteString(p.search.View())
	content.WriteString("\n\n")

	list := p.Models()
	if len(list) == 0 {
		content.WriteString(DimStyle.Render("No models found"))
		content.WriteString("\n")
	}
	for i, m := range list {
		cursor := "  "
		nameStyle := lipgloss.NewStyle().Foreground(White).Bold(true)
		if i == p.cursor {
			cursor = "> "
			nameStyle = nameStyle.Foreground(Cyan)
		}
		check := " "
		if m.ID == p.current {
			check = StatusOK.Render("✓")
		}

		line := cursor + check + " " + nameStyle.Render(m.Name)
		for _, tag := range m.Capabilities.Tags() {
			line += " " + tagStyles[tag].Render("["+tag+"]")
		}
		content.WriteString(line)
		content.WriteString("\n")
		content.WriteString(fmt.Sprintf("     %s\n", DimStyle.Render(m.Description)))
		content.WriteString(fmt.Sprintf("     %s\n", DimStyle.Italic(true).Render(m.Model)))
	}

	content.WriteString("\n")
	content.WriteString(DimStyle.Render("←/→: Provider | ↑/↓: Model | Enter: Select | Ctrl+P: Use provider default | Esc: Close"))

	return overlay(content.String(), width, height)
}

// overlay centers content in a bordered box, the way every popup is drawn
func overlay(content string, width, height int) string {
	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Cyan).
		Padding(1, 2).
		MaxWidth(width - 10).
		MaxHeight(height - 4)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		overlayStyle.Render(content),
	)
}
