// internal/ui/styles.go
package ui

import (
	"github.com/charmbracelet/lipgloss"

	"agentchat/internal/models"
)

var (
	// Colors
	Cyan     = lipgloss.Color("#00FFFF")
	Green    = lipgloss.Color("#00FF00")
	Yellow   = lipgloss.Color("#FFD700")
	Orange   = lipgloss.Color("#FFA500")
	Red      = lipgloss.Color("#FF6B6B")
	Magenta  = lipgloss.Color("#FF00FF")
	SkyBlue  = lipgloss.Color("#87CEEB")
	Purple   = lipgloss.Color("#B48EFF")
	Dim      = lipgloss.Color("#555555")
	White    = lipgloss.Color("#FFFFFF")
	DarkGray = lipgloss.Color("#333333")

	UserColor      = SkyBlue
	AssistantColor = Green
	ToolColor      = Orange
	SystemColor    = Yellow

	// Box styles
	ActiveBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Cyan)

	InactiveBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Dim)

	// Text styles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Cyan)

	UserStyle = lipgloss.NewStyle().
			Foreground(UserColor).
			Bold(true)

	AssistantStyle = lipgloss.NewStyle().
			Foreground(AssistantColor).
			Bold(true)

	SystemStyle = lipgloss.NewStyle().
			Foreground(SystemColor)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(Dim)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(Cyan)

	// Status indicators
	StatusOK   = lipgloss.NewStyle().Foreground(Green).Bold(true)
	StatusWarn = lipgloss.NewStyle().Foreground(Orange).Bold(true)
	StatusCrit = lipgloss.NewStyle().Foreground(Red).Bold(true)

	// Tab styles, used for the provider row of the model picker
	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(Cyan).
			Bold(true).
			Underline(true)

	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(Dim)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(DarkGray).
			Padding(0, 1)
)

// tagStyles colour the capability badges in the model picker
var tagStyles = map[string]lipgloss.Style{
	"thinking":  lipgloss.NewStyle().Foreground(SkyBlue),
	"reasoning": lipgloss.NewStyle().Foreground(Purple),
	"coding":    lipgloss.NewStyle().Foreground(Green),
	"agents":    lipgloss.NewStyle().Foreground(Orange),
}

// ProviderColor returns the accent color for a provider
func ProviderColor(p models.Provider) lipgloss.Color {
	switch p {
	case models.ProviderOpenAI:
		return Green
	case models.ProviderOpenRouter:
		return Orange
	case models.ProviderGemini:
		return Magenta
	case models.ProviderLMStudio:
		return SkyBlue
	default:
		return White
	}
}

// SpeakerStyle returns the header style for a message speaker
func SpeakerStyle(speaker string) lipgloss.Style {
	switch speaker {
	case speakerUser:
		return UserStyle
	case speakerAssistant:
		return AssistantStyle
	case speakerTool:
		return lipgloss.NewStyle().Foreground(ToolColor).Bold(true)
	case speakerSystem:
		return SystemStyle
	default:
		return lipgloss.NewStyle().Foreground(White)
	}
}
