package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the console
type Styles struct {
	Title       lipgloss.Style
	Section     lipgloss.Style
	Dim         lipgloss.Style
	Label       lipgloss.Style
	Value       lipgloss.Style
	FieldError  lipgloss.Style
	TableHeader lipgloss.Style
	RowSelected lipgloss.Style
	Badge       lipgloss.Style
	BadgeWarn   lipgloss.Style
	BadgeError  lipgloss.Style
	Help        lipgloss.Style
	Main        lipgloss.Style
	ToastInfo   lipgloss.Style
	ToastError  lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Section: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginTop(1),
		Dim:         lipgloss.NewStyle().Faint(true),
		Label:       lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		Value:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		FieldError:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		TableHeader: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("241")),
		RowSelected: lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Badge:       lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		BadgeWarn:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		BadgeError:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Help:        lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		ToastInfo: lipgloss.NewStyle().
			Foreground(lipgloss.Color("78")).
			Bold(true),
		ToastError: lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Bold(true),
	}
}
