// Package ui is the terminal front end of the launch dashboard.
package ui

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	Heading   = lipgloss.Color("#503D36")
	Primary   = lipgloss.Color("#2563eb")
	Muted     = lipgloss.Color("#6b7280")
	SuccessFg = lipgloss.Color("#16a34a")
	FailureFg = lipgloss.Color("#dc2626")
)

// Styles groups the lipgloss styles used by the model.
type Styles struct {
	Heading  lipgloss.Style
	Label    lipgloss.Style
	Focused  lipgloss.Style
	Blurred  lipgloss.Style
	Title    lipgloss.Style
	Muted    lipgloss.Style
	Axis     lipgloss.Style
	Panel    lipgloss.Style
	Selected lipgloss.Style
}

// DefaultStyles returns the dashboard styles.
func DefaultStyles() Styles {
	return Styles{
		Heading: lipgloss.NewStyle().
			Foreground(Heading).
			Bold(true).
			Align(lipgloss.Center),
		Label: lipgloss.NewStyle().Bold(true),
		Focused: lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true),
		Blurred: lipgloss.NewStyle(),
		Title: lipgloss.NewStyle().
			Bold(true).
			Underline(true),
		Muted: lipgloss.NewStyle().Foreground(Muted),
		Axis:  lipgloss.NewStyle().Foreground(Muted),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Muted).
			Padding(0, 1),
		Selected: lipgloss.NewStyle().Reverse(true),
	}
}

// dot renders a scatter marker in color.
func dot(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("●")
}
