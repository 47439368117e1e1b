package draw

import "github.com/charmbracelet/lipgloss"

// Layout constants
const (
	CellW     = 7 // width of each step column in characters
	gateNameW = 3 // width of gate name inside box
	gateBoxW  = 5 // ┤ + gateNameW + ├
)

// Theme holds the lipgloss styles of a diagram.
type Theme struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Ancilla lipgloss.Style
	Gate    lipgloss.Style
	Dim     lipgloss.Style
	Cursor  lipgloss.Style
}

// ColorTheme is the default colored theme.
var ColorTheme = Theme{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ff9e64")),
	Label: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7dcfff")),
	Ancilla: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#e0af68")),
	Gate: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#73daca")),
	Dim: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#565f89")),
	Cursor: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ff9e64")),
}

// PlainTheme renders without any styling.
var PlainTheme = Theme{
	Title:   lipgloss.NewStyle(),
	Label:   lipgloss.NewStyle(),
	Ancilla: lipgloss.NewStyle(),
	Gate:    lipgloss.NewStyle(),
	Dim:     lipgloss.NewStyle(),
	Cursor:  lipgloss.NewStyle(),
}
