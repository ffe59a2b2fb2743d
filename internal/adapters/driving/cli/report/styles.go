// Package report renders pooling plans as terminal tables.
package report

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette for reports.
type Theme struct {
	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Secondary is the secondary accent colour.
	Secondary lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Success indicates positive outcomes.
	Success lipgloss.Color

	// Warning highlights flagged rows.
	Warning lipgloss.Color

	// Error indicates problems.
	Error lipgloss.Color

	// Border is the table border colour.
	Border lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:   lipgloss.Color("#7C3AED"), // Purple
		Secondary: lipgloss.Color("#06B6D4"), // Cyan
		Muted:     lipgloss.Color("#6C7086"), // Medium gray
		Success:   lipgloss.Color("#A6E3A1"), // Green
		Warning:   lipgloss.Color("#F9E2AF"), // Yellow
		Error:     lipgloss.Color("#F38BA8"), // Red
		Border:    lipgloss.Color("#45475A"), // Border gray
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	// Title style for section headers.
	Title lipgloss.Style

	// Subtitle style for stage headers.
	Subtitle lipgloss.Style

	// Header style for table header cells.
	Header lipgloss.Style

	// Cell style for regular table cells.
	Cell lipgloss.Style

	// Flagged style for cells of flagged rows.
	Flagged lipgloss.Style

	// Muted style for less important text.
	Muted lipgloss.Style

	// Success style for success messages.
	Success lipgloss.Style

	// Warning style for warnings.
	Warning lipgloss.Style

	// Error style for error messages.
	Error lipgloss.Style

	// Border style for table borders.
	Border lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	cell := lipgloss.NewStyle().Padding(0, 1)

	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Header: cell.
			Bold(true).
			Foreground(theme.Secondary),

		Cell: cell,

		Flagged: cell.
			Foreground(theme.Warning),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Border: lipgloss.NewStyle().
			Foreground(theme.Border),
	}
}

// PlainStyles returns styles without colour or emphasis, for output that
// is not a terminal.
func PlainStyles() *Styles {
	plain := lipgloss.NewStyle()
	cell := plain.Padding(0, 1)
	return &Styles{
		Title:    plain,
		Subtitle: plain,
		Header:   cell,
		Cell:     cell,
		Flagged:  cell,
		Muted:    plain,
		Success:  plain,
		Warning:  plain,
		Error:    plain,
		Border:   plain,
	}
}
