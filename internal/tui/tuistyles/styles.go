// Package tuistyles holds the shared lipgloss palette and styles for the
// interactive planner. It lives in its own package so components and the
// root tui package can both use it without an import cycle.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#7D56F4")
	ColorSecondary = lipgloss.Color("#5A8DEE")
	ColorAccent    = lipgloss.Color("#F2C94C")
	ColorSuccess   = lipgloss.Color("#27AE60")
	ColorDanger    = lipgloss.Color("#EB5757")
	ColorInfo      = lipgloss.Color("#56CCF2")

	ColorForeground = lipgloss.Color("#FAFAFA")
	ColorMuted      = lipgloss.Color("#6C6C6C")
	ColorBorder     = lipgloss.Color("#444444")
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	StatusKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	ActiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary).
				Padding(1, 2)

	SelectedItemStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorAccent)

	UnselectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorForeground)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorForeground)

	SliderLabelStyle = lipgloss.NewStyle().
				Foreground(ColorForeground)

	SliderValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorAccent)

	SliderFillStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)

	SliderTrackStyle = lipgloss.NewStyle().
				Foreground(ColorBorder)

	ErrorStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDanger).
			Foreground(ColorDanger).
			Padding(1, 2)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorInfo)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)
)

// MetricTrendStyle returns the style for a trend indicator.
func MetricTrendStyle(positive bool) lipgloss.Style {
	if positive {
		return lipgloss.NewStyle().Foreground(ColorSuccess)
	}
	return lipgloss.NewStyle().Foreground(ColorDanger)
}

// TrendIndicator returns an arrow glyph for a trend direction.
func TrendIndicator(positive bool) string {
	if positive {
		return "▲"
	}
	return "▼"
}

// FormatCurrency renders a decimal dollar amount for metric cards.
func FormatCurrency(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// FormatPercent renders a fractional rate like 0.20 as "20.0%".
func FormatPercent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
}
