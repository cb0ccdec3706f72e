package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/planwise/planwise/internal/tui/tuistyles"
)

// MetricCard displays one plan metric with a label, a value, and an
// optional delta against the base scenario.
type MetricCard struct {
	Label string
	Value string
	Delta string
	Up    bool
	Width int
}

// NewMetricCard creates a card with the default width.
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{Label: label, Value: value, Width: 24}
}

// WithDelta attaches a change indicator, e.g. "+$4.0K vs base".
func (m *MetricCard) WithDelta(up bool, delta string) *MetricCard {
	m.Up = up
	m.Delta = delta
	return m
}

// Render returns the bordered card.
func (m *MetricCard) Render() string {
	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" +
		tuistyles.MetricValueStyle.Render(m.Value)

	if m.Delta != "" {
		style := tuistyles.MetricTrendStyle(m.Up)
		content += "\n" + style.Render(tuistyles.TrendIndicator(m.Up)+" "+m.Delta)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 2).
		Width(m.Width).
		Render(content)
}

// CardRow renders cards side by side.
func CardRow(cards ...*MetricCard) string {
	rendered := make([]string, len(cards))
	for i, card := range cards {
		rendered[i] = card.Render()
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
