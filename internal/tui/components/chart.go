package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/planwise/planwise/internal/tui/tuistyles"
)

// NetWorthChart renders a monthly net worth series as a filled area chart.
type NetWorthChart struct {
	Title  string
	Points []float64
	Width  int
	Height int
}

// NewNetWorthChart creates a chart with default dimensions.
func NewNetWorthChart(title string, points []float64) *NetWorthChart {
	return &NetWorthChart{
		Title:  title,
		Points: points,
		Width:  56,
		Height: 10,
	}
}

// Render returns the styled chart, or a placeholder when there is no data.
func (c *NetWorthChart) Render() string {
	if len(c.Points) == 0 {
		return tuistyles.InfoStyle.Render("No projection to display")
	}

	columns := c.resample()
	low, high := bounds(columns)
	span := high - low
	if span == 0 {
		span = 1
	}

	axisWidth := 8
	fill := lipgloss.NewStyle().Foreground(tuistyles.ColorSecondary)
	axis := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)

	var sb strings.Builder
	if c.Title != "" {
		sb.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(c.Title))
		sb.WriteString("\n")
	}

	// Each row covers an equal slice of the value range; a column is filled
	// from its level down to the baseline.
	for row := 0; row < c.Height; row++ {
		threshold := high - span*float64(row)/float64(c.Height-1)

		label := ""
		if row == 0 {
			label = compactDollars(high)
		} else if row == c.Height-1 {
			label = compactDollars(low)
		}
		sb.WriteString(axis.Render(fmt.Sprintf("%*s │", axisWidth, label)))

		var line strings.Builder
		for _, v := range columns {
			if v >= threshold {
				line.WriteString("█")
			} else {
				line.WriteString(" ")
			}
		}
		sb.WriteString(fill.Render(line.String()))
		sb.WriteString("\n")
	}

	sb.WriteString(axis.Render(strings.Repeat(" ", axisWidth) + " └" + strings.Repeat("─", len(columns))))
	sb.WriteString("\n")
	sb.WriteString(axis.Render(fmt.Sprintf("%*smonth 1 .. month %d", axisWidth+2, "", len(c.Points))))

	return sb.String()
}

// resample reduces or stretches the series to one value per chart column.
func (c *NetWorthChart) resample() []float64 {
	width := c.Width
	if len(c.Points) < width {
		width = len(c.Points)
	}
	columns := make([]float64, width)
	for i := range columns {
		idx := i * (len(c.Points) - 1) / maxInt(1, width-1)
		columns[i] = c.Points[idx]
	}
	return columns
}

func bounds(values []float64) (float64, float64) {
	low, high := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if v < low {
			low = v
		}
		if v > high {
			high = v
		}
	}
	return low, high
}

func compactDollars(v float64) string {
	switch {
	case math.Abs(v) >= 1_000_000:
		return fmt.Sprintf("$%.1fM", v/1_000_000)
	case math.Abs(v) >= 1_000:
		return fmt.Sprintf("$%.0fK", v/1_000)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
