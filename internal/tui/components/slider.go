package components

import (
	"fmt"
	"strings"

	"github.com/planwise/planwise/internal/tui/tuistyles"
)

// Slider is an adjustable numeric parameter rendered as a horizontal bar.
type Slider struct {
	Label   string
	Value   float64
	Min     float64
	Max     float64
	Step    float64
	Unit    string
	Format  string
	Width   int
	Focused bool
}

// NewSlider creates a slider with the given range and step.
func NewSlider(label string, value, min, max, step float64) *Slider {
	return &Slider{
		Label:  label,
		Value:  value,
		Min:    min,
		Max:    max,
		Step:   step,
		Format: "%.1f",
		Width:  28,
	}
}

// Increase bumps the value by one step, clamped to the maximum.
func (s *Slider) Increase() {
	s.Value += s.Step
	if s.Value > s.Max {
		s.Value = s.Max
	}
}

// Decrease lowers the value by one step, clamped to the minimum.
func (s *Slider) Decrease() {
	s.Value -= s.Step
	if s.Value < s.Min {
		s.Value = s.Min
	}
}

func (s *Slider) fraction() float64 {
	if s.Max <= s.Min {
		return 0
	}
	return (s.Value - s.Min) / (s.Max - s.Min)
}

// View renders the slider as label, value, and bar on one line.
func (s *Slider) View() string {
	filled := int(float64(s.Width)*s.fraction() + 0.5)
	if filled > s.Width {
		filled = s.Width
	}
	if filled < 0 {
		filled = 0
	}

	bar := tuistyles.SliderFillStyle.Render(strings.Repeat("█", filled)) +
		tuistyles.SliderTrackStyle.Render(strings.Repeat("░", s.Width-filled))

	valueStr := fmt.Sprintf(s.Format, s.Value) + s.Unit

	labelStyle := tuistyles.SliderLabelStyle
	valueStyle := tuistyles.SliderValueStyle
	marker := "  "
	if s.Focused {
		labelStyle = labelStyle.Bold(true).Foreground(tuistyles.ColorPrimary)
		marker = "> "
	}

	return fmt.Sprintf("%s%s %s %s",
		marker,
		labelStyle.Width(22).Render(s.Label),
		bar,
		valueStyle.Render(valueStr),
	)
}
