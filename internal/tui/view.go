package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/planwise/planwise/internal/compare"
	"github.com/planwise/planwise/internal/tui/components"
	"github.com/planwise/planwise/internal/tui/tuistyles"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.err != nil {
		return m.renderApp(tuistyles.ErrorStyle.Render(
			fmt.Sprintf("Error: %s\n\nPress any key to continue", m.err),
		))
	}
	if m.loading {
		return m.renderApp(tuistyles.BorderStyle.Render("Working..."))
	}

	var content string
	switch m.currentScene {
	case SceneHome:
		content = m.renderHome()
	case SceneScenarios:
		content = m.renderScenarios()
	case SceneAdjust:
		content = m.renderAdjust()
	case SceneResults:
		content = m.renderResults()
	case SceneCompare:
		content = m.renderCompare()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with the title bar and status bar.
func (m Model) renderApp(content string) string {
	title := tuistyles.TitleStyle.Render("planwise - savings planner")

	breadcrumb := m.currentScene.String()
	if m.selectedScenario != "" {
		breadcrumb += " / " + m.selectedScenario
	}

	contentHeight := m.height - 4
	body := lipgloss.NewStyle().Height(contentHeight).Render(content)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		tuistyles.SubtitleStyle.Render(breadcrumb),
		body,
		m.renderStatusBar(),
	)
}

func (m Model) renderStatusBar() string {
	shortcuts := []string{
		shortcut("s", "scenarios"),
		shortcut("a", "adjust"),
		shortcut("r", "results"),
		shortcut("c", "compare"),
		shortcut("?", "help"),
		shortcut("q", "quit"),
	}
	return tuistyles.StatusBarStyle.Width(m.width).Render(strings.Join(shortcuts, " • "))
}

func shortcut(key, desc string) string {
	return tuistyles.StatusKeyStyle.Render(key) + " " + desc
}

// renderHome shows the headline metrics for the selected scenario.
func (m Model) renderHome() string {
	if m.config == nil {
		return tuistyles.BorderStyle.Render("Loading configuration...")
	}

	intro := fmt.Sprintf("Profile: $%s/mo income, %d scenario(s)\n",
		m.config.Profile.MonthlyIncome.StringFixed(0), len(m.config.Scenarios))

	if m.result == nil {
		return tuistyles.BorderStyle.Render(intro + "\nSelect a scenario to run a plan.")
	}

	cards := components.CardRow(
		components.NewMetricCard("Savings rate",
			tuistyles.FormatPercent(m.result.IncomePlan.Next.SavingsPct)),
		components.NewMetricCard("Monthly savings",
			tuistyles.FormatCurrency(m.result.Savings.Budget)),
		components.NewMetricCard("Final net worth",
			tuistyles.FormatCurrency(m.result.FinalNetWorth())),
	)

	return intro + "\n" + cards
}

// renderScenarios shows the scenario list with a selection cursor.
func (m Model) renderScenarios() string {
	if m.config == nil || len(m.config.Scenarios) == 0 {
		return tuistyles.BorderStyle.Render("No scenarios in configuration.")
	}

	var sb strings.Builder
	for i, scenario := range m.config.Scenarios {
		line := fmt.Sprintf("%s  (savings target %s)",
			scenario.Name, tuistyles.FormatPercent(scenario.Target.SavingsPct))

		if i == m.scenarioCursor {
			sb.WriteString(tuistyles.SelectedItemStyle.Render("> " + line))
		} else {
			sb.WriteString(tuistyles.UnselectedItemStyle.Render("  " + line))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(tuistyles.InfoStyle.Render("↑/↓ to move, enter to run"))

	return tuistyles.BorderStyle.Render(sb.String())
}

// renderAdjust shows the sliders with the plan recomputed on every change.
func (m Model) renderAdjust() string {
	var sb strings.Builder
	for i, slider := range m.sliders {
		slider.Focused = i == m.sliderCursor
		sb.WriteString(slider.View())
		sb.WriteString("\n")
	}

	if m.result != nil {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("Monthly savings %s   Final net worth %s",
			tuistyles.FormatCurrency(m.result.Savings.Budget),
			tuistyles.FormatCurrency(m.result.FinalNetWorth())))
		sb.WriteString("\n\n")
		sb.WriteString(components.NewNetWorthChart("Net worth", seriesPoints(m)).Render())
	}

	sb.WriteString("\n")
	sb.WriteString(tuistyles.InfoStyle.Render("←/→ to adjust, ↑/↓ to switch knob"))

	return tuistyles.ActiveBorderStyle.Render(sb.String())
}

// renderResults shows the full plan for the selected scenario.
func (m Model) renderResults() string {
	if m.result == nil {
		return tuistyles.BorderStyle.Render("Run a scenario first (s).")
	}
	r := m.result

	var sb strings.Builder
	sb.WriteString(components.CardRow(
		components.NewMetricCard("Savings rate", tuistyles.FormatPercent(r.IncomePlan.Next.SavingsPct)),
		components.NewMetricCard("Emergency fund", tuistyles.FormatCurrency(r.Savings.EmergencyFund)),
		components.NewMetricCard("Retirement", tuistyles.FormatCurrency(r.Savings.RetirementTotal())),
	))
	sb.WriteString("\n")
	sb.WriteString(components.NewNetWorthChart("Net worth projection", seriesPoints(m)).Render())
	sb.WriteString("\n\n")

	for _, milestone := range r.Series.Milestones {
		sb.WriteString(fmt.Sprintf("  %-10s %s\n", milestone.Label+":",
			tuistyles.FormatCurrency(milestone.Value)))
	}

	for _, payoff := range r.Series.Payoffs {
		switch {
		case payoff.PayoffMonth != nil:
			sb.WriteString(fmt.Sprintf("  %s: paid off in month %d\n", payoff.DebtName, *payoff.PayoffMonth))
		case payoff.NonAmortizing:
			sb.WriteString(tuistyles.WarningStyle.Render(
				fmt.Sprintf("  %s: never pays off at the current payment", payoff.DebtName)))
			sb.WriteString("\n")
		default:
			sb.WriteString(fmt.Sprintf("  %s: still open at end of horizon\n", payoff.DebtName))
		}
	}

	for _, warning := range r.Savings.Warnings {
		sb.WriteString(tuistyles.WarningStyle.Render("  ! " + warning))
		sb.WriteString("\n")
	}

	return sb.String()
}

// renderCompare shows the comparison table against the selected base.
func (m Model) renderCompare() string {
	if m.comparison == nil {
		return tuistyles.BorderStyle.Render("No comparison yet. Press c from Home.")
	}
	table := (&compare.TableFormatter{}).Format(m.comparison)
	return table
}

func (m Model) renderHelp() string {
	helpText := `planwise interactive planner

NAVIGATION
  s        scenario list
  a        adjust sliders (live recompute)
  r        results for the selected scenario
  c        compare scenarios
  H        home
  esc      back
  q        quit

ADJUSTING
  ↑/↓      switch between sliders
  ←/→      change the focused value`

	return tuistyles.BorderStyle.Render(helpText)
}

// seriesPoints converts the decimal net worth series to floats for the chart.
func seriesPoints(m Model) []float64 {
	points := make([]float64, 0, m.result.Series.Months())
	for _, v := range m.result.Series.NetWorth {
		f, _ := v.Float64()
		points = append(points, f)
	}
	return points
}
