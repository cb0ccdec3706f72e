package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/planwise/planwise/internal/calculation"
	"github.com/planwise/planwise/internal/compare"
	"github.com/planwise/planwise/internal/config"
	"github.com/planwise/planwise/internal/domain"
	"github.com/planwise/planwise/internal/tui/components"
	"github.com/shopspring/decimal"
)

// Model represents the entire application state
type Model struct {
	currentScene  Scene
	previousScene Scene

	width  int
	height int

	configPath string
	config     *domain.Configuration

	planEngine *calculation.PlanEngine

	// Scenario list state
	scenarioCursor   int
	selectedScenario string

	// Adjust scene state: sliders drive a live re-run of the selected
	// scenario with their values overriding the scenario knobs.
	sliders      []*components.Slider
	sliderCursor int

	result     *domain.PlanResult
	comparison *compare.ComparisonSet

	err     error
	loading bool
}

// Slider positions in Model.sliders.
const (
	sliderSavingsRate = iota
	sliderShiftLimit
	sliderExtraPayment
	sliderHorizonYears
)

// NewModel creates a new application model
func NewModel(configPath string) Model {
	savings := components.NewSlider("Savings rate", 20, 0, 60, 1)
	savings.Unit = "%"
	savings.Format = "%.0f"

	shift := components.NewSlider("Shift limit", 4, 1, 25, 1)
	shift.Unit = "%"
	shift.Format = "%.0f"

	extra := components.NewSlider("Extra debt payment", 0, 0, 2000, 25)
	extra.Unit = "/mo"
	extra.Format = "$%.0f"

	horizon := components.NewSlider("Horizon", 30, 1, 40, 1)
	horizon.Unit = " yr"
	horizon.Format = "%.0f"

	return Model{
		currentScene: SceneHome,
		configPath:   configPath,
		planEngine:   calculation.NewPlanEngine(),
		sliders:      []*components.Slider{savings, shift, extra, horizon},
		width:        80,
		height:       24,
	}
}

// Init loads the configuration (required by the tea.Model interface).
func (m Model) Init() tea.Cmd {
	return loadConfigCmd(m.configPath)
}

// loadConfigCmd returns a command that loads the configuration file
func loadConfigCmd(path string) tea.Cmd {
	return func() tea.Msg {
		parser := config.NewInputParser()
		cfg, err := parser.LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ConfigLoadedMsg{Config: cfg}
	}
}

// runPlanCmd re-runs the selected scenario with the slider values applied.
func (m Model) runPlanCmd() tea.Cmd {
	cfg := m.config
	scenario := cfg.FindScenario(m.selectedScenario)
	if scenario == nil {
		name := m.selectedScenario
		return func() tea.Msg {
			return PlanCompleteMsg{ScenarioName: name, Err: fmt.Errorf("scenario %s not found in configuration", name)}
		}
	}

	adjusted := m.adjustedScenario(*scenario)
	engine := m.planEngine

	return func() tea.Msg {
		result, err := engine.RunScenario(cfg, &adjusted)
		return PlanCompleteMsg{ScenarioName: adjusted.Name, Result: result, Err: err}
	}
}

// adjustedScenario overlays slider values onto the scenario. Wants absorbs
// the savings rate change so the target split stays normalized.
func (m Model) adjustedScenario(scenario domain.Scenario) domain.Scenario {
	rate := decimal.NewFromFloat(m.sliders[sliderSavingsRate].Value / 100)
	needs := scenario.Target.NeedsPct
	wants := decimal.NewFromInt(1).Sub(needs).Sub(rate)
	if wants.IsNegative() {
		needs = decimal.NewFromInt(1).Sub(rate)
		wants = decimal.Zero
	}

	scenario.Target = domain.AllocationState{NeedsPct: needs, WantsPct: wants, SavingsPct: rate}
	scenario.ShiftLimitPct = decimal.NewFromFloat(m.sliders[sliderShiftLimit].Value / 100)
	scenario.ExtraDebtPayment = decimal.NewFromFloat(m.sliders[sliderExtraPayment].Value)
	scenario.HorizonMonths = int(m.sliders[sliderHorizonYears].Value) * 12
	return scenario
}

// compareCmd compares the selected scenario against every other scenario.
func (m Model) compareCmd() tea.Cmd {
	cfg := m.config
	base := m.selectedScenario
	engine := compare.NewCompareEngine(m.planEngine)

	return func() tea.Msg {
		set, err := engine.CompareScenarios(context.Background(), cfg, base, nil)
		return CompareCompleteMsg{Set: set, Err: err}
	}
}

// syncSliders seeds the sliders from the selected scenario's targets.
func (m *Model) syncSliders(scenario *domain.Scenario) {
	rate, _ := scenario.Target.SavingsPct.Mul(decimal.NewFromInt(100)).Float64()
	m.sliders[sliderSavingsRate].Value = rate

	shiftLimit := scenario.ShiftLimitPct
	if shiftLimit.IsZero() {
		shiftLimit = domain.DefaultShiftPolicy().ShiftLimitPct
	}
	shift, _ := shiftLimit.Mul(decimal.NewFromInt(100)).Float64()
	m.sliders[sliderShiftLimit].Value = shift

	extra, _ := scenario.ExtraDebtPayment.Float64()
	m.sliders[sliderExtraPayment].Value = extra

	horizon := scenario.HorizonMonths
	if horizon == 0 {
		horizon = calculation.DefaultHorizonMonths
	}
	m.sliders[sliderHorizonYears].Value = float64(horizon / 12)
}
