package calculation

import (
	"fmt"

	"github.com/planwise/planwise/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultHorizonMonths is used when a scenario does not set its own horizon.
const DefaultHorizonMonths = 360

// MaxHorizonMonths caps simulations at 40 years of monthly stepping.
const MaxHorizonMonths = 480

// Logger is the minimal logging surface the engine writes to.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger discards everything. It is the default so the engine stays
// silent unless a caller opts in.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Warnf(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}

// PlanEngine runs the full planning pipeline for a scenario: income
// reallocation, the savings waterfall, then the net-worth simulation. It
// holds no per-run state; every call computes from the snapshots it is
// handed, so concurrent calls are safe.
type PlanEngine struct {
	Logger Logger
	Debug  bool
}

// NewPlanEngine creates an engine with a no-op logger.
func NewPlanEngine() *PlanEngine {
	return &PlanEngine{Logger: NopLogger{}}
}

// SetLogger replaces the engine's logger; nil restores the no-op logger.
func (e *PlanEngine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// RunScenario computes a complete plan for one scenario against the shared
// profile. Engine-level policy corrections surface as notes and warnings on
// the result; an error is returned only for a structurally unusable
// configuration (no profile, unknown enum strings).
func (e *PlanEngine) RunScenario(config *domain.Configuration, scenario *domain.Scenario) (*domain.PlanResult, error) {
	if config == nil || config.Profile == nil {
		return nil, fmt.Errorf("configuration has no profile")
	}
	if scenario == nil {
		return nil, fmt.Errorf("scenario is nil")
	}
	profile := config.Profile

	liquidity, err := domain.ParseLiquidity(profile.Liquidity)
	if err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	focus, err := domain.ParseRetirementFocus(profile.RetirementFocus)
	if err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	freedPolicy, err := domain.ParseFreedPaymentPolicy(scenario.FreedPaymentPolicy)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	policy := domain.DefaultShiftPolicy()
	if scenario.ShiftLimitPct.GreaterThan(decimal.Zero) {
		policy.ShiftLimitPct = scenario.ShiftLimitPct
	}

	incomePlan := ComputeIncomePlan(profile.Actual, scenario.Target, policy, profile.MonthlyIncome)
	budget := incomePlan.SavingsDollars()
	if e.Debug {
		e.Logger.Debugf("scenario %s: shift %s, savings budget %s",
			scenario.Name, incomePlan.ShiftPct.StringFixed(4), budget.StringFixed(2))
	}

	allocation := AllocateSavings(budget, WaterfallInput{
		EmergencyFund:   profile.EmergencyFund,
		Debts:           profile.Balances.Debts,
		MatchNeeded:     scenario.MatchNeeded,
		MatchCaptured:   scenario.MatchCaptured,
		Tax:             profile.Tax,
		Liquidity:       liquidity,
		RetirementFocus: focus,
		Limits:          profile.Limits,
	})

	horizon := scenario.HorizonMonths
	if horizon <= 0 {
		horizon = DefaultHorizonMonths
	}
	if horizon > MaxHorizonMonths {
		horizon = MaxHorizonMonths
	}

	plan := BuildMonthlyPlan(incomePlan, allocation, scenario.ExtraDebtPayment, horizon)

	series := SimulateScenario(SimulationInput{
		Opening:       profile.Balances,
		Plan:          plan,
		Assumptions:   config.Assumptions,
		HorizonMonths: horizon,
		FreedPayment:  freedPolicy,
	})

	return &domain.PlanResult{
		ScenarioName: scenario.Name,
		IncomePlan:   incomePlan,
		Savings:      allocation,
		Series:       series,
	}, nil
}

// RunScenarios computes plans for every scenario in the configuration.
func (e *PlanEngine) RunScenarios(config *domain.Configuration) ([]domain.PlanResult, error) {
	if config == nil {
		return nil, fmt.Errorf("configuration is nil")
	}
	results := make([]domain.PlanResult, 0, len(config.Scenarios))
	for i := range config.Scenarios {
		result, err := e.RunScenario(config, &config.Scenarios[i])
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", config.Scenarios[i].Name, err)
		}
		results = append(results, *result)
	}
	return results, nil
}

// BuildMonthlyPlan expands an income plan and savings allocation into the
// per-month contribution vectors the simulator consumes. The steady-state
// allocation repeats every month; extra debt payment rides on top of the
// waterfall's high-APR amount.
func BuildMonthlyPlan(incomePlan domain.IncomePlan, allocation domain.SavingsAllocation, extraDebtPayment decimal.Decimal, months int) []domain.MonthlyPlanEntry {
	if months <= 0 {
		return nil
	}
	if extraDebtPayment.LessThan(decimal.Zero) {
		extraDebtPayment = decimal.Zero
	}

	entry := domain.MonthlyPlanEntry{
		IncomeNet:        incomePlan.Income,
		Needs:            incomePlan.Next.NeedsAmount(incomePlan.Income),
		Wants:            incomePlan.Next.WantsAmount(incomePlan.Income),
		EmergencyFund:    allocation.EmergencyFund,
		HighAPRDebt:      allocation.HighAPRDebt.Add(extraDebtPayment),
		Match401k:        allocation.EmployerMatch,
		RetirementTaxAdv: allocation.RetirementTotal(),
		Brokerage:        allocation.BrokerageTotal(),
	}

	plan := make([]domain.MonthlyPlanEntry, months)
	for i := range plan {
		plan[i] = entry
	}
	return plan
}
