package goalseek

import (
	"context"
	"fmt"

	"github.com/planwise/planwise/internal/calculation"
	"github.com/planwise/planwise/internal/domain"
	"github.com/shopspring/decimal"
)

// solverShiftLimit removes the per-period shift limit from solver runs so the
// searched savings rate is actually reachable in the first plan period.
var solverShiftLimit = decimal.NewFromFloat(0.25)

// extraPaymentTolerance is the dollar interval below which the extra-payment
// bisection stops refining.
var extraPaymentTolerance = decimal.NewFromInt(1)

// Solver answers inverse planning questions by bisecting over one scenario
// knob and re-running the plan engine at each probe.
type Solver struct {
	PlanEngine *calculation.PlanEngine
	Options    SolverOptions
}

// NewSolver creates a new goal-seek solver
func NewSolver(planEngine *calculation.PlanEngine, options SolverOptions) *Solver {
	return &Solver{
		PlanEngine: planEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(planEngine *calculation.PlanEngine) *Solver {
	return NewSolver(planEngine, DefaultSolverOptions())
}

// Solve runs the requested goal seek
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}

	if req.Config == nil || req.Config.Profile == nil {
		return nil, &GoalSeekError{Operation: string(req.Target), Message: "configuration has no profile"}
	}
	scenario := req.Config.FindScenario(req.ScenarioName)
	if scenario == nil {
		return nil, &GoalSeekError{
			Operation: string(req.Target),
			Message:   fmt.Sprintf("scenario %s not found in configuration", req.ScenarioName),
		}
	}

	switch req.Target {
	case SolveSavingsRate:
		return s.solveSavingsRate(ctx, req, scenario)
	case SolveExtraPayment:
		return s.solveExtraPayment(ctx, req, scenario)
	default:
		return nil, &GoalSeekError{
			Operation: "solve",
			Message:   fmt.Sprintf("unsupported goal-seek target: %s", req.Target),
		}
	}
}

// solveSavingsRate bisects the target savings rate until the net worth at the
// target month lands within tolerance of the requested amount. Net worth is
// monotone in the savings rate, which is what makes bisection valid here.
func (s *Solver) solveSavingsRate(ctx context.Context, req Request, base *domain.Scenario) (*Result, error) {
	if req.TargetMonth <= 0 {
		return nil, &GoalSeekError{Operation: "savings_rate", Message: "target month must be positive"}
	}

	minRate := decimal.Zero
	maxRate := decimal.NewFromFloat(0.60)
	if req.Constraints.MinSavingsRate != nil {
		minRate = *req.Constraints.MinSavingsRate
	}
	if req.Constraints.MaxSavingsRate != nil {
		maxRate = *req.Constraints.MaxSavingsRate
	}

	evaluate := func(rate decimal.Decimal) (*domain.PlanResult, decimal.Decimal, error) {
		plan, err := s.PlanEngine.RunScenario(req.Config, s.rateScenario(base, rate, req.TargetMonth))
		if err != nil {
			return nil, decimal.Zero, &GoalSeekError{Operation: "savings_rate", Message: "failed to run scenario", Cause: err}
		}
		return plan, plan.Series.At(req.TargetMonth - 1), nil
	}

	// Feasibility check at the upper bound before bisecting.
	ceilingPlan, ceilingNetWorth, err := evaluate(maxRate)
	if err != nil {
		return nil, err
	}
	if ceilingNetWorth.LessThan(req.TargetNetWorth) {
		return &Result{
			Request:            req,
			Success:            false,
			OptimalSavingsRate: &maxRate,
			AchievedNetWorth:   ceilingNetWorth,
			Plan:               ceilingPlan,
			ConvergenceInfo:    fmt.Sprintf("target net worth %s not reachable by month %d; best is %s at the maximum rate", req.TargetNetWorth.StringFixed(0), req.TargetMonth, ceilingNetWorth.StringFixed(0)),
		}, nil
	}

	bestRate := maxRate
	bestPlan := ceilingPlan
	bestNetWorth := ceilingNetWorth

	iterations := 0
	for iterations < req.MaxIterations {
		iterations++

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		testRate := minRate.Add(maxRate).Div(decimal.NewFromInt(2))
		plan, netWorth, err := evaluate(testRate)
		if err != nil {
			return nil, err
		}

		diff := netWorth.Sub(req.TargetNetWorth)
		if diff.GreaterThanOrEqual(decimal.Zero) {
			bestRate = testRate
			bestPlan = plan
			bestNetWorth = netWorth
			if diff.LessThan(req.Tolerance) {
				return &Result{
					Request:            req,
					Success:            true,
					Iterations:         iterations,
					ConvergenceInfo:    fmt.Sprintf("converged to target net worth within $%s", req.Tolerance.StringFixed(0)),
					OptimalSavingsRate: &bestRate,
					AchievedNetWorth:   bestNetWorth,
					Plan:               bestPlan,
				}, nil
			}
			maxRate = testRate
		} else {
			minRate = testRate
		}
	}

	return &Result{
		Request:            req,
		Success:            true,
		Iterations:         iterations,
		ConvergenceInfo:    "iteration budget exhausted; returning the smallest rate found that meets the target",
		OptimalSavingsRate: &bestRate,
		AchievedNetWorth:   bestNetWorth,
		Plan:               bestPlan,
	}, nil
}

// solveExtraPayment bisects the extra monthly debt payment until every debt
// retires no later than the requested month.
func (s *Solver) solveExtraPayment(ctx context.Context, req Request, base *domain.Scenario) (*Result, error) {
	if req.PayoffByMonth <= 0 {
		return nil, &GoalSeekError{Operation: "extra_payment", Message: "payoff-by month must be positive"}
	}
	if len(req.Config.Profile.Balances.Debts) == 0 {
		return nil, &GoalSeekError{Operation: "extra_payment", Message: "profile has no debts to pay off"}
	}

	minExtra := decimal.Zero
	maxExtra := req.Config.Profile.MonthlyIncome
	if req.Constraints.MinExtraPayment != nil {
		minExtra = *req.Constraints.MinExtraPayment
	}
	if req.Constraints.MaxExtraPayment != nil {
		maxExtra = *req.Constraints.MaxExtraPayment
	}

	horizon := base.HorizonMonths
	if horizon < req.PayoffByMonth {
		horizon = req.PayoffByMonth
	}

	evaluate := func(extra decimal.Decimal) (*domain.PlanResult, *int, error) {
		scenario := *base
		scenario.ExtraDebtPayment = extra
		scenario.HorizonMonths = horizon

		plan, err := s.PlanEngine.RunScenario(req.Config, &scenario)
		if err != nil {
			return nil, nil, &GoalSeekError{Operation: "extra_payment", Message: "failed to run scenario", Cause: err}
		}
		return plan, lastPayoffMonth(plan.Series.Payoffs), nil
	}

	ceilingPlan, ceilingMonth, err := evaluate(maxExtra)
	if err != nil {
		return nil, err
	}
	if ceilingMonth == nil || *ceilingMonth > req.PayoffByMonth {
		return &Result{
			Request:             req,
			Success:             false,
			OptimalExtraPayment: &maxExtra,
			AchievedPayoffMonth: ceilingMonth,
			Plan:                ceilingPlan,
			ConvergenceInfo:     fmt.Sprintf("debts cannot be retired by month %d even at the maximum extra payment", req.PayoffByMonth),
		}, nil
	}

	bestExtra := maxExtra
	bestPlan := ceilingPlan
	bestMonth := ceilingMonth

	iterations := 0
	for iterations < req.MaxIterations && maxExtra.Sub(minExtra).GreaterThan(extraPaymentTolerance) {
		iterations++

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		testExtra := minExtra.Add(maxExtra).Div(decimal.NewFromInt(2))
		plan, month, err := evaluate(testExtra)
		if err != nil {
			return nil, err
		}

		if month != nil && *month <= req.PayoffByMonth {
			bestExtra = testExtra
			bestPlan = plan
			bestMonth = month
			maxExtra = testExtra
		} else {
			minExtra = testExtra
		}
	}

	return &Result{
		Request:             req,
		Success:             true,
		Iterations:          iterations,
		ConvergenceInfo:     fmt.Sprintf("smallest extra payment retiring all debts by month %d, to within $%s", req.PayoffByMonth, extraPaymentTolerance.StringFixed(0)),
		OptimalExtraPayment: &bestExtra,
		AchievedPayoffMonth: bestMonth,
		Plan:                bestPlan,
	}, nil
}

// rateScenario copies the base scenario with the target split rebuilt around
// the probed savings rate. Wants absorbs the change; needs is held at the
// profile's observed level through renormalization in the engine.
func (s *Solver) rateScenario(base *domain.Scenario, rate decimal.Decimal, targetMonth int) *domain.Scenario {
	scenario := *base
	scenario.ShiftLimitPct = solverShiftLimit
	scenario.HorizonMonths = targetMonth

	needs := base.Target.NeedsPct
	wants := decimal.NewFromInt(1).Sub(needs).Sub(rate)
	if wants.LessThan(decimal.Zero) {
		needs = decimal.NewFromInt(1).Sub(rate)
		wants = decimal.Zero
	}
	scenario.Target = domain.AllocationState{
		NeedsPct:   needs,
		WantsPct:   wants,
		SavingsPct: rate,
	}
	return &scenario
}

// lastPayoffMonth returns the latest payoff month, or nil when any debt never
// pays off within the horizon.
func lastPayoffMonth(payoffs []domain.PayoffEstimate) *int {
	if len(payoffs) == 0 {
		return nil
	}
	last := 0
	for _, payoff := range payoffs {
		if payoff.PayoffMonth == nil {
			return nil
		}
		if *payoff.PayoffMonth > last {
			last = *payoff.PayoffMonth
		}
	}
	return &last
}
