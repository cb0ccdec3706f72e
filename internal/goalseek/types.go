package goalseek

import (
	"fmt"

	"github.com/planwise/planwise/internal/domain"
	"github.com/shopspring/decimal"
)

// Target defines what parameter the solver adjusts
type Target string

const (
	// SolveSavingsRate searches for the smallest savings rate that reaches a
	// net-worth target by a given month.
	SolveSavingsRate Target = "savings_rate"

	// SolveExtraPayment searches for the smallest extra monthly debt payment
	// that retires every debt by a given month.
	SolveExtraPayment Target = "extra_payment"
)

// Constraints define bounds for the solved parameter
type Constraints struct {
	MinSavingsRate *decimal.Decimal `json:"min_savings_rate,omitempty"`
	MaxSavingsRate *decimal.Decimal `json:"max_savings_rate,omitempty"`

	MinExtraPayment *decimal.Decimal `json:"min_extra_payment,omitempty"`
	MaxExtraPayment *decimal.Decimal `json:"max_extra_payment,omitempty"`
}

// DefaultConstraints returns sensible default bounds: savings rate between
// zero and 60% of income, extra payment between zero and the full income.
func DefaultConstraints(monthlyIncome decimal.Decimal) Constraints {
	minRate := decimal.Zero
	maxRate := decimal.NewFromFloat(0.60)
	minExtra := decimal.Zero
	maxExtra := monthlyIncome

	return Constraints{
		MinSavingsRate:  &minRate,
		MaxSavingsRate:  &maxRate,
		MinExtraPayment: &minExtra,
		MaxExtraPayment: &maxExtra,
	}
}

// Validate checks bound ordering.
func (c *Constraints) Validate() error {
	if c.MinSavingsRate != nil && c.MaxSavingsRate != nil && c.MinSavingsRate.GreaterThan(*c.MaxSavingsRate) {
		return fmt.Errorf("min savings rate exceeds max")
	}
	if c.MinExtraPayment != nil && c.MaxExtraPayment != nil && c.MinExtraPayment.GreaterThan(*c.MaxExtraPayment) {
		return fmt.Errorf("min extra payment exceeds max")
	}
	return nil
}

// Request defines the parameters for one goal-seek run
type Request struct {
	Config       *domain.Configuration
	ScenarioName string
	Target       Target
	Constraints  Constraints

	// TargetNetWorth and TargetMonth drive the savings-rate solve.
	TargetNetWorth decimal.Decimal
	TargetMonth    int

	// PayoffByMonth drives the extra-payment solve.
	PayoffByMonth int

	MaxIterations int
	Tolerance     decimal.Decimal
}

// Result contains the outcome of a goal-seek run
type Result struct {
	Request         Request
	Success         bool
	Iterations      int
	ConvergenceInfo string

	OptimalSavingsRate  *decimal.Decimal `json:"optimal_savings_rate,omitempty"`
	OptimalExtraPayment *decimal.Decimal `json:"optimal_extra_payment,omitempty"`

	AchievedNetWorth    decimal.Decimal    `json:"achieved_net_worth"`
	AchievedPayoffMonth *int               `json:"achieved_payoff_month,omitempty"`
	Plan                *domain.PlanResult `json:"plan,omitempty"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	MaxIterations int
	Tolerance     decimal.Decimal
}

// DefaultSolverOptions returns the standard iteration budget and a $100
// net-worth convergence tolerance.
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		MaxIterations: 48,
		Tolerance:     decimal.NewFromInt(100),
	}
}

// GoalSeekError wraps solver failures with the operation that produced them
type GoalSeekError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *GoalSeekError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("goalseek %s: %s: %v", e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("goalseek %s: %s", e.Operation, e.Message)
}

func (e *GoalSeekError) Unwrap() error {
	return e.Cause
}
