package domain

import (
	"github.com/shopspring/decimal"
)

// SumTolerance is the floating tolerance for the needs/wants/savings sum invariant.
var SumTolerance = decimal.New(1, -6)

// AllocationState is a three-way split of monthly income into needs, wants
// and savings. Each fraction lives in [0,1] and the triple sums to 1.0
// within SumTolerance.
type AllocationState struct {
	NeedsPct   decimal.Decimal `yaml:"needs_pct" json:"needs_pct"`
	WantsPct   decimal.Decimal `yaml:"wants_pct" json:"wants_pct"`
	SavingsPct decimal.Decimal `yaml:"savings_pct" json:"savings_pct"`
}

// DefaultAllocationState returns the 50/30/20 split used when inputs are
// missing or unusable.
func DefaultAllocationState() AllocationState {
	return AllocationState{
		NeedsPct:   decimal.NewFromFloat(0.50),
		WantsPct:   decimal.NewFromFloat(0.30),
		SavingsPct: decimal.NewFromFloat(0.20),
	}
}

// Sum returns needs + wants + savings.
func (a AllocationState) Sum() decimal.Decimal {
	return a.NeedsPct.Add(a.WantsPct).Add(a.SavingsPct)
}

// IsNormalized reports whether the triple sums to 1.0 within SumTolerance.
func (a AllocationState) IsNormalized() bool {
	return a.Sum().Sub(decimal.NewFromInt(1)).Abs().LessThanOrEqual(SumTolerance)
}

// Normalized returns a copy scaled so the triple sums to exactly 1.0. A
// non-positive sum cannot be scaled and falls back to the default split.
func (a AllocationState) Normalized() AllocationState {
	sum := a.Sum()
	if sum.LessThanOrEqual(decimal.Zero) {
		return DefaultAllocationState()
	}
	if a.IsNormalized() {
		return a
	}
	return AllocationState{
		NeedsPct:   a.NeedsPct.Div(sum),
		WantsPct:   a.WantsPct.Div(sum),
		SavingsPct: a.SavingsPct.Div(sum),
	}
}

// NeedsAmount returns the dollar amount of income allocated to needs.
func (a AllocationState) NeedsAmount(income decimal.Decimal) decimal.Decimal {
	return income.Mul(a.NeedsPct)
}

// WantsAmount returns the dollar amount of income allocated to wants.
func (a AllocationState) WantsAmount(income decimal.Decimal) decimal.Decimal {
	return income.Mul(a.WantsPct)
}

// SavingsAmount returns the dollar amount of income allocated to savings.
func (a AllocationState) SavingsAmount(income decimal.Decimal) decimal.Decimal {
	return income.Mul(a.SavingsPct)
}

// ShiftPolicy bounds how much of a paycheck may move from wants to savings
// in a single reallocation period.
type ShiftPolicy struct {
	// ShiftLimitPct is the maximum fraction of income movable from wants
	// to savings per period.
	ShiftLimitPct decimal.Decimal `yaml:"shift_limit_pct" json:"shift_limit_pct"`

	// WantsFloorPct is the floor wants is reduced toward when spending
	// exceeds income (the deficit path).
	WantsFloorPct decimal.Decimal `yaml:"wants_floor_pct" json:"wants_floor_pct"`
}

// DefaultShiftPolicy returns the standard 4% shift limit with a 10% wants floor.
func DefaultShiftPolicy() ShiftPolicy {
	return ShiftPolicy{
		ShiftLimitPct: decimal.NewFromFloat(0.04),
		WantsFloorPct: decimal.NewFromFloat(0.10),
	}
}

// IncomePlan is the output of one income reallocation: the next-period split
// plus any policy notes (partial gap closure, deficit urgency, normalization).
type IncomePlan struct {
	Actual   AllocationState `json:"actual"`
	Next     AllocationState `json:"next"`
	Income   decimal.Decimal `json:"income"`
	ShiftPct decimal.Decimal `json:"shift_pct"`
	Notes    []string        `json:"notes,omitempty"`
}

// SavingsDollars returns the dollar amount the next-period split assigns to savings.
func (p IncomePlan) SavingsDollars() decimal.Decimal {
	return p.Next.SavingsAmount(p.Income)
}
