package calculation

import (
	"fmt"

	"github.com/planwise/planwise/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	decimalZero = decimal.Zero
	decimalOne  = decimal.NewFromInt(1)
	decimalCent = decimal.New(1, -2)
)

// ComputeIncomePlan produces the next-period needs/wants/savings split from
// the observed split and a target, moving at most the shift limit from wants
// to savings. Needs is never reallocated automatically, and wants is the
// sole renormalization slack so rounding stays deterministic.
//
// Invalid inputs are normalized rather than rejected: a non-positive income
// is clamped to zero, and a split that does not sum to 1.0 is proportionally
// renormalized (or replaced with 50/30/20 when unusable). Every correction
// is reported in Notes.
func ComputeIncomePlan(actual, target domain.AllocationState, policy domain.ShiftPolicy, income decimal.Decimal) domain.IncomePlan {
	plan := domain.IncomePlan{Income: income}

	if income.LessThan(decimalZero) {
		plan.Income = decimalZero
		plan.Notes = append(plan.Notes, "income was negative; treated as zero")
	} else if income.IsZero() {
		plan.Notes = append(plan.Notes, "income is zero; plan percentages have no dollar effect")
	}

	actual, actualNote := normalizeSplit(actual, "actual")
	if actualNote != "" {
		plan.Notes = append(plan.Notes, actualNote)
	}
	target, targetNote := normalizeSplit(target, "target")
	if targetNote != "" {
		plan.Notes = append(plan.Notes, targetNote)
	}
	plan.Actual = actual

	if policy.ShiftLimitPct.LessThanOrEqual(decimalZero) {
		policy.ShiftLimitPct = domain.DefaultShiftPolicy().ShiftLimitPct
	}

	// Spending beyond income is a distinct policy path: wants is pulled
	// toward the floor before any gap correction applies.
	if actual.SavingsPct.LessThan(decimalZero) {
		return deficitPlan(plan, actual, policy)
	}

	savingsGap := target.SavingsPct.Sub(actual.SavingsPct)
	if savingsGap.LessThan(decimalZero) {
		savingsGap = decimalZero
	}

	shift := decimal.Min(savingsGap, actual.WantsPct, policy.ShiftLimitPct)
	if shift.LessThan(decimalZero) {
		shift = decimalZero
	}

	next := domain.AllocationState{
		NeedsPct:   actual.NeedsPct,
		WantsPct:   actual.WantsPct.Sub(shift),
		SavingsPct: actual.SavingsPct.Add(shift),
	}
	next.WantsPct = renormalizeWants(next)

	plan.Next = next
	plan.ShiftPct = shift

	if shift.LessThan(savingsGap) {
		switch {
		case actual.WantsPct.LessThan(savingsGap) && actual.WantsPct.LessThanOrEqual(policy.ShiftLimitPct):
			plan.Notes = append(plan.Notes, "savings gap only partially closed: wants budget exhausted")
		default:
			plan.Notes = append(plan.Notes, fmt.Sprintf("savings gap only partially closed: shift limit of %s%% reached",
				policy.ShiftLimitPct.Mul(decimal.NewFromInt(100)).StringFixed(1)))
		}
	}

	return plan
}

// deficitPlan handles actual savings below zero. Wants is reduced toward the
// configured floor by up to the size of the deficit; the shift limit does not
// bound this correction.
func deficitPlan(plan domain.IncomePlan, actual domain.AllocationState, policy domain.ShiftPolicy) domain.IncomePlan {
	floor := policy.WantsFloorPct
	if floor.LessThan(decimalZero) {
		floor = decimalZero
	}

	reducible := actual.WantsPct.Sub(floor)
	if reducible.LessThan(decimalZero) {
		reducible = decimalZero
	}
	deficit := actual.SavingsPct.Neg()
	reduction := decimal.Min(reducible, deficit)

	next := domain.AllocationState{
		NeedsPct:   actual.NeedsPct,
		WantsPct:   actual.WantsPct.Sub(reduction),
		SavingsPct: actual.SavingsPct.Add(reduction),
	}
	next.WantsPct = renormalizeWants(next)

	plan.Next = next
	plan.ShiftPct = reduction
	plan.Notes = append(plan.Notes, "spending exceeds income: wants reduced toward floor; review essential expenses urgently")
	if next.SavingsPct.LessThan(decimalZero) {
		plan.Notes = append(plan.Notes, "deficit remains after reducing wants to the floor")
	}
	return plan
}

// normalizeSplit proportionally renormalizes a split whose sum drifted from
// 1.0, replacing it with the default 50/30/20 when the sum is unusable. A
// split with negative savings is left untouched when its sum is already 1.0
// so the deficit path sees the real numbers.
func normalizeSplit(s domain.AllocationState, label string) (domain.AllocationState, string) {
	if s.IsNormalized() {
		return s, ""
	}
	sum := s.Sum()
	if sum.LessThanOrEqual(decimalZero) {
		return domain.DefaultAllocationState(), fmt.Sprintf("%s allocation was unusable; defaulted to 50/30/20", label)
	}
	return s.Normalized(), fmt.Sprintf("%s allocation did not sum to 100%%; proportionally renormalized", label)
}

// renormalizeWants returns the wants fraction that makes the triple sum to
// exactly 1.0. Needs and savings are never adjusted here.
func renormalizeWants(s domain.AllocationState) decimal.Decimal {
	return decimalOne.Sub(s.NeedsPct).Sub(s.SavingsPct)
}
