package calculation

import (
	"fmt"

	"github.com/planwise/planwise/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	// efBudgetCap limits the emergency fund step to 40% of the whole
	// budget so later goals always receive something.
	efBudgetCap = decimal.NewFromFloat(0.40)

	// debtRemainderCap limits the high-APR step to 40% of what remains
	// after the emergency fund step.
	debtRemainderCap = decimal.NewFromFloat(0.40)

	// Traditional-vs-Roth income thresholds by filing status.
	traditionalThresholdSingle  = decimal.NewFromInt(190000)
	traditionalThresholdMarried = decimal.NewFromInt(230000)
)

// WaterfallInput is the goal state one allocation pass reads. All fields are
// caller-supplied snapshots; nothing is retained between calls.
type WaterfallInput struct {
	EmergencyFund   domain.EmergencyFund
	Debts           []domain.DebtRecord
	MatchNeeded     decimal.Decimal
	MatchCaptured   bool
	Tax             domain.TaxProfile
	Liquidity       domain.Liquidity
	RetirementFocus domain.RetirementFocus
	Limits          domain.ContributionLimits
}

// waterfallStep consumes from the running remainder and records its
// allocation on the result. Steps run in strict priority order; the fold
// keeps conservation provable by construction because every step returns
// what it left behind.
type waterfallStep struct {
	name  string
	apply func(remaining decimal.Decimal, in WaterfallInput, out *domain.SavingsAllocation) decimal.Decimal
}

var waterfallSteps = []waterfallStep{
	{name: "emergency_fund", apply: stepEmergencyFund},
	{name: "high_apr_debt", apply: stepHighAPRDebt},
	{name: "employer_match", apply: stepEmployerMatch},
	{name: "retirement_split", apply: stepRetirementSplit},
}

// AllocateSavings distributes a monthly savings budget across goals through
// the priority waterfall: emergency fund, high-APR debt, employer match,
// then a liquidity/focus matrix split routed through tax-advantaged room.
// Binding caps surface as warnings, never as errors, and the per-goal
// amounts plus Unallocated always sum back to the budget exactly.
func AllocateSavings(budget decimal.Decimal, in WaterfallInput) domain.SavingsAllocation {
	out := domain.SavingsAllocation{Budget: budget}

	if budget.LessThan(decimalZero) {
		out.Budget = decimalZero
		out.Warnings = append(out.Warnings, "savings budget was negative; nothing allocated")
		return out
	}

	remaining := budget
	for _, step := range waterfallSteps {
		remaining = step.apply(remaining, in, &out)
		if remaining.LessThan(decimalZero) {
			// A step can never allocate more than it was handed.
			remaining = decimalZero
		}
	}
	out.Unallocated = remaining

	return out
}

// stepEmergencyFund allocates min(gap, 40% of budget, remaining).
func stepEmergencyFund(remaining decimal.Decimal, in WaterfallInput, out *domain.SavingsAllocation) decimal.Decimal {
	gap := in.EmergencyFund.Gap()
	if gap.IsZero() {
		return remaining
	}

	capAmount := out.Budget.Mul(efBudgetCap)
	alloc := decimal.Min(gap, capAmount, remaining)
	out.EmergencyFund = alloc

	if alloc.LessThan(gap) && alloc.Equal(capAmount) {
		out.Warnings = append(out.Warnings, "emergency fund gap exceeds the 40% per-month cap; remainder deferred to future months")
	}
	return remaining.Sub(alloc)
}

// stepHighAPRDebt allocates min(high-APR balances, 40% of the post-EF
// remainder, remaining) toward extra debt payments.
func stepHighAPRDebt(remaining decimal.Decimal, in WaterfallInput, out *domain.SavingsAllocation) decimal.Decimal {
	highAPR, _ := domain.PartitionDebts(in.Debts)
	pool := domain.TotalDebtBalance(highAPR)
	if pool.IsZero() {
		return remaining
	}

	capAmount := remaining.Mul(debtRemainderCap)
	alloc := decimal.Min(pool, capAmount, remaining)
	out.HighAPRDebt = alloc

	if alloc.LessThan(pool) && alloc.Equal(capAmount) {
		out.Warnings = append(out.Warnings, "high-APR balances exceed the 40% per-month debt cap")
	}
	return remaining.Sub(alloc)
}

// stepEmployerMatch passes through up to the match-needed amount. Unlike the
// capped steps this is a floor: missing free money outweighs optimizing the
// later splits.
func stepEmployerMatch(remaining decimal.Decimal, in WaterfallInput, out *domain.SavingsAllocation) decimal.Decimal {
	if in.MatchCaptured || in.MatchNeeded.LessThanOrEqual(decimalZero) {
		return remaining
	}

	alloc := decimal.Min(in.MatchNeeded, remaining)
	out.EmployerMatch = alloc

	if alloc.LessThan(in.MatchNeeded) {
		out.Warnings = append(out.Warnings, "budget exhausted before the employer match was fully captured")
	}
	return remaining.Sub(alloc)
}

// stepRetirementSplit divides everything left by the liquidity/focus matrix,
// then routes the retirement share through IRA room, then 401(k) room, with
// any overflow spilling into brokerage.
func stepRetirementSplit(remaining decimal.Decimal, in WaterfallInput, out *domain.SavingsAllocation) decimal.Decimal {
	if remaining.IsZero() {
		return remaining
	}

	out.AccountType = ClassifyAccountType(in.Tax)

	retirementPct, _ := SplitFractions(in.Liquidity, in.RetirementFocus)
	retirementBudget := remaining.Mul(retirementPct)
	out.Brokerage = remaining.Sub(retirementBudget)

	iraRoom := in.Limits.IRARoom()
	k401Room := in.Limits.K401Room()

	out.IRA = decimal.Min(retirementBudget, iraRoom)
	afterIRA := retirementBudget.Sub(out.IRA)
	out.K401 = decimal.Min(afterIRA, k401Room)
	out.Spill = afterIRA.Sub(out.K401)

	if out.Spill.GreaterThan(decimalZero) {
		out.Warnings = append(out.Warnings, fmt.Sprintf("annual contribution limits reached; %s spilled into brokerage",
			formatDollars(out.Spill)))
	}

	return decimalZero
}

// ClassifyAccountType decides Roth vs Traditional for tax-advantaged
// contributions. Income at or above the filing-status threshold selects
// Traditional; an income-driven student-loan repayment plan always selects
// Traditional because it lowers the AGI the payment is computed from.
func ClassifyAccountType(tax domain.TaxProfile) domain.AccountType {
	if tax.OnIDRPlan {
		return domain.AccountTraditional
	}

	threshold := traditionalThresholdSingle
	if tax.Filing == domain.FilingMarried {
		threshold = traditionalThresholdMarried
	}
	if tax.AnnualIncome.GreaterThanOrEqual(threshold) {
		return domain.AccountTraditional
	}
	return domain.AccountRoth
}

func formatDollars(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
