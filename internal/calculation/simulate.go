package calculation

import (
	"fmt"

	"github.com/planwise/planwise/internal/domain"
	"github.com/shopspring/decimal"
)

var decimalTwelve = decimal.NewFromInt(12)

// SimulationInput is everything one net-worth simulation needs. The plan is
// an ordered sequence of monthly contribution vectors; when it is shorter
// than the horizon the last entry is carried forward for the remaining
// months (an empty plan simulates growth and amortization only).
type SimulationInput struct {
	Opening         domain.OpeningBalances
	Plan            []domain.MonthlyPlanEntry
	Assumptions     domain.Assumptions
	HorizonMonths   int
	FreedPayment    domain.FreedPaymentPolicy
	MilestoneMonths []int
}

// DefaultMilestoneMonths are the fixed checkpoints every simulation reports:
// today, six months, one, two and five years out.
var DefaultMilestoneMonths = []int{0, 6, 12, 24, 60}

// debtState tracks one amortizing liability through the monthly loop.
type debtState struct {
	rec           domain.DebtRecord
	balance       decimal.Decimal
	highAPR       bool
	nonAmortizing bool
	payoffMonth   *int
	interestPaid  decimal.Decimal
}

// SimulateScenario steps asset growth and debt amortization month by month
// and returns the net-worth series with milestone point reads. The loop is
// always monthly-resolution regardless of horizon; presentation-level
// downsampling happens on the finished series, never here.
func SimulateScenario(in SimulationInput) domain.NetWorthSeries {
	months := in.HorizonMonths
	if months <= 0 {
		months = 0
	}

	cash := in.Opening.Cash
	brokerage := in.Opening.Brokerage
	retirement := in.Opening.Retirement
	hsa := in.Opening.HSA
	other := in.Opening.OtherAssets

	cashRate := monthlyRate(in.Assumptions.CashReturn)
	brokerageRate := monthlyRate(in.Assumptions.BrokerageEffectiveReturn())
	retirementRate := monthlyRate(in.Assumptions.RetirementReturn)
	hsaRate := monthlyRate(in.Assumptions.HSAReturn)

	debts := make([]*debtState, len(in.Opening.Debts))
	for i, d := range in.Opening.Debts {
		debts[i] = &debtState{rec: d, balance: d.Balance, highAPR: d.IsHighAPR()}
	}

	series := domain.NetWorthSeries{
		NetWorth:    make([]decimal.Decimal, months),
		Assets:      make([]decimal.Decimal, months),
		Liabilities: make([]decimal.Decimal, months),
	}

	// Minimum payments freed by mid-horizon payoffs, redirected only under
	// the snowball policy and only from the month after payoff.
	freedMinimums := decimalZero

	for m := 0; m < months; m++ {
		entry := planEntry(in.Plan, m)

		// Contributions land before growth compounds.
		cash = cash.Add(entry.EmergencyFund).Mul(onePlus(cashRate))
		retirement = retirement.Add(entry.Match401k).Add(entry.RetirementTaxAdv).Mul(onePlus(retirementRate))
		brokerage = brokerage.Add(entry.Brokerage).Mul(onePlus(brokerageRate))
		if !hsa.IsZero() {
			hsa = hsa.Mul(onePlus(hsaRate))
		}

		freedMinimums = stepDebts(debts, entry.HighAPRDebt, freedMinimums, in.FreedPayment, m)

		liabilities := decimalZero
		for _, d := range debts {
			liabilities = liabilities.Add(d.balance)
		}

		assets := cash.Add(brokerage).Add(retirement).Add(hsa).Add(other)
		series.Assets[m] = assets
		series.Liabilities[m] = liabilities
		series.NetWorth[m] = assets.Sub(liabilities)
	}

	series.Milestones = buildMilestones(series, in.Opening.NetWorth(), months, in.MilestoneMonths)
	series.Payoffs = payoffEstimates(debts)

	return series
}

// stepDebts runs one month of amortization across all debts and returns the
// updated freed-minimum pool. The extra payment distributes proportionally to
// balance across the active high-APR debts; freed minimums distribute across
// every remaining debt when the snowball policy is active.
func stepDebts(debts []*debtState, extraPayment, freedMinimums decimal.Decimal, policy domain.FreedPaymentPolicy, month int) decimal.Decimal {
	highAPRTotal := decimalZero
	activeTotal := decimalZero
	for _, d := range debts {
		if d.balance.IsZero() {
			continue
		}
		activeTotal = activeTotal.Add(d.balance)
		if d.highAPR {
			highAPRTotal = highAPRTotal.Add(d.balance)
		}
	}

	for _, d := range debts {
		if d.balance.IsZero() {
			continue
		}

		payment := d.rec.MinPayment
		if d.highAPR && highAPRTotal.GreaterThan(decimalZero) && extraPayment.GreaterThan(decimalZero) {
			payment = payment.Add(extraPayment.Mul(d.balance).Div(highAPRTotal))
		}
		if policy == domain.FreedPaymentSnowball && freedMinimums.GreaterThan(decimalZero) && activeTotal.GreaterThan(decimalZero) {
			payment = payment.Add(freedMinimums.Mul(d.balance).Div(activeTotal))
		}

		interest := d.balance.Mul(d.rec.MonthlyRate())
		d.interestPaid = d.interestPaid.Add(interest)

		if payment.LessThanOrEqual(interest) {
			// Reported as never-pays-off; the balance is still allowed
			// to move so the series reflects reality.
			d.nonAmortizing = true
		}

		newBalance := d.balance.Add(interest).Sub(payment)
		if newBalance.LessThanOrEqual(decimalZero) {
			newBalance = decimalZero
			if d.payoffMonth == nil {
				mo := month
				d.payoffMonth = &mo
				if policy == domain.FreedPaymentSnowball {
					freedMinimums = freedMinimums.Add(d.rec.MinPayment)
				}
			}
		}
		d.balance = newBalance
	}

	return freedMinimums
}

// planEntry returns the contribution vector for a month, carrying the last
// entry forward past the end of the plan.
func planEntry(plan []domain.MonthlyPlanEntry, month int) domain.MonthlyPlanEntry {
	if len(plan) == 0 {
		return domain.MonthlyPlanEntry{}
	}
	if month >= len(plan) {
		return plan[len(plan)-1]
	}
	return plan[month]
}

// buildMilestones reads fixed checkpoints off the finished series. Month 0
// is the opening position; month m>0 is the balance after m simulated months.
func buildMilestones(series domain.NetWorthSeries, opening decimal.Decimal, horizon int, extra []int) []domain.Milestone {
	wanted := make([]int, 0, len(DefaultMilestoneMonths)+len(extra)+1)
	wanted = append(wanted, DefaultMilestoneMonths...)
	wanted = append(wanted, extra...)
	wanted = append(wanted, horizon)

	seen := make(map[int]bool, len(wanted))
	milestones := make([]domain.Milestone, 0, len(wanted))
	for _, m := range wanted {
		if m < 0 || m > horizon || seen[m] {
			continue
		}
		seen[m] = true

		value := opening
		if m > 0 {
			value = series.At(m - 1)
		}
		milestones = append(milestones, domain.Milestone{
			Label:  milestoneLabel(m),
			Months: m,
			Value:  value,
		})
	}
	return milestones
}

func milestoneLabel(months int) string {
	switch {
	case months == 0:
		return "Today"
	case months%12 == 0 && months >= 24:
		return fmt.Sprintf("%d years", months/12)
	case months == 12:
		return "1 year"
	default:
		return fmt.Sprintf("%d months", months)
	}
}

func payoffEstimates(debts []*debtState) []domain.PayoffEstimate {
	if len(debts) == 0 {
		return nil
	}
	estimates := make([]domain.PayoffEstimate, len(debts))
	for i, d := range debts {
		estimates[i] = domain.PayoffEstimate{
			DebtName:      d.rec.Name,
			PayoffMonth:   d.payoffMonth,
			NonAmortizing: d.nonAmortizing,
			TotalInterest: d.interestPaid,
			FinalBalance:  d.balance,
		}
	}
	return estimates
}

func monthlyRate(annual decimal.Decimal) decimal.Decimal {
	return annual.Div(decimalTwelve)
}

func onePlus(rate decimal.Decimal) decimal.Decimal {
	return decimalOne.Add(rate)
}
