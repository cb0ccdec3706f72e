package calculation

import (
	"github.com/planwise/planwise/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultPayoffHorizonMonths bounds the standalone payoff walk at 40 years.
const DefaultPayoffHorizonMonths = 480

// EstimatePayoffs walks debt amortization alone, without asset buckets, and
// reports when each debt pays off under its minimum payment plus a monthly
// extra-payment pool. Debts whose payment cannot outrun interest are flagged
// non-amortizing instead of being given an unbounded payoff date.
func EstimatePayoffs(debts []domain.DebtRecord, extraMonthly decimal.Decimal, policy domain.FreedPaymentPolicy, maxMonths int) []domain.PayoffEstimate {
	if maxMonths <= 0 {
		maxMonths = DefaultPayoffHorizonMonths
	}

	states := make([]*debtState, len(debts))
	for i, d := range debts {
		states[i] = &debtState{rec: d, balance: d.Balance, highAPR: d.IsHighAPR()}
	}

	freedMinimums := decimalZero
	for m := 0; m < maxMonths; m++ {
		freedMinimums = stepDebts(states, extraMonthly, freedMinimums, policy, m)

		remaining := decimalZero
		for _, s := range states {
			remaining = remaining.Add(s.balance)
		}
		if remaining.LessThan(decimalCent) {
			break
		}
	}

	return payoffEstimates(states)
}
