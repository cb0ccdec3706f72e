package main

import (
	"fmt"

	"github.com/planwise/planwise/internal/calculation"
	"github.com/planwise/planwise/internal/domain"
	"github.com/shopspring/decimal"
)

// Quick debugging harness for the debt payoff estimator. Prints payoff
// months and interest totals for a sample debt set under both freed-payment
// policies and a range of extra payments.
func main() {
	debts := []domain.DebtRecord{
		{Name: "credit card", Balance: decimal.NewFromInt(3200), APR: decimal.NewFromFloat(22.99), MinPayment: decimal.NewFromInt(90)},
		{Name: "car loan", Balance: decimal.NewFromInt(9500), APR: decimal.NewFromFloat(6.5), MinPayment: decimal.NewFromInt(275)},
	}

	extras := []decimal.Decimal{
		decimal.Zero,
		decimal.NewFromInt(100),
		decimal.NewFromInt(250),
		decimal.NewFromInt(500),
	}

	for _, policy := range []domain.FreedPaymentPolicy{domain.FreedPaymentRetain, domain.FreedPaymentSnowball} {
		fmt.Printf("policy=%s\n", policy)
		for _, extra := range extras {
			fmt.Printf("  extra $%s/mo:\n", extra.StringFixed(0))
			for _, estimate := range calculation.EstimatePayoffs(debts, extra, policy, 480) {
				switch {
				case estimate.PayoffMonth != nil:
					fmt.Printf("    %-12s month %3d  interest $%s\n",
						estimate.DebtName, *estimate.PayoffMonth, estimate.TotalInterest.StringFixed(2))
				case estimate.NonAmortizing:
					fmt.Printf("    %-12s never amortizes (balance $%s)\n",
						estimate.DebtName, estimate.FinalBalance.StringFixed(2))
				default:
					fmt.Printf("    %-12s open at month 480 (balance $%s)\n",
						estimate.DebtName, estimate.FinalBalance.StringFixed(2))
				}
			}
		}
		fmt.Println()
	}
}
