package calculation

import (
	"testing"

	"github.com/planwise/planwise/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roomyLimits() domain.ContributionLimits {
	return domain.ContributionLimits{
		IRALimit:  d(7000),
		K401Limit: d(23500),
	}
}

func TestAllocateSavings_EmergencyFundCapBinds(t *testing.T) {
	// budget $5,000, EF gap $4,000: the 40% budget cap holds EF to $2,000.
	// High-APR balance of $1,200 fits under 40% of the $3,000 remainder.
	in := WaterfallInput{
		EmergencyFund: domain.EmergencyFund{Current: d(1000), Target: d(5000)},
		Debts: []domain.DebtRecord{
			{Name: "credit card", Balance: d(1200), APR: d(24), MinPayment: d(40)},
		},
		Liquidity:       domain.LiquidityMedium,
		RetirementFocus: domain.RetirementFocusMedium,
		Limits:          roomyLimits(),
	}

	out := AllocateSavings(d(5000), in)

	assert.True(t, out.EmergencyFund.Equal(d(2000)), "EF capped at 40%% of budget, got %s", out.EmergencyFund)
	assert.True(t, out.HighAPRDebt.Equal(d(1200)), "full high-APR balance fits under the cap, got %s", out.HighAPRDebt)
	assert.True(t, out.Total().Equal(d(5000)), "allocation must conserve the budget, got %s", out.Total())

	require.NotEmpty(t, out.Warnings)
	assert.Contains(t, out.Warnings[0], "40% per-month cap")
}

func TestAllocateSavings_DebtCapBinds(t *testing.T) {
	in := WaterfallInput{
		Debts: []domain.DebtRecord{
			{Name: "card a", Balance: d(9000), APR: d(22), MinPayment: d(200)},
			{Name: "car loan", Balance: d(15000), APR: d(6), MinPayment: d(350)},
		},
		Liquidity:       domain.LiquidityMedium,
		RetirementFocus: domain.RetirementFocusMedium,
		Limits:          roomyLimits(),
	}

	out := AllocateSavings(d(2000), in)

	// No EF gap, so the debt cap is 40% of the full $2,000. Only the 22%
	// card counts as high-APR.
	assert.True(t, out.EmergencyFund.IsZero())
	assert.True(t, out.HighAPRDebt.Equal(d(800)), "debt capped at 40%% of remainder, got %s", out.HighAPRDebt)
	assert.True(t, out.Total().Equal(d(2000)))

	require.NotEmpty(t, out.Warnings)
	assert.Contains(t, out.Warnings[0], "debt cap")
}

func TestAllocateSavings_EmployerMatchIsAFloor(t *testing.T) {
	in := WaterfallInput{
		MatchNeeded:     d(300),
		Liquidity:       domain.LiquidityMedium,
		RetirementFocus: domain.RetirementFocusMedium,
		Limits:          roomyLimits(),
	}

	out := AllocateSavings(d(1000), in)
	assert.True(t, out.EmployerMatch.Equal(d(300)), "match is funded in full before the split")
	assert.True(t, out.Total().Equal(d(1000)))

	// A tiny budget goes entirely to the match, with a warning.
	short := AllocateSavings(d(100), in)
	assert.True(t, short.EmployerMatch.Equal(d(100)))
	require.NotEmpty(t, short.Warnings)
	assert.Contains(t, short.Warnings[0], "employer match")
}

func TestAllocateSavings_MatchCapturedSkipsStep(t *testing.T) {
	in := WaterfallInput{
		MatchNeeded:     d(300),
		MatchCaptured:   true,
		Liquidity:       domain.LiquidityMedium,
		RetirementFocus: domain.RetirementFocusMedium,
		Limits:          roomyLimits(),
	}

	out := AllocateSavings(d(1000), in)
	assert.True(t, out.EmployerMatch.IsZero(), "captured match must not consume budget")
	assert.True(t, out.Total().Equal(d(1000)))
}

func TestAllocateSavings_RetirementRoomRouting(t *testing.T) {
	// With a 50/50 medium/medium split of a $2,520 remainder, the $1,260
	// retirement share routes $1,000 into remaining IRA room and $260 into
	// the 401(k).
	in := WaterfallInput{
		Liquidity:       domain.LiquidityMedium,
		RetirementFocus: domain.RetirementFocusMedium,
		Limits: domain.ContributionLimits{
			IRALimit:  d(7000),
			IRAYTD:    d(6000),
			K401Limit: d(23500),
		},
	}

	out := AllocateSavings(d(2520), in)

	assert.True(t, out.IRA.Equal(d(1000)), "IRA takes the remaining room, got %s", out.IRA)
	assert.True(t, out.K401.Equal(d(260)), "401(k) takes the overflow, got %s", out.K401)
	assert.True(t, out.Spill.IsZero())
	assert.True(t, out.Brokerage.Equal(d(1260)))
	assert.True(t, out.Total().Equal(d(2520)))
	assert.Empty(t, out.Warnings)
}

func TestAllocateSavings_SpillWhenRoomExhausted(t *testing.T) {
	in := WaterfallInput{
		Liquidity:       domain.LiquidityMedium,
		RetirementFocus: domain.RetirementFocusMedium,
		Limits: domain.ContributionLimits{
			IRALimit:              d(7000),
			IRAYTD:                d(7000),
			K401Limit:             d(23500),
			K401YTDExcludingMatch: d(23500),
		},
	}

	out := AllocateSavings(d(1000), in)

	assert.True(t, out.IRA.IsZero())
	assert.True(t, out.K401.IsZero())
	assert.True(t, out.Spill.Equal(d(500)), "retirement share spills when no room remains, got %s", out.Spill)
	assert.True(t, out.BrokerageTotal().Equal(d(1000)))
	assert.True(t, out.Total().Equal(d(1000)))

	require.NotEmpty(t, out.Warnings)
	assert.Contains(t, out.Warnings[0], "spilled into brokerage")
}

func TestAllocateSavings_MatrixCorners(t *testing.T) {
	cases := []struct {
		name      string
		liquidity domain.Liquidity
		focus     domain.RetirementFocus
		wantRet   decimal.Decimal
	}{
		{"low liquidity, high focus", domain.LiquidityLow, domain.RetirementFocusHigh, d(900)},
		{"high liquidity, low focus", domain.LiquidityHigh, domain.RetirementFocusLow, d(100)},
		{"medium both", domain.LiquidityMedium, domain.RetirementFocusMedium, d(500)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := AllocateSavings(d(1000), WaterfallInput{
				Liquidity:       tc.liquidity,
				RetirementFocus: tc.focus,
				Limits:          roomyLimits(),
			})

			assert.True(t, out.RetirementTotal().Equal(tc.wantRet),
				"retirement share for %s should be %s, got %s", tc.name, tc.wantRet, out.RetirementTotal())
			assert.True(t, out.Total().Equal(d(1000)))
		})
	}
}

func TestAllocateSavings_Conservation(t *testing.T) {
	// Every combination of binding caps must still sum back to the budget.
	inputs := []WaterfallInput{
		{},
		{EmergencyFund: domain.EmergencyFund{Target: d(10000)}},
		{
			EmergencyFund: domain.EmergencyFund{Target: d(10000)},
			Debts: []domain.DebtRecord{
				{Name: "card", Balance: d(8000), APR: d(29.99), MinPayment: d(160)},
			},
			MatchNeeded: d(250),
		},
		{
			Debts: []domain.DebtRecord{
				{Name: "card", Balance: d(50), APR: d(18), MinPayment: d(25)},
			},
			Limits: domain.ContributionLimits{IRALimit: d(7000), IRAYTD: d(6990)},
		},
	}
	budgets := []decimal.Decimal{decimal.Zero, d(0.01), d(137.59), d(1000), d(25000)}

	for _, in := range inputs {
		in.Liquidity = domain.LiquidityMedium
		in.RetirementFocus = domain.RetirementFocusMedium
		for _, budget := range budgets {
			out := AllocateSavings(budget, in)
			assert.True(t, out.Total().Equal(budget),
				"budget %s leaked: allocated %s", budget, out.Total())
			assert.True(t, out.EmergencyFund.GreaterThanOrEqual(decimal.Zero))
			assert.True(t, out.EmergencyFund.LessThanOrEqual(budget.Mul(efBudgetCap)),
				"EF %s exceeds 40%% of budget %s", out.EmergencyFund, budget)
		}
	}
}

func TestAllocateSavings_NegativeBudget(t *testing.T) {
	out := AllocateSavings(d(-50), WaterfallInput{
		Liquidity:       domain.LiquidityMedium,
		RetirementFocus: domain.RetirementFocusMedium,
	})

	assert.True(t, out.Budget.IsZero())
	assert.True(t, out.Total().IsZero())
	require.Len(t, out.Warnings, 1)
	assert.Contains(t, out.Warnings[0], "negative")
}

func TestClassifyAccountType(t *testing.T) {
	cases := []struct {
		name string
		tax  domain.TaxProfile
		want domain.AccountType
	}{
		{"low income single", domain.TaxProfile{AnnualIncome: d(85000), Filing: domain.FilingSingle}, domain.AccountRoth},
		{"just under single threshold", domain.TaxProfile{AnnualIncome: d(189999), Filing: domain.FilingSingle}, domain.AccountRoth},
		{"at single threshold", domain.TaxProfile{AnnualIncome: d(190000), Filing: domain.FilingSingle}, domain.AccountTraditional},
		{"married under threshold", domain.TaxProfile{AnnualIncome: d(210000), Filing: domain.FilingMarried}, domain.AccountRoth},
		{"at married threshold", domain.TaxProfile{AnnualIncome: d(230000), Filing: domain.FilingMarried}, domain.AccountTraditional},
		{"IDR overrides low income", domain.TaxProfile{AnnualIncome: d(60000), Filing: domain.FilingSingle, OnIDRPlan: true}, domain.AccountTraditional},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyAccountType(tc.tax))
		})
	}
}

func TestSplitFractions_SumToOne(t *testing.T) {
	one := decimal.NewFromInt(1)
	for _, liq := range []domain.Liquidity{domain.LiquidityLow, domain.LiquidityMedium, domain.LiquidityHigh} {
		for _, focus := range []domain.RetirementFocus{domain.RetirementFocusLow, domain.RetirementFocusMedium, domain.RetirementFocusHigh} {
			ret, brok := SplitFractions(liq, focus)
			assert.True(t, ret.Add(brok).Equal(one),
				"cell %s/%s does not sum to 1", liq, focus)
		}
	}
}
