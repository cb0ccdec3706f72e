package calculation

import (
	"testing"

	"github.com/planwise/planwise/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulateScenario_OneMonthCashGrowth(t *testing.T) {
	// $1,000 opening cash plus a $100 contribution, compounded one month at
	// 4%/yr: (1000+100)*(1+0.04/12) = $1,103.67.
	series := SimulateScenario(SimulationInput{
		Opening: domain.OpeningBalances{Cash: d(1000)},
		Plan: []domain.MonthlyPlanEntry{
			{EmergencyFund: d(100)},
		},
		Assumptions:   domain.Assumptions{CashReturn: d(0.04)},
		HorizonMonths: 1,
	})

	require.Equal(t, 1, series.Months())
	expected := d(1100).Mul(onePlus(monthlyRate(d(0.04))))
	assert.True(t, series.NetWorth[0].Equal(expected), "got %s, want %s", series.NetWorth[0], expected)
	assert.Equal(t, "1103.67", series.NetWorth[0].StringFixed(2))
}

func TestSimulateScenario_ContributionsBeforeGrowth(t *testing.T) {
	// The same contribution is worth more when it lands before compounding.
	// Two months at 9% retirement growth, $500/month.
	series := SimulateScenario(SimulationInput{
		Opening:       domain.OpeningBalances{Retirement: d(10000)},
		Plan:          []domain.MonthlyPlanEntry{{RetirementTaxAdv: d(500)}},
		Assumptions:   domain.Assumptions{RetirementReturn: d(0.09)},
		HorizonMonths: 2,
	})

	growth := onePlus(monthlyRate(d(0.09)))
	month1 := d(10000).Add(d(500)).Mul(growth)
	month2 := month1.Add(d(500)).Mul(growth)
	assert.True(t, series.NetWorth[0].Equal(month1))
	assert.True(t, series.NetWorth[1].Equal(month2))
}

func TestSimulateScenario_BrokerageUsesEffectiveReturn(t *testing.T) {
	assumptions := domain.Assumptions{
		BrokerageReturn:  d(0.09),
		BrokerageTaxDrag: d(0.005),
	}
	series := SimulateScenario(SimulationInput{
		Opening:       domain.OpeningBalances{Brokerage: d(10000)},
		Assumptions:   assumptions,
		HorizonMonths: 1,
	})

	expected := d(10000).Mul(onePlus(monthlyRate(d(0.085))))
	assert.True(t, series.NetWorth[0].Equal(expected),
		"brokerage must compound at nominal minus drag, got %s want %s", series.NetWorth[0], expected)
}

func TestSimulateScenario_ZeroRatesAreFlat(t *testing.T) {
	series := SimulateScenario(SimulationInput{
		Opening:       domain.OpeningBalances{Cash: d(2500), OtherAssets: d(400)},
		HorizonMonths: 12,
	})

	require.Equal(t, 12, series.Months())
	for m := 0; m < 12; m++ {
		assert.True(t, series.NetWorth[m].Equal(d(2900)), "month %d drifted to %s", m, series.NetWorth[m])
	}
}

func TestSimulateScenario_DebtAmortizesToPayoff(t *testing.T) {
	// $100 at 12% APR with a $50 minimum: pays off in the third month.
	series := SimulateScenario(SimulationInput{
		Opening: domain.OpeningBalances{
			Debts: []domain.DebtRecord{
				{Name: "card", Balance: d(100), APR: d(12), MinPayment: d(50)},
			},
		},
		HorizonMonths: 6,
	})

	require.Len(t, series.Payoffs, 1)
	payoff := series.Payoffs[0]
	require.NotNil(t, payoff.PayoffMonth)
	assert.Equal(t, 2, *payoff.PayoffMonth)
	assert.False(t, payoff.NonAmortizing)
	assert.True(t, payoff.FinalBalance.IsZero())
	assert.True(t, payoff.TotalInterest.GreaterThan(decimal.Zero))

	// Liabilities hit zero from the payoff month on; net worth recovers.
	assert.True(t, series.Liabilities[2].IsZero())
	assert.True(t, series.NetWorth[5].GreaterThan(series.NetWorth[0]))
}

func TestSimulateScenario_NonAmortizingDebtFlagged(t *testing.T) {
	// 2%/month interest on $10,000 is $200; a $100 payment never catches up.
	series := SimulateScenario(SimulationInput{
		Opening: domain.OpeningBalances{
			Debts: []domain.DebtRecord{
				{Name: "deferred loan", Balance: d(10000), APR: d(24), MinPayment: d(100)},
			},
		},
		HorizonMonths: 12,
	})

	require.Len(t, series.Payoffs, 1)
	payoff := series.Payoffs[0]
	assert.True(t, payoff.NonAmortizing)
	assert.Nil(t, payoff.PayoffMonth)
	assert.True(t, payoff.FinalBalance.GreaterThan(d(10000)), "balance must keep growing, got %s", payoff.FinalBalance)
	assert.True(t, series.Liabilities[11].GreaterThan(series.Liabilities[0]))
}

func TestSimulateScenario_ExtraPaymentSplitsProportionally(t *testing.T) {
	// Two high-APR debts at zero interest, $300 extra against $3,000 and
	// $1,000 balances: the extra lands $225/$75 each month.
	series := SimulateScenario(SimulationInput{
		Opening: domain.OpeningBalances{
			Debts: []domain.DebtRecord{
				{Name: "big", Balance: d(3000), APR: d(20), MinPayment: d(0)},
				{Name: "small", Balance: d(1000), APR: d(20), MinPayment: d(0)},
			},
		},
		Plan:          []domain.MonthlyPlanEntry{{HighAPRDebt: d(300)}},
		HorizonMonths: 1,
	})

	// One month at 20%/12 interest, then the proportional extra payment.
	rate := domain.DebtRecord{APR: d(20)}.MonthlyRate()
	wantBig := d(3000).Add(d(3000).Mul(rate)).Sub(d(225))
	wantSmall := d(1000).Add(d(1000).Mul(rate)).Sub(d(75))
	assert.True(t, series.Liabilities[0].Equal(wantBig.Add(wantSmall)),
		"got %s, want %s", series.Liabilities[0], wantBig.Add(wantSmall))
}

func TestSimulateScenario_PlanShorterThanHorizon(t *testing.T) {
	// A one-entry plan repeats for the whole horizon.
	series := SimulateScenario(SimulationInput{
		Opening:       domain.OpeningBalances{Cash: d(1000)},
		Plan:          []domain.MonthlyPlanEntry{{EmergencyFund: d(100)}},
		HorizonMonths: 3,
	})

	assert.True(t, series.NetWorth[2].Equal(d(1300)), "last plan entry should carry forward, got %s", series.NetWorth[2])
}

func TestSimulateScenario_Milestones(t *testing.T) {
	series := SimulateScenario(SimulationInput{
		Opening:       domain.OpeningBalances{Cash: d(1000)},
		Plan:          []domain.MonthlyPlanEntry{{EmergencyFund: d(10)}},
		HorizonMonths: 24,
	})

	byMonth := make(map[int]domain.Milestone, len(series.Milestones))
	for _, ms := range series.Milestones {
		byMonth[ms.Months] = ms
	}

	require.Contains(t, byMonth, 0)
	require.Contains(t, byMonth, 6)
	require.Contains(t, byMonth, 12)
	require.Contains(t, byMonth, 24)
	assert.NotContains(t, byMonth, 60, "milestones past the horizon are dropped")

	assert.Equal(t, "Today", byMonth[0].Label)
	assert.Equal(t, "6 months", byMonth[6].Label)
	assert.Equal(t, "1 year", byMonth[12].Label)
	assert.Equal(t, "2 years", byMonth[24].Label)

	// Month 0 is the opening position; month m is the balance after m months.
	assert.True(t, byMonth[0].Value.Equal(d(1000)))
	assert.True(t, byMonth[6].Value.Equal(series.NetWorth[5]))
	assert.True(t, byMonth[12].Value.Equal(series.NetWorth[11]))
	assert.True(t, byMonth[24].Value.Equal(series.NetWorth[23]))
}

func TestSimulateScenario_CustomMilestoneMonths(t *testing.T) {
	series := SimulateScenario(SimulationInput{
		Opening:         domain.OpeningBalances{Cash: d(1000)},
		HorizonMonths:   48,
		MilestoneMonths: []int{18, 36, 99},
	})

	months := make([]int, len(series.Milestones))
	for i, ms := range series.Milestones {
		months[i] = ms.Months
	}
	assert.Contains(t, months, 18)
	assert.Contains(t, months, 36)
	assert.NotContains(t, months, 99, "requested month past the horizon is dropped")
	assert.Contains(t, months, 48, "the horizon itself is always a milestone")
}

func TestSimulateScenario_ZeroHorizon(t *testing.T) {
	series := SimulateScenario(SimulationInput{
		Opening: domain.OpeningBalances{Cash: d(1000)},
	})

	assert.Equal(t, 0, series.Months())
	assert.True(t, series.Final().IsZero())
	require.Len(t, series.Milestones, 1)
	assert.Equal(t, "Today", series.Milestones[0].Label)
	assert.True(t, series.Milestones[0].Value.Equal(d(1000)))
}

func TestNetWorthSeries_Downsample(t *testing.T) {
	series := SimulateScenario(SimulationInput{
		Opening:       domain.OpeningBalances{Cash: d(1000)},
		Plan:          []domain.MonthlyPlanEntry{{EmergencyFund: d(100)}},
		HorizonMonths: 12,
	})

	points := series.Downsample(3)
	require.Len(t, points, 4)
	assert.True(t, points[0].Equal(series.NetWorth[0]))
	assert.True(t, points[3].Equal(series.NetWorth[9]))

	assert.Len(t, series.Downsample(1), 12)
}

func TestMilestoneLabel(t *testing.T) {
	cases := []struct {
		months int
		want   string
	}{
		{0, "Today"},
		{6, "6 months"},
		{12, "1 year"},
		{18, "18 months"},
		{24, "2 years"},
		{60, "5 years"},
		{360, "30 years"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, milestoneLabel(tc.months))
	}
}
