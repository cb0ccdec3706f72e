package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

func TestAllocationState_Normalization(t *testing.T) {
	normalized := AllocationState{NeedsPct: d(0.50), WantsPct: d(0.30), SavingsPct: d(0.20)}
	assert.True(t, normalized.IsNormalized())
	assert.Equal(t, normalized, normalized.Normalized())

	drifted := AllocationState{NeedsPct: d(0.50), WantsPct: d(0.30), SavingsPct: d(0.10)}
	assert.False(t, drifted.IsNormalized())
	fixed := drifted.Normalized()
	assert.True(t, fixed.IsNormalized(), "sum after normalization is %s", fixed.Sum())
	// Proportions survive the rescale: needs is still 5x savings.
	assert.True(t, fixed.NeedsPct.Equal(fixed.SavingsPct.Mul(d(5))))

	unusable := AllocationState{}
	assert.Equal(t, DefaultAllocationState(), unusable.Normalized())
}

func TestAllocationState_DollarAmounts(t *testing.T) {
	a := AllocationState{NeedsPct: d(0.55), WantsPct: d(0.25), SavingsPct: d(0.20)}
	income := d(4000)

	assert.True(t, a.NeedsAmount(income).Equal(d(2200)))
	assert.True(t, a.WantsAmount(income).Equal(d(1000)))
	assert.True(t, a.SavingsAmount(income).Equal(d(800)))
}

func TestEmergencyFund_Gap(t *testing.T) {
	ef := EmergencyFund{Current: d(3000), Target: d(12000)}
	assert.True(t, ef.Gap().Equal(d(9000)))
	assert.False(t, ef.IsFunded())

	overfunded := EmergencyFund{Current: d(15000), Target: d(12000)}
	assert.True(t, overfunded.Gap().IsZero(), "gap floors at zero")
	assert.True(t, overfunded.IsFunded())
}

func TestDebtRecord_HighAPRBoundary(t *testing.T) {
	cases := []struct {
		apr  decimal.Decimal
		want bool
	}{
		{d(9.99), false},
		{d(10), false}, // threshold is exclusive
		{d(10.01), true},
		{d(29.99), true},
	}
	for _, tc := range cases {
		debt := DebtRecord{APR: tc.apr}
		assert.Equal(t, tc.want, debt.IsHighAPR(), "APR %s", tc.apr)
	}
}

func TestDebtRecord_MonthlyInterest(t *testing.T) {
	debt := DebtRecord{Balance: d(1200), APR: d(12)}
	// 12% APR is 1%/month on $1,200.
	assert.True(t, debt.MonthlyInterest().Equal(d(12)), "got %s", debt.MonthlyInterest())
}

func TestPartitionDebts(t *testing.T) {
	debts := []DebtRecord{
		{Name: "card", APR: d(22), Balance: d(2000)},
		{Name: "car", APR: d(6), Balance: d(15000)},
		{Name: "personal", APR: d(14), Balance: d(4000)},
	}

	highAPR, other := PartitionDebts(debts)
	require.Len(t, highAPR, 2)
	require.Len(t, other, 1)
	assert.Equal(t, "car", other[0].Name)
	assert.True(t, TotalDebtBalance(highAPR).Equal(d(6000)))
	assert.True(t, TotalDebtBalance(debts).Equal(d(21000)))
}

func TestContributionLimits_Room(t *testing.T) {
	limits := ContributionLimits{
		IRALimit:              d(7000),
		IRAYTD:                d(6000),
		K401Limit:             d(23500),
		K401YTDExcludingMatch: d(25000),
	}

	assert.True(t, limits.IRARoom().Equal(d(1000)))
	assert.True(t, limits.K401Room().IsZero(), "overshoot floors at zero")
}

func TestStandardContributionLimits(t *testing.T) {
	base := StandardContributionLimits(2026, 34)
	assert.True(t, base.IRALimit.Equal(d(7000)))
	assert.True(t, base.K401Limit.Equal(d(23500)))

	catchup := StandardContributionLimits(2026, 52)
	assert.True(t, catchup.IRALimit.Equal(d(8000)))
	assert.True(t, catchup.K401Limit.Equal(d(31000)))

	prior := StandardContributionLimits(2024, 34)
	assert.True(t, prior.K401Limit.Equal(d(23000)))
}

func TestParseLiquidity(t *testing.T) {
	cases := []struct {
		in      string
		want    Liquidity
		wantErr bool
	}{
		{"low", LiquidityLow, false},
		{"Medium", LiquidityMedium, false},
		{"HIGH", LiquidityHigh, false},
		{"", LiquidityMedium, false},
		{"  high  ", LiquidityHigh, false},
		{"extreme", LiquidityMedium, true},
	}
	for _, tc := range cases {
		got, err := ParseLiquidity(tc.in)
		if tc.wantErr {
			assert.Error(t, err, "input %q", tc.in)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestParseRetirementFocus(t *testing.T) {
	got, err := ParseRetirementFocus("high")
	require.NoError(t, err)
	assert.Equal(t, RetirementFocusHigh, got)

	_, err = ParseRetirementFocus("maximal")
	assert.Error(t, err)
}

func TestParseFreedPaymentPolicy(t *testing.T) {
	got, err := ParseFreedPaymentPolicy("")
	require.NoError(t, err)
	assert.Equal(t, FreedPaymentRetain, got)

	got, err = ParseFreedPaymentPolicy("Snowball")
	require.NoError(t, err)
	assert.Equal(t, FreedPaymentSnowball, got)

	_, err = ParseFreedPaymentPolicy("avalanche")
	assert.Error(t, err)
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "low", LiquidityLow.String())
	assert.Equal(t, "high", RetirementFocusHigh.String())
	assert.Equal(t, "roth", AccountRoth.String())
	assert.Equal(t, "traditional", AccountTraditional.String())
	assert.Equal(t, "retain", FreedPaymentRetain.String())
	assert.Equal(t, "snowball", FreedPaymentSnowball.String())
}

func TestOpeningBalances_NetWorth(t *testing.T) {
	ob := OpeningBalances{
		Cash:        d(3000),
		Brokerage:   d(8000),
		Retirement:  d(25000),
		HSA:         d(1500),
		OtherAssets: d(500),
		Debts: []DebtRecord{
			{Name: "card", Balance: d(2400)},
			{Name: "car", Balance: d(9600)},
		},
	}

	assert.True(t, ob.TotalAssets().Equal(d(38000)))
	assert.True(t, ob.NetWorth().Equal(d(26000)))
}

func TestAssumptions_BrokerageEffectiveReturn(t *testing.T) {
	a := DefaultAssumptions()
	assert.True(t, a.BrokerageEffectiveReturn().Equal(d(0.085)),
		"9%% nominal less 0.5%% drag, got %s", a.BrokerageEffectiveReturn())
}

func TestNetWorthSeries_Access(t *testing.T) {
	series := NetWorthSeries{
		NetWorth: []decimal.Decimal{d(100), d(200), d(300)},
	}

	assert.Equal(t, 3, series.Months())
	assert.True(t, series.At(-5).Equal(d(100)), "negative month clamps to start")
	assert.True(t, series.At(1).Equal(d(200)))
	assert.True(t, series.At(99).Equal(d(300)), "overflow clamps to end")
	assert.True(t, series.Final().Equal(d(300)))

	var empty NetWorthSeries
	assert.True(t, empty.At(0).IsZero())
	assert.True(t, empty.Final().IsZero())
}

func TestMonthlyPlanEntry_SavingsTotal(t *testing.T) {
	entry := MonthlyPlanEntry{
		EmergencyFund:    d(480),
		HighAPRDebt:      d(288),
		Match401k:        d(100),
		RetirementTaxAdv: d(216),
		Brokerage:        d(216),
	}
	assert.True(t, entry.SavingsTotal().Equal(d(1300)))
}

func TestConfiguration_FindScenario(t *testing.T) {
	config := &Configuration{
		Scenarios: []Scenario{
			{Name: "steady"},
			{Name: "aggressive"},
		},
	}

	require.NotNil(t, config.FindScenario("aggressive"))
	assert.Equal(t, "aggressive", config.FindScenario("aggressive").Name)
	assert.Nil(t, config.FindScenario("missing"))
}
