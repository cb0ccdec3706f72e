package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/planwise/planwise/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
profile:
  monthly_income: 6000
  actual_allocation:
    needs_pct: 0.55
    wants_pct: 0.28
    savings_pct: 0.17
  emergency_fund:
    current: 3000
    target: 12000
  contribution_limits:
    ira_limit: 7000
    ira_ytd: 2500
    k401_limit: 23500
    k401_ytd_excluding_match: 6000
  tax:
    annual_income: 95000
    filing_status: single
  liquidity: medium
  retirement_focus: high
  balances:
    cash: 3000
    brokerage: 8000
    retirement: 25000
    debts:
      - name: credit card
        balance: 2400
        apr: 21.99
        min_payment: 70
assumptions:
  cash_return: 0.04
  retirement_return: 0.09
  brokerage_return: 0.09
  brokerage_tax_drag: 0.005
  hsa_return: 0.07
  inflation_rate: 0.025
scenarios:
  - name: steady
    target_allocation:
      needs_pct: 0.55
      wants_pct: 0.25
      savings_pct: 0.20
    horizon_months: 120
  - name: aggressive payoff
    target_allocation:
      needs_pct: 0.55
      wants_pct: 0.20
      savings_pct: 0.25
    extra_debt_payment: 300
    freed_payment_policy: snowball
`

func validConfig(t *testing.T) *domain.Configuration {
	t.Helper()
	config, err := NewInputParser().LoadFromBytes([]byte(validYAML))
	require.NoError(t, err)
	return config
}

func TestLoadFromBytes_Valid(t *testing.T) {
	config := validConfig(t)

	require.NotNil(t, config.Profile)
	assert.True(t, config.Profile.MonthlyIncome.Equal(decimal.NewFromInt(6000)))
	assert.True(t, config.Profile.Actual.SavingsPct.Equal(decimal.NewFromFloat(0.17)))
	assert.Equal(t, "high", config.Profile.RetirementFocus)
	require.Len(t, config.Profile.Balances.Debts, 1)
	assert.Equal(t, "credit card", config.Profile.Balances.Debts[0].Name)

	require.Len(t, config.Scenarios, 2)
	assert.Equal(t, "steady", config.Scenarios[0].Name)
	assert.Equal(t, 120, config.Scenarios[0].HorizonMonths)
	assert.Equal(t, "snowball", config.Scenarios[1].FreedPaymentPolicy)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validYAML), 0o644))

	config, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)
	assert.NotNil(t, config.Profile)

	_, err = NewInputParser().LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadFromBytes_MalformedYAML(t *testing.T) {
	_, err := NewInputParser().LoadFromBytes([]byte("profile: [not: valid"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestApplyDefaults(t *testing.T) {
	config := &domain.Configuration{Profile: &domain.Profile{}}
	NewInputParser().ApplyDefaults(config)

	assert.True(t, config.Assumptions.CashReturn.Equal(decimal.NewFromFloat(0.04)),
		"omitted assumptions fall back to the standard rate set")
	assert.True(t, config.Profile.Limits.IRALimit.Equal(decimal.NewFromInt(7000)),
		"omitted limits fall back to the statutory amounts")

	// Explicit assumptions survive untouched.
	custom := &domain.Configuration{
		Assumptions: domain.Assumptions{CashReturn: decimal.NewFromFloat(0.05)},
	}
	NewInputParser().ApplyDefaults(custom)
	assert.True(t, custom.Assumptions.CashReturn.Equal(decimal.NewFromFloat(0.05)))
}

func TestValidateConfiguration_Rejections(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*domain.Configuration)
		wantErr string
	}{
		{
			"missing profile",
			func(c *domain.Configuration) { c.Profile = nil },
			"profile is required",
		},
		{
			"negative income",
			func(c *domain.Configuration) { c.Profile.MonthlyIncome = decimal.NewFromInt(-1) },
			"monthly income cannot be negative",
		},
		{
			"needs over one",
			func(c *domain.Configuration) { c.Profile.Actual.NeedsPct = decimal.NewFromFloat(1.2) },
			"needs percent must be between 0 and 1",
		},
		{
			"negative emergency fund",
			func(c *domain.Configuration) { c.Profile.EmergencyFund.Current = decimal.NewFromInt(-100) },
			"emergency fund current balance cannot be negative",
		},
		{
			"negative IRA ytd",
			func(c *domain.Configuration) { c.Profile.Limits.IRAYTD = decimal.NewFromInt(-1) },
			"IRA year-to-date contributions cannot be negative",
		},
		{
			"bad filing status",
			func(c *domain.Configuration) { c.Profile.Tax.Filing = "head_of_household" },
			"filing status must be",
		},
		{
			"bad liquidity",
			func(c *domain.Configuration) { c.Profile.Liquidity = "extreme" },
			"invalid liquidity",
		},
		{
			"negative cash",
			func(c *domain.Configuration) { c.Profile.Balances.Cash = decimal.NewFromInt(-5) },
			"cash balance cannot be negative",
		},
		{
			"unnamed debt",
			func(c *domain.Configuration) { c.Profile.Balances.Debts[0].Name = "" },
			"name is required",
		},
		{
			"negative APR",
			func(c *domain.Configuration) { c.Profile.Balances.Debts[0].APR = decimal.NewFromInt(-2) },
			"APR cannot be negative",
		},
		{
			"no scenarios",
			func(c *domain.Configuration) { c.Scenarios = nil },
			"no scenarios provided",
		},
		{
			"unnamed scenario",
			func(c *domain.Configuration) { c.Scenarios[0].Name = "" },
			"scenario name is required",
		},
		{
			"duplicate scenario names",
			func(c *domain.Configuration) { c.Scenarios[1].Name = c.Scenarios[0].Name },
			"duplicate scenario name",
		},
		{
			"negative target savings",
			func(c *domain.Configuration) { c.Scenarios[0].Target.SavingsPct = decimal.NewFromFloat(-0.1) },
			"savings percent cannot be negative",
		},
		{
			"shift limit too large",
			func(c *domain.Configuration) { c.Scenarios[0].ShiftLimitPct = decimal.NewFromFloat(0.30) },
			"shift limit must be between",
		},
		{
			"horizon too long",
			func(c *domain.Configuration) { c.Scenarios[0].HorizonMonths = 481 },
			"horizon months must be between",
		},
		{
			"bad freed payment policy",
			func(c *domain.Configuration) { c.Scenarios[0].FreedPaymentPolicy = "avalanche" },
			"invalid freed payment policy",
		},
		{
			"implausible return",
			func(c *domain.Configuration) { c.Assumptions.RetirementReturn = decimal.NewFromFloat(0.9) },
			"not plausible",
		},
		{
			"drag exceeds return",
			func(c *domain.Configuration) { c.Assumptions.BrokerageTaxDrag = decimal.NewFromFloat(0.20) },
			"tax drag cannot exceed",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			config := validConfig(t)
			tc.mutate(config)

			err := NewInputParser().ValidateConfiguration(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestValidateConfiguration_NegativeActualSavingsAllowed(t *testing.T) {
	// Spending beyond income is a real observed state, not a config error.
	config := validConfig(t)
	config.Profile.Actual = domain.AllocationState{
		NeedsPct:   decimal.NewFromFloat(0.70),
		WantsPct:   decimal.NewFromFloat(0.45),
		SavingsPct: decimal.NewFromFloat(-0.15),
	}

	assert.NoError(t, NewInputParser().ValidateConfiguration(config))
}
