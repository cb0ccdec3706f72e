package domain

import (
	"github.com/shopspring/decimal"
)

// Profile is the household snapshot every scenario starts from: income, the
// observed three-month-average split, goal state and opening balances. The
// engine never reads ambient state; callers pass a complete Profile each run.
type Profile struct {
	MonthlyIncome   decimal.Decimal    `yaml:"monthly_income" json:"monthly_income"`
	Actual          AllocationState    `yaml:"actual_allocation" json:"actual_allocation"`
	EmergencyFund   EmergencyFund      `yaml:"emergency_fund" json:"emergency_fund"`
	Limits          ContributionLimits `yaml:"contribution_limits" json:"contribution_limits"`
	Tax             TaxProfile         `yaml:"tax" json:"tax"`
	Liquidity       string             `yaml:"liquidity" json:"liquidity"`
	RetirementFocus string             `yaml:"retirement_focus" json:"retirement_focus"`
	Balances        OpeningBalances    `yaml:"balances" json:"balances"`
}

// Scenario is one set of planning knobs applied to the profile. Scenarios in
// a configuration share the profile and differ only in these fields, which is
// what makes side-by-side comparison meaningful.
type Scenario struct {
	Name               string          `yaml:"name" json:"name"`
	Target             AllocationState `yaml:"target_allocation" json:"target_allocation"`
	ShiftLimitPct      decimal.Decimal `yaml:"shift_limit_pct" json:"shift_limit_pct"`
	MatchNeeded        decimal.Decimal `yaml:"match_needed" json:"match_needed"`
	MatchCaptured      bool            `yaml:"match_captured" json:"match_captured"`
	ExtraDebtPayment   decimal.Decimal `yaml:"extra_debt_payment" json:"extra_debt_payment"`
	HorizonMonths      int             `yaml:"horizon_months" json:"horizon_months"`
	FreedPaymentPolicy string          `yaml:"freed_payment_policy" json:"freed_payment_policy"`
}

// Configuration is the complete input file: one profile, shared assumptions,
// one or more scenarios.
type Configuration struct {
	Profile     *Profile    `yaml:"profile" json:"profile"`
	Assumptions Assumptions `yaml:"assumptions" json:"assumptions"`
	Scenarios   []Scenario  `yaml:"scenarios" json:"scenarios"`
}

// FindScenario returns the named scenario, or nil when absent.
func (c *Configuration) FindScenario(name string) *Scenario {
	for i := range c.Scenarios {
		if c.Scenarios[i].Name == name {
			return &c.Scenarios[i]
		}
	}
	return nil
}
