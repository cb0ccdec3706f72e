package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// OpeningBalances is the snapshot of asset buckets and liabilities a
// simulation starts from. OtherAssets carries forward unchanged (no growth,
// no contributions).
type OpeningBalances struct {
	Cash        decimal.Decimal `yaml:"cash" json:"cash"`
	Brokerage   decimal.Decimal `yaml:"brokerage" json:"brokerage"`
	Retirement  decimal.Decimal `yaml:"retirement" json:"retirement"`
	HSA         decimal.Decimal `yaml:"hsa" json:"hsa"`
	OtherAssets decimal.Decimal `yaml:"other_assets" json:"other_assets"`
	Debts       []DebtRecord    `yaml:"debts" json:"debts"`
}

// TotalAssets sums every asset bucket including static other assets.
func (ob OpeningBalances) TotalAssets() decimal.Decimal {
	return ob.Cash.Add(ob.Brokerage).Add(ob.Retirement).Add(ob.HSA).Add(ob.OtherAssets)
}

// NetWorth returns opening assets minus opening debt balances.
func (ob OpeningBalances) NetWorth() decimal.Decimal {
	return ob.TotalAssets().Sub(TotalDebtBalance(ob.Debts))
}

// Assumptions holds the annual growth rates applied monthly (rate/12) during
// simulation. BrokerageReturn is nominal; BrokerageTaxDrag is subtracted
// before compounding.
type Assumptions struct {
	CashReturn       decimal.Decimal `yaml:"cash_return" json:"cash_return"`
	RetirementReturn decimal.Decimal `yaml:"retirement_return" json:"retirement_return"`
	BrokerageReturn  decimal.Decimal `yaml:"brokerage_return" json:"brokerage_return"`
	BrokerageTaxDrag decimal.Decimal `yaml:"brokerage_tax_drag" json:"brokerage_tax_drag"`
	HSAReturn        decimal.Decimal `yaml:"hsa_return" json:"hsa_return"`
	InflationRate    decimal.Decimal `yaml:"inflation_rate" json:"inflation_rate"`
}

// DefaultAssumptions returns the standard rate set: 4% cash, 9% retirement,
// 9% nominal brokerage less 0.5% tax drag, 7% HSA, 2.5% inflation.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		CashReturn:       decimal.NewFromFloat(0.04),
		RetirementReturn: decimal.NewFromFloat(0.09),
		BrokerageReturn:  decimal.NewFromFloat(0.09),
		BrokerageTaxDrag: decimal.NewFromFloat(0.005),
		HSAReturn:        decimal.NewFromFloat(0.07),
		InflationRate:    decimal.NewFromFloat(0.025),
	}
}

// BrokerageEffectiveReturn returns the nominal brokerage rate net of tax drag.
func (a Assumptions) BrokerageEffectiveReturn() decimal.Decimal {
	return a.BrokerageReturn.Sub(a.BrokerageTaxDrag)
}

// FreedPaymentPolicy names what happens to a debt's minimum payment once the
// debt finishes amortizing mid-horizon. "retain" keeps the freed cash flow
// out of the simulation (the caller decides where it goes), "snowball"
// redirects it proportionally across the remaining debts.
type FreedPaymentPolicy int

const (
	FreedPaymentRetain FreedPaymentPolicy = iota
	FreedPaymentSnowball
)

func (p FreedPaymentPolicy) String() string {
	if p == FreedPaymentSnowball {
		return "snowball"
	}
	return "retain"
}

// ParseFreedPaymentPolicy converts a config string into a FreedPaymentPolicy.
func ParseFreedPaymentPolicy(s string) (FreedPaymentPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "retain", "":
		return FreedPaymentRetain, nil
	case "snowball":
		return FreedPaymentSnowball, nil
	default:
		return FreedPaymentRetain, fmt.Errorf("invalid freed payment policy %q (want retain or snowball)", s)
	}
}

// MonthlyPlanEntry is one simulated month's contribution vector plus the net
// income it was derived from. Entries are immutable once constructed; index
// in the plan slice is the month offset from simulation start.
type MonthlyPlanEntry struct {
	IncomeNet        decimal.Decimal `json:"income_net"`
	Needs            decimal.Decimal `json:"needs"`
	Wants            decimal.Decimal `json:"wants"`
	EmergencyFund    decimal.Decimal `json:"emergency_fund"`
	HighAPRDebt      decimal.Decimal `json:"high_apr_debt"`
	Match401k        decimal.Decimal `json:"match_401k"`
	RetirementTaxAdv decimal.Decimal `json:"retirement_tax_adv"`
	Brokerage        decimal.Decimal `json:"brokerage"`
}

// SavingsTotal sums the savings-directed components of the entry.
func (e MonthlyPlanEntry) SavingsTotal() decimal.Decimal {
	return e.EmergencyFund.
		Add(e.HighAPRDebt).
		Add(e.Match401k).
		Add(e.RetirementTaxAdv).
		Add(e.Brokerage)
}

// Milestone is a point read off the monthly series at a fixed month offset.
type Milestone struct {
	Label  string          `json:"label"`
	Months int             `json:"months"`
	Value  decimal.Decimal `json:"value"`
}

// PayoffEstimate reports when a debt's balance reaches zero under the
// simulated payment stream. NonAmortizing debts never pay off at the given
// rate; their PayoffMonth is nil rather than an unbounded date.
type PayoffEstimate struct {
	DebtName      string          `json:"debt_name"`
	PayoffMonth   *int            `json:"payoff_month,omitempty"`
	NonAmortizing bool            `json:"non_amortizing"`
	TotalInterest decimal.Decimal `json:"total_interest"`
	FinalBalance  decimal.Decimal `json:"final_balance"`
}

// NetWorthSeries is the monthly-resolution output of a simulation: three
// parallel arrays indexed by month plus milestone point reads.
type NetWorthSeries struct {
	NetWorth    []decimal.Decimal `json:"net_worth"`
	Assets      []decimal.Decimal `json:"assets"`
	Liabilities []decimal.Decimal `json:"liabilities"`
	Milestones  []Milestone       `json:"milestones"`
	Payoffs     []PayoffEstimate  `json:"payoffs,omitempty"`
}

// Months returns the simulated horizon length.
func (s NetWorthSeries) Months() int {
	return len(s.NetWorth)
}

// At returns the net worth at a month offset, clamped to the series bounds.
func (s NetWorthSeries) At(month int) decimal.Decimal {
	if len(s.NetWorth) == 0 {
		return decimal.Zero
	}
	if month < 0 {
		month = 0
	}
	if month >= len(s.NetWorth) {
		month = len(s.NetWorth) - 1
	}
	return s.NetWorth[month]
}

// Final returns the last net worth value in the series.
func (s NetWorthSeries) Final() decimal.Decimal {
	return s.At(s.Months() - 1)
}

// Downsample returns every step-th net worth point for presentation. The
// simulation itself always runs at monthly resolution; this only thins the
// finished series.
func (s NetWorthSeries) Downsample(step int) []decimal.Decimal {
	if step <= 1 {
		return s.NetWorth
	}
	out := make([]decimal.Decimal, 0, len(s.NetWorth)/step+1)
	for i := 0; i < len(s.NetWorth); i += step {
		out = append(out, s.NetWorth[i])
	}
	return out
}

// PlanResult bundles everything one engine pass produces for a scenario.
type PlanResult struct {
	ScenarioName string            `json:"scenario_name"`
	IncomePlan   IncomePlan        `json:"income_plan"`
	Savings      SavingsAllocation `json:"savings"`
	Series       NetWorthSeries    `json:"series"`
}

// FinalNetWorth is a convenience read of the series endpoint.
func (r PlanResult) FinalNetWorth() decimal.Decimal {
	return r.Series.Final()
}
