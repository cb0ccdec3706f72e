package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// HighAPRThreshold is the annual percentage rate above which a debt is
// prioritized for extra payoff.
var HighAPRThreshold = decimal.NewFromInt(10)

// EmergencyFund tracks progress toward a cash reserve target.
type EmergencyFund struct {
	Current decimal.Decimal `yaml:"current" json:"current"`
	Target  decimal.Decimal `yaml:"target" json:"target"`
}

// Gap returns the remaining dollars to the target, floored at zero.
func (ef EmergencyFund) Gap() decimal.Decimal {
	gap := ef.Target.Sub(ef.Current)
	if gap.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return gap
}

// IsFunded reports whether the fund has reached its target.
func (ef EmergencyFund) IsFunded() bool {
	return ef.Gap().IsZero()
}

// DebtRecord is an externally owned debt the engine reads but never mutates.
// APR is expressed in percent (19.99 means 19.99%/yr).
type DebtRecord struct {
	Name       string          `yaml:"name" json:"name"`
	Balance    decimal.Decimal `yaml:"balance" json:"balance"`
	APR        decimal.Decimal `yaml:"apr" json:"apr"`
	MinPayment decimal.Decimal `yaml:"min_payment" json:"min_payment"`
}

// IsHighAPR reports whether the debt qualifies for the high-APR payoff pool.
func (d DebtRecord) IsHighAPR() bool {
	return d.APR.GreaterThan(HighAPRThreshold)
}

// MonthlyRate returns the periodic interest rate (APR/100/12).
func (d DebtRecord) MonthlyRate() decimal.Decimal {
	return d.APR.Div(decimal.NewFromInt(100)).Div(decimal.NewFromInt(12))
}

// MonthlyInterest returns one month of interest on the current balance.
func (d DebtRecord) MonthlyInterest() decimal.Decimal {
	return d.Balance.Mul(d.MonthlyRate())
}

// PartitionDebts splits a debt list into the high-APR payoff pool and the rest.
func PartitionDebts(debts []DebtRecord) (highAPR, other []DebtRecord) {
	for _, d := range debts {
		if d.IsHighAPR() {
			highAPR = append(highAPR, d)
		} else {
			other = append(other, d)
		}
	}
	return highAPR, other
}

// TotalDebtBalance sums the balances of a debt list.
func TotalDebtBalance(debts []DebtRecord) decimal.Decimal {
	total := decimal.Zero
	for _, d := range debts {
		total = total.Add(d.Balance)
	}
	return total
}

// ContributionLimits is a per-tax-year snapshot of tax-advantaged account
// room. YTD amounts are the dollars already contributed this year; 401(k)
// YTD excludes employer match, which does not consume the employee limit.
type ContributionLimits struct {
	IRALimit              decimal.Decimal `yaml:"ira_limit" json:"ira_limit"`
	IRAYTD                decimal.Decimal `yaml:"ira_ytd" json:"ira_ytd"`
	K401Limit             decimal.Decimal `yaml:"k401_limit" json:"k401_limit"`
	K401YTDExcludingMatch decimal.Decimal `yaml:"k401_ytd_excluding_match" json:"k401_ytd_excluding_match"`
}

// StandardContributionLimits returns the statutory limits for a tax year,
// including catch-up amounts for savers aged 50 and over.
func StandardContributionLimits(taxYear, age int) ContributionLimits {
	iraLimit := decimal.NewFromInt(7000)
	k401Limit := decimal.NewFromInt(23500)
	if taxYear < 2025 {
		k401Limit = decimal.NewFromInt(23000)
	}
	if age >= 50 {
		iraLimit = iraLimit.Add(decimal.NewFromInt(1000))
		k401Limit = k401Limit.Add(decimal.NewFromInt(7500))
	}
	return ContributionLimits{IRALimit: iraLimit, K401Limit: k401Limit}
}

// IRARoom returns remaining IRA contribution room, floored at zero.
func (cl ContributionLimits) IRARoom() decimal.Decimal {
	return roomBetween(cl.IRALimit, cl.IRAYTD)
}

// K401Room returns remaining employee 401(k) room, floored at zero.
func (cl ContributionLimits) K401Room() decimal.Decimal {
	return roomBetween(cl.K401Limit, cl.K401YTDExcludingMatch)
}

func roomBetween(limit, ytd decimal.Decimal) decimal.Decimal {
	room := limit.Sub(ytd)
	if room.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return room
}

// Liquidity is the user's declared preference for accessible (non-retirement)
// savings.
type Liquidity int

const (
	LiquidityLow Liquidity = iota
	LiquidityMedium
	LiquidityHigh
)

func (l Liquidity) String() string {
	switch l {
	case LiquidityLow:
		return "low"
	case LiquidityMedium:
		return "medium"
	case LiquidityHigh:
		return "high"
	default:
		return "unknown"
	}
}

// ParseLiquidity converts a config string into a Liquidity level.
func ParseLiquidity(s string) (Liquidity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return LiquidityLow, nil
	case "medium", "":
		return LiquidityMedium, nil
	case "high":
		return LiquidityHigh, nil
	default:
		return LiquidityMedium, fmt.Errorf("invalid liquidity %q (want low, medium or high)", s)
	}
}

// RetirementFocus is the user's declared preference for retirement-directed
// savings.
type RetirementFocus int

const (
	RetirementFocusLow RetirementFocus = iota
	RetirementFocusMedium
	RetirementFocusHigh
)

func (r RetirementFocus) String() string {
	switch r {
	case RetirementFocusLow:
		return "low"
	case RetirementFocusMedium:
		return "medium"
	case RetirementFocusHigh:
		return "high"
	default:
		return "unknown"
	}
}

// ParseRetirementFocus converts a config string into a RetirementFocus level.
func ParseRetirementFocus(s string) (RetirementFocus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return RetirementFocusLow, nil
	case "medium", "":
		return RetirementFocusMedium, nil
	case "high":
		return RetirementFocusHigh, nil
	default:
		return RetirementFocusMedium, fmt.Errorf("invalid retirement focus %q (want low, medium or high)", s)
	}
}

// AccountType is the Roth-vs-Traditional classification for tax-advantaged
// contributions. It routes dollars in the waterfall but allocates none itself.
type AccountType int

const (
	AccountRoth AccountType = iota
	AccountTraditional
)

func (t AccountType) String() string {
	if t == AccountTraditional {
		return "traditional"
	}
	return "roth"
}

// FilingStatus is the household tax filing status.
type FilingStatus string

const (
	FilingSingle  FilingStatus = "single"
	FilingMarried FilingStatus = "married"
)

// TaxProfile carries the facts the account-type classification needs.
type TaxProfile struct {
	AnnualIncome decimal.Decimal `yaml:"annual_income" json:"annual_income"`
	Filing       FilingStatus    `yaml:"filing_status" json:"filing_status"`
	OnIDRPlan    bool            `yaml:"on_idr_plan" json:"on_idr_plan"`
}

// SavingsAllocation is the dollar-level outcome of one waterfall pass.
// EmergencyFund through Brokerage are the per-goal amounts; Spill is
// retirement budget that found no tax-advantaged room and landed in
// brokerage. Unallocated surfaces budget no capped step could absorb.
type SavingsAllocation struct {
	Budget        decimal.Decimal `json:"budget"`
	EmergencyFund decimal.Decimal `json:"emergency_fund"`
	HighAPRDebt   decimal.Decimal `json:"high_apr_debt"`
	EmployerMatch decimal.Decimal `json:"employer_match"`
	IRA           decimal.Decimal `json:"ira"`
	K401          decimal.Decimal `json:"k401"`
	Brokerage     decimal.Decimal `json:"brokerage"`
	Spill         decimal.Decimal `json:"spill"`
	Unallocated   decimal.Decimal `json:"unallocated"`

	AccountType AccountType `json:"account_type"`
	Warnings    []string    `json:"warnings,omitempty"`
}

// Total sums every allocated bucket plus the unallocated remainder. It equals
// Budget to cent precision for every valid waterfall pass.
func (sa SavingsAllocation) Total() decimal.Decimal {
	return sa.EmergencyFund.
		Add(sa.HighAPRDebt).
		Add(sa.EmployerMatch).
		Add(sa.IRA).
		Add(sa.K401).
		Add(sa.Brokerage).
		Add(sa.Spill).
		Add(sa.Unallocated)
}

// RetirementTotal returns the dollars routed into tax-advantaged retirement
// accounts (IRA + employee 401(k), excluding employer match).
func (sa SavingsAllocation) RetirementTotal() decimal.Decimal {
	return sa.IRA.Add(sa.K401)
}

// BrokerageTotal returns direct brokerage dollars plus retirement spill.
func (sa SavingsAllocation) BrokerageTotal() decimal.Decimal {
	return sa.Brokerage.Add(sa.Spill)
}
