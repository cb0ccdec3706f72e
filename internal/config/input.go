package config

import (
	"fmt"
	"os"

	"github.com/planwise/planwise/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.LoadFromBytes(data)
}

// LoadFromBytes parses, defaults and validates a raw YAML document
func (ip *InputParser) LoadFromBytes(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ip.ApplyDefaults(&config)

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ApplyDefaults fills omitted assumption rates and contribution limits so the
// engine never sees a zero-valued knob the file simply left out.
func (ip *InputParser) ApplyDefaults(config *domain.Configuration) {
	if config.Assumptions == (domain.Assumptions{}) {
		config.Assumptions = domain.DefaultAssumptions()
	}

	if config.Profile != nil && config.Profile.Limits == (domain.ContributionLimits{}) {
		config.Profile.Limits = domain.StandardContributionLimits(2026, 0)
	}
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := ip.validateProfile(config.Profile); err != nil {
		return fmt.Errorf("profile validation failed: %w", err)
	}
	if err := ip.validateAssumptions(&config.Assumptions); err != nil {
		return fmt.Errorf("assumptions validation failed: %w", err)
	}

	if len(config.Scenarios) == 0 {
		return fmt.Errorf("no scenarios provided")
	}
	seen := make(map[string]bool, len(config.Scenarios))
	for i := range config.Scenarios {
		scenario := &config.Scenarios[i]
		if err := ip.validateScenario(scenario); err != nil {
			return fmt.Errorf("scenario %d (%s) validation failed: %w", i, scenario.Name, err)
		}
		if seen[scenario.Name] {
			return fmt.Errorf("duplicate scenario name: %s", scenario.Name)
		}
		seen[scenario.Name] = true
	}

	return nil
}

// validateProfile validates the household snapshot every scenario reads
func (ip *InputParser) validateProfile(profile *domain.Profile) error {
	if profile == nil {
		return fmt.Errorf("profile is required")
	}
	if profile.MonthlyIncome.LessThan(decimal.Zero) {
		return fmt.Errorf("monthly income cannot be negative")
	}

	if err := ip.validateAllocation("actual allocation", profile.Actual); err != nil {
		return err
	}

	if profile.EmergencyFund.Current.LessThan(decimal.Zero) {
		return fmt.Errorf("emergency fund current balance cannot be negative")
	}
	if profile.EmergencyFund.Target.LessThan(decimal.Zero) {
		return fmt.Errorf("emergency fund target cannot be negative")
	}

	if err := ip.validateLimits(&profile.Limits); err != nil {
		return err
	}

	if profile.Tax.AnnualIncome.LessThan(decimal.Zero) {
		return fmt.Errorf("annual income cannot be negative")
	}
	if profile.Tax.Filing != "" && profile.Tax.Filing != domain.FilingSingle && profile.Tax.Filing != domain.FilingMarried {
		return fmt.Errorf("filing status must be 'single' or 'married'")
	}

	if _, err := domain.ParseLiquidity(profile.Liquidity); err != nil {
		return err
	}
	if _, err := domain.ParseRetirementFocus(profile.RetirementFocus); err != nil {
		return err
	}

	return ip.validateBalances(&profile.Balances)
}

// validateAllocation validates one needs/wants/savings triple. Savings may be
// negative (spending beyond income is a real state the engine plans around);
// needs and wants may not.
func (ip *InputParser) validateAllocation(label string, a domain.AllocationState) error {
	one := decimal.NewFromInt(1)
	if a.NeedsPct.LessThan(decimal.Zero) || a.NeedsPct.GreaterThan(one) {
		return fmt.Errorf("%s: needs percent must be between 0 and 1", label)
	}
	if a.WantsPct.LessThan(decimal.Zero) || a.WantsPct.GreaterThan(one) {
		return fmt.Errorf("%s: wants percent must be between 0 and 1", label)
	}
	if a.SavingsPct.GreaterThan(one) {
		return fmt.Errorf("%s: savings percent cannot exceed 1", label)
	}
	return nil
}

func (ip *InputParser) validateLimits(limits *domain.ContributionLimits) error {
	if limits.IRALimit.LessThan(decimal.Zero) {
		return fmt.Errorf("IRA limit cannot be negative")
	}
	if limits.IRAYTD.LessThan(decimal.Zero) {
		return fmt.Errorf("IRA year-to-date contributions cannot be negative")
	}
	if limits.K401Limit.LessThan(decimal.Zero) {
		return fmt.Errorf("401(k) limit cannot be negative")
	}
	if limits.K401YTDExcludingMatch.LessThan(decimal.Zero) {
		return fmt.Errorf("401(k) year-to-date contributions cannot be negative")
	}
	return nil
}

func (ip *InputParser) validateBalances(balances *domain.OpeningBalances) error {
	if balances.Cash.LessThan(decimal.Zero) {
		return fmt.Errorf("cash balance cannot be negative")
	}
	if balances.Brokerage.LessThan(decimal.Zero) {
		return fmt.Errorf("brokerage balance cannot be negative")
	}
	if balances.Retirement.LessThan(decimal.Zero) {
		return fmt.Errorf("retirement balance cannot be negative")
	}
	if balances.HSA.LessThan(decimal.Zero) {
		return fmt.Errorf("HSA balance cannot be negative")
	}
	if balances.OtherAssets.LessThan(decimal.Zero) {
		return fmt.Errorf("other assets cannot be negative")
	}

	for i, debt := range balances.Debts {
		if debt.Name == "" {
			return fmt.Errorf("debt %d: name is required", i)
		}
		if debt.Balance.LessThan(decimal.Zero) {
			return fmt.Errorf("debt %s: balance cannot be negative", debt.Name)
		}
		if debt.APR.LessThan(decimal.Zero) {
			return fmt.Errorf("debt %s: APR cannot be negative", debt.Name)
		}
		if debt.MinPayment.LessThan(decimal.Zero) {
			return fmt.Errorf("debt %s: minimum payment cannot be negative", debt.Name)
		}
	}
	return nil
}

// validateScenario validates one set of planning knobs
func (ip *InputParser) validateScenario(scenario *domain.Scenario) error {
	if scenario.Name == "" {
		return fmt.Errorf("scenario name is required")
	}

	if err := ip.validateAllocation("target allocation", scenario.Target); err != nil {
		return err
	}
	if scenario.Target.SavingsPct.LessThan(decimal.Zero) {
		return fmt.Errorf("target allocation: savings percent cannot be negative")
	}

	if scenario.ShiftLimitPct.LessThan(decimal.Zero) || scenario.ShiftLimitPct.GreaterThan(decimal.NewFromFloat(0.25)) {
		return fmt.Errorf("shift limit must be between 0 and 25%%")
	}
	if scenario.MatchNeeded.LessThan(decimal.Zero) {
		return fmt.Errorf("match needed cannot be negative")
	}
	if scenario.ExtraDebtPayment.LessThan(decimal.Zero) {
		return fmt.Errorf("extra debt payment cannot be negative")
	}
	if scenario.HorizonMonths < 0 || scenario.HorizonMonths > 480 {
		return fmt.Errorf("horizon months must be between 0 and 480")
	}
	if _, err := domain.ParseFreedPaymentPolicy(scenario.FreedPaymentPolicy); err != nil {
		return err
	}

	return nil
}

// validateAssumptions validates the shared growth-rate set
func (ip *InputParser) validateAssumptions(a *domain.Assumptions) error {
	negOne := decimal.NewFromInt(-1)
	rates := []struct {
		name string
		rate decimal.Decimal
	}{
		{"cash return", a.CashReturn},
		{"retirement return", a.RetirementReturn},
		{"brokerage return", a.BrokerageReturn},
		{"HSA return", a.HSAReturn},
	}
	for _, r := range rates {
		if r.rate.LessThan(negOne) {
			return fmt.Errorf("%s cannot be less than -100%%", r.name)
		}
		if r.rate.GreaterThan(decimal.NewFromFloat(0.5)) {
			return fmt.Errorf("%s above 50%%/yr is not plausible", r.name)
		}
	}

	if a.BrokerageTaxDrag.LessThan(decimal.Zero) {
		return fmt.Errorf("brokerage tax drag cannot be negative")
	}
	if a.BrokerageTaxDrag.GreaterThan(a.BrokerageReturn) {
		return fmt.Errorf("brokerage tax drag cannot exceed the brokerage return")
	}
	if a.InflationRate.LessThan(decimal.NewFromFloat(-0.10)) {
		return fmt.Errorf("inflation rate cannot be less than -10%% (extreme deflation)")
	}

	return nil
}
