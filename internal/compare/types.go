package compare

import (
	"fmt"

	"github.com/planwise/planwise/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single scenario comparison with calculated metrics
type ComparisonResult struct {
	ScenarioName string             `json:"scenarioName"`
	Plan         *domain.PlanResult `json:"plan,omitempty"`

	// Key Metrics
	SavingsRate     decimal.Decimal `json:"savingsRate"`
	MonthlySavings  decimal.Decimal `json:"monthlySavings"`
	FinalNetWorth   decimal.Decimal `json:"finalNetWorth"`
	NetWorthOneYear decimal.Decimal `json:"netWorthOneYear"`
	DebtFreeMonth   *int            `json:"debtFreeMonth,omitempty"`
	TotalInterest   decimal.Decimal `json:"totalInterest"`

	// Comparison to Base
	NetWorthDiffFromBase decimal.Decimal `json:"netWorthDiffFromBase"`
	NetWorthPctFromBase  decimal.Decimal `json:"netWorthPctFromBase"`
	DebtFreeMonthDiff    int             `json:"debtFreeMonthDiff"`
	InterestDiffFromBase decimal.Decimal `json:"interestDiffFromBase"`
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath"`
}

// MetricsCalculator extracts key metrics from plan results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes all comparison metrics for one plan result
func (mc *MetricsCalculator) CalculateMetrics(plan *domain.PlanResult) ComparisonResult {
	result := ComparisonResult{
		ScenarioName:   plan.ScenarioName,
		Plan:           plan,
		SavingsRate:    plan.IncomePlan.Next.SavingsPct,
		MonthlySavings: plan.IncomePlan.SavingsDollars(),
		FinalNetWorth:  plan.FinalNetWorth(),
		TotalInterest:  mc.totalInterest(plan),
		DebtFreeMonth:  mc.debtFreeMonth(plan),
	}

	for _, ms := range plan.Series.Milestones {
		if ms.Months == 12 {
			result.NetWorthOneYear = ms.Value
		}
	}

	return result
}

// CalculateComparison computes delta metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.NetWorthDiffFromBase = scenario.FinalNetWorth.Sub(base.FinalNetWorth)

	if !base.FinalNetWorth.IsZero() {
		scenario.NetWorthPctFromBase = scenario.NetWorthDiffFromBase.
			Div(base.FinalNetWorth.Abs()).
			Mul(decimal.NewFromInt(100))
	}

	if scenario.DebtFreeMonth != nil && base.DebtFreeMonth != nil {
		scenario.DebtFreeMonthDiff = *scenario.DebtFreeMonth - *base.DebtFreeMonth
	}
	scenario.InterestDiffFromBase = scenario.TotalInterest.Sub(base.TotalInterest)

	return scenario
}

// debtFreeMonth returns the month the last amortizing debt pays off, or nil
// when any debt never pays off within the horizon.
func (mc *MetricsCalculator) debtFreeMonth(plan *domain.PlanResult) *int {
	if len(plan.Series.Payoffs) == 0 {
		return nil
	}
	last := 0
	for _, payoff := range plan.Series.Payoffs {
		if payoff.PayoffMonth == nil {
			return nil
		}
		if *payoff.PayoffMonth > last {
			last = *payoff.PayoffMonth
		}
	}
	return &last
}

// totalInterest sums lifetime interest across every debt in the plan.
func (mc *MetricsCalculator) totalInterest(plan *domain.PlanResult) decimal.Decimal {
	total := decimal.Zero
	for _, payoff := range plan.Series.Payoffs {
		total = total.Add(payoff.TotalInterest)
	}
	return total
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	// Best ending net worth.
	best := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.FinalNetWorth.GreaterThan(best.FinalNetWorth) {
			best = alt
		}
	}
	if best != compSet.BaseResult {
		diff := best.FinalNetWorth.Sub(compSet.BaseResult.FinalNetWorth)
		recommendations = append(recommendations,
			"Best Net Worth: "+best.ScenarioName+" ends $"+diff.StringFixed(0)+
				" ahead of the base scenario")
	}

	// Earliest debt-free date.
	fastest := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.DebtFreeMonth == nil {
			continue
		}
		if fastest.DebtFreeMonth == nil || *alt.DebtFreeMonth < *fastest.DebtFreeMonth {
			fastest = alt
		}
	}
	if fastest != compSet.BaseResult && fastest.DebtFreeMonth != nil {
		recommendations = append(recommendations,
			"Fastest Payoff: "+fastest.ScenarioName+" is debt-free by month "+
				fmt.Sprintf("%d", *fastest.DebtFreeMonth))
	}

	// Lowest lifetime interest.
	cheapest := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.TotalInterest.LessThan(cheapest.TotalInterest) {
			cheapest = alt
		}
	}
	if cheapest != compSet.BaseResult {
		savings := compSet.BaseResult.TotalInterest.Sub(cheapest.TotalInterest)
		recommendations = append(recommendations,
			"Lowest Interest: "+cheapest.ScenarioName+" saves $"+savings.StringFixed(0)+
				" in lifetime interest")
	}

	return recommendations
}
