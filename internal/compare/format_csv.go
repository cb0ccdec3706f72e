package compare

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Savings Rate",
		"Monthly Savings",
		"Net Worth (1 Year)",
		"Final Net Worth",
		"Debt-Free Month",
		"Total Interest",
		"Net Worth Diff from Base",
		"Net Worth % Change",
		"Debt-Free Month Diff",
		"Interest Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
		return "", err
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	debtFree := "never"
	if result.DebtFreeMonth != nil {
		debtFree = formatInt(*result.DebtFreeMonth)
	}

	return []string{
		result.ScenarioName,
		scenarioType,
		result.SavingsRate.StringFixed(4),
		result.MonthlySavings.StringFixed(2),
		result.NetWorthOneYear.StringFixed(2),
		result.FinalNetWorth.StringFixed(2),
		debtFree,
		result.TotalInterest.StringFixed(2),
		result.NetWorthDiffFromBase.StringFixed(2),
		result.NetWorthPctFromBase.StringFixed(2),
		formatInt(result.DebtFreeMonthDiff),
		result.InterestDiffFromBase.StringFixed(2),
	}
}

func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}
