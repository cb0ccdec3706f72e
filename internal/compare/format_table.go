package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("SAVINGS PLAN COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	nameWidth := 25
	numWidth := 13

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "Savings Rate",
		numWidth, "Monthly $",
		numWidth, "1yr Net Worth",
		numWidth, "Final"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	base := compSet.BaseResult
	sb.WriteString(tf.formatRow(base, nameWidth, numWidth, true))

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.ScenarioName))

			symbol := tf.deltaSymbol(alt.NetWorthDiffFromBase)
			sb.WriteString(fmt.Sprintf("  Final Net Worth:  %s$%s (%s%%)\n",
				symbol,
				tf.formatDecimal(alt.NetWorthDiffFromBase.Abs()),
				alt.NetWorthPctFromBase.StringFixed(1)))

			if alt.DebtFreeMonthDiff != 0 {
				monthsSymbol := "+"
				if alt.DebtFreeMonthDiff < 0 {
					monthsSymbol = ""
				}
				sb.WriteString(fmt.Sprintf("  Debt-Free Date:   %s%d months\n",
					monthsSymbol, alt.DebtFreeMonthDiff))
			}

			if !alt.InterestDiffFromBase.IsZero() {
				// Less interest is the good direction.
				interestSymbol := tf.deltaSymbol(alt.InterestDiffFromBase.Neg())
				sb.WriteString(fmt.Sprintf("  Interest Impact:  %s$%s\n",
					interestSymbol,
					tf.formatDecimal(alt.InterestDiffFromBase.Abs())))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("- %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, result.SavingsRate.Mul(decimal.NewFromInt(100)).StringFixed(1)+"%",
		numWidth, "$"+tf.formatDecimal(result.MonthlySavings),
		numWidth, "$"+tf.formatDecimal(result.NetWorthOneYear),
		numWidth, "$"+tf.formatDecimal(result.FinalNetWorth))
}

// formatDecimal formats a dollar amount compactly (K/M above the thresholds)
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

// deltaSymbol returns a + or - symbol for deltas
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if alt.NetWorthDiffFromBase.IsPositive() {
			change = fmt.Sprintf("+$%s", tf.formatDecimal(alt.NetWorthDiffFromBase))
		} else if alt.NetWorthDiffFromBase.IsNegative() {
			change = fmt.Sprintf("-$%s", tf.formatDecimal(alt.NetWorthDiffFromBase.Abs()))
		}

		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}
