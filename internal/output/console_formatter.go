package output

import (
	"fmt"
	"strings"

	"github.com/planwise/planwise/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsoleFormatter renders plan results as a detailed plain-text report.
type ConsoleFormatter struct{}

func (cf *ConsoleFormatter) Name() string { return "console" }

// Format generates the full console report for every scenario.
func (cf *ConsoleFormatter) Format(results []domain.PlanResult) (string, error) {
	var sb strings.Builder

	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString("PERSONAL SAVINGS PLAN ANALYSIS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n\n")

	for i, result := range results {
		sb.WriteString(fmt.Sprintf("SCENARIO %d: %s\n", i+1, result.ScenarioName))
		sb.WriteString(strings.Repeat("=", 50) + "\n\n")

		cf.writeIncomePlan(&sb, result.IncomePlan)
		cf.writeAllocation(&sb, result.Savings)
		cf.writeProjection(&sb, result.Series)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

func (cf *ConsoleFormatter) writeIncomePlan(sb *strings.Builder, plan domain.IncomePlan) {
	sb.WriteString("INCOME PLAN\n")
	sb.WriteString("-----------\n")
	sb.WriteString(fmt.Sprintf("  Net Monthly Income:  %s\n", FormatCurrency(plan.Income)))
	sb.WriteString(fmt.Sprintf("  Current Split:       needs %s / wants %s / savings %s\n",
		FormatPercentage(plan.Actual.NeedsPct.Mul(decimal.NewFromInt(100))),
		FormatPercentage(plan.Actual.WantsPct.Mul(decimal.NewFromInt(100))),
		FormatPercentage(plan.Actual.SavingsPct.Mul(decimal.NewFromInt(100)))))
	sb.WriteString(fmt.Sprintf("  Next Period Split:   needs %s / wants %s / savings %s\n",
		FormatPercentage(plan.Next.NeedsPct.Mul(decimal.NewFromInt(100))),
		FormatPercentage(plan.Next.WantsPct.Mul(decimal.NewFromInt(100))),
		FormatPercentage(plan.Next.SavingsPct.Mul(decimal.NewFromInt(100)))))
	sb.WriteString(fmt.Sprintf("  Monthly Savings:     %s\n", FormatCurrency(plan.SavingsDollars())))

	for _, note := range plan.Notes {
		sb.WriteString(fmt.Sprintf("  Note: %s\n", note))
	}
	sb.WriteString("\n")
}

func (cf *ConsoleFormatter) writeAllocation(sb *strings.Builder, allocation domain.SavingsAllocation) {
	sb.WriteString("SAVINGS WATERFALL\n")
	sb.WriteString("-----------------\n")
	sb.WriteString(fmt.Sprintf("  Emergency Fund:      %s\n", FormatCurrency(allocation.EmergencyFund)))
	sb.WriteString(fmt.Sprintf("  High-APR Debt:       %s\n", FormatCurrency(allocation.HighAPRDebt)))
	sb.WriteString(fmt.Sprintf("  Employer Match:      %s\n", FormatCurrency(allocation.EmployerMatch)))
	sb.WriteString(fmt.Sprintf("  IRA (%s):          %s\n", allocation.AccountType, FormatCurrency(allocation.IRA)))
	sb.WriteString(fmt.Sprintf("  401(k) (%s):       %s\n", allocation.AccountType, FormatCurrency(allocation.K401)))
	sb.WriteString(fmt.Sprintf("  Brokerage:           %s\n", FormatCurrency(allocation.BrokerageTotal())))
	sb.WriteString(fmt.Sprintf("  TOTAL:               %s\n", FormatCurrency(allocation.Total())))

	for _, warning := range allocation.Warnings {
		sb.WriteString(fmt.Sprintf("  Warning: %s\n", warning))
	}
	sb.WriteString("\n")
}

func (cf *ConsoleFormatter) writeProjection(sb *strings.Builder, series domain.NetWorthSeries) {
	sb.WriteString("NET WORTH PROJECTION\n")
	sb.WriteString("--------------------\n")

	for _, ms := range series.Milestones {
		sb.WriteString(fmt.Sprintf("  %-12s %s\n", ms.Label+":", FormatCurrency(ms.Value)))
	}

	if len(series.Payoffs) > 0 {
		sb.WriteString("\nDEBT PAYOFF\n")
		sb.WriteString("-----------\n")
		for _, payoff := range series.Payoffs {
			switch {
			case payoff.NonAmortizing:
				sb.WriteString(fmt.Sprintf("  %-20s never pays off at the current payment (balance %s)\n",
					payoff.DebtName+":", FormatCurrency(payoff.FinalBalance)))
			case payoff.PayoffMonth != nil:
				sb.WriteString(fmt.Sprintf("  %-20s paid off in month %d (interest %s)\n",
					payoff.DebtName+":", *payoff.PayoffMonth, FormatCurrency(payoff.TotalInterest)))
			default:
				sb.WriteString(fmt.Sprintf("  %-20s still open at horizon end (balance %s)\n",
					payoff.DebtName+":", FormatCurrency(payoff.FinalBalance)))
			}
		}
	}
}
