package output

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/planwise/planwise/internal/domain"
)

// CSVFormatter renders one row per scenario milestone, suitable for charting
// in a spreadsheet.
type CSVFormatter struct{}

func (cf *CSVFormatter) Name() string { return "csv" }

// Format generates CSV output for the plan results.
func (cf *CSVFormatter) Format(results []domain.PlanResult) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario", "Milestone", "Month", "Net Worth",
		"Monthly Savings", "Savings Rate",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for _, result := range results {
		for _, ms := range result.Series.Milestones {
			row := []string{
				result.ScenarioName,
				ms.Label,
				strconv.Itoa(ms.Months),
				ms.Value.StringFixed(2),
				result.IncomePlan.SavingsDollars().StringFixed(2),
				result.IncomePlan.Next.SavingsPct.StringFixed(4),
			}
			if err := writer.Write(row); err != nil {
				return "", err
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}
