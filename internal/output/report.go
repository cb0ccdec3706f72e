package output

import (
	"fmt"
	"io"
	"os"

	"github.com/planwise/planwise/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ReportGenerator renders plan results through a registered formatter and
// writes them to Out (stdout unless redirected, e.g. in tests).
type ReportGenerator struct {
	Out io.Writer
}

// NewReportGenerator creates a report generator writing to stdout.
func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{Out: os.Stdout}
}

// WriteReport formats the results with the named formatter and writes them.
func (rg *ReportGenerator) WriteReport(results []domain.PlanResult, format string) error {
	formatter, err := GetFormatterByName(format)
	if err != nil {
		return err
	}

	rendered, err := formatter.Format(results)
	if err != nil {
		return fmt.Errorf("failed to render %s report: %w", format, err)
	}

	if _, err := io.WriteString(rg.Out, rendered); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// SaveConfiguration saves a configuration to a YAML file.
func SaveConfiguration(config *domain.Configuration, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0o644)
}

// FormatCurrency formats a decimal as currency
func FormatCurrency(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// FormatPercentage formats a decimal as percentage
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(1) + "%"
}
