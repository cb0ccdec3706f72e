package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/planwise/planwise/internal/domain"
)

// Formatter renders a set of plan results in one output format.
type Formatter interface {
	Name() string
	Format(results []domain.PlanResult) (string, error)
}

var formatters = map[string]Formatter{}

// RegisterFormatter adds a formatter to the registry, replacing any existing
// formatter with the same name.
func RegisterFormatter(f Formatter) {
	formatters[strings.ToLower(f.Name())] = f
}

// GetFormatterByName looks up a registered formatter by its case-insensitive name.
func GetFormatterByName(name string) (Formatter, error) {
	f, ok := formatters[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unsupported format: %s (available: %s)", name, strings.Join(FormatterNames(), ", "))
	}
	return f, nil
}

// FormatterNames returns the registered formatter names, sorted.
func FormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	RegisterFormatter(&ConsoleFormatter{})
	RegisterFormatter(&JSONFormatter{Pretty: true})
	RegisterFormatter(&CSVFormatter{})
}
