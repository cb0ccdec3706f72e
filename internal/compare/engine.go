package compare

import (
	"context"
	"fmt"

	"github.com/planwise/planwise/internal/calculation"
	"github.com/planwise/planwise/internal/domain"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	PlanEngine *calculation.PlanEngine
	Metrics    *MetricsCalculator
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(planEngine *calculation.PlanEngine) *CompareEngine {
	return &CompareEngine{
		PlanEngine: planEngine,
		Metrics:    NewMetricsCalculator(),
	}
}

// CompareScenarios runs the base scenario and each named alternative against
// the shared profile and computes deltas from the base. An empty alternatives
// list compares every other scenario in the configuration.
func (ce *CompareEngine) CompareScenarios(
	ctx context.Context,
	config *domain.Configuration,
	baseScenarioName string,
	alternativeScenarioNames []string,
) (*ComparisonSet, error) {

	baseScenario := config.FindScenario(baseScenarioName)
	if baseScenario == nil {
		return nil, fmt.Errorf("base scenario %s not found in configuration", baseScenarioName)
	}

	basePlan, err := ce.PlanEngine.RunScenario(config, baseScenario)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}
	baseResult := ce.Metrics.CalculateMetrics(basePlan)

	if len(alternativeScenarioNames) == 0 {
		for _, scenario := range config.Scenarios {
			if scenario.Name != baseScenarioName {
				alternativeScenarioNames = append(alternativeScenarioNames, scenario.Name)
			}
		}
	}

	alternatives := []ComparisonResult{}
	for _, altName := range alternativeScenarioNames {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		altScenario := config.FindScenario(altName)
		if altScenario == nil {
			return nil, fmt.Errorf("alternative scenario %s not found", altName)
		}

		altPlan, err := ce.PlanEngine.RunScenario(config, altScenario)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", altName, err)
		}

		altResult := ce.Metrics.CalculateMetrics(altPlan)
		altResult = ce.Metrics.CalculateComparison(altResult, baseResult)
		alternatives = append(alternatives, altResult)
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseScenarioName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}
