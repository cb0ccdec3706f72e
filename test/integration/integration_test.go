package integration

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planwise/planwise/internal/calculation"
	"github.com/planwise/planwise/internal/compare"
	"github.com/planwise/planwise/internal/config"
	"github.com/planwise/planwise/internal/goalseek"
	"github.com/planwise/planwise/internal/output"
)

const configPath = "../testdata/example_plan.yaml"

func TestEndToEndPlan(t *testing.T) {
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile(configPath)
	require.NoError(t, err)
	require.NotNil(t, cfg.Profile)
	require.Len(t, cfg.Scenarios, 2)

	engine := calculation.NewPlanEngine()
	results, err := engine.RunScenarios(cfg)
	require.NoError(t, err)
	require.Len(t, results, 2)

	for _, result := range results {
		// Every allocated dollar lands in exactly one bucket.
		assert.True(t, result.Savings.Total().Equal(result.Savings.Budget),
			"scenario %s: waterfall must conserve the budget", result.ScenarioName)

		assert.Equal(t, 120, result.Series.Months())
		assert.NotEmpty(t, result.Series.Milestones)
		assert.Len(t, result.Series.Payoffs, 2)

		// Both scenarios save and invest; net worth should grow over 10 years.
		assert.True(t, result.Series.Final().GreaterThan(result.Series.At(0)),
			"scenario %s: net worth should trend upward", result.ScenarioName)
	}

	// The debt-first scenario pays extra, so the credit card retires sooner.
	steadyPayoff := results[0].Series.Payoffs[0]
	debtFirstPayoff := results[1].Series.Payoffs[0]
	require.NotNil(t, steadyPayoff.PayoffMonth)
	require.NotNil(t, debtFirstPayoff.PayoffMonth)
	assert.LessOrEqual(t, *debtFirstPayoff.PayoffMonth, *steadyPayoff.PayoffMonth)
}

func TestEndToEndReportFormats(t *testing.T) {
	cfg, err := config.NewInputParser().LoadFromFile(configPath)
	require.NoError(t, err)

	results, err := calculation.NewPlanEngine().RunScenarios(cfg)
	require.NoError(t, err)

	for _, name := range output.FormatterNames() {
		formatter, err := output.GetFormatterByName(name)
		require.NoError(t, err)

		rendered, err := formatter.Format(results)
		require.NoError(t, err, "format %s", name)
		assert.NotEmpty(t, rendered, "format %s", name)
	}
}

func TestEndToEndComparison(t *testing.T) {
	cfg, err := config.NewInputParser().LoadFromFile(configPath)
	require.NoError(t, err)

	engine := compare.NewCompareEngine(calculation.NewPlanEngine())
	set, err := engine.CompareScenarios(context.Background(), cfg, "steady", nil)
	require.NoError(t, err)

	require.NotNil(t, set.BaseResult)
	require.Len(t, set.AlternativeResults, 1)
	assert.Equal(t, "debt-first", set.AlternativeResults[0].ScenarioName)
	assert.NotEmpty(t, set.Recommendations)

	table := (&compare.TableFormatter{}).Format(set)
	assert.Contains(t, table, "SAVINGS PLAN COMPARISON")
	assert.Contains(t, table, "debt-first")
}

func TestEndToEndGoalSeek(t *testing.T) {
	cfg, err := config.NewInputParser().LoadFromFile(configPath)
	require.NoError(t, err)

	solver := goalseek.NewDefaultSolver(calculation.NewPlanEngine())
	result, err := solver.Solve(context.Background(), goalseek.Request{
		Config:        cfg,
		ScenarioName:  "steady",
		Target:        goalseek.SolveExtraPayment,
		PayoffByMonth: 18,
	})
	require.NoError(t, err)
	require.True(t, result.Success, "info: %s", result.ConvergenceInfo)
	require.NotNil(t, result.OptimalExtraPayment)
	assert.True(t, result.OptimalExtraPayment.GreaterThanOrEqual(decimal.Zero))
	require.NotNil(t, result.AchievedPayoffMonth)
	assert.LessOrEqual(t, *result.AchievedPayoffMonth, 18)
}
