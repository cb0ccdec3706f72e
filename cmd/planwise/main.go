package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/planwise/planwise/internal/calculation"
	"github.com/planwise/planwise/internal/compare"
	"github.com/planwise/planwise/internal/config"
	"github.com/planwise/planwise/internal/domain"
	"github.com/planwise/planwise/internal/goalseek"
	"github.com/planwise/planwise/internal/output"
	"github.com/planwise/planwise/internal/tui"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "planwise",
	Short: "Personal savings planner CLI",
	Long:  "Income reallocation, savings waterfall, and net worth projection for household budgets",
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "planwise %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

// newEngine builds a plan engine honoring the --debug flag.
func newEngine(cmd *cobra.Command) *calculation.PlanEngine {
	engine := calculation.NewPlanEngine()
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		engine.SetLogger(simpleCLILogger{})
		engine.Debug = true
	}
	return engine
}

var planCmd = &cobra.Command{
	Use:   "plan [input-file]",
	Short: "Run savings plan scenarios",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		parser := config.NewInputParser()
		configData, err := parser.LoadFromFile(args[0])
		if err != nil {
			log.Fatal(err)
		}

		engine := newEngine(cmd)

		scenarioName, _ := cmd.Flags().GetString("scenario")
		var results []domain.PlanResult
		if scenarioName != "" {
			scenario := configData.FindScenario(scenarioName)
			if scenario == nil {
				log.Fatalf("scenario %s not found in %s", scenarioName, args[0])
			}
			result, err := engine.RunScenario(configData, scenario)
			if err != nil {
				log.Fatal(err)
			}
			results = []domain.PlanResult{*result}
		} else {
			results, err = engine.RunScenarios(configData)
			if err != nil {
				log.Fatal(err)
			}
		}

		outputFormat, _ := cmd.Flags().GetString("format")
		if err := output.NewReportGenerator().WriteReport(results, outputFormat); err != nil {
			log.Fatal(err)
		}
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Validate a configuration file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		parser := config.NewInputParser()
		if _, err := parser.LoadFromFile(args[0]); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Configuration file %s is valid\n", args[0])
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare [input-file]",
	Short: "Compare savings scenarios against a base scenario",
	Long: `Compare a base scenario against one or more alternatives.

Examples:
  planwise compare plan.yaml --base steady
  planwise compare plan.yaml --base steady --with aggressive,debt-first --format csv
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		parser := config.NewInputParser()
		configData, err := parser.LoadFromFile(args[0])
		if err != nil {
			log.Fatal(err)
		}

		baseScenarioName, _ := cmd.Flags().GetString("base")
		if baseScenarioName == "" {
			log.Fatal("--base flag is required to specify the base scenario name")
		}

		withStr, _ := cmd.Flags().GetString("with")
		var alternatives []string
		for _, name := range strings.Split(withStr, ",") {
			if trimmed := strings.TrimSpace(name); trimmed != "" {
				alternatives = append(alternatives, trimmed)
			}
		}

		compareEngine := compare.NewCompareEngine(newEngine(cmd))
		comparisonSet, err := compareEngine.CompareScenarios(context.Background(), configData, baseScenarioName, alternatives)
		if err != nil {
			log.Fatalf("Comparison failed: %v", err)
		}
		comparisonSet.ConfigPath = args[0]

		outputFormat, _ := cmd.Flags().GetString("format")
		switch strings.ToLower(outputFormat) {
		case "csv":
			rendered, err := (&compare.CSVFormatter{}).Format(comparisonSet)
			if err != nil {
				log.Fatalf("Failed to format CSV: %v", err)
			}
			fmt.Print(rendered)

		case "json":
			rendered, err := (&compare.JSONFormatter{Pretty: true}).Format(comparisonSet)
			if err != nil {
				log.Fatalf("Failed to format JSON: %v", err)
			}
			fmt.Print(rendered)

		case "table", "console", "":
			fmt.Print((&compare.TableFormatter{}).Format(comparisonSet))

		default:
			log.Fatalf("Unknown output format: %s (valid: table, csv, json)", outputFormat)
		}
	},
}

var goalseekCmd = &cobra.Command{
	Use:   "goalseek [input-file]",
	Short: "Solve for the savings rate or extra payment that hits a goal",
	Long: `Answer inverse planning questions against one scenario.

Examples:
  planwise goalseek plan.yaml --scenario steady --target savings-rate --net-worth 250000 --by-month 120
  planwise goalseek plan.yaml --scenario steady --target extra-payment --payoff-by 24
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		parser := config.NewInputParser()
		configData, err := parser.LoadFromFile(args[0])
		if err != nil {
			log.Fatal(err)
		}

		scenarioName, _ := cmd.Flags().GetString("scenario")
		if scenarioName == "" {
			log.Fatal("--scenario flag is required")
		}

		targetStr, _ := cmd.Flags().GetString("target")
		req := goalseek.Request{
			Config:       configData,
			ScenarioName: scenarioName,
			Constraints:  goalseek.DefaultConstraints(configData.Profile.MonthlyIncome),
		}

		switch targetStr {
		case "savings-rate":
			req.Target = goalseek.SolveSavingsRate
			netWorthStr, _ := cmd.Flags().GetString("net-worth")
			netWorth, err := decimal.NewFromString(netWorthStr)
			if err != nil {
				log.Fatalf("--net-worth must be a dollar amount: %v", err)
			}
			req.TargetNetWorth = netWorth
			req.TargetMonth, _ = cmd.Flags().GetInt("by-month")

		case "extra-payment":
			req.Target = goalseek.SolveExtraPayment
			req.PayoffByMonth, _ = cmd.Flags().GetInt("payoff-by")

		default:
			log.Fatalf("Unknown goal-seek target: %s (valid: savings-rate, extra-payment)", targetStr)
		}

		solver := goalseek.NewDefaultSolver(newEngine(cmd))
		result, err := solver.Solve(context.Background(), req)
		if err != nil {
			log.Fatalf("Goal seek failed: %v", err)
		}

		printGoalSeekResult(result)
	},
}

func printGoalSeekResult(result *goalseek.Result) {
	fmt.Println("GOAL SEEK RESULT")
	fmt.Println(strings.Repeat("=", 50))

	if !result.Success {
		fmt.Printf("Goal not reachable: %s\n", result.ConvergenceInfo)
		if result.OptimalSavingsRate != nil {
			fmt.Printf("Best net worth at max rate: %s\n", output.FormatCurrency(result.AchievedNetWorth))
		}
		return
	}

	if result.OptimalSavingsRate != nil {
		rate := result.OptimalSavingsRate.Mul(decimal.NewFromInt(100))
		fmt.Printf("Required savings rate: %s%%\n", rate.StringFixed(1))
		fmt.Printf("Projected net worth:   %s\n", output.FormatCurrency(result.AchievedNetWorth))
	}
	if result.OptimalExtraPayment != nil {
		fmt.Printf("Required extra payment: %s/month\n", output.FormatCurrency(*result.OptimalExtraPayment))
		if result.AchievedPayoffMonth != nil {
			fmt.Printf("All debts retired by:   month %d\n", *result.AchievedPayoffMonth)
		}
	}
	fmt.Printf("Converged in %d iterations (%s)\n", result.Iterations, result.ConvergenceInfo)
}

var initCmd = &cobra.Command{
	Use:   "init [output-file]",
	Short: "Create a starter configuration through an interactive wizard",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configData, err := runInitWizard()
		if err != nil {
			log.Fatal(err)
		}

		if err := output.SaveConfiguration(configData, args[0]); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Wrote %s. Run: planwise plan %s\n", args[0], args[0])
	},
}

// runInitWizard collects a minimal profile and one default scenario.
func runInitWizard() (*domain.Configuration, error) {
	var (
		incomeStr  = "5000"
		needsStr   = "50"
		wantsStr   = "30"
		savingsStr = "20"
		efTarget   = "15000"
		annualStr  = "60000"
		cashStr    = "2000"
		filing     = "single"
		liquidity  = "medium"
		focus      = "medium"
		onIDR      bool
	)

	validDollar := func(s string) error {
		v, err := decimal.NewFromString(s)
		if err != nil {
			return fmt.Errorf("enter a number")
		}
		if v.IsNegative() {
			return fmt.Errorf("must not be negative")
		}
		return nil
	}
	validPercent := func(s string) error {
		v, err := decimal.NewFromString(s)
		if err != nil {
			return fmt.Errorf("enter a number")
		}
		if v.IsNegative() || v.GreaterThan(decimal.NewFromInt(100)) {
			return fmt.Errorf("must be between 0 and 100")
		}
		return nil
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Monthly take-home income ($)").Value(&incomeStr).Validate(validDollar),
			huh.NewInput().Title("Current needs share (%)").Value(&needsStr).Validate(validPercent),
			huh.NewInput().Title("Current wants share (%)").Value(&wantsStr).Validate(validPercent),
			huh.NewInput().Title("Current savings share (%)").Value(&savingsStr).Validate(validPercent),
		),
		huh.NewGroup(
			huh.NewInput().Title("Emergency fund target ($)").Value(&efTarget).Validate(validDollar),
			huh.NewInput().Title("Cash on hand ($)").Value(&cashStr).Validate(validDollar),
			huh.NewInput().Title("Gross annual income ($)").Value(&annualStr).Validate(validDollar),
			huh.NewSelect[string]().Title("Tax filing status").
				Options(
					huh.NewOption("Single", "single"),
					huh.NewOption("Married filing jointly", "married"),
				).Value(&filing),
			huh.NewConfirm().Title("On an income-driven student loan repayment plan?").Value(&onIDR),
		),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Liquidity preference").
				Options(
					huh.NewOption("Low (lock it away)", "low"),
					huh.NewOption("Medium", "medium"),
					huh.NewOption("High (keep it accessible)", "high"),
				).Value(&liquidity),
			huh.NewSelect[string]().Title("Retirement focus").
				Options(
					huh.NewOption("Low (nearer-term goals)", "low"),
					huh.NewOption("Medium", "medium"),
					huh.NewOption("High (maximize retirement)", "high"),
				).Value(&focus),
		),
	)

	if err := form.Run(); err != nil {
		return nil, err
	}

	hundred := decimal.NewFromInt(100)
	income, _ := decimal.NewFromString(incomeStr)
	needs, _ := decimal.NewFromString(needsStr)
	wants, _ := decimal.NewFromString(wantsStr)
	savings, _ := decimal.NewFromString(savingsStr)
	target, _ := decimal.NewFromString(efTarget)
	cash, _ := decimal.NewFromString(cashStr)
	annual, _ := decimal.NewFromString(annualStr)

	filingStatus := domain.FilingSingle
	if filing == "married" {
		filingStatus = domain.FilingMarried
	}

	configData := &domain.Configuration{
		Profile: &domain.Profile{
			MonthlyIncome: income,
			Actual: domain.AllocationState{
				NeedsPct:   needs.Div(hundred),
				WantsPct:   wants.Div(hundred),
				SavingsPct: savings.Div(hundred),
			},
			EmergencyFund:   domain.EmergencyFund{Current: decimal.Zero, Target: target},
			Tax:             domain.TaxProfile{AnnualIncome: annual, Filing: filingStatus, OnIDRPlan: onIDR},
			Liquidity:       liquidity,
			RetirementFocus: focus,
			Balances:        domain.OpeningBalances{Cash: cash},
		},
		Scenarios: []domain.Scenario{
			{
				Name:   "baseline",
				Target: domain.DefaultAllocationState(),
			},
		},
	}

	// Fill assumptions and contribution limits the same way file loading does.
	parser := config.NewInputParser()
	parser.ApplyDefaults(configData)
	if err := parser.ValidateConfiguration(configData); err != nil {
		return nil, err
	}
	return configData, nil
}

var tuiCmd = &cobra.Command{
	Use:   "tui [input-file]",
	Short: "Launch the interactive planner",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		program := tea.NewProgram(tui.NewModel(args[0]), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			log.Fatalf("TUI error: %v", err)
		}
	},
}

func init() {
	planCmd.Flags().StringP("format", "f", "console", "Output format (console, json, csv)")
	planCmd.Flags().String("scenario", "", "Run a single named scenario instead of all")
	planCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")

	compareCmd.Flags().String("base", "", "Base scenario name to compare against (required)")
	compareCmd.Flags().String("with", "", "Comma-separated scenario names (default: all others)")
	compareCmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json)")
	compareCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")

	goalseekCmd.Flags().String("scenario", "", "Scenario to solve against (required)")
	goalseekCmd.Flags().String("target", "savings-rate", "What to solve for (savings-rate, extra-payment)")
	goalseekCmd.Flags().String("net-worth", "0", "Net worth goal for savings-rate solves")
	goalseekCmd.Flags().Int("by-month", 0, "Month the net worth goal must be met by")
	goalseekCmd.Flags().Int("payoff-by", 0, "Month all debts must be retired by")
	goalseekCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(goalseekCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
