package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"statcalc/adapters/stats/engine"
	"statcalc/internal/config"
	"statcalc/internal/lesson"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// cliState is shared by every subcommand
type cliState struct {
	strict    bool
	strictSet bool
	asJSON    bool
}

// engine is configured from the same environment as the servers; --strict
// overrides STRICT_PARSE when given
func (s *cliState) engine() (*engine.Engine, error) {
	cfg, err := config.LoadEngine()
	if err != nil {
		return nil, err
	}
	strict := cfg.StrictParse
	if s.strictSet {
		strict = s.strict
	}
	return engine.NewEngine(
		engine.WithStrictParsing(strict),
		engine.WithMinimumCount(engine.OpQuantiles, cfg.QuartileMinCount),
		engine.WithMinimumCount(engine.OpBundle, cfg.HeightMinCount),
	), nil
}

func (s *cliState) catalog() (*lesson.Catalog, error) {
	eng, err := s.engine()
	if err != nil {
		return nil, err
	}
	return lesson.NewCatalog(eng)
}

func newRootCmd() *cobra.Command {
	state := &cliState{}

	rootCmd := &cobra.Command{
		Use:   "statcalc",
		Short: "Descriptive statistics calculator",
		Long: `Compute mean, median, mode, standard deviation, quartiles and summary
statistics from comma-separated numbers.

Values come from the arguments, a spreadsheet column (--file), a JSON array
(--json-file) or standard input.

Example: statcalc mean 10, 20, 30, 40, 50`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			state.strictSet = cmd.Flags().Changed("strict")
		},
	}

	rootCmd.PersistentFlags().BoolVar(&state.strict, "strict", false, "Reject tokens with trailing garbage such as \"12abc\" (default from STRICT_PARSE)")
	rootCmd.PersistentFlags().BoolVar(&state.asJSON, "json", false, "Print results as JSON")

	for _, op := range engine.Operations() {
		rootCmd.AddCommand(newOperationCmd(state, op))
	}
	rootCmd.AddCommand(
		newCheckCmd(state),
		newExamplesCmd(state),
		newExercisesCmd(state),
	)

	return rootCmd
}
