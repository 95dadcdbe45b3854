package main

import (
	"fmt"
	"io"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"statcalc/internal/lesson"
	"statcalc/internal/present"
)

func newCheckCmd(state *cliState) *cobra.Command {
	var exerciseID string

	cmd := &cobra.Command{
		Use:   "check <answer> [correct]",
		Short: "Check an answer against a correct value or an exercise",
		Long: `Check a typed answer. An answer is accepted when it is within 5% of the
correct value, or within 0.1 when the correct value is small.

Examples:
  statcalc check 1.7 1.732
  statcalc check --exercise test-scores-mean 87.1`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var feedback lesson.Feedback
			switch {
			case exerciseID != "":
				if len(args) != 1 {
					return fmt.Errorf("--exercise takes exactly one answer")
				}
				catalog, err := state.catalog()
				if err != nil {
					return err
				}
				feedback, err = catalog.Check(exerciseID, args[0])
				if err != nil {
					return err
				}
			case len(args) == 2:
				correct, err := strconv.ParseFloat(args[1], 64)
				if err != nil {
					return fmt.Errorf("invalid correct value %q", args[1])
				}
				feedback = lesson.CheckAnswer(args[0], correct)
			default:
				return fmt.Errorf("either a correct value or --exercise is required")
			}

			out := cmd.OutOrStdout()
			if state.asJSON {
				return writeJSON(out, feedback)
			}
			fmt.Fprintln(out, feedback.Message)
			return nil
		},
	}

	cmd.Flags().StringVarP(&exerciseID, "exercise", "e", "", "Exercise to grade against")
	return cmd
}

func newExamplesCmd(state *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "examples [id]",
		Short: "Show the worked examples",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := state.catalog()
			if err != nil {
				return err
			}

			examples := catalog.Examples()
			if len(args) == 1 {
				example, err := catalog.Example(args[0])
				if err != nil {
					return err
				}
				examples = []lesson.Example{example}
			}

			out := cmd.OutOrStdout()
			if state.asJSON {
				return writeJSON(out, examples)
			}
			for i, example := range examples {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "%s (%s)\n", example.Title, example.ID)
				fmt.Fprintf(out, "Data: %s\n", present.List(example.Data))
				fmt.Fprint(out, present.Breakdown{Lines: example.Highlights}.String())
			}
			return nil
		},
	}
}

func newExercisesCmd(state *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "exercises",
		Short: "List the practice exercises",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := state.catalog()
			if err != nil {
				return err
			}

			exercises := catalog.Exercises()
			out := cmd.OutOrStdout()
			if state.asJSON {
				return writeJSON(out, exercises)
			}
			for _, exercise := range exercises {
				fmt.Fprintf(out, "%-18s %s\n", exercise.ID, exercise.Prompt)
			}
			return nil
		},
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(body))
	return err
}
