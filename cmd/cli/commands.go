package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"statcalc/adapters/api"
	"statcalc/adapters/excel"
	"statcalc/adapters/stats/engine"
	"statcalc/domain/stats"
	"statcalc/internal/present"
	"statcalc/ports"
)

// inputFlags selects where values come from and overrides the parse preset
type inputFlags struct {
	file     string
	column   string
	jsonFile string
	path     string
	newline  bool
	positive bool
	minimum  int
	unit     string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.file, "file", "", "Read values from an .xlsx or .csv file")
	cmd.Flags().StringVar(&f.column, "column", "", "Column header in --file (default: first column)")
	cmd.Flags().StringVar(&f.jsonFile, "json-file", "", "Read values from a JSON file or http(s) URL")
	cmd.Flags().StringVar(&f.path, "path", "", "gjson path to the array inside --json-file")
	cmd.Flags().BoolVar(&f.newline, "newline", false, "Fall back to one value per line when there is no comma")
	cmd.Flags().BoolVar(&f.positive, "positive", false, "Require every value to be greater than zero")
	cmd.Flags().IntVar(&f.minimum, "min", 0, "Minimum number of values")
	cmd.MarkFlagsMutuallyExclusive("file", "json-file")
}

// source returns the configured external source, or nil for text input
func (f *inputFlags) source() ports.SourcePort {
	switch {
	case f.file != "":
		return excel.NewDataReader(excel.Config{FilePath: f.file, Column: f.column})
	case f.jsonFile != "":
		return api.NewJSONReader(api.DefaultJSONSource(f.jsonFile, f.path))
	}
	return nil
}

// options applies the flags on top of the operation's preset
func (f *inputFlags) options(cmd *cobra.Command, base stats.ParseOptions) stats.ParseOptions {
	opts := base
	if f.newline {
		opts.Delimiter = stats.CommaThenNewline
	}
	if f.positive {
		opts.RequirePositive = true
	}
	if cmd.Flags().Changed("min") {
		opts.MinimumCount = f.minimum
	}
	return opts
}

func newOperationCmd(state *cliState, op engine.Operation) *cobra.Command {
	flags := &inputFlags{}

	cmd := &cobra.Command{
		Use:   string(op) + " [values...]",
		Short: "Compute " + strings.ToLower(op.Title()),
		Long: fmt.Sprintf(`Compute %s.

Arguments are joined with commas, so "1 2 3" and "1, 2, 3" are the same input.
With no arguments and no file, values are read from standard input, one per
line or comma-separated.

Example: statcalc %s 12, 15, 18, 22, 25`, strings.ToLower(op.Title()), op),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := runOperation(cmd, state, flags, op, args)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), state.asJSON, result, flags.unit)
		},
	}

	flags.register(cmd)
	if op == engine.OpBundle {
		cmd.Flags().StringVar(&flags.unit, "unit", "cm", "Unit appended to measurements")
	}
	return cmd
}

func runOperation(cmd *cobra.Command, state *cliState, flags *inputFlags, op engine.Operation, args []string) (engine.Result, error) {
	eng, err := state.engine()
	if err != nil {
		return engine.Result{}, err
	}
	opts := flags.options(cmd, eng.OptionsFor(op))

	if src := flags.source(); src != nil {
		if len(args) > 0 {
			return engine.Result{}, fmt.Errorf("values cannot be combined with --file or --json-file")
		}
		tokens, err := src.Tokens(contextOf(cmd))
		if err != nil {
			return engine.Result{}, err
		}
		return eng.RunTokens(op, tokens, opts)
	}

	raw := strings.Join(args, ",")
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return engine.Result{}, fmt.Errorf("failed to read standard input: %w", err)
		}
		raw = string(data)
		opts.Delimiter = stats.CommaThenNewline
	}
	return eng.RunWithOptions(op, raw, opts)
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func printResult(w io.Writer, asJSON bool, result engine.Result, unit string) error {
	breakdown := present.Result(result)
	if result.Bundle != nil {
		breakdown = present.Bundle(*result.Bundle, unit)
	}

	if asJSON {
		return writeJSON(w, map[string]interface{}{
			"result":    result,
			"breakdown": breakdown,
		})
	}

	fmt.Fprintf(w, "%s\n%s\n", breakdown.Title, strings.Repeat("-", len(breakdown.Title)))
	fmt.Fprint(w, breakdown.String())
	return nil
}
