package engine

import (
	"strings"

	"statcalc/domain/core"
	"statcalc/domain/stats"
)

// Operation names one statistic the engine can compute
type Operation string

const (
	OpMean      Operation = "mean"
	OpMedian    Operation = "median"
	OpMode      Operation = "mode"
	OpStdDev    Operation = "stddev"
	OpQuantiles Operation = "quantiles"
	OpBundle    Operation = "bundle"
)

// Result carries exactly one populated field, selected by Operation
type Result struct {
	Operation Operation             `json:"operation"`
	Count     int                   `json:"count"`
	Mean      *stats.MeanResult     `json:"mean,omitempty"`
	Median    *stats.MedianResult   `json:"median,omitempty"`
	Mode      *stats.ModeResult     `json:"mode,omitempty"`
	StdDev    *stats.StdDevResult   `json:"std_dev,omitempty"`
	Quantiles *stats.QuantileResult `json:"quantiles,omitempty"`
	Bundle    *stats.Bundle         `json:"bundle,omitempty"`
}

// operationSpec binds an operation to its input preset and computation
type operationSpec struct {
	title   string
	options func() stats.ParseOptions
	compute func(stats.Sequence) Result
}

// operations is the static dispatch table; order of Operations() follows it
var operations = map[Operation]operationSpec{
	OpMean: {
		title:   "Mean",
		options: stats.CalculatorOptions,
		compute: func(seq stats.Sequence) Result {
			r := Mean(seq)
			return Result{Mean: &r}
		},
	},
	OpMedian: {
		title:   "Median",
		options: stats.CalculatorOptions,
		compute: func(seq stats.Sequence) Result {
			r := Median(seq)
			return Result{Median: &r}
		},
	},
	OpMode: {
		title:   "Mode",
		options: stats.CalculatorOptions,
		compute: func(seq stats.Sequence) Result {
			r := Mode(seq)
			return Result{Mode: &r}
		},
	},
	OpStdDev: {
		title:   "Standard Deviation",
		options: stats.CalculatorOptions,
		compute: func(seq stats.Sequence) Result {
			r := StdDev(seq)
			return Result{StdDev: &r}
		},
	},
	OpQuantiles: {
		title:   "Quartiles",
		options: stats.QuartileOptions,
		compute: func(seq stats.Sequence) Result {
			r := Quantiles(seq)
			return Result{Quantiles: &r}
		},
	},
	OpBundle: {
		title:   "Summary Statistics",
		options: stats.HeightOptions,
		compute: func(seq stats.Sequence) Result {
			r := ComputeBundle(seq)
			return Result{Bundle: &r}
		},
	},
}

var operationOrder = []Operation{OpMean, OpMedian, OpMode, OpStdDev, OpQuantiles, OpBundle}

// Operations lists every supported operation in display order
func Operations() []Operation {
	return append([]Operation(nil), operationOrder...)
}

// ParseOperation resolves a user-supplied operation name
func ParseOperation(name string) (Operation, error) {
	op := Operation(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := operations[op]; !ok {
		return "", core.NewUnknownOperationError(name)
	}
	return op, nil
}

// Title is the human-readable name of the operation
func (op Operation) Title() string {
	return operations[op].title
}

// Options returns the parse preset the operation validates its input with
func (op Operation) Options() stats.ParseOptions {
	spec, ok := operations[op]
	if !ok {
		return stats.CalculatorOptions()
	}
	return spec.options()
}

// Engine runs operations end to end: parse, validate, compute.
// It holds configuration only; every call is independent.
type Engine struct {
	strict   bool
	minimums map[Operation]int
}

// Option configures an Engine
type Option func(*Engine)

// WithStrictParsing makes every parse whole-token strict
func WithStrictParsing(strict bool) Option {
	return func(e *Engine) {
		e.strict = strict
	}
}

// WithMinimumCount overrides the minimum number of values an operation accepts.
// n <= 0 keeps the preset.
func WithMinimumCount(op Operation, n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.minimums[op] = n
		}
	}
}

// NewEngine creates a new statistics engine
func NewEngine(opts ...Option) *Engine {
	e := &Engine{minimums: make(map[Operation]int)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// OptionsFor returns the effective parse options for an operation
func (e *Engine) OptionsFor(op Operation) stats.ParseOptions {
	opts := op.Options()
	if e.strict {
		opts.Strict = true
	}
	if n, ok := e.minimums[op]; ok {
		opts.MinimumCount = n
	}
	return opts
}

// Run parses raw text with the operation's preset and computes the statistic
func (e *Engine) Run(op Operation, raw string) (Result, error) {
	if _, ok := operations[op]; !ok {
		return Result{}, core.NewUnknownOperationError(string(op))
	}
	return e.RunWithOptions(op, raw, e.OptionsFor(op))
}

// RunWithOptions is Run with caller-supplied parse options
func (e *Engine) RunWithOptions(op Operation, raw string, opts stats.ParseOptions) (Result, error) {
	spec, ok := operations[op]
	if !ok {
		return Result{}, core.NewUnknownOperationError(string(op))
	}
	seq, err := stats.Parse(raw, opts)
	if err != nil {
		return Result{}, err
	}
	return compute(op, spec, seq), nil
}

// RunTokens computes from pre-split tokens, as produced by file and JSON sources
func (e *Engine) RunTokens(op Operation, tokens []string, opts stats.ParseOptions) (Result, error) {
	spec, ok := operations[op]
	if !ok {
		return Result{}, core.NewUnknownOperationError(string(op))
	}
	seq, err := stats.ParseTokens(tokens, opts)
	if err != nil {
		return Result{}, err
	}
	return compute(op, spec, seq), nil
}

// Compute runs an operation over an already validated sequence
func (e *Engine) Compute(op Operation, seq stats.Sequence) (Result, error) {
	spec, ok := operations[op]
	if !ok {
		return Result{}, core.NewUnknownOperationError(string(op))
	}
	return compute(op, spec, seq), nil
}

func compute(op Operation, spec operationSpec, seq stats.Sequence) Result {
	result := spec.compute(seq)
	result.Operation = op
	result.Count = seq.Len()
	return result
}
