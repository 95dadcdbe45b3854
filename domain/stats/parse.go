package stats

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Delimiter selects how raw text is split into tokens
type Delimiter int

const (
	// CommaOnly always splits on commas
	CommaOnly Delimiter = iota
	// CommaThenNewline splits on commas, and falls back to newlines when the
	// text holds no comma at all (one value per line)
	CommaThenNewline
)

// ParseOptions controls tokenizing and the domain constraints applied to values
type ParseOptions struct {
	Delimiter       Delimiter
	RequirePositive bool
	MinimumCount    int    // 0 disables the check
	Strict          bool   // whole-token parse instead of leading numeric prefix
	Label           string // subject named in error messages, e.g. "Height"
	Purpose         string // what the minimum count is for, e.g. "quartile calculations"
}

// CalculatorOptions is the preset for the general statistics calculators
func CalculatorOptions() ParseOptions {
	return ParseOptions{Delimiter: CommaOnly}
}

// QuartileOptions is the preset for quartile calculations
func QuartileOptions() ParseOptions {
	return ParseOptions{Delimiter: CommaOnly, MinimumCount: 4, Purpose: "quartile calculations"}
}

// HeightOptions is the preset for height measurements feeding the chart
func HeightOptions() ParseOptions {
	return ParseOptions{
		Delimiter:       CommaThenNewline,
		RequirePositive: true,
		MinimumCount:    2,
		Label:           "Height",
		Purpose:         "meaningful statistics",
	}
}

// Parse turns raw user text into a validated Sequence
func Parse(raw string, opts ParseOptions) (Sequence, error) {
	if strings.TrimSpace(raw) == "" {
		return Sequence{}, emptyInputError(opts.Label)
	}
	return ParseTokens(Tokenize(raw, opts.Delimiter), opts)
}

// Tokenize splits raw text according to the delimiter rule.
// Tokens are trimmed; empty tokens are kept so callers see the raw layout.
func Tokenize(raw string, delimiter Delimiter) []string {
	tokens := strings.Split(raw, ",")
	if delimiter == CommaThenNewline && len(tokens) == 1 {
		tokens = strings.Split(raw, "\n")
	}
	for i, tok := range tokens {
		tokens[i] = strings.TrimSpace(tok)
	}
	return tokens
}

// ParseTokens validates pre-split tokens. Empty tokens are discarded before
// positions are assigned, so positions count surviving tokens only.
func ParseTokens(tokens []string, opts ParseOptions) (Sequence, error) {
	values := make([]float64, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		position := len(values) + 1

		v, ok := ParseNumber(tok, opts.Strict)
		if !ok {
			return Sequence{}, invalidNumberError(position, tok)
		}
		if opts.RequirePositive && v <= 0 {
			return Sequence{}, nonPositiveError(opts.Label, position, v)
		}
		values = append(values, v)
	}

	if len(values) == 0 {
		return Sequence{}, noDataError(opts.Label)
	}
	if opts.MinimumCount > 0 && len(values) < opts.MinimumCount {
		return Sequence{}, insufficientDataError(opts.Label, opts.Purpose, opts.MinimumCount, len(values))
	}

	return Sequence{values: values}, nil
}

// leadingNumber matches the longest decimal prefix a lenient reader accepts
var leadingNumber = regexp.MustCompile(`^[+-]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?`)

// ParseNumber reads one token. In lenient mode the longest leading numeric
// prefix is used ("12.5extra" is 12.5); in strict mode the whole token must
// be a decimal number. Non-finite results are rejected in both modes.
func ParseNumber(token string, strict bool) (float64, bool) {
	token = strings.TrimSpace(token)
	number := leadingNumber.FindString(token)
	if number == "" || (strict && number != token) {
		return 0, false
	}

	v, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
