// Package calc provides the Calculator tool: a dedicated arithmetic
// expression evaluator over a closed whitelist of functions and constants.
// Replacing general-purpose evaluation with a mini-parser removes the
// sandboxing problem outright.
package calc

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"reagent/pkg/tools/toolbox"
)

// Tool returns the Calculator tool.
func Tool() toolbox.Tool {
	return toolbox.Tool{
		Name: "Calculator",
		Description: "Useful for mathematical calculations. Input should be an " +
			"arithmetic expression, e.g. \"2 + 2\" or \"sqrt(16)\".",
		Handler: handle,
	}
}

func handle(_ context.Context, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("calc: empty expression")
	}

	v, err := Eval(input)
	if err != nil {
		return "", fmt.Errorf("calc: %w", err)
	}

	return "Result: " + Format(v), nil
}

// Format renders a result the way a person would write it: integral values
// without a decimal point, everything else in shortest round-trip form.
func Format(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}

	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	return strconv.FormatFloat(v, 'g', -1, 64)
}
