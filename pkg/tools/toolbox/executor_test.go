package toolbox

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExecuteSuccess(t *testing.T) {
	e := NewExecutor(nil)
	tool := Tool{
		Name: "upper",
		Handler: func(_ context.Context, input string) (string, error) {
			return strings.ToUpper(input), nil
		},
	}

	obs := e.Execute(context.Background(), tool, "hello")

	assert.Equal(t, "HELLO", obs)
}

func TestExecuteTrimsInput(t *testing.T) {
	e := NewExecutor(nil)
	tool := Tool{
		Name: "echo",
		Handler: func(_ context.Context, input string) (string, error) {
			return input, nil
		},
	}

	obs := e.Execute(context.Background(), tool, "  padded  ")

	assert.Equal(t, "padded", obs)
}

func TestExecutePreservesOutputWhitespace(t *testing.T) {
	// File contents pass through verbatim; indentation and trailing
	// newlines are part of the result.
	e := NewExecutor(nil)
	tool := Tool{
		Name: "reader",
		Handler: func(_ context.Context, _ string) (string, error) {
			return "  indented line\n\ttabbed line\n", nil
		},
	}

	obs := e.Execute(context.Background(), tool, "file.txt")

	assert.Equal(t, "  indented line\n\ttabbed line\n", obs)
}

func TestExecuteWhitespaceOnlyOutputIsNoOutput(t *testing.T) {
	e := NewExecutor(nil)
	tool := Tool{
		Name: "blank",
		Handler: func(_ context.Context, _ string) (string, error) {
			return "   \n  ", nil
		},
	}

	obs := e.Execute(context.Background(), tool, "x")

	assert.Equal(t, `Tool "blank" returned no output`, obs)
}

func TestExecuteHandlerError(t *testing.T) {
	e := NewExecutor(nil)
	tool := Tool{
		Name: "boom",
		Handler: func(_ context.Context, _ string) (string, error) {
			return "", errors.New("network unreachable")
		},
	}

	obs := e.Execute(context.Background(), tool, "x")

	assert.Equal(t, "Error: network unreachable", obs)
}

func TestExecuteNeverPanics(t *testing.T) {
	e := NewExecutor(nil)
	tool := Tool{
		Name: "panicky",
		Handler: func(_ context.Context, _ string) (string, error) {
			panic("nil map write")
		},
	}

	obs := e.Execute(context.Background(), tool, "x")

	assert.Contains(t, obs, "Error:")
	assert.Contains(t, obs, "panicked")
}

func TestExecuteNilHandler(t *testing.T) {
	e := NewExecutor(nil)

	obs := e.Execute(context.Background(), Tool{Name: "empty"}, "x")

	assert.Contains(t, obs, "Error:")
	assert.Contains(t, obs, "no handler")
}

func TestExecuteTimeout(t *testing.T) {
	e := NewExecutor(nil)
	tool := Tool{
		Name:    "slow",
		Timeout: 20 * time.Millisecond,
		Handler: func(ctx context.Context, _ string) (string, error) {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(5 * time.Second):
				return "too late", nil
			}
		},
	}

	start := time.Now()
	obs := e.Execute(context.Background(), tool, "x")

	assert.Less(t, time.Since(start), time.Second)
	assert.Contains(t, obs, "Error:")
	assert.Contains(t, obs, "timed out")
}

func TestExecuteEmptyResult(t *testing.T) {
	e := NewExecutor(nil)
	tool := Tool{
		Name: "quiet",
		Handler: func(_ context.Context, _ string) (string, error) {
			return "   ", nil
		},
	}

	obs := e.Execute(context.Background(), tool, "x")

	assert.Contains(t, obs, "no output")
}

func TestExecuteErrorPrefixDistinguishable(t *testing.T) {
	e := NewExecutor(nil)

	// A successful result containing the word "error" must not carry the
	// failure prefix.
	tool := Tool{
		Name: "report",
		Handler: func(_ context.Context, _ string) (string, error) {
			return "the page mentions an error rate of 2%", nil
		},
	}

	obs := e.Execute(context.Background(), tool, "x")

	assert.False(t, strings.HasPrefix(obs, "Error: "))
}
