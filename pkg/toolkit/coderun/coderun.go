// Package coderun provides the CodeRunner tool. Snippets run in an embedded
// Starlark interpreter with a step budget and no filesystem or network
// access, so arbitrary model-written code cannot touch the host.
package coderun

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	starlarkmath "go.starlark.net/lib/math"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"reagent/pkg/tools/toolbox"
)

const runTimeout = 5 * time.Second

// maxSteps caps interpreter work so a tight loop cannot spin forever even
// before the deadline fires.
const maxSteps = 500_000

// fileOptions enables the dialect conveniences snippets tend to use.
var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
	Recursion:       true,
}

// Runner executes Starlark snippets.
type Runner struct{}

// New creates a Runner.
func New() *Runner {
	return &Runner{}
}

// Tool returns the CodeRunner tool.
func (r *Runner) Tool() toolbox.Tool {
	return toolbox.Tool{
		Name: "CodeRunner",
		Description: "Executes a Starlark (Python-like) code snippet and returns what it " +
			"prints. Input should be the code itself; use print() for output.",
		Timeout: runTimeout,
		Handler: r.handle,
	}
}

func (r *Runner) handle(ctx context.Context, code string) (string, error) {
	if code == "" {
		return "", fmt.Errorf("coderun: code is required")
	}

	out, err := r.Run(ctx, code)
	if err != nil {
		return "", err
	}

	if out == "" {
		return "Code executed with no output", nil
	}

	return out, nil
}

// Run executes code and returns its print output.
func (r *Runner) Run(ctx context.Context, code string) (string, error) {
	var output strings.Builder

	thread := &starlark.Thread{
		Name: "coderun",
		Print: func(_ *starlark.Thread, msg string) {
			output.WriteString(msg)
			output.WriteByte('\n')
		},
	}
	thread.SetMaxExecutionSteps(maxSteps)

	// Starlark threads are not context-aware; cancel them explicitly.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			thread.Cancel(ctx.Err().Error())
		case <-done:
		}
	}()

	predeclared := starlark.StringDict{
		"math": starlarkmath.Module,
	}

	_, err := starlark.ExecFileOptions(fileOptions, thread, "snippet.star", code, predeclared)
	if err != nil {
		var evalErr *starlark.EvalError
		if errors.As(err, &evalErr) {
			return "", fmt.Errorf("coderun: %s", evalErr.Msg)
		}

		return "", fmt.Errorf("coderun: %w", err)
	}

	return strings.TrimRight(output.String(), "\n"), nil
}
