package toolbox

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Executor invokes tools and normalizes their outcome into observation
// strings. Execute never returns an error and never lets a panic escape: the
// loop must always receive a string it can append to the transcript.
//
// Failure observations carry the "Error: " prefix so the model can tell a
// failed invocation apart from a successful result that merely mentions the
// word "error".
type Executor struct {
	// Log receives one debug entry per invocation. Nil disables logging.
	Log *zap.Logger
}

// NewExecutor creates an Executor that logs through the given logger.
// A nil logger is replaced with a no-op one.
func NewExecutor(log *zap.Logger) *Executor {
	if log == nil {
		log = zap.NewNop()
	}

	return &Executor{Log: log}
}

// Execute runs the tool with the given raw input and returns an observation
// string. Handler errors, timeouts, and panics all become "Error: ..."
// observations. A successful result is passed through verbatim: tools like
// FileReader return content whose whitespace is meaningful.
func (e *Executor) Execute(ctx context.Context, t Tool, rawInput string) (obs string) {
	defer func() {
		if r := recover(); r != nil {
			obs = fmt.Sprintf("Error: tool %q panicked: %v", t.Name, r)
			e.log(t.Name, rawInput, obs)
		}
	}()

	if t.Handler == nil {
		obs = fmt.Sprintf("Error: tool %q has no handler", t.Name)
		e.log(t.Name, rawInput, obs)

		return obs
	}

	if t.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.Timeout)
		defer cancel()
	}

	result, err := t.Handler(ctx, strings.TrimSpace(rawInput))

	switch {
	case err != nil && errors.Is(err, context.DeadlineExceeded):
		obs = fmt.Sprintf("Error: tool %q timed out after %s", t.Name, t.Timeout)
	case err != nil:
		obs = "Error: " + err.Error()
	default:
		obs = result
		if strings.TrimSpace(result) == "" {
			obs = fmt.Sprintf("Tool %q returned no output", t.Name)
		}
	}

	e.log(t.Name, rawInput, obs)

	return obs
}

func (e *Executor) log(tool, input, obs string) {
	if e.Log == nil {
		return
	}

	e.Log.Debug("tool executed",
		zap.String("tool", tool),
		zap.String("input", input),
		zap.Int("observation_len", len(obs)),
		zap.Bool("is_error", strings.HasPrefix(obs, "Error: ")),
	)
}
