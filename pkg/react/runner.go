package react

import (
	"context"
	"fmt"
	"strings"

	"reagent/pkg/memory"
	"reagent/pkg/modeladapter"
	"reagent/pkg/modeladapter/usage"
	"reagent/pkg/tools/toolbox"
	"reagent/pkg/transcript"

	"go.uber.org/zap"
)

// DefaultMaxSteps bounds a run when Options leave MaxSteps at zero.
const DefaultMaxSteps = 5

// malformedObservation is fed back when the model's output had no
// recognizable Action or Final Answer marker. Corrective observations share
// the regular step budget; there is no separate retry counter.
const malformedObservation = "Your response did not include a valid Action. " +
	"Respond with an 'Action:' line naming one of the available tools and an " +
	"'Action Input:' line, or give a 'Final Answer:' line."

// Hooks receives presentation callbacks during a run. All fields are optional.
// Streaming display is layered here; the loop itself only consumes the final
// concatenated model output.
type Hooks struct {
	// OnToken is invoked for each token as the model streams it.
	OnToken func(token string)
	// OnStep is invoked after each loop iteration with the step count so far.
	OnStep func(step int)
	// OnAction is invoked when the model requests a tool invocation.
	OnAction func(tool, input string)
	// OnObservation is invoked with each observation appended to the transcript.
	OnObservation func(obs string)
}

// Runner drives the ReAct state machine: render prompt, complete, parse,
// dispatch, repeat. A Runner is stateless across runs; all per-run state
// lives in the Run it returns.
type Runner struct {
	Model    modeladapter.Completer
	Tools    *toolbox.ToolBox
	Exec     *toolbox.Executor
	MaxSteps int
	Hooks    Hooks
	Log      *zap.Logger
}

// NewRunner creates a Runner with the default step cap and a fresh executor.
func NewRunner(model modeladapter.Completer, tools *toolbox.ToolBox, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}

	return &Runner{
		Model:    model,
		Tools:    tools,
		Exec:     toolbox.NewExecutor(log),
		MaxSteps: DefaultMaxSteps,
		Log:      log,
	}
}

// Run executes the loop for one query. The returned Run always carries the
// transcript accumulated so far, whatever the outcome.
//
// An error is returned only for model-backend failures and cancellation;
// tool failures, unknown tools, and malformed outputs are recovered inside
// the loop as observations. A step-limited run returns a nil error with
// Status set to StatusStepLimit.
func (r *Runner) Run(ctx context.Context, query string, history []memory.Exchange) (*Run, error) {
	run := NewRun(query)

	maxSteps := r.MaxSteps
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}

	exec := r.Exec
	if exec == nil {
		exec = toolbox.NewExecutor(r.Log)
	}

	catalog := r.Tools.List()

	for run.StepCount < maxSteps {
		// Cancellation is honored at the step boundary: the in-progress step
		// is discarded, the transcript accumulated so far stays intact.
		if err := ctx.Err(); err != nil {
			run.Status = StatusFailed
			run.FailReason = err.Error()

			return run, fmt.Errorf("react: run canceled: %w", err)
		}

		prompt := transcript.RenderPrompt(catalog, history, query, run.Transcript)

		output, err := r.Model.Complete(ctx, prompt, r.Hooks.OnToken)
		if err != nil {
			run.Status = StatusFailed
			run.FailReason = err.Error()

			return run, fmt.Errorf("react: model completion: %w", err)
		}

		run.StepCount++
		r.logStep(run.StepCount, output)

		if r.Hooks.OnStep != nil {
			r.Hooks.OnStep(run.StepCount)
		}

		switch v := Parse(output).(type) {
		case Final:
			if th := thoughtText(output); th != "" {
				run.Transcript.Append(transcript.Thought{Text: th})
			}

			run.Transcript.Append(transcript.FinalAnswer{Text: v.Answer})
			run.Status = StatusSucceeded
			run.Answer = v.Answer

			return run, nil

		case Act:
			if th := thoughtText(output); th != "" {
				run.Transcript.Append(transcript.Thought{Text: th})
			}

			run.Transcript.Append(transcript.Action{Tool: v.Tool, Input: v.Input})

			if r.Hooks.OnAction != nil {
				r.Hooks.OnAction(v.Tool, v.Input)
			}

			r.observe(run, r.dispatch(ctx, exec, v))

		case Malformed:
			if th := strings.TrimSpace(v.Raw); th != "" {
				run.Transcript.Append(transcript.Thought{Text: th})
			}

			r.observe(run, malformedObservation)
		}
	}

	run.Status = StatusStepLimit
	run.Answer = run.BestEffort()

	return run, nil
}

// dispatch resolves the tool name and executes it. An unknown name becomes an
// observation naming the valid tool set so the model can correct itself.
func (r *Runner) dispatch(ctx context.Context, exec *toolbox.Executor, act Act) string {
	tool, err := r.Tools.Lookup(act.Tool)
	if err != nil {
		return fmt.Sprintf("Error: unknown tool %q. Valid tools: [%s].", act.Tool, r.Tools.NameSet())
	}

	return exec.Execute(ctx, tool, act.Input)
}

func (r *Runner) observe(run *Run, obs string) {
	run.Transcript.Append(transcript.Observation{Text: obs})

	if r.Hooks.OnObservation != nil {
		r.Hooks.OnObservation(obs)
	}
}

// usageReporter is implemented by model backends that track token usage.
type usageReporter interface {
	UsageTracker() *usage.Tracker
}

func (r *Runner) logStep(step int, output string) {
	if r.Log == nil {
		return
	}

	fields := []zap.Field{
		zap.Int("step", step),
		zap.Int("output_len", len(output)),
	}

	if ur, ok := r.Model.(usageReporter); ok {
		if last, found := ur.UsageTracker().Last(); found {
			total := ur.UsageTracker().Total()
			fields = append(fields,
				zap.Int("input_tokens", last.InputTokens),
				zap.Int("output_tokens", last.OutputTokens),
				zap.Int("run_total_tokens", total.Total()),
			)
		}
	}

	r.Log.Debug("loop step", fields...)
}
