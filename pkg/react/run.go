package react

import (
	"reagent/pkg/transcript"
)

// Status describes where a run ended up.
type Status string

const (
	// StatusRunning means the loop is still iterating.
	StatusRunning Status = "running"
	// StatusSucceeded means the model emitted a final answer.
	StatusSucceeded Status = "succeeded"
	// StatusFailed means the run stopped on a model-backend error or
	// cancellation. Tool failures never produce this status; they become
	// observations inside the loop.
	StatusFailed Status = "failed"
	// StatusStepLimit means the step cap was reached without a final answer.
	// The partial transcript is still a best-effort result.
	StatusStepLimit Status = "step_limit"
)

// Run holds the full state of one agent run. A Run is self-contained: it
// shares no mutable state with other runs, so multiple runs could execute
// concurrently without redesign.
type Run struct {
	Query      string
	Transcript *transcript.Transcript
	StepCount  int
	Status     Status
	Answer     string
	FailReason string
}

// NewRun creates a Run in the running state for the given query.
func NewRun(query string) *Run {
	return &Run{
		Query:      query,
		Transcript: transcript.New(),
		Status:     StatusRunning,
	}
}

// BestEffort returns the most useful text the run produced: the final answer
// when there is one, otherwise the last observation or thought from the
// partial transcript. Step-limited runs surface this instead of an empty
// failure.
func (r *Run) BestEffort() string {
	if r.Answer != "" {
		return r.Answer
	}

	entries := r.Transcript.Entries()
	for i := len(entries) - 1; i >= 0; i-- {
		switch v := entries[i].(type) {
		case transcript.FinalAnswer:
			return v.Text
		case transcript.Observation:
			return v.Text
		case transcript.Thought:
			return v.Text
		}
	}

	return ""
}
