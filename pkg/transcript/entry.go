// Package transcript models the ReAct scratchpad: the ordered log of
// Thought/Action/Observation entries accumulated during one agent run, and
// its rendering into the prompt consumed by the model.
package transcript

// Entry is one step in the scratchpad.
// The concrete types form a closed tagged variant; the loop appends them in
// the order events happen and never mutates earlier entries.
type Entry interface {
	EntryKind() string
}

// Thought is free-text reasoning produced by the model before an action or a
// final answer.
type Thought struct {
	Text string
}

func (t Thought) EntryKind() string { return "thought" }

// Action records the model's intent to invoke a tool with a raw input string.
type Action struct {
	Tool  string
	Input string
}

func (a Action) EntryKind() string { return "action" }

// Observation is the textual result of a tool invocation, success or failure.
type Observation struct {
	Text string
}

func (o Observation) EntryKind() string { return "observation" }

// FinalAnswer terminates a run with the model's answer to the original query.
type FinalAnswer struct {
	Text string
}

func (f FinalAnswer) EntryKind() string { return "final_answer" }
