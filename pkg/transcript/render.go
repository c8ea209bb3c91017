package transcript

import (
	"fmt"
	"strings"

	"reagent/pkg/memory"
	"reagent/pkg/tools/toolbox"
)

// The fixed instructional frame around the catalog, history, and scratchpad.
// The format section names the valid tools inline so the model is constrained
// to the registered set.
const (
	preamble = "Answer the following questions as best you can. " +
		"You have access to the following tools:"

	formatHeader = "Use the following format:"

	formatBody = `Question: the input question you must answer
Thought: you should always think about what to do
Action: the action to take, should be one of [%s]
Action Input: the input to the action
Observation: the result of the action
... (this Thought/Action/Action Input/Observation can repeat N times)
Thought: I now know the final answer
Final Answer: the final answer to the original input question`

	historyHeader = "Previous conversation history:"
)

// RenderPrompt produces the full prompt for one model call: the preamble, the
// tool catalog, the format instructions, any prior conversation history, the
// query, and the serialized scratchpad ending in a "Thought:" cue.
//
// The output is byte-identical for identical inputs; nothing here consults a
// clock, a map iteration order, or any other ambient state.
func RenderPrompt(catalog []toolbox.Tool, history []memory.Exchange, query string, tr *Transcript) string {
	var b strings.Builder

	b.WriteString(preamble)
	b.WriteString("\n\n")

	for _, t := range catalog {
		b.WriteString(t.Name)
		b.WriteString(": ")
		b.WriteString(t.Description)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(formatHeader)
	b.WriteString("\n\n")

	names := make([]string, len(catalog))
	for i, t := range catalog {
		names[i] = t.Name
	}

	b.WriteString(fmt.Sprintf(formatBody, strings.Join(names, ", ")))
	b.WriteString("\n\nBegin!\n\n")

	if len(history) > 0 {
		b.WriteString(historyHeader)
		b.WriteString("\n")

		for _, ex := range history {
			b.WriteString("Human: ")
			b.WriteString(ex.Query)
			b.WriteString("\nAssistant: ")
			b.WriteString(ex.Answer)
			b.WriteString("\n")
		}

		b.WriteString("\n")
	}

	b.WriteString("Question: ")
	b.WriteString(query)
	b.WriteString("\n")

	if tr != nil {
		writeEntries(&b, tr)
	}

	b.WriteString("Thought:")

	return b.String()
}

// writeEntries serializes the scratchpad so far, one line per entry field, in
// the same surface syntax the model is instructed to produce.
func writeEntries(b *strings.Builder, tr *Transcript) {
	tr.Each(func(_ int, e Entry) bool {
		switch v := e.(type) {
		case Thought:
			b.WriteString("Thought: ")
			b.WriteString(v.Text)
			b.WriteString("\n")
		case Action:
			b.WriteString("Action: ")
			b.WriteString(v.Tool)
			b.WriteString("\nAction Input: ")
			b.WriteString(v.Input)
			b.WriteString("\n")
		case Observation:
			b.WriteString("Observation: ")
			b.WriteString(v.Text)
			b.WriteString("\n")
		case FinalAnswer:
			b.WriteString("Final Answer: ")
			b.WriteString(v.Text)
			b.WriteString("\n")
		}

		return true
	})
}
