// Package react implements the ReAct (Reason + Act) loop: it renders the
// scratchpad into a prompt, extracts an intended action from the model's
// free-text output, dispatches it through the tool registry, and feeds the
// observation back until a final answer or the step cap.
package react

import (
	"regexp"
	"strings"
)

// ParsedAction is the result of parsing one model output.
// The concrete types form a closed tagged variant: Act, Final, and Malformed.
type ParsedAction interface {
	ActionKind() string
}

// Act is a request to invoke a tool with a raw input string.
type Act struct {
	Tool  string
	Input string
}

func (Act) ActionKind() string { return "act" }

// Final carries the model's final answer to the query.
type Final struct {
	Answer string
}

func (Final) ActionKind() string { return "final" }

// Malformed is emitted when no recognizable marker was found. The loop
// recovers by feeding a corrective observation back to the model.
type Malformed struct {
	Raw string
}

func (Malformed) ActionKind() string { return "malformed" }

var (
	// The action grammar tolerates the variations models actually produce:
	// optional numbering ("Action 2:"), flexible spacing, and inputs that run
	// to the end of the output.
	actionRe = regexp.MustCompile(`(?s)Action\s*\d*\s*:[ \t]*(.*?)\s*Action\s*\d*\s*Input\s*\d*\s*:[ \t]*(.*)`)
	finalRe  = regexp.MustCompile(`Final\s+Answer\s*:`)

	// Markers that terminate an action input when the model keeps generating
	// past its own action (hallucinated observations, premature answers).
	inputStopRe = regexp.MustCompile(`\n\s*(?:Observation|Final\s+Answer|Thought|Question)\s*:`)
)

// Parse extracts a single intended action from free-text model output.
//
// A "Final Answer:" marker wins unless a well-formed "Action:"/"Action Input:"
// pair precedes it. A tool name that matches no registered tool is still
// returned as Act; resolving names against the registry is the loop's job, so
// an unknown name stays a recoverable condition rather than a parse failure.
// Output with neither marker parses as Malformed.
func Parse(output string) ParsedAction {
	actionLoc := actionRe.FindStringSubmatchIndex(output)
	finalLoc := finalRe.FindStringIndex(output)

	actionPrecedes := actionLoc != nil && (finalLoc == nil || actionLoc[0] < finalLoc[0])

	if finalLoc != nil && !actionPrecedes {
		return Final{Answer: strings.TrimSpace(output[finalLoc[1]:])}
	}

	if actionLoc != nil {
		tool := cleanToken(output[actionLoc[2]:actionLoc[3]])
		input := output[actionLoc[4]:actionLoc[5]]

		if stop := inputStopRe.FindStringIndex(input); stop != nil {
			input = input[:stop[0]]
		}

		if tool == "" {
			return Malformed{Raw: output}
		}

		return Act{Tool: tool, Input: cleanToken(input)}
	}

	return Malformed{Raw: output}
}

// thoughtText returns the reasoning text preceding the first recognized
// marker, with any leading "Thought:" label stripped. The prompt ends in a
// "Thought:" cue, so the model's output usually begins mid-thought.
func thoughtText(output string) string {
	cut := len(output)

	if loc := actionRe.FindStringSubmatchIndex(output); loc != nil && loc[0] < cut {
		cut = loc[0]
	}

	if loc := finalRe.FindStringIndex(output); loc != nil && loc[0] < cut {
		cut = loc[0]
	}

	text := strings.TrimSpace(output[:cut])
	text = strings.TrimPrefix(text, "Thought:")

	return strings.TrimSpace(text)
}

// cleanToken trims whitespace and one layer of wrapping quotes or backticks,
// which models habitually add around tool names and inputs.
func cleanToken(s string) string {
	s = strings.TrimSpace(s)

	for _, quote := range []string{`"`, "'", "`"} {
		if len(s) >= 2 && strings.HasPrefix(s, quote) && strings.HasSuffix(s, quote) {
			s = s[1 : len(s)-1]
			break
		}
	}

	return strings.TrimSpace(s)
}
