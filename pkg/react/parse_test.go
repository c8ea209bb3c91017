package react

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	got := Parse("Action: Calculator\nAction Input: 2+2")

	require.IsType(t, Act{}, got)
	act := got.(Act)
	assert.Equal(t, "Calculator", act.Tool)
	assert.Equal(t, "2+2", act.Input)
}

func TestParseActionWithThought(t *testing.T) {
	out := "I need to do some math here.\nAction: Calculator\nAction Input: sqrt(16)"

	got := Parse(out)

	require.IsType(t, Act{}, got)
	assert.Equal(t, Act{Tool: "Calculator", Input: "sqrt(16)"}, got)
	assert.Equal(t, "I need to do some math here.", thoughtText(out))
}

func TestParseFinalAnswer(t *testing.T) {
	got := Parse("Final Answer: 42")

	require.IsType(t, Final{}, got)
	assert.Equal(t, "42", got.(Final).Answer)
}

func TestParseFinalAnswerWithThought(t *testing.T) {
	out := "Thought: I now know the final answer\nFinal Answer: the sky is blue"

	got := Parse(out)

	require.IsType(t, Final{}, got)
	assert.Equal(t, "the sky is blue", got.(Final).Answer)
	assert.Equal(t, "I now know the final answer", thoughtText(out))
}

func TestParseActionPrecedesFinal(t *testing.T) {
	// A well-formed action before a premature final answer wins; the input is
	// cut at the marker.
	out := "Action: Weather\nAction Input: London\nFinal Answer: sunny probably"

	got := Parse(out)

	require.IsType(t, Act{}, got)
	assert.Equal(t, Act{Tool: "Weather", Input: "London"}, got)
}

func TestParseFinalPrecedesAction(t *testing.T) {
	out := "Final Answer: done\nAction: Calculator\nAction Input: 1+1"

	got := Parse(out)

	require.IsType(t, Final{}, got)
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name   string
		output string
	}{
		{"free text", "I'm not sure what to do next."},
		{"empty", ""},
		{"action without input", "Action: Calculator"},
		{"input without action", "Action Input: 2+2"},
		{"empty tool name", "Action:\nAction Input: 2+2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.output)
			assert.IsType(t, Malformed{}, got, "output: %q", tt.output)
		})
	}
}

func TestParseStripsQuotes(t *testing.T) {
	got := Parse("Action: \"Calculator\"\nAction Input: '2 + 2'")

	require.IsType(t, Act{}, got)
	assert.Equal(t, Act{Tool: "Calculator", Input: "2 + 2"}, got)
}

func TestParseNumberedMarkers(t *testing.T) {
	got := Parse("Action 1: WebSearch\nAction 1 Input: golang news")

	require.IsType(t, Act{}, got)
	assert.Equal(t, Act{Tool: "WebSearch", Input: "golang news"}, got)
}

func TestParseInputStopsAtHallucinatedObservation(t *testing.T) {
	out := "Action: Calculator\nAction Input: 2+2\nObservation: Result: 4\nThought: done"

	got := Parse(out)

	require.IsType(t, Act{}, got)
	assert.Equal(t, "2+2", got.(Act).Input)
}

func TestParseMultilineInput(t *testing.T) {
	out := "Action: FileWriter\nAction Input: notes.txt|line one\nline two"

	got := Parse(out)

	require.IsType(t, Act{}, got)
	assert.Equal(t, "notes.txt|line one\nline two", got.(Act).Input)
}

func TestParseUnknownToolStaysAct(t *testing.T) {
	// Name resolution is the loop's job; the parser must not reject names.
	got := Parse("Action: NoSuchTool\nAction Input: x")

	require.IsType(t, Act{}, got)
	assert.Equal(t, "NoSuchTool", got.(Act).Tool)
}

func TestThoughtTextNoMarkers(t *testing.T) {
	assert.Equal(t, "just rambling", thoughtText("just rambling"))
}
