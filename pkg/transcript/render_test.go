package transcript

import (
	"strings"
	"testing"

	"reagent/pkg/memory"
	"reagent/pkg/tools/toolbox"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []toolbox.Tool {
	return []toolbox.Tool{
		{Name: "Calculator", Description: "Evaluates arithmetic expressions."},
		{Name: "Weather", Description: "Gets current weather for a location."},
	}
}

func TestRenderPromptCatalogLines(t *testing.T) {
	prompt := RenderPrompt(testCatalog(), nil, "what is 2+2?", New())

	assert.Contains(t, prompt, "Calculator: Evaluates arithmetic expressions.\n")
	assert.Contains(t, prompt, "Weather: Gets current weather for a location.\n")
}

func TestRenderPromptNameSet(t *testing.T) {
	prompt := RenderPrompt(testCatalog(), nil, "q", New())

	assert.Contains(t, prompt, "should be one of [Calculator, Weather]")
}

func TestRenderPromptQueryAndCue(t *testing.T) {
	prompt := RenderPrompt(testCatalog(), nil, "what is 2+2?", New())

	assert.Contains(t, prompt, "Question: what is 2+2?\n")
	assert.True(t, strings.HasSuffix(prompt, "Thought:"))
}

func TestRenderPromptScratchpad(t *testing.T) {
	tr := New(
		Thought{Text: "I should calculate this."},
		Action{Tool: "Calculator", Input: "2+2"},
		Observation{Text: "Result: 4"},
	)

	prompt := RenderPrompt(testCatalog(), nil, "what is 2+2?", tr)

	idx := strings.Index(prompt, "Question: what is 2+2?")
	require.GreaterOrEqual(t, idx, 0)

	tail := prompt[idx:]
	assert.Contains(t, tail, "Thought: I should calculate this.\n")
	assert.Contains(t, tail, "Action: Calculator\nAction Input: 2+2\n")
	assert.Contains(t, tail, "Observation: Result: 4\n")
}

func TestRenderPromptHistory(t *testing.T) {
	history := []memory.Exchange{
		{Query: "hello", Answer: "hi there"},
		{Query: "what's 1+1?", Answer: "2"},
	}

	prompt := RenderPrompt(testCatalog(), history, "and 2+2?", New())

	assert.Contains(t, prompt, "Previous conversation history:\n")
	assert.Contains(t, prompt, "Human: hello\nAssistant: hi there\n")
	assert.Contains(t, prompt, "Human: what's 1+1?\nAssistant: 2\n")
}

func TestRenderPromptNoHistorySection(t *testing.T) {
	prompt := RenderPrompt(testCatalog(), nil, "q", New())

	assert.NotContains(t, prompt, "Previous conversation history:")
}

func TestRenderPromptDeterministic(t *testing.T) {
	tr := New(
		Thought{Text: "thinking"},
		Action{Tool: "Weather", Input: "London"},
		Observation{Text: "cloudy"},
	)
	history := []memory.Exchange{{Query: "a", Answer: "b"}}

	first := RenderPrompt(testCatalog(), history, "q", tr)
	second := RenderPrompt(testCatalog(), history, "q", tr)

	assert.Equal(t, first, second)
}

func TestRenderPromptNilTranscript(t *testing.T) {
	prompt := RenderPrompt(testCatalog(), nil, "q", nil)

	assert.True(t, strings.HasSuffix(prompt, "Question: q\nThought:"))
}
