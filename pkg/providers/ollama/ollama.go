// Package ollama provides a Completer implementation for the Ollama generate
// API. Responses stream as newline-delimited JSON chunks; tokens are relayed
// to the caller's callback as they arrive and the concatenated text is
// returned once the stream completes.
package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"reagent/pkg/modeladapter"
	"reagent/pkg/modeladapter/usage"
)

const generatePath = "/api/generate"

// stopSequences ends generation before the model fabricates tool output. The
// loop supplies real observations; the model must never write its own.
var stopSequences = []string{"\nObservation:", "\nObservation :"}

var _ modeladapter.Completer = (*Adapter)(nil)

// Adapter implements modeladapter.Completer for the Ollama generate API.
type Adapter struct {
	modeladapter.ModelAdapter
}

// New creates an Adapter for a local or remote Ollama server.
// The baseURL should be like "http://localhost:11434" (no trailing slash).
func New(baseURL, model string) *Adapter {
	a := &Adapter{}
	a.BaseURL = baseURL
	a.Name = model
	a.Temperature = 0.7

	return a
}

// --- wire types ---

type apiRequest struct {
	Model   string     `json:"model"`
	Prompt  string     `json:"prompt"`
	Stream  bool       `json:"stream"`
	Options apiOptions `json:"options"`
}

type apiOptions struct {
	Temperature float64  `json:"temperature"`
	NumPredict  int      `json:"num_predict,omitempty"`
	Stop        []string `json:"stop,omitempty"`
}

type apiChunk struct {
	Response        string `json:"response"`
	Done            bool   `json:"done"`
	PromptEvalCount int    `json:"prompt_eval_count"`
	EvalCount       int    `json:"eval_count"`
}

// Complete sends the prompt and consumes the streamed response. Each chunk's
// text is forwarded to onToken when set; token usage from the final chunk is
// recorded on the adapter's tracker.
func (a *Adapter) Complete(ctx context.Context, prompt string, onToken func(string)) (string, error) {
	req := apiRequest{
		Model:  a.Name,
		Prompt: prompt,
		Stream: true,
		Options: apiOptions{
			Temperature: a.Temperature,
			NumPredict:  a.MaxTokens,
			Stop:        stopSequences,
		},
	}

	var b strings.Builder

	err := a.StreamLines(ctx, generatePath, req, func(line []byte) error {
		var chunk apiChunk
		if err := json.Unmarshal(line, &chunk); err != nil {
			return fmt.Errorf("decode chunk: %w", err)
		}

		if chunk.Response != "" {
			b.WriteString(chunk.Response)

			if onToken != nil {
				onToken(chunk.Response)
			}
		}

		if chunk.Done {
			a.Usage.Add(usage.TokenCount{
				InputTokens:  chunk.PromptEvalCount,
				OutputTokens: chunk.EvalCount,
			})
		}

		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama: %w", err)
	}

	return b.String(), nil
}
