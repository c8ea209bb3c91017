package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reagent/pkg/modeladapter"
	"reagent/pkg/providers/ollama"
)

func TestBuildCompleterOllama(t *testing.T) {
	c, err := buildCompleter(ProviderConfig{
		Kind:        "ollama",
		BaseURL:     "http://model-host:11434",
		Model:       "llama3.2",
		Temperature: 0.2,
	})

	require.NoError(t, err)

	a, ok := c.(*ollama.Adapter)
	require.True(t, ok)
	assert.Equal(t, "http://model-host:11434", a.BaseURL)
	assert.Equal(t, "llama3.2", a.Name)
	assert.InDelta(t, 0.2, a.Temperature, 1e-9)
}

func TestBuildCompleterDefaultBaseURL(t *testing.T) {
	c, err := buildCompleter(ProviderConfig{Kind: "ollama", Model: "llama3.2"})

	require.NoError(t, err)

	a, ok := c.(*ollama.Adapter)
	require.True(t, ok)
	assert.Equal(t, "http://localhost:11434", a.BaseURL)
}

func TestBuildCompleterUnknownKind(t *testing.T) {
	_, err := buildCompleter(ProviderConfig{Kind: "mystery", Model: "m"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown provider kind "mystery"`)
}

type staticCompleter struct{ reply string }

func (s staticCompleter) Complete(_ context.Context, _ string, _ func(string)) (string, error) {
	return s.reply, nil
}

func TestRegisterProvider(t *testing.T) {
	RegisterProvider("static", func(ProviderConfig) (modeladapter.Completer, error) {
		return staticCompleter{reply: "ok"}, nil
	})

	c, err := buildCompleter(ProviderConfig{Kind: "static", Model: "m"})

	require.NoError(t, err)
	assert.IsType(t, staticCompleter{}, c)
}
