package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reagent/pkg/react"
)

func testConfig(t *testing.T) Config {
	t.Helper()

	cfg := DefaultConfig()
	cfg.Tools.WorkDir = t.TempDir()

	return cfg
}

func TestNewAssemblesEngine(t *testing.T) {
	e, err := New(testConfig(t), nil)

	require.NoError(t, err)
	assert.NotNil(t, e.Model())
	assert.Equal(t, 8, e.Tools().Len())
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Provider.Model = ""

	_, err := New(cfg, nil)

	assert.Error(t, err)
}

func TestNewRejectsUnknownProvider(t *testing.T) {
	cfg := testConfig(t)
	cfg.Provider.Kind = "mystery"

	_, err := New(cfg, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider kind")
}

func TestNewSessionAppliesMaxSteps(t *testing.T) {
	cfg := testConfig(t)
	cfg.Agent.MaxSteps = 3

	e, err := New(cfg, nil)
	require.NoError(t, err)

	s := e.NewSession(react.Hooks{})

	assert.Equal(t, 3, s.runner.MaxSteps)
}

func TestNewSessionDefaultMaxSteps(t *testing.T) {
	cfg := testConfig(t)
	cfg.Agent.MaxSteps = 0

	e, err := New(cfg, nil)
	require.NoError(t, err)

	s := e.NewSession(react.Hooks{})

	assert.Equal(t, react.DefaultMaxSteps, s.runner.MaxSteps)
}

type scriptedModel struct {
	replies []string
	calls   int
}

func (m *scriptedModel) Complete(_ context.Context, _ string, onToken func(string)) (string, error) {
	reply := m.replies[m.calls%len(m.replies)]
	m.calls++

	if onToken != nil {
		onToken(reply)
	}

	return reply, nil
}
