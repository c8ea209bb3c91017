package engine

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reagent/pkg/modeladapter"
	"reagent/pkg/react"
)

func newScriptedSession(t *testing.T, replies ...string) *Session {
	t.Helper()

	model := &scriptedModel{replies: replies}
	RegisterProvider("scripted", func(ProviderConfig) (modeladapter.Completer, error) {
		return model, nil
	})

	cfg := testConfig(t)
	cfg.Provider.Kind = "scripted"

	e, err := New(cfg, nil)
	require.NoError(t, err)

	return e.NewSession(react.Hooks{})
}

func TestAskRecordsExchangeOnSuccess(t *testing.T) {
	s := newScriptedSession(t, "Thought: I know this.\nFinal Answer: 4")

	run, err := s.Ask(context.Background(), "What is 2+2?")

	require.NoError(t, err)
	assert.Equal(t, react.StatusSucceeded, run.Status)
	assert.Equal(t, "4", run.Answer)

	history := s.History()
	require.Len(t, history, 1)
	assert.Equal(t, "What is 2+2?", history[0].Query)
	assert.Equal(t, "4", history[0].Answer)
}

func TestAskSkipsMemoryOnStepLimit(t *testing.T) {
	// A reply that always acts never reaches a final answer.
	s := newScriptedSession(t, "Thought: still working.\nAction: Calculator\nAction Input: 1+1")

	run, err := s.Ask(context.Background(), "Endless question")

	require.NoError(t, err)
	assert.Equal(t, react.StatusStepLimit, run.Status)
	assert.Empty(t, s.History())
}

func TestAskSequentialQueriesAccumulateHistory(t *testing.T) {
	s := newScriptedSession(t, "Final Answer: done")

	_, err := s.Ask(context.Background(), "first")
	require.NoError(t, err)

	_, err = s.Ask(context.Background(), "second")
	require.NoError(t, err)

	assert.Len(t, s.History(), 2)
}

func TestAskRejectsConcurrentCalls(t *testing.T) {
	s := newScriptedSession(t, "Final Answer: done")

	// Simulate an in-flight Ask.
	require.NoError(t, s.acquire())

	_, err := s.Ask(context.Background(), "while busy")
	assert.ErrorIs(t, err, ErrSessionBusy)

	s.release()

	_, err = s.Ask(context.Background(), "after release")
	assert.NoError(t, err)
}

func TestHistoryReturnsCopy(t *testing.T) {
	s := newScriptedSession(t, "Final Answer: done")

	_, err := s.Ask(context.Background(), "q")
	require.NoError(t, err)

	history := s.History()
	history[0].Answer = "mutated"

	assert.Equal(t, "done", s.History()[0].Answer)
}

func TestAskIsSafeUnderContention(t *testing.T) {
	s := newScriptedSession(t, "Final Answer: done")

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Ask(context.Background(), "q")
		}()
	}
	wg.Wait()

	// At least one call won the session; none may have corrupted state.
	assert.GreaterOrEqual(t, len(s.History()), 1)
}
