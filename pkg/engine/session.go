package engine

import (
	"context"
	"errors"
	"sync"

	"reagent/pkg/memory"
	"reagent/pkg/react"
)

// ErrSessionBusy is returned when Ask is called while another Ask is active.
var ErrSessionBusy = errors.New("engine: session busy")

// Session is one interactive conversation. It owns the conversation memory;
// only one Ask call may be active at a time.
type Session struct {
	runner *react.Runner
	memory *memory.Memory

	mu     sync.Mutex
	active bool
}

func newSession(runner *react.Runner) *Session {
	return &Session{
		runner: runner,
		memory: memory.New(),
	}
}

// History returns the exchanges recorded so far.
func (s *Session) History() []memory.Exchange {
	return s.memory.Exchanges()
}

// Ask runs the agent loop for one query. Memory is extended only when the
// run produced a real final answer; failed and truncated runs leave it
// untouched so a bad turn cannot poison later prompts.
func (s *Session) Ask(ctx context.Context, query string) (*react.Run, error) {
	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.release()

	run, err := s.runner.Run(ctx, query, s.memory.Exchanges())
	if err != nil {
		return run, err
	}

	if run.Status == react.StatusSucceeded {
		s.memory.Add(query, run.Answer)
	}

	return run, nil
}

func (s *Session) acquire() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active {
		return ErrSessionBusy
	}
	s.active = true

	return nil
}

func (s *Session) release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.active = false
}
