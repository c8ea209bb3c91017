// Package memory holds the conversation history carried across agent runs
// within one interactive session. It is an explicitly passed, session-owned
// object: nothing here is global, so future concurrent sessions cannot
// collide.
package memory

import "sync"

// Exchange is one completed query/answer pair.
type Exchange struct {
	Query  string
	Answer string
}

// Memory is an append-only list of completed exchanges.
// It is safe for concurrent use.
type Memory struct {
	mu        sync.Mutex
	exchanges []Exchange
}

// New creates an empty Memory.
func New() *Memory {
	return &Memory{}
}

// Add records a completed exchange. The session appends only after a run
// succeeds; failed and step-limited runs leave the memory untouched.
func (m *Memory) Add(query, answer string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.exchanges = append(m.exchanges, Exchange{Query: query, Answer: answer})
}

// Exchanges returns a copy of all recorded exchanges in order.
func (m *Memory) Exchanges() []Exchange {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := make([]Exchange, len(m.exchanges))
	copy(cp, m.exchanges)

	return cp
}

// Len returns the number of recorded exchanges.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.exchanges)
}
