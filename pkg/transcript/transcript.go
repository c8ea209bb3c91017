package transcript

// Transcript is an append-only ordered sequence of entries for one agent run.
// The zero value is ready to use. Transcript is not safe for concurrent use;
// a run executes one step at a time, so callers never need to share one.
type Transcript struct {
	entries []Entry
}

// New creates a Transcript pre-populated with the given entries.
func New(entries ...Entry) *Transcript {
	return &Transcript{entries: entries}
}

// Append adds one or more entries to the transcript.
func (t *Transcript) Append(entries ...Entry) {
	t.entries = append(t.entries, entries...)
}

// Len returns the number of entries.
func (t *Transcript) Len() int {
	return len(t.entries)
}

// At returns the entry at the given index.
// It panics if the index is out of range.
func (t *Transcript) At(index int) Entry {
	return t.entries[index]
}

// Last returns the most recent entry and true, or nil and false if the
// transcript is empty.
func (t *Transcript) Last() (Entry, bool) {
	if len(t.entries) == 0 {
		return nil, false
	}

	return t.entries[len(t.entries)-1], true
}

// Entries returns a copy of all entries.
func (t *Transcript) Entries() []Entry {
	cp := make([]Entry, len(t.entries))
	copy(cp, t.entries)

	return cp
}

// Each iterates over entries, calling fn for each one. If fn returns false,
// iteration stops early.
func (t *Transcript) Each(fn func(int, Entry) bool) {
	for i, e := range t.entries {
		if !fn(i, e) {
			return
		}
	}
}
