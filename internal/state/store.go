package state

// Store is the append-only sequence of ingested lines. Indices are stable
// once assigned: lines are never removed or reordered.
//
// Store is owned by a single goroutine (the UI loop) and does no locking.
type Store struct {
	lines []string
	final bool
}

// Append adds lines in order and returns how many were added. Appending to
// a finalized store is ignored.
func (s *Store) Append(lines []string) int {
	if s.final || len(lines) == 0 {
		return 0
	}
	s.lines = append(s.lines, lines...)
	return len(lines)
}

// Finalize records that no more lines will ever arrive.
func (s *Store) Finalize() {
	s.final = true
}

// Final reports whether the source has been exhausted.
func (s *Store) Final() bool {
	return s.final
}

// Len returns the number of stored lines.
func (s *Store) Len() int {
	return len(s.lines)
}

// Lines returns the stored lines. The returned slice shares the store's
// backing array and must not be modified.
func (s *Store) Lines() []string {
	return s.lines[:len(s.lines):len(s.lines)]
}
