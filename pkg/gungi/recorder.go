package gungi

import "strings"

// MaxPositionRepetitions is the number of times an identical position may
// recur before the game is drawn.
const MaxPositionRepetitions = 4

// Recorder tracks how many times each distinct board position has occurred,
// to detect draw-by-repetition. A position's identity is the sequence of
// active piece identities on every square, bottom to top, ignoring colour:
// two positions with the same shape of stacked identities but different
// owning colours are still the same position for repetition purposes
// (unlike Tower.IsDuplicate, which also compares colour).
type Recorder struct {
	counts map[string]int
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{counts: make(map[string]int)}
}

// Reset forgets every recorded position.
func (r *Recorder) Reset() {
	r.counts = make(map[string]int)
}

// Record registers one more occurrence of the position described by towers
// and returns the 1-indexed occurrence count: the first time a position is
// seen it returns 1, the fourth time it returns MaxPositionRepetitions,
// which the controller treats as a draw.
func (r *Recorder) Record(towers []*Tower, arena *Arena) int {
	key := positionKey(towers, arena)
	r.counts[key]++
	return r.counts[key]
}

// positionKey builds the canonical identity string for the given squares.
func positionKey(towers []*Tower, arena *Arena) string {
	var b strings.Builder
	for i, t := range towers {
		if i > 0 {
			b.WriteByte('|')
		}
		for _, h := range t.Members() {
			b.WriteString(arena.Unit(h).Front().GN())
		}
	}
	return b.String()
}
