package lz77

import (
	"github.com/chronos-tachyon/assert"
)

// window is the sliding window: the most recent symbols seen, at most
// capacity of them, oldest first.
//
// Evicted symbols stay in history until it grows to twice the capacity, at
// which point the live symbols are moved back to the front in one copy.
//
type window[S comparable] struct {
	history  []S
	start    int
	capacity int
}

func newWindow[S comparable](capacity int) *window[S] {
	assert.Assertf(capacity > 0, "window capacity %d <= 0", capacity)
	return &window[S]{
		history:  make([]S, 0, 2*capacity),
		capacity: capacity,
	}
}

// Len returns the number of symbols currently in the window.
func (w *window[S]) Len() int {
	return len(w.history) - w.start
}

// symbols returns the live window contents, oldest first.
func (w *window[S]) symbols() []S {
	return w.history[w.start:]
}

// push appends symbols to the window, evicting the oldest ones until the
// window fits its capacity again.
func (w *window[S]) push(symbols []S) {
	if len(symbols) >= w.capacity {
		symbols = symbols[len(symbols)-w.capacity:]
		w.history = w.history[:0]
		w.start = 0
	}

	if len(w.history)+len(symbols) > cap(w.history) {
		// Trim down the history buffer.
		n := copy(w.history, w.history[w.start:])
		w.history = w.history[:n]
		w.start = 0
	}
	w.history = append(w.history, symbols...)

	if over := w.Len() - w.capacity; over > 0 {
		w.start += over
	}
	assert.Assertf(w.Len() <= w.capacity, "window length %d > capacity %d", w.Len(), w.capacity)
}

// longestMatch finds the longest run of window symbols equal to a prefix of
// input.  The window is scanned from its oldest end and a later candidate
// replaces an earlier one of equal length, so ties go to the lowest distance.
//
// Matches lie wholly inside the window.  A match shorter than minLength is
// reported as length 0.
//
func (w *window[S]) longestMatch(input []S, minLength int) (distance int, length int) {
	win := w.symbols()
	best, bestLen := 0, 0
	for start := range win {
		n := 0
		for start+n < len(win) && n < len(input) && win[start+n] == input[n] {
			n++
		}
		if n > 0 && n >= bestLen {
			best, bestLen = start, n
		}
	}
	if bestLen < minLength {
		return 0, 0
	}
	return len(win) - best, bestLen
}
