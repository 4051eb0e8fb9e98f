// Package history provides a bounded undo/redo log.
//
// A [History] retains at most a fixed number of entries on a single linear timeline:
// recording a new entry after an undo discards the redo-able future, and the oldest
// entries are evicted once the capacity is reached.
//
// Once an entry has been evicted, undo stops at the oldest retained entry: the history is lossy
// beyond its capacity.
package history

import (
	"errors"
	"fmt"
)

// DefaultCapacity is the number of entries retained by default.
const DefaultCapacity = 5

// ErrInvalidCapacity is returned when a history is configured with a non-positive capacity.
var ErrInvalidCapacity = errors.New("history capacity must be positive")

// History is a fixed-capacity undo/redo log backed by a ring buffer.
//
// The zero value is not usable: use [New].
//
// A [History] is not safe for concurrent use.
type History[T any] struct {
	entries []T
	head    int // index of the oldest entry in entries
	size    int // number of retained entries
	cursor  int // logical position of the current entry, in [0, size)
}

// New builds an empty [History] retaining at most capacity entries.
func New[T any](capacity int) (*History[T], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}

	return &History[T]{
		entries: make([]T, capacity),
	}, nil
}

// Record appends an entry and makes it current.
//
// Entries after the cursor are discarded first. When the history is full, the oldest entry is
// evicted and the cursor moves down accordingly.
//
// It returns the number of evicted entries.
func (h *History[T]) Record(entry T) (evicted int) {
	if h.size > 0 && h.cursor < h.size-1 {
		h.truncate(h.cursor + 1)
	}

	capacity := len(h.entries)
	if h.size < capacity {
		h.entries[h.index(h.size)] = entry
		h.size++
	} else {
		// full: overwrite the oldest slot, which becomes the newest
		h.entries[h.head] = entry
		h.head = (h.head + 1) % capacity
		evicted = 1
	}

	h.cursor = min(h.size-1, capacity-1)

	return evicted
}

// Undo moves the cursor one step back and returns the entry to apply.
//
// It reports false and leaves the cursor unchanged when already at the oldest retained entry.
func (h *History[T]) Undo() (T, bool) {
	if !h.CanUndo() {
		var zero T

		return zero, false
	}

	h.cursor--

	return h.at(h.cursor), true
}

// Redo moves the cursor one step forward and returns the entry to apply.
//
// It reports false and leaves the cursor unchanged when already at the newest entry.
func (h *History[T]) Redo() (T, bool) {
	if !h.CanRedo() {
		var zero T

		return zero, false
	}

	h.cursor++

	return h.at(h.cursor), true
}

// Current returns the entry at the cursor, reporting false if the history is empty.
func (h *History[T]) Current() (T, bool) {
	if h.size == 0 {
		var zero T

		return zero, false
	}

	return h.at(h.cursor), true
}

// CanUndo reports whether [History.Undo] would move the cursor.
func (h *History[T]) CanUndo() bool {
	return h.size > 0 && h.cursor > 0
}

// CanRedo reports whether [History.Redo] would move the cursor.
func (h *History[T]) CanRedo() bool {
	return h.size > 0 && h.cursor < h.size-1
}

// Len returns the number of retained entries.
func (h *History[T]) Len() int {
	return h.size
}

// Cap returns the maximum number of retained entries.
func (h *History[T]) Cap() int {
	return len(h.entries)
}

// Cursor returns the position of the current entry, 0 being the oldest retained entry.
func (h *History[T]) Cursor() int {
	return h.cursor
}

// Entries returns the retained entries, oldest first.
func (h *History[T]) Entries() []T {
	out := make([]T, 0, h.size)
	for i := range h.size {
		out = append(out, h.at(i))
	}

	return out
}

// Reset discards all entries.
func (h *History[T]) Reset() {
	h.truncate(0)
	h.head = 0
	h.cursor = 0
}

func (h *History[T]) index(logical int) int {
	return (h.head + logical) % len(h.entries)
}

func (h *History[T]) at(logical int) T {
	return h.entries[h.index(logical)]
}

// truncate keeps the first n entries, releasing references held by the discarded slots.
func (h *History[T]) truncate(n int) {
	var zero T
	for i := n; i < h.size; i++ {
		h.entries[h.index(i)] = zero
	}

	h.size = n
}
