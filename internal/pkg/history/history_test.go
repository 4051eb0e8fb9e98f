package history

import (
	"testing"

	"github.com/go-openapi/testify/v2/assert"
	"github.com/go-openapi/testify/v2/require"
)

func TestNew(t *testing.T) {
	t.Run("should fail fast on invalid capacity", func(t *testing.T) {
		for _, capacity := range []int{0, -1} {
			h, err := New[string](capacity)
			require.ErrorIs(t, err, ErrInvalidCapacity)
			assert.Nil(t, h)
		}
	})

	t.Run("should start empty", func(t *testing.T) {
		h, err := New[string](DefaultCapacity)
		require.NoError(t, err)

		assert.Equal(t, 0, h.Len())
		assert.Equal(t, DefaultCapacity, h.Cap())
		assert.False(t, h.CanUndo())
		assert.False(t, h.CanRedo())

		_, ok := h.Current()
		assert.False(t, ok)

		_, ok = h.Undo()
		assert.False(t, ok)

		_, ok = h.Redo()
		assert.False(t, ok)
	})
}

func TestRoundTrip(t *testing.T) {
	h := mustNew(t, DefaultCapacity)

	h.Record("A")
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())

	h.Record("B")
	assert.True(t, h.CanUndo())
	assert.False(t, h.CanRedo())

	entry, ok := h.Undo()
	require.True(t, ok)
	assert.Equal(t, "A", entry)
	assert.False(t, h.CanUndo())
	assert.True(t, h.CanRedo())

	entry, ok = h.Redo()
	require.True(t, ok)
	assert.Equal(t, "B", entry)
	assert.True(t, h.CanUndo())
	assert.False(t, h.CanRedo())

	current, ok := h.Current()
	require.True(t, ok)
	assert.Equal(t, "B", current)
}

func TestRoundTripFromInteriorPosition(t *testing.T) {
	h := mustNew(t, DefaultCapacity)
	for _, e := range []string{"A", "B", "C", "D"} {
		h.Record(e)
	}

	_, _ = h.Undo()
	_, _ = h.Undo()
	before, _ := h.Current()
	require.Equal(t, "B", before)

	_, ok := h.Undo()
	require.True(t, ok)
	after, ok := h.Redo()
	require.True(t, ok)

	assert.Equal(t, before, after)
	assert.Equal(t, 1, h.Cursor())
}

func TestNoOpAtBoundaries(t *testing.T) {
	h := mustNew(t, 3)
	h.Record("A")
	h.Record("B")

	_, ok := h.Redo()
	assert.False(t, ok)
	assert.Equal(t, 1, h.Cursor())

	_, _ = h.Undo()
	_, ok = h.Undo()
	assert.False(t, ok)
	assert.Equal(t, 0, h.Cursor())
}

func TestRecordTruncatesFuture(t *testing.T) {
	h := mustNew(t, DefaultCapacity)
	for _, e := range []string{"A", "B", "C"} {
		h.Record(e)
	}

	_, _ = h.Undo()
	_, _ = h.Undo()
	h.Record("D")

	assert.Equal(t, []string{"A", "D"}, h.Entries())
	assert.Equal(t, 1, h.Cursor())
	assert.False(t, h.CanRedo())
	assert.True(t, h.CanUndo())
}

func TestCapacity(t *testing.T) {
	const capacity = 5

	for k := range 7 {
		h, err := New[int](capacity)
		require.NoError(t, err)
		var all []int
		evicted := 0

		for i := range capacity + k {
			all = append(all, i)
			evicted += h.Record(i)
		}

		assert.Equal(t, capacity, h.Len())
		assert.Equal(t, k, evicted)
		assert.Equal(t, all[len(all)-capacity:], h.Entries(), "retains the most recent entries, oldest evicted first")
		assert.Equal(t, capacity-1, h.Cursor())
	}
}

func TestEvictionShiftsCursor(t *testing.T) {
	h := mustNew(t, 3)
	for _, e := range []string{"A", "B", "C", "D"} {
		h.Record(e)
	}
	require.Equal(t, []string{"B", "C", "D"}, h.Entries())

	// the evicted entry "A" can no longer be reached
	var seen []string
	for h.CanUndo() {
		e, _ := h.Undo()
		seen = append(seen, e)
	}

	assert.Equal(t, []string{"C", "B"}, seen)
	assert.Equal(t, 0, h.Cursor())
}

func TestRecordAfterUndoWhenFull(t *testing.T) {
	h := mustNew(t, 3)
	for _, e := range []string{"A", "B", "C", "D", "E"} {
		h.Record(e)
	}
	require.Equal(t, []string{"C", "D", "E"}, h.Entries())

	_, _ = h.Undo()
	evicted := h.Record("F")

	assert.Equal(t, 0, evicted)
	assert.Equal(t, []string{"C", "D", "F"}, h.Entries())
	assert.Equal(t, 2, h.Cursor())

	evicted = h.Record("G")
	assert.Equal(t, 1, evicted)
	assert.Equal(t, []string{"D", "F", "G"}, h.Entries())
}

func TestReset(t *testing.T) {
	h := mustNew(t, 2)
	h.Record("A")
	h.Record("B")
	h.Record("C")

	h.Reset()
	assert.Equal(t, 0, h.Len())
	assert.Empty(t, h.Entries())

	h.Record("D")
	assert.Equal(t, []string{"D"}, h.Entries())
}

func mustNew(t *testing.T, capacity int) *History[string] {
	t.Helper()

	h, err := New[string](capacity)
	require.NoError(t, err)

	return h
}
