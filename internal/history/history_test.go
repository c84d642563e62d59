package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeGroup(h *History, description string, size int) OperationGroup {
	id := h.BeginOperation(description)
	group := NewGroup(id, description)
	group.Add(NewOperation(id, description, NewSnapshot(make([]byte, size)), NewSnapshot(make([]byte, size))))
	return group
}

func TestCommitAndUndoRedo(t *testing.T) {
	h := New()

	require.False(t, h.CanUndo())
	require.False(t, h.CanRedo())

	require.NoError(t, h.Commit(makeGroup(h, "Move Entity", 8)))
	require.NoError(t, h.Commit(makeGroup(h, "Rename Entity", 4)))

	assert.True(t, h.CanUndo())
	assert.Equal(t, 2, h.UndoDepth())
	assert.Equal(t, "Rename Entity", h.UndoDescription())

	group, err := h.Undo()
	require.NoError(t, err)
	assert.Equal(t, "Rename Entity", group.Description)
	assert.Equal(t, 1, h.UndoDepth())
	assert.Equal(t, 1, h.RedoDepth())
	assert.Equal(t, "Rename Entity", h.RedoDescription())

	group, err = h.Redo()
	require.NoError(t, err)
	assert.Equal(t, "Rename Entity", group.Description)
	assert.Equal(t, 2, h.UndoDepth())
	assert.Equal(t, 0, h.RedoDepth())
}

func TestUndoRedoEmpty(t *testing.T) {
	h := New()

	_, err := h.Undo()
	assert.ErrorIs(t, err, ErrNothingToUndo)

	_, err = h.Redo()
	assert.ErrorIs(t, err, ErrNothingToRedo)
}

func TestEmptyGroupCommitIsNoOp(t *testing.T) {
	h := New()
	id := h.BeginOperation("noop")

	require.NoError(t, h.Commit(NewGroup(id, "noop")))
	assert.False(t, h.CanUndo())
	assert.Equal(t, 0, h.MemoryUsed())
}

func TestCommitClearsRedoStack(t *testing.T) {
	h := New()
	require.NoError(t, h.Commit(makeGroup(h, "first", 4)))
	require.NoError(t, h.Commit(makeGroup(h, "second", 4)))

	_, err := h.Undo()
	require.NoError(t, err)
	require.True(t, h.CanRedo())

	require.NoError(t, h.Commit(makeGroup(h, "third", 4)))
	assert.False(t, h.CanRedo(), "a new commit must invalidate redo history")
}

func TestBoundedDepthAndMemory(t *testing.T) {
	const depth = 5
	h := NewWithDepth(depth)

	for i := 0; i < depth+3; i++ {
		require.NoError(t, h.Commit(makeGroup(h, "edit", 10)))
	}

	assert.Equal(t, depth, h.UndoDepth())
	// Each group holds a 10-byte before plus a 10-byte after snapshot.
	assert.Equal(t, depth*20, h.MemoryUsed())

	stats := h.Stats()
	assert.Equal(t, depth, stats.UndoCount)
	assert.Equal(t, 0, stats.RedoCount)
	assert.Equal(t, depth, stats.MaxDepth)
}

func TestSetMaxDepthEvictsImmediately(t *testing.T) {
	h := New()
	for i := 0; i < 6; i++ {
		require.NoError(t, h.Commit(makeGroup(h, "edit", 10)))
	}
	require.Equal(t, 6, h.UndoDepth())

	h.SetMaxDepth(4)
	assert.Equal(t, 4, h.UndoDepth())
	assert.Equal(t, 4*20, h.MemoryUsed())
	assert.Equal(t, 4, h.Stats().MaxDepth)

	// Subsequent commits honor the new bound.
	require.NoError(t, h.Commit(makeGroup(h, "edit", 10)))
	assert.Equal(t, 4, h.UndoDepth())

	h.SetMaxDepth(0)
	assert.Equal(t, 1, h.UndoDepth(), "depth clamps to 1")
}

func TestMemoryAccountingAcrossUndoRedo(t *testing.T) {
	h := New()
	require.NoError(t, h.Commit(makeGroup(h, "edit", 16)))
	require.Equal(t, 32, h.MemoryUsed())

	_, err := h.Undo()
	require.NoError(t, err)
	assert.Equal(t, 0, h.MemoryUsed(), "undone groups leave the undo accounting")

	_, err = h.Redo()
	require.NoError(t, err)
	assert.Equal(t, 32, h.MemoryUsed())
}

func TestClear(t *testing.T) {
	h := New()
	require.NoError(t, h.Commit(makeGroup(h, "edit", 8)))
	_, err := h.Undo()
	require.NoError(t, err)
	require.NoError(t, h.Commit(makeGroup(h, "edit", 8)))

	h.Clear()
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
	assert.Equal(t, 0, h.MemoryUsed())
	assert.Equal(t, "", h.UndoDescription())
	assert.Equal(t, "", h.RedoDescription())
}

func TestOperationIDsMonotonic(t *testing.T) {
	h := New()
	a := h.BeginOperation("a")
	b := h.BeginOperation("b")
	assert.Greater(t, b, a)
}

func TestSnapshotValueRoundTrip(t *testing.T) {
	type payload struct {
		Name  string
		Count int
		Data  []float32
	}
	in := payload{Name: "cube", Count: 3, Data: []float32{1, 2, 3}}

	snap, err := SnapshotValue(in)
	require.NoError(t, err)
	assert.Equal(t, len(snap.Data), snap.Size)
	assert.NotZero(t, snap.Timestamp)

	var out payload
	require.NoError(t, snap.Decode(&out))
	assert.Equal(t, in, out)
}

func TestGroupMemorySize(t *testing.T) {
	h := New()
	id := h.BeginOperation("group")
	group := NewGroup(id, "group")
	group.Add(NewOperation(id, "a", NewSnapshot(make([]byte, 3)), NewSnapshot(make([]byte, 5))))
	group.Add(NewOperation(id, "b", NewSnapshot(make([]byte, 7)), NewSnapshot(nil)))

	assert.Equal(t, 2, group.Count())
	assert.Equal(t, 15, group.MemorySize())
}
