package history

import (
	"errors"
	"time"
)

// DefaultMaxDepth is the undo depth used by New.
const DefaultMaxDepth = 100

// Expected empty-stack conditions. Callers use these to disable the
// corresponding UI action, not to raise an error to the user.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// OperationID identifies an operation or operation group. IDs increase
// monotonically per History instance.
type OperationID uint64

// Operation is one undoable state change: a before snapshot (applied on
// undo) and an after snapshot (applied on redo).
type Operation struct {
	ID          OperationID
	Description string
	Before      StateSnapshot
	After       StateSnapshot
	Timestamp   uint64
}

// NewOperation builds an operation stamped with the current time.
func NewOperation(id OperationID, description string, before, after StateSnapshot) Operation {
	return Operation{
		ID:          id,
		Description: description,
		Before:      before,
		After:       after,
		Timestamp:   uint64(time.Now().Unix()),
	}
}

// MemorySize returns the bytes held by both snapshots.
func (o *Operation) MemorySize() int {
	return o.Before.Size + o.After.Size
}

// OperationGroup is the unit of undo/redo: all contained operations are
// undone or redone together.
type OperationGroup struct {
	ID          OperationID
	Description string
	Operations  []Operation
	Timestamp   uint64
}

// NewGroup returns an empty group stamped with the current time.
func NewGroup(id OperationID, description string) OperationGroup {
	return OperationGroup{
		ID:          id,
		Description: description,
		Timestamp:   uint64(time.Now().Unix()),
	}
}

// Add appends an operation to the group.
func (g *OperationGroup) Add(op Operation) {
	g.Operations = append(g.Operations, op)
}

// MemorySize returns the total bytes held by all operations in the group.
func (g *OperationGroup) MemorySize() int {
	total := 0
	for i := range g.Operations {
		total += g.Operations[i].MemorySize()
	}
	return total
}

// Count returns the number of operations in the group.
func (g *OperationGroup) Count() int {
	return len(g.Operations)
}

// Stats summarizes history state for debug overlays.
type Stats struct {
	UndoCount  int
	RedoCount  int
	MemoryUsed int
	MaxDepth   int
}

// History keeps the undo and redo stacks. Both are deques of groups: the
// back is the most recent entry, the front is the oldest and the first to
// be evicted when the undo stack outgrows MaxDepth. Only the undo stack
// counts toward memory accounting; redo entries are duplicates awaiting
// possible replay.
type History struct {
	undoStack  []OperationGroup
	redoStack  []OperationGroup
	nextID     uint64
	maxDepth   int
	memoryUsed int
}

// New returns a history with the default maximum depth.
func New() *History {
	return NewWithDepth(DefaultMaxDepth)
}

// NewWithDepth returns a history that keeps at most maxDepth undo groups.
func NewWithDepth(maxDepth int) *History {
	return &History{nextID: 1, maxDepth: maxDepth}
}

// BeginOperation allocates and returns a fresh operation ID. It has no
// other side effect; nothing is recorded until Commit.
func (h *History) BeginOperation(description string) OperationID {
	id := OperationID(h.nextID)
	h.nextID++
	return id
}

// SetMaxDepth changes the maximum undo depth, evicting the oldest groups
// immediately if the stack already exceeds it. Depths below 1 clamp to 1.
func (h *History) SetMaxDepth(depth int) {
	if depth < 1 {
		depth = 1
	}
	h.maxDepth = depth
	for len(h.undoStack) > h.maxDepth {
		old := h.undoStack[0]
		h.undoStack = h.undoStack[1:]
		h.memoryUsed -= old.MemorySize()
		if h.memoryUsed < 0 {
			h.memoryUsed = 0
		}
	}
}

// Commit pushes a group onto the undo stack. A group with no operations is
// silently dropped. Committing clears the redo stack: any new edit
// invalidates redo history. The oldest groups are evicted once the stack
// exceeds MaxDepth, with their memory subtracted.
func (h *History) Commit(group OperationGroup) error {
	if len(group.Operations) == 0 {
		return nil
	}

	h.redoStack = h.redoStack[:0]

	h.memoryUsed += group.MemorySize()
	h.undoStack = append(h.undoStack, group)

	for len(h.undoStack) > h.maxDepth {
		old := h.undoStack[0]
		h.undoStack = h.undoStack[1:]
		h.memoryUsed -= old.MemorySize()
		if h.memoryUsed < 0 {
			h.memoryUsed = 0
		}
	}
	return nil
}

// Undo pops the most recent group off the undo stack, moves it to the redo
// stack, and returns it so the caller can apply its before snapshots in
// reverse order. Returns ErrNothingToUndo on an empty stack.
func (h *History) Undo() (OperationGroup, error) {
	if len(h.undoStack) == 0 {
		return OperationGroup{}, ErrNothingToUndo
	}
	group := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.memoryUsed -= group.MemorySize()
	if h.memoryUsed < 0 {
		h.memoryUsed = 0
	}
	h.redoStack = append(h.redoStack, group)
	return group, nil
}

// Redo pops the most recent group off the redo stack, moves it back to the
// undo stack, and returns it so the caller can apply its after snapshots.
// Returns ErrNothingToRedo on an empty stack.
func (h *History) Redo() (OperationGroup, error) {
	if len(h.redoStack) == 0 {
		return OperationGroup{}, ErrNothingToRedo
	}
	group := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.memoryUsed += group.MemorySize()
	h.undoStack = append(h.undoStack, group)
	return group, nil
}

// CanUndo reports whether the undo stack is non-empty.
func (h *History) CanUndo() bool {
	return len(h.undoStack) > 0
}

// CanRedo reports whether the redo stack is non-empty.
func (h *History) CanRedo() bool {
	return len(h.redoStack) > 0
}

// UndoDepth returns the number of groups on the undo stack.
func (h *History) UndoDepth() int {
	return len(h.undoStack)
}

// RedoDepth returns the number of groups on the redo stack.
func (h *History) RedoDepth() int {
	return len(h.redoStack)
}

// Clear empties both stacks and zeroes the memory counter. Called on
// new-scene/load-scene, since old history refers to an obsolete state space.
func (h *History) Clear() {
	h.undoStack = h.undoStack[:0]
	h.redoStack = h.redoStack[:0]
	h.memoryUsed = 0
}

// UndoDescription returns the description of the group Undo would return,
// for UI display ("Undo: Move Entity"). Empty string if there is none.
func (h *History) UndoDescription() string {
	if len(h.undoStack) == 0 {
		return ""
	}
	return h.undoStack[len(h.undoStack)-1].Description
}

// RedoDescription returns the description of the group Redo would return.
// Empty string if there is none.
func (h *History) RedoDescription() string {
	if len(h.redoStack) == 0 {
		return ""
	}
	return h.redoStack[len(h.redoStack)-1].Description
}

// MemoryUsed returns the bytes held by groups on the undo stack.
func (h *History) MemoryUsed() int {
	return h.memoryUsed
}

// Stats returns current stack depths and memory use.
func (h *History) Stats() Stats {
	return Stats{
		UndoCount:  len(h.undoStack),
		RedoCount:  len(h.redoStack),
		MemoryUsed: h.memoryUsed,
		MaxDepth:   h.maxDepth,
	}
}
