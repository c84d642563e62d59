// Package history implements the undo/redo engine: serialized state
// snapshots grouped into operations, kept on bounded undo/redo stacks.
// The engine is a pure ledger; it never looks inside snapshot bytes, and
// applying them back to live state is the caller's job.
package history

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"time"
)

// StateSnapshot is an immutable serialized blob of component state, taken
// before or after an operation. Size is tracked so History can account
// memory without touching the data.
type StateSnapshot struct {
	Data      []byte
	Timestamp uint64
	Size      int
}

// NewSnapshot wraps raw bytes in a snapshot stamped with the current time.
func NewSnapshot(data []byte) StateSnapshot {
	return StateSnapshot{
		Data:      data,
		Timestamp: uint64(time.Now().Unix()),
		Size:      len(data),
	}
}

// SnapshotValue gob-encodes value into a new snapshot.
func SnapshotValue(value any) (StateSnapshot, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(value); err != nil {
		return StateSnapshot{}, fmt.Errorf("snapshot encode: %w", err)
	}
	return NewSnapshot(buf.Bytes()), nil
}

// Decode gob-decodes the snapshot into out, which must be a pointer to the
// same type the snapshot was taken from.
func (s *StateSnapshot) Decode(out any) error {
	if err := gob.NewDecoder(bytes.NewReader(s.Data)).Decode(out); err != nil {
		return fmt.Errorf("snapshot decode: %w", err)
	}
	return nil
}

// IsEmpty reports whether the snapshot holds no data.
func (s *StateSnapshot) IsEmpty() bool {
	return len(s.Data) == 0
}
