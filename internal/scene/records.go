package scene

import (
	"bytes"
	"encoding/gob"
)

// EntityRecord pairs an entity ID with its data; the flat form used by
// snapshots, prefab instantiation and play-mode backups.
type EntityRecord struct {
	ID   EntityID
	Data EntityData
}

// Records returns all entities as records in insertion order.
func (s *Scene) Records() []EntityRecord {
	out := make([]EntityRecord, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, EntityRecord{ID: id, Data: *s.entities[id]})
	}
	return out
}

// SetRecords replaces the scene contents with the given records, preserving
// their order. Duplicate IDs keep the first occurrence.
func (s *Scene) SetRecords(records []EntityRecord) {
	s.entities = make(map[EntityID]*EntityData, len(records))
	s.order = s.order[:0]
	for _, r := range records {
		s.Insert(r.ID, r.Data)
	}
}

// GobEncode encodes the scene as its ordered record list, so snapshots and
// play-mode backups round-trip through the binary codec.
func (s *Scene) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s.Records()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode rebuilds the scene from an encoded record list.
func (s *Scene) GobDecode(data []byte) error {
	var records []EntityRecord
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&records); err != nil {
		return err
	}
	s.SetRecords(records)
	return nil
}
