package sequencer

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// SequenceID uniquely identifies a sequence.
type SequenceID struct {
	uuid.UUID
}

// NewSequenceID returns a fresh random sequence ID.
func NewSequenceID() SequenceID {
	return SequenceID{uuid.New()}
}

// Sequence groups tracks under a shared timeline. Tracks are kept in
// insertion order so the timeline UI and saved files are deterministic.
// Duration is authored and may exceed the content; FrameRate only
// affects time/frame display conversion, not evaluation.
type Sequence struct {
	ID        SequenceID
	Name      string
	Duration  float32
	FrameRate float32
	Looping   bool

	tracks map[TrackID]*Track
	order  []TrackID
}

// NewSequence returns an empty 10-second sequence at 30 fps.
func NewSequence(name string) *Sequence {
	return &Sequence{
		ID:        NewSequenceID(),
		Name:      name,
		Duration:  10,
		FrameRate: 30,
		tracks:    make(map[TrackID]*Track),
	}
}

// AddTrack inserts a track and returns its ID. A duplicate ID replaces
// the existing track in place.
func (s *Sequence) AddTrack(t *Track) TrackID {
	if _, ok := s.tracks[t.ID]; !ok {
		s.order = append(s.order, t.ID)
	}
	s.tracks[t.ID] = t
	return t.ID
}

// RemoveTrack deletes a track, returning it or nil.
func (s *Sequence) RemoveTrack(id TrackID) *Track {
	t, ok := s.tracks[id]
	if !ok {
		return nil
	}
	delete(s.tracks, id)
	for i, tid := range s.order {
		if tid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return t
}

// Track returns the track with the given ID, or nil.
func (s *Sequence) Track(id TrackID) *Track {
	return s.tracks[id]
}

// Tracks returns all tracks in insertion order.
func (s *Sequence) Tracks() []*Track {
	out := make([]*Track, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.tracks[id])
	}
	return out
}

// TrackCount returns the number of tracks.
func (s *Sequence) TrackCount() int {
	return len(s.tracks)
}

// ContentDuration is the latest keyframe time across all tracks, which
// may be shorter than the authored Duration.
func (s *Sequence) ContentDuration() float32 {
	var max float32
	for _, id := range s.order {
		if d := s.tracks[id].Duration(); d > max {
			max = d
		}
	}
	return max
}

// TimeToFrame converts seconds to a frame number at the sequence rate.
func (s *Sequence) TimeToFrame(time float32) uint32 {
	return uint32(time * s.FrameRate)
}

// FrameToTime converts a frame number back to seconds.
func (s *Sequence) FrameToTime(frame uint32) float32 {
	return float32(frame) / s.FrameRate
}

// sequenceDoc is the on-disk form of a sequence.
type sequenceDoc struct {
	ID        SequenceID `yaml:"id"`
	Name      string     `yaml:"name"`
	Duration  float32    `yaml:"duration"`
	FrameRate float32    `yaml:"frameRate"`
	Looping   bool       `yaml:"looping,omitempty"`
	Tracks    []*Track   `yaml:"tracks,omitempty"`
}

// MarshalYAML encodes the sequence with tracks in insertion order.
func (s *Sequence) MarshalYAML() (any, error) {
	return sequenceDoc{
		ID:        s.ID,
		Name:      s.Name,
		Duration:  s.Duration,
		FrameRate: s.FrameRate,
		Looping:   s.Looping,
		Tracks:    s.Tracks(),
	}, nil
}

// UnmarshalYAML rebuilds the track map from the ordered list.
func (s *Sequence) UnmarshalYAML(node *yaml.Node) error {
	var doc sequenceDoc
	if err := node.Decode(&doc); err != nil {
		return err
	}
	s.ID = doc.ID
	s.Name = doc.Name
	s.Duration = doc.Duration
	s.FrameRate = doc.FrameRate
	s.Looping = doc.Looping
	s.tracks = make(map[TrackID]*Track, len(doc.Tracks))
	s.order = s.order[:0]
	for _, t := range doc.Tracks {
		s.AddTrack(t)
	}
	return nil
}

// Save writes the sequence as YAML to path.
func (s *Sequence) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal sequence: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadSequence reads a YAML sequence file from path.
func LoadSequence(path string) (*Sequence, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := NewSequence("")
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse sequence %s: %w", path, err)
	}
	return s, nil
}
