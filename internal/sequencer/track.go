package sequencer

import (
	"sort"

	"github.com/chewxy/math32"
	"github.com/google/uuid"
)

// TimeEpsilon is the window within which two keyframe times are treated
// as the same time for at-time lookups and replacement.
const TimeEpsilon = 0.001

// TrackID uniquely identifies a track within a sequence.
type TrackID struct {
	uuid.UUID
}

// NewTrackID returns a fresh random track ID.
func NewTrackID() TrackID {
	return TrackID{uuid.New()}
}

// IsNil reports whether the ID is the zero value.
func (id TrackID) IsNil() bool {
	return id.UUID == uuid.Nil
}

// TrackType categorizes what a track animates.
type TrackType string

const (
	TrackTransform TrackType = "transform"
	TrackProperty  TrackType = "property"
	TrackEvent     TrackType = "event"
	TrackAudio     TrackType = "audio"
	TrackCamera    TrackType = "camera"
	TrackCustom    TrackType = "custom"
)

// Color returns the default timeline tint for the track type.
func (t TrackType) Color() [3]uint8 {
	switch t {
	case TrackTransform:
		return [3]uint8{100, 150, 255}
	case TrackProperty:
		return [3]uint8{150, 255, 100}
	case TrackEvent:
		return [3]uint8{255, 200, 100}
	case TrackAudio:
		return [3]uint8{200, 100, 255}
	case TrackCamera:
		return [3]uint8{255, 100, 150}
	default:
		return [3]uint8{150, 150, 150}
	}
}

// Track is one animated channel: an always-time-sorted keyframe list
// plus an optional binding to a scene target. Duplicate times are
// allowed; stable sorting keeps the later-added keyframe after the
// earlier one.
type Track struct {
	ID        TrackID        `yaml:"id"`
	Name      string         `yaml:"name"`
	Type      TrackType      `yaml:"type"`
	Binding   *EntityBinding `yaml:"binding,omitempty"`
	Keyframes []Keyframe     `yaml:"keyframes,omitempty"`
	Muted     bool           `yaml:"muted,omitempty"`
	Locked    bool           `yaml:"locked,omitempty"`
	Color     *[3]uint8      `yaml:"color,omitempty"`
}

// NewTrack returns an empty track of the given type.
func NewTrack(name string, t TrackType) *Track {
	return &Track{
		ID:   NewTrackID(),
		Name: name,
		Type: t,
	}
}

func (t *Track) sortKeyframes() {
	sort.SliceStable(t.Keyframes, func(i, j int) bool {
		return t.Keyframes[i].Time < t.Keyframes[j].Time
	})
}

// AddKeyframe inserts a keyframe, keeping the list time-sorted.
func (t *Track) AddKeyframe(kf Keyframe) {
	t.Keyframes = append(t.Keyframes, kf)
	t.sortKeyframes()
}

// RemoveKeyframe deletes the keyframe with the given ID, reporting
// whether one was removed.
func (t *Track) RemoveKeyframe(id KeyframeID) bool {
	for i := range t.Keyframes {
		if t.Keyframes[i].ID == id {
			t.Keyframes = append(t.Keyframes[:i], t.Keyframes[i+1:]...)
			return true
		}
	}
	return false
}

// Keyframe returns the keyframe with the given ID, or nil.
func (t *Track) Keyframe(id KeyframeID) *Keyframe {
	for i := range t.Keyframes {
		if t.Keyframes[i].ID == id {
			return &t.Keyframes[i]
		}
	}
	return nil
}

// KeyframeAt returns the first keyframe within TimeEpsilon of time.
func (t *Track) KeyframeAt(time float32) *Keyframe {
	for i := range t.Keyframes {
		if math32.Abs(t.Keyframes[i].Time-time) < TimeEpsilon {
			return &t.Keyframes[i]
		}
	}
	return nil
}

// HasKeyframeNear reports whether any keyframe lies within threshold of
// time.
func (t *Track) HasKeyframeNear(time, threshold float32) bool {
	for i := range t.Keyframes {
		if math32.Abs(t.Keyframes[i].Time-time) < threshold {
			return true
		}
	}
	return false
}

// NearestKeyframe returns the keyframe closest in time, or nil on an
// empty track.
func (t *Track) NearestKeyframe(time float32) *Keyframe {
	var best *Keyframe
	bestDist := float32(math32.MaxFloat32)
	for i := range t.Keyframes {
		d := math32.Abs(t.Keyframes[i].Time - time)
		if d < bestDist {
			bestDist = d
			best = &t.Keyframes[i]
		}
	}
	return best
}

// SetKeyframeAt replaces the value of an existing keyframe near time, or
// inserts a new linear keyframe when none is close enough.
func (t *Track) SetKeyframeAt(time float32, value KeyframeValue) {
	if kf := t.KeyframeAt(time); kf != nil {
		kf.Value = value
		return
	}
	t.AddKeyframe(NewKeyframe(time, value))
}

// MoveKeyframe shifts a keyframe to a new time and re-sorts.
func (t *Track) MoveKeyframe(id KeyframeID, newTime float32) {
	if kf := t.Keyframe(id); kf != nil {
		kf.Time = newTime
	}
	t.sortKeyframes()
}

// DuplicateKeyframe copies a keyframe to a new time under a fresh ID.
// The second return is false when the source does not exist.
func (t *Track) DuplicateKeyframe(id KeyframeID, newTime float32) (KeyframeID, bool) {
	src := t.Keyframe(id)
	if src == nil {
		return KeyframeID{}, false
	}
	dup := *src
	dup.ID = NewKeyframeID()
	dup.Time = newTime
	t.AddKeyframe(dup)
	return dup.ID, true
}

// KeyframesInRange returns keyframes with start <= time <= end.
func (t *Track) KeyframesInRange(start, end float32) []*Keyframe {
	var out []*Keyframe
	for i := range t.Keyframes {
		if t.Keyframes[i].Time >= start && t.Keyframes[i].Time <= end {
			out = append(out, &t.Keyframes[i])
		}
	}
	return out
}

// Duration is the time of the last keyframe, or 0 on an empty track.
func (t *Track) Duration() float32 {
	if len(t.Keyframes) == 0 {
		return 0
	}
	return t.Keyframes[len(t.Keyframes)-1].Time
}

// KeyframeCount returns the number of keyframes.
func (t *Track) KeyframeCount() int {
	return len(t.Keyframes)
}

// EffectiveColor is the track's override color, or its type's default.
func (t *Track) EffectiveColor() [3]uint8 {
	if t.Color != nil {
		return *t.Color
	}
	return t.Type.Color()
}

// ScaleTime multiplies every keyframe time by factor.
func (t *Track) ScaleTime(factor float32) {
	for i := range t.Keyframes {
		t.Keyframes[i].Time *= factor
	}
}

// OffsetTime shifts every keyframe by delta, clamping at zero.
func (t *Track) OffsetTime(delta float32) {
	for i := range t.Keyframes {
		t.Keyframes[i].Time = math32.Max(t.Keyframes[i].Time+delta, 0)
	}
	t.sortKeyframes()
}

// Reverse mirrors all keyframe times across the track's duration.
func (t *Track) Reverse() {
	if len(t.Keyframes) < 2 {
		return
	}
	d := t.Duration()
	for i := range t.Keyframes {
		t.Keyframes[i].Time = d - t.Keyframes[i].Time
	}
	t.sortKeyframes()
}

// Evaluate samples the track at a time. Times before the first keyframe
// hold the first value; times past the last hold the last value; between
// keyframes the earlier keyframe's interpolation mode blends toward the
// later one. Returns false on an empty track or a mixed-kind pair.
func (t *Track) Evaluate(time float32) (KeyframeValue, bool) {
	if len(t.Keyframes) == 0 {
		return KeyframeValue{}, false
	}

	next := -1
	for i := range t.Keyframes {
		if t.Keyframes[i].Time >= time {
			next = i
			break
		}
	}

	switch {
	case next == -1:
		// Past the last keyframe: hold last.
		return t.Keyframes[len(t.Keyframes)-1].Value, true
	case next == 0:
		// At or before the first keyframe: hold first.
		return t.Keyframes[0].Value, true
	default:
		a := &t.Keyframes[next-1]
		b := &t.Keyframes[next]
		span := b.Time - a.Time
		if math32.Abs(span) < 0.0001 {
			return b.Value, true
		}
		frac := (time - a.Time) / span
		return a.Value.Interpolate(b.Value, frac, a.Interpolation)
	}
}
