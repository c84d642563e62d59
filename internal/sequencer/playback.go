package sequencer

// eventWindow is roughly one frame at 60 fps: keyframes whose time fell
// within this window behind the cursor are staged as triggers.
const eventWindow = 0.016

// PlaybackState is the playback cursor's mode.
type PlaybackState string

const (
	StateStopped PlaybackState = "stopped"
	StatePlaying PlaybackState = "playing"
	StatePaused  PlaybackState = "paused"
	StateReverse PlaybackState = "reverse"
)

// EventTrigger is an event keyframe that fired during an update.
type EventTrigger struct {
	Track TrackID
	Name  string
}

// TrackValue is one track's evaluated value at the cursor time.
type TrackValue struct {
	Track TrackID
	Value KeyframeValue
}

// PlaybackController is a mutable time cursor over a sequence. It is not
// owned by the sequence: several independent cursors (preview and
// authoritative, say) may drive the same sequence.
type PlaybackController struct {
	Time  float32
	State PlaybackState
	Speed float32

	// Loop range overrides. When LoopEnd is set, looping is forced on
	// regardless of the sequence's Looping flag.
	LoopStart *float32
	LoopEnd   *float32

	pending []EventTrigger
}

// NewPlaybackController returns a stopped cursor at time zero.
func NewPlaybackController() *PlaybackController {
	return &PlaybackController{
		State: StateStopped,
		Speed: 1,
	}
}

// Play starts or resumes forward playback from the current time.
func (p *PlaybackController) Play() {
	p.State = StatePlaying
}

// PlayReverse unconditionally switches to reverse playback.
func (p *PlaybackController) PlayReverse() {
	p.State = StateReverse
}

// Pause suspends playback. Only a moving cursor can pause.
func (p *PlaybackController) Pause() {
	if p.State == StatePlaying || p.State == StateReverse {
		p.State = StatePaused
	}
}

// Stop halts playback and resets the cursor to the loop start (or zero).
func (p *PlaybackController) Stop() {
	p.State = StateStopped
	p.Time = p.startTime()
}

// TogglePlayback pauses a moving cursor and resumes a halted one.
func (p *PlaybackController) TogglePlayback() {
	switch p.State {
	case StatePlaying, StateReverse:
		p.Pause()
	default:
		p.Play()
	}
}

// IsPlaying reports whether the cursor is moving in either direction.
func (p *PlaybackController) IsPlaying() bool {
	return p.State == StatePlaying || p.State == StateReverse
}

// Seek jumps the cursor to a time, clamped at zero. State is unchanged.
func (p *PlaybackController) Seek(time float32) {
	if time < 0 {
		time = 0
	}
	p.Time = time
}

// SetLoopRange constrains playback to [start, end].
func (p *PlaybackController) SetLoopRange(start, end float32) {
	p.LoopStart = &start
	p.LoopEnd = &end
}

// ClearLoopRange removes the loop range override.
func (p *PlaybackController) ClearLoopRange() {
	p.LoopStart = nil
	p.LoopEnd = nil
}

func (p *PlaybackController) startTime() float32 {
	if p.LoopStart != nil {
		return *p.LoopStart
	}
	return 0
}

func (p *PlaybackController) endTime(seq *Sequence) float32 {
	if p.LoopEnd != nil {
		return *p.LoopEnd
	}
	return seq.Duration
}

// Update advances the cursor by dt (scaled by Speed) and stages event
// triggers. When the cursor crosses the end with looping active, the
// overshoot carries into the next pass instead of snapping to the start,
// so no time is lost at high speed or low frame rate. Without looping
// the cursor clamps at the boundary and stops.
func (p *PlaybackController) Update(dt float32, seq *Sequence) {
	switch p.State {
	case StatePlaying:
		p.Time += dt * p.Speed
		end := p.endTime(seq)
		if p.Time >= end {
			if seq.Looping || p.LoopEnd != nil {
				p.Time = p.startTime() + (p.Time - end)
			} else {
				p.Time = end
				p.State = StateStopped
			}
		}
	case StateReverse:
		p.Time -= dt * p.Speed
		start := p.startTime()
		if p.Time <= start {
			if seq.Looping || p.LoopStart != nil {
				p.Time = p.endTime(seq) - (start - p.Time)
			} else {
				p.Time = start
				p.State = StateStopped
			}
		}
	}

	p.collectEvents(seq)
}

// collectEvents stages event keyframes that fell within one frame behind
// the cursor. Muted tracks and non-event tracks never fire.
func (p *PlaybackController) collectEvents(seq *Sequence) {
	p.pending = p.pending[:0]

	for _, track := range seq.Tracks() {
		if track.Muted || track.Type != TrackEvent {
			continue
		}
		for _, kf := range track.KeyframesInRange(p.Time-eventWindow, p.Time) {
			if kf.Value.Kind == KindEvent {
				p.pending = append(p.pending, EventTrigger{Track: track.ID, Name: kf.Value.Event})
			}
		}
	}
}

// TakeEvents drains staged triggers. Delivery is at most once: events
// not taken before the next Update are replaced, not queued.
func (p *PlaybackController) TakeEvents() []EventTrigger {
	if len(p.pending) == 0 {
		return nil
	}
	out := make([]EventTrigger, len(p.pending))
	copy(out, p.pending)
	p.pending = p.pending[:0]
	return out
}

// CurrentFrame is the cursor position as a frame number of seq.
func (p *PlaybackController) CurrentFrame(seq *Sequence) uint32 {
	return seq.TimeToFrame(p.Time)
}

// EvaluateAll samples every non-muted track at the cursor time.
func (p *PlaybackController) EvaluateAll(seq *Sequence) []TrackValue {
	var out []TrackValue
	for _, track := range seq.Tracks() {
		if track.Muted {
			continue
		}
		if v, ok := track.Evaluate(p.Time); ok {
			out = append(out, TrackValue{Track: track.ID, Value: v})
		}
	}
	return out
}
