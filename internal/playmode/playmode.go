// Package playmode implements in-editor preview: entering play backs up
// the scene and selection, the simulation runs on a fixed timestep, and
// stopping restores the backup so edits made by gameplay never leak into
// the authored scene.
package playmode

import (
	"bytes"
	"encoding/gob"

	"github.com/jinzhu/copier"
	"github.com/sirupsen/logrus"

	"scene-editor/internal/scene"
)

// maxStepsPerFrame caps catch-up simulation steps in a single update so
// a long stall cannot spiral (each slow frame producing more work than
// the next can absorb).
const maxStepsPerFrame = 8

// PlayState is the preview mode.
type PlayState string

const (
	StateStopped PlayState = "stopped"
	StatePlaying PlayState = "playing"
	StatePaused  PlayState = "paused"
)

// IsActive reports whether preview is running or paused (editing locked).
func (s PlayState) IsActive() bool {
	return s == StatePlaying || s == StatePaused
}

// StatusText is the state label shown in the toolbar.
func (s PlayState) StatusText() string {
	switch s {
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	default:
		return "Edit Mode"
	}
}

// Simulator advances gameplay state by one fixed step. The toy physics
// preview implements this; tests use stubs.
type Simulator interface {
	Step(dt float32, s *scene.Scene)
}

// Manager drives the play-mode lifecycle and the fixed-timestep clock.
type Manager struct {
	State     PlayState
	TimeScale float32

	FrameCount  uint64
	ElapsedTime float64

	sceneBackup     []byte
	selectionBackup *scene.Selection
	accumulated     float64
	log             *logrus.Entry
}

// NewManager returns a stopped manager at normal speed.
func NewManager() *Manager {
	return &Manager{
		State:     StateStopped,
		TimeScale: 1,
		log:       logrus.WithField("system", "playmode"),
	}
}

// Play enters play mode, snapshotting the scene and selection for
// restore on Stop. From paused it resumes; while already playing it
// reports false.
func (m *Manager) Play(s *scene.Scene, sel *scene.Selection) bool {
	switch m.State {
	case StateStopped:
		backup, err := encodeScene(s)
		if err != nil {
			m.log.WithError(err).Error("scene backup failed, refusing to enter play mode")
			return false
		}
		var selCopy scene.Selection
		if err := copier.Copy(&selCopy, sel); err != nil {
			m.log.WithError(err).Error("selection backup failed, refusing to enter play mode")
			return false
		}
		m.sceneBackup = backup
		m.selectionBackup = &selCopy
		m.State = StatePlaying
		m.FrameCount = 0
		m.ElapsedTime = 0
		m.accumulated = 0
		m.log.Info("entered play mode")
		return true
	case StatePaused:
		m.State = StatePlaying
		m.log.Info("resumed play mode")
		return true
	default:
		return false
	}
}

// Pause suspends a running preview.
func (m *Manager) Pause() bool {
	if m.State != StatePlaying {
		return false
	}
	m.State = StatePaused
	m.log.Info("paused play mode")
	return true
}

// TogglePause flips between playing and paused. No-op while stopped.
func (m *Manager) TogglePause() bool {
	switch m.State {
	case StatePlaying:
		return m.Pause()
	case StatePaused:
		m.State = StatePlaying
		m.log.Info("resumed play mode")
		return true
	default:
		return false
	}
}

// Stop leaves play mode and returns the backed-up scene and selection,
// or nils if no preview was active. The caller swaps them back in.
func (m *Manager) Stop() (*scene.Scene, *scene.Selection) {
	if !m.State.IsActive() {
		return nil, nil
	}

	m.State = StateStopped
	m.FrameCount = 0
	m.ElapsedTime = 0
	m.accumulated = 0

	backup := m.sceneBackup
	sel := m.selectionBackup
	m.sceneBackup = nil
	m.selectionBackup = nil
	m.log.Info("stopped play mode")

	if backup == nil {
		return nil, sel
	}
	restored, err := decodeScene(backup)
	if err != nil {
		m.log.WithError(err).Error("scene restore failed")
		return nil, sel
	}
	return restored, sel
}

// Update accumulates scaled frame time and returns how many fixed steps
// the simulation should run. Returns 0 unless playing.
func (m *Manager) Update(dt, fixedStep float64) int {
	if m.State != StatePlaying {
		return 0
	}

	scaled := dt * float64(m.TimeScale)
	m.ElapsedTime += scaled
	m.accumulated += scaled
	m.FrameCount++

	steps := 0
	for m.accumulated >= fixedStep {
		m.accumulated -= fixedStep
		steps++
		if steps >= maxStepsPerFrame {
			m.accumulated = 0
			break
		}
	}
	return steps
}

// StepFrame advances exactly one fixed step while paused (frame-by-frame
// debugging). Reports whether a step was taken.
func (m *Manager) StepFrame(fixedStep float64) bool {
	if m.State != StatePaused {
		return false
	}
	m.ElapsedTime += fixedStep
	m.FrameCount++
	return true
}

// EditingDisabled reports whether scene editing should be locked.
func (m *Manager) EditingDisabled() bool {
	return m.State.IsActive()
}

// SetTimeScale sets simulation speed, clamped to [0, 10].
func (m *Manager) SetTimeScale(scale float32) {
	if scale < 0 {
		scale = 0
	}
	if scale > 10 {
		scale = 10
	}
	m.TimeScale = scale
}

// ResetTimeScale restores normal speed.
func (m *Manager) ResetTimeScale() {
	m.TimeScale = 1
}

func encodeScene(s *scene.Scene) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeScene(data []byte) (*scene.Scene, error) {
	s := scene.NewScene()
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(s); err != nil {
		return nil, err
	}
	return s, nil
}
