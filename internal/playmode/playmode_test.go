package playmode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scene-editor/internal/scene"
)

func buildScene(t *testing.T) (*scene.Scene, *scene.Selection) {
	t.Helper()
	s := scene.NewScene()
	a := s.Add(scene.NewEntityData("Player"))
	s.Add(scene.NewEntityData("Camera"))
	sel := &scene.Selection{}
	sel.Add(a)
	return s, sel
}

func TestPlayBacksUpAndStopRestores(t *testing.T) {
	s, sel := buildScene(t)
	m := NewManager()

	require.True(t, m.Play(s, sel))
	assert.Equal(t, StatePlaying, m.State)

	// Simulate gameplay wrecking the scene and the selection.
	spawned := s.Add(scene.NewEntityData("Bullet"))
	s.Get(spawned).Transform.Position = [3]float32{5, 0, 0}
	for _, id := range s.IDs() {
		s.Get(id).Transform.Position[1] = -100
	}
	sel.Clear()

	restored, restoredSel := m.Stop()
	require.NotNil(t, restored)
	require.NotNil(t, restoredSel)
	assert.Equal(t, StateStopped, m.State)

	assert.Equal(t, 2, restored.Len())
	for _, id := range restored.IDs() {
		assert.Equal(t, float32(0), restored.Get(id).Transform.Position[1])
	}
	assert.Equal(t, 1, restoredSel.Len())
}

func TestPlayWhilePlayingIsRejected(t *testing.T) {
	s, sel := buildScene(t)
	m := NewManager()

	require.True(t, m.Play(s, sel))
	assert.False(t, m.Play(s, sel))
}

func TestPauseAndResume(t *testing.T) {
	s, sel := buildScene(t)
	m := NewManager()

	assert.False(t, m.Pause(), "pause while stopped")

	require.True(t, m.Play(s, sel))
	require.True(t, m.Pause())
	assert.Equal(t, StatePaused, m.State)
	assert.False(t, m.Pause(), "pause while already paused")

	require.True(t, m.Play(s, sel), "play resumes from paused")
	assert.Equal(t, StatePlaying, m.State)
}

func TestTogglePause(t *testing.T) {
	s, sel := buildScene(t)
	m := NewManager()

	assert.False(t, m.TogglePause(), "toggle while stopped")

	require.True(t, m.Play(s, sel))
	require.True(t, m.TogglePause())
	assert.Equal(t, StatePaused, m.State)
	require.True(t, m.TogglePause())
	assert.Equal(t, StatePlaying, m.State)
}

func TestStopWhileStoppedReturnsNil(t *testing.T) {
	m := NewManager()
	restored, sel := m.Stop()
	assert.Nil(t, restored)
	assert.Nil(t, sel)
}

func TestUpdateAccumulatesFixedSteps(t *testing.T) {
	s, sel := buildScene(t)
	m := NewManager()
	require.True(t, m.Play(s, sel))

	const step = 1.0 / 60.0

	assert.Equal(t, 0, m.Update(step/2, step), "half a step accumulates")
	assert.Equal(t, 1, m.Update(step/2, step), "second half completes it")
	assert.Equal(t, 3, m.Update(3*step, step))
	assert.Equal(t, uint64(3), m.FrameCount)
	assert.InDelta(t, 4*step, m.ElapsedTime, 1e-9)
}

func TestUpdateIgnoredUnlessPlaying(t *testing.T) {
	s, sel := buildScene(t)
	m := NewManager()

	assert.Equal(t, 0, m.Update(1, 1.0/60.0), "stopped")

	require.True(t, m.Play(s, sel))
	require.True(t, m.Pause())
	assert.Equal(t, 0, m.Update(1, 1.0/60.0), "paused")
}

func TestUpdateCapsCatchUpSteps(t *testing.T) {
	s, sel := buildScene(t)
	m := NewManager()
	require.True(t, m.Play(s, sel))

	const step = 1.0 / 60.0
	steps := m.Update(2.0, step) // two seconds of stall
	assert.Equal(t, maxStepsPerFrame, steps)

	// The leftover backlog is discarded, not replayed next frame.
	assert.Equal(t, 0, m.Update(0, step))
}

func TestTimeScale(t *testing.T) {
	s, sel := buildScene(t)
	m := NewManager()
	require.True(t, m.Play(s, sel))

	const step = 1.0 / 60.0

	m.SetTimeScale(2)
	assert.Equal(t, 2, m.Update(step, step))

	m.SetTimeScale(0)
	assert.Equal(t, 0, m.Update(step, step), "frozen at scale zero")

	m.SetTimeScale(-5)
	assert.Equal(t, float32(0), m.TimeScale)
	m.SetTimeScale(50)
	assert.Equal(t, float32(10), m.TimeScale)

	m.ResetTimeScale()
	assert.Equal(t, float32(1), m.TimeScale)
}

func TestStepFrameOnlyWhilePaused(t *testing.T) {
	s, sel := buildScene(t)
	m := NewManager()
	const step = 1.0 / 60.0

	assert.False(t, m.StepFrame(step), "stopped")

	require.True(t, m.Play(s, sel))
	assert.False(t, m.StepFrame(step), "playing")

	require.True(t, m.Pause())
	frames := m.FrameCount
	require.True(t, m.StepFrame(step))
	assert.Equal(t, frames+1, m.FrameCount)
	assert.InDelta(t, step, m.ElapsedTime, 1e-9)
}

func TestEditingDisabled(t *testing.T) {
	s, sel := buildScene(t)
	m := NewManager()

	assert.False(t, m.EditingDisabled())
	require.True(t, m.Play(s, sel))
	assert.True(t, m.EditingDisabled())
	require.True(t, m.Pause())
	assert.True(t, m.EditingDisabled())
	m.Stop()
	assert.False(t, m.EditingDisabled())
}

func TestStatusText(t *testing.T) {
	assert.Equal(t, "Edit Mode", StateStopped.StatusText())
	assert.Equal(t, "Playing", StatePlaying.StatusText())
	assert.Equal(t, "Paused", StatePaused.StatusText())
}

type countingSim struct{ steps int }

func (c *countingSim) Step(dt float32, s *scene.Scene) { c.steps++ }

func TestSimulatorDrivenBySteps(t *testing.T) {
	s, sel := buildScene(t)
	m := NewManager()
	require.True(t, m.Play(s, sel))

	sim := &countingSim{}
	const step = 1.0 / 60.0
	for i := 0; i < m.Update(5*step, step); i++ {
		sim.Step(float32(step), s)
	}
	assert.Equal(t, 5, sim.steps)
}
