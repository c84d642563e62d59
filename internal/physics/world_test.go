package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scene-editor/internal/scene"
)

func TestGravityIntegration(t *testing.T) {
	w := NewWorld()
	b := NewBody(scene.NewEntityID(), [3]float32{0, 10, 0}, [3]float32{1, 1, 1}, 1, false)
	w.AddBody(b)

	w.Step(1)
	assert.InDelta(t, -9.8, b.Velocity[1], 1e-4)
	assert.InDelta(t, 0.2, b.Position[1], 1e-4)
}

func TestStaticBodyNeverMoves(t *testing.T) {
	w := NewWorld()
	b := NewBody(scene.NewEntityID(), [3]float32{0, 5, 0}, [3]float32{1, 1, 1}, 1, true)
	w.AddBody(b)

	w.Step(1)
	assert.Equal(t, [3]float32{0, 5, 0}, b.Position)
	assert.Equal(t, [3]float32{0, 0, 0}, b.Velocity)
}

func TestGravityFlagOff(t *testing.T) {
	w := NewWorld()
	b := NewBody(scene.NewEntityID(), [3]float32{0, 5, 0}, [3]float32{1, 1, 1}, 1, false)
	b.Gravity = false
	b.Velocity = [3]float32{1, 0, 0}
	w.AddBody(b)

	w.Step(1)
	assert.Equal(t, float32(1), b.Position[0], "velocity still integrates")
	assert.Equal(t, float32(5), b.Position[1], "no fall")
}

func TestDynamicBodyRestsOnStaticFloor(t *testing.T) {
	w := NewWorld()
	floor := NewBody(scene.NewEntityID(), [3]float32{0, 0, 0}, [3]float32{10, 1, 10}, 1, true)
	box := NewBody(scene.NewEntityID(), [3]float32{0, 2, 0}, [3]float32{1, 1, 1}, 1, false)
	w.AddBody(floor)
	w.AddBody(box)

	for i := 0; i < 120; i++ {
		w.Step(1.0 / 60.0)
	}

	// Floor half-height 0.5 plus box half-height 0.5.
	assert.InDelta(t, 1.0, box.Position[1], 0.05)
	assert.Equal(t, [3]float32{0, 0, 0}, floor.Position)
	assert.Equal(t, float32(0), box.Velocity[1])
}

func TestDynamicPairSplitsByMass(t *testing.T) {
	w := NewWorld()
	w.SetGravity([3]float32{0, 0, 0})
	heavy := NewBody(scene.NewEntityID(), [3]float32{0, 0, 0}, [3]float32{1, 1, 1}, 3, false)
	light := NewBody(scene.NewEntityID(), [3]float32{0.5, 0, 0}, [3]float32{1, 1, 1}, 1, false)
	w.AddBody(heavy)
	w.AddBody(light)

	w.Step(1.0 / 60.0)

	// Overlap 0.5 along X; the light body takes the larger share.
	assert.Less(t, heavy.Position[0], float32(0))
	assert.Greater(t, light.Position[0], float32(0.5))
	gap := light.Position[0] - heavy.Position[0]
	assert.InDelta(t, 1.0, gap, 1e-4)
	assert.Greater(t, light.Position[0]-0.5, -(heavy.Position[0]))
}

func TestFromSceneAndApply(t *testing.T) {
	s := scene.NewScene()

	falling := scene.NewEntityData("Crate")
	falling.Transform.Position = [3]float32{0, 10, 0}
	falling.Components = []scene.Component{
		{RigidBody: &scene.RigidBody{Mass: 2, Gravity: true}},
	}
	crate := s.Add(falling)

	ground := scene.NewEntityData("Ground")
	ground.Static = true
	ground.Components = []scene.Component{
		{RigidBody: &scene.RigidBody{Mass: 1, Gravity: false}},
	}
	s.Add(ground)

	inert := s.Add(scene.NewEntityData("Decoration"))

	w := FromScene(s)
	require.Len(t, w.Bodies, 2, "entities without rigid bodies are skipped")
	assert.True(t, w.Bodies[1].Static)

	w.Step(1)
	w.Apply(s)

	assert.Less(t, s.Get(crate).Transform.Position[1], float32(10))
	assert.Equal(t, [3]float32{0, 0, 0}, s.Get(inert).Transform.Position)
}

func TestSimulatorStepsScene(t *testing.T) {
	s := scene.NewScene()
	data := scene.NewEntityData("Ball")
	data.Transform.Position = [3]float32{0, 5, 0}
	data.Components = []scene.Component{
		{RigidBody: &scene.RigidBody{Mass: 1, Gravity: true}},
	}
	ball := s.Add(data)

	sim := NewSimulator()
	for i := 0; i < 60; i++ {
		sim.Step(1.0/60.0, s)
	}

	assert.Less(t, s.Get(ball).Transform.Position[1], float32(5))
}
