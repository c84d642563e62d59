package main

import (
	"github.com/sirupsen/logrus"

	"scene-editor/internal/config"
	"scene-editor/internal/editor"
	"scene-editor/internal/logger"
	"scene-editor/internal/physics"
	"scene-editor/internal/playmode"
	"scene-editor/internal/scene"
	"scene-editor/internal/sequencer"
)

// A headless editing session: spawn a small hierarchy, edit it through the
// undo history, animate one property and preview the result. The graphical
// frontend drives the same packages through the same calls.
func main() {
	console := logger.NewConsole()
	console.Attach(logrus.StandardLogger())
	log := logrus.WithField("system", "main")

	prefs, _ := config.Load()

	ed := editor.New()
	ed.History.SetMaxDepth(prefs.UndoDepth)

	root, err := ed.SpawnEntity("Level")
	if err != nil {
		log.WithError(err).Fatal("spawn failed")
	}
	player, _ := ed.SpawnEntity("Player")
	if err := ed.ReparentEntities([]scene.EntityID{player}, &root); err != nil {
		log.WithError(err).Fatal("reparent failed")
	}

	tr := scene.DefaultTransform()
	tr.Position = [3]float32{0, 1, 0}
	_ = ed.SetTransforms([]scene.EntityID{player}, []scene.Transform{tr}, "Move Player")

	_ = ed.Undo()
	_ = ed.Redo()
	log.WithField("entities", ed.Scene.Len()).Info("scene ready")

	seq := sequencer.NewSequence("Intro")
	track := sequencer.NewTrack("Player Height", sequencer.TrackProperty)
	track.Binding = sequencer.BindProperty(player, "Transform", "position.y")
	track.AddKeyframe(sequencer.NewKeyframe(0, sequencer.FloatValue(1)))
	track.AddKeyframe(sequencer.NewKeyframe(2, sequencer.FloatValue(3)))
	seq.AddTrack(track)

	pc := sequencer.NewPlaybackController()
	pc.Play()
	for i := 0; i < 120; i++ {
		pc.Update(1.0/60.0, seq)
	}
	log.WithField("frame", pc.CurrentFrame(seq)).Info("playback finished")

	pm := playmode.NewManager()
	sim := physics.NewSimulator()
	if pm.Play(ed.Scene, ed.Selection) {
		for i := 0; i < pm.Update(1.0/60.0, 1.0/60.0); i++ {
			sim.Step(1.0/60.0, ed.Scene)
		}
		if restored, sel := pm.Stop(); restored != nil {
			ed.SetScene(restored)
			ed.Selection = sel
		}
	}

	log.WithField("console_lines", len(console.Lines())).Info("session complete")
}
