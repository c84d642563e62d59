// Package editor ties the scene, selection and history together behind a
// command layer. Every mutation goes through a Command that produces
// before/after patches; the editor commits those to history and replays
// them on undo/redo. The editor itself never interprets a command beyond
// its patches, so new command types need no changes here.
package editor

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"scene-editor/internal/history"
	"scene-editor/internal/scene"
)

var (
	// ErrEntityNotFound reports a command referencing a missing entity.
	ErrEntityNotFound = errors.New("entity not found")
	// ErrInvalidOperation reports a command whose inputs are inconsistent.
	ErrInvalidOperation = errors.New("invalid operation")
)

// Command is one undoable editor operation. Snapshots must be taken
// before Execute mutates anything: the before patch captures state as it
// is, the after patch describes the change Execute will make.
type Command interface {
	Description() string
	Execute(e *Editor) error
	Snapshots(e *Editor) (before, after Patch, err error)
}

// Editor owns the live editing state.
type Editor struct {
	Scene     *scene.Scene
	Selection *scene.Selection
	History   *history.History

	dirty bool
	log   *logrus.Entry
}

// New returns an editor with an empty scene and default history depth.
func New() *Editor {
	return &Editor{
		Scene:     scene.NewScene(),
		Selection: &scene.Selection{},
		History:   history.New(),
		log:       logrus.WithField("system", "editor"),
	}
}

// Dirty reports whether the scene has unsaved changes.
func (e *Editor) Dirty() bool {
	return e.dirty
}

// MarkDirty flags the scene as having unsaved changes.
func (e *Editor) MarkDirty() {
	e.dirty = true
}

// MarkSaved clears the dirty flag after a successful save.
func (e *Editor) MarkSaved() {
	e.dirty = false
}

// SetScene replaces the scene, clearing selection and history. Old
// history refers to a state space that no longer exists.
func (e *Editor) SetScene(s *scene.Scene) {
	e.Scene = s
	e.Selection.Clear()
	e.History.Clear()
	e.dirty = false
}

// Execute runs a command and commits it to history as a single-operation
// group. A failing command commits nothing.
func (e *Editor) Execute(cmd Command) error {
	before, after, err := cmd.Snapshots(e)
	if err != nil {
		return fmt.Errorf("%s: %w", cmd.Description(), err)
	}

	id := e.History.BeginOperation(cmd.Description())
	if err := cmd.Execute(e); err != nil {
		return fmt.Errorf("%s: %w", cmd.Description(), err)
	}

	op, err := e.buildOperation(id, cmd.Description(), &before, &after)
	if err != nil {
		return err
	}
	group := history.NewGroup(id, cmd.Description())
	group.Add(op)
	if err := e.History.Commit(group); err != nil {
		return err
	}
	e.dirty = true
	return nil
}

// ExecuteGroup runs several commands as one undoable unit. Snapshots are
// taken per command just before it executes, so each patch sees the
// effects of the previous commands. If a command fails partway, the
// already-executed commands are rolled back and nothing is committed.
func (e *Editor) ExecuteGroup(description string, cmds []Command) error {
	if len(cmds) == 0 {
		return nil
	}

	id := e.History.BeginOperation(description)
	group := history.NewGroup(id, description)

	for i, cmd := range cmds {
		before, after, err := cmd.Snapshots(e)
		if err == nil {
			err = cmd.Execute(e)
		}
		if err != nil {
			e.rollback(group.Operations)
			return fmt.Errorf("%s (step %d): %w", description, i+1, err)
		}
		op, err := e.buildOperation(id, cmd.Description(), &before, &after)
		if err != nil {
			e.rollback(group.Operations)
			return err
		}
		group.Add(op)
	}

	if err := e.History.Commit(group); err != nil {
		return err
	}
	e.dirty = true
	return nil
}

func (e *Editor) buildOperation(id history.OperationID, description string, before, after *Patch) (history.Operation, error) {
	b, err := before.snapshot()
	if err != nil {
		return history.Operation{}, fmt.Errorf("%s: %w", description, err)
	}
	a, err := after.snapshot()
	if err != nil {
		return history.Operation{}, fmt.Errorf("%s: %w", description, err)
	}
	return history.NewOperation(id, description, b, a), nil
}

// rollback applies the before patches of already-executed operations in
// reverse, restoring the state from before a failed group.
func (e *Editor) rollback(ops []history.Operation) {
	for i := len(ops) - 1; i >= 0; i-- {
		var p Patch
		if err := ops[i].Before.Decode(&p); err != nil {
			e.log.WithError(err).Warn("rollback decode failed")
			continue
		}
		e.applyPatch(&p)
	}
}

// Undo reverts the most recent operation group by applying its before
// patches in reverse order.
func (e *Editor) Undo() error {
	group, err := e.History.Undo()
	if err != nil {
		return err
	}
	for i := len(group.Operations) - 1; i >= 0; i-- {
		var p Patch
		if err := group.Operations[i].Before.Decode(&p); err != nil {
			return err
		}
		e.applyPatch(&p)
	}
	e.dirty = true
	return nil
}

// Redo re-applies the most recently undone group by applying its after
// patches in order.
func (e *Editor) Redo() error {
	group, err := e.History.Redo()
	if err != nil {
		return err
	}
	for i := range group.Operations {
		var p Patch
		if err := group.Operations[i].After.Decode(&p); err != nil {
			return err
		}
		e.applyPatch(&p)
	}
	e.dirty = true
	return nil
}

// SpawnEntity creates a named entity at the identity transform with undo
// support and selects it. Returns the new entity's ID.
func (e *Editor) SpawnEntity(name string) (scene.EntityID, error) {
	cmd := NewSpawnCommand(name, DefaultTransformData())
	if err := e.Execute(cmd); err != nil {
		return scene.EntityID{}, err
	}
	return cmd.Entity, nil
}

// DeleteEntities removes the entities and their descendants with undo
// support. Missing IDs fail the whole command.
func (e *Editor) DeleteEntities(ids []scene.EntityID) error {
	if len(ids) == 0 {
		return nil
	}
	return e.Execute(NewDeleteCommand(ids))
}

// DeleteSelection deletes the selected entities.
func (e *Editor) DeleteSelection() error {
	return e.DeleteEntities(e.Selection.IDs())
}

// DuplicateEntities shallow-copies the entities with undo support and
// selects the copies. Returns the new IDs in source order.
func (e *Editor) DuplicateEntities(ids []scene.EntityID) ([]scene.EntityID, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cmd := NewDuplicateCommand(ids)
	if err := e.Execute(cmd); err != nil {
		return nil, err
	}
	return cmd.NewEntities, nil
}

// SetTransforms sets transforms for several entities as one undoable
// operation. Entities whose transform would not change are skipped; if
// nothing changes, nothing is committed.
func (e *Editor) SetTransforms(ids []scene.EntityID, transforms []scene.Transform, description string) error {
	if len(ids) == 0 || len(ids) != len(transforms) {
		return nil
	}

	var entities []scene.EntityID
	var before, after []TransformData
	for i, id := range ids {
		data := e.Scene.Get(id)
		if data == nil {
			continue
		}
		if data.Transform == transforms[i] {
			continue
		}
		entities = append(entities, id)
		before = append(before, FromTransform(data.Transform))
		after = append(after, FromTransform(transforms[i]))
	}
	if len(entities) == 0 {
		return nil
	}

	return e.Execute(NewTransformCommand(entities, before, after, description))
}

// ReparentEntities moves the entities under a new parent (nil for root)
// with undo support. Entities already under the target parent, or equal
// to it, are skipped.
func (e *Editor) ReparentEntities(ids []scene.EntityID, newParent *scene.EntityID) error {
	if len(ids) == 0 {
		return nil
	}
	if newParent != nil && !e.Scene.Contains(*newParent) {
		return fmt.Errorf("reparent: %w: %s", ErrEntityNotFound, *newParent)
	}

	var entities []scene.EntityID
	var oldParents []*scene.EntityID
	for _, id := range ids {
		data := e.Scene.Get(id)
		if data == nil {
			continue
		}
		if newParent != nil && (*newParent == id || sameParent(data.Parent, newParent)) {
			continue
		}
		if newParent == nil && data.Parent == nil {
			continue
		}
		entities = append(entities, id)
		oldParents = append(oldParents, data.Parent)
	}
	if len(entities) == 0 {
		return nil
	}

	return e.Execute(NewReparentCommand(entities, oldParents, newParent))
}

func sameParent(a, b *scene.EntityID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
