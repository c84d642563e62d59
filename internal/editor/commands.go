package editor

import (
	"fmt"

	"github.com/jinzhu/copier"

	"scene-editor/internal/scene"
)

// TransformCommand sets transforms for a batch of entities. Before and
// after run parallel to Entities.
type TransformCommand struct {
	Entities []scene.EntityID
	Before   []TransformData
	After    []TransformData
	Desc     string
}

// NewTransformCommand builds a transform command; the three slices must
// have equal length.
func NewTransformCommand(entities []scene.EntityID, before, after []TransformData, description string) *TransformCommand {
	return &TransformCommand{
		Entities: entities,
		Before:   before,
		After:    after,
		Desc:     description,
	}
}

func (c *TransformCommand) Description() string {
	return c.Desc
}

func (c *TransformCommand) Execute(e *Editor) error {
	if len(c.Entities) != len(c.After) {
		return fmt.Errorf("%w: transform data length mismatch", ErrInvalidOperation)
	}
	for i, id := range c.Entities {
		data := e.Scene.Get(id)
		if data == nil {
			return fmt.Errorf("%w: %s", ErrEntityNotFound, id)
		}
		data.Transform = c.After[i].ToTransform()
	}
	return nil
}

func (c *TransformCommand) Snapshots(e *Editor) (Patch, Patch, error) {
	if len(c.Entities) != len(c.Before) || len(c.Entities) != len(c.After) {
		return Patch{}, Patch{}, fmt.Errorf("%w: transform data length mismatch", ErrInvalidOperation)
	}
	var before, after Patch
	for i, id := range c.Entities {
		before.Transforms = append(before.Transforms, TransformPatch{Entity: id, Transform: c.Before[i]})
		after.Transforms = append(after.Transforms, TransformPatch{Entity: id, Transform: c.After[i]})
	}
	return before, after, nil
}

// SpawnCommand creates one entity. The ID is allocated at construction
// so redo replays the exact same entity.
type SpawnCommand struct {
	Entity    scene.EntityID
	Name      string
	Transform TransformData
	Parent    *scene.EntityID
	Select    bool
}

// NewSpawnCommand builds a spawn command for a fresh entity ID.
func NewSpawnCommand(name string, transform TransformData) *SpawnCommand {
	return &SpawnCommand{
		Entity:    scene.NewEntityID(),
		Name:      name,
		Transform: transform,
		Select:    true,
	}
}

// WithParent attaches the spawned entity under a parent.
func (c *SpawnCommand) WithParent(parent scene.EntityID) *SpawnCommand {
	c.Parent = &parent
	return c
}

// WithSelect controls whether the spawned entity becomes the selection.
func (c *SpawnCommand) WithSelect(sel bool) *SpawnCommand {
	c.Select = sel
	return c
}

func (c *SpawnCommand) Description() string {
	return "Spawn Entity"
}

func (c *SpawnCommand) entityData() scene.EntityData {
	data := scene.NewEntityData(c.Name)
	data.Transform = c.Transform.ToTransform()
	data.Parent = c.Parent
	return data
}

func (c *SpawnCommand) Execute(e *Editor) error {
	if e.Scene.Contains(c.Entity) {
		return fmt.Errorf("%w: entity already exists: %s", ErrInvalidOperation, c.Entity)
	}
	if c.Parent != nil && !e.Scene.Contains(*c.Parent) {
		return fmt.Errorf("%w: %s", ErrEntityNotFound, *c.Parent)
	}

	e.Scene.Insert(c.Entity, c.entityData())
	e.Scene.AttachToParent(c.Entity, c.Parent)

	if c.Select {
		e.Selection.Clear()
		e.Selection.Add(c.Entity)
	}
	return nil
}

func (c *SpawnCommand) Snapshots(e *Editor) (Patch, Patch, error) {
	before := Patch{Remove: []scene.EntityID{c.Entity}}
	after := Patch{Insert: []scene.EntityRecord{{ID: c.Entity, Data: c.entityData()}}}
	return before, after, nil
}

// DeleteCommand removes entities and all their descendants.
type DeleteCommand struct {
	Entities []scene.EntityID
}

// NewDeleteCommand builds a delete command over the given roots.
func NewDeleteCommand(ids []scene.EntityID) *DeleteCommand {
	return &DeleteCommand{Entities: ids}
}

func (c *DeleteCommand) Description() string {
	return "Delete Entities"
}

func (c *DeleteCommand) Execute(e *Editor) error {
	ids := e.Scene.CollectWithDescendants(c.Entities)
	for _, id := range ids {
		e.Scene.DetachFromParent(id)
		e.Scene.Remove(id)
		e.Selection.Remove(id)
	}
	return nil
}

func (c *DeleteCommand) Snapshots(e *Editor) (Patch, Patch, error) {
	ids := e.Scene.CollectWithDescendants(c.Entities)

	var before Patch
	for _, id := range ids {
		data := e.Scene.Get(id)
		if data == nil {
			return Patch{}, Patch{}, fmt.Errorf("%w: %s", ErrEntityNotFound, id)
		}
		before.Insert = append(before.Insert, scene.EntityRecord{ID: id, Data: *data})
	}
	after := Patch{Remove: ids}
	return before, after, nil
}

// DuplicateCommand shallow-copies entities: each duplicate keeps the
// source's parent, components and transform, but its children list is
// reset. Hierarchies are duplicated by selecting the whole subtree.
// Duplicate IDs are allocated at construction so redo replays exactly.
type DuplicateCommand struct {
	Sources     []scene.EntityID
	NewEntities []scene.EntityID
	Select      bool
}

// NewDuplicateCommand builds a duplicate command with pre-allocated IDs
// for the copies, parallel to sources.
func NewDuplicateCommand(sources []scene.EntityID) *DuplicateCommand {
	fresh := make([]scene.EntityID, len(sources))
	for i := range fresh {
		fresh[i] = scene.NewEntityID()
	}
	return &DuplicateCommand{
		Sources:     sources,
		NewEntities: fresh,
		Select:      true,
	}
}

func (c *DuplicateCommand) Description() string {
	return "Duplicate Entities"
}

func (c *DuplicateCommand) buildDuplicates(e *Editor) ([]scene.EntityRecord, error) {
	if len(c.Sources) != len(c.NewEntities) {
		return nil, fmt.Errorf("%w: duplicate data length mismatch", ErrInvalidOperation)
	}

	var records []scene.EntityRecord
	for i, src := range c.Sources {
		original := e.Scene.Get(src)
		if original == nil {
			return nil, fmt.Errorf("%w: %s", ErrEntityNotFound, src)
		}

		var dup scene.EntityData
		if err := copier.CopyWithOption(&dup, original, copier.Option{DeepCopy: true}); err != nil {
			return nil, fmt.Errorf("copy entity %s: %w", src, err)
		}
		dup.Name = original.Name + " (Copy)"
		dup.Children = nil

		records = append(records, scene.EntityRecord{ID: c.NewEntities[i], Data: dup})
	}
	return records, nil
}

func (c *DuplicateCommand) Execute(e *Editor) error {
	records, err := c.buildDuplicates(e)
	if err != nil {
		return err
	}

	for _, rec := range records {
		if !e.Scene.Insert(rec.ID, rec.Data) {
			return fmt.Errorf("%w: duplicate id collision: %s", ErrInvalidOperation, rec.ID)
		}
		e.Scene.AttachToParent(rec.ID, rec.Data.Parent)
	}

	if c.Select {
		e.Selection.Clear()
		for _, id := range c.NewEntities {
			e.Selection.Add(id)
		}
	}
	return nil
}

func (c *DuplicateCommand) Snapshots(e *Editor) (Patch, Patch, error) {
	records, err := c.buildDuplicates(e)
	if err != nil {
		return Patch{}, Patch{}, err
	}
	before := Patch{Remove: c.NewEntities}
	after := Patch{Insert: records}
	return before, after, nil
}

// PropertyEditCommand sets one component field on one entity.
type PropertyEditCommand struct {
	Entity    scene.EntityID
	Component string
	Field     string
	OldValue  PropertyValue
	NewValue  PropertyValue
}

// NewPropertyEditCommand builds a property edit.
func NewPropertyEditCommand(entity scene.EntityID, component, field string, oldValue, newValue PropertyValue) *PropertyEditCommand {
	return &PropertyEditCommand{
		Entity:    entity,
		Component: component,
		Field:     field,
		OldValue:  oldValue,
		NewValue:  newValue,
	}
}

func (c *PropertyEditCommand) Description() string {
	return fmt.Sprintf("Edit %s.%s", c.Component, c.Field)
}

func (c *PropertyEditCommand) Execute(e *Editor) error {
	data := e.Scene.Get(c.Entity)
	if data == nil {
		return fmt.Errorf("%w: %s", ErrEntityNotFound, c.Entity)
	}
	if !setEntityProperty(data, c.Component, c.Field, c.NewValue) {
		return fmt.Errorf("%w: unsupported property edit %s.%s", ErrInvalidOperation, c.Component, c.Field)
	}
	return nil
}

func (c *PropertyEditCommand) Snapshots(e *Editor) (Patch, Patch, error) {
	before := Patch{Props: []PropertyPatch{{
		Entity: c.Entity, Component: c.Component, Field: c.Field, Value: c.OldValue,
	}}}
	after := Patch{Props: []PropertyPatch{{
		Entity: c.Entity, Component: c.Component, Field: c.Field, Value: c.NewValue,
	}}}
	return before, after, nil
}

// PropertyEditGroupCommand applies several property edits as one
// undoable unit ("Reset Transform" touching nine fields, say).
type PropertyEditGroupCommand struct {
	Desc  string
	Edits []*PropertyEditCommand
}

// NewPropertyEditGroupCommand groups property edits under one
// description.
func NewPropertyEditGroupCommand(description string, edits []*PropertyEditCommand) *PropertyEditGroupCommand {
	return &PropertyEditGroupCommand{Desc: description, Edits: edits}
}

func (c *PropertyEditGroupCommand) Description() string {
	return c.Desc
}

func (c *PropertyEditGroupCommand) Execute(e *Editor) error {
	for _, edit := range c.Edits {
		if err := edit.Execute(e); err != nil {
			return err
		}
	}
	return nil
}

func (c *PropertyEditGroupCommand) Snapshots(e *Editor) (Patch, Patch, error) {
	if len(c.Edits) == 0 {
		return Patch{}, Patch{}, fmt.Errorf("%w: no property edits provided", ErrInvalidOperation)
	}
	var before, after Patch
	for _, edit := range c.Edits {
		before.Props = append(before.Props, PropertyPatch{
			Entity: edit.Entity, Component: edit.Component, Field: edit.Field, Value: edit.OldValue,
		})
		after.Props = append(after.Props, PropertyPatch{
			Entity: edit.Entity, Component: edit.Component, Field: edit.Field, Value: edit.NewValue,
		})
	}
	return before, after, nil
}

// ReparentCommand moves entities under a new parent (nil for root).
// Validation is strict and up front: every entity and the target parent
// must exist before any link is touched, so a failed reparent leaves the
// hierarchy exactly as it was.
type ReparentCommand struct {
	Entities   []scene.EntityID
	OldParents []*scene.EntityID
	NewParent  *scene.EntityID
}

// NewReparentCommand builds a reparent command; oldParents runs parallel
// to entities.
func NewReparentCommand(entities []scene.EntityID, oldParents []*scene.EntityID, newParent *scene.EntityID) *ReparentCommand {
	return &ReparentCommand{
		Entities:   entities,
		OldParents: oldParents,
		NewParent:  newParent,
	}
}

func (c *ReparentCommand) Description() string {
	return "Reparent Entities"
}

func (c *ReparentCommand) Execute(e *Editor) error {
	if len(c.Entities) == 0 {
		return nil
	}

	for _, id := range c.Entities {
		if !e.Scene.Contains(id) {
			return fmt.Errorf("%w: %s", ErrEntityNotFound, id)
		}
	}
	if c.NewParent != nil && !e.Scene.Contains(*c.NewParent) {
		return fmt.Errorf("%w: %s", ErrEntityNotFound, *c.NewParent)
	}

	for _, id := range c.Entities {
		e.setParent(id, c.NewParent)
	}
	return nil
}

func (c *ReparentCommand) Snapshots(e *Editor) (Patch, Patch, error) {
	if len(c.Entities) != len(c.OldParents) {
		return Patch{}, Patch{}, fmt.Errorf("%w: reparent data length mismatch", ErrInvalidOperation)
	}
	var before, after Patch
	for i, id := range c.Entities {
		before.Parents = append(before.Parents, ParentPatch{Entity: id, Parent: c.OldParents[i]})
		after.Parents = append(after.Parents, ParentPatch{Entity: id, Parent: c.NewParent})
	}
	return before, after, nil
}
