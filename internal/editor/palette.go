package editor

import (
	"fmt"
	"sort"
)

// Action is a named editor operation invokable from the command palette
// or a key binding. Enabled gates availability (greyed-out menu items);
// a nil Enabled means always available.
type Action struct {
	ID      string
	Title   string
	Run     func(e *Editor) error
	Enabled func(e *Editor) bool
}

// Palette maps action IDs like "edit.undo" to their handlers.
type Palette struct {
	actions map[string]*Action
}

// NewPalette returns a palette pre-registered with the standard editor
// actions.
func NewPalette() *Palette {
	p := &Palette{actions: make(map[string]*Action)}
	p.registerDefaults()
	return p
}

// Register adds or replaces an action.
func (p *Palette) Register(a *Action) {
	p.actions[a.ID] = a
}

// Get returns the action with the given ID, or nil.
func (p *Palette) Get(id string) *Action {
	return p.actions[id]
}

// Actions returns all actions sorted by ID.
func (p *Palette) Actions() []*Action {
	out := make([]*Action, 0, len(p.actions))
	for _, a := range p.actions {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Invoke runs the action with the given ID against the editor. Unknown
// or disabled actions return an error.
func (p *Palette) Invoke(id string, e *Editor) error {
	a := p.actions[id]
	if a == nil {
		return fmt.Errorf("%w: unknown action %q", ErrInvalidOperation, id)
	}
	if a.Enabled != nil && !a.Enabled(e) {
		return fmt.Errorf("%w: action %q is not available", ErrInvalidOperation, id)
	}
	return a.Run(e)
}

func (p *Palette) registerDefaults() {
	p.Register(&Action{
		ID:      "edit.undo",
		Title:   "Undo",
		Run:     func(e *Editor) error { return e.Undo() },
		Enabled: func(e *Editor) bool { return e.History.CanUndo() },
	})
	p.Register(&Action{
		ID:      "edit.redo",
		Title:   "Redo",
		Run:     func(e *Editor) error { return e.Redo() },
		Enabled: func(e *Editor) bool { return e.History.CanRedo() },
	})
	p.Register(&Action{
		ID:    "entity.spawn",
		Title: "Spawn Entity",
		Run: func(e *Editor) error {
			_, err := e.SpawnEntity("Entity")
			return err
		},
	})
	p.Register(&Action{
		ID:      "entity.delete",
		Title:   "Delete Selection",
		Run:     func(e *Editor) error { return e.DeleteSelection() },
		Enabled: func(e *Editor) bool { return !e.Selection.IsEmpty() },
	})
	p.Register(&Action{
		ID:    "entity.duplicate",
		Title: "Duplicate Selection",
		Run: func(e *Editor) error {
			_, err := e.DuplicateEntities(e.Selection.IDs())
			return err
		},
		Enabled: func(e *Editor) bool { return !e.Selection.IsEmpty() },
	})
	p.Register(&Action{
		ID:    "selection.clear",
		Title: "Clear Selection",
		Run: func(e *Editor) error {
			e.Selection.Clear()
			return nil
		},
	})
}
