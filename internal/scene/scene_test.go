package scene

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertRejectsDuplicateID(t *testing.T) {
	s := NewScene()
	id := s.Add(NewEntityData("Player"))

	assert.False(t, s.Insert(id, NewEntityData("Impostor")))
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, "Player", s.Get(id).Name)
}

func TestIDsPreserveInsertionOrder(t *testing.T) {
	s := NewScene()
	a := s.Add(NewEntityData("A"))
	b := s.Add(NewEntityData("B"))
	c := s.Add(NewEntityData("C"))

	assert.Equal(t, []EntityID{a, b, c}, s.IDs())

	s.Remove(b)
	assert.Equal(t, []EntityID{a, c}, s.IDs())
}

func TestRemoveReturnsData(t *testing.T) {
	s := NewScene()
	id := s.Add(NewEntityData("Doomed"))

	data := s.Remove(id)
	require.NotNil(t, data)
	assert.Equal(t, "Doomed", data.Name)
	assert.False(t, s.Contains(id))

	assert.Nil(t, s.Remove(id), "second remove")
}

func TestAttachAndDetach(t *testing.T) {
	s := NewScene()
	parent := s.Add(NewEntityData("Parent"))
	child := s.Add(NewEntityData("Child"))

	s.Get(child).Parent = &parent
	s.AttachToParent(child, &parent)
	assert.Equal(t, []EntityID{child}, s.Get(parent).Children)

	// Attaching again must not duplicate the link.
	s.AttachToParent(child, &parent)
	assert.Len(t, s.Get(parent).Children, 1)

	s.DetachFromParent(child)
	assert.Empty(t, s.Get(parent).Children)
}

func TestRoots(t *testing.T) {
	s := NewScene()
	root := s.Add(NewEntityData("Root"))
	child := s.Add(NewEntityData("Child"))
	loose := s.Add(NewEntityData("Loose"))

	s.Get(child).Parent = &root
	s.AttachToParent(child, &root)

	assert.Equal(t, []EntityID{root, loose}, s.Roots())
}

func TestCollectWithDescendants(t *testing.T) {
	s := NewScene()
	root := s.Add(NewEntityData("Root"))
	mid := s.Add(NewEntityData("Mid"))
	leaf := s.Add(NewEntityData("Leaf"))
	other := s.Add(NewEntityData("Other"))

	s.Get(mid).Parent = &root
	s.AttachToParent(mid, &root)
	s.Get(leaf).Parent = &mid
	s.AttachToParent(leaf, &mid)

	collected := s.CollectWithDescendants([]EntityID{root})
	assert.Equal(t, []EntityID{root, mid, leaf}, collected)

	// Overlapping inputs collect each entity once.
	collected = s.CollectWithDescendants([]EntityID{root, mid, other})
	assert.Equal(t, []EntityID{root, mid, leaf, other}, collected)
}

func TestRecordsRoundTrip(t *testing.T) {
	s := NewScene()
	a := s.Add(NewEntityData("A"))
	b := s.Add(NewEntityData("B"))
	s.Get(b).Parent = &a
	s.AttachToParent(b, &a)
	s.Get(a).Transform.Position = [3]float32{1, 2, 3}

	restored := NewScene()
	restored.SetRecords(s.Records())

	assert.Equal(t, s.IDs(), restored.IDs())
	assert.Equal(t, *s.Get(a), *restored.Get(a))
	assert.Equal(t, *s.Get(b), *restored.Get(b))
}

func TestSceneFileRoundTrip(t *testing.T) {
	f := NewSceneFile("Level 01")
	root := f.Scene.Add(EntityData{
		Name:      "Sun",
		Active:    true,
		Transform: DefaultTransform(),
		Components: []Component{
			{Light: &Light{Type: LightDirectional, Color: [4]float32{1, 1, 0.9, 1}, Intensity: 1.2}},
		},
	})
	child := f.Scene.Add(NewEntityData("Flare"))
	f.Scene.Get(child).Parent = &root
	f.Scene.AttachToParent(child, &root)

	path := filepath.Join(t.TempDir(), "level01.yaml")
	require.NoError(t, f.Save(path))

	loaded, err := LoadSceneFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Level 01", loaded.Name)
	assert.Equal(t, f.Scene.IDs(), loaded.Scene.IDs())

	sun := loaded.Scene.Get(root)
	require.NotNil(t, sun)
	require.Len(t, sun.Components, 1)
	assert.Equal(t, "light", sun.Components[0].TypeID())
	assert.Equal(t, float32(1.2), sun.Components[0].Light.Intensity)

	flare := loaded.Scene.Get(child)
	require.NotNil(t, flare)
	require.NotNil(t, flare.Parent)
	assert.Equal(t, root, *flare.Parent)
	assert.Equal(t, []EntityID{child}, sun.Children)
}

func TestLoadRejectsNewerVersion(t *testing.T) {
	f := NewSceneFile("Future")
	f.Version = FormatVersion + 1

	path := filepath.Join(t.TempDir(), "future.yaml")
	require.NoError(t, f.Save(path))

	_, err := LoadSceneFile(path)
	assert.Error(t, err)
}

func TestSelection(t *testing.T) {
	a, b := NewEntityID(), NewEntityID()
	var sel Selection

	sel.Add(a)
	sel.Add(b)
	sel.Add(a)
	assert.Equal(t, 2, sel.Len())

	primary, ok := sel.Primary()
	require.True(t, ok)
	assert.Equal(t, b, primary)

	first, ok := sel.First()
	require.True(t, ok)
	assert.Equal(t, a, first)

	sel.Toggle(b)
	assert.False(t, sel.Contains(b))
	sel.Toggle(b)
	assert.True(t, sel.Contains(b))

	ids := sel.IDs()
	ids[0] = NewEntityID()
	assert.True(t, sel.Contains(a), "IDs returns a copy")

	sel.Clear()
	assert.True(t, sel.IsEmpty())
	_, ok = sel.Primary()
	assert.False(t, ok)
}

func TestComponentDisplayName(t *testing.T) {
	assert.Equal(t, "Camera", Component{Camera: &Camera{Fov: 60}}.DisplayName())
	assert.Equal(t, "Rigid Body", Component{RigidBody: &RigidBody{Mass: 1}}.DisplayName())
	assert.Equal(t, "", Component{}.TypeID())
}
