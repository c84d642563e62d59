package prefab

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scene-editor/internal/scene"
)

// buildSubtree creates root -> (childA -> grandchild, childB).
func buildSubtree(t *testing.T) (*scene.Scene, scene.EntityID) {
	t.Helper()
	s := scene.NewScene()

	root := s.Add(scene.NewEntityData("Root"))
	childA := scene.NewEntityData("ChildA")
	childA.Parent = &root
	childA.Transform.Position = [3]float32{1, 0, 0}
	a := s.Add(childA)
	s.AttachToParent(a, &root)

	grand := scene.NewEntityData("Grandchild")
	grand.Parent = &a
	g := s.Add(grand)
	s.AttachToParent(g, &a)

	childB := scene.NewEntityData("ChildB")
	childB.Parent = &root
	b := s.Add(childB)
	s.AttachToParent(b, &root)

	return s, root
}

func TestFromEntitiesCapturesSubtree(t *testing.T) {
	s, root := buildSubtree(t)

	p, err := FromEntities("Tree", root, s)
	require.NoError(t, err)
	assert.Equal(t, "Tree", p.Name)
	assert.Equal(t, 4, p.EntityCount())

	// Pre-order local IDs: root=0, childA=1, grandchild=2, childB=3.
	assert.Equal(t, uint32(0), p.Root.LocalID)
	require.Len(t, p.Root.Children, 2)
	assert.Equal(t, "ChildA", p.Root.Children[0].Name)
	assert.Equal(t, uint32(1), p.Root.Children[0].LocalID)
	assert.Equal(t, uint32(2), p.Root.Children[0].Children[0].LocalID)
	assert.Equal(t, uint32(3), p.Root.Children[1].LocalID)
	assert.Equal(t, [3]float32{1, 0, 0}, p.Root.Children[0].Transform.Position)
}

func TestFromEntitiesMissingRoot(t *testing.T) {
	s := scene.NewScene()
	_, err := FromEntities("x", scene.NewEntityID(), s)
	assert.Error(t, err)
}

func TestInstantiateWiresHierarchy(t *testing.T) {
	s, root := buildSubtree(t)
	p, err := FromEntities("Tree", root, s)
	require.NoError(t, err)

	records, idMap := p.Instantiate()
	require.Len(t, records, 4)
	require.Len(t, idMap, 4)

	// Root record comes first and has no parent.
	assert.Equal(t, idMap[0], records[0].ID)
	assert.Nil(t, records[0].Data.Parent)
	assert.ElementsMatch(t, []scene.EntityID{idMap[1], idMap[3]}, records[0].Data.Children)

	// Children point back at their instantiated parents.
	for _, rec := range records[1:] {
		require.NotNil(t, rec.Data.Parent, "entity %s", rec.Data.Name)
	}

	// Two instantiations never share IDs.
	_, idMap2 := p.Instantiate()
	for local, id := range idMap {
		assert.NotEqual(t, id, idMap2[local])
	}
}

func TestPrefabFileRoundTrip(t *testing.T) {
	s, root := buildSubtree(t)
	p, err := FromEntities("Tree", root, s)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "tree.prefab.yaml")
	require.NoError(t, p.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, p.ID, loaded.ID)
	assert.Equal(t, p.Name, loaded.Name)
	assert.Equal(t, p.EntityCount(), loaded.EntityCount())
	assert.Equal(t, p.Root.Children[0].Transform, loaded.Root.Children[0].Transform)
}

func TestLoadRejectsNewerVersion(t *testing.T) {
	s, root := buildSubtree(t)
	p, err := FromEntities("Tree", root, s)
	require.NoError(t, err)
	p.Version = FormatVersion + 1

	path := filepath.Join(t.TempDir(), "future.prefab.yaml")
	require.NoError(t, p.Save(path))

	_, err = Load(path)
	assert.Error(t, err)
}

func TestManagerInstantiateAndTrack(t *testing.T) {
	src, root := buildSubtree(t)
	p, err := FromEntities("Tree", root, src)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "tree.prefab.yaml")
	require.NoError(t, p.Save(path))

	m := NewManager()
	target := scene.NewScene()
	instRoot, err := m.InstantiateInto(path, target)
	require.NoError(t, err)
	assert.Equal(t, 4, target.Len())

	assert.True(t, m.IsPrefabRoot(instRoot))
	inst := m.Instance(instRoot)
	require.NotNil(t, inst)
	assert.Equal(t, path, inst.PrefabPath)

	// Every stamped entity resolves back to the instance.
	for _, id := range target.IDs() {
		assert.True(t, m.IsPrefabEntity(id))
		assert.Equal(t, inst, m.FindInstanceContaining(id))
	}

	local, ok := inst.LocalID(instRoot)
	require.True(t, ok)
	assert.Equal(t, uint32(0), local)

	// Unpacking forgets the instance but keeps the entities.
	m.UnregisterInstance(instRoot)
	assert.False(t, m.IsPrefabRoot(instRoot))
	assert.Equal(t, 4, target.Len())
}

func TestInstanceOverrides(t *testing.T) {
	inst := NewInstance(scene.NewEntityID(), "a.prefab.yaml", map[uint32]scene.EntityID{})

	o := PropertyOverride{EntityPath: "1", PropertyPath: "transform.position"}
	assert.False(t, inst.IsOverridden(o.EntityPath, o.PropertyPath))

	inst.SetOverride(o)
	inst.SetOverride(o) // duplicate collapses
	assert.True(t, inst.IsOverridden(o.EntityPath, o.PropertyPath))
	assert.Len(t, inst.Overrides, 1)

	inst.RemoveOverride(o.EntityPath, o.PropertyPath)
	assert.False(t, inst.IsOverridden(o.EntityPath, o.PropertyPath))

	inst.SetOverride(o)
	inst.RevertAll()
	assert.Empty(t, inst.Overrides)
}
