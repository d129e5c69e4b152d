package resource

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/scenecore/internal/engine/scene"
)

func TestSaveAndLoadSnapshot(t *testing.T) {
	store := NewSceneStore(filepath.Join(t.TempDir(), "scenes"))

	snap := scene.Snapshot{
		Camera: "camera",
		Light:  "sun",
		Meshes: []scene.MeshRecord{
			{Mesh: Cube, Position: [3]float32{1, 2, 3}},
			{Mesh: Sphere, Position: [3]float32{-4, 0, 0.5}},
		},
	}
	require.NoError(t, store.CreateResourceAndSave("demo", snap))

	path, err := store.Path("demo")
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.Equal(t, "demo.scene.yaml", filepath.Base(path))

	got, err := store.LoadSnapshot("demo")
	require.NoError(t, err)
	assert.Equal(t, snap, got)
}

func TestSnapshotFileFormat(t *testing.T) {
	store := NewSceneStore(t.TempDir())
	require.NoError(t, store.CreateResourceAndSave("fmt", scene.Snapshot{
		Camera: "camera",
		Light:  "light",
		Meshes: []scene.MeshRecord{{Mesh: Cube, Position: [3]float32{1, 2, 3}}},
	}))

	path, _ := store.Path("fmt")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "camera: camera")
	assert.Contains(t, text, "light: light")
	assert.Contains(t, text, "mesh: cube")
	assert.Contains(t, text, "position: [1, 2, 3]")
}

func TestLoadSnapshotHandWritten(t *testing.T) {
	dir := t.TempDir()
	content := "camera: cam\nlight: lamp\nmeshes:\n  - mesh: quad\n    position: [0, -1, 0]\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hand.scene.yaml"), []byte(content), 0644))

	snap, err := NewSceneStore(dir).LoadSnapshot("hand")
	require.NoError(t, err)
	assert.Equal(t, "cam", snap.Camera)
	require.Len(t, snap.Meshes, 1)
	assert.Equal(t, [3]float32{0, -1, 0}, snap.Meshes[0].Position)
}

func TestLoadSnapshotErrors(t *testing.T) {
	dir := t.TempDir()
	store := NewSceneStore(dir)

	_, err := store.LoadSnapshot("missing")
	assert.ErrorIs(t, err, ErrSceneNotFound)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.scene.yaml"), []byte("meshes: {not: [a list"), 0644))
	_, err = store.LoadSnapshot("broken")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrSceneNotFound)
}

func TestInvalidNames(t *testing.T) {
	store := NewSceneStore(t.TempDir())

	for _, name := range []string{"", ".", "..", "a/b", `a\b`, "../escape"} {
		assert.ErrorIs(t, store.CreateResourceAndSave(name, scene.Snapshot{}), ErrInvalidName, name)
		_, err := store.LoadSnapshot(name)
		assert.ErrorIs(t, err, ErrInvalidName, name)
	}
}

func TestNewResourceName(t *testing.T) {
	store := NewSceneStore(t.TempDir())

	assert.Equal(t, "new_scene", store.NewResourceName())
	require.NoError(t, store.CreateResourceAndSave("new_scene", scene.Snapshot{}))
	assert.Equal(t, "new_scene_0", store.NewResourceName())
	require.NoError(t, store.CreateResourceAndSave("new_scene_0", scene.Snapshot{}))
	require.NoError(t, store.CreateResourceAndSave("new_scene_2", scene.Snapshot{}))
	assert.Equal(t, "new_scene_1", store.NewResourceName())
}

func TestList(t *testing.T) {
	store := NewSceneStore(filepath.Join(t.TempDir(), "not-yet"))

	names, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, names)

	require.NoError(t, store.CreateResourceAndSave("b", scene.Snapshot{}))
	require.NoError(t, store.CreateResourceAndSave("a", scene.Snapshot{}))
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "notes.txt"), nil, 0644))

	names, err = store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)
}

func TestRegistryWithLibraryAndStore(t *testing.T) {
	lib := NewLibrary()
	store := NewSceneStore(t.TempDir())
	reg := scene.New(lib, store, nil)

	reg.NewScene()
	assert.Equal(t, "new_scene", reg.SceneName())
	require.NotNil(t, reg.CreateMesh(Cube, mgl32.Vec3{1, 0, 0}))
	require.NotNil(t, reg.CreateMesh(Sphere, mgl32.Vec3{0, 0, -3}))
	assert.Nil(t, reg.CreateMesh("teapot", mgl32.Vec3{}))
	require.NoError(t, reg.SaveScene())

	other := scene.New(lib, store, nil)
	require.NoError(t, other.OpenScene("new_scene"))
	meshes := other.StaticMeshes()
	require.Len(t, meshes, 2)
	assert.Equal(t, Cube, meshes[0].Mesh.Resource)
	assertVec3Near(t, mgl32.Vec3{0, 0, -3}, meshes[1].Position(), 1e-5)
	assert.NotNil(t, other.MainCamera())

	// the saved name is taken now
	assert.Equal(t, "new_scene_0", store.NewResourceName())

	err := other.OpenScene("nope")
	assert.ErrorIs(t, err, ErrSceneNotFound)
	assert.Len(t, other.StaticMeshes(), 2)
}

func assertVec3Near(t *testing.T, want, got mgl32.Vec3, delta float64, msgAndArgs ...any) {
	t.Helper()
	assert.InDeltaSlice(t, want[:], got[:], delta, msgAndArgs...)
}
