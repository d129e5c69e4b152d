package scene

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/scenecore/internal/engine/material"
	"github.com/Faultbox/scenecore/internal/engine/mesh"
)

type fakeResources struct {
	geometries map[string]*mesh.Geometry
	material   *material.Instance
	extra      map[string]*material.Instance
}

func newFakeResources(names ...string) *fakeResources {
	f := &fakeResources{
		geometries: make(map[string]*mesh.Geometry),
		material:   material.NewInstance(DefaultMaterial, material.New(DefaultMaterial, nil)),
	}
	for _, n := range names {
		f.geometries[n] = mesh.New(n, mesh.Cube())
	}
	return f
}

func (f *fakeResources) Geometry(name string) *mesh.Geometry { return f.geometries[name] }

func (f *fakeResources) MaterialInstance(name string) *material.Instance {
	if name == DefaultMaterial {
		return f.material
	}
	return f.extra[name]
}

type memStore struct {
	scenes map[string]Snapshot
	next   int
}

func newMemStore() *memStore { return &memStore{scenes: make(map[string]Snapshot)} }

func (m *memStore) CreateResourceAndSave(name string, snap Snapshot) error {
	m.scenes[name] = snap
	return nil
}

func (m *memStore) LoadSnapshot(name string) (Snapshot, error) {
	snap, ok := m.scenes[name]
	if !ok {
		return Snapshot{}, errors.New("not found")
	}
	return snap, nil
}

func (m *memStore) NewResourceName() string {
	name := fmt.Sprintf("scene_%d", m.next)
	m.next++
	return name
}

type recordingNotifier struct {
	cleared int
	deleted []string
	lists   [][]ObjectInfo
	title   string
}

func (n *recordingNotifier) NotifyClearScene()                   { n.cleared++ }
func (n *recordingNotifier) NotifyDeleteObject(name string)      { n.deleted = append(n.deleted, name) }
func (n *recordingNotifier) SendObjectList(objects []ObjectInfo) { n.lists = append(n.lists, objects) }
func (n *recordingNotifier) SetWindowTitle(name string)          { n.title = name }

func newTestRegistry() (*Registry, *memStore, *recordingNotifier) {
	store := newMemStore()
	notify := &recordingNotifier{}
	return New(newFakeResources("sphere", "cube"), store, notify), store, notify
}

func TestNewScene(t *testing.T) {
	r, _, notify := newTestRegistry()
	r.NewScene()

	require.Len(t, r.Cameras(), 1)
	assert.Len(t, r.Lights(), 1)
	assert.Empty(t, r.StaticMeshes())
	assert.Same(t, r.Cameras()[0], r.MainCamera())
	assert.Nil(t, r.SelectedObject())
	assert.Equal(t, "scene_0", r.SceneName())
	assert.Equal(t, "scene_0", notify.title)
	assert.Equal(t, 1, notify.cleared)

	for _, o := range r.Objects() {
		assert.False(t, o.Selected)
	}

	r.NewScene()
	assert.Equal(t, "scene_1", r.SceneName())
	assert.Equal(t, 2, r.Len())
}

func TestCreateMeshNameCollision(t *testing.T) {
	r, _, _ := newTestRegistry()
	r.NewScene()

	a := r.CreateMesh("sphere", mgl32.Vec3{})
	b := r.CreateMesh("sphere", mgl32.Vec3{})
	require.NotNil(t, a)
	require.NotNil(t, b)

	assert.Equal(t, "sphere", a.Name)
	assert.Equal(t, "sphere_0", b.Name)
	assert.Same(t, a, r.Object("sphere"))
	assert.Same(t, b, r.Object("sphere_0"))
	assert.Equal(t, []*Object{a, b}, r.StaticMeshes())
}

func TestGenerateObjectNameSkipsTaken(t *testing.T) {
	r, _, _ := newTestRegistry()
	r.CreateLight("X")
	r.CreateLight("X_1")

	assert.Equal(t, "X_0", r.GenerateObjectName("X"))
	r.CreateLight("X")
	assert.Equal(t, "X_2", r.GenerateObjectName("X"))
	assert.Equal(t, "free", r.GenerateObjectName("free"))
}

func TestNamesUniqueAcrossKinds(t *testing.T) {
	r, _, _ := newTestRegistry()
	r.CreateCamera("sphere")
	m := r.CreateMesh("sphere", mgl32.Vec3{})
	require.NotNil(t, m)
	assert.Equal(t, "sphere_0", m.Name)
}

func TestCreateMeshUnknownGeometry(t *testing.T) {
	r, _, _ := newTestRegistry()
	r.NewScene()

	assert.Nil(t, r.CreateMesh("teapot", mgl32.Vec3{}))
	assert.Empty(t, r.StaticMeshes())
	assert.Equal(t, 2, r.Len())
}

func TestDeleteMainCameraIsNoop(t *testing.T) {
	r, _, notify := newTestRegistry()
	r.NewScene()
	main := r.MainCamera()
	size := r.Len()

	assert.False(t, r.DeleteObject(main.Name))
	assert.Equal(t, size, r.Len())
	assert.Same(t, main, r.MainCamera())
	assert.Same(t, main, r.Object(main.Name))
	assert.Empty(t, notify.deleted)
}

func TestDeleteObject(t *testing.T) {
	r, _, notify := newTestRegistry()
	r.NewScene()
	m := r.CreateMesh("cube", mgl32.Vec3{})
	r.SetSelectedObject(m.Name)

	require.True(t, r.DeleteObject("cube"))
	assert.Nil(t, r.Object("cube"))
	assert.Empty(t, r.StaticMeshes())
	assert.NotContains(t, r.ObjectNames(), "cube")
	assert.Nil(t, r.SelectedObject())
	assert.Equal(t, []string{"cube"}, notify.deleted)

	assert.False(t, r.DeleteObject("cube"))
	assert.False(t, r.DeleteObject("missing"))
}

func TestDeleteKeepsHeldSlices(t *testing.T) {
	r, _, _ := newTestRegistry()
	r.NewScene()
	a := r.CreateMesh("cube", mgl32.Vec3{})
	b := r.CreateMesh("sphere", mgl32.Vec3{1, 0, 0})
	c := r.CreateMesh("cube", mgl32.Vec3{2, 0, 0})

	meshes := r.StaticMeshes()
	objects := r.Objects()
	require.Equal(t, []*Object{a, b, c}, meshes)
	held := len(objects)

	require.True(t, r.DeleteObject(a.Name))
	assert.Equal(t, []*Object{a, b, c}, meshes)
	assert.Len(t, objects, held)
	assert.Same(t, a, objects[held-3])
	assert.Equal(t, []*Object{b, c}, r.StaticMeshes())

	// creating after a delete does not write into the held slices either
	d := r.CreateMesh("sphere", mgl32.Vec3{})
	assert.Equal(t, []*Object{a, b, c}, meshes)
	assert.Equal(t, []*Object{b, c, d}, r.StaticMeshes())
}

func TestDeleteSecondaryCamera(t *testing.T) {
	r, _, _ := newTestRegistry()
	r.NewScene()
	cam := r.CreateCamera("aux")

	assert.True(t, r.DeleteObject(cam.Name))
	assert.Len(t, r.Cameras(), 1)
}

func TestSelection(t *testing.T) {
	r, _, notify := newTestRegistry()
	r.NewScene()
	a := r.CreateMesh("cube", mgl32.Vec3{})
	b := r.CreateMesh("sphere", mgl32.Vec3{})

	r.SetSelectedObject("cube")
	assert.Same(t, a, r.SelectedObject())
	assert.True(t, a.Selected)

	lists := len(notify.lists)
	r.SetSelectedObject("cube")
	assert.Len(t, notify.lists, lists, "reselecting is a no-op")

	r.SetSelectedObject("sphere")
	assert.False(t, a.Selected)
	assert.True(t, b.Selected)

	selected := 0
	for _, info := range r.ObjectInfos() {
		if info.Selected {
			selected++
		}
	}
	assert.Equal(t, 1, selected)

	r.SetSelectedObject("missing")
	assert.Nil(t, r.SelectedObject())
	assert.False(t, b.Selected)
}

func TestSetObjectFocus(t *testing.T) {
	r, _, _ := newTestRegistry()
	r.NewScene()
	m := r.CreateMesh("cube", mgl32.Vec3{3, 0, -4})
	r.Update()

	cam := r.MainCamera().Transform
	r.SetObjectFocus(m.Name)
	want := mgl32.Vec3{3, 0, -4}.Sub(cam.Front().Mul(FocusDistance))
	assertVec3Near(t, want, cam.Position(), 1e-5)

	before := cam.Position()
	r.SetObjectFocus(r.MainCamera().Name)
	r.SetObjectFocus("missing")
	assert.Equal(t, before, cam.Position())
}

func TestCreateMeshHere(t *testing.T) {
	r, _, _ := newTestRegistry()
	r.NewScene()

	m := r.CreateMeshHere("sphere")
	require.NotNil(t, m)
	assertVec3Near(t, mgl32.Vec3{0, 1, -5}, m.Position(), 1e-5)
}

func TestClear(t *testing.T) {
	r, _, notify := newTestRegistry()
	r.NewScene()
	r.CreateMesh("cube", mgl32.Vec3{})
	r.Clear()

	assert.Zero(t, r.Len())
	assert.Empty(t, r.Cameras())
	assert.Empty(t, r.Lights())
	assert.Empty(t, r.StaticMeshes())
	assert.Nil(t, r.MainCamera())
	assert.Nil(t, r.Object("cube"))
	assert.Equal(t, 2, notify.cleared)
}

func TestClearStaticMeshes(t *testing.T) {
	r, _, _ := newTestRegistry()
	r.NewScene()
	r.CreateMesh("cube", mgl32.Vec3{})
	r.CreateMesh("cube", mgl32.Vec3{})
	r.ClearStaticMeshes()

	assert.Empty(t, r.StaticMeshes())
	assert.Equal(t, 2, r.Len())
}

func TestTypedListsMatchNameMap(t *testing.T) {
	r, _, _ := newTestRegistry()
	r.NewScene()
	r.CreateMesh("cube", mgl32.Vec3{})
	r.CreateLight("")
	r.CreateCamera("")
	r.DeleteObject("light")

	typed := len(r.Cameras()) + len(r.Lights()) + len(r.StaticMeshes())
	assert.Equal(t, r.Len(), typed)
	for _, list := range [][]*Object{r.Cameras(), r.Lights(), r.StaticMeshes()} {
		for _, o := range list {
			assert.Same(t, o, r.Object(o.Name))
		}
	}
}

func TestUpdateRebuildsMatrices(t *testing.T) {
	r, _, _ := newTestRegistry()
	r.NewScene()
	m := r.CreateMesh("cube", mgl32.Vec3{})
	m.Transform.SetPosition(mgl32.Vec3{1, 2, 3})
	cam := r.MainCamera()
	cam.Transform.SetPosition(mgl32.Vec3{0, 0, 10})

	r.Update()
	assert.Equal(t, float32(2), m.Transform.World()[13])
	assert.Equal(t, float32(-10), cam.View()[14])
}

func TestUpdateRecoversPerObject(t *testing.T) {
	r, _, _ := newTestRegistry()
	r.NewScene()
	bad := r.CreateMesh("cube", mgl32.Vec3{})
	good := r.CreateMesh("sphere", mgl32.Vec3{})
	bad.Transform = nil
	good.Transform.SetPosition(mgl32.Vec3{5, 0, 0})

	assert.NotPanics(t, r.Update)
	assert.Equal(t, float32(5), good.Transform.World()[12])
}

func TestSaveOpenRoundTrip(t *testing.T) {
	r, store, _ := newTestRegistry()
	r.NewScene()
	m := r.CreateMesh("sphere", mgl32.Vec3{1, 2, 3})
	m.Transform.SetRotation(mgl32.Vec3{1, 1, 1})
	m.Transform.SetScale(mgl32.Vec3{2, 2, 2})
	name := r.SceneName()

	require.NoError(t, r.SaveScene())
	require.Contains(t, store.scenes, name)

	r.NewScene()
	require.NoError(t, r.OpenScene(name))

	require.Len(t, r.StaticMeshes(), 1)
	loaded := r.StaticMeshes()[0]
	assert.Equal(t, "sphere", loaded.Name)
	assert.InDelta(t, 1, loaded.Position()[0], 1e-5)
	assert.InDelta(t, 2, loaded.Position()[1], 1e-5)
	assert.InDelta(t, 3, loaded.Position()[2], 1e-5)
	assert.Equal(t, mgl32.Vec3{}, loaded.Transform.Rotation())
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, loaded.Transform.Scale())
	assert.Equal(t, name, r.SceneName())
	assert.NotNil(t, r.MainCamera())
}

func TestOpenSceneMissing(t *testing.T) {
	r, _, _ := newTestRegistry()
	r.NewScene()
	r.CreateMesh("cube", mgl32.Vec3{})

	assert.Error(t, r.OpenScene("nope"))
	assert.Len(t, r.StaticMeshes(), 1)
}

func TestNilCollaborators(t *testing.T) {
	r := New(nil, nil, nil)
	r.NewScene()
	assert.Equal(t, "untitled", r.SceneName())
	assert.Nil(t, r.CreateMesh("cube", mgl32.Vec3{}))
	assert.Error(t, r.SaveScene())
}

func TestObjectOrder(t *testing.T) {
	r, _, _ := newTestRegistry()
	r.NewScene()
	r.CreateMesh("cube", mgl32.Vec3{})
	r.CreateLight("lamp")

	assert.Equal(t, []string{"camera", "light", "cube", "lamp"}, r.ObjectNames())
}

func TestSetMaterial(t *testing.T) {
	res := newFakeResources("cube")
	red := res.material.Clone("red")
	res.extra = map[string]*material.Instance{"red": red}
	r := New(res, newMemStore(), nil)
	r.NewScene()
	cube := r.CreateMesh("cube", mgl32.Vec3{})
	require.NotNil(t, cube)

	assert.True(t, r.SetMaterial(cube.Name, "red"))
	assert.Same(t, red, cube.Mesh.Instances[0].Material)

	assert.False(t, r.SetMaterial(cube.Name, "chrome"))
	assert.Same(t, red, cube.Mesh.Instances[0].Material, "miss keeps the old material")
	assert.False(t, r.SetMaterial("camera", "red"))
	assert.False(t, r.SetMaterial("ghost", "red"))
}

func assertVec3Near(t *testing.T, want, got mgl32.Vec3, delta float64, msgAndArgs ...any) {
	t.Helper()
	assert.InDeltaSlice(t, want[:], got[:], delta, msgAndArgs...)
}
