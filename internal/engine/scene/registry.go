// Package scene is the flat registry of cameras, lights and static meshes.
//
// Names are unique across all kinds. One camera is the main camera and is
// never deleted while it holds that role. At most one object is selected.
// The registry is owned by the application context and must only be used
// from the frame loop goroutine.
package scene

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/scenecore/internal/logger"
)

// FocusDistance is how far behind its target SetObjectFocus places the
// main camera.
const FocusDistance = 2

// SpawnDistance is how far in front of the main camera CreateMeshHere
// places a new mesh.
const SpawnDistance = 10

// DefaultMaterial names the material instance given to new meshes.
const DefaultMaterial = "default"

var errNoPersistence = errors.New("scene: no persistence configured")

// Registry owns every scene object.
type Registry struct {
	resources   Resources
	persistence Persistence
	notifier    Notifier

	// Lens is applied to cameras created after it is set.
	Lens CameraData

	objects map[string]*Object
	order   []*Object
	cameras []*Object
	lights  []*Object
	meshes  []*Object

	mainCamera *Object
	selected   *Object
	name       string
}

// New returns an empty registry. Nil collaborators are replaced with
// no-op implementations.
func New(res Resources, store Persistence, notify Notifier) *Registry {
	if res == nil {
		res = nopResources{}
	}
	if store == nil {
		store = nopPersistence{}
	}
	if notify == nil {
		notify = nopNotifier{}
	}
	return &Registry{
		resources:   res,
		persistence: store,
		notifier:    notify,
		Lens:        DefaultCamera,
		objects:     make(map[string]*Object),
	}
}

// GenerateObjectName returns name if it is free, otherwise the first free
// name_0, name_1, ...
func (r *Registry) GenerateObjectName(name string) string {
	if _, taken := r.objects[name]; !taken {
		return name
	}
	for i := 0; ; i++ {
		candidate := fmt.Sprintf("%s_%d", name, i)
		if _, taken := r.objects[candidate]; !taken {
			return candidate
		}
	}
}

func (r *Registry) insert(o *Object) {
	r.objects[o.Name] = o
	r.order = append(r.order, o)
	switch o.Kind {
	case KindCamera:
		r.cameras = append(r.cameras, o)
	case KindLight:
		r.lights = append(r.lights, o)
	case KindStaticMesh:
		r.meshes = append(r.meshes, o)
	}
}

// CreateCamera adds a camera using the registry lens. The first camera
// becomes the main camera.
func (r *Registry) CreateCamera(name string) *Object {
	if name == "" {
		name = "camera"
	}
	o := newObject(KindCamera, r.GenerateObjectName(name), mgl32.Vec3{})
	lens := r.Lens
	o.Camera = &lens
	r.insert(o)
	if r.mainCamera == nil {
		r.mainCamera = o
	}
	logger.Debug("create camera", zap.String("name", o.Name))
	return o
}

// CreateLight adds a white point light.
func (r *Registry) CreateLight(name string) *Object {
	if name == "" {
		name = "light"
	}
	o := newObject(KindLight, r.GenerateObjectName(name), mgl32.Vec3{})
	o.Light = &LightData{Color: mgl32.Vec3{1, 1, 1}}
	r.insert(o)
	logger.Debug("create light", zap.String("name", o.Name))
	return o
}

// CreateMesh adds a static mesh built from the named geometry at pos. The
// object is named after the geometry. It returns nil and logs a warning
// when the geometry cannot be resolved.
func (r *Registry) CreateMesh(geometryName string, pos mgl32.Vec3) *Object {
	geom := r.resources.Geometry(geometryName)
	if geom == nil {
		logger.Warn("create mesh: geometry not found", zap.String("geometry", geometryName))
		return nil
	}

	o := newObject(KindStaticMesh, r.GenerateObjectName(geometryName), pos)
	o.Mesh = &MeshData{
		Resource: geometryName,
		Instances: []GeometryInstance{{
			Geometry: geom,
			Material: r.resources.MaterialInstance(DefaultMaterial),
		}},
	}
	r.insert(o)
	logger.Debug("create mesh",
		zap.String("name", o.Name),
		zap.String("geometry", geometryName),
	)
	return o
}

// CreateMeshHere creates a mesh SpawnDistance units in front of the main
// camera.
func (r *Registry) CreateMeshHere(geometryName string) *Object {
	var pos mgl32.Vec3
	if r.mainCamera != nil {
		t := r.mainCamera.Transform
		pos = t.Position().Add(t.Front().Mul(SpawnDistance))
	}
	o := r.CreateMesh(geometryName, pos)
	if o != nil {
		r.sendObjectList()
	}
	return o
}

// DeleteObject removes the named object. Deleting the main camera or an
// unknown name does nothing. It reports whether an object was removed.
func (r *Registry) DeleteObject(name string) bool {
	o, ok := r.objects[name]
	if !ok {
		return false
	}
	if o == r.mainCamera {
		logger.Debug("delete object: main camera kept", zap.String("name", name))
		return false
	}

	delete(r.objects, name)
	r.order = removeObject(r.order, o)
	switch o.Kind {
	case KindCamera:
		r.cameras = removeObject(r.cameras, o)
	case KindLight:
		r.lights = removeObject(r.lights, o)
	case KindStaticMesh:
		r.meshes = removeObject(r.meshes, o)
	}
	if r.selected == o {
		r.selected = nil
	}

	r.notifier.NotifyDeleteObject(name)
	r.sendObjectList()
	return true
}

// removeObject returns list without o in a fresh backing array, leaving
// slices handed out by the accessors untouched.
func removeObject(list []*Object, o *Object) []*Object {
	for i, v := range list {
		if v == o {
			out := make([]*Object, 0, len(list)-1)
			out = append(out, list[:i]...)
			return append(out, list[i+1:]...)
		}
	}
	return list
}

// Object returns the named object or nil.
func (r *Registry) Object(name string) *Object {
	return r.objects[name]
}

// SetSelectedObject selects the named object and deselects the previous
// one. An unknown name clears the selection.
func (r *Registry) SetSelectedObject(name string) {
	o := r.objects[name]
	if o == r.selected {
		return
	}
	if r.selected != nil {
		r.selected.Selected = false
	}
	r.selected = o
	if o != nil {
		o.Selected = true
	}
	r.sendObjectList()
}

// SelectedObject returns the selection or nil.
func (r *Registry) SelectedObject() *Object { return r.selected }

// SetObjectFocus moves the main camera FocusDistance units behind the
// named object along the camera's front axis. Focusing the main camera
// itself does nothing.
func (r *Registry) SetObjectFocus(name string) {
	target, ok := r.objects[name]
	if !ok || r.mainCamera == nil || target == r.mainCamera {
		return
	}
	cam := r.mainCamera.Transform
	cam.SetPosition(target.Position().Sub(cam.Front().Mul(FocusDistance)))
}

// SetMaterial points every geometry instance of the named mesh at the named
// material instance. It reports whether the material was applied.
func (r *Registry) SetMaterial(objectName, materialName string) bool {
	o, ok := r.objects[objectName]
	if !ok || o.Kind != KindStaticMesh || o.Mesh == nil {
		return false
	}
	inst := r.resources.MaterialInstance(materialName)
	if inst == nil {
		logger.Warn("set material: material instance not found", zap.String("material", materialName))
		return false
	}
	for i := range o.Mesh.Instances {
		o.Mesh.Instances[i].Material = inst
	}
	return true
}

// MainCamera returns the main camera, nil only for a cleared registry.
func (r *Registry) MainCamera() *Object { return r.mainCamera }

// SetMainCamera makes the named camera the main camera.
func (r *Registry) SetMainCamera(name string) bool {
	o, ok := r.objects[name]
	if !ok || o.Kind != KindCamera {
		return false
	}
	r.mainCamera = o
	return true
}

// Clear removes every object.
func (r *Registry) Clear() {
	r.objects = make(map[string]*Object)
	r.order = nil
	r.cameras = nil
	r.lights = nil
	r.meshes = nil
	r.mainCamera = nil
	r.selected = nil
	r.notifier.NotifyClearScene()
}

// ClearStaticMeshes removes all meshes and keeps cameras and lights.
func (r *Registry) ClearStaticMeshes() {
	for _, o := range r.meshes {
		r.DeleteObject(o.Name)
	}
}

// Update refreshes every object's transform. A panic in one object is
// logged and does not stop the others.
func (r *Registry) Update() {
	for _, list := range [][]*Object{r.cameras, r.lights, r.meshes} {
		for _, o := range list {
			r.updateObject(o)
		}
	}
}

func (r *Registry) updateObject(o *Object) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("object update failed",
				zap.String("name", o.Name),
				zap.Any("panic", rec),
			)
		}
	}()
	o.Update()
}

// NewScene replaces the contents with one camera and one light under a
// fresh resource name.
func (r *Registry) NewScene() {
	r.Clear()

	cam := r.CreateCamera("camera")
	cam.Transform.SetPosition(mgl32.Vec3{0, 1, 5})
	light := r.CreateLight("light")
	light.Transform.SetPosition(mgl32.Vec3{2, 4, 3})
	r.Update()

	r.name = r.persistence.NewResourceName()
	logger.Info("new scene", zap.String("name", r.name))
	r.notifier.SetWindowTitle(r.name)
	r.sendObjectList()
}

// SaveScene stores a snapshot under the current scene name.
func (r *Registry) SaveScene() error {
	if err := r.persistence.CreateResourceAndSave(r.name, r.Snapshot()); err != nil {
		return fmt.Errorf("save scene %s: %w", r.name, err)
	}
	logger.Info("scene saved", zap.String("name", r.name))
	return nil
}

// Snapshot returns the persisted form of the current scene.
func (r *Registry) Snapshot() Snapshot {
	var snap Snapshot
	if r.mainCamera != nil {
		snap.Camera = r.mainCamera.Name
	}
	if len(r.lights) > 0 {
		snap.Light = r.lights[0].Name
	}
	for _, o := range r.meshes {
		p := o.Position()
		snap.Meshes = append(snap.Meshes, MeshRecord{Mesh: o.Mesh.Resource, Position: [3]float32(p)})
	}
	return snap
}

// OpenScene loads the named snapshot and rebuilds the registry from it.
// Meshes whose geometry cannot be resolved are skipped. On error the
// current scene is left untouched.
func (r *Registry) OpenScene(name string) error {
	snap, err := r.persistence.LoadSnapshot(name)
	if err != nil {
		return fmt.Errorf("open scene %s: %w", name, err)
	}

	r.Clear()
	cam := r.CreateCamera(snap.Camera)
	cam.Transform.SetPosition(mgl32.Vec3{0, 1, 5})
	light := r.CreateLight(snap.Light)
	light.Transform.SetPosition(mgl32.Vec3{2, 4, 3})
	for _, m := range snap.Meshes {
		r.CreateMesh(m.Mesh, mgl32.Vec3(m.Position))
	}
	r.Update()

	r.name = name
	logger.Info("scene opened", zap.String("name", name), zap.Int("meshes", len(r.meshes)))
	r.notifier.SetWindowTitle(name)
	r.sendObjectList()
	return nil
}

// SceneName is the resource name the scene is saved under.
func (r *Registry) SceneName() string { return r.name }

// Len is the number of objects.
func (r *Registry) Len() int { return len(r.order) }

// Objects returns all objects in insertion order. The returned slices are
// read-only snapshots: later creates and deletes do not change them.
func (r *Registry) Objects() []*Object { return r.order }

func (r *Registry) Cameras() []*Object      { return r.cameras }
func (r *Registry) Lights() []*Object       { return r.lights }
func (r *Registry) StaticMeshes() []*Object { return r.meshes }

// ObjectNames returns names in insertion order.
func (r *Registry) ObjectNames() []string {
	names := make([]string, len(r.order))
	for i, o := range r.order {
		names[i] = o.Name
	}
	return names
}

// ObjectInfos summarizes objects in insertion order.
func (r *Registry) ObjectInfos() []ObjectInfo {
	infos := make([]ObjectInfo, len(r.order))
	for i, o := range r.order {
		infos[i] = ObjectInfo{Name: o.Name, Kind: o.Kind, Selected: o.Selected}
	}
	return infos
}

func (r *Registry) sendObjectList() {
	r.notifier.SendObjectList(r.ObjectInfos())
}

type nopPersistence struct{}

func (nopPersistence) CreateResourceAndSave(string, Snapshot) error { return errNoPersistence }
func (nopPersistence) LoadSnapshot(string) (Snapshot, error)        { return Snapshot{}, errNoPersistence }
func (nopPersistence) NewResourceName() string                      { return "untitled" }
