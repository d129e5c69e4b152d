package scene

import (
	"github.com/Faultbox/scenecore/internal/engine/material"
	"github.com/Faultbox/scenecore/internal/engine/mesh"
)

// Resources resolves named geometry and material instances. Misses return
// nil.
type Resources interface {
	Geometry(name string) *mesh.Geometry
	MaterialInstance(name string) *material.Instance
}

// Persistence stores scene snapshots.
type Persistence interface {
	CreateResourceAndSave(name string, snap Snapshot) error
	LoadSnapshot(name string) (Snapshot, error)
	NewResourceName() string
}

// Notifier receives fire-and-forget notifications for the host UI.
type Notifier interface {
	NotifyClearScene()
	NotifyDeleteObject(name string)
	SendObjectList(objects []ObjectInfo)
	SetWindowTitle(name string)
}

// Snapshot is the persisted form of a scene. It keeps the camera name, the
// first light name and each mesh's resource and position. Rotation, scale
// and material overrides are not stored.
type Snapshot struct {
	Camera string       `yaml:"camera"`
	Light  string       `yaml:"light"`
	Meshes []MeshRecord `yaml:"meshes"`
}

// MeshRecord is one persisted mesh.
type MeshRecord struct {
	Mesh     string     `yaml:"mesh"`
	Position [3]float32 `yaml:"position,flow"`
}

type nopResources struct{}

func (nopResources) Geometry(string) *mesh.Geometry             { return nil }
func (nopResources) MaterialInstance(string) *material.Instance { return nil }

type nopNotifier struct{}

func (nopNotifier) NotifyClearScene()           {}
func (nopNotifier) NotifyDeleteObject(string)   {}
func (nopNotifier) SendObjectList([]ObjectInfo) {}
func (nopNotifier) SetWindowTitle(string)       {}
