package renderer

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/scenecore/internal/engine/material"
	"github.com/Faultbox/scenecore/internal/engine/mesh"
	"github.com/Faultbox/scenecore/internal/engine/scene"
	"github.com/Faultbox/scenecore/internal/logger"
)

// ObjectDevice is the part of the GPU state machine touched while drawing
// meshes.
type ObjectDevice interface {
	UseMaterial(m *material.Material)
	BindInstance(inst *material.Instance)
	UploadObject(obj *scene.Object, viewProj mgl32.Mat4)
	BindGeometry(g *mesh.Geometry)
	Draw(g *mesh.Geometry)
}

// DrawItem is one geometry instance of one mesh object. Items hold
// borrowed pointers and are only valid for the frame they were built in.
type DrawItem struct {
	Object   *scene.Object
	Geometry *mesh.Geometry
	Instance *material.Instance
}

func (it DrawItem) geometryID() uint64 {
	if it.Geometry == nil {
		return 0
	}
	return it.Geometry.ID()
}

func (it DrawItem) material() *material.Material {
	if it.Instance == nil {
		return nil
	}
	return it.Instance.Material
}

// BuildDrawList flattens the geometry instances of meshes into dst and
// sorts them by geometry identity. The sort is stable, so items sharing a
// geometry keep their scene order.
func BuildDrawList(meshes []*scene.Object, dst []DrawItem) []DrawItem {
	for _, obj := range meshes {
		if obj.Mesh == nil {
			continue
		}
		for _, gi := range obj.Mesh.Instances {
			dst = append(dst, DrawItem{Object: obj, Geometry: gi.Geometry, Instance: gi.Material})
		}
	}
	sort.SliceStable(dst, func(i, j int) bool {
		return dst[i].geometryID() < dst[j].geometryID()
	})
	return dst
}

// Stats counts the work done by one traversal.
type Stats struct {
	Items         int
	DrawCalls     int
	ProgramBinds  int
	InstanceBinds int
	GeometryBinds int
	Skipped       int
	Failed        int
}

// traversal holds the cursors of the last state actually bound.
type traversal struct {
	dev      ObjectDevice
	viewProj mgl32.Mat4

	geometry *mesh.Geometry
	material *material.Material
	instance *material.Instance

	stats Stats
}

// Traverse draws a sorted list, binding the program, instance constants
// and geometry only when they differ from what is already bound. Items
// missing a geometry, instance or material are skipped. A panic while
// drawing one item is logged and the traversal continues with the next.
func Traverse(list []DrawItem, dev ObjectDevice, viewProj mgl32.Mat4) Stats {
	t := traversal{dev: dev, viewProj: viewProj}
	t.stats.Items = len(list)
	for i := range list {
		t.draw(list[i])
	}
	return t.stats
}

func (t *traversal) draw(it DrawItem) {
	defer func() {
		if rec := recover(); rec != nil {
			name := ""
			if it.Object != nil {
				name = it.Object.Name
			}
			logger.Error("draw failed", zap.String("object", name), zap.Any("panic", rec))
			t.stats.Failed++
			// bound state is unknown now
			t.geometry, t.material, t.instance = nil, nil, nil
		}
	}()

	mat := it.material()
	if it.Geometry == nil || it.Instance == nil || mat == nil || it.Object == nil {
		t.stats.Skipped++
		return
	}

	if mat != t.material {
		t.dev.UseMaterial(mat)
		t.material = mat
		t.stats.ProgramBinds++
	}
	if it.Instance != t.instance {
		t.dev.BindInstance(it.Instance)
		t.instance = it.Instance
		t.stats.InstanceBinds++
	}
	t.dev.UploadObject(it.Object, t.viewProj)
	if it.Geometry != t.geometry {
		t.dev.BindGeometry(it.Geometry)
		t.geometry = it.Geometry
		t.stats.GeometryBinds++
	}
	t.dev.Draw(it.Geometry)
	t.stats.DrawCalls++
}
