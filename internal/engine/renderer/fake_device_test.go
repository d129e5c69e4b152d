package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/scenecore/internal/engine/material"
	"github.com/Faultbox/scenecore/internal/engine/mesh"
	"github.com/Faultbox/scenecore/internal/engine/scene"
)

type call struct {
	op    string
	arg   string
	stage Stage
}

// fakeDevice records every call in order. When pipeline is set each call
// also records the stage the pipeline was in.
type fakeDevice struct {
	calls     []call
	pipeline  *Pipeline
	panicOn   *mesh.Geometry
	resizes   [][2]int32
	resizeErr error
	frames    []FrameConstants
}

func (f *fakeDevice) record(op, arg string) {
	c := call{op: op, arg: arg}
	if f.pipeline != nil {
		c.stage = f.pipeline.Stage()
	}
	f.calls = append(f.calls, c)
}

func (f *fakeDevice) ops(op string) []call {
	var out []call
	for _, c := range f.calls {
		if c.op == op {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeDevice) UseMaterial(m *material.Material)     { f.record("program", m.Name) }
func (f *fakeDevice) BindInstance(inst *material.Instance) { f.record("instance", inst.Name) }

func (f *fakeDevice) UploadObject(obj *scene.Object, _ mgl32.Mat4) {
	f.record("object", obj.Name)
}

func (f *fakeDevice) BindGeometry(g *mesh.Geometry) { f.record("geometry", g.Name) }

func (f *fakeDevice) Draw(g *mesh.Geometry) {
	if g == f.panicOn {
		panic("draw " + g.Name)
	}
	f.record("draw", g.Name)
}

func (f *fakeDevice) ResizeTargets(w, h int32) error {
	if f.resizeErr != nil {
		return f.resizeErr
	}
	f.resizes = append(f.resizes, [2]int32{w, h})
	f.record("resize", fmt.Sprintf("%dx%d", w, h))
	return nil
}

func (f *fakeDevice) BeginObjectPass(fc FrameConstants) {
	f.frames = append(f.frames, fc)
	f.record("begin_object", "")
}

func (f *fakeDevice) BeginPostProcessPass()      { f.record("begin_post", "") }
func (f *fakeDevice) PostProcess(FrameConstants) { f.record("post", "") }
func (f *fakeDevice) BeginOverlayPass()          { f.record("begin_overlay", "") }
func (f *fakeDevice) Blit(w, h int32)            { f.record("blit", fmt.Sprintf("%dx%d", w, h)) }
func (f *fakeDevice) Present()                   { f.record("present", "") }

func (f *fakeDevice) ReadPixels() []byte {
	if f.pipeline == nil {
		return nil
	}
	w, h := f.pipeline.Size()
	return make([]byte, w*h*4)
}

type fakeResources struct {
	geometries map[string]*mesh.Geometry
	instance   *material.Instance
}

func newFakeResources(names ...string) *fakeResources {
	r := &fakeResources{
		geometries: make(map[string]*mesh.Geometry),
		instance:   material.NewInstance("default", material.New("default", nil)),
	}
	for _, n := range names {
		r.geometries[n] = mesh.New(n, mesh.Quad())
	}
	return r
}

func (r *fakeResources) Geometry(name string) *mesh.Geometry { return r.geometries[name] }

func (r *fakeResources) MaterialInstance(name string) *material.Instance {
	if name == scene.DefaultMaterial {
		return r.instance
	}
	return nil
}
