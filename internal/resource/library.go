// Package resource provides the in-process collaborators the scene registry
// resolves names against: a library of procedural geometry and material
// instances, and a YAML scene snapshot store.
package resource

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/scenecore/internal/engine/material"
	"github.com/Faultbox/scenecore/internal/engine/mesh"
	"github.com/Faultbox/scenecore/internal/engine/shader"
	"github.com/Faultbox/scenecore/internal/engine/texture"
	"github.com/Faultbox/scenecore/internal/logger"
)

// Built-in resource names.
const (
	Cube            = "cube"
	Sphere          = "sphere"
	Quad            = "quad"
	DefaultMaterial = "default"
	CheckerMaterial = "checker"
)

// palette instances share the default material
var palette = []struct {
	name  string
	color mgl32.Vec4
}{
	{"red", mgl32.Vec4{0.85, 0.2, 0.2, 1}},
	{"green", mgl32.Vec4{0.2, 0.75, 0.3, 1}},
	{"blue", mgl32.Vec4{0.2, 0.4, 0.9, 1}},
}

// Library holds named geometry and material instances.
type Library struct {
	geometries map[string]*mesh.Geometry
	instances  map[string]*material.Instance
	materials  []*material.Material
	textures   []uint32
	uploaded   bool
}

// NewLibrary returns a library with the built-in primitives, the default
// material instance and a few colored variants of it. Nothing touches the
// GPU until Upload, which also adds the textured checker instance.
func NewLibrary() *Library {
	l := &Library{
		geometries: make(map[string]*mesh.Geometry),
		instances:  make(map[string]*material.Instance),
	}

	l.RegisterGeometry(mesh.New(Cube, mesh.Cube()))
	l.RegisterGeometry(mesh.New(Sphere, mesh.Sphere(16, 32)))
	l.RegisterGeometry(mesh.New(Quad, mesh.Quad()))

	def := material.New(DefaultMaterial, nil)
	l.materials = append(l.materials, def)
	inst := material.NewInstance(DefaultMaterial, def)
	inst.BaseColor = mgl32.Vec4{0.8, 0.8, 0.8, 1}
	l.RegisterMaterialInstance(inst)
	for _, p := range palette {
		c := inst.Clone(p.name)
		c.BaseColor = p.color
		l.RegisterMaterialInstance(c)
	}

	return l
}

// Geometry returns the named geometry, or nil.
func (l *Library) Geometry(name string) *mesh.Geometry { return l.geometries[name] }

// MaterialInstance returns the named material instance, or nil.
func (l *Library) MaterialInstance(name string) *material.Instance { return l.instances[name] }

// RegisterGeometry adds or replaces a geometry under its name. After Upload
// new geometry is uploaded immediately.
func (l *Library) RegisterGeometry(g *mesh.Geometry) error {
	if g == nil || g.Name == "" {
		return fmt.Errorf("register geometry: %w", ErrInvalidName)
	}
	if old, ok := l.geometries[g.Name]; ok && old != g && l.uploaded {
		old.Destroy()
	}
	l.geometries[g.Name] = g
	if l.uploaded && !g.Uploaded() {
		if err := g.Upload(); err != nil {
			return fmt.Errorf("upload geometry %s: %w", g.Name, err)
		}
	}
	return nil
}

// RegisterMaterialInstance adds or replaces a material instance under its
// name.
func (l *Library) RegisterMaterialInstance(inst *material.Instance) error {
	if inst == nil || inst.Name == "" {
		return fmt.Errorf("register material instance: %w", ErrInvalidName)
	}
	l.instances[inst.Name] = inst
	return nil
}

// MaterialNames lists registered material instances in name order.
func (l *Library) MaterialNames() []string {
	names := make([]string, 0, len(l.instances))
	for name := range l.instances {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GeometryNames lists registered geometry in name order.
func (l *Library) GeometryNames() []string {
	names := make([]string, 0, len(l.geometries))
	for name := range l.geometries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Upload creates GPU buffers for every geometry and attaches program to
// the built-in materials. Requires a current GL context.
func (l *Library) Upload(program *shader.Program) error {
	for _, m := range l.materials {
		if m.Program == nil {
			m.Program = program
		}
	}
	for _, name := range l.GeometryNames() {
		g := l.geometries[name]
		if g.Uploaded() {
			continue
		}
		if err := g.Upload(); err != nil {
			return fmt.Errorf("upload geometry %s: %w", name, err)
		}
		logger.Debug("geometry uploaded",
			zap.String("name", name),
			zap.Int32("indices", g.IndexCount()),
		)
	}

	if l.instances[CheckerMaterial] == nil {
		img := texture.Checker(256, 8, color.RGBA{230, 230, 230, 255}, color.RGBA{60, 60, 70, 255})
		tex, err := texture.Upload(img, texture.Options{Mipmaps: true, Repeat: true})
		if err != nil {
			return fmt.Errorf("checker texture: %w", err)
		}
		l.textures = append(l.textures, tex)
		checker := l.instances[DefaultMaterial].Clone(CheckerMaterial)
		checker.BaseColor = mgl32.Vec4{1, 1, 1, 1}
		checker.Texture = tex
		l.RegisterMaterialInstance(checker)
	}

	l.uploaded = true
	return nil
}

// Destroy frees GPU buffers and programs.
func (l *Library) Destroy() {
	for _, g := range l.geometries {
		g.Destroy()
	}
	for _, tex := range l.textures {
		texture.Delete(tex)
	}
	l.textures = nil
	delete(l.instances, CheckerMaterial)
	// materials share one program
	deleted := make(map[*shader.Program]bool)
	for _, m := range l.materials {
		if m.Program != nil && !deleted[m.Program] {
			deleted[m.Program] = true
			m.Program.Delete()
		}
		m.Program = nil
	}
	l.uploaded = false
}
