// Package material pairs shader programs with textures (Material) and holds
// per-object parameter sets that reference them (Instance).
package material

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/scenecore/internal/engine/shader"
)

// Material is a shader program plus the textures bound with it.
type Material struct {
	Name     string
	Program  *shader.Program
	Textures []uint32
	Lit      bool
}

// New returns a material using program.
func New(name string, program *shader.Program) *Material {
	return &Material{Name: name, Program: program, Lit: true}
}

// Bind makes the program current and binds textures to consecutive units.
func (m *Material) Bind() {
	if m.Program != nil {
		m.Program.Use()
	}
	for i, tex := range m.Textures {
		gl.ActiveTexture(gl.TEXTURE0 + uint32(i))
		gl.BindTexture(gl.TEXTURE_2D, tex)
	}
}

// Delete releases the program and textures.
func (m *Material) Delete() {
	if m.Program != nil {
		m.Program.Delete()
	}
	if len(m.Textures) > 0 {
		gl.DeleteTextures(int32(len(m.Textures)), &m.Textures[0])
		m.Textures = nil
	}
}

// Instance is the per-object parameter set of a material.
type Instance struct {
	Name      string
	Material  *Material
	BaseColor mgl32.Vec4
	Ambient   float32
	Shininess float32
	Texture   uint32
}

// NewInstance returns an instance of m with white base color.
func NewInstance(name string, m *Material) *Instance {
	return &Instance{
		Name:      name,
		Material:  m,
		BaseColor: mgl32.Vec4{1, 1, 1, 1},
		Ambient:   0.15,
		Shininess: 32,
	}
}

// Clone returns a copy with a new name sharing the same material.
func (i *Instance) Clone(name string) *Instance {
	c := *i
	c.Name = name
	return &c
}

// Apply uploads the instance constants to the material's program.
// The program must be current.
func (i *Instance) Apply() {
	if i.Material == nil || i.Material.Program == nil {
		return
	}
	p := i.Material.Program
	p.SetVec4("uBaseColor", i.BaseColor)
	p.SetFloat("uAmbient", i.Ambient)
	p.SetFloat("uShininess", i.Shininess)
	if i.Texture != 0 {
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, i.Texture)
		p.SetInt("uTexture", 0)
		p.SetInt("uHasTexture", 1)
	} else {
		p.SetInt("uHasTexture", 0)
	}
}
