// Package postprocess runs the fullscreen passes applied after the object
// pass.
package postprocess

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/scenecore/internal/engine/shader"
)

// Params feed the tonemapping shader.
type Params struct {
	Exposure  float32
	ShowDepth bool
	Near      float32
	Far       float32
}

// Tonemap maps the HDR color target to display range. It draws a single
// triangle covering the screen, so it needs no vertex data.
type Tonemap struct {
	program *shader.Program
	vao     uint32
}

// NewTonemap builds the program. Requires a current GL context.
func NewTonemap() (*Tonemap, error) {
	program, err := shader.NewProgram("tonemap", shader.TonemapVertexShader, shader.TonemapFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("tonemap: %w", err)
	}
	t := &Tonemap{program: program}
	// core profile refuses draws without a bound VAO
	gl.GenVertexArrays(1, &t.vao)
	return t, nil
}

// Render samples color and depth textures and writes to the bound target.
func (t *Tonemap) Render(color, depth uint32, p Params) {
	t.program.Use()

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, color)
	t.program.SetInt("uColor", 0)

	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, depth)
	t.program.SetInt("uDepth", 1)

	exposure := p.Exposure
	if exposure <= 0 {
		exposure = 1
	}
	t.program.SetFloat("uExposure", exposure)
	t.program.SetFloat("uNear", p.Near)
	t.program.SetFloat("uFar", p.Far)
	if p.ShowDepth {
		t.program.SetInt("uShowDepth", 1)
	} else {
		t.program.SetInt("uShowDepth", 0)
	}

	gl.BindVertexArray(t.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)

	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Destroy releases GL resources.
func (t *Tonemap) Destroy() {
	if t.vao != 0 {
		gl.DeleteVertexArrays(1, &t.vao)
		t.vao = 0
	}
	t.program.Delete()
}
