// Package renderer turns the scene registry into frames: it builds and
// sorts the per-frame draw list, walks it with minimal state changes and
// runs the pass sequence of the frame pipeline.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/scenecore/internal/engine/framebuffer"
	"github.com/Faultbox/scenecore/internal/engine/material"
	"github.com/Faultbox/scenecore/internal/engine/mesh"
	"github.com/Faultbox/scenecore/internal/engine/postprocess"
	"github.com/Faultbox/scenecore/internal/engine/scene"
	"github.com/Faultbox/scenecore/internal/engine/shader"
	"github.com/Faultbox/scenecore/internal/logger"
)

// GLDevice implements Device with OpenGL 4.1 core.
//
// The object pass renders into an HDR target. Post-process tonemaps it
// into an LDR target, the overlay draws on top of that, and Blit copies
// the LDR target to the window.
type GLDevice struct {
	sceneTarget  *framebuffer.Framebuffer
	outputTarget *framebuffer.Framebuffer
	tonemap      *postprocess.Tonemap
	swap         func()

	frame   FrameConstants
	program *shader.Program
}

// NewGLDevice initializes GL and creates render targets. swap presents
// the back buffer. Must be called after the GL context is created.
func NewGLDevice(width, height int32, swap func()) (*GLDevice, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	d := &GLDevice{swap: swap}

	var err error
	if d.sceneTarget, err = framebuffer.New(width, height, framebuffer.FormatHDR); err != nil {
		return nil, fmt.Errorf("scene target: %w", err)
	}
	if d.outputTarget, err = framebuffer.New(width, height, framebuffer.FormatLDR); err != nil {
		d.sceneTarget.Destroy()
		return nil, fmt.Errorf("output target: %w", err)
	}
	if d.tonemap, err = postprocess.NewTonemap(); err != nil {
		d.Close()
		return nil, err
	}
	return d, nil
}

// Close releases GL resources.
func (d *GLDevice) Close() {
	logger.Info("closing renderer")
	if d.tonemap != nil {
		d.tonemap.Destroy()
	}
	if d.outputTarget != nil {
		d.outputTarget.Destroy()
	}
	if d.sceneTarget != nil {
		d.sceneTarget.Destroy()
	}
}

func (d *GLDevice) ResizeTargets(width, height int32) error {
	if err := d.sceneTarget.Resize(width, height); err != nil {
		return fmt.Errorf("scene target: %w", err)
	}
	if err := d.outputTarget.Resize(width, height); err != nil {
		return fmt.Errorf("output target: %w", err)
	}
	return nil
}

func (d *GLDevice) BeginObjectPass(fc FrameConstants) {
	d.frame = fc
	d.program = nil

	d.sceneTarget.Bind()
	c := fc.ClearColor
	d.sceneTarget.Clear(c[0], c[1], c[2], c[3])

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.Disable(gl.BLEND)
	if fc.Mode == ViewWireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

// UseMaterial binds the program and uploads the frame's scene and light
// constants to it.
func (d *GLDevice) UseMaterial(m *material.Material) {
	m.Bind()
	d.program = m.Program
	if d.program == nil {
		return
	}
	fc := d.frame
	d.program.SetVec3("uCameraPos", fc.CameraPos)
	d.program.SetVec3("uLightPos", fc.LightPos)
	d.program.SetVec3("uLightColor", fc.LightColor)
	lit := int32(0)
	if fc.Lighting && m.Lit {
		lit = 1
	}
	d.program.SetInt("uLighting", lit)
}

func (d *GLDevice) BindInstance(inst *material.Instance) {
	inst.Apply()
}

func (d *GLDevice) UploadObject(obj *scene.Object, viewProj mgl32.Mat4) {
	if d.program == nil {
		return
	}
	d.program.SetMat4("uModel", obj.Transform.World())
	d.program.SetMat4("uViewProj", viewProj)
	selected := int32(0)
	if obj.Selected {
		selected = 1
	}
	d.program.SetInt("uSelected", selected)
}

func (d *GLDevice) BindGeometry(g *mesh.Geometry) {
	g.Bind()
}

func (d *GLDevice) Draw(g *mesh.Geometry) {
	if !g.Uploaded() {
		return
	}
	g.Draw()
}

func (d *GLDevice) BeginPostProcessPass() {
	gl.BindVertexArray(0)
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	d.outputTarget.Bind()
	d.outputTarget.Clear(0, 0, 0, 1)

	gl.Enable(gl.BLEND)
	gl.BlendEquation(gl.FUNC_ADD)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
}

func (d *GLDevice) PostProcess(fc FrameConstants) {
	d.tonemap.Render(d.sceneTarget.ColorTexture(), d.sceneTarget.DepthTexture(), postprocess.Params{
		Exposure:  fc.Exposure,
		ShowDepth: fc.Mode == ViewDepth,
		Near:      fc.Near,
		Far:       fc.Far,
	})
}

// BeginOverlayPass keeps the output target bound with blending on.
func (d *GLDevice) BeginOverlayPass() {
	gl.UseProgram(0)
}

func (d *GLDevice) Blit(width, height int32) {
	d.outputTarget.BlitToScreen(width, height)
}

func (d *GLDevice) ReadPixels() []byte {
	return d.outputTarget.ReadPixels()
}

func (d *GLDevice) Present() {
	if d.swap != nil {
		d.swap()
	}
}
