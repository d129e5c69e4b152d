package renderer

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/scenecore/internal/engine/console"
	"github.com/Faultbox/scenecore/internal/engine/debug"
	"github.com/Faultbox/scenecore/internal/engine/lighting"
	"github.com/Faultbox/scenecore/internal/engine/scene"
	"github.com/Faultbox/scenecore/internal/logger"
	"github.com/Faultbox/scenecore/pkg/math"
)

// Stage is the pipeline's position within a frame.
type Stage int

const (
	StageIdle Stage = iota
	StageObjectPass
	StagePostProcessPass
	StageOverlayPass
	StagePresented
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageObjectPass:
		return "object"
	case StagePostProcessPass:
		return "postprocess"
	case StageOverlayPass:
		return "overlay"
	case StagePresented:
		return "presented"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// ViewMode selects how the object pass rasterizes and what post-process
// shows.
type ViewMode int

const (
	ViewShading ViewMode = iota
	ViewWireframe
	ViewDepth
)

func (m ViewMode) String() string {
	switch m {
	case ViewShading:
		return "shading"
	case ViewWireframe:
		return "wireframe"
	case ViewDepth:
		return "depth"
	}
	return fmt.Sprintf("view(%d)", int(m))
}

// ParseViewMode maps "shading", "wireframe" and "depth" to a mode.
func ParseViewMode(s string) (ViewMode, bool) {
	switch s {
	case "shading", "":
		return ViewShading, true
	case "wireframe":
		return ViewWireframe, true
	case "depth":
		return ViewDepth, true
	}
	return ViewShading, false
}

// FrameConstants are the per-frame values shared by every draw.
type FrameConstants struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
	ViewProj   mgl32.Mat4
	CameraPos  mgl32.Vec3
	LightPos   mgl32.Vec3
	LightColor mgl32.Vec3
	Lighting   bool
	ClearColor mgl32.Vec4
	Mode       ViewMode
	Exposure   float32
	Near       float32
	Far        float32
}

// Device is the GPU backend of the pipeline.
type Device interface {
	ObjectDevice

	// ResizeTargets recreates render targets at the given size.
	ResizeTargets(width, height int32) error
	BeginObjectPass(fc FrameConstants)
	BeginPostProcessPass()
	PostProcess(fc FrameConstants)
	BeginOverlayPass()
	// Blit copies the final image to the visible surface.
	Blit(width, height int32)
	ReadPixels() []byte
	Present()
}

// Config holds pipeline settings.
type Config struct {
	ClearColor   mgl32.Vec4
	Exposure     float32
	Mode         ViewMode
	AnimateLight bool
}

// FrameTiming splits a frame into drawing and buffer swap time.
type FrameTiming struct {
	Render  time.Duration
	Present time.Duration
}

// Pipeline drives one frame through the object, post-process and overlay
// passes and presents it.
type Pipeline struct {
	dev     Device
	scene   *scene.Registry
	console *console.Console
	cfg     Config

	width, height int32
	lens          scene.CameraData
	perspective   mgl32.Mat4
	ortho         mgl32.Mat4
	overlay       mgl32.Mat4

	stage Stage
	list  []DrawItem
	stats Stats

	capture     *debug.ScreenshotCapture
	pendingShot bool
	lastShot    string

	now   func() time.Time
	start time.Time
}

// NewPipeline returns a pipeline with no size. Resize must succeed before
// frames are drawn at a meaningful size.
func NewPipeline(dev Device, reg *scene.Registry, con *console.Console, cfg Config) *Pipeline {
	now := time.Now
	return &Pipeline{
		dev:         dev,
		scene:       reg,
		console:     con,
		cfg:         cfg,
		perspective: math.Identity(),
		ortho:       math.Identity(),
		overlay:     math.Identity(),
		now:         now,
		start:       now(),
	}
}

func (p *Pipeline) Stage() Stage                { return p.stage }
func (p *Pipeline) Size() (width, height int32) { return p.width, p.height }
func (p *Pipeline) Perspective() mgl32.Mat4     { return p.perspective }
func (p *Pipeline) Ortho() mgl32.Mat4           { return p.ortho }
func (p *Pipeline) Stats() Stats                { return p.stats }
func (p *Pipeline) ViewMode() ViewMode          { return p.cfg.Mode }

// SetViewMode switches between shaded, wireframe and depth output.
func (p *Pipeline) SetViewMode(m ViewMode) { p.cfg.Mode = m }

// SetScreenshotCapture enables Screenshot.
func (p *Pipeline) SetScreenshotCapture(c *debug.ScreenshotCapture) { p.capture = c }

// Screenshot saves the next presented frame.
func (p *Pipeline) Screenshot() { p.pendingShot = p.capture != nil }

// LastScreenshot is the path of the most recent capture.
func (p *Pipeline) LastScreenshot() string { return p.lastShot }

// Resize sets the viewport size. A non-positive dimension falls back to
// the previous size; without a valid previous size the call does nothing.
// Projections are rebuilt from the main camera lens and render targets are
// recreated when the size changes. It reports whether the size is valid.
func (p *Pipeline) Resize(width, height int) bool {
	w, h := int32(width), int32(height)
	if w <= 0 || h <= 0 {
		w, h = p.width, p.height
		if w <= 0 || h <= 0 {
			logger.Warn("resize ignored", zap.Int("width", width), zap.Int("height", height))
			return false
		}
	}

	if w != p.width || h != p.height {
		if err := p.dev.ResizeTargets(w, h); err != nil {
			logger.Error("resize render targets", zap.Error(err))
			return false
		}
		p.width, p.height = w, h
		logger.Debug("viewport resized", zap.Int32("width", w), zap.Int32("height", h))
	}
	p.updateProjection()
	return true
}

func (p *Pipeline) updateProjection() {
	lens := scene.DefaultCamera
	if cam := p.scene.MainCamera(); cam != nil && cam.Camera != nil {
		lens = *cam.Camera
	}
	p.lens = lens
	if p.width <= 0 || p.height <= 0 {
		return
	}
	if !lens.Valid() {
		logger.Warn("invalid camera lens, using default",
			zap.Float32("fov", lens.FOV),
			zap.Float32("near", lens.Near),
			zap.Float32("far", lens.Far),
		)
		lens = scene.DefaultCamera
	}
	aspect := float32(p.width) / float32(p.height)
	p.perspective = lens.Perspective(aspect)
	p.ortho = math.Ortho(float32(p.width), float32(p.height), lens.Near, lens.Far)
	p.overlay = math.Ortho2D(float32(p.width), float32(p.height))
}

// RenderFrame runs one frame: object pass, post-process, overlay, present.
func (p *Pipeline) RenderFrame() FrameTiming {
	start := p.now()

	p.stage = StageObjectPass
	fc := p.frameConstants()
	p.dev.BeginObjectPass(fc)
	p.drawObjects(fc.ViewProj)

	p.stage = StagePostProcessPass
	p.dev.BeginPostProcessPass()
	p.dev.PostProcess(fc)

	p.stage = StageOverlayPass
	p.dev.BeginOverlayPass()
	if p.console != nil {
		p.console.Render(p.overlay, float32(p.height))
	}

	p.stage = StagePresented
	p.dev.Blit(p.width, p.height)
	if p.pendingShot {
		p.pendingShot = false
		p.saveScreenshot()
	}
	renderDone := p.now()

	p.dev.Present()
	presentDone := p.now()
	p.stage = StageIdle

	return FrameTiming{
		Render:  renderDone.Sub(start),
		Present: presentDone.Sub(renderDone),
	}
}

func (p *Pipeline) frameConstants() FrameConstants {
	fc := FrameConstants{
		View:       math.Identity(),
		Projection: p.perspective,
		ViewProj:   p.perspective,
		LightColor: mgl32.Vec3{1, 1, 1},
		Lighting:   true,
		ClearColor: p.cfg.ClearColor,
		Mode:       p.cfg.Mode,
		Exposure:   p.cfg.Exposure,
	}

	if cam := p.scene.MainCamera(); cam != nil {
		if cam.Camera != nil && *cam.Camera != p.lens {
			p.updateProjection()
			fc.Projection = p.perspective
		}
		fc.View = cam.View()
		fc.CameraPos = cam.Position()
		fc.ViewProj = p.perspective.Mul4(fc.View)
	}
	fc.Near, fc.Far = p.lens.Near, p.lens.Far

	if lights := p.scene.Lights(); len(lights) > 0 {
		light := lights[0]
		if p.cfg.AnimateLight {
			light.Transform.SetPosition(lighting.DefaultOrbiter.Position(p.now().Sub(p.start)))
			light.Update()
		}
		fc.LightPos = light.Position()
		fc.LightColor = light.Light.Color
	}
	return fc
}

func (p *Pipeline) drawObjects(viewProj mgl32.Mat4) {
	p.list = BuildDrawList(p.scene.StaticMeshes(), p.list[:0])
	p.stats = Traverse(p.list, p.dev, viewProj)
	// drop borrowed pointers, keep capacity
	clear(p.list)
	p.list = p.list[:0]
}

func (p *Pipeline) saveScreenshot() {
	path, err := p.capture.CaptureFromPixels(p.dev.ReadPixels(), int(p.width), int(p.height))
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	p.lastShot = path
	logger.Info("screenshot saved", zap.String("path", path))
}
