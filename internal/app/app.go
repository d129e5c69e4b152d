// Package app wires the window, scene registry and frame pipeline into a
// running application and owns the main loop.
package app

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/scenecore/internal/config"
	"github.com/Faultbox/scenecore/internal/engine/camera"
	"github.com/Faultbox/scenecore/internal/engine/console"
	"github.com/Faultbox/scenecore/internal/engine/debug"
	"github.com/Faultbox/scenecore/internal/engine/input"
	"github.com/Faultbox/scenecore/internal/engine/renderer"
	"github.com/Faultbox/scenecore/internal/engine/scene"
	"github.com/Faultbox/scenecore/internal/engine/shader"
	"github.com/Faultbox/scenecore/internal/engine/window"
	"github.com/Faultbox/scenecore/internal/logger"
	"github.com/Faultbox/scenecore/internal/resource"
)

const title = "SceneCore"

// App is the application context. It replaces process-wide singletons:
// everything a frame needs hangs off it.
type App struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	input    *input.Input
	device   *renderer.GLDevice
	text     *console.GLText
	library  *resource.Library
	store    *resource.SceneStore
	registry *scene.Registry
	console  *console.Console
	pipeline *renderer.Pipeline
	fly      *camera.FlyController

	timing        renderer.FrameTiming
	fps           int
	materialIndex int
}

// New creates the window and GL context and everything that renders into
// it, then opens the startup scene or creates a new one.
func New(cfg *config.Config) (*App, error) {
	logger.Info("initializing application",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	a := &App{cfg: cfg}

	var err error
	a.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// everything below needs the GL context
	if err := a.initGraphics(); err != nil {
		a.Close()
		return nil, err
	}

	a.input = input.New()
	a.fly = camera.NewFlyController()
	a.fly.MoveSpeed = cfg.Camera.MoveSpeed
	a.fly.LookSensitivity = cfg.Camera.LookSensitivity
	a.fly.Boost = cfg.Camera.BoostMultiplier

	a.store = resource.NewSceneStore(cfg.Scene.Dir)
	a.registry = scene.New(a.library, a.store, newNotifier(a.window, a.console))
	a.registry.Lens = camera.Lens{FOV: cfg.Camera.FOV, Near: cfg.Camera.Near, Far: cfg.Camera.Far}

	mode := renderer.ViewShading
	if cfg.Render.Wireframe {
		mode = renderer.ViewWireframe
	}
	a.pipeline = renderer.NewPipeline(a.device, a.registry, a.console, renderer.Config{
		ClearColor:   mgl32.Vec4(cfg.Render.ClearColor),
		Exposure:     cfg.Render.Exposure,
		Mode:         mode,
		AnimateLight: cfg.Render.AnimateLight,
	})
	a.pipeline.SetScreenshotCapture(debug.NewScreenshotCapture(cfg.Screenshot.Dir, cfg.Screenshot.Prefix))

	a.openStartupScene()
	a.pipeline.Resize(a.window.DrawableSize())

	logger.Info("application initialized")
	return a, nil
}

func (a *App) initGraphics() error {
	w, h := a.window.DrawableSize()

	var err error
	a.device, err = renderer.NewGLDevice(int32(w), int32(h), a.window.SwapBuffers)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	program, err := shader.NewProgram("scene", shader.SceneVertexShader, shader.SceneFragmentShader)
	if err != nil {
		return fmt.Errorf("scene shader: %w", err)
	}
	a.library = resource.NewLibrary()
	if err := a.library.Upload(program); err != nil {
		program.Delete()
		return fmt.Errorf("uploading resources: %w", err)
	}

	a.text, err = console.NewGLText(a.cfg.Console.Scale)
	if err != nil {
		return fmt.Errorf("console text: %w", err)
	}
	a.console = console.New(a.text, a.cfg.Console.Enabled)
	return nil
}

func (a *App) openStartupScene() {
	name := a.cfg.Scene.Startup
	if name != "" {
		err := a.registry.OpenScene(name)
		if err == nil {
			return
		}
		logger.Warn("startup scene not opened, creating a new one",
			zap.String("name", name),
			zap.Error(err),
		)
	}
	a.registry.NewScene()
	a.registry.CreateMesh(resource.Cube, mgl32.Vec3{})
}

// Run starts the main loop and returns when the window is closed.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting main loop")

	for a.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		// 1. Process input
		if a.input.Update() {
			a.running = false
			break
		}
		for _, event := range a.input.Events() {
			a.handleEvent(event)
		}
		a.handleMovement(dt)

		// 2. Update scene
		a.registry.Update()
		a.showStatus()

		// 3. Render and present
		a.timing = a.pipeline.RenderFrame()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.fps = frameCount
			logger.Debug("fps",
				zap.Int("count", frameCount),
				zap.Duration("render", a.timing.Render),
				zap.Duration("present", a.timing.Present),
				zap.Int("draws", a.pipeline.Stats().DrawCalls),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// showStatus queues this frame's console text.
func (a *App) showStatus() {
	stats := a.pipeline.Stats()
	a.console.Infof("%s | %d fps | %d objects | %d draws %d binds",
		a.registry.SceneName(), a.fps, a.registry.Len(), stats.DrawCalls, stats.ProgramBinds+stats.GeometryBinds)
	a.console.Infof("render %.2fms present %.2fms | view %s",
		ms(a.timing.Render), ms(a.timing.Present), a.pipeline.ViewMode())
	if sel := a.registry.SelectedObject(); sel != nil {
		a.console.Info(sel.Info())
		a.console.Info(sel.Transform.Info())
	}
}

func ms(d time.Duration) float64 { return float64(d.Microseconds()) / 1000 }

// Close releases everything New created, in reverse order.
func (a *App) Close() {
	logger.Info("closing application")

	if a.text != nil {
		a.text.Close()
	}
	if a.library != nil {
		a.library.Destroy()
	}
	if a.device != nil {
		a.device.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
