package app

import (
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/scenecore/internal/engine/input"
	"github.com/Faultbox/scenecore/internal/engine/picking"
	"github.com/Faultbox/scenecore/internal/engine/renderer"
	"github.com/Faultbox/scenecore/internal/logger"
	"github.com/Faultbox/scenecore/internal/resource"
)

// Key bindings. Movement keys are polled every frame in handleMovement.
//
//	Esc         quit
//	`           toggle console
//	F1 F2 F3    shading, wireframe, depth view
//	F12         screenshot
//	1 2 3       cube, sphere, quad in front of the camera
//	Del         delete selected object
//	F           focus camera on selected object
//	M           next material on selected object
//	Ctrl+S      save scene
//	Ctrl+N      new scene
//	WASD QE     move camera, Shift for boost
//	RMB drag    look, wheel to zoom, LMB to select
var spawnKeys = map[sdl.Scancode]string{
	sdl.SCANCODE_1: resource.Cube,
	sdl.SCANCODE_2: resource.Sphere,
	sdl.SCANCODE_3: resource.Quad,
}

var viewKeys = map[sdl.Scancode]renderer.ViewMode{
	sdl.SCANCODE_F1: renderer.ViewShading,
	sdl.SCANCODE_F2: renderer.ViewWireframe,
	sdl.SCANCODE_F3: renderer.ViewDepth,
}

func (a *App) handleEvent(e input.Event) {
	switch e.Type {
	case input.EventWindowResize:
		// the event carries window coordinates, targets need pixels
		a.pipeline.Resize(a.window.DrawableSize())

	case input.EventKeyDown:
		if !e.Repeat {
			a.handleKey(e)
		}

	case input.EventMouseMove:
		if a.input.IsButtonHeld(sdl.BUTTON_RIGHT) {
			if cam := a.registry.MainCamera(); cam != nil {
				a.fly.HandleDrag(cam.Transform, float32(e.DeltaX), float32(e.DeltaY))
			}
		}

	case input.EventMouseWheel:
		if cam := a.registry.MainCamera(); cam != nil {
			a.fly.HandleZoom(cam.Transform, e.Wheel)
		}

	case input.EventMouseDown:
		if e.Button == sdl.BUTTON_LEFT {
			a.pick(e.MouseX, e.MouseY)
		}
	}
}

func (a *App) handleKey(e input.Event) {
	if e.Ctrl() {
		switch e.Key {
		case sdl.SCANCODE_S:
			if err := a.registry.SaveScene(); err != nil {
				logger.Error("save scene failed", zap.Error(err))
				a.console.Debugf("save failed: %v", err)
				return
			}
			a.console.Debugf("saved %s", a.registry.SceneName())
		case sdl.SCANCODE_N:
			a.registry.NewScene()
			a.console.ClearDebug()
		}
		return
	}

	if geometry, ok := spawnKeys[e.Key]; ok {
		if obj := a.registry.CreateMeshHere(geometry); obj != nil {
			a.registry.SetSelectedObject(obj.Name)
		}
		return
	}
	if mode, ok := viewKeys[e.Key]; ok {
		a.pipeline.SetViewMode(mode)
		return
	}

	switch e.Key {
	case sdl.SCANCODE_ESCAPE:
		a.running = false
	case sdl.SCANCODE_GRAVE:
		a.console.Toggle()
	case sdl.SCANCODE_F12:
		a.pipeline.Screenshot()
	case sdl.SCANCODE_DELETE:
		if sel := a.registry.SelectedObject(); sel != nil {
			a.registry.DeleteObject(sel.Name)
		}
	case sdl.SCANCODE_F:
		if sel := a.registry.SelectedObject(); sel != nil {
			a.registry.SetObjectFocus(sel.Name)
		}
	case sdl.SCANCODE_M:
		a.cycleMaterial()
	}
}

func (a *App) cycleMaterial() {
	sel := a.registry.SelectedObject()
	names := a.library.MaterialNames()
	if sel == nil || len(names) == 0 {
		return
	}
	a.materialIndex = (a.materialIndex + 1) % len(names)
	if a.registry.SetMaterial(sel.Name, names[a.materialIndex]) {
		a.console.Debugf("%s material %s", sel.Name, names[a.materialIndex])
	}
}

func (a *App) handleMovement(dt float32) {
	cam := a.registry.MainCamera()
	if cam == nil {
		return
	}
	forward := a.input.Axis(sdl.SCANCODE_S, sdl.SCANCODE_W)
	right := a.input.Axis(sdl.SCANCODE_A, sdl.SCANCODE_D)
	up := a.input.Axis(sdl.SCANCODE_Q, sdl.SCANCODE_E)
	if forward == 0 && right == 0 && up == 0 {
		return
	}
	boost := a.input.IsKeyHeld(sdl.SCANCODE_LSHIFT) || a.input.IsKeyHeld(sdl.SCANCODE_RSHIFT)
	a.fly.HandleMovement(cam.Transform, forward, right, up, dt, boost)
}

// pick selects the nearest mesh under the cursor, or clears the selection.
func (a *App) pick(x, y int) {
	cam := a.registry.MainCamera()
	if cam == nil {
		return
	}
	w, h := a.window.Size()
	if w <= 0 || h <= 0 {
		return
	}

	viewProj := a.pipeline.Perspective().Mul4(cam.View())
	ray := picking.ScreenToRay(float32(x), float32(y), float32(w), float32(h), viewProj.Inv())

	meshes := a.registry.StaticMeshes()
	targets := make([]picking.Target, 0, len(meshes))
	for _, m := range meshes {
		targets = append(targets, picking.Target{Name: m.Name, Center: m.Position(), Radius: m.Radius()})
	}

	name, _, ok := picking.Pick(ray, targets)
	if !ok {
		name = ""
	}
	a.registry.SetSelectedObject(name)
}
