// Package camera provides the camera lens and an interactive fly
// controller that drives a camera transform.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/scenecore/internal/engine/transform"
	"github.com/Faultbox/scenecore/pkg/math"
)

// Lens is a perspective projection. FOV is the vertical field of view in
// degrees.
type Lens struct {
	FOV  float32 `yaml:"fov"`
	Near float32 `yaml:"near"`
	Far  float32 `yaml:"far"`
}

// DefaultLens is used when none is configured.
var DefaultLens = Lens{FOV: 60, Near: 0.1, Far: 1000}

// Perspective returns the projection for the given aspect ratio.
func (l Lens) Perspective(aspect float32) mgl32.Mat4 {
	return math.Perspective(l.FOV, aspect, l.Near, l.Far)
}

// Valid reports whether the lens can build a projection.
func (l Lens) Valid() bool {
	return l.FOV > 0 && l.FOV < 180 && l.Near > 0 && l.Far > l.Near
}

// FlyController moves a camera transform from mouse and keyboard input.
type FlyController struct {
	// Units per second
	MoveSpeed float32
	// Radians per pixel of mouse drag
	LookSensitivity float32
	// Units per wheel step
	ZoomStep float32
	// Pitch is kept within [-MaxPitch, MaxPitch]
	MaxPitch float32
	// Speed multiplier while boost is held
	Boost float32
}

// NewFlyController returns a controller with default settings.
func NewFlyController() *FlyController {
	return &FlyController{
		MoveSpeed:       5,
		LookSensitivity: 0.005,
		ZoomStep:        1,
		MaxPitch:        1.5,
		Boost:           4,
	}
}

// HandleDrag turns the camera. Dragging right turns right and dragging up
// looks up.
func (c *FlyController) HandleDrag(t *transform.Transform, deltaX, deltaY float32) {
	t.RotateYaw(-deltaX * c.LookSensitivity)

	pitch := signedAngle(t.Pitch()) - deltaY*c.LookSensitivity
	if pitch < -c.MaxPitch {
		pitch = -c.MaxPitch
	}
	if pitch > c.MaxPitch {
		pitch = c.MaxPitch
	}
	t.SetPitch(pitch)
}

// HandleZoom moves along the view direction.
func (c *FlyController) HandleZoom(t *transform.Transform, delta float32) {
	t.MoveFront(delta * c.ZoomStep)
}

// HandleMovement moves relative to the camera orientation. forward, right
// and up are in [-1, 1]; dt is in seconds.
func (c *FlyController) HandleMovement(t *transform.Transform, forward, right, up, dt float32, boost bool) {
	speed := c.MoveSpeed * dt
	if boost {
		speed *= c.Boost
	}
	if forward != 0 {
		t.MoveFront(forward * speed)
	}
	if right != 0 {
		t.MoveRight(right * speed)
	}
	if up != 0 {
		t.MoveY(up * speed)
	}
}

// signedAngle maps an angle in [0, 2π) to (-π, π].
func signedAngle(a float32) float32 {
	if a > math32.Pi {
		return a - math.TwoPi
	}
	return a
}
