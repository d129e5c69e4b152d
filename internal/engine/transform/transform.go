// Package transform holds per-object position, rotation and scale state and
// derives world and view matrices lazily from it.
package transform

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/scenecore/pkg/math"
)

// Transform is the placement of one scene object.
//
// Setters only record the new value and raise a dirty flag. Matrices are
// rebuilt by Update, and only for the parts whose value actually changed.
type Transform struct {
	moved   bool
	rotated bool
	scaled  bool
	updated bool

	pos   mgl32.Vec3
	rot   mgl32.Vec3 // pitch, yaw, roll in [0, 2π)
	scale mgl32.Vec3

	prevPos   mgl32.Vec3
	prevRot   mgl32.Vec3
	prevScale mgl32.Vec3

	local         mgl32.Mat4
	localInverse  mgl32.Mat4
	localIdentity bool
	localChanged  bool

	rotation mgl32.Mat4
	world    mgl32.Mat4
	inverse  mgl32.Mat4

	prevWorld   mgl32.Mat4
	prevInverse mgl32.Mat4

	right, up, front             mgl32.Vec3
	viewRight, viewUp, viewFront mgl32.Vec3
}

// New returns a transform at pos with no rotation and unit scale.
// Matrices are valid on return.
func New(pos mgl32.Vec3) *Transform {
	t := &Transform{
		local:         math.Identity(),
		localInverse:  math.Identity(),
		localIdentity: true,
		rotation:      math.Identity(),
		world:         math.Identity(),
		inverse:       math.Identity(),
		prevWorld:     math.Identity(),
		prevInverse:   math.Identity(),
		prevScale:     mgl32.Vec3{1, 1, 1},
		right:         math.WorldRight,
		up:            math.WorldUp,
		front:         math.WorldFront,
		viewRight:     math.WorldRight,
		viewUp:        math.WorldUp,
		viewFront:     math.WorldFront,
	}
	t.SetPosition(pos)
	t.SetScale(mgl32.Vec3{1, 1, 1})
	t.Update(true, true)
	return t
}

// Reset moves the transform back to the origin with no rotation and unit
// scale and rebuilds its matrices.
func (t *Transform) Reset() {
	t.SetPosition(mgl32.Vec3{})
	t.SetRotation(mgl32.Vec3{})
	t.SetScale(mgl32.Vec3{1, 1, 1})
	t.Update(true, true)
}

// Position

func (t *Transform) Position() mgl32.Vec3 { return t.pos }

func (t *Transform) SetPosition(p mgl32.Vec3) {
	t.moved = true
	t.pos = p
}

func (t *Transform) SetPositionX(x float32) { t.moved = true; t.pos[0] = x }
func (t *Transform) SetPositionY(y float32) { t.moved = true; t.pos[1] = y }
func (t *Transform) SetPositionZ(z float32) { t.moved = true; t.pos[2] = z }

// Move translates by delta in world space.
func (t *Transform) Move(delta mgl32.Vec3) {
	t.moved = true
	t.pos = t.pos.Add(delta)
}

func (t *Transform) MoveX(d float32) { t.moved = true; t.pos[0] += d }
func (t *Transform) MoveY(d float32) { t.moved = true; t.pos[1] += d }
func (t *Transform) MoveZ(d float32) { t.moved = true; t.pos[2] += d }

// MoveFront translates along the current front direction.
// The basis reflects the last Update.
func (t *Transform) MoveFront(d float32) { t.Move(t.front.Mul(d)) }

// MoveLeft translates along the current left direction.
func (t *Transform) MoveLeft(d float32) { t.Move(t.right.Mul(-d)) }

// MoveRight translates along the current right direction.
func (t *Transform) MoveRight(d float32) { t.Move(t.right.Mul(d)) }

// MoveUp translates along the current up direction.
func (t *Transform) MoveUp(d float32) { t.Move(t.up.Mul(d)) }

// Rotation

// Rotation returns pitch, yaw and roll in radians.
func (t *Transform) Rotation() mgl32.Vec3 { return t.rot }

func (t *Transform) Pitch() float32 { return t.rot[0] }
func (t *Transform) Yaw() float32   { return t.rot[1] }
func (t *Transform) Roll() float32  { return t.rot[2] }

// SetRotation sets all three angles. Each is wrapped into [0, 2π).
func (t *Transform) SetRotation(r mgl32.Vec3) {
	t.rotated = true
	t.rot = math.WrapAngles(r)
}

func (t *Transform) SetPitch(v float32) { t.setAngle(0, v) }
func (t *Transform) SetYaw(v float32)   { t.setAngle(1, v) }
func (t *Transform) SetRoll(v float32)  { t.setAngle(2, v) }

// Rotate adds delta to each angle.
func (t *Transform) Rotate(delta mgl32.Vec3) {
	t.RotatePitch(delta[0])
	t.RotateYaw(delta[1])
	t.RotateRoll(delta[2])
}

func (t *Transform) RotatePitch(d float32) { t.setAngle(0, t.rot[0]+d) }
func (t *Transform) RotateYaw(d float32)   { t.setAngle(1, t.rot[1]+d) }
func (t *Transform) RotateRoll(d float32)  { t.setAngle(2, t.rot[2]+d) }

func (t *Transform) setAngle(axis int, v float32) {
	t.rotated = true
	t.rot[axis] = math.WrapAngle(v)
}

// Scale

func (t *Transform) Scale() mgl32.Vec3 { return t.scale }

func (t *Transform) SetScale(s mgl32.Vec3) {
	t.scaled = true
	t.scale = s
}

func (t *Transform) SetScaleX(x float32) { t.scaled = true; t.scale[0] = x }
func (t *Transform) SetScaleY(y float32) { t.scaled = true; t.scale[1] = y }
func (t *Transform) SetScaleZ(z float32) { t.scaled = true; t.scale[2] = z }

// Scaling adds delta to the scale.
func (t *Transform) Scaling(delta mgl32.Vec3) {
	t.scaled = true
	t.scale = t.scale.Add(delta)
}

// SetLocal replaces the local matrix applied before scale, rotation and
// translation. The next Update rebuilds everything.
func (t *Transform) SetLocal(m mgl32.Mat4) {
	t.local = m
	t.localIdentity = m == math.Identity()
	if t.localIdentity {
		t.localInverse = m
	} else {
		t.localInverse = m.Inv()
	}
	t.localChanged = true
}

// Update is the only place matrices are rebuilt. A sub-state is rebuilt when
// its dirty flag is set and its value differs from the one last used, or when
// force is set. updateInverse also rebuilds the inverse (the view matrix for
// cameras). It reports whether anything changed.
func (t *Transform) Update(updateInverse, force bool) bool {
	prevUpdated := t.updated
	t.updated = false

	if t.localChanged {
		t.localChanged = false
		t.updated = true
	}

	if (t.moved && t.pos != t.prevPos) || force {
		t.prevPos = t.pos
		t.updated = true
	}
	t.moved = false

	if (t.rotated && t.rot != t.prevRot) || force {
		t.prevRot = t.rot
		t.updated = true

		t.rotation = math.EulerRotation(t.rot[0], t.rot[1], t.rot[2])
		t.right, t.up, t.front = math.Basis(t.rotation)
	}
	t.rotated = false

	if (t.scaled && t.scale != t.prevScale) || force {
		t.prevScale = t.scale
		t.updated = true
	}
	t.scaled = false

	// keep the last frame's matrices for motion-dependent effects
	if prevUpdated || t.updated {
		t.prevWorld = t.world
		if updateInverse {
			t.prevInverse = t.inverse
		}
	}

	if t.updated {
		t.world = math.TransformMatrix(t.local, t.pos, t.rotation, t.scale)

		if updateInverse {
			t.inverse = math.InverseTransformMatrix(t.pos, t.rotation, t.scale)
			if !t.localIdentity {
				t.inverse = t.localInverse.Mul4(t.inverse)
			}
			t.viewRight, t.viewUp, t.viewFront = math.ViewBasis(t.inverse)
		}
	}

	return t.updated
}

// Updated reports whether the last Update changed anything.
func (t *Transform) Updated() bool { return t.updated }

// Dirty reports whether any setter ran since the last Update.
func (t *Transform) Dirty() bool { return t.moved || t.rotated || t.scaled || t.localChanged }

func (t *Transform) Local() mgl32.Mat4       { return t.local }
func (t *Transform) World() mgl32.Mat4       { return t.world }
func (t *Transform) Inverse() mgl32.Mat4     { return t.inverse }
func (t *Transform) PrevWorld() mgl32.Mat4   { return t.prevWorld }
func (t *Transform) PrevInverse() mgl32.Mat4 { return t.prevInverse }
func (t *Transform) RotationMatrix() mgl32.Mat4 {
	return t.rotation
}

// Front, Right, Left and Up are world-space directions of the object.
func (t *Transform) Front() mgl32.Vec3 { return t.front }
func (t *Transform) Right() mgl32.Vec3 { return t.right }
func (t *Transform) Left() mgl32.Vec3  { return t.right.Mul(-1) }
func (t *Transform) Up() mgl32.Vec3    { return t.up }

// ViewFront, ViewRight and ViewUp are derived from the inverse matrix and
// only track changes when Update is called with updateInverse.
func (t *Transform) ViewFront() mgl32.Vec3 { return t.viewFront }
func (t *Transform) ViewRight() mgl32.Vec3 { return t.viewRight }
func (t *Transform) ViewUp() mgl32.Vec3    { return t.viewUp }

// Info formats the transform for the debug console.
func (t *Transform) Info() string {
	var b strings.Builder
	fmt.Fprintf(&b, "\tPosition : %s\n", vec3String(t.pos))
	fmt.Fprintf(&b, "\tRotation : %s\n", vec3String(t.rot))
	fmt.Fprintf(&b, "\tFront : %s\n", vec3String(t.front))
	fmt.Fprintf(&b, "\tRight : %s\n", vec3String(t.right))
	fmt.Fprintf(&b, "\tUp : %s\n", vec3String(t.up))
	b.WriteString("\tMatrix")
	for row := 0; row < 4; row++ {
		r := t.world.Row(row)
		fmt.Fprintf(&b, "\n\t%2.2f %2.2f %2.2f %2.2f", r[0], r[1], r[2], r[3])
	}
	return b.String()
}

func vec3String(v mgl32.Vec3) string {
	return fmt.Sprintf("%2.2f %2.2f %2.2f", v[0], v[1], v[2])
}
