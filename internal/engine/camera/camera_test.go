package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/scenecore/internal/engine/transform"
	"github.com/Faultbox/scenecore/pkg/math"
)

func TestLens(t *testing.T) {
	assert.True(t, DefaultLens.Valid())
	assert.False(t, Lens{FOV: 60, Near: 0, Far: 10}.Valid())
	assert.False(t, Lens{FOV: 60, Near: 5, Far: 1}.Valid())
	assert.Equal(t, math.Perspective(60, 2, 0.1, 1000), DefaultLens.Perspective(2))
}

func TestHandleDragTurns(t *testing.T) {
	c := NewFlyController()
	tr := transform.New(mgl32.Vec3{})

	// drag right turns toward +X
	c.HandleDrag(tr, 100, 0)
	tr.Update(true, false)
	assert.Greater(t, tr.Front()[0], float32(0))

	// drag up looks up
	tr.Reset()
	c.HandleDrag(tr, 0, -100)
	tr.Update(true, false)
	assert.Greater(t, tr.Front()[1], float32(0))
}

func TestHandleDragClampsPitch(t *testing.T) {
	c := NewFlyController()
	tr := transform.New(mgl32.Vec3{})

	c.HandleDrag(tr, 0, -10000)
	assert.InDelta(t, c.MaxPitch, tr.Pitch(), 1e-5)

	c.HandleDrag(tr, 0, 20000)
	assert.InDelta(t, math.TwoPi-c.MaxPitch, tr.Pitch(), 1e-5)
}

func TestHandleMovement(t *testing.T) {
	c := NewFlyController()
	tr := transform.New(mgl32.Vec3{})

	c.HandleMovement(tr, 1, 0, 0, 0.5, false)
	assertVec3Near(t, mgl32.Vec3{0, 0, -2.5}, tr.Position(), 1e-5)

	c.HandleMovement(tr, 0, 1, 1, 0.1, true)
	assertVec3Near(t, mgl32.Vec3{2, 2, -2.5}, tr.Position(), 1e-5)
}

func TestHandleZoom(t *testing.T) {
	c := NewFlyController()
	tr := transform.New(mgl32.Vec3{0, 0, 5})
	c.HandleZoom(tr, 2)
	assertVec3Near(t, mgl32.Vec3{0, 0, 3}, tr.Position(), 1e-5)
}

func TestSignedAngle(t *testing.T) {
	assert.Equal(t, float32(1), signedAngle(1))
	assert.InDelta(t, -1, signedAngle(math.TwoPi-1), 1e-5)
}

func assertVec3Near(t *testing.T, want, got mgl32.Vec3, delta float64, msgAndArgs ...any) {
	t.Helper()
	assert.InDeltaSlice(t, want[:], got[:], delta, msgAndArgs...)
}
