package lighting

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestDirection(t *testing.T) {
	tests := []struct {
		name      string
		azimuth   float32
		elevation float32
		want      mgl32.Vec3
	}{
		{"front", 0, 0, mgl32.Vec3{0, 0, 1}},
		{"right", 90, 0, mgl32.Vec3{1, 0, 0}},
		{"back", 180, 0, mgl32.Vec3{0, 0, -1}},
		{"zenith", 0, 90, mgl32.Vec3{0, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Direction(tt.azimuth, tt.elevation)
			assertVec3Near(t, tt.want, got, 1e-5)
			assert.InDelta(t, 1, got.Len(), 1e-5)
		})
	}
}

func TestOrbiterPosition(t *testing.T) {
	o := Orbiter{Center: mgl32.Vec3{1, 2, 3}, Radius: 10, Speed: 90}

	start := o.Position(0)
	assertVec3Near(t, mgl32.Vec3{1, 2, 13}, start, 1e-4)

	quarter := o.Position(time.Second)
	assertVec3Near(t, mgl32.Vec3{11, 2, 3}, quarter, 1e-4)

	// a full turn comes back around
	full := o.Position(4 * time.Second)
	assertVec3Near(t, start, full, 1e-3)
}

func TestDefaultOrbiterElevated(t *testing.T) {
	for _, s := range []time.Duration{0, time.Second, 5 * time.Second} {
		p := DefaultOrbiter.Position(s)
		assert.InDelta(t, 5, p.Y(), 1e-4)
		assert.InDelta(t, 10, p.Len(), 1e-4)
	}
}

func assertVec3Near(t *testing.T, want, got mgl32.Vec3, delta float64, msgAndArgs ...any) {
	t.Helper()
	assert.InDeltaSlice(t, want[:], got[:], delta, msgAndArgs...)
}
