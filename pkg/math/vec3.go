package math

import (
	gomath "math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// TwoPi is a full revolution in radians.
const TwoPi = float32(2 * gomath.Pi)

var (
	WorldRight = mgl32.Vec3{1, 0, 0}
	WorldUp    = mgl32.Vec3{0, 1, 0}
	// WorldFront is the look direction of an unrotated object.
	WorldFront = mgl32.Vec3{0, 0, -1}
)

// WrapAngle wraps an angle in radians into [0, 2π).
func WrapAngle(a float32) float32 {
	if a >= 0 && a < TwoPi {
		return a
	}
	a = math32.Mod(a, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	// a tiny negative input rounds up to exactly 2π
	if a >= TwoPi {
		a = 0
	}
	return a
}

// WrapAngles wraps every component of v with WrapAngle.
func WrapAngles(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{WrapAngle(v[0]), WrapAngle(v[1]), WrapAngle(v[2])}
}

// Basis extracts the right, up and front directions from a rotation
// matrix. Front points down the rotated -Z axis.
func Basis(rot mgl32.Mat4) (right, up, front mgl32.Vec3) {
	right = mgl32.Vec3{rot[0], rot[1], rot[2]}
	up = mgl32.Vec3{rot[4], rot[5], rot[6]}
	front = mgl32.Vec3{-rot[8], -rot[9], -rot[10]}
	return right, up, front
}

// ViewBasis extracts the world-space right, up and front directions from
// a view matrix. Scale is normalized away.
func ViewBasis(view mgl32.Mat4) (right, up, front mgl32.Vec3) {
	right = normalizeOr(mgl32.Vec3{view[0], view[4], view[8]}, WorldRight)
	up = normalizeOr(mgl32.Vec3{view[1], view[5], view[9]}, WorldUp)
	front = normalizeOr(mgl32.Vec3{-view[2], -view[6], -view[10]}, WorldFront)
	return right, up, front
}

func normalizeOr(v, fallback mgl32.Vec3) mgl32.Vec3 {
	if v.Len() == 0 {
		return fallback
	}
	return v.Normalize()
}
