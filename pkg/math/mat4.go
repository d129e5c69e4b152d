// Package math provides the float32 transform math used by the engine.
// Vectors and matrices are mgl32 value types: column-major, column vectors.
package math

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Identity returns an identity matrix.
func Identity() mgl32.Mat4 {
	return mgl32.Ident4()
}

// EulerRotation builds the rotation matrix for Euler angles in radians
// (pitch about X, yaw about Y, roll about Z) in a single pass.
// The result equals RotY(yaw) * RotX(pitch) * RotZ(roll).
func EulerRotation(pitch, yaw, roll float32) mgl32.Mat4 {
	sp, cp := math32.Sincos(pitch)
	sy, cy := math32.Sincos(yaw)
	sr, cr := math32.Sincos(roll)

	m00 := cy*cr + sy*sp*sr
	m01 := -cy*sr + sy*sp*cr
	m02 := sy * cp
	m10 := cp * sr
	m11 := cp * cr
	m12 := -sp
	m20 := -sy*cr + cy*sp*sr
	m21 := sy*sr + cy*sp*cr
	m22 := cy * cp

	return mgl32.Mat4{
		m00, m10, m20, 0,
		m01, m11, m21, 0,
		m02, m12, m22, 0,
		0, 0, 0, 1,
	}
}

// EulerRotationSlow composes the three axis rotations with full matrix
// multiplies. Same result as EulerRotation.
func EulerRotationSlow(pitch, yaw, roll float32) mgl32.Mat4 {
	return mgl32.HomogRotate3DY(yaw).
		Mul4(mgl32.HomogRotate3DX(pitch)).
		Mul4(mgl32.HomogRotate3DZ(roll))
}

// TransformMatrix returns local placed by scale, then rotation, then
// translation: T * R * S * local.
func TransformMatrix(local mgl32.Mat4, pos mgl32.Vec3, rot mgl32.Mat4, scale mgl32.Vec3) mgl32.Mat4 {
	m := rot
	// scale the rotation columns
	for col := 0; col < 3; col++ {
		s := scale[col]
		m[col*4+0] *= s
		m[col*4+1] *= s
		m[col*4+2] *= s
	}
	m[12], m[13], m[14] = pos[0], pos[1], pos[2]
	return m.Mul4(local)
}

// InverseTransformMatrix returns the inverse of TransformMatrix with an
// identity local matrix, built in closed form: S^-1 * R^T * T^-1.
// A zero scale component maps to zero instead of infinity.
func InverseTransformMatrix(pos mgl32.Vec3, rot mgl32.Mat4, scale mgl32.Vec3) mgl32.Mat4 {
	inv := [3]float32{safeInv(scale[0]), safeInv(scale[1]), safeInv(scale[2])}

	var m mgl32.Mat4
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			// transpose of rot, row scaled by inverse scale
			m[col*4+row] = rot[row*4+col] * inv[row]
		}
	}
	for row := 0; row < 3; row++ {
		m[12+row] = -(m[row]*pos[0] + m[4+row]*pos[1] + m[8+row]*pos[2])
	}
	m[15] = 1
	return m
}

func safeInv(v float32) float32 {
	if v == 0 {
		return 0
	}
	return 1 / v
}

// Perspective returns a perspective projection. fovY is in degrees.
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(fovY), aspect, near, far)
}

// Ortho returns an orthographic projection covering the viewport in pixels
// with origin at bottom-left.
func Ortho(width, height, near, far float32) mgl32.Mat4 {
	return mgl32.Ortho(0, width, 0, height, near, far)
}

// Ortho2D is Ortho with a [-1, 1] depth range, used for overlays.
func Ortho2D(width, height float32) mgl32.Mat4 {
	return mgl32.Ortho2D(0, width, 0, height)
}
