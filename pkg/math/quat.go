package math

import "github.com/go-gl/mathgl/mgl32"

// QuatFromEuler returns the quaternion for the same rotation as
// EulerRotation. Slower than the direct matrix; kept for interpolation.
func QuatFromEuler(pitch, yaw, roll float32) mgl32.Quat {
	return mgl32.QuatRotate(yaw, mgl32.Vec3{0, 1, 0}).
		Mul(mgl32.QuatRotate(pitch, mgl32.Vec3{1, 0, 0})).
		Mul(mgl32.QuatRotate(roll, mgl32.Vec3{0, 0, 1})).
		Normalize()
}

// EulerRotationQuat builds the rotation matrix through QuatFromEuler.
func EulerRotationQuat(pitch, yaw, roll float32) mgl32.Mat4 {
	return QuatFromEuler(pitch, yaw, roll).Mat4()
}
