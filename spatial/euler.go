package spatial

import "github.com/go-gl/mathgl/mgl64"

// QuatFromXYZW builds a quaternion from scalar-last components.
func QuatFromXYZW(qx, qy, qz, qw float64) mgl64.Quat {
	return mgl64.Quat{W: qw, V: mgl64.Vec3{qx, qy, qz}}
}

// QuatToXYZW returns the quaternion components in scalar-last order.
func QuatToXYZW(q mgl64.Quat) mgl64.Vec4 {
	return mgl64.Vec4{q.X(), q.Y(), q.Z(), q.W}
}

// EulerToQuat converts intrinsic X, then Y, then Z rotation angles to a
// quaternion. Angles are radians unless degrees is set.
func EulerToQuat(ex, ey, ez float64, degrees bool) mgl64.Quat {
	if degrees {
		ex, ey, ez = mgl64.DegToRad(ex), mgl64.DegToRad(ey), mgl64.DegToRad(ez)
	}

	// Intrinsic rotations compose to the right: R = Rx * Ry * Rz
	qx := mgl64.QuatRotate(ex, mgl64.Vec3{1, 0, 0})
	qy := mgl64.QuatRotate(ey, mgl64.Vec3{0, 1, 0})
	qz := mgl64.QuatRotate(ez, mgl64.Vec3{0, 0, 1})

	return qx.Mul(qy).Mul(qz)
}
