package spatial

import (
	"math"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/mat"
)

// unitBoxCorners is the corner template of a unit box centered on the
// origin. The +X face comes first, its Y/Z square walked counter-clockwise
// seen from +X, then the -X face in the same pattern. Consumers match
// corners by index, so this order must not change.
var unitBoxCorners = [8]mgl64.Vec3{
	{0.5, -0.5, -0.5},
	{0.5, 0.5, -0.5},
	{0.5, 0.5, 0.5},
	{0.5, -0.5, 0.5},
	{-0.5, -0.5, -0.5},
	{-0.5, 0.5, -0.5},
	{-0.5, 0.5, 0.5},
	{-0.5, -0.5, 0.5},
}

// OrientedBox is a box with a center, a per-axis scale and an arbitrary
// orientation. It is immutable; build a new box to move it.
//
// Scale components of zero give a degenerate box, negative ones mirror it
// along that axis.
type OrientedBox struct {
	position mgl64.Vec3
	scale    mgl64.Vec3
	rotation mgl64.Quat

	// corners is filled on first access. Concurrent first accesses may
	// both compute it; the results are identical.
	corners atomic.Pointer[[8]mgl64.Vec3]
}

// NewOrientedBox creates a box from its center, its scale and a quaternion
// given as (x, y, z, w). The quaternion is not normalized.
func NewOrientedBox(position, scale mgl64.Vec3, quat mgl64.Vec4) *OrientedBox {
	return &OrientedBox{
		position: position,
		scale:    scale,
		rotation: QuatFromXYZW(quat[0], quat[1], quat[2], quat[3]),
	}
}

// NewOrientedBoxFromPositionScaleEuler creates a box from its center, its
// scale and intrinsic XYZ Euler angles, in radians unless degrees is set.
func NewOrientedBoxFromPositionScaleEuler(
	posX, posY, posZ float64,
	scaleX, scaleY, scaleZ float64,
	eulerX, eulerY, eulerZ float64,
	degrees bool,
) *OrientedBox {
	q := EulerToQuat(eulerX, eulerY, eulerZ, degrees)

	return NewOrientedBox(
		mgl64.Vec3{posX, posY, posZ},
		mgl64.Vec3{scaleX, scaleY, scaleZ},
		QuatToXYZW(q),
	)
}

// Position returns the center of the box.
func (b *OrientedBox) Position() mgl64.Vec3 {
	return b.position
}

// Scale returns the extent of the box along each of its local axes.
func (b *OrientedBox) Scale() mgl64.Vec3 {
	return b.scale
}

// Quaternion returns the orientation as (x, y, z, w).
func (b *OrientedBox) Quaternion() mgl64.Vec4 {
	return QuatToXYZW(b.rotation)
}

// Transform returns the pose of the box center.
func (b *OrientedBox) Transform() Transform {
	return Transform{Position: b.position, Rotation: b.rotation}
}

// Corners returns the 8 world-space corners of the box, in the order of
// the unit box template. They are computed once and cached.
func (b *OrientedBox) Corners() [8]mgl64.Vec3 {
	if corners := b.corners.Load(); corners != nil {
		return *corners
	}

	corners := b.computeCorners()
	b.corners.Store(&corners)

	return corners
}

// CornersMatrix returns Corners as an 8x3 matrix, one corner per row.
func (b *OrientedBox) CornersMatrix() *mat.Dense {
	corners := b.Corners()

	m := mat.NewDense(len(corners), 3, nil)
	for i, c := range corners {
		m.SetRow(i, c[:])
	}

	return m
}

func (b *OrientedBox) computeCorners() [8]mgl64.Vec3 {
	R := b.Transform().RotationMatrix()

	var corners [8]mgl64.Vec3
	for i, c := range unitBoxCorners {
		scaled := mgl64.Vec3{c.X() * b.scale.X(), c.Y() * b.scale.Y(), c.Z() * b.scale.Z()}
		corners[i] = R.Mul3x1(scaled).Add(b.position)
	}

	return corners
}

// AABB returns the axis-aligned bounding box of the corners
func (b *OrientedBox) AABB() AABB {
	corners := b.Corners()
	return AABBFromPoints(corners[:])
}

// Volume returns the volume enclosed by the box
func (b *OrientedBox) Volume() float64 {
	return math.Abs(b.scale.X() * b.scale.Y() * b.scale.Z())
}
