// Package spatial converts between poses, transform matrices and point
// batches, and derives the corners of oriented boxes.
//
// Quaternions cross the API in scalar-last order (x, y, z, w). Euler angles
// are intrinsic X, then Y, then Z. Points are row vectors.
package spatial

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// ErrMatrixShape is returned when a matrix is neither 3x4 nor 4x4.
var ErrMatrixShape = errors.New("transform matrix must be 3x4 or 4x4")

// Transform represents a rigid pose in 3D space
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Position: mgl64.Vec3{0, 0, 0},
		Rotation: mgl64.QuatIdent(),
	}
}

// NewTransformXYZQ creates a transform from a translation and a scalar-last
// quaternion. The quaternion is used as given, it is not normalized.
func NewTransformXYZQ(x, y, z, qx, qy, qz, qw float64) Transform {
	return Transform{
		Position: mgl64.Vec3{x, y, z},
		Rotation: QuatFromXYZW(qx, qy, qz, qw),
	}
}

// XYZQToMatrix converts a translation and a scalar-last quaternion to a
// transform matrix: 3x4 by default, 4x4 when homogeneous is true.
func XYZQToMatrix(x, y, z, qx, qy, qz, qw float64, homogeneous bool) *mat.Dense {
	return NewTransformXYZQ(x, y, z, qx, qy, qz, qw).Matrix(homogeneous)
}

// RotationMatrix returns the 3x3 rotation block.
// A non-unit quaternion gives a non-orthonormal block.
func (t Transform) RotationMatrix() mgl64.Mat3 {
	return t.Rotation.Mat4().Mat3()
}

// Mat4 returns the homogeneous 4x4 matrix, with a [0 0 0 1] bottom row.
func (t Transform) Mat4() mgl64.Mat4 {
	m := t.Rotation.Mat4()
	m.Set(0, 3, t.Position.X())
	m.Set(1, 3, t.Position.Y())
	m.Set(2, 3, t.Position.Z())

	return m
}

// Mat3x4 returns the 4x4 matrix without its bottom row.
func (t Transform) Mat3x4() mgl64.Mat3x4 {
	r := t.RotationMatrix()

	var m mgl64.Mat3x4
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			m.Set(row, col, r.At(row, col))
		}
		m.Set(row, 3, t.Position[row])
	}

	return m
}

// Matrix returns the transform as a row-major gonum matrix, 4x4 when
// homogeneous is true and 3x4 otherwise.
func (t Transform) Matrix(homogeneous bool) *mat.Dense {
	m4 := t.Mat4()

	rows := 3
	if homogeneous {
		rows = 4
	}

	dense := mat.NewDense(rows, 4, nil)
	for row := 0; row < rows; row++ {
		for col := 0; col < 4; col++ {
			dense.Set(row, col, m4.At(row, col))
		}
	}

	return dense
}

// XYZQ returns the translation followed by the scalar-last quaternion.
func (t Transform) XYZQ() [7]float64 {
	q := QuatToXYZW(t.Rotation)
	return [7]float64{t.Position.X(), t.Position.Y(), t.Position.Z(), q[0], q[1], q[2], q[3]}
}

// Compose returns t applied after other, the equivalent of multiplying
// their 4x4 matrices as t * other.
func (t Transform) Compose(other Transform) Transform {
	return Transform{
		Position: t.RotationMatrix().Mul3x1(other.Position).Add(t.Position),
		Rotation: t.Rotation.Mul(other.Rotation),
	}
}

// TransformPoints applies the transform to an Nx3 batch of points and
// returns a new Nx3 batch.
func (t Transform) TransformPoints(points mat.Matrix) *mat.Dense {
	homo := PointsToHomogeneous(points)
	n, _ := homo.Dims()
	if n == 0 {
		return &mat.Dense{}
	}

	// Row vectors: P' = P_h * T^T, with T the 3x4 matrix.
	out := mat.NewDense(n, 3, nil)
	out.Mul(homo, t.Matrix(false).T())

	return out
}

// TransformFromMatrix recovers a transform from a 3x4 or 4x4 matrix whose
// top-left 3x3 block is a rotation.
func TransformFromMatrix(m mat.Matrix) (Transform, error) {
	rows, cols := m.Dims()
	if (rows != 3 && rows != 4) || cols != 4 {
		return Transform{}, errors.Wrapf(ErrMatrixShape, "got %dx%d", rows, cols)
	}

	m4 := mgl64.Ident4()
	for row := 0; row < 3; row++ {
		for col := 0; col < 4; col++ {
			m4.Set(row, col, m.At(row, col))
		}
	}

	return Transform{
		Position: mgl64.Vec3{m4.At(0, 3), m4.At(1, 3), m4.At(2, 3)},
		Rotation: mgl64.Mat4ToQuat(m4),
	}, nil
}
