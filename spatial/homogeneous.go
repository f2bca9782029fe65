package spatial

import (
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/mat"
)

// PointsToHomogeneous appends a coordinate equal to 1 to every row of an
// Nx3 batch, producing Nx4. Row order and count are preserved.
func PointsToHomogeneous(points mat.Matrix) *mat.Dense {
	n, cols := points.Dims()
	if n == 0 {
		return &mat.Dense{}
	}

	homo := mat.NewDense(n, cols+1, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < cols; j++ {
			homo.Set(i, j, points.At(i, j))
		}
		homo.Set(i, cols, 1)
	}

	return homo
}

// HomogeneousToPoints keeps the first 3 coordinates of every row of an Nx4
// (or wider) batch. It does not divide by the last coordinate.
func HomogeneousToPoints(points mat.Matrix) *mat.Dense {
	n, cols := points.Dims()
	if n == 0 {
		return &mat.Dense{}
	}
	if cols < 3 {
		panic(mat.ErrShape)
	}

	out := mat.NewDense(n, 3, nil)
	out.Copy(points)

	return out
}

// Vec3sToHomogeneous is the slice form of PointsToHomogeneous.
func Vec3sToHomogeneous(points []mgl64.Vec3) []mgl64.Vec4 {
	homo := make([]mgl64.Vec4, len(points))
	for i, p := range points {
		homo[i] = p.Vec4(1)
	}

	return homo
}

// HomogeneousToVec3s is the slice form of HomogeneousToPoints.
func HomogeneousToVec3s(points []mgl64.Vec4) []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(points))
	for i, p := range points {
		out[i] = p.Vec3()
	}

	return out
}
