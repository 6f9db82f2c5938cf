// Package geom provides the small fixed-size geometric value types that the
// dictionary stores natively: planar and spatial vectors, quaternions, 3×3
// matrices, and a dynamic-length vector.
//
// On the wire they are plain arrays of numbers: Vector2 is [x, y], Vector3 is
// [x, y, z], Quaternion is [w, x, y, z], Matrix3 is a row-major 9-element
// array, and VectorX is an array of its current length.
package geom

import "math"

type Vector2 struct {
	X, Y float64
}

type Vector3 struct {
	X, Y, Z float64
}

// VectorX is a dynamic-length vector. Unlike the fixed-size types, updating
// it from the wire adopts the wire array's length.
type VectorX []float64

// Quaternion with scalar part W first, matching the [w, x, y, z] wire order.
type Quaternion struct {
	W, X, Y, Z float64
}

// Matrix3 is a 3×3 matrix in row-major order.
type Matrix3 [9]float64

func (v Vector2) Norm() float64 {
	return math.Hypot(v.X, v.Y)
}

func (v Vector3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

func (v VectorX) Norm() float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

func (q Quaternion) Norm() float64 {
	return math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
}

// Normalized returns q scaled to unit norm. A zero quaternion is returned
// unchanged.
func (q Quaternion) Normalized() Quaternion {
	n := q.Norm()
	if n == 0 {
		return q
	}
	return Quaternion{q.W / n, q.X / n, q.Y / n, q.Z / n}
}

// ApproxEqual reports whether q and p represent nearly the same value after
// normalization. Quaternions may come back normalized from a round trip, so
// equality checks on deserialized values should go through this.
func (q Quaternion) ApproxEqual(p Quaternion, tol float64) bool {
	qn, pn := q.Normalized(), p.Normalized()
	return math.Abs(qn.W-pn.W) <= tol &&
		math.Abs(qn.X-pn.X) <= tol &&
		math.Abs(qn.Y-pn.Y) <= tol &&
		math.Abs(qn.Z-pn.Z) <= tol
}

// At returns the element at row i, column j.
func (m Matrix3) At(i, j int) float64 {
	return m[3*i+j]
}

// Identity3 returns the 3×3 identity matrix.
func Identity3() Matrix3 {
	return Matrix3{1, 0, 0, 0, 1, 0, 0, 0, 1}
}
