package geom

import (
	"math"
	"testing"
)

func TestNorms(t *testing.T) {
	if got := (Vector2{X: 3, Y: 4}).Norm(); got != 5 {
		t.Fatalf("Vector2.Norm = %v, wanted 5", got)
	}
	if got := (Vector3{X: 2, Y: 3, Z: 6}).Norm(); got != 7 {
		t.Fatalf("Vector3.Norm = %v, wanted 7", got)
	}
	if got := (VectorX{3, 4}).Norm(); got != 5 {
		t.Fatalf("VectorX.Norm = %v, wanted 5", got)
	}
	if got := (Quaternion{W: 1}).Norm(); got != 1 {
		t.Fatalf("Quaternion.Norm = %v, wanted 1", got)
	}
}

func TestQuaternionNormalized(t *testing.T) {
	q := Quaternion{W: 2, X: 0, Y: 0, Z: 0}
	n := q.Normalized()
	if n.W != 1 || n.X != 0 {
		t.Fatalf("Normalized = %+v, wanted identity", n)
	}

	zero := Quaternion{}
	if got := zero.Normalized(); got != zero {
		t.Fatalf("Normalized(zero) = %+v, wanted zero unchanged", got)
	}
}

func TestQuaternionApproxEqual(t *testing.T) {
	q := Quaternion{W: 1, X: 0.5, Y: 0.25, Z: 0.125}
	scaled := Quaternion{W: 2, X: 1, Y: 0.5, Z: 0.25}
	if !q.ApproxEqual(scaled, 1e-12) {
		t.Fatalf("ApproxEqual(scaled) = false, wanted true (same direction)")
	}
	other := Quaternion{W: 1, X: 0, Y: 0, Z: 0}
	if q.ApproxEqual(other, 1e-12) {
		t.Fatalf("ApproxEqual(other) = true, wanted false")
	}
}

func TestMatrix3(t *testing.T) {
	m := Matrix3{1, 2, 3, 4, 5, 6, 7, 8, 9}
	if got := m.At(1, 2); got != 6 {
		t.Fatalf("At(1, 2) = %v, wanted 6", got)
	}
	id := Identity3()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			if got := id.At(i, j); got != want {
				t.Fatalf("Identity3.At(%d, %d) = %v, wanted %v", i, j, got, want)
			}
		}
	}
}

func TestVectorXNormEmpty(t *testing.T) {
	if got := (VectorX{}).Norm(); got != 0 || math.IsNaN(got) {
		t.Fatalf("Norm(empty) = %v, wanted 0", got)
	}
}
