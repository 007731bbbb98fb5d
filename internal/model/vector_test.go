package model

import (
	"math"
	"testing"
)

const vecEps = 1e-12

// almostEqual reports whether two floats agree within vecEps.
func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < vecEps
}

// TestVec3Arithmetic tests the basic vector operations.
func TestVec3Arithmetic(t *testing.T) {
	t.Parallel()

	v := Vec3{1, 2, 3}
	w := Vec3{4, -5, 6}

	if got := v.Add(w); got != (Vec3{5, -3, 9}) {
		t.Errorf("Add: got %+v", got)
	}
	if got := v.Sub(w); got != (Vec3{-3, 7, -3}) {
		t.Errorf("Sub: got %+v", got)
	}
	if got := v.Scale(2); got != (Vec3{2, 4, 6}) {
		t.Errorf("Scale: got %+v", got)
	}
	if got := v.Dot(w); !almostEqual(got, 12) {
		t.Errorf("Dot: got %g, expected 12", got)
	}
}

// TestVec3Cross tests the cross product against the standard basis.
func TestVec3Cross(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		a, b     Vec3
		expected Vec3
	}{
		{"x cross y", Vec3{1, 0, 0}, Vec3{0, 1, 0}, Vec3{0, 0, 1}},
		{"y cross z", Vec3{0, 1, 0}, Vec3{0, 0, 1}, Vec3{1, 0, 0}},
		{"z cross x", Vec3{0, 0, 1}, Vec3{1, 0, 0}, Vec3{0, 1, 0}},
		{"parallel", Vec3{2, 2, 2}, Vec3{4, 4, 4}, Vec3{0, 0, 0}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.a.Cross(tc.b); got != tc.expected {
				t.Errorf("got %+v, expected %+v", got, tc.expected)
			}
		})
	}
}

// TestVec3NormAndUnit tests length and normalization.
func TestVec3NormAndUnit(t *testing.T) {
	t.Parallel()

	v := Vec3{3, 4, 0}
	if got := v.Norm(); !almostEqual(got, 5) {
		t.Errorf("Norm: got %g, expected 5", got)
	}

	u := v.Unit()
	if !almostEqual(u.Norm(), 1) {
		t.Errorf("Unit length: got %g, expected 1", u.Norm())
	}
	if !almostEqual(u.X, 0.6) || !almostEqual(u.Y, 0.8) {
		t.Errorf("Unit: got %+v", u)
	}

	// The zero vector has no direction; Unit must not produce NaNs.
	zero := Vec3{}.Unit()
	if zero != (Vec3{}) {
		t.Errorf("Unit of zero vector: got %+v, expected zero", zero)
	}
}

// TestVec3Dist tests Euclidean distance.
func TestVec3Dist(t *testing.T) {
	t.Parallel()

	a := Vec3{1, 1, 1}
	b := Vec3{1, 1, 6}
	if got := a.Dist(b); !almostEqual(got, 5) {
		t.Errorf("Dist: got %g, expected 5", got)
	}
	if got := a.Dist(a); !almostEqual(got, 0) {
		t.Errorf("Dist to self: got %g, expected 0", got)
	}
}
