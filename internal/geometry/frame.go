package geometry

import (
	"gonum.org/v1/gonum/mat"

	"github.com/bioprep/airgen/internal/model"
)

// collinearTol is the relative eigenvalue threshold below which the
// anchor cloud is treated as collinear: if the second-smallest
// eigenvalue of the covariance matrix is this fraction of the largest
// or less, the points span (numerically) at most a line.
const collinearTol = 1e-9

// FallbackNormal is the world axis used when the anchor cloud is
// degenerate and the caller opted into the fallback.
var FallbackNormal = model.Vec3{X: 0, Y: 0, Z: 1}

// Centroid returns the arithmetic mean of the points.
// It panics on an empty slice; callers validate anchors first.
func Centroid(points []model.Vec3) model.Vec3 {
	var sum model.Vec3
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float64(len(points)))
}

// ComputeFrame derives the reference frame from the anchor point
// cloud. The origin is the centroid; the normal is the eigenvector of
// the covariance matrix belonging to the smallest eigenvalue, i.e.
// the direction the cloud is flattest in. The result is independent
// of point order.
//
// When the cloud is degenerate (fewer than 3 distinct points, or all
// points collinear), the frame falls back to FallbackNormal if
// fallback is true and fails with DegenerateGeometryError otherwise.
func ComputeFrame(points []model.Vec3, fallback bool) (model.ReferenceFrame, error) {
	if len(points) == 0 {
		return model.ReferenceFrame{}, &model.DegenerateGeometryError{
			Points: 0,
			Reason: "no anchor points",
		}
	}

	origin := Centroid(points)
	distinct := countDistinct(points)

	if distinct < 3 {
		return degenerateFrame(origin, len(points), distinct, "too few distinct points", fallback)
	}

	normal, ok := minimalVarianceAxis(points, origin)
	if !ok {
		return degenerateFrame(origin, len(points), distinct, "collinear points", fallback)
	}

	return model.ReferenceFrame{
		Origin:      origin,
		Normal:      normal,
		AnchorCount: len(points),
	}, nil
}

// degenerateFrame resolves a degenerate cloud: fallback axis when
// configured, error otherwise.
func degenerateFrame(origin model.Vec3, total, distinct int, reason string, fallback bool) (model.ReferenceFrame, error) {
	if fallback {
		return model.ReferenceFrame{
			Origin:      origin,
			Normal:      FallbackNormal,
			AnchorCount: total,
		}, nil
	}
	return model.ReferenceFrame{}, &model.DegenerateGeometryError{
		Points: distinct,
		Reason: reason,
	}
}

// minimalVarianceAxis returns the unit eigenvector of the covariance
// matrix with the smallest eigenvalue. It reports false when the
// cloud is collinear (the two smallest eigenvalues vanish relative to
// the largest), in which case the plane orientation is ambiguous.
//
// The sign of an eigenvector is arbitrary, so the result is
// normalized to point toward +Z (ties broken on +Y, then +X) to keep
// the frame deterministic across runs and eigen backends.
func minimalVarianceAxis(points []model.Vec3, origin model.Vec3) (model.Vec3, bool) {
	cov := covariance(points, origin)

	var eig mat.EigenSym
	if !eig.Factorize(cov, true) {
		return model.Vec3{}, false
	}

	// EigenSym returns eigenvalues in ascending order.
	values := eig.Values(nil)
	if values[2] <= 0 {
		// All points coincide; no spread in any direction.
		return model.Vec3{}, false
	}
	if values[1] <= collinearTol*values[2] {
		return model.Vec3{}, false
	}

	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	normal := model.Vec3{
		X: vectors.At(0, 0),
		Y: vectors.At(1, 0),
		Z: vectors.At(2, 0),
	}.Unit()

	return orientNormal(normal), true
}

// covariance builds the 3x3 covariance matrix of the centered cloud.
func covariance(points []model.Vec3, origin model.Vec3) *mat.SymDense {
	var xx, xy, xz, yy, yz, zz float64
	for _, p := range points {
		d := p.Sub(origin)
		xx += d.X * d.X
		xy += d.X * d.Y
		xz += d.X * d.Z
		yy += d.Y * d.Y
		yz += d.Y * d.Z
		zz += d.Z * d.Z
	}
	n := float64(len(points))
	return mat.NewSymDense(3, []float64{
		xx / n, xy / n, xz / n,
		xy / n, yy / n, yz / n,
		xz / n, yz / n, zz / n,
	})
}

// orientNormal fixes the arbitrary eigenvector sign: positive Z,
// tie-broken on Y, then X.
func orientNormal(n model.Vec3) model.Vec3 {
	switch {
	case n.Z != 0:
		if n.Z < 0 {
			return n.Scale(-1)
		}
	case n.Y != 0:
		if n.Y < 0 {
			return n.Scale(-1)
		}
	case n.X < 0:
		return n.Scale(-1)
	}
	return n
}

// countDistinct counts exactly distinct points. Exact comparison is
// intentional: coordinates come straight from the input file, and two
// residues sharing an identical coordinate is the condition we care
// about.
func countDistinct(points []model.Vec3) int {
	seen := make(map[model.Vec3]bool, len(points))
	for _, p := range points {
		seen[p] = true
	}
	return len(seen)
}
