// Package geometry derives the reference frame that orients the
// virtual surface: the centroid of the anchor point cloud and the
// principal axis of minimal variance, found by eigen-decomposition
// of the anchor covariance matrix.
//
// Everything here is a pure function of its inputs. The package
// operates on plain point clouds so that residue resolution (and its
// error reporting) stays with the caller.
package geometry
