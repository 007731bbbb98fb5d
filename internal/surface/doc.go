// Package surface constructs the rectangular grid of virtual beads
// that residue selections are restrained against. The grid lies on
// the plane through the reference frame origin offset by the standoff
// distance along the frame normal, and its bead ordering is
// deterministic so bead identifiers stay stable across runs.
package surface
