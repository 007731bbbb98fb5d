// Package model defines the domain types shared across airgen:
// structures, residue selections, reference frames, surface grids,
// and restraint plans.
//
// All types in this package are plain values with no behavior beyond
// accessors and validation. The heavy lifting (geometry, grid
// construction, plan generation) lives in the packages that consume
// these types.
package model
