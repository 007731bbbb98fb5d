package config

import "errors"

// Configuration validation errors returned by Config.Validate().
// Package-level sentinels so callers can use errors.Is while the
// messages stay human-readable.
var (
	// ErrNoPDB is returned when no structure input file is given.
	ErrNoPDB = errors.New("no structure specified: provide a PDB file with --pdb")

	// ErrNoSelections is returned when no --residues group is given.
	ErrNoSelections = errors.New("no residue selections: provide at least one --residues group")

	// ErrNoOutputPrefix is returned when the output prefix is empty.
	ErrNoOutputPrefix = errors.New("empty output prefix: provide a base name with --output")

	// ErrInvalidTopK is returned when the topk policy is selected
	// with a non-positive K.
	ErrInvalidTopK = errors.New("invalid top-k: must be positive when --policy topk is used")

	// ErrInvalidRadius is returned when the radius policy is
	// selected with a non-positive radius.
	ErrInvalidRadius = errors.New("invalid radius: must be positive when --policy radius is used")

	// ErrInvalidTolerance is returned when the distance tolerance
	// is negative. Zero disables the slack; negative would make the
	// upper bound tighter than the observed geometry.
	ErrInvalidTolerance = errors.New("invalid tolerance: must be non-negative")

	// ErrInvalidAnchor is returned for an unknown anchor mode.
	ErrInvalidAnchor = errors.New("invalid anchor mode: must be \"selections\" or \"structure\"")

	// ErrInvalidConcurrency is returned when the concurrency cap is
	// not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")
)
