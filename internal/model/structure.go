package model

// Residue holds the coordinates airgen keeps for one residue of the
// input structure. Only the representative points used for restraint
// generation are retained; full atom lists are discarded at parse time.
type Residue struct {
	// Number is the residue sequence number from the PDB file.
	Number int `json:"number"`

	// Name is the three-letter residue name (e.g. "ALA").
	Name string `json:"name"`

	// Chain is the one-character chain identifier.
	Chain string `json:"chain"`

	// CA is the alpha-carbon coordinate.
	CA Vec3 `json:"ca"`

	// SideChain is the centroid of the side-chain heavy atoms.
	// For glycine (no side chain) this equals CA and HasSideChain
	// is false.
	SideChain Vec3 `json:"side_chain"`

	// HasSideChain reports whether SideChain was computed from at
	// least one side-chain heavy atom.
	HasSideChain bool `json:"has_side_chain"`
}

// Coord returns the representative coordinate used when restraining
// this residue: the side-chain centroid when available, otherwise CA.
func (r *Residue) Coord() Vec3 {
	if r.HasSideChain {
		return r.SideChain
	}
	return r.CA
}

// Structure is an immutable, read-only view of a parsed structure.
// It is built once by the pdb package and then shared by every plan
// generator in the invocation; nothing mutates it after construction.
type Structure struct {
	// Path is the file the structure was parsed from.
	Path string `json:"path"`

	residues map[int]*Residue
	order    []int
}

// NewStructure creates a Structure from residues in file order.
// Later duplicates of a residue number are ignored; the first
// occurrence wins, matching how alternate locations are handled.
func NewStructure(path string, residues []*Residue) *Structure {
	s := &Structure{
		Path:     path,
		residues: make(map[int]*Residue, len(residues)),
		order:    make([]int, 0, len(residues)),
	}
	for _, r := range residues {
		if _, ok := s.residues[r.Number]; ok {
			continue
		}
		s.residues[r.Number] = r
		s.order = append(s.order, r.Number)
	}
	return s
}

// Residue returns the residue with the given sequence number.
// The second return value is false when the residue is absent.
func (s *Structure) Residue(number int) (*Residue, bool) {
	r, ok := s.residues[number]
	return r, ok
}

// ResidueCoord returns the representative coordinate for the residue,
// or false when the residue is absent from the structure.
func (s *Structure) ResidueCoord(number int) (Vec3, bool) {
	r, ok := s.residues[number]
	if !ok {
		return Vec3{}, false
	}
	return r.Coord(), true
}

// Residues returns the residue numbers in file order.
// The returned slice is a copy; callers may modify it freely.
func (s *Structure) Residues() []int {
	out := make([]int, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of residues in the structure.
func (s *Structure) Len() int {
	return len(s.order)
}
