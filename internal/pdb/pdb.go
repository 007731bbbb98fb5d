package pdb

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bioprep/airgen/internal/model"
)

// backboneAtoms are the atom names excluded from the side-chain
// centroid. Everything else that is a heavy atom counts as side chain.
var backboneAtoms = map[string]bool{
	"N":   true,
	"CA":  true,
	"C":   true,
	"O":   true,
	"OXT": true,
}

// rawAtom is one parsed ATOM record, before residues are assembled.
type rawAtom struct {
	name    string
	resName string
	chain   string
	resSeq  int
	coord   model.Vec3
	element string
}

// Read parses a PDB file into a Structure. Files ending in ".gz" are
// gzip-decompressed. Only ATOM records of the first model are used;
// HETATM records (waters, ligands) and hydrogens are skipped, as are
// alternate locations other than the primary one.
func Read(path string) (*model.Structure, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var reader io.Reader = f
	if filepath.Ext(path) == ".gz" {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	return Parse(reader, path)
}

// Parse reads PDB text from r. The path parameter only labels the
// resulting Structure and error messages.
func Parse(r io.Reader, path string) (*model.Structure, error) {
	var atoms []rawAtom

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		record := strings.TrimSpace(field(line, 0, 6))
		switch record {
		case "ENDMDL":
			// Multi-model files (NMR ensembles): only the first
			// model contributes coordinates.
			goto done
		case "ATOM":
			atom, ok, err := parseAtom(line)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
			}
			if ok {
				atoms = append(atoms, atom)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

done:
	if len(atoms) == 0 {
		return nil, fmt.Errorf("%s: no ATOM records found", path)
	}

	return model.NewStructure(path, buildResidues(atoms)), nil
}

// parseAtom extracts the fields airgen needs from one ATOM line.
// The bool result is false for records that are skipped rather than
// rejected (hydrogens, secondary alternate locations, short lines).
func parseAtom(line string) (rawAtom, bool, error) {
	// Coordinates end at column 54; anything shorter is not a
	// usable ATOM record.
	if len(line) < 54 {
		return rawAtom{}, false, nil
	}

	altLoc := field(line, 16, 17)
	if altLoc != " " && altLoc != "A" {
		return rawAtom{}, false, nil
	}

	name := strings.TrimSpace(field(line, 12, 16))
	element := strings.TrimSpace(field(line, 76, 78))
	if element == "" {
		// Old files omit the element column; fall back to the
		// atom-name convention (column 13 blank for single-letter
		// elements, so the first non-digit letter is the element).
		element = elementFromName(name)
	}
	if element == "H" || element == "D" {
		return rawAtom{}, false, nil
	}

	resSeq, err := strconv.Atoi(strings.TrimSpace(field(line, 22, 26)))
	if err != nil {
		return rawAtom{}, false, fmt.Errorf("invalid residue sequence number %q", field(line, 22, 26))
	}

	coord := model.Vec3{}
	for i, dst := range []*float64{&coord.X, &coord.Y, &coord.Z} {
		v, err := strconv.ParseFloat(strings.TrimSpace(field(line, 30+8*i, 38+8*i)), 64)
		if err != nil {
			return rawAtom{}, false, fmt.Errorf("invalid coordinate %q", field(line, 30+8*i, 38+8*i))
		}
		*dst = v
	}

	return rawAtom{
		name:    name,
		resName: strings.TrimSpace(field(line, 17, 20)),
		chain:   field(line, 21, 22),
		resSeq:  resSeq,
		coord:   coord,
		element: element,
	}, true, nil
}

// buildResidues groups atoms into residues in file order, computing
// the CA coordinate and side-chain centroid for each.
func buildResidues(atoms []rawAtom) []*model.Residue {
	type accum struct {
		residue      *model.Residue
		sideSum      model.Vec3
		sideCount    int
		haveCA       bool
		haveAnyAtom  bool
		fallbackSum  model.Vec3
		fallbackSeen int
	}

	var order []int
	byNumber := make(map[int]*accum)

	for _, a := range atoms {
		acc, ok := byNumber[a.resSeq]
		if !ok {
			acc = &accum{residue: &model.Residue{
				Number: a.resSeq,
				Name:   a.resName,
				Chain:  strings.TrimSpace(a.chain),
			}}
			byNumber[a.resSeq] = acc
			order = append(order, a.resSeq)
		}

		acc.haveAnyAtom = true
		acc.fallbackSum = acc.fallbackSum.Add(a.coord)
		acc.fallbackSeen++

		if a.name == "CA" {
			if !acc.haveCA {
				acc.residue.CA = a.coord
				acc.haveCA = true
			}
			continue
		}
		if !backboneAtoms[a.name] {
			acc.sideSum = acc.sideSum.Add(a.coord)
			acc.sideCount++
		}
	}

	residues := make([]*model.Residue, 0, len(order))
	for _, n := range order {
		acc := byNumber[n]
		r := acc.residue

		if !acc.haveCA {
			// CA missing (rare truncated records): use the mean of
			// whatever atoms the residue has.
			r.CA = acc.fallbackSum.Scale(1 / float64(acc.fallbackSeen))
		}
		if acc.sideCount > 0 {
			r.SideChain = acc.sideSum.Scale(1 / float64(acc.sideCount))
			r.HasSideChain = true
		} else {
			r.SideChain = r.CA
		}
		residues = append(residues, r)
	}
	return residues
}

// field returns the column range [from, to) of the line, padded with
// spaces when the line is shorter than the record layout says.
func field(line string, from, to int) string {
	if from >= len(line) {
		return strings.Repeat(" ", to-from)
	}
	if to > len(line) {
		return line[from:] + strings.Repeat(" ", to-len(line))
	}
	return line[from:to]
}

// elementFromName guesses the element from the atom-name columns for
// files without the element field. Names are right-padded so a
// leading digit (e.g. "1HB") marks a hydrogen variant.
func elementFromName(name string) string {
	for _, c := range name {
		switch {
		case c >= '0' && c <= '9':
			return "H"
		case c >= 'A' && c <= 'Z':
			return string(c)
		}
	}
	return ""
}
