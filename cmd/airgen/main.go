// Package main provides the entry point for the airgen CLI.
//
// airgen generates ambiguous interaction restraints (AIRs) between
// residue selections of a protein structure and a parametric virtual
// surface, for use by distance-restraint driven docking engines.
//
// Usage:
//
//	airgen surface --pdb complex.pdb --residues 19,83,145
//	airgen surface --pdb complex.pdb --residues 19,83,145 --residues 98,101,126
//
// See --help for all available options.
package main

// main is the entry point for airgen.
func main() {
	Execute()
}
