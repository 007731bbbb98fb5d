// Package pdb reads the subset of the PDB format airgen needs: ATOM
// records of the first model, reduced per residue to the alpha-carbon
// coordinate and the side-chain heavy-atom centroid.
//
// The format is line-oriented with fixed column positions, so parsing
// is plain column slicing. Gzipped files (.gz) are decompressed
// transparently.
package pdb
