// Package report serializes run results: CNS-style restraint tables
// (one file per plan), a pseudo-atom PDB for the surface beads, JSON
// for machine consumers, and a Markdown run summary.
//
// All writers format deterministically so identical runs produce
// byte-identical artifacts.
package report
