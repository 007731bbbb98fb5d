// Package log provides a slog.Handler wrapper that keeps log lines
// readable when attribute values are large: residue selections and
// bead ID lists can run to thousands of elements, and a debug line
// that dumps all of them is useless. The handler truncates oversized
// list and string values before delegating to the real handler.
package log
