// Package database stores run history in SQLite: one row per
// invocation with its parameters, plus one row per generated plan.
// The history makes restraint setups reproducible and lets the
// history command show what was generated for a structure over time.
package database
