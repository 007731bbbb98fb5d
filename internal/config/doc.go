// Package config holds airgen's configuration: surface dimensions,
// bead selection policy, restraint bounds, and output options. It is
// populated from CLI flags (optionally seeded from a .airgen YAML
// file) and passed through the application by dependency injection
// rather than global state.
package config
