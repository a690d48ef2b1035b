// Package adegenet holds build information shared by the CLI.
package adegenet

var (
	// Version of the application, set by build flags.
	Version = "v0.1.0"
	// Build timestamp, set by build flags.
	Build = "n/a"
)
