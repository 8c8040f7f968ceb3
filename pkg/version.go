// Package ifcdb holds build information for the IFCdb application.
package ifcdb

var (
	// Version of the application, set during the build.
	Version = "v0.1.0"

	// Build timestamp, set during the build.
	Build = "n/a"
)
