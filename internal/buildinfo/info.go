// Package buildinfo carries the version stamp the release build injects
// with -ldflags; a plain `go build` reports a dev binary.
package buildinfo

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
