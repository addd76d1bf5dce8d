// Package version provides information about the build version of the tool.
package version

// BuildInfo holds version information about the tool build.
type BuildInfo struct {
	Tool    string
	Version string
	Commit  string
	Date    string
}

// Info returns the build information. The version, commit, and date variables
// are intended to be set at build time using -ldflags.
func Info() BuildInfo {
	// Set via -ldflags "-X 'geekfill/internal/core/version.version=v0.0.1'
	// -X 'geekfill/internal/core/version.commit=abcd' -X 'geekfill/internal/core/version.date=2026-08-29'"
	return BuildInfo{
		Tool:    "geekfill",
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
