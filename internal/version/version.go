package version

// Build-time variables set by ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info returns version information
func Info() (string, string, string) {
	return Version, GitCommit, BuildDate
}

// String returns a single-line version string for CLI and API output.
func String() string {
	return Version + " (commit: " + GitCommit + ", built: " + BuildDate + ")"
}
