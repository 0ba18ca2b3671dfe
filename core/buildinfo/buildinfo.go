package buildinfo

// Set via -ldflags at build time:
//
//	-X 'github.com/m3rciful/shopbot/core/buildinfo.Version=v0.3.0'
//	-X 'github.com/m3rciful/shopbot/core/buildinfo.Commit=abcdef0'
//	-X 'github.com/m3rciful/shopbot/core/buildinfo.Date=2026-01-15T12:00:00Z'
var (
	// Version is reported by /health and the startup log line.
	Version = "dev"
	// Commit is the source commit of the build.
	Commit = "local"
	// Date is the build timestamp in RFC3339 format.
	Date = ""
)
