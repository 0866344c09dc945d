// Package settings provides build metadata, per-run options, the immutable
// menu configuration, and context helpers shared across prun's packages.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "prun"

// VersionInformation is populated at build time via ldflags.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// CandidateSource says where menu entries come from.
type CandidateSource int

const (
	// SourceExecutables scans the executable directories.
	SourceExecutables CandidateSource = iota
	// SourceStdin reads one candidate per line from standard input.
	SourceStdin
)

// Run holds options for a single execution of the application that are not
// part of the menu's appearance.
type Run struct {
	MinLogLevel int8
	LogFile     string
	ConfigFile  string
	Source      CandidateSource
	// PrintOnly writes the selection to stdout instead of launching it.
	PrintOnly bool
	NoColor   bool
}

// NewCliParams returns the defaults used by the CLI.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		Source:      SourceExecutables,
		NoColor:     false,
	}
}
