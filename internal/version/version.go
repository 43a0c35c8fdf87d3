package version

import "fmt"

// Version is the docsource release. Set it at build time:
// go build -ldflags "-X git.home.luguber.info/inful/docsource/internal/version.Version=v0.3.0".
var Version = "dev"

// Build metadata, also set via ldflags.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the version line printed by --version.
func String() string {
	if GitCommit == "unknown" && BuildTime == "unknown" {
		return Version
	}
	return fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
