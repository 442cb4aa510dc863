// Package version carries build metadata injected with -ldflags, e.g.
//
//	go build -ldflags "-X bfgraph/internal/version.Version=v0.3.0 -X bfgraph/internal/version.GitCommit=$(git rev-parse --short HEAD)"
package version

import "fmt"

var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// Info is the one-line string printed by `bfgraph version`.
func Info() string {
	return fmt.Sprintf("bfgraph version %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
