// Package buildinfo carries the version metadata stamped into release
// binaries via ldflags:
//
//	go build -ldflags "\
//	  -X github.com/skillboard/skillboard/pkg/buildinfo.Version=v1.0.0 \
//	  -X github.com/skillboard/skillboard/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	  -X github.com/skillboard/skillboard/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

// Set at build time; development builds keep these placeholders.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String formats the build metadata on three lines.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template is the cobra version template for the root command.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
