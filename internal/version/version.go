// SPDX-License-Identifier: MIT

// Package version carries build information set through -ldflags.
package version

import (
	"fmt"
	"runtime"
)

// Build information.
var (
	CommitHash = "dev"
	BuildTime  = "unknown"
	Version    = "dev"
)

// Info is the version record printed by `twist version`.
type Info struct {
	CommitHash string `yaml:"commit_hash"`
	BuildTime  string `yaml:"build_time"`
	Version    string `yaml:"version"`
	GoVersion  string `yaml:"go_version"`
	Platform   string `yaml:"platform"`
}

// Get returns the build information of the running binary.
func Get() Info {
	return Info{
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		Version:    Version,
		GoVersion:  runtime.Version(),
		Platform:   fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns a one-line summary.
func (i Info) String() string {
	return fmt.Sprintf("twist %s (commit %s, built %s)", i.Version, i.CommitHash, i.BuildTime)
}
