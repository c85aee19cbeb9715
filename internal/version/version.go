// Package version reports the build of the marina binary.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set at build time via -ldflags "-X ...".
var (
	Commit    = "unknown"
	BuildTime = "unknown"
)

// String returns "marina dev (commit: abc1234, built: ...)". When no commit
// was injected the VCS revision recorded by the Go toolchain is used.
func String() string {
	return fmt.Sprintf("marina dev (commit: %s, built: %s)", short(revision()), BuildTime)
}

func revision() string {
	if Commit != "unknown" && Commit != "" {
		return Commit
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return Commit
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			return s.Value
		}
	}
	return Commit
}

func short(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}
