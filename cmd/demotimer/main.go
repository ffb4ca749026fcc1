// Package main provides the CLI entry point for demotimer.
package main

import (
	"os"
	"runtime/debug"
	"strings"

	"demotimer/internal/cmd"
)

// Version information set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if version == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			commit, date = vcsStamp(info.Settings)
		}
	}
	cmd.SetVersionInfo(version, commit, date)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// vcsStamp extracts a short commit id and a build date from the VCS
// build settings. The commit carries a "*" suffix when the tree was
// dirty; the timestamp is reduced to its date part.
func vcsStamp(settings []debug.BuildSetting) (commit, date string) {
	commit, date = "unknown", "unknown"

	byKey := make(map[string]string, len(settings))
	for _, s := range settings {
		byKey[s.Key] = s.Value
	}

	if rev := byKey["vcs.revision"]; len(rev) >= 12 {
		commit = rev[:12]
		if byKey["vcs.modified"] == "true" {
			commit += "*"
		}
	}
	if stamp := byKey["vcs.time"]; stamp != "" {
		if day, _, found := strings.Cut(stamp, "T"); found {
			date = day
		} else {
			date = stamp
		}
	}
	return commit, date
}
