// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package versions provides version information for vaultsync.
package versions

import (
	"runtime"
	"runtime/debug"
	"time"
)

const unknownStr = "unknown"

// Set at build time via -ldflags.
var (
	// Version is the semantic version of the release, or "dev" for
	// unreleased builds.
	Version = "dev"
	// Commit is the git commit the binary was built from.
	Commit = unknownStr
	// BuildDate is the RFC 3339 timestamp of the build.
	BuildDate = unknownStr
)

// VersionInfo is what the version command reports.
type VersionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetVersionInfo collects the version information of the running binary.
// When the ldflags were not set (a plain `go build`), the commit and
// build date fall back to the VCS metadata the toolchain stamps into the
// binary.
func GetVersionInfo() VersionInfo {
	commit, buildDate := Commit, BuildDate
	if Version == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			for _, setting := range info.Settings {
				if setting.Key == "vcs.revision" && commit == unknownStr {
					commit = setting.Value
				}
				if setting.Key == "vcs.time" && buildDate == unknownStr {
					buildDate = setting.Value
				}
			}
		}
	}

	return VersionInfo{
		Version:   Version,
		Commit:    commit,
		BuildDate: formatBuildDate(buildDate),
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// formatBuildDate renders an RFC 3339 timestamp in a human-friendly
// form; anything else passes through untouched.
func formatBuildDate(date string) string {
	t, err := time.Parse(time.RFC3339, date)
	if err != nil {
		return date
	}
	return t.Format("2006-01-02 15:04:05 MST")
}
