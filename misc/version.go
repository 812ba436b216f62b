// Package misc holds build time program identification.
package misc

import "runtime/debug"

// Set with -ldflags "-X tplprint/misc.version=... -X tplprint/misc.gitHash=...".
var (
	appName = "tplprint"
	version = "dev"
	gitHash = ""
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

// GetGitHash returns commit hash the binary was built from, falling back to
// vcs information recorded by the go tool.
func GetGitHash() string {
	if gitHash != "" {
		return gitHash
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
