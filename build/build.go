package build

import (
	"fmt"
	"runtime/debug"

	"github.com/Masterminds/semver/v3"
)

var (
	// To set version number, build with:
	// $ go build -ldflags "-X github.com/neuroflow/neurorun-cli/build.Version=v1.2.3"
	Version string

	Production string
)

func GetBuildSettings() (map[string]string, bool) {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return nil, false
	}

	settings := map[string]string{}
	for _, s := range bi.Settings {
		settings[s.Key] = s.Value
	}
	return settings, true
}

func IsProduction() bool {
	return Production == "true"
}

func GetAppVersion() string {
	if Version == "" {
		return "development build"
	}

	// release tags are expected to be semver
	if _, err := semver.NewVersion(Version); err != nil {
		return fmt.Sprintf("%s (not a valid version tag)", Version)
	}
	return Version
}

func GetFullVersionInfo() string {
	bi, ok := GetBuildSettings()
	if !ok {
		return "invalid build info"
	}

	version := Version
	if version == "" {
		version = "unknown"
	}

	// if git status returned no changes
	modified := ""
	if bi["vcs.modified"] == "true" {
		modified = ", workdir modified"
	}

	revision := bi["vcs.revision"]
	if len(revision) > 8 {
		revision = revision[:8]
	}

	var production string
	if IsProduction() {
		production = "prod"
	} else {
		production = "dev"
	}

	return fmt.Sprintf("%s (%s, %s %s, %s, %s%s)", version, production, bi["GOOS"], bi["GOARCH"], bi["vcs.time"], revision, modified)
}
