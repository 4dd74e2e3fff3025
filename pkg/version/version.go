package version

import (
	"fmt"
	"runtime"
	"strings"
)

// These are set at build time via ldflags, e.g.
// -X github.com/vlsi-lab/floorplanner/pkg/version.version=v0.1.0
var (
	version   string
	buildDate string
	gitCommit string
)

// Info holds the information related to the floorplanner build
type Info struct {
	Major      string `json:"major"`
	Minor      string `json:"minor"`
	GitVersion string `json:"gitVersion"`
	GitCommit  string `json:"gitCommit"`
	BuildDate  string `json:"buildDate"`
	GoVersion  string `json:"goVersion"`
	Compiler   string `json:"compiler"`
	Platform   string `json:"platform"`
}

// Get returns the overall codebase version
func Get() Info {
	gitVersion := version
	if gitVersion == "" {
		gitVersion = "v0.0.0-dev"
	}
	major, minor := splitVersion(gitVersion)
	return Info{
		Major:      major,
		Minor:      minor,
		GitVersion: gitVersion,
		GitCommit:  gitCommit,
		BuildDate:  buildDate,
		GoVersion:  runtime.Version(),
		Compiler:   runtime.Compiler,
		Platform:   fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// splitVersion splits a semantic version such as v1.2.3-rc.1 into major and
// minor; both are empty when the version is not of that form.
func splitVersion(v string) (string, string) {
	parts := strings.SplitN(strings.TrimPrefix(v, "v"), ".", 3)
	if len(parts) < 2 {
		return "", ""
	}
	return parts[0], parts[1]
}
