// Package version reports build information injected through ldflags:
//
//	go build -ldflags "-X github.com/quantmind-br/deckpack/pkg/version.Version=v0.3.0"
package version

import (
	"fmt"
	"runtime"
)

// Name is the program name used in version output
const Name = "deckpack"

// Build-time variables (set via ldflags)
var (
	Version   = "dev"
	BuildTime = "unknown"
	Commit    = "unknown"
)

// Info contains version information
type Info struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
	Commit    string `json:"commit"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the current version info
func Get() Info {
	return Info{
		Name:      Name,
		Version:   Version,
		BuildTime: BuildTime,
		Commit:    Commit,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// IsRelease reports whether the binary was built with a version
func (i Info) IsRelease() bool {
	return i.Version != "dev" && i.Version != ""
}

// String returns a formatted version string
func (i Info) String() string {
	return fmt.Sprintf("%s %s (commit: %s, built: %s, %s %s)",
		i.Name, i.Version, i.Commit, i.BuildTime, i.GoVersion, i.Platform)
}

// Short returns the version alone
func Short() string {
	return Version
}

// Full returns a full version string
func Full() string {
	return Get().String()
}
