// Package version carries build information injected via ldflags.
package version

import (
	"fmt"
	"runtime"
)

// Build information. Populated at build time with:
//
//	-ldflags "-X .../internal/version.Version=v1.2.3 ..."
//
//nolint:gochecknoglobals // ldflags injection targets
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the structured version report.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the current build information.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String renders the one-line human form.
func (i Info) String() string {
	return fmt.Sprintf("walletkit %s (commit %s, built %s, %s, %s)",
		i.Version, i.Commit, i.Date, i.GoVersion, i.Platform)
}
