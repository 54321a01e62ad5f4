// Package version holds build metadata for the tablecsv binary, set with
//
//	go build -ldflags "-X github.com/jmylchreest/tablecsv/internal/version.Version=1.0.0 ..."
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Build-time variables set via ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	Dirty     = "false"
	BuildDate = "unknown"
)

// Info is the structured form printed by `tablecsv version --format json|yaml`.
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	Dirty     bool   `json:"dirty" yaml:"dirty"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

// Get returns the current version information. When the binary was built
// with `go install module@version` and no ldflags, the module version is
// used instead of "dev".
func Get() Info {
	v := Version
	if v == "dev" {
		if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			v = strings.TrimPrefix(bi.Main.Version, "v")
		}
	}
	return Info{
		Version:   v,
		Commit:    Commit,
		Dirty:     Dirty == "true",
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String returns a single-line version string
func String() string {
	i := Get()
	if i.Dirty {
		return i.Version + "-dirty"
	}
	return i.Version
}

// Full returns a multi-line version string with all details
func Full() string {
	i := Get()
	lines := []string{
		"tablecsv " + String(),
		fmt.Sprintf("  Commit:     %s", i.Commit),
	}
	if i.Dirty {
		lines = append(lines, "  Dirty:      yes")
	}
	lines = append(lines,
		fmt.Sprintf("  Built:      %s", i.BuildDate),
		fmt.Sprintf("  Go version: %s", i.GoVersion),
		fmt.Sprintf("  OS/Arch:    %s", i.Platform),
	)
	return strings.Join(lines, "\n")
}
