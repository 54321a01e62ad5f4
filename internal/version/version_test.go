package version

import (
	"runtime"
	"strings"
	"testing"
)

func setBuildVars(t *testing.T, version, dirty string) {
	t.Helper()
	oldVersion, oldDirty := Version, Dirty
	Version, Dirty = version, dirty
	t.Cleanup(func() { Version, Dirty = oldVersion, oldDirty })
}

func TestString(t *testing.T) {
	setBuildVars(t, "1.2.3", "false")
	if got := String(); got != "1.2.3" {
		t.Errorf("String() = %q, want %q", got, "1.2.3")
	}

	setBuildVars(t, "1.2.3", "true")
	if got := String(); got != "1.2.3-dirty" {
		t.Errorf("String() = %q, want %q", got, "1.2.3-dirty")
	}
}

func TestGet(t *testing.T) {
	setBuildVars(t, "0.4.0", "true")

	info := Get()
	if info.Version != "0.4.0" || !info.Dirty {
		t.Errorf("unexpected info: %+v", info)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %q, want %q", info.GoVersion, runtime.Version())
	}
	if info.Platform != runtime.GOOS+"/"+runtime.GOARCH {
		t.Errorf("Platform = %q", info.Platform)
	}
}

func TestFull(t *testing.T) {
	setBuildVars(t, "0.4.0", "false")

	full := Full()
	if !strings.HasPrefix(full, "tablecsv 0.4.0\n") {
		t.Errorf("Full() should start with the name and version, got %q", full)
	}
	if strings.Contains(full, "Dirty") {
		t.Error("clean build should not report Dirty")
	}
	if !strings.Contains(full, "OS/Arch:") {
		t.Error("Full() should include the platform")
	}
}
