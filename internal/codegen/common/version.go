package common

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// Version is set via ldflags at build time: -ldflags "-X github.com/Alia5/sheetgen/internal/codegen/common.Version=x.y.z"
var Version = ""

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// GetVersion returns the version written into generation banners. Without
// ldflags it falls back to the module version recorded by `go install`, and
// to "0.0.1-dev" for plain development builds.
func GetVersion() (string, error) {
	v := Version
	if v == "" {
		if bi, ok := readBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			v = bi.Main.Version
		}
	}
	if v == "" {
		return "0.0.1-dev", nil
	}

	version := strings.TrimPrefix(v, "v")
	baseVersion := strings.SplitN(version, "-", 2)[0]
	if !strings.Contains(baseVersion, ".") {
		return "", fmt.Errorf("invalid version format: %s (expected x.y.z)", v)
	}
	return version, nil
}
