// Package version carries build metadata, set with -ldflags:
//
//	go build -ldflags "-X github.com/utkrisht/uki/compiler/internal/version.Version=0.2.0"
package version

import (
	"fmt"
	"runtime"
)

var (
	Version   = "0.1.0-dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// String is the one-line form, e.g. "uki 0.1.0-dev (unknown)".
func String() string {
	return fmt.Sprintf("uki %s (%s)", Version, Commit)
}

// Details lists version, commit, build date, Go version and platform, one per line.
func Details() string {
	return fmt.Sprintf("uki %s\n  commit:     %s\n  built:      %s\n  go version: %s\n  os/arch:    %s/%s\n",
		Version, Commit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
