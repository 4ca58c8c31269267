package common

import (
	"fmt"
	"runtime"
)

const (
	ProjectName    = "QuantLab"
	ProjectVersion = "1.2.0"
	ProjectRepo    = "github.com/haln-dev/quantlab"

	// Overridden during release builds via -ldflags.
	BuildCommit = "dev"
)

// PrintVersion prints version and build information.
func PrintVersion(appName string) {
	fmt.Printf("%s v%s (%s)\n", appName, ProjectVersion, BuildCommit)
	fmt.Printf("Go: %s (%s/%s)\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
