// Package vars holds build-time version information.
package vars

import (
	"fmt"
	"runtime"
)

// Set via -ldflags at build time.
var (
	Version = "dev"     // release version or "dev"
	Commit  = "unknown" // short commit hash
	Date    = "unknown" // build date
)

// Print writes the version information to stdout.
func Print() {
	fmt.Printf("sam-2-xp12 %s\n", Version)
	fmt.Printf("commit:  %s\n", Commit)
	fmt.Printf("built:   %s\n", Date)
	fmt.Printf("runtime: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
