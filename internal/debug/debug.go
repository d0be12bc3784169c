// Package debug provides opt-in tracing to stderr, enabled with FOSSIL_DEBUG.
package debug

import (
	"fmt"
	"os"
	"sync/atomic"
)

var enabled atomic.Bool

func init() {
	if v := os.Getenv("FOSSIL_DEBUG"); v != "" && v != "0" && v != "false" {
		enabled.Store(true)
	}
}

// Enabled reports whether debug output is on
func Enabled() bool {
	return enabled.Load()
}

// SetEnabled turns debug output on or off (used by --verbose)
func SetEnabled(on bool) {
	enabled.Store(on)
}

// Logf writes a formatted line to stderr when debugging is enabled
func Logf(format string, args ...interface{}) {
	if enabled.Load() {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
