// Package obslog is the ambient logging package for the daemon and CLI:
// env-var-gated debug output plus error-level logging with a correlation
// ID, stderr-only, no structured-logging dependency.
package obslog

import (
	"fmt"
	"os"
	"sync"
)

var (
	enabled  = os.Getenv("HIPPOCAMPUS_DEBUG") != ""
	verbose  bool
	quiet    bool
	logMutex sync.Mutex
)

// Enabled reports whether debug logging is active (env var or --verbose).
func Enabled() bool {
	return enabled || verbose
}

// SetVerbose enables verbose/debug output for the process lifetime.
func SetVerbose(v bool) {
	verbose = v
}

// SetQuiet suppresses normal (non-error) CLI output.
func SetQuiet(q bool) {
	quiet = q
}

// IsQuiet reports whether quiet mode is enabled.
func IsQuiet() bool {
	return quiet
}

// Debugf writes a debug line to stderr, only when Enabled.
func Debugf(format string, args ...interface{}) {
	if !Enabled() {
		return
	}
	logMutex.Lock()
	defer logMutex.Unlock()
	fmt.Fprintf(os.Stderr, "[debug] "+format+"\n", args...)
}

// Errorf writes an error-level line to stderr including correlationID, per
// spec §7's "logged at error level with a correlation identifier".
func Errorf(correlationID string, format string, args ...interface{}) {
	logMutex.Lock()
	defer logMutex.Unlock()
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "[error] [%s] %s\n", correlationID, msg)
}

// PrintNormal writes to stdout unless quiet mode is set.
func PrintNormal(format string, args ...interface{}) {
	if quiet {
		return
	}
	fmt.Printf(format, args...)
}
