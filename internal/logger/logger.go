// Package logger provides verbose logging for poolcalc.
// When verbose mode is enabled via the --verbose flag, calculation steps
// are printed to stderr so a pooling plan can be traced row by row.
// Normal output on stdout is never affected.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Reset restores the defaults: quiet, writing to stderr.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	verbose = false
	output = os.Stderr
}

// logf holds the write lock so concurrent writers never interleave.
func logf(prefix, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if !verbose {
		return
	}
	fmt.Fprintf(output, prefix+format+"\n", args...)
}

// Debug prints a calculation detail.
func Debug(format string, args ...any) {
	logf("[DEBUG] ", format, args...)
}

// Info prints a result summary.
func Info(format string, args ...any) {
	logf("[INFO] ", format, args...)
}

// Warn prints an advisory, such as a flagged library.
func Warn(format string, args ...any) {
	logf("[WARN] ", format, args...)
}

// Section prints a header for a workflow step.
func Section(name string) {
	logf("\n=== ", "%s ===", name)
}
