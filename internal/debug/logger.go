// Package debug provides debug logging functionality for genrss.
package debug

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Logger provides debug logging capabilities
type Logger struct {
	enabled bool
	writer  io.Writer
	start   time.Time
}

// Global debug logger instance
var globalLogger = &Logger{
	enabled: false,
	writer:  os.Stderr,
}

// Enable enables debug logging
func Enable() {
	globalLogger.enabled = true
	globalLogger.start = time.Now()
}

// IsEnabled returns whether debug logging is enabled
func IsEnabled() bool {
	return globalLogger.enabled
}

// SetWriter sets the output writer for debug logs
func SetWriter(w io.Writer) {
	globalLogger.writer = w
}

// Log writes a debug message if debugging is enabled
func Log(format string, args ...interface{}) {
	if !globalLogger.enabled {
		return
	}

	elapsed := time.Since(globalLogger.start)
	prefix := fmt.Sprintf("[DEBUG %s] ", formatDuration(elapsed))
	message := fmt.Sprintf(format, args...)

	// Ensure message ends with newline
	if !strings.HasSuffix(message, "\n") {
		message += "\n"
	}

	_, _ = fmt.Fprint(globalLogger.writer, prefix+message)
}

// LogSection writes a section header for better organization
func LogSection(title string) {
	if !globalLogger.enabled {
		return
	}

	Log("=== %s ===", title)
}

// LogCommand logs probe tool invocation details
func LogCommand(command string, args []string) {
	if !globalLogger.enabled {
		return
	}

	Log("Command: %s", command)
	if len(args) > 0 {
		Log("Arguments: %v", args)
	}
}

// LogScan logs the outcome of a directory scan
func LogScan(dir string, total int, recursive bool) {
	if !globalLogger.enabled {
		return
	}

	mode := "flat"
	if recursive {
		mode = "recursive"
	}
	Log("Scan: %d file(s) in %s (%s)", total, dir, mode)
}

// LogProbe logs a duration probe attempt
func LogProbe(prober, path string, seconds int, ok bool) {
	if !globalLogger.enabled {
		return
	}

	if ok {
		Log("Probe: %s resolved %s to %ds", prober, path, seconds)
	} else {
		Log("Probe: %s declined %s", prober, path)
	}
}

// LogFeed logs feed assembly statistics
func LogFeed(items, enclosures, durations int) {
	if !globalLogger.enabled {
		return
	}

	Log("Feed: %d item(s), %d enclosure(s), %d with duration", items, enclosures, durations)
}

// LogTiming logs timing information
func LogTiming(operation string, duration time.Duration) {
	if !globalLogger.enabled {
		return
	}

	Log("Timing: %s took %s", operation, formatDuration(duration))
}

// LogError logs error details
func LogError(err error, context string) {
	if !globalLogger.enabled {
		return
	}

	Log("Error in %s: %v", context, err)
}

// formatDuration formats a duration for display
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}
