package schemaload

// Logger provides a pluggable logging interface for schemaload operations.
// Implementations must be safe for concurrent use by multiple goroutines.
type Logger interface {
	// Verbose logs detailed diagnostic information.
	// Only logged when verbose mode is enabled.
	Verbose(format string, args ...interface{})

	// Info logs informational messages about normal operations.
	Info(format string, args ...interface{})

	// Success logs a step that completed cleanly.
	Success(format string, args ...interface{})

	// Error logs error messages.
	Error(format string, args ...interface{})

	// Banner logs a prominent summary line.
	Banner(format string, args ...interface{})
}
