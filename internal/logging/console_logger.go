package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// ConsoleLogger writes progress to one stream and diagnostics to another.
// Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	verbose bool
	out     io.Writer
	errOut  io.Writer
	colors  palette
	mu      sync.Mutex
}

// NewConsoleLogger creates a ConsoleLogger on stdout/stderr. Colour is used
// when stdout is a terminal.
// If verbose is false, Verbose() calls are no-ops.
func NewConsoleLogger(verbose bool) *ConsoleLogger {
	return NewWriterLogger(os.Stdout, os.Stderr, verbose, ColorEnabled(os.Stdout))
}

// NewWriterLogger creates a ConsoleLogger writing Info/Success to out and
// Error/Verbose to errOut.
func NewWriterLogger(out, errOut io.Writer, verbose, color bool) *ConsoleLogger {
	return &ConsoleLogger{
		verbose: verbose,
		out:     out,
		errOut:  errOut,
		colors:  newPalette(color),
	}
}

func (l *ConsoleLogger) write(w io.Writer, line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(w, line)
}

func format(f string, args []interface{}) string {
	if len(args) == 0 {
		return f
	}
	return fmt.Sprintf(f, args...)
}

// Verbose logs detailed diagnostic information if verbose mode is enabled.
func (l *ConsoleLogger) Verbose(f string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.write(l.errOut, l.colors.render(l.colors.muted, "[VERBOSE] "+format(f, args)))
}

// Info logs informational messages about normal operations.
func (l *ConsoleLogger) Info(f string, args ...interface{}) {
	l.write(l.out, format(f, args))
}

// Success logs a completed step prefixed with a check mark.
func (l *ConsoleLogger) Success(f string, args ...interface{}) {
	l.write(l.out, l.colors.render(l.colors.success, SymbolCheck)+" "+format(f, args))
}

// Error logs error messages prefixed with a cross.
func (l *ConsoleLogger) Error(f string, args ...interface{}) {
	l.write(l.errOut, l.colors.render(l.colors.failure, SymbolCross+" [ERROR]")+" "+format(f, args))
}

// Banner logs an emphasised line, used for the completion message.
func (l *ConsoleLogger) Banner(f string, args ...interface{}) {
	l.write(l.out, l.colors.render(l.colors.banner, format(f, args)))
}
