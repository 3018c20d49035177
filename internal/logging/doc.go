// Package logging provides concrete implementations of the schemaload.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: progress and successes to stdout, errors and verbose
//     diagnostics to stderr, coloured when attached to a terminal
//   - NullLogger: Discards all messages (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
