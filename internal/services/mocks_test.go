package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/vvka-141/schemaload/pkg/schemaload"
)

type mockConnector struct {
	session schemaload.Session
	err     error
	calls   int
	closed  bool
}

func (m *mockConnector) Connect(_ context.Context) (schemaload.Session, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.session, nil
}

func (m *mockConnector) Close() error {
	m.closed = true
	return nil
}

// trackedSession records whether the loader closed the session it was given.
type trackedSession struct {
	schemaload.Session
	closed bool
}

func (s *trackedSession) Close() {
	s.closed = true
	s.Session.Close()
}

type mockSchemaReader struct {
	text     string
	resolved string
	err      error
	reads    []string
}

func (m *mockSchemaReader) Read(path string) (string, string, error) {
	m.reads = append(m.reads, path)
	return m.text, m.resolved, m.err
}

// recordingExecutor captures every statement it receives. Calls are failed
// by 1-based call number (failAt) or by statement text (failOn).
type recordingExecutor struct {
	executed []string
	failAt   map[int]error
	failOn   map[string]error
}

func (r *recordingExecutor) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	r.executed = append(r.executed, sql)
	if err, ok := r.failAt[len(r.executed)]; ok {
		return pgconn.CommandTag{}, err
	}
	if err, ok := r.failOn[sql]; ok {
		return pgconn.CommandTag{}, err
	}
	return pgconn.NewCommandTag("CREATE TABLE"), nil
}

// nopSession adapts an Executor into a Session with a no-op Close.
type nopSession struct {
	schemaload.Executor
}

func (nopSession) Close() {}

type logEntry struct {
	level string
	msg   string
}

type mockLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (m *mockLogger) add(level, format string, args []interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, logEntry{level: level, msg: fmt.Sprintf(format, args...)})
}

func (m *mockLogger) Verbose(format string, args ...interface{}) { m.add("verbose", format, args) }
func (m *mockLogger) Info(format string, args ...interface{})    { m.add("info", format, args) }
func (m *mockLogger) Success(format string, args ...interface{}) { m.add("success", format, args) }
func (m *mockLogger) Error(format string, args ...interface{})   { m.add("error", format, args) }
func (m *mockLogger) Banner(format string, args ...interface{})  { m.add("banner", format, args) }

func (m *mockLogger) messages(level string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, e := range m.entries {
		if e.level == level {
			out = append(out, e.msg)
		}
	}
	return out
}

var _ schemaload.Logger = (*mockLogger)(nil)
