package schemaload

import (
	"context"

	"github.com/jackc/pgx/v5/pgconn"
)

// Executor runs a single SQL statement without returning rows.
// *pgxpool.Pool, *pgxpool.Conn and pgxmock pools all satisfy it.
type Executor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Session is an open database handle that statements are executed on.
// *pgxpool.Pool satisfies it.
type Session interface {
	Executor
	Close()
}

// Connector establishes database sessions.
// Different implementations handle various authentication methods
// (standard credentials, cloud IAM tokens).
type Connector interface {
	// Connect opens a session to the database.
	// The caller closes the returned session when done.
	Connect(ctx context.Context) (Session, error)
}
