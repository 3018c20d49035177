package schemaload

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess          = 0  // Load pass completed, even if some statements failed
	ExitGeneralError     = 1  // Unknown or unclassified error
	ExitUsageError       = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic            = 3  // Internal panic (unexpected crash)
	ExitConfigError      = 10 // Missing connection string or invalid configuration
	ExitConnectionError  = 11 // Failed to connect to database
	ExitSchemaUnreadable = 14 // Schema file missing or unreadable
)

const (
	// EnvConnectionString is the primary environment variable holding the
	// database connection string.
	EnvConnectionString = "SCHEMALOAD_CONNECTION_STRING"

	// EnvDatabaseURL is the fallback connection string variable
	// (Heroku/Rails convention).
	EnvDatabaseURL = "DATABASE_URL"

	// DefaultSchemaFile is the schema file name looked up next to the executable.
	DefaultSchemaFile = "schema.sql"

	// StatementPreviewLength is the number of characters of a failing
	// statement echoed next to its error.
	StatementPreviewLength = 50

	// CommentMarker marks a fragment to be skipped when the trimmed
	// fragment starts with it.
	CommentMarker = "--"

	// StatementTerminator is both the split separator and the suffix
	// re-appended to every executed statement.
	StatementTerminator = ";"

	// ApplicationName is reported to the server as application_name.
	ApplicationName = "schemaload"
)
