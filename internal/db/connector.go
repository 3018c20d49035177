package db

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vvka-141/schemaload/pkg/schemaload"
)

// MaxConns pins the pool to one server session. Statements run strictly in
// sequence on it.
const MaxConns = 1

func configurePool(poolConfig *pgxpool.Config) {
	poolConfig.MaxConns = MaxConns
	poolConfig.MinConns = 0
	poolConfig.ConnConfig.OnNotice = func(_ *pgconn.PgConn, notice *pgconn.Notice) {
		fmt.Printf("%s: %s\n", notice.Severity, notice.Message)
	}
}

// parsePoolConfig hands connStr to pgx unchanged and applies the pool
// settings.
func parsePoolConfig(connStr string) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection config: %w: %w", err, schemaload.ErrInvalidConfig)
	}
	configurePool(poolConfig)
	return poolConfig, nil
}

// setApplicationName tags the session unless the connection string
// already chose a name.
func setApplicationName(poolConfig *pgxpool.Config, name string) {
	if name == "" {
		return
	}
	if _, ok := poolConfig.ConnConfig.RuntimeParams["application_name"]; ok {
		return
	}
	poolConfig.ConnConfig.RuntimeParams["application_name"] = name
}

// openPool connects and pings. cfg is only used to phrase connection errors.
func openPool(ctx context.Context, poolConfig *pgxpool.Config, cfg *schemaload.ConnectionConfig) (schemaload.Session, error) {
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, wrapConnectionError(err, cfg.Host, cfg.Port, cfg.Database)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, wrapConnectionError(err, cfg.Host, cfg.Port, cfg.Database)
	}

	return pool, nil
}

// StandardConnector implements the Connector interface for
// username/password authentication. A failed attempt is not retried.
type StandardConnector struct {
	config *schemaload.ConnectionConfig
}

// NewStandardConnector creates a new StandardConnector with the given configuration.
func NewStandardConnector(config *schemaload.ConnectionConfig) *StandardConnector {
	return &StandardConnector{config: config}
}

// poolConfig parses the operator's connection string as pgx would on its
// own. Configs built without one fall back to the parsed fields.
func (c *StandardConnector) poolConfig() (*pgxpool.Config, error) {
	connStr := c.config.ConnString
	if connStr == "" {
		connStr = BuildConnectionString(c.config)
	}

	poolConfig, err := parsePoolConfig(connStr)
	if err != nil {
		return nil, err
	}
	setApplicationName(poolConfig, c.config.AppName)
	return poolConfig, nil
}

// Connect establishes a single-connection pool using standard authentication.
func (c *StandardConnector) Connect(ctx context.Context) (schemaload.Session, error) {
	poolConfig, err := c.poolConfig()
	if err != nil {
		return nil, err
	}
	return openPool(ctx, poolConfig, c.config)
}

// NewConnector is a factory function that creates the appropriate Connector
// based on the ConnectionConfig's AuthMethod.
func NewConnector(config *schemaload.ConnectionConfig) (schemaload.Connector, error) {
	switch config.AuthMethod {
	case schemaload.AuthMethodStandard:
		return NewStandardConnector(config), nil
	case schemaload.AuthMethodAWSIAM:
		return newAWSConnector(config)
	case schemaload.AuthMethodGoogleIAM:
		return newGoogleConnector(config)
	case schemaload.AuthMethodAzureEntraID:
		return newAzureConnector(config)
	default:
		return nil, fmt.Errorf("unsupported auth method %v: %w", config.AuthMethod, schemaload.ErrUnsupportedAuthMethod)
	}
}

// wrapConnectionError wraps raw pgx connection errors with actionable guidance.
// The result always matches schemaload.ErrConnectionFailed.
func wrapConnectionError(err error, host string, port int, database string) error {
	errStr := strings.ToLower(err.Error())
	addr := net.JoinHostPort(host, strconv.Itoa(port))

	switch {
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "actively refused"):
		return fmt.Errorf(`connection refused to %s

Possible causes:
  - PostgreSQL is not running (check: pg_isready -h %s -p %d)
  - Wrong host or port in the connection string
  - Firewall blocking the connection

%w: %w`, addr, host, port, schemaload.ErrConnectionFailed, err)

	case strings.Contains(errStr, "no such host") || strings.Contains(errStr, "no host"):
		return fmt.Errorf(`cannot resolve host "%s"

Possible causes:
  - Hostname is misspelled
  - DNS is not configured or reachable

%w: %w`, host, schemaload.ErrConnectionFailed, err)

	case strings.Contains(errStr, "password authentication failed"):
		return fmt.Errorf(`password authentication failed for database "%s"

Possible causes:
  - Wrong password in the connection string
  - Wrong username
  - Expired cloud IAM token

%w: %w`, database, schemaload.ErrConnectionFailed, err)

	case strings.Contains(errStr, "does not exist"):
		return fmt.Errorf(`database "%s" does not exist

Create it first (createdb %s) and run again.

%w: %w`, database, database, schemaload.ErrConnectionFailed, err)

	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "timed out"):
		return fmt.Errorf(`connection timed out to %s

Possible causes:
  - Server is overloaded or unresponsive
  - Firewall silently dropping packets
  - Wrong host/port (server not listening)

%w: %w`, addr, schemaload.ErrConnectionFailed, err)

	case strings.Contains(errStr, "ssl") || strings.Contains(errStr, "tls"):
		return fmt.Errorf(`SSL/TLS connection error

Possible causes:
  - Server requires SSL but sslmode in the connection string disables it
  - Certificate verification failed (try sslmode=require)

%w: %w`, schemaload.ErrConnectionFailed, err)

	default:
		return fmt.Errorf("failed to connect to database: %w: %w", schemaload.ErrConnectionFailed, err)
	}
}

// newAWSConnector creates a token-based connector with the AWS IAM token provider.
func newAWSConnector(config *schemaload.ConnectionConfig) (schemaload.Connector, error) {
	endpoint := hostPort(config)

	tokenProvider, err := NewAWSIAMTokenProvider(endpoint, config.AWSRegion, config.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS IAM token provider: %w: %w", err, schemaload.ErrInvalidConfig)
	}

	return NewTokenBasedConnector(config, tokenProvider, "AWS IAM"), nil
}

// newGoogleConnector creates a GoogleCloudSQLConnector for Google Cloud SQL IAM authentication.
func newGoogleConnector(config *schemaload.ConnectionConfig) (schemaload.Connector, error) {
	if config.GoogleInstance == "" {
		return nil, fmt.Errorf("Google Cloud SQL IAM auth requires --google-instance (project:region:instance): %w", schemaload.ErrInvalidConfig)
	}
	if config.Username == "" {
		return nil, fmt.Errorf("Google Cloud SQL IAM auth requires a user in the connection string: %w", schemaload.ErrInvalidConfig)
	}

	return NewGoogleCloudSQLConnector(config, config.GoogleInstance), nil
}

// newAzureConnector creates a token-based connector with the Azure Entra ID token provider.
func newAzureConnector(config *schemaload.ConnectionConfig) (schemaload.Connector, error) {
	tokenProvider, err := NewAzureTokenProvider(config.AzureTenantID, config.AzureClientID, config.AzureClientSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure token provider: %w", err)
	}

	return NewTokenBasedConnector(config, tokenProvider, "Azure"), nil
}
