package schemaload

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// LoadConfig contains all parameters needed for one schema load.
type LoadConfig struct {
	// ConnectionString is the PostgreSQL connection string (URI or ADO.NET format)
	ConnectionString string

	// SchemaPath is the schema file location. Relative paths are resolved
	// against the directory of the running executable.
	SchemaPath string

	// Timeout bounds the whole run. Zero means no timeout.
	Timeout time.Duration

	// Verbose enables detailed logging
	Verbose bool

	// RunID tags the run in logs and in the server-side application_name.
	RunID string

	// AuthMethod indicates the authentication mechanism to use
	AuthMethod AuthMethod

	// Cloud authentication parameters, used according to AuthMethod.
	AWSRegion         string
	GoogleInstance    string
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string
}

// Validate checks that the LoadConfig has all required fields and valid values.
// A missing connection string is reported as ErrMissingConnectionString so the
// caller can stop before touching the schema file.
func (c *LoadConfig) Validate() error {
	if strings.TrimSpace(c.ConnectionString) == "" {
		return fmt.Errorf("set %s (or %s) in the environment or a .env file: %w",
			EnvConnectionString, EnvDatabaseURL, ErrMissingConnectionString)
	}

	var errs []error
	if c.SchemaPath == "" {
		errs = append(errs, fmt.Errorf("SchemaPath is required: %w", ErrInvalidConfig))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}
	if !c.AuthMethod.IsValid() {
		errs = append(errs, fmt.Errorf("auth method %v: %w", c.AuthMethod, ErrUnsupportedAuthMethod))
	}
	return errors.Join(errs...)
}

// ConnectionConfig represents parsed connection parameters.
type ConnectionConfig struct {
	// ConnString is the connection string pgx receives for standard
	// authentication. It is the operator's string unchanged, except for
	// ADO.NET input which pgx cannot read and is converted to a URI.
	ConnString string

	Host     string
	Port     int
	Database string
	Username string
	Password string
	SSLMode  string

	// AuthMethod indicates the authentication mechanism to use
	AuthMethod AuthMethod

	AppName          string
	ConnectTimeout   time.Duration
	AdditionalParams map[string]string

	AWSRegion      string
	GoogleInstance string

	// If tenant, client and secret are all set, Service Principal authentication
	// is used. Otherwise the DefaultAzureCredential chain is used.
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string
}

// AuthMethod represents the type of authentication to use.
type AuthMethod int

const (
	AuthMethodStandard     AuthMethod = iota // Username/Password
	AuthMethodAWSIAM                         // AWS IAM Database Authentication
	AuthMethodGoogleIAM                      // Google Cloud SQL IAM
	AuthMethodAzureEntraID                   // Azure Active Directory (Entra ID)
)

// String returns a human-readable string representation of the AuthMethod.
func (a AuthMethod) String() string {
	switch a {
	case AuthMethodStandard:
		return "Standard"
	case AuthMethodAWSIAM:
		return "AWS IAM"
	case AuthMethodGoogleIAM:
		return "Google IAM"
	case AuthMethodAzureEntraID:
		return "Azure Entra ID"
	default:
		return fmt.Sprintf("Unknown(%d)", a)
	}
}

// IsValid returns true if the AuthMethod is a valid, defined value.
func (a AuthMethod) IsValid() bool {
	return a >= AuthMethodStandard && a <= AuthMethodAzureEntraID
}

// ParseAuthMethod maps the flag/config spelling of an auth method.
// The empty string selects AuthMethodStandard.
func ParseAuthMethod(s string) (AuthMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard", "password":
		return AuthMethodStandard, nil
	case "aws", "aws-iam":
		return AuthMethodAWSIAM, nil
	case "google", "gcp", "google-iam":
		return AuthMethodGoogleIAM, nil
	case "azure", "entra", "azure-entra-id":
		return AuthMethodAzureEntraID, nil
	default:
		return AuthMethodStandard, fmt.Errorf("%q: %w", s, ErrUnsupportedAuthMethod)
	}
}

// StatementResult is the outcome of executing one statement.
type StatementResult struct {
	// Index is the 1-based position among executed statements.
	Index int

	// SQL is the statement as sent, including the trailing terminator.
	SQL string

	// Err is nil on success.
	Err error
}

// LoadReport summarises a completed load pass.
type LoadReport struct {
	RunID      string
	SchemaPath string

	// SchemaChecksum is the SHA-256 of the schema file as read.
	SchemaChecksum string

	Results  []StatementResult
	Duration time.Duration
}

// Attempted returns the number of statements sent to the database.
func (r *LoadReport) Attempted() int {
	return len(r.Results)
}

// Failed returns the number of statements that returned an error.
func (r *LoadReport) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Err != nil {
			n++
		}
	}
	return n
}

// Succeeded returns the number of statements that executed cleanly.
func (r *LoadReport) Succeeded() int {
	return r.Attempted() - r.Failed()
}
