package db

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/vvka-141/schemaload/pkg/schemaload"
)

// tokenExpiryWarning is the remaining lifetime below which a warning is printed.
const tokenExpiryWarning = 5 * time.Minute

// TokenBasedConnector implements the Connector interface for cloud providers
// that authenticate via short-lived tokens (AWS IAM, Azure Entra ID).
// The token is used as the PostgreSQL password.
type TokenBasedConnector struct {
	config        *schemaload.ConnectionConfig
	tokenProvider TokenProvider
	providerName  string
}

// NewTokenBasedConnector creates a connector that uses a TokenProvider for authentication.
// providerName is used in error/warning messages (e.g., "AWS IAM", "Azure").
func NewTokenBasedConnector(config *schemaload.ConnectionConfig, tokenProvider TokenProvider, providerName string) *TokenBasedConnector {
	return &TokenBasedConnector{
		config:        config,
		tokenProvider: tokenProvider,
		providerName:  providerName,
	}
}

// Connect fetches a fresh token and opens a session with it as the password.
// The connection string is rebuilt from the parsed fields because the
// password has to be replaced.
func (c *TokenBasedConnector) Connect(ctx context.Context) (schemaload.Session, error) {
	token, expiresOn, err := c.tokenProvider.GetToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire %s token: %w: %w", c.providerName, schemaload.ErrConnectionFailed, err)
	}

	if remaining := time.Until(expiresOn); remaining < tokenExpiryWarning {
		fmt.Fprintf(os.Stderr, "Warning: %s token expires in %v\n", c.providerName, remaining.Round(time.Second))
	}

	configWithToken := *c.config
	configWithToken.Password = token
	if configWithToken.SSLMode == "" {
		configWithToken.SSLMode = "require"
	}

	poolConfig, err := parsePoolConfig(BuildConnectionString(&configWithToken))
	if err != nil {
		return nil, err
	}
	return openPool(ctx, poolConfig, c.config)
}
