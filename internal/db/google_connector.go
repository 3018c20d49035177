package db

import (
	"context"
	"fmt"
	"net"

	"cloud.google.com/go/cloudsqlconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vvka-141/schemaload/pkg/schemaload"
)

// GoogleCloudSQLConnector reaches a Cloud SQL instance through the
// cloudsqlconn dialer. The dialer authenticates with IAM and wraps the
// socket in TLS itself, so the pgx side runs without a password or TLS.
//
// The dialer outlives Connect. Close releases it after the session is closed.
type GoogleCloudSQLConnector struct {
	config   *schemaload.ConnectionConfig
	instance string // project:region:instance
	dialer   *cloudsqlconn.Dialer
}

func NewGoogleCloudSQLConnector(config *schemaload.ConnectionConfig, instance string) *GoogleCloudSQLConnector {
	return &GoogleCloudSQLConnector{config: config, instance: instance}
}

// cloudSQLPoolConfig routes every connection through dial. Host lookup is
// bypassed because the instance name is not a DNS name.
func cloudSQLPoolConfig(config *schemaload.ConnectionConfig, instance string, dial func(context.Context) (net.Conn, error)) (*pgxpool.Config, error) {
	poolConfig, err := parsePoolConfig("sslmode=disable")
	if err != nil {
		return nil, err
	}

	cc := poolConfig.ConnConfig
	cc.Host = instance
	cc.User = config.Username
	cc.Password = ""
	cc.Database = config.Database
	cc.TLSConfig = nil
	cc.Fallbacks = nil
	cc.LookupFunc = func(_ context.Context, host string) ([]string, error) {
		return []string{host}, nil
	}
	cc.DialFunc = func(ctx context.Context, _, _ string) (net.Conn, error) {
		return dial(ctx)
	}
	setApplicationName(poolConfig, config.AppName)

	return poolConfig, nil
}

func (c *GoogleCloudSQLConnector) Connect(ctx context.Context) (schemaload.Session, error) {
	dialer, err := cloudsqlconn.NewDialer(ctx, cloudsqlconn.WithIAMAuthN())
	if err != nil {
		return nil, fmt.Errorf("failed to create Cloud SQL dialer: %w: %w", schemaload.ErrConnectionFailed, err)
	}

	poolConfig, err := cloudSQLPoolConfig(c.config, c.instance, func(ctx context.Context) (net.Conn, error) {
		return dialer.Dial(ctx, c.instance)
	})
	if err != nil {
		dialer.Close()
		return nil, err
	}

	target := *c.config
	target.Host = c.instance
	session, err := openPool(ctx, poolConfig, &target)
	if err != nil {
		dialer.Close()
		return nil, err
	}

	c.dialer = dialer
	return session, nil
}

// Close releases the dialer. It is safe to call more than once.
func (c *GoogleCloudSQLConnector) Close() error {
	if c.dialer == nil {
		return nil
	}
	err := c.dialer.Close()
	c.dialer = nil
	return err
}
