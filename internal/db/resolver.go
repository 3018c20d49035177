package db

import (
	"fmt"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/vvka-141/schemaload/pkg/schemaload"
)

// EnvVars holds the environment variables the loader consults.
type EnvVars struct {
	ConnectionString string // SCHEMALOAD_CONNECTION_STRING
	DatabaseURL      string // DATABASE_URL (Heroku/Rails convention)

	AWSRegion string // AWS_REGION

	// Azure SDK standard names
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string
}

// LoadFromEnvironment snapshots the relevant process environment.
func LoadFromEnvironment() *EnvVars {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = os.Getenv("AWS_DEFAULT_REGION")
	}
	return &EnvVars{
		ConnectionString:  os.Getenv(schemaload.EnvConnectionString),
		DatabaseURL:       os.Getenv(schemaload.EnvDatabaseURL),
		AWSRegion:         region,
		AzureTenantID:     os.Getenv("AZURE_TENANT_ID"),
		AzureClientID:     os.Getenv("AZURE_CLIENT_ID"),
		AzureClientSecret: os.Getenv("AZURE_CLIENT_SECRET"),
	}
}

// ConnString returns the primary connection string variable when set,
// otherwise the fallback.
func (e *EnvVars) ConnString() string {
	if e.ConnectionString != "" {
		return e.ConnectionString
	}
	return e.DatabaseURL
}

// ResolveConnectionConfig turns a validated LoadConfig into connection
// parameters. The original string is kept in ConnString for pgx; the parsed
// fields serve logging and the cloud connectors. application_name is set
// unless the connection string already names one.
func ResolveConnectionConfig(cfg schemaload.LoadConfig) (*schemaload.ConnectionConfig, error) {
	raw := strings.TrimSpace(cfg.ConnectionString)

	conn, err := ParseConnectionString(raw)
	if err != nil {
		var pgErr error
		if conn, pgErr = configFromPgx(raw); pgErr != nil {
			return nil, fmt.Errorf("invalid connection string: %w: %w", err, schemaload.ErrInvalidConfig)
		}
	}

	conn.ConnString = raw
	if isADONET(raw) {
		conn.ConnString = BuildConnectionString(conn)
	}

	if conn.AppName == "" {
		conn.AppName = applicationName(cfg.RunID)
	}

	conn.AuthMethod = cfg.AuthMethod
	conn.AWSRegion = cfg.AWSRegion
	conn.GoogleInstance = cfg.GoogleInstance
	conn.AzureTenantID = cfg.AzureTenantID
	conn.AzureClientID = cfg.AzureClientID
	conn.AzureClientSecret = cfg.AzureClientSecret

	return conn, nil
}

// configFromPgx reads the fields through pgx's own parser, which accepts
// every libpq form pgx will later connect with.
func configFromPgx(connStr string) (*schemaload.ConnectionConfig, error) {
	pgCfg, err := pgconn.ParseConfig(connStr)
	if err != nil {
		return nil, err
	}

	config := defaultConfig()
	config.Host = pgCfg.Host
	config.Port = int(pgCfg.Port)
	config.Database = pgCfg.Database
	config.Username = pgCfg.User
	config.Password = pgCfg.Password
	config.AppName = pgCfg.RuntimeParams["application_name"]
	config.ConnectTimeout = pgCfg.ConnectTimeout
	return config, nil
}

func applicationName(runID string) string {
	if len(runID) >= 8 {
		return schemaload.ApplicationName + "-" + runID[:8]
	}
	return schemaload.ApplicationName
}
