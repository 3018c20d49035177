package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_AllFields(t *testing.T) {
	dir := t.TempDir()
	content := `schema: sql/init.sql
timeout: 2m
auth:
  method: aws
  aws_region: eu-central-1
  google_instance: proj:region:inst
  azure_tenant_id: tenant
  azure_client_id: client
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "sql/init.sql", cfg.Schema)
	assert.Equal(t, "aws", cfg.Auth.Method)
	assert.Equal(t, "eu-central-1", cfg.Auth.AWSRegion)
	assert.Equal(t, "proj:region:inst", cfg.Auth.GoogleInstance)
	assert.Equal(t, "tenant", cfg.Auth.AzureTenantID)
	assert.Equal(t, "client", cfg.Auth.AzureClientID)

	d, err := cfg.TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, d)
}

func TestLoad_MinimalYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("schema: other.sql\n"), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "other.sql", cfg.Schema)
	assert.Equal(t, "", cfg.Auth.Method)

	d, err := cfg.TimeoutDuration()
	require.NoError(t, err)
	assert.Zero(t, d)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load(t.TempDir())
	assert.True(t, errors.Is(err, ErrConfigNotFound), "expected ErrConfigNotFound, got: %v", err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("{{invalid"), 0644))

	cfg, err := Load(dir)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestTimeoutDuration_Invalid(t *testing.T) {
	cfg := &FileConfig{Timeout: "soon"}
	_, err := cfg.TimeoutDuration()
	assert.Error(t, err)
}

func TestTimeoutDuration_NilConfig(t *testing.T) {
	var cfg *FileConfig
	d, err := cfg.TimeoutDuration()
	require.NoError(t, err)
	assert.Zero(t, d)
}
