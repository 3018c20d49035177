package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/vvka-141/schemaload/internal/config"
	"github.com/vvka-141/schemaload/internal/db"
	"github.com/vvka-141/schemaload/internal/logging"
	"github.com/vvka-141/schemaload/internal/schemafile"
	"github.com/vvka-141/schemaload/internal/services"
	"github.com/vvka-141/schemaload/pkg/schemaload"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Run every statement of the schema file against the database",
	Long: `Apply reads the schema file, splits it on ';' and executes each statement in
order on a single connection. Empty fragments and fragments that are only
'--' comments are skipped.

A statement that fails is reported with its first 50 characters and the
database error; the remaining statements still run and the command exits 0.
Missing connection settings, an unreadable schema file or a failed connection
stop the run before any statement executes.

Relative --schema paths are resolved against the directory holding the
schemaload executable, not the current working directory.

Examples:
  # Apply schema.sql next to the binary
  SCHEMALOAD_CONNECTION_STRING=postgresql://app@localhost/shop schemaload

  # Apply a specific file with a safety timeout
  schemaload apply --schema sql/catalogue.sql --timeout 5m

  # Azure Database for PostgreSQL with Entra ID
  schemaload apply --auth azure`,
	Args: cobra.NoArgs,
	RunE: runApply,
}

type applyFlagValues struct {
	schema         string
	configPath     string
	auth           string
	awsRegion      string
	googleInstance string
	timeout        time.Duration
}

var applyFlags applyFlagValues

func init() {
	rootCmd.AddCommand(applyCmd)
	registerApplyFlags(applyCmd)
}

// registerSchemaFlags binds the flags that locate the schema file. apply and
// plan share them so both commands read the same file.
func registerSchemaFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&applyFlags.schema, "schema", "f", "",
		"Schema file (default \"schema.sql\", or schema: in schemaload.yaml).\n"+
			"Relative paths resolve against the executable's directory")
	cmd.Flags().StringVar(&applyFlags.configPath, "config", "",
		"Path to a schemaload.yaml (default: next to the executable, if present)")
}

// registerApplyFlags binds the apply flags to cmd. Both the root command and
// "apply" share the same values so a bare invocation behaves like apply.
func registerApplyFlags(cmd *cobra.Command) {
	registerSchemaFlags(cmd)
	cmd.Flags().StringVar(&applyFlags.auth, "auth", "",
		"Authentication method: standard|aws|azure|google (default: standard)")
	cmd.Flags().StringVar(&applyFlags.awsRegion, "aws-region", "",
		"AWS region for RDS IAM tokens (overrides $AWS_REGION)")
	cmd.Flags().StringVar(&applyFlags.googleInstance, "google-instance", "",
		"Cloud SQL instance connection name (project:region:instance)")
	cmd.Flags().DurationVar(&applyFlags.timeout, "timeout", 0,
		"Abort the run after this duration (default 0, no limit)\n"+
			"Examples: 30s, 5m, 1h30m")
}

// loadFileConfig returns the explicit --config file, or schemaload.yaml from
// the executable's directory when it exists. A missing default file yields
// an empty config.
func loadFileConfig() (*config.FileConfig, error) {
	if applyFlags.configPath != "" {
		cfg, err := config.LoadFile(applyFlags.configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w: %w", applyFlags.configPath, schemaload.ErrInvalidConfig, err)
		}
		return cfg, nil
	}

	dir, err := schemafile.ExecutableDir()
	if err != nil {
		return &config.FileConfig{}, nil
	}
	cfg, err := config.Load(dir)
	if errors.Is(err, config.ErrConfigNotFound) {
		return &config.FileConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w: %w", config.ConfigFileName, schemaload.ErrInvalidConfig, err)
	}
	return cfg, nil
}

// schemaPath applies flag > schemaload.yaml > default.
func schemaPath(fileCfg *config.FileConfig) string {
	return firstNonEmpty(applyFlags.schema, fileCfg.Schema, schemaload.DefaultSchemaFile)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// buildLoadConfig assembles a LoadConfig with precedence
// flag > environment > schemaload.yaml > default.
func buildLoadConfig(cmd *cobra.Command, verbose bool, logger schemaload.Logger) (schemaload.LoadConfig, error) {
	_ = godotenv.Load()
	env := db.LoadFromEnvironment()

	fileCfg, err := loadFileConfig()
	if err != nil {
		return schemaload.LoadConfig{}, err
	}

	authMethod, err := schemaload.ParseAuthMethod(firstNonEmpty(applyFlags.auth, fileCfg.Auth.Method))
	if err != nil {
		return schemaload.LoadConfig{}, err
	}

	timeout := applyFlags.timeout
	if !cmd.Flags().Changed("timeout") {
		timeout, err = fileCfg.TimeoutDuration()
		if err != nil {
			return schemaload.LoadConfig{}, fmt.Errorf("%w: %w", schemaload.ErrInvalidConfig, err)
		}
	}

	cfg := schemaload.LoadConfig{
		ConnectionString:  env.ConnString(),
		SchemaPath:        schemaPath(fileCfg),
		Timeout:           timeout,
		Verbose:           verbose,
		AuthMethod:        authMethod,
		AWSRegion:         firstNonEmpty(applyFlags.awsRegion, env.AWSRegion, fileCfg.Auth.AWSRegion),
		GoogleInstance:    firstNonEmpty(applyFlags.googleInstance, fileCfg.Auth.GoogleInstance),
		AzureTenantID:     firstNonEmpty(env.AzureTenantID, fileCfg.Auth.AzureTenantID),
		AzureClientID:     firstNonEmpty(env.AzureClientID, fileCfg.Auth.AzureClientID),
		AzureClientSecret: env.AzureClientSecret,
	}

	logger.Verbose("Schema: %s", cfg.SchemaPath)
	logger.Verbose("Auth Method: %s", cfg.AuthMethod)
	if cfg.Timeout > 0 {
		logger.Verbose("Timeout: %s", cfg.Timeout)
	}

	return cfg, nil
}

// runContext returns a context cancelled on SIGINT/SIGTERM and, when timeout
// is positive, after timeout.
func runContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	if timeout <= 0 {
		return ctx, stop
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	return ctx, func() {
		cancel()
		stop()
	}
}

func runApply(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)
	logger := logging.NewConsoleLogger(verbose)

	cfg, err := buildLoadConfig(cmd, verbose, logger)
	if err != nil {
		return err
	}

	source, err := schemafile.NewOSSource()
	if err != nil {
		return err
	}
	loader := services.NewLoaderService(db.NewConnector, source, logger)

	ctx, cancel := runContext(cfg.Timeout)
	defer cancel()

	if _, err := loader.Load(ctx, cfg); err != nil {
		return fmt.Errorf("schema load failed: %w", err)
	}
	return nil
}
