package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/vvka-141/schemaload/internal/checksum"
	"github.com/vvka-141/schemaload/internal/db"
	"github.com/vvka-141/schemaload/internal/statements"
	"github.com/vvka-141/schemaload/pkg/schemaload"
)

// NextStepHint is printed after the completion banner.
const NextStepHint = "Next step: run the data import to populate the new tables."

// SchemaReader reads a schema file and reports where it was found.
type SchemaReader interface {
	Read(path string) (text string, resolved string, err error)
}

// ConnectorFactory builds a Connector for resolved connection parameters.
type ConnectorFactory func(*schemaload.ConnectionConfig) (schemaload.Connector, error)

// LoaderService applies a schema file to a database one statement at a time.
// Thread-Safety: NOT safe for concurrent Load() calls on the same instance.
type LoaderService struct {
	connectorFactory ConnectorFactory
	schema           SchemaReader
	logger           schemaload.Logger
}

// NewLoaderService creates a LoaderService with all dependencies injected.
// Nil dependencies are programmer errors and panic.
func NewLoaderService(connectorFactory ConnectorFactory, schema SchemaReader, logger schemaload.Logger) *LoaderService {
	if connectorFactory == nil {
		panic("connectorFactory cannot be nil")
	}
	if schema == nil {
		panic("schema cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &LoaderService{
		connectorFactory: connectorFactory,
		schema:           schema,
		logger:           logger,
	}
}

// Load runs one pass over the schema file.
//
// Fatal setup failures (missing connection string, unreadable schema file,
// connection failure) are returned as errors before any statement runs.
// Statement failures are logged and recorded in the report; they never stop
// the pass and never produce an error.
func (s *LoaderService) Load(ctx context.Context, cfg schemaload.LoadConfig) (*schemaload.LoadReport, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.RunID == "" {
		cfg.RunID = uuid.NewString()
	}
	start := time.Now()
	s.logger.Verbose("Run ID: %s", cfg.RunID)

	text, resolved, err := s.schema.Read(cfg.SchemaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}
	stmts := statements.Split(text)
	fingerprint := checksum.Of(text)
	s.logger.Verbose("Schema %s: %d statement(s), sha256 %s", resolved, len(stmts), fingerprint.Short())

	connConfig, err := db.ResolveConnectionConfig(cfg)
	if err != nil {
		return nil, err
	}

	connector, err := s.connectorFactory(connConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connector: %w", err)
	}
	if closer, ok := connector.(io.Closer); ok {
		defer closer.Close()
	}

	s.logger.Verbose("Connecting to %s (%s auth)", db.Describe(connConfig), connConfig.AuthMethod)
	session, err := connector.Connect(ctx)
	if err != nil {
		return nil, err
	}
	defer session.Close()
	s.logger.Info("Connected to %s", db.Describe(connConfig))

	report := &schemaload.LoadReport{
		RunID:          cfg.RunID,
		SchemaPath:     resolved,
		SchemaChecksum: fingerprint.Raw,
	}
	report.Results, err = s.Apply(ctx, session, stmts)
	report.Duration = time.Since(start)
	if err != nil {
		return report, err
	}

	s.summarize(report)
	return report, nil
}

// Apply executes stmts in order on exec, waiting for each to finish before
// starting the next. A failing statement is logged with its first
// StatementPreviewLength characters and the pass continues.
//
// The only error returned is context cancellation, which stops the pass
// before the next statement.
func (s *LoaderService) Apply(ctx context.Context, exec schemaload.Executor, stmts []string) ([]schemaload.StatementResult, error) {
	results := make([]schemaload.StatementResult, 0, len(stmts))
	total := len(stmts)

	for i, stmt := range stmts {
		if err := ctx.Err(); err != nil {
			return results, fmt.Errorf("load interrupted after %d of %d statements: %w", i, total, err)
		}

		res := schemaload.StatementResult{Index: i + 1, SQL: stmt}
		_, res.Err = exec.Exec(ctx, stmt)
		results = append(results, res)

		preview := statements.Preview(stmt, schemaload.StatementPreviewLength)
		if res.Err != nil {
			s.logger.Error("[%d/%d] %s...: %v", res.Index, total, preview, res.Err)
			continue
		}
		s.logger.Success("[%d/%d] %s", res.Index, total, preview)
	}

	return results, nil
}

func (s *LoaderService) summarize(report *schemaload.LoadReport) {
	s.logger.Banner("Schema setup complete: %d of %d statement(s) applied, %d failed (%s)",
		report.Succeeded(), report.Attempted(), report.Failed(), report.Duration.Round(time.Millisecond))
	if report.Failed() > 0 {
		s.logger.Info("Review the errors above; statements that already applied were kept.")
	}
	s.logger.Info(NextStepHint)
}

// SchemaPlan is what a load would execute, computed without a database.
type SchemaPlan struct {
	Path        string
	Statements  []string
	Fingerprint checksum.Fingerprint
}

// Plan reads and splits the schema without connecting to a database.
func (s *LoaderService) Plan(schemaPath string) (*SchemaPlan, error) {
	text, resolved, err := s.schema.Read(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}
	return &SchemaPlan{
		Path:        resolved,
		Statements:  statements.Split(text),
		Fingerprint: checksum.Of(text),
	}, nil
}
