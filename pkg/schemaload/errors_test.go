package schemaload_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/vvka-141/schemaload/pkg/schemaload"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, schemaload.ExitSuccess},
		{"missing connection string", schemaload.ErrMissingConnectionString, schemaload.ExitConfigError},
		{"wrapped missing connection string", fmt.Errorf("setup: %w", schemaload.ErrMissingConnectionString), schemaload.ExitConfigError},
		{"invalid config", schemaload.ErrInvalidConfig, schemaload.ExitConfigError},
		{"unsupported auth", schemaload.ErrUnsupportedAuthMethod, schemaload.ExitConfigError},
		{"schema unreadable", fmt.Errorf("read: %w", schemaload.ErrSchemaUnreadable), schemaload.ExitSchemaUnreadable},
		{"connection failed", schemaload.ErrConnectionFailed, schemaload.ExitConnectionError},
		{"connection refused text", errors.New("dial tcp: connection refused"), schemaload.ExitConnectionError},
		{"unknown flag", errors.New("unknown flag: --foo"), schemaload.ExitUsageError},
		{"accepts args", errors.New("accepts 0 arg(s), received 1"), schemaload.ExitUsageError},
		{"general error", errors.New("something went wrong"), schemaload.ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := schemaload.ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
