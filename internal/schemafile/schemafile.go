// Package schemafile locates and reads the schema file.
//
// Relative paths resolve against the directory holding the running
// executable, so the tool behaves the same from any working directory.
package schemafile

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/spf13/afero"
	"github.com/vvka-141/schemaload/pkg/schemaload"
)

// Source reads schema files from a filesystem.
type Source struct {
	fs      afero.Fs
	baseDir string
}

// NewSource returns a Source reading from fs with relative paths resolved
// against baseDir.
func NewSource(fs afero.Fs, baseDir string) *Source {
	return &Source{fs: fs, baseDir: baseDir}
}

// NewOSSource returns a Source on the real filesystem anchored at the
// executable's directory.
func NewOSSource() (*Source, error) {
	dir, err := ExecutableDir()
	if err != nil {
		return nil, err
	}
	return NewSource(afero.NewOsFs(), dir), nil
}

// ExecutableDir returns the directory containing the running binary with
// symlinks resolved.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// Resolve returns the absolute location of path.
func (s *Source) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(s.baseDir, path)
}

// Read returns the full text of the schema file at path along with its
// resolved location. Any failure wraps schemaload.ErrSchemaUnreadable.
func (s *Source) Read(path string) (string, string, error) {
	resolved := s.Resolve(path)

	info, err := s.fs.Stat(resolved)
	if err != nil {
		return "", resolved, fmt.Errorf("%s: %w: %w", resolved, schemaload.ErrSchemaUnreadable, err)
	}
	if info.IsDir() {
		return "", resolved, fmt.Errorf("%s is a directory: %w", resolved, schemaload.ErrSchemaUnreadable)
	}

	data, err := afero.ReadFile(s.fs, resolved)
	if err != nil {
		return "", resolved, fmt.Errorf("%s: %w: %w", resolved, schemaload.ErrSchemaUnreadable, err)
	}
	if !utf8.Valid(data) {
		return "", resolved, fmt.Errorf("%s is not valid UTF-8: %w", resolved, schemaload.ErrSchemaUnreadable)
	}

	return string(data), resolved, nil
}
