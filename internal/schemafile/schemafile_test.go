package schemafile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/schemaload/pkg/schemaload"
)

func TestSource_Resolve(t *testing.T) {
	base := filepath.FromSlash("/opt/app/bin")
	src := NewSource(afero.NewMemMapFs(), base)

	assert.Equal(t, filepath.Join(base, "schema.sql"), src.Resolve("schema.sql"))
	assert.Equal(t, filepath.Join(base, "sql", "init.sql"), src.Resolve(filepath.Join("sql", "init.sql")))

	abs, err := filepath.Abs(filepath.FromSlash("/etc/app/schema.sql"))
	require.NoError(t, err)
	assert.Equal(t, abs, src.Resolve(abs))
}

func TestSource_Read(t *testing.T) {
	fs := afero.NewMemMapFs()
	base := filepath.FromSlash("/opt/app")
	path := filepath.Join(base, "schema.sql")
	require.NoError(t, afero.WriteFile(fs, path, []byte("CREATE TABLE a (id int);"), 0644))

	text, resolved, err := NewSource(fs, base).Read("schema.sql")
	require.NoError(t, err)
	assert.Equal(t, "CREATE TABLE a (id int);", text)
	assert.Equal(t, path, resolved)
}

func TestSource_Read_Missing(t *testing.T) {
	_, resolved, err := NewSource(afero.NewMemMapFs(), filepath.FromSlash("/opt/app")).Read("schema.sql")
	require.Error(t, err)
	assert.True(t, errors.Is(err, schemaload.ErrSchemaUnreadable))
	assert.True(t, errors.Is(err, os.ErrNotExist), "underlying cause should be preserved: %v", err)
	assert.Contains(t, err.Error(), resolved)
}

func TestSource_Read_Directory(t *testing.T) {
	fs := afero.NewMemMapFs()
	base := filepath.FromSlash("/opt/app")
	require.NoError(t, fs.MkdirAll(filepath.Join(base, "schema.sql"), 0755))

	_, _, err := NewSource(fs, base).Read("schema.sql")
	assert.ErrorIs(t, err, schemaload.ErrSchemaUnreadable)
}

func TestSource_Read_InvalidUTF8(t *testing.T) {
	fs := afero.NewMemMapFs()
	base := filepath.FromSlash("/opt/app")
	require.NoError(t, afero.WriteFile(fs, filepath.Join(base, "schema.sql"), []byte{0xff, 0xfe, 0x00}, 0644))

	_, _, err := NewSource(fs, base).Read("schema.sql")
	assert.ErrorIs(t, err, schemaload.ErrSchemaUnreadable)
}

func TestNewOSSource_ReadsRealFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.sql")
	require.NoError(t, os.WriteFile(path, []byte("SELECT 1;"), 0644))

	src, err := NewOSSource()
	require.NoError(t, err)

	text, _, err := src.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1;", text)
}

func TestExecutableDir(t *testing.T) {
	dir, err := ExecutableDir()
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(dir))
}
