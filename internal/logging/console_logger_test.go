package logging

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vvka-141/schemaload/pkg/schemaload"
)

var (
	_ schemaload.Logger = (*ConsoleLogger)(nil)
	_ schemaload.Logger = (*NullLogger)(nil)
)

func newTestLogger(verbose bool) (*ConsoleLogger, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return NewWriterLogger(&out, &errOut, verbose, false), &out, &errOut
}

func TestConsoleLogger_Verbose_WhenEnabled(t *testing.T) {
	logger, out, errOut := newTestLogger(true)
	logger.Verbose("test message: %s", "value")

	assert.Equal(t, "[VERBOSE] test message: value\n", errOut.String())
	assert.Empty(t, out.String())
}

func TestConsoleLogger_Verbose_WhenDisabled(t *testing.T) {
	logger, out, errOut := newTestLogger(false)
	logger.Verbose("test message: %s", "value")

	assert.Empty(t, errOut.String())
	assert.Empty(t, out.String())
}

func TestConsoleLogger_Info(t *testing.T) {
	logger, out, errOut := newTestLogger(false)
	logger.Info("info message: %s", "value")

	assert.Equal(t, "info message: value\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestConsoleLogger_LiteralPercentWithoutArgs(t *testing.T) {
	logger, out, _ := newTestLogger(false)
	logger.Info("100% done")

	assert.Equal(t, "100% done\n", out.String())
}

func TestConsoleLogger_Success(t *testing.T) {
	logger, out, _ := newTestLogger(false)
	logger.Success("[%d] %s", 1, "CREATE TABLE a (id int);")

	assert.Equal(t, "✓ [1] CREATE TABLE a (id int);\n", out.String())
}

func TestConsoleLogger_Error(t *testing.T) {
	logger, out, errOut := newTestLogger(false)
	logger.Error("error message: %s", "value")

	assert.Equal(t, SymbolCross+" [ERROR] error message: value\n", errOut.String())
	assert.Empty(t, out.String())
}

func TestConsoleLogger_Banner(t *testing.T) {
	logger, out, _ := newTestLogger(false)
	logger.Banner("done")

	assert.Equal(t, "done\n", out.String())
}

func TestConsoleLogger_ColorKeepsText(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := NewWriterLogger(&out, &errOut, false, true)
	logger.Success("ok")
	logger.Error("bad")

	assert.Contains(t, out.String(), "ok")
	assert.Contains(t, out.String(), SymbolCheck)
	assert.Contains(t, errOut.String(), "[ERROR]")
	assert.Contains(t, errOut.String(), "bad")
}

func TestColorEnabled_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.False(t, ColorEnabled(nil))
}

func TestConsoleLogger_ConcurrentSafety(t *testing.T) {
	logger, out, errOut := newTestLogger(true)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			logger.Info("message %d", id)
			logger.Verbose("verbose %d", id)
			logger.Error("error %d", id)
		}(i)
	}
	wg.Wait()

	outLines := strings.Split(strings.TrimSpace(out.String()), "\n")
	errLines := strings.Split(strings.TrimSpace(errOut.String()), "\n")
	assert.Len(t, outLines, 10)
	assert.Len(t, errLines, 20)

	for i, line := range errLines {
		if !strings.Contains(line, "verbose") && !strings.Contains(line, "error") {
			t.Errorf("Line %d appears corrupted: %q", i, line)
		}
	}
}

func TestNullLogger_ConcurrentSafety(t *testing.T) {
	logger := NewNullLogger()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			logger.Info("message %d", id)
			logger.Verbose("verbose %d", id)
			logger.Success("success %d", id)
			logger.Error("error %d", id)
			logger.Banner("banner %d", id)
		}(i)
	}

	wg.Wait()
}

// BenchmarkConsoleLogger_VerboseDisabled measures performance when verbose is disabled
func BenchmarkConsoleLogger_VerboseDisabled(b *testing.B) {
	logger, _, _ := newTestLogger(false)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Verbose("benchmark message %d", i)
	}
}

// Example demonstrates NullLogger usage
func ExampleNullLogger() {
	logger := NewNullLogger()
	logger.Info("This message is discarded")
	logger.Error("And this")
	fmt.Println("Done")
	// Output:
	// Done
}
