// Package testutil provides the shared harness for tests that run a full
// load over real definition files.
package testutil

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/prototable/internal/app"
	"github.com/vk/prototable/internal/ctxlog"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// Context returns a context carrying a discarding logger, for unit tests
// that call into code which requires one.
func Context(t *testing.T) context.Context {
	t.Helper()
	return ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// HarnessResult holds the outcomes of a full load run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
}

// RunLoad writes the given definition files into a temporary directory and
// runs one full load over it. Map keys are paths relative to the data
// directory, so nested directories come for free.
func RunLoad(t *testing.T, files map[string]string) *HarnessResult {
	t.Helper()

	dataDir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(dataDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	cfg, err := app.NewConfig(app.Config{
		DataPath:  dataDir,
		LogFormat: "text",
		LogLevel:  "debug",
	})
	require.NoError(t, err)

	var logBuf SafeBuffer
	a := app.New(&logBuf, cfg)
	runErr := a.Run(context.Background())

	return &HarnessResult{
		LogOutput: logBuf.String(),
		Err:       runErr,
		App:       a,
	}
}
