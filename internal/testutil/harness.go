// Package testutil runs the whole generator against manifests written to a
// temporary directory and collects what it produced.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/stepbuilder/internal/app"
	"github.com/specialistvlad/stepbuilder/internal/manifest"
	"github.com/specialistvlad/stepbuilder/internal/registry"
	"github.com/stretchr/testify/require"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	// Files maps the name of every generated file to its source.
	Files map[string]string
}

// Options tune a harness run. The zero value generates into package
// "builders" with four workers and the core modules.
type Options struct {
	Package string
	Workers int
	Modules []registry.Module
}

// RunIntegrationTest provides a standardized harness for running integration tests
// using a default background context.
func RunIntegrationTest(t *testing.T, files map[string]string, opts Options) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, opts)
}

// RunIntegrationTestWithContext writes files below a temporary root, runs the
// generator over the "manifests" directory and reads back every file written
// to the output directory.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, opts Options) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	manifestDir := filepath.Join(tmpDir, "manifests")
	outDir := filepath.Join(tmpDir, "out")
	require.NoError(t, os.Mkdir(manifestDir, 0o755))

	// The test provides relative paths (e.g., "nested/b.hcl"), which creates
	// the subdirectory structure below the manifest directory.
	for name, content := range files {
		path := filepath.Join(manifestDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	if opts.Workers == 0 {
		opts.Workers = 4
	}
	cfg, err := app.NewConfig(app.Config{
		ManifestPaths: []string{manifestDir},
		OutDir:        outDir,
		Package:       opts.Package,
		LogLevel:      "debug",
		LogFormat:     "text",
		WorkerCount:   opts.Workers,
	})
	require.NoError(t, err)

	logBuffer := &app.SafeBuffer{}
	testApp := app.NewApp(&app.SafeBuffer{}, logBuffer, cfg, manifest.NewLoader(), opts.Modules...)
	runErr := testApp.Run(ctx)

	if os.Getenv("STEPBUILDER_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       runErr,
		Files:     readGenerated(t, outDir),
	}
}

func readGenerated(t *testing.T, dir string) map[string]string {
	t.Helper()
	files := make(map[string]string)
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return files
	}
	require.NoError(t, err, fmt.Sprintf("failed to read output directory %s", dir))
	for _, e := range entries {
		content, err := os.ReadFile(filepath.Join(dir, e.Name()))
		require.NoError(t, err)
		files[e.Name()] = string(content)
	}
	return files
}
