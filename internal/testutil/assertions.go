package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertGenerated checks that the run produced file and that its source
// contains every snippet.
func AssertGenerated(t *testing.T, result *HarnessResult, file string, snippets ...string) {
	t.Helper()

	src, ok := result.Files[file]
	require.True(t, ok, "expected generated file %q, got %v", file, fileNames(result))
	for _, s := range snippets {
		assert.Contains(t, src, s, "generated file %q", file)
	}
}

// AssertNotGenerated checks that the run left no file of that name behind.
func AssertNotGenerated(t *testing.T, result *HarnessResult, file string) {
	t.Helper()
	_, ok := result.Files[file]
	assert.False(t, ok, "file %q should not have been generated", file)
}

// AssertLogged checks the captured log output for a message.
func AssertLogged(t *testing.T, result *HarnessResult, msg string) {
	t.Helper()
	require.True(t,
		strings.Contains(result.LogOutput, msg),
		"expected log output to contain %q", msg,
	)
}

func fileNames(result *HarnessResult) []string {
	names := make([]string, 0, len(result.Files))
	for name := range result.Files {
		names = append(names, name)
	}
	return names
}
