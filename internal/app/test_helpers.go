package app

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/specialistvlad/stepbuilder/internal/manifest"
	"github.com/specialistvlad/stepbuilder/internal/registry"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// SetupAppTest creates an app reading every manifest format, with debug logs
// captured in the returned buffer. Generated source of a dry run goes to out.
func SetupAppTest(t *testing.T, cfg *Config, out *SafeBuffer, modules ...registry.Module) (*App, *SafeBuffer) {
	t.Helper()

	logBuffer := &SafeBuffer{}
	cfg.LogLevel = "debug"
	testApp := NewApp(out, logBuffer, cfg, manifest.NewLoader(), modules...)

	t.Cleanup(func() {
		if os.Getenv("STEPBUILDER_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, logBuffer
}
