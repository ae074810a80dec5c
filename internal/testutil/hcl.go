package testutil

import "testing"

// RunHCLTest is a shorthand for generating from a single HCL manifest with
// the default options.
func RunHCLTest(t *testing.T, manifestHCL string) *HarnessResult {
	t.Helper()
	return RunIntegrationTest(t, map[string]string{"main.hcl": manifestHCL}, Options{})
}
