package integration_tests

import (
	"testing"

	"github.com/specialistvlad/stepbuilder/internal/registry"
	"github.com/specialistvlad/stepbuilder/internal/testutil"
	"github.com/specialistvlad/stepbuilder/modules/builder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const updaterManifest = `
	container "Account" {
		goal "constructor" {
			param "owner" { type = string }
			options {
				updater = true
			}
		}
	}
`

// TestModuleContract_MissingGenerator_FailsTheContainer validates that a goal
// requesting a feature no registered module provides is rejected.
func TestModuleContract_MissingGenerator_FailsTheContainer(t *testing.T) {
	t.Parallel()

	// --- Act ---
	result := testutil.RunIntegrationTest(t,
		map[string]string{"main.hcl": updaterManifest},
		testutil.Options{Modules: []registry.Module{&builder.Module{}}},
	)

	// --- Assert ---
	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "feature 'updater' has no registered generator")
	testutil.AssertNotGenerated(t, result, "account_builders.go")
}

// TestModuleContract_CoreModules_ServeEveryFeature validates the same manifest
// against the default module set.
func TestModuleContract_CoreModules_ServeEveryFeature(t *testing.T) {
	t.Parallel()

	result := testutil.RunIntegrationTest(t, map[string]string{"main.hcl": updaterManifest}, testutil.Options{})

	require.NoError(t, result.Err)
	testutil.AssertGenerated(t, result, "account_builders.go",
		"func AccountBuildersAccountBuilder() AccountBuildersAccountBuilderOwner {",
		"func NewAccountBuildersAccountUpdater(owner string) *AccountBuildersAccountUpdater {",
		"func (a *AccountBuildersAccountUpdater) Done() *Account {",
	)
}
