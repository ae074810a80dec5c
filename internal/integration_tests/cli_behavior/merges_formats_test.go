package integration_tests

import (
	"testing"

	"github.com/specialistvlad/stepbuilder/internal/testutil"
	"github.com/stretchr/testify/require"
)

// TestCLI_MergesManifests_AcrossFormats validates that every manifest below the
// given directory is discovered and merged, whatever its format.
func TestCLI_MergesManifests_AcrossFormats(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"a.hcl": `
			package = "post"

			container "Letter" {
				goal "constructor" {
					param "stamp" { type = string }
				}
			}
		`,
		"nested/b.toml": `
[[container]]
name = "Parcel"

  [[container.goal]]
  kind = "constructor"

    [[container.goal.param]]
    name = "weight"
    type = "int"
`,
		"nested/deeper/c.yaml": `
containers:
  - name: Postcard
    goals:
      - kind: constructor
        params:
          - name: picture
            type: string
`,
		"notes.txt": "not a manifest",
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, testutil.Options{})

	// --- Assert ---
	require.NoError(t, result.Err)
	require.Len(t, result.Files, 3)
	testutil.AssertGenerated(t, result, "letter_builders.go", "package post", "func LetterBuildersLetterBuilder() LetterBuildersLetterBuilderStamp {")
	testutil.AssertGenerated(t, result, "parcel_builders.go", "package post", "return NewParcel(p.weight)")
	testutil.AssertGenerated(t, result, "postcard_builders.go", "package post", "func (p *postcardBuildersPostcardBuilderImpl) Picture(picture string) *Postcard {")
}

// TestCLI_PackageFlag_OverridesManifests validates that an explicit package
// wins over the one the manifests declare.
func TestCLI_PackageFlag_OverridesManifests(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"a.hcl": `
			package = "post"

			container "Letter" {
				goal "constructor" {
					param "stamp" { type = string }
				}
			}
		`,
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, testutil.Options{Package: "mailroom"})

	// --- Assert ---
	require.NoError(t, result.Err)
	testutil.AssertGenerated(t, result, "letter_builders.go", "package mailroom")
}
