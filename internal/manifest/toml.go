package manifest

import (
	"context"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/specialistvlad/stepbuilder/internal/config"
)

// loadTOML decodes one TOML manifest. Keys the schema does not know are
// rejected. TOML carries no line information, so origins name only the file.
func loadTOML(ctx context.Context, path string) (*config.Model, error) {
	var doc document
	md, err := toml.DecodeFile(path, &doc)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return doc.translate(ctx, path, positions{})
}
