package manifest

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/specialistvlad/stepbuilder/internal/config"
	"github.com/specialistvlad/stepbuilder/internal/ctxlog"
	"github.com/specialistvlad/stepbuilder/internal/fsutil"
	"github.com/specialistvlad/stepbuilder/internal/hcl"
)

// Extensions lists every manifest extension the loader understands.
var Extensions = []string{hcl.Extension, ".toml", ".yaml", ".yml"}

// Formats maps a format name to the extensions it reads. "auto" reads all.
var Formats = map[string][]string{
	"auto": Extensions,
	"hcl":  {hcl.Extension},
	"toml": {".toml"},
	"yaml": {".yaml", ".yml"},
}

// Loader reads manifests of any supported format and merges them into one
// model.
type Loader struct {
	hcl        *hcl.Loader
	extensions []string
}

// NewLoader creates a loader for all supported formats.
func NewLoader() *Loader {
	return &Loader{hcl: hcl.NewLoader(), extensions: Extensions}
}

// NewFormatLoader creates a loader that only reads files of one format.
func NewFormatLoader(format string) (*Loader, error) {
	exts, ok := Formats[format]
	if !ok {
		return nil, fmt.Errorf("unknown manifest format %q", format)
	}
	return &Loader{hcl: hcl.NewLoader(), extensions: exts}, nil
}

var _ config.Loader = (*Loader)(nil)

// Load collects manifest files under paths and merges them in discovery
// order. Explicit files with an unsupported extension are skipped.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.CollectFiles(paths, l.extensions...)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no manifest files found in %v", paths)
	}
	logger.Debug("Discovered manifest files.", "count", len(files))

	out := &config.Model{}
	for _, file := range files {
		m, err := l.loadFile(ctx, file)
		if err != nil {
			return nil, err
		}
		if err := out.Merge(m); err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
	}
	logger.Debug("Manifest loading complete.", "types", len(out.Types), "containers", len(out.Containers))
	return out, nil
}

func (l *Loader) loadFile(ctx context.Context, file string) (*config.Model, error) {
	ctxlog.FromContext(ctx).Debug("Loading manifest.", "file", file)
	switch filepath.Ext(file) {
	case hcl.Extension:
		return l.hcl.Load(ctx, file)
	case ".toml":
		return loadTOML(ctx, file)
	default:
		return loadYAML(ctx, file)
	}
}
