package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/sync/errgroup"

	"github.com/specialistvlad/stepbuilder/internal/analyser"
	"github.com/specialistvlad/stepbuilder/internal/config"
	"github.com/specialistvlad/stepbuilder/internal/ctxlog"
	"github.com/specialistvlad/stepbuilder/internal/generator"
	"github.com/specialistvlad/stepbuilder/internal/model"
	"github.com/specialistvlad/stepbuilder/internal/render"
)

// Run loads the manifests and generates the builders of every container.
// Containers are processed in parallel, bounded by the worker count; one
// failing container does not stop the others, and all failures are returned
// joined.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	m, err := a.loader.Load(ctx, a.config.ManifestPaths...)
	if err != nil {
		return fmt.Errorf("failed to load manifests: %w", err)
	}
	universe, err := analyser.Universe(m)
	if err != nil {
		return fmt.Errorf("failed to declare types: %w", err)
	}
	pkg := a.packageName(m)
	a.logger.Debug("Manifests loaded.", "types", universe.Len(), "containers", len(m.Containers), "package", pkg)

	if len(m.Containers) == 0 {
		a.logger.Warn("No containers found in manifests, nothing to generate.")
		return nil
	}
	if err := checkOutputNames(m.Containers); err != nil {
		return err
	}
	if !a.config.DryRun {
		if err := os.MkdirAll(a.config.OutDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	job := &containerJob{
		analyser:  analyser.New(universe),
		generator: generator.New(a.registry),
		pkg:       pkg,
		outDir:    a.config.OutDir,
		dryRun:    a.config.DryRun,
	}
	rendered := make([][]byte, len(m.Containers))
	errs := make([]error, len(m.Containers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.config.WorkerCount)
	for i, c := range m.Containers {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rendered[i], errs[i] = job.process(gctx, c)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if a.config.DryRun {
		for _, src := range rendered {
			if _, err := a.outW.Write(src); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	a.logger.Info("Generation finished.", "containers", len(m.Containers))
	return nil
}

func (a *App) packageName(m *config.Model) string {
	switch {
	case a.config.Package != "":
		return a.config.Package
	case m.Package != "":
		return m.Package
	default:
		return DefaultPackage
	}
}

// checkOutputNames fails when two containers with goals would declare the
// same generated type or write the same file. All containers share one
// output package and directory.
func checkOutputNames(containers []*config.Container) error {
	types := make(map[string]model.TypeName)
	files := make(map[string]model.TypeName)
	var errs []error
	for _, c := range containers {
		if len(c.Goals) == 0 {
			continue
		}
		generated := model.GeneratedTypeFor(c.Name).SimpleName()
		if prev, ok := types[generated]; ok {
			errs = append(errs, fmt.Errorf("containers %s and %s both generate %s", prev, c.Name, generated))
			continue
		}
		types[generated] = c.Name

		file := FileName(c.Name.Names)
		if prev, ok := files[file]; ok {
			errs = append(errs, fmt.Errorf("containers %s and %s both write %s", prev, c.Name, file))
			continue
		}
		files[file] = c.Name
	}
	return errors.Join(errs...)
}

// containerJob holds what every container of one run shares. Analysers and
// generators keep no per-call state, so one job serves all workers.
type containerJob struct {
	analyser  *analyser.Analyser
	generator *generator.Generator
	pkg       string
	outDir    string
	dryRun    bool
}

// process generates one container. It returns the rendered source under a
// dry run and writes it to the output directory otherwise.
func (j *containerJob) process(ctx context.Context, c *config.Container) ([]byte, error) {
	logger := ctxlog.FromContext(ctx).With("container", c.Name.String())
	ctx = ctxlog.WithLogger(ctx, logger)

	described, err := j.analyser.Analyse(ctx, c)
	if errors.Is(err, analyser.ErrNoGoals) {
		logger.Warn("Container declares no goals, skipping.")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	out, err := j.generator.Generate(ctx, described)
	if err != nil {
		return nil, fmt.Errorf("container %s: %w", c.Name, err)
	}

	var buf bytes.Buffer
	if err := render.Write(&buf, out, j.pkg); err != nil {
		return nil, err
	}
	if j.dryRun {
		return buf.Bytes(), nil
	}

	path := filepath.Join(j.outDir, FileName(c.Name.Names))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}
	logger.Info("Builders written.", "file", path, "goals", len(described.Goals))
	return nil, nil
}

// FileName is the file the builders of a container named by names are
// written to: the snake-cased name with a _builders.go suffix. A run of
// capitals stays one word, so HTTPServer becomes http_server.
func FileName(names []string) string {
	runes := []rune(strings.Join(names, ""))
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) ||
				(unicode.IsUpper(runes[i-1]) && i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String() + "_builders.go"
}
