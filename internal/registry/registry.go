package registry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/specialistvlad/stepbuilder/internal/goalctx"
	"github.com/specialistvlad/stepbuilder/internal/model"
	"github.com/specialistvlad/stepbuilder/internal/output"
)

// Feature names a goal option can enable.
const (
	FeatureBuilder   = "builder"
	FeatureUpdater   = "updater"
	FeatureToBuilder = "toBuilder"
)

// Module is the interface that all generator modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Output is what one generator contributes for one goal.
type Output struct {
	Methods []output.BuilderMethod
	Types   []output.TypeDef
	// Reusable lists the generated types whose instances are drawn from the
	// container's cache under the reuse lifecycle.
	Reusable []model.TypeName
}

// Generator produces the code of one feature for a goal.
type Generator interface {
	Name() string
	// Enabled reports whether the goal needs anything from this generator.
	Enabled(goal model.GoalDescription) bool
	Process(ctx context.Context, goal *goalctx.GoalContext) (Output, error)
}

// Registry holds the registered generators for a single application instance.
type Registry struct {
	generators map[string]Generator
	order      []string
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		generators: make(map[string]Generator),
	}
}

// RegisterGenerator registers g under its name.
func (r *Registry) RegisterGenerator(g Generator) {
	name := g.Name()
	if _, exists := r.generators[name]; exists {
		panic(fmt.Sprintf("generator with name '%s' already registered", name))
	}
	slog.Debug("Registering generator.", "name", name)
	r.generators[name] = g
	r.order = append(r.order, name)
}

// Generator returns the generator registered under name.
func (r *Registry) Generator(name string) (Generator, bool) {
	g, ok := r.generators[name]
	return g, ok
}

// Generators returns all generators in registration order.
func (r *Registry) Generators() []Generator {
	out := make([]Generator, len(r.order))
	for i, name := range r.order {
		out[i] = r.generators[name]
	}
	return out
}

// Features returns the feature names opts enable. The to-builder entry fills
// an updater, so it enables the updater as well.
func Features(opts model.GoalOptions) []string {
	var features []string
	if opts.Builder {
		features = append(features, FeatureBuilder)
	}
	if opts.Updater || opts.ToBuilder {
		features = append(features, FeatureUpdater)
	}
	if opts.ToBuilder {
		features = append(features, FeatureToBuilder)
	}
	return features
}
