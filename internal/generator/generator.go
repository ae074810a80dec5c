// Package generator turns a validated container into a GeneratorOutput. It
// builds the step chain of every goal, then lets each registered generator
// module contribute its methods and types, goal by goal in declaration order.
package generator

import (
	"context"
	"fmt"

	"github.com/specialistvlad/stepbuilder/internal/ctxlog"
	"github.com/specialistvlad/stepbuilder/internal/goalctx"
	"github.com/specialistvlad/stepbuilder/internal/lifecycle"
	"github.com/specialistvlad/stepbuilder/internal/model"
	"github.com/specialistvlad/stepbuilder/internal/output"
	"github.com/specialistvlad/stepbuilder/internal/registry"
)

// Generator runs the registered generator modules over containers. It holds
// no state between calls.
type Generator struct {
	registry *registry.Registry
}

// New creates a Generator backed by reg.
func New(reg *registry.Registry) *Generator {
	return &Generator{registry: reg}
}

// Generate produces the output for container. Every goal's step chain is
// built before any code is emitted, so a failing goal leaves nothing behind.
func (g *Generator) Generate(ctx context.Context, container *model.Container) (*output.GeneratorOutput, error) {
	logger := ctxlog.FromContext(ctx).With("container", container.Type.String())
	ctx = ctxlog.WithLogger(ctx, logger)

	if err := g.registry.Validate(ctx, container); err != nil {
		return nil, err
	}

	contexts := make([]*goalctx.GoalContext, 0, len(container.Goals))
	for _, goal := range container.Goals {
		gc, err := goalctx.Build(ctx, container.Generated, goal)
		if err != nil {
			return nil, err
		}
		contexts = append(contexts, gc)
	}

	out := &output.GeneratorOutput{
		Container: container.Type,
		Generated: container.Generated,
		Access:    container.Access,
	}
	var reusable []model.TypeName
	for _, gc := range contexts {
		for _, gen := range g.registry.Generators() {
			if !gen.Enabled(gc.Goal) {
				continue
			}
			res, err := gen.Process(ctx, gc)
			if err != nil {
				return nil, fmt.Errorf("%s generator: %w", gen.Name(), err)
			}
			out.Methods = append(out.Methods, res.Methods...)
			out.Types = append(out.Types, res.Types...)
			reusable = append(reusable, res.Reusable...)
		}
	}
	out.Fields = lifecycle.CacheFields(container.Generated, reusable)

	logger.Debug("Container generated.", "goals", len(contexts), "methods", len(out.Methods), "types", len(out.Types), "cached", len(reusable))
	return out, nil
}
