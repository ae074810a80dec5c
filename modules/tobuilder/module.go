// Package tobuilder generates the to-builder entry method of a goal. It reads
// every value back from an existing goal value and returns an updater
// holding them.
package tobuilder

import (
	"context"
	"fmt"

	"github.com/specialistvlad/stepbuilder/internal/codeshape"
	"github.com/specialistvlad/stepbuilder/internal/ctxlog"
	"github.com/specialistvlad/stepbuilder/internal/goalctx"
	"github.com/specialistvlad/stepbuilder/internal/lifecycle"
	"github.com/specialistvlad/stepbuilder/internal/model"
	"github.com/specialistvlad/stepbuilder/internal/output"
	"github.com/specialistvlad/stepbuilder/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the generator with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterGenerator(&Generator{})
}

// Generator implements registry.Generator for the to-builder feature.
type Generator struct{}

func (g *Generator) Name() string { return registry.FeatureToBuilder }

func (g *Generator) Enabled(goal model.GoalDescription) bool {
	return goal.Details().Options.ToBuilder
}

// Process emits the to-builder entry method. The updater type it returns is
// emitted by the updater generator.
func (g *Generator) Process(ctx context.Context, gc *goalctx.GoalContext) (registry.Output, error) {
	logger := ctxlog.FromContext(ctx)
	details := gc.Details()
	recv := lifecycle.ReceiverName(gc.Goal)
	value := output.Var(lifecycle.LocalVar(gc.Goal, model.Downcase(details.GoalType.SimpleName())))
	x := output.Var(lifecycle.LocalVar(gc.Goal, "updater", value.Name))

	m := output.Method{
		Name:    details.Name + "ToBuilder",
		Access:  details.Options.ToBuilderAccess,
		Static:  true,
		Returns: gc.UpdaterType(),
	}
	if model.IsInstance(gc.Goal) {
		m.Params = append(m.Params, output.Param{Name: recv, Type: details.Owner})
	}
	m.Params = append(m.Params, output.Param{Name: value.Name, Type: details.GoalType})
	m.Body = lifecycle.Statements(gc.Goal, lifecycle.Target{
		Var:       x.Name,
		Type:      gc.UpdaterType(),
		Generated: gc.Generated,
		Receiver:  recv,
	})

	var thrown [][]model.TypeName
	for _, step := range gc.Steps {
		stmts, t, err := copyValue(gc, value, x, step.Parameter)
		if err != nil {
			return registry.Output{}, fmt.Errorf("goal %s: %w", details.Name, err)
		}
		m.Body = append(m.Body, stmts...)
		thrown = append(thrown, t)
	}
	m.Body = append(m.Body, output.Return{Value: x})
	m.Thrown = model.UnionTypes(thrown...)

	logger.Debug("To-builder generated.", "goal", details.Name, "values", len(gc.Steps))
	return registry.Output{Methods: []output.BuilderMethod{{GoalName: details.Name, Method: m}}}, nil
}

// copyValue reads p back from value and stores it into the updater x. It also
// returns what the read and the store may raise.
func copyValue(gc *goalctx.GoalContext, value, x output.Expr, p model.Parameter) ([]output.Stmt, []model.TypeName, error) {
	var read output.Expr
	var thrown []model.TypeName
	switch p := p.(type) {
	case model.RegularParameter:
		switch proj := p.Projection.(type) {
		case model.ProjectionMethod:
			read = output.Call{X: value, Method: proj.MethodName}
		case model.FieldAccess:
			read = output.Select{X: value, Name: proj.FieldName, User: true}
		default:
			return nil, nil, fmt.Errorf("parameter %s has no projection", p.Name)
		}
		thrown = p.Projection.Thrown()
	case model.AccessorPair:
		read = output.Call{X: value, Method: p.Getter}
		thrown = model.UnionTypes(p.GetterThrows, p.SetterThrows)
	case model.LoneGetter:
		read = output.Call{X: value, Method: p.Getter}
		thrown = p.GetterThrows
	}

	var stmts []output.Stmt
	if p.NonNull() {
		stmts = append(stmts, output.NullCheck{Value: read, Name: p.ParamName()})
	}
	if lg, ok := p.(model.LoneGetter); ok {
		stmts = append(stmts, output.ForEachAdd{
			Source:     read,
			SourceType: lg.Collection,
			Live:       true,
			Target:     gc.Collection(x, lg),
			TargetType: lg.Collection,
			Var:        codeshape.IterationVar(lg.Name),
		})
		return stmts, thrown, nil
	}
	return append(stmts, gc.Store(x, p, read)...), thrown, nil
}
