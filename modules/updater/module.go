// Package updater generates the updater of a goal: a type holding every goal
// value, with one method per value and a done method that performs the goal.
// The updater entry method fills a fresh updater from raw values.
package updater

import (
	"context"

	"github.com/specialistvlad/stepbuilder/internal/codeshape"
	"github.com/specialistvlad/stepbuilder/internal/ctxlog"
	"github.com/specialistvlad/stepbuilder/internal/goalctx"
	"github.com/specialistvlad/stepbuilder/internal/lifecycle"
	"github.com/specialistvlad/stepbuilder/internal/model"
	"github.com/specialistvlad/stepbuilder/internal/output"
	"github.com/specialistvlad/stepbuilder/internal/registry"
)

// DoneMethod ends an update and returns the goal value.
const DoneMethod = "done"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the generator with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterGenerator(&Generator{})
}

// Generator implements registry.Generator for the updater feature.
type Generator struct{}

func (g *Generator) Name() string { return registry.FeatureUpdater }

// Enabled is also true for to-builder goals, whose entry method hands out an
// updater.
func (g *Generator) Enabled(goal model.GoalDescription) bool {
	opts := goal.Details().Options
	return opts.Updater || opts.ToBuilder
}

// Process emits the updater type, and the updater entry method when the goal
// asks for it.
func (g *Generator) Process(ctx context.Context, gc *goalctx.GoalContext) (registry.Output, error) {
	logger := ctxlog.FromContext(ctx)
	updater := gc.UpdaterType()

	var out registry.Output
	out.Types = []output.TypeDef{Define(gc)}
	if gc.Details().Options.Updater {
		out.Methods = []output.BuilderMethod{{GoalName: gc.Name(), Method: entry(gc)}}
	}
	if gc.Lifecycle().Recycle() {
		out.Reusable = []model.TypeName{updater}
	}

	logger.Debug("Updater generated.", "goal", gc.Name(), "updater", updater.SimpleName(), "entry", len(out.Methods) > 0)
	return out, nil
}

// Define returns the updater type of gc.
func Define(gc *goalctx.GoalContext) output.TypeDef {
	target := updaterTarget{gc: gc}
	def := output.TypeDef{
		Name:   gc.UpdaterType(),
		Kind:   output.KindStruct,
		Access: model.AccessPublic,
		Fields: gc.Fields(),
	}
	for _, step := range gc.Steps {
		def.Methods = append(def.Methods, codeshape.Methods(step, false, target)...)
	}
	def.Methods = append(def.Methods, output.Method{
		Name:    DoneMethod,
		Access:  model.AccessPublic,
		Returns: gc.GoalType(),
		Thrown:  gc.Goal.ThrownTypes(),
		Body:    gc.Complete(output.This{}),
	})
	return def
}

// entry takes every value of the goal in step order and returns a filled
// updater.
func entry(gc *goalctx.GoalContext) output.Method {
	details := gc.Details()
	v := lifecycle.LocalVar(gc.Goal, "updater")
	recv := lifecycle.ReceiverName(gc.Goal)
	m := output.Method{
		Name:    details.Name + "Updater",
		Access:  details.Options.UpdaterAccess,
		Static:  true,
		Returns: gc.UpdaterType(),
	}
	if model.IsInstance(gc.Goal) {
		m.Params = []output.Param{{Name: recv, Type: details.Owner}}
	}
	m.Body = lifecycle.Statements(gc.Goal, lifecycle.Target{
		Var:       v,
		Type:      gc.UpdaterType(),
		Generated: gc.Generated,
		Receiver:  recv,
	})

	x := output.Var(v)
	for _, step := range gc.Steps {
		p := step.Parameter
		name := p.ParamName()
		if p.NonNull() {
			m.Body = append(m.Body, output.NullCheck{Value: output.Var(name), Name: name})
		}
		if lg, ok := p.(model.LoneGetter); ok {
			m.Params = append(m.Params, output.Param{Name: name, Type: model.List(lg.Element)})
			m.Body = append(m.Body, output.ForEachAdd{
				Source:     output.Var(name),
				SourceType: model.List(lg.Element),
				Target:     gc.Collection(x, lg),
				TargetType: lg.Collection,
				Var:        codeshape.IterationVar(name),
			})
			continue
		}
		m.Params = append(m.Params, output.Param{Name: name, Type: p.ParamType()})
		m.Body = append(m.Body, gc.Store(x, p, output.Var(name))...)
	}
	m.Body = append(m.Body, output.Return{Value: x})
	m.Thrown = beanAccessorThrown(gc)
	return m
}

// beanAccessorThrown collects what the accessors used by the entry method
// declare.
func beanAccessorThrown(gc *goalctx.GoalContext) []model.TypeName {
	var lists [][]model.TypeName
	for _, step := range gc.Steps {
		switch p := step.Parameter.(type) {
		case model.AccessorPair:
			lists = append(lists, p.SetterThrows)
		case model.LoneGetter:
			lists = append(lists, p.GetterThrows)
		}
	}
	return model.UnionTypes(lists...)
}

// updaterTarget stores into the updater and always returns it.
type updaterTarget struct {
	gc *goalctx.GoalContext
}

func (t updaterTarget) Signature(step model.Step, last bool) (model.TypeName, []model.TypeName) {
	switch p := step.Parameter.(type) {
	case model.AccessorPair:
		return t.gc.UpdaterType(), p.SetterThrows
	case model.LoneGetter:
		return t.gc.UpdaterType(), p.GetterThrows
	}
	return t.gc.UpdaterType(), nil
}

func (t updaterTarget) Store(p model.Parameter, value output.Expr) []output.Stmt {
	return t.gc.Store(output.This{}, p, value)
}

func (t updaterTarget) Collection(p model.LoneGetter) output.Expr {
	return t.gc.Collection(output.This{}, p)
}

func (t updaterTarget) Finish(bool) []output.Stmt {
	return []output.Stmt{output.Return{Value: output.This{}}}
}
