// Package builder generates the step builder of a goal: the contract of step
// interfaces, the implementation behind them, and the builder entry method.
package builder

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

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the generator with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterGenerator(&Generator{})
}

// Generator implements registry.Generator for the builder feature.
type Generator struct{}

func (g *Generator) Name() string { return registry.FeatureBuilder }

func (g *Generator) Enabled(goal model.GoalDescription) bool {
	return goal.Details().Options.Builder
}

// Process emits the contract, the implementation and the entry method.
func (g *Generator) Process(ctx context.Context, gc *goalctx.GoalContext) (registry.Output, error) {
	logger := ctxlog.FromContext(ctx)
	impl := gc.ImplType()
	target := implTarget{gc: gc}

	var out registry.Output
	var interfaces []model.TypeName
	implDef := output.TypeDef{
		Name:   impl,
		Kind:   output.KindStruct,
		Access: model.AccessPrivate,
		Fields: gc.Fields(),
	}
	for i, step := range gc.Steps {
		methods := codeshape.Methods(step, i == len(gc.Steps)-1, target)
		out.Types = append(out.Types, contract(step, methods))
		interfaces = append(interfaces, step.ThisType)
		implDef.Methods = append(implDef.Methods, methods...)
	}
	implDef.Implements = interfaces
	out.Types = append(out.Types, implDef)

	out.Methods = []output.BuilderMethod{{GoalName: gc.Name(), Method: entry(gc)}}
	if gc.Lifecycle().Recycle() {
		out.Reusable = []model.TypeName{impl}
	}

	logger.Debug("Builder generated.", "goal", gc.Name(), "impl", impl.SimpleName(), "lifecycle", gc.Lifecycle().String())
	return out, nil
}

// contract is the step interface of step: the methods without bodies.
func contract(step model.Step, methods []output.Method) output.TypeDef {
	def := output.TypeDef{
		Name:   step.ThisType,
		Kind:   output.KindInterface,
		Access: model.AccessPublic,
	}
	for _, m := range methods {
		m.Body = nil
		def.Methods = append(def.Methods, m)
	}
	return def
}

// entry is the builderMethod: it obtains an implementation and hands it out
// as the first step.
func entry(gc *goalctx.GoalContext) output.Method {
	details := gc.Details()
	const v = "b"
	recv := lifecycle.ReceiverName(gc.Goal)
	m := output.Method{
		Name:    details.Name + "Builder",
		Access:  details.Options.BuilderAccess,
		Static:  true,
		Returns: gc.Steps[0].ThisType,
	}
	if model.IsInstance(gc.Goal) {
		m.Params = []output.Param{{Name: recv, Type: details.Owner}}
	}
	m.Body = lifecycle.Statements(gc.Goal, lifecycle.Target{
		Var:       v,
		Type:      gc.ImplType(),
		Generated: gc.Generated,
		Receiver:  recv,
	})
	m.Body = append(m.Body, output.Return{Value: output.Var(v)})
	return m
}

// implTarget stores into the implementation's own fields and calls the goal
// on the last step.
type implTarget struct {
	gc *goalctx.GoalContext
}

func (t implTarget) Signature(step model.Step, last bool) (model.TypeName, []model.TypeName) {
	return step.NextType, step.DeclaredExceptions
}

func (t implTarget) Store(p model.Parameter, value output.Expr) []output.Stmt {
	return t.gc.Store(output.This{}, p, value)
}

func (t implTarget) Collection(p model.LoneGetter) output.Expr {
	return t.gc.Collection(output.This{}, p)
}

func (t implTarget) Finish(last bool) []output.Stmt {
	if last {
		return t.gc.Complete(output.This{})
	}
	return []output.Stmt{output.Return{Value: output.This{}}}
}
