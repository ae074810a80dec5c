// Package codeshape decides which methods a step offers and what their bodies
// look like. The decision depends only on the step's parameter kind, on
// whether the step is the last one, and on the parameter's null policy.
//
// Where values go and how a step method ends differ between builder
// implementations and updaters, so both are supplied by a Target.
package codeshape

import (
	"fmt"

	"github.com/specialistvlad/stepbuilder/internal/model"
	"github.com/specialistvlad/stepbuilder/internal/output"
)

// Kind is the flavour of a step method.
type Kind int

const (
	// KindSetter accepts the parameter value.
	KindSetter Kind = iota
	// KindEmptyShortcut stores an empty collection without an argument.
	KindEmptyShortcut
	// KindIterate accumulates the elements of its argument.
	KindIterate
	// KindEmptyTerminator moves on without adding elements.
	KindEmptyTerminator
)

func (k Kind) String() string {
	switch k {
	case KindSetter:
		return "setter"
	case KindEmptyShortcut:
		return "empty shortcut"
	case KindIterate:
		return "iterate"
	case KindEmptyTerminator:
		return "empty terminator"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Shape is the decision for one method.
type Shape struct {
	Kind Kind
	Name string
	// Param is nil for zero-argument methods.
	Param *output.Param
	// NullCheck is set when the argument is guarded against nil.
	NullCheck bool
	// Empty is the collection stored by an empty shortcut.
	Empty *model.CollectionInfo
}

// Target supplies the parts of a step method that depend on what is being
// generated.
type Target interface {
	// Signature returns the result type and the failures declared by the
	// methods of step.
	Signature(step model.Step, last bool) (model.TypeName, []model.TypeName)
	// Store records value for p.
	Store(p model.Parameter, value output.Expr) []output.Stmt
	// Collection returns the live collection a lone getter accumulates into.
	Collection(p model.LoneGetter) output.Expr
	// Finish ends a step method.
	Finish(last bool) []output.Stmt
}

// Decide returns the method shapes for step. Lone getters get an iterate
// method and an empty terminator; every other parameter gets a setter, plus
// an empty shortcut when its type is a built-in collection.
func Decide(step model.Step) []Shape {
	p := step.Parameter
	name := p.ParamName()

	if lg, ok := p.(model.LoneGetter); ok {
		return []Shape{
			{
				Kind:      KindIterate,
				Name:      name,
				Param:     &output.Param{Name: name, Type: model.List(lg.Element)},
				NullCheck: lg.NonNull(),
			},
			{Kind: KindEmptyTerminator, Name: model.EmptyMethodName(name)},
		}
	}

	shapes := []Shape{{
		Kind:      KindSetter,
		Name:      name,
		Param:     &output.Param{Name: name, Type: p.ParamType()},
		NullCheck: p.NonNull(),
	}}
	if step.EmptyOption != nil {
		shapes = append(shapes, Shape{
			Kind:  KindEmptyShortcut,
			Name:  step.EmptyOption.MethodName,
			Empty: step.EmptyOption,
		})
	}
	return shapes
}

// Methods turns the shapes of step into methods for t.
func Methods(step model.Step, last bool, t Target) []output.Method {
	returns, thrown := t.Signature(step, last)
	shapes := Decide(step)
	methods := make([]output.Method, 0, len(shapes))
	for _, s := range shapes {
		m := output.Method{
			Name:    s.Name,
			Access:  model.AccessPublic,
			Returns: returns,
			Thrown:  thrown,
			Body:    body(s, step.Parameter, t, last),
		}
		if s.Param != nil {
			m.Params = []output.Param{*s.Param}
		}
		methods = append(methods, m)
	}
	return methods
}

func body(s Shape, p model.Parameter, t Target, last bool) []output.Stmt {
	var stmts []output.Stmt
	if s.NullCheck {
		stmts = append(stmts, output.NullCheck{Value: output.Var(s.Param.Name), Name: s.Param.Name})
	}
	switch s.Kind {
	case KindSetter:
		stmts = append(stmts, t.Store(p, output.Var(s.Param.Name))...)
	case KindEmptyShortcut:
		stmts = append(stmts, t.Store(p, output.EmptyCollection{Type: s.Empty.Type})...)
	case KindIterate:
		lg := p.(model.LoneGetter)
		stmts = append(stmts, output.ForEachAdd{
			Source:     output.Var(s.Param.Name),
			SourceType: s.Param.Type,
			Target:     t.Collection(lg),
			TargetType: lg.Collection,
			Var:        IterationVar(lg.Name),
		})
	}
	return append(stmts, t.Finish(last)...)
}

// IterationVar names the loop variable for a lone getter's elements.
func IterationVar(name string) string {
	return name + "Elem"
}
