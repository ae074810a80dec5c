// This file contains the logic for translating HCL schema structs into the
// format-agnostic configuration model defined in the config package.

package hcl

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/stepbuilder/internal/config"
	"github.com/specialistvlad/stepbuilder/internal/ctxlog"
	"github.com/specialistvlad/stepbuilder/internal/model"
)

func declaredName(pkg, dotted string) model.TypeName {
	return model.Named(pkg, strings.Split(dotted, ".")...)
}

func originOf(r hcl.Range) config.Origin {
	return config.Origin{File: r.Filename, Line: r.Start.Line}
}

// translateType converts a `type` block into the agnostic model.
func (l *Loader) translateType(ctx context.Context, s *typeBlock) (*config.Type, error) {
	ctx = ctxlog.With(ctx, "type", s.Name)
	ctxlog.FromContext(ctx).Debug("Translating HCL type to internal config model.")

	t := &config.Type{
		Name:                 declaredName(s.Package, s.Name),
		Access:               s.Access,
		Abstract:             s.Abstract,
		NoDefaultConstructor: s.NoDefaultConstructor,
		Collection:           s.Collection,
		Origin:               originOf(s.DefRange),
	}
	if err := l.translateMembers(ctx, t, s.Methods, s.Fields); err != nil {
		return nil, fmt.Errorf("in type '%s': %w", s.Name, err)
	}
	return t, nil
}

// translateContainer converts a `container` block and its goals.
func (l *Loader) translateContainer(ctx context.Context, s *containerBlock) (*config.Container, error) {
	ctx = ctxlog.With(ctx, "container", s.Name)
	ctxlog.FromContext(ctx).Debug("Translating HCL container to internal config model.", "goals", len(s.Goals))

	c := &config.Container{
		Type: config.Type{
			Name:                 declaredName(s.Package, s.Name),
			Access:               s.Access,
			Abstract:             s.Abstract,
			NoDefaultConstructor: s.NoDefaultConstructor,
			Origin:               originOf(s.DefRange),
		},
		Lifecycle: s.Lifecycle,
	}
	if err := l.translateMembers(ctx, &c.Type, s.Methods, s.Fields); err != nil {
		return nil, fmt.Errorf("in container '%s': %w", s.Name, err)
	}
	for _, g := range s.Goals {
		goal, err := l.translateGoal(ctx, g)
		if err != nil {
			return nil, fmt.Errorf("in container '%s', goal '%s': %w", s.Name, g.Kind, err)
		}
		c.Goals = append(c.Goals, goal)
	}
	return c, nil
}

func (l *Loader) translateMembers(ctx context.Context, t *config.Type, methods []*methodBlock, fields []*fieldBlock) error {
	for _, m := range methods {
		method, err := l.translateMethod(ctx, m)
		if err != nil {
			return fmt.Errorf("method '%s': %w", m.Name, err)
		}
		t.Methods = append(t.Methods, method)
	}
	for _, f := range fields {
		ft, err := TypeFromExpr(ctx, f.Type)
		if err != nil {
			return fmt.Errorf("field '%s': %w", f.Name, err)
		}
		t.Fields = append(t.Fields, &config.Field{Name: f.Name, Type: ft, Access: f.Access, Static: f.Static})
	}
	return nil
}

func (l *Loader) translateMethod(ctx context.Context, s *methodBlock) (*config.Method, error) {
	returns, err := optionalType(ctx, s.Returns, "returns")
	if err != nil {
		return nil, err
	}
	throws, err := typeList(ctx, s.Throws, "throws")
	if err != nil {
		return nil, err
	}
	params, err := l.translateParams(ctx, s.Params)
	if err != nil {
		return nil, err
	}
	return &config.Method{
		Name:    s.Name,
		Access:  s.Access,
		Static:  s.Static,
		Params:  params,
		Returns: returns,
		Throws:  throws,
		Ignore:  s.Ignore,
		Step:    translateStep(s.Step),
	}, nil
}

func (l *Loader) translateParams(ctx context.Context, blocks []*paramBlock) ([]*config.Param, error) {
	params := make([]*config.Param, 0, len(blocks))
	for _, p := range blocks {
		pt, err := TypeFromExpr(ctx, p.Type)
		if err != nil {
			return nil, fmt.Errorf("param '%s': %w", p.Name, err)
		}
		params = append(params, &config.Param{Name: p.Name, Type: pt, Step: translateStep(p.Step)})
	}
	return params, nil
}

func translateStep(s *stepBlock) *config.Step {
	if s == nil {
		return nil
	}
	return &config.Step{Position: s.Position, NullPolicy: s.NullPolicy}
}

// translateGoal converts a `goal` block into the agnostic model.
func (l *Loader) translateGoal(ctx context.Context, s *goalBlock) (*config.Goal, error) {
	switch s.Kind {
	case config.GoalConstructor, config.GoalMethod, config.GoalBean:
	default:
		return nil, fmt.Errorf("%s: unknown goal kind %q", s.DefRange, s.Kind)
	}

	returns, err := optionalType(ctx, s.Returns, "returns")
	if err != nil {
		return nil, err
	}
	bean, err := optionalType(ctx, s.Bean, "bean")
	if err != nil {
		return nil, err
	}
	throws, err := typeList(ctx, s.Throws, "throws")
	if err != nil {
		return nil, err
	}
	params, err := l.translateParams(ctx, s.Params)
	if err != nil {
		return nil, err
	}
	opts, err := decodeOptions(ctx, s.Options)
	if err != nil {
		return nil, err
	}

	g := &config.Goal{
		Kind:    s.Kind,
		Name:    s.Name,
		Method:  s.Method,
		Static:  s.Static,
		Access:  s.Access,
		Returns: returns,
		Params:  params,
		Throws:  throws,
		Options: opts,
		Origin:  originOf(s.DefRange),
	}
	if bean != nil {
		g.Bean = *bean
	}
	return g, nil
}
