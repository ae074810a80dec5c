// This file contains the logic for parsing type expressions (e.g., `string`,
// `list(User)`, `qual("example.com/pkg", "Outer.Inner")`) into model.TypeName
// values.

package hcl

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/stepbuilder/internal/ctxlog"
	"github.com/specialistvlad/stepbuilder/internal/model"
	"github.com/zclconf/go-cty/cty"
)

// ParseType parses a type written in manifest notation. The TOML and YAML
// loaders use it for their string-typed fields.
func ParseType(ctx context.Context, src string) (model.TypeName, error) {
	expr, diags := hclsyntax.ParseExpression([]byte(strings.TrimSpace(src)), "type", hcl.InitialPos)
	if diags.HasErrors() {
		return model.TypeName{}, fmt.Errorf("invalid type %q: %w", src, diags)
	}
	t, err := TypeFromExpr(ctx, expr)
	if err != nil {
		return model.TypeName{}, fmt.Errorf("invalid type %q: %w", src, err)
	}
	return t, nil
}

// TypeFromExpr converts a type expression into its model.TypeName equivalent.
func TypeFromExpr(ctx context.Context, expr hcl.Expression) (model.TypeName, error) {
	logger := ctxlog.FromContext(ctx)

	switch v := expr.(type) {
	case *hclsyntax.ScopeTraversalExpr:
		names := make([]string, 0, len(v.Traversal))
		names = append(names, v.Traversal.RootName())
		for _, step := range v.Traversal[1:] {
			attr, ok := step.(hcl.TraverseAttr)
			if !ok {
				return model.TypeName{}, fmt.Errorf("invalid type name: only dotted identifiers are allowed")
			}
			names = append(names, attr.Name)
		}
		if len(names) == 1 {
			switch {
			case names[0] == "any":
				return model.AnyType, nil
			case model.IsPrimitiveName(names[0]):
				return model.Primitive(names[0]), nil
			}
		}
		return model.Named("", names...), nil

	case *hclsyntax.FunctionCallExpr:
		logger.Debug("Parsing type expression as a function call.", "call", v.Name)
		return typeFromCall(ctx, v)

	case *hclsyntax.TemplateExpr, *hclsyntax.LiteralValueExpr, *hclsyntax.TemplateWrapExpr:
		s, err := literalString(expr)
		if err != nil {
			return model.TypeName{}, err
		}
		return ParseType(ctx, s)

	default:
		return model.TypeName{}, fmt.Errorf("unsupported expression for type definition: %T", v)
	}
}

func typeFromCall(ctx context.Context, call *hclsyntax.FunctionCallExpr) (model.TypeName, error) {
	args := func(want int) ([]model.TypeName, error) {
		if want >= 0 && len(call.Args) != want {
			return nil, fmt.Errorf("the %s() type constructor requires %d argument(s), got %d", call.Name, want, len(call.Args))
		}
		out := make([]model.TypeName, 0, len(call.Args))
		for _, a := range call.Args {
			t, err := TypeFromExpr(ctx, a)
			if err != nil {
				return nil, fmt.Errorf("in %s(): %w", call.Name, err)
			}
			out = append(out, t)
		}
		return out, nil
	}

	switch call.Name {
	case model.ListName, model.SetName:
		elems, err := args(1)
		if err != nil {
			return model.TypeName{}, err
		}
		if call.Name == model.ListName {
			return model.List(elems[0]), nil
		}
		return model.Set(elems[0]), nil

	case model.MapName:
		kv, err := args(2)
		if err != nil {
			return model.TypeName{}, err
		}
		return model.Map(kv[0], kv[1]), nil

	case "qual":
		if len(call.Args) != 2 {
			return model.TypeName{}, fmt.Errorf("the qual() type constructor requires 2 arguments, got %d", len(call.Args))
		}
		pkg, err := literalString(call.Args[0])
		if err != nil {
			return model.TypeName{}, fmt.Errorf("in qual(): %w", err)
		}
		dotted, err := literalString(call.Args[1])
		if err != nil {
			return model.TypeName{}, fmt.Errorf("in qual(): %w", err)
		}
		if pkg == "" || dotted == "" {
			return model.TypeName{}, fmt.Errorf("qual() needs a package path and a type name")
		}
		return model.Named(pkg, strings.Split(dotted, ".")...), nil

	case "generic":
		if len(call.Args) < 2 {
			return model.TypeName{}, fmt.Errorf("the generic() type constructor requires a type and at least one argument")
		}
		all, err := args(-1)
		if err != nil {
			return model.TypeName{}, err
		}
		if all[0].Primitive || all[0].IsBuiltin() {
			return model.TypeName{}, fmt.Errorf("generic() cannot parameterize %s", all[0])
		}
		return all[0].Generic(all[1:]...), nil
	}
	return model.TypeName{}, fmt.Errorf("unknown type constructor function %q", call.Name)
}

// literalString evaluates expr without variables and requires a string.
func literalString(expr hcl.Expression) (string, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return "", fmt.Errorf("expected a literal string: %w", diags)
	}
	if !val.Type().Equals(cty.String) || val.IsNull() || !val.IsKnown() {
		return "", fmt.Errorf("expected a literal string, got %s", val.Type().FriendlyName())
	}
	return val.AsString(), nil
}

// typeList converts a list of type expressions, as used by `throws`.
func typeList(ctx context.Context, expr hcl.Expression, attrName string) ([]model.TypeName, error) {
	if !isExprDefined(ctx, expr, attrName) {
		return nil, nil
	}
	exprs, diags := hcl.ExprList(expr)
	if diags.HasErrors() {
		return nil, fmt.Errorf("attribute '%s' must be a list of types: %w", attrName, diags)
	}
	out := make([]model.TypeName, 0, len(exprs))
	for _, e := range exprs {
		t, err := TypeFromExpr(ctx, e)
		if err != nil {
			return nil, fmt.Errorf("in attribute '%s': %w", attrName, err)
		}
		out = append(out, t)
	}
	return out, nil
}

// optionalType converts expr when it was written in the source.
func optionalType(ctx context.Context, expr hcl.Expression, attrName string) (*model.TypeName, error) {
	if !isExprDefined(ctx, expr, attrName) {
		return nil, nil
	}
	t, err := TypeFromExpr(ctx, expr)
	if err != nil {
		return nil, fmt.Errorf("in attribute '%s': %w", attrName, err)
	}
	return &t, nil
}

// isExprDefined checks if an HCL expression was actually present in the source
// file. An omitted optional attribute decodes to a placeholder expression with
// a zero-width range.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	if expr == nil {
		return false
	}
	r := expr.Range()
	defined := r.End.Byte > r.Start.Byte
	ctxlog.FromContext(ctx).Debug("Checking if HCL attribute was explicitly defined.",
		"attribute", attrName, "hcl_range", r.String(), "is_defined", defined)
	return defined
}
