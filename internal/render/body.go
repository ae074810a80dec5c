package render

import (
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/specialistvlad/stepbuilder/internal/lifecycle"
	"github.com/specialistvlad/stepbuilder/internal/model"
	"github.com/specialistvlad/stepbuilder/internal/output"
)

func (r *renderer) stmt(sc *scope, s output.Stmt) jen.Code {
	switch s := s.(type) {
	case output.Declare:
		return jen.Id(sc.ident(s.Name)).Op(":=").Add(r.expr(sc, s.Value))
	case output.Assign:
		return r.expr(sc, s.Target).Op("=").Add(r.expr(sc, s.Value))
	case output.NullCheck:
		return jen.If(r.expr(sc, s.Value).Op("==").Nil()).Block(
			jen.Panic(jen.Lit(s.Name + " must not be nil")),
		)
	case output.ForEachAdd:
		return r.forEachAdd(sc, s)
	case output.Return:
		if s.Value == nil {
			return jen.Return()
		}
		return jen.Return(r.expr(sc, s.Value))
	case output.ExprStmt:
		return r.expr(sc, s.X)
	}
	r.fail("unsupported statement %T", s)
	return jen.Null()
}

// forEachAdd copies every element of the source into the live target
// collection inside a block of its own:
//
//	{
//		dst := target
//		for _, elem := range source {
//			*dst = append(*dst, elem)
//		}
//	}
func (r *renderer) forEachAdd(sc *scope, s output.ForEachAdd) jen.Code {
	elem := sc.fresh(safe(s.Var))
	dst := sc.fresh("dst")
	src := r.expr(sc, s.Source)

	var head *jen.Statement
	switch {
	case isBuiltin(s.SourceType, model.ListName):
		if s.Live {
			src = jen.Op("*").Add(src)
		}
		head = jen.List(jen.Id("_"), jen.Id(elem)).Op(":=").Range().Add(src)
	case isBuiltin(s.SourceType, model.SetName):
		if s.Live {
			src = jen.Op("*").Add(src)
		}
		head = jen.Id(elem).Op(":=").Range().Add(src)
	case s.SourceType.IsBuiltin():
		r.fail("cannot iterate over %s", s.SourceType)
		return jen.Null()
	default:
		head = jen.Id(elem).Op(":=").Range().Add(src).Dot("All").Call()
	}

	stmts := []jen.Code{jen.Id(dst).Op(":=").Add(r.expr(sc, s.Target))}
	var add jen.Code
	switch {
	case isBuiltin(s.TargetType, model.ListName):
		add = jen.Op("*").Id(dst).Op("=").Append(jen.Op("*").Id(dst), jen.Id(elem))
	case isBuiltin(s.TargetType, model.SetName):
		stmts = append(stmts, jen.If(jen.Op("*").Id(dst).Op("==").Nil()).Block(
			jen.Op("*").Id(dst).Op("=").Add(r.builtin(s.TargetType)).Values(),
		))
		add = jen.Parens(jen.Op("*").Id(dst)).Index(jen.Id(elem)).Op("=").Struct().Values()
	case s.TargetType.IsBuiltin():
		r.fail("cannot add to %s", s.TargetType)
		return jen.Null()
	default:
		add = jen.Id(dst).Dot("Add").Call(jen.Id(elem))
	}
	stmts = append(stmts, jen.For(head).Block(add))
	return jen.Block(stmts...)
}

func isBuiltin(t model.TypeName, name string) bool {
	return t.IsBuiltin() && t.Names[0] == name
}

func (r *renderer) expr(sc *scope, e output.Expr) *jen.Statement {
	switch e := e.(type) {
	case output.This:
		if sc.recv == "" {
			r.fail("receiver used outside a method")
		}
		return jen.Id(sc.recv)
	case output.Ident:
		return jen.Id(sc.ident(e.Name))
	case output.Select:
		if e.User {
			return r.expr(sc, e.X).Dot(model.Upcase(e.Name))
		}
		return r.expr(sc, e.X).Dot(fieldIdent(e.Name, model.AccessPrivate))
	case output.Call:
		return r.expr(sc, e.X).Dot(model.Upcase(e.Method)).Call(r.args(sc, e.Args)...)
	case output.StaticCall:
		return r.userSymbol(e.Owner, model.Upcase(e.Method)).Call(r.args(sc, e.Args)...)
	case output.New:
		return r.construct(sc, e)
	case output.EmptyCollection:
		if !e.Type.IsBuiltin() {
			r.fail("no empty value for %s", e.Type)
			return jen.Nil()
		}
		return r.builtin(e.Type).Values()
	case output.CacheGet:
		return jen.Id(r.staticVar(lifecycle.CacheField)).Dot(fieldIdent(e.Field, model.AccessPrivate))
	}
	r.fail("unsupported expression %T", e)
	return jen.Nil()
}

func (r *renderer) args(sc *scope, args []output.Expr) []jen.Code {
	out := make([]jen.Code, len(args))
	for i, a := range args {
		out[i] = r.expr(sc, a)
	}
	return out
}

// construct renders a generated struct as a composite literal carrying the
// given field values and the declared initialisers, a user type with
// arguments through its New function, and any other user type with new.
func (r *renderer) construct(sc *scope, e output.New) *jen.Statement {
	if name, ok := r.generated(e.Type); ok {
		values := jen.Dict{}
		given := make(map[string]bool, len(e.Fields))
		for _, fv := range e.Fields {
			values[jen.Id(fieldIdent(fv.Name, model.AccessPrivate))] = r.expr(sc, fv.Value)
			given[fv.Name] = true
		}
		for _, f := range r.fieldsOf(e.Type) {
			if f.Static || f.Init == nil || given[f.Name] {
				continue
			}
			values[jen.Id(fieldIdent(f.Name, f.Access))] = r.expr(sc, f.Init)
		}
		return jen.Op("&").Id(name).Values(values)
	}
	if len(e.Args) == 0 {
		return jen.New(r.userType(e.Type))
	}
	fn := r.userSymbol(e.Type, "New"+strings.Join(e.Type.Names, ""))
	if len(e.Type.Args) > 0 {
		targs := make([]jen.Code, len(e.Type.Args))
		for i, a := range e.Type.Args {
			targs[i] = r.typ(a)
		}
		fn = fn.Types(targs...)
	}
	return fn.Call(r.args(sc, e.Args)...)
}
