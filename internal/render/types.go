package render

import (
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/specialistvlad/stepbuilder/internal/model"
	"github.com/specialistvlad/stepbuilder/internal/output"
)

// typ renders a type reference. Generated interfaces are used as values,
// every other declared type through a pointer.
func (r *renderer) typ(t model.TypeName) *jen.Statement {
	switch {
	case t.IsZero():
		r.fail("missing type")
		return jen.Any()
	case t.Primitive:
		return jen.Id(t.SimpleName())
	case t.IsAny():
		return jen.Any()
	case t.IsBuiltin():
		return r.builtin(t)
	}
	if name, ok := r.names[t.Raw()]; ok {
		if def, ok := r.defs[t.Raw()]; ok && def.Kind == output.KindInterface {
			return jen.Id(name)
		}
		return jen.Op("*").Id(name)
	}
	return jen.Op("*").Add(r.userType(t))
}

func (r *renderer) builtin(t model.TypeName) *jen.Statement {
	want := 1
	if t.Names[0] == model.MapName {
		want = 2
	}
	if len(t.Args) != want {
		r.fail("%s needs %d type argument(s)", t, want)
		return jen.Any()
	}
	switch t.Names[0] {
	case model.ListName:
		return jen.Index().Add(r.typ(t.Args[0]))
	case model.SetName:
		return jen.Map(r.typ(t.Args[0])).Struct()
	default:
		return jen.Map(r.typ(t.Args[0])).Add(r.typ(t.Args[1]))
	}
}

// userType names a declared type without the pointer.
func (r *renderer) userType(t model.TypeName) *jen.Statement {
	s := r.userSymbol(t, strings.Join(t.Names, ""))
	if len(t.Args) > 0 {
		args := make([]jen.Code, len(t.Args))
		for i, a := range t.Args {
			args[i] = r.typ(a)
		}
		s = s.Types(args...)
	}
	return s
}

// userSymbol refers to name in the package of t.
func (r *renderer) userSymbol(t model.TypeName, name string) *jen.Statement {
	if t.Package == "" {
		return jen.Id(name)
	}
	return jen.Qual(t.Package, name)
}

func (r *renderer) generated(t model.TypeName) (string, bool) {
	name, ok := r.names[t.Raw()]
	return name, ok
}

// fieldsOf returns the fields of a generated struct.
func (r *renderer) fieldsOf(t model.TypeName) []output.Field {
	if t.Raw() == r.out.Generated.Raw() {
		return r.out.Fields
	}
	if def, ok := r.defs[t.Raw()]; ok {
		return def.Fields
	}
	return nil
}
