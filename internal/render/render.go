// Package render prints a GeneratorOutput as Go source using jennifer.
//
// Go has neither nested types nor static members, so the output is
// flattened: every nested type becomes a top-level declaration named after
// its enclosing chain (MessageBuilders.CreateBuilder.Kevin becomes
// MessageBuildersCreateBuilderKevin), entry methods become package-level
// functions prefixed with the generated type's name, and the shared cache
// becomes a package variable.
//
// Rendering conventions for user types:
//   - declared types are referenced by pointer;
//   - methods and fields of user types are exported;
//   - a constructor is the function New<Type> of the type's package, and a
//     static method is the package-level function of the same name;
//   - lone getters of lists and sets return a pointer to the collection;
//   - a user collection type offers Add(elem) and All() iter.Seq[elem].
package render

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/specialistvlad/stepbuilder/internal/model"
	"github.com/specialistvlad/stepbuilder/internal/output"
)

// Header is the comment that marks rendered files as generated.
const Header = "Code generated by stepbuilder. DO NOT EDIT."

// File renders out as a file of package pkg.
func File(out *output.GeneratorOutput, pkg string) (*jen.File, error) {
	r, err := newRenderer(out)
	if err != nil {
		return nil, err
	}

	f := jen.NewFile(pkg)
	f.HeaderComment(Header)
	r.container(f)
	for i, bm := range out.Methods {
		r.entry(f, r.entries[i], bm)
	}
	for i := range out.Types {
		def := &out.Types[i]
		if def.Kind == output.KindInterface {
			r.interfaceDef(f, def)
		} else {
			r.structDef(f, def)
		}
	}
	if r.err != nil {
		return nil, fmt.Errorf("render %s: %w", out.Generated, r.err)
	}
	return f, nil
}

// Write renders out and writes the formatted source to w.
func Write(w io.Writer, out *output.GeneratorOutput, pkg string) error {
	f, err := File(out, pkg)
	if err != nil {
		return err
	}
	if err := f.Render(w); err != nil {
		return fmt.Errorf("failed to format %s: %w", out.Generated, err)
	}
	return nil
}

type renderer struct {
	out   *output.GeneratorOutput
	defs  map[string]*output.TypeDef
	names map[string]string
	// entries are the function names of out.Methods, by index.
	entries []string
	// err is the first failure met while building expressions.
	err error
}

func newRenderer(out *output.GeneratorOutput) (*renderer, error) {
	r := &renderer{
		out:   out,
		defs:  make(map[string]*output.TypeDef, len(out.Types)),
		names: make(map[string]string, len(out.Types)+1),
	}
	owners := make(map[string]string, len(out.Types)+1)
	declare := func(t model.TypeName, access model.Access) error {
		name := identFor(strings.Join(t.Names, ""), access)
		if prev, ok := owners[name]; ok {
			return fmt.Errorf("render %s: %s and %s both flatten to %s", out.Generated, prev, t, name)
		}
		owners[name] = t.String()
		r.names[t.Raw()] = name
		return nil
	}

	if err := declare(out.Generated, out.Access); err != nil {
		return nil, err
	}
	for i := range out.Types {
		def := &out.Types[i]
		if err := declare(def.Name, def.Access); err != nil {
			return nil, err
		}
		r.defs[def.Name.Raw()] = def
	}

	// An entry whose name is taken by a type, such as the updater entry next
	// to the updater it returns, is named like a constructor instead.
	base := r.names[out.Generated.Raw()]
	for _, bm := range out.Methods {
		m := bm.Method
		name := identFor(base+model.Upcase(m.Name), m.Access)
		if _, taken := owners[name]; taken {
			name = identFor("New"+base+model.Upcase(m.Name), m.Access)
		}
		if prev, ok := owners[name]; ok {
			return nil, fmt.Errorf("render %s: entry %s and %s both flatten to %s", out.Generated, m.Name, prev, name)
		}
		owners[name] = m.Name
		r.entries = append(r.entries, name)
	}
	return r, nil
}

func (r *renderer) fail(format string, args ...any) {
	if r.err == nil {
		r.err = fmt.Errorf(format, args...)
	}
}

// container declares the generated type and its shared cache.
func (r *renderer) container(f *jen.File) {
	name := r.names[r.out.Generated.Raw()]
	var fields []jen.Code
	for _, fl := range r.out.Fields {
		if !fl.Static {
			fields = append(fields, jen.Id(fieldIdent(fl.Name, fl.Access)).Add(r.typ(fl.Type)))
		}
	}
	f.Commentf("%s holds the generated builders of %s.", name, strings.Join(r.out.Container.Names, "."))
	f.Type().Id(name).Struct(fields...)

	for _, fl := range r.out.StaticFields() {
		f.Commentf("%s keeps the reusable instances. It is not safe for concurrent use.", r.staticVar(fl.Name))
		f.Var().Id(r.staticVar(fl.Name)).Op("=").Add(r.expr(newScope("", nil), fl.Init))
	}
}

// staticVar names the package variable standing in for a static field.
func (r *renderer) staticVar(field string) string {
	return model.Downcase(r.names[r.out.Generated.Raw()]) + model.Upcase(strings.TrimLeft(field, "_"))
}

func (r *renderer) entry(f *jen.File, name string, bm output.BuilderMethod) {
	m := bm.Method
	sc := newScope("", m.Params)

	f.Commentf("%s is the %s entry of goal %s.", name, m.Name, bm.GoalName)
	thrownDoc(f, name, m.Thrown)
	f.Func().Id(name).Params(r.params(sc, m.Params)...).Add(r.result(m.Returns)).Block(r.body(sc, m.Body)...)
}

func (r *renderer) interfaceDef(f *jen.File, def *output.TypeDef) {
	name := r.names[def.Name.Raw()]
	var methods []jen.Code
	for _, m := range def.Methods {
		sc := newScope("", m.Params)
		if len(m.Thrown) > 0 {
			methods = append(methods, jen.Comment(thrownText(methodIdent(m), m.Thrown)))
		}
		methods = append(methods, jen.Id(methodIdent(m)).Params(r.params(sc, m.Params)...).Add(r.result(m.Returns)))
	}
	if def.Doc != "" {
		f.Comment(def.Doc)
	}
	f.Type().Id(name).Interface(methods...)
}

func (r *renderer) structDef(f *jen.File, def *output.TypeDef) {
	name := r.names[def.Name.Raw()]
	fields := make([]jen.Code, 0, len(def.Fields))
	for _, fl := range def.Fields {
		fields = append(fields, jen.Id(fieldIdent(fl.Name, fl.Access)).Add(r.typ(fl.Type)))
	}
	if def.Doc != "" {
		f.Comment(def.Doc)
	}
	f.Type().Id(name).Struct(fields...)
	for _, iface := range def.Implements {
		f.Var().Id("_").Add(r.typ(iface)).Op("=").Parens(jen.Op("*").Id(name)).Parens(jen.Nil())
	}

	recv := receiverName(def.Name)
	for _, m := range def.Methods {
		sc := newScope(recv, m.Params)
		thrownDoc(f, methodIdent(m), m.Thrown)
		f.Func().Params(jen.Id(recv).Op("*").Id(name)).Id(methodIdent(m)).
			Params(r.params(sc, m.Params)...).Add(r.result(m.Returns)).
			Block(r.body(sc, m.Body)...)
	}
}

func (r *renderer) params(sc *scope, params []output.Param) []jen.Code {
	out := make([]jen.Code, len(params))
	for i, p := range params {
		out[i] = jen.Id(sc.ident(p.Name)).Add(r.typ(p.Type))
	}
	return out
}

func (r *renderer) result(t model.TypeName) jen.Code {
	if t.IsZero() {
		return jen.Null()
	}
	return r.typ(t)
}

func (r *renderer) body(sc *scope, stmts []output.Stmt) []jen.Code {
	out := make([]jen.Code, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, r.stmt(sc, s))
	}
	return out
}

func thrownDoc(f *jen.File, name string, thrown []model.TypeName) {
	if len(thrown) > 0 {
		f.Comment(thrownText(name, thrown))
	}
}

func thrownText(name string, thrown []model.TypeName) string {
	names := make([]string, len(thrown))
	for i, t := range thrown {
		names[i] = strings.Join(t.Names, "")
		if t.Package != "" {
			names[i] = path.Base(t.Package) + "." + names[i]
		}
	}
	return fmt.Sprintf("%s passes on failures of user code: %s.", name, strings.Join(names, ", "))
}

func receiverName(t model.TypeName) string {
	return strings.ToLower(t.SimpleName()[:1])
}
