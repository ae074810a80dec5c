// Package output defines GeneratorOutput, the structured result of generating
// one container. Method bodies are kept as a small statement and expression
// tree so that the emission backend decides the concrete syntax.
package output

import (
	"github.com/specialistvlad/stepbuilder/internal/model"
)

// GeneratorOutput is everything generated for one container.
type GeneratorOutput struct {
	// Container is the declared type the goals belong to.
	Container model.TypeName
	// Generated is the type holding the generated code.
	Generated model.TypeName
	Access    model.Access
	// Methods are the entry methods, in goal declaration order.
	Methods []BuilderMethod
	// Types are the nested types: contracts, implementations and updaters.
	Types []TypeDef
	// Fields belong to Generated. A static field is the shared cache.
	Fields []Field
}

// BuilderMethod is an entry method together with the goal it serves.
type BuilderMethod struct {
	GoalName string
	Method   Method
}

// TypeKind tells structs from interfaces.
type TypeKind int

const (
	KindStruct TypeKind = iota
	KindInterface
)

// TypeDef is a nested type skeleton.
type TypeDef struct {
	Name   model.TypeName
	Kind   TypeKind
	Access model.Access
	Fields []Field
	// Methods of an interface have no body.
	Methods []Method
	// Implements lists the interfaces a struct satisfies.
	Implements []model.TypeName
	Doc        string
}

// Field is a field of a generated type.
type Field struct {
	Name   string
	Type   model.TypeName
	Access model.Access
	Static bool
	// Init is applied whenever the owning type is constructed. May be nil.
	Init Expr
}

// Param is a method parameter.
type Param struct {
	Name string
	Type model.TypeName
}

// Method is a generated method. Static methods belong to the generated
// container rather than to an instance.
type Method struct {
	Name    string
	Access  model.Access
	Static  bool
	Params  []Param
	Returns model.TypeName
	// Thrown are the failures the method may raise on behalf of user code.
	Thrown []model.TypeName
	Body   []Stmt
	Doc    string
}

// Type looks a nested type up by name.
func (o *GeneratorOutput) Type(name model.TypeName) (*TypeDef, bool) {
	for i := range o.Types {
		if o.Types[i].Name.Equal(name) {
			return &o.Types[i], true
		}
	}
	return nil, false
}

// Method looks an entry method up by name.
func (o *GeneratorOutput) Method(name string) (*Method, bool) {
	for i := range o.Methods {
		if o.Methods[i].Method.Name == name {
			return &o.Methods[i].Method, true
		}
	}
	return nil, false
}

// StaticFields returns the fields that belong to the container itself rather
// than to its instances.
func (o *GeneratorOutput) StaticFields() []Field {
	var out []Field
	for _, f := range o.Fields {
		if f.Static {
			out = append(out, f)
		}
	}
	return out
}

// Method looks a method of t up by name.
func (t *TypeDef) Method(name string) (*Method, bool) {
	for i := range t.Methods {
		if t.Methods[i].Name == name {
			return &t.Methods[i], true
		}
	}
	return nil, false
}

// Field looks a field of t up by name.
func (t *TypeDef) Field(name string) (*Field, bool) {
	for i := range t.Fields {
		if t.Fields[i].Name == name {
			return &t.Fields[i], true
		}
	}
	return nil, false
}
