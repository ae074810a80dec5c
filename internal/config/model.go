package config

import (
	"fmt"

	"github.com/specialistvlad/stepbuilder/internal/model"
)

// Model is the unified, format-agnostic representation of all manifests of
// one run: the declared types and the containers to generate.
type Model struct {
	// Package is the Go package the generated files belong to.
	Package    string
	Types      []*Type
	Containers []*Container
}

// Origin points at the manifest location a declaration came from.
type Origin struct {
	File string
	Line int
}

func (o Origin) String() string {
	if o.File == "" {
		return ""
	}
	if o.Line == 0 {
		return o.File
	}
	return fmt.Sprintf("%s:%d", o.File, o.Line)
}

// Type is the format-agnostic representation of a `type` block.
type Type struct {
	Name   model.TypeName
	Access string
	// Abstract types cannot be constructed.
	Abstract bool
	// NoDefaultConstructor marks types without a public no-argument
	// constructor.
	NoDefaultConstructor bool
	// Collection marks types that accept elements through add.
	Collection bool
	Methods    []*Method
	Fields     []*Field
	Origin     Origin
}

// Method is one declared method of a type.
type Method struct {
	Name   string
	Access string
	Static bool
	Params []*Param
	// Returns is nil for methods that return nothing.
	Returns *model.TypeName
	Throws  []model.TypeName
	// Ignore excludes a bean getter from discovery.
	Ignore bool
	Step   *Step
}

// Param is one declared parameter.
type Param struct {
	Name string
	Type model.TypeName
	Step *Step
}

// Step customizes the position and null policy of a step.
type Step struct {
	Position   *int
	NullPolicy string
}

// Field is one declared field of a type.
type Field struct {
	Name   string
	Type   model.TypeName
	Access string
	Static bool
}

// Container is the format-agnostic representation of a `container` block:
// a declared type together with the goals generated for it.
type Container struct {
	Type
	// Lifecycle is the default lifecycle of the container's goals.
	Lifecycle string
	Goals     []*Goal
}

// Goal kinds.
const (
	GoalConstructor = "constructor"
	GoalMethod      = "method"
	GoalBean        = "bean"
)

// Goal is the format-agnostic representation of a `goal` block.
type Goal struct {
	Kind string
	// Name overrides the default goal name when not empty.
	Name string
	// Method names the goal method of a method goal.
	Method string
	Static bool
	Access string
	// Returns is the result of a method goal, nil when it returns nothing.
	Returns *model.TypeName
	// Bean is the bean type of a bean goal. The zero value means the
	// container itself.
	Bean    model.TypeName
	Params  []*Param
	Throws  []model.TypeName
	Options GoalOptions
	Origin  Origin
}

// GoalOptions are the options of a goal as written. Empty strings and nil
// flags mean the default.
type GoalOptions struct {
	Builder         *bool
	Updater         bool
	ToBuilder       bool
	BuilderAccess   string
	UpdaterAccess   string
	ToBuilderAccess string
	Lifecycle       string
	NullPolicy      string
}

// Merge appends the declarations of other to m. Both must agree on the
// package when both name one.
func (m *Model) Merge(other *Model) error {
	if other.Package != "" {
		if m.Package != "" && m.Package != other.Package {
			return fmt.Errorf("conflicting packages %q and %q", m.Package, other.Package)
		}
		m.Package = other.Package
	}
	m.Types = append(m.Types, other.Types...)
	m.Containers = append(m.Containers, other.Containers...)
	return nil
}
