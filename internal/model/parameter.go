// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the parameter variants a goal can carry and the projection
// variants that describe how a built value's property is read back.
//
// Regular goals (constructors and methods) carry RegularParameter values. Bean
// goals carry BeanParameter values, which are either an AccessorPair or a
// LoneGetter. Both sets are closed: the unexported marker methods keep other
// packages from adding variants, so a type switch over them is exhaustive.
package model

// Parameter is the view of a parameter every stage after analysis needs.
type Parameter interface {
	ParamName() string
	// ParamType is the type a step method accepts. For a LoneGetter it is the
	// element type.
	ParamType() TypeName
	// NonNull reports whether a nil argument must be rejected.
	NonNull() bool
	// Position returns the explicit step position, if any.
	Position() (int, bool)
}

// At returns a pointer to an explicit step position.
func At(position int) *int {
	return &position
}

// ResolveNullPolicy applies the step-over-goal override and forces primitives
// to allow.
func ResolveNullPolicy(t TypeName, goal, step NullPolicy) NullPolicy {
	if t.Primitive {
		return NullAllow
	}
	if step != NullDefault {
		return step
	}
	if goal == NullReject {
		return NullReject
	}
	return NullAllow
}

// RegularParameter is a constructor or method parameter.
type RegularParameter struct {
	Name         string
	Type         TypeName
	NullPolicy   NullPolicy
	StepPosition *int
	// Projection is nil unless the goal supports to-builder.
	Projection ProjectionInfo
}

func (p RegularParameter) ParamName() string   { return p.Name }
func (p RegularParameter) ParamType() TypeName { return p.Type }
func (p RegularParameter) NonNull() bool       { return p.NullPolicy == NullReject && !p.Type.Primitive }
func (p RegularParameter) Position() (int, bool) {
	if p.StepPosition == nil {
		return 0, false
	}
	return *p.StepPosition, true
}

// BeanParameter is one settable property of a bean goal.
type BeanParameter interface {
	Parameter
	GetterName() string
	GetterThrown() []TypeName
	isBeanParameter()
}

// AccessorPair is a getter matched with a setter of the same type.
type AccessorPair struct {
	Name         string
	Type         TypeName
	Getter       string
	Setter       string
	NullPolicy   NullPolicy
	GetterThrows []TypeName
	SetterThrows []TypeName
	StepPosition *int
}

func (p AccessorPair) ParamName() string         { return p.Name }
func (p AccessorPair) ParamType() TypeName       { return p.Type }
func (p AccessorPair) NonNull() bool             { return p.NullPolicy == NullReject && !p.Type.Primitive }
func (p AccessorPair) GetterName() string        { return p.Getter }
func (p AccessorPair) GetterThrown() []TypeName  { return p.GetterThrows }
func (AccessorPair) isBeanParameter()            {}
func (p AccessorPair) Position() (int, bool) {
	if p.StepPosition == nil {
		return 0, false
	}
	return *p.StepPosition, true
}

// LoneGetter is a collection-typed getter without a setter. Values are
// accumulated into the live collection it returns.
type LoneGetter struct {
	Name string
	// Collection is the getter's declared return type.
	Collection TypeName
	// Element is the element type, AnyType for raw collections.
	Element      TypeName
	Getter       string
	NullPolicy   NullPolicy
	GetterThrows []TypeName
	StepPosition *int
}

func (p LoneGetter) ParamName() string        { return p.Name }
func (p LoneGetter) ParamType() TypeName      { return p.Element }
func (p LoneGetter) NonNull() bool            { return p.NullPolicy == NullReject }
func (p LoneGetter) GetterName() string       { return p.Getter }
func (p LoneGetter) GetterThrown() []TypeName { return p.GetterThrows }
func (LoneGetter) isBeanParameter()           {}
func (p LoneGetter) Position() (int, bool) {
	if p.StepPosition == nil {
		return 0, false
	}
	return *p.StepPosition, true
}

// ProjectionInfo describes how a property of a built value is read back.
type ProjectionInfo interface {
	Thrown() []TypeName
	isProjection()
}

// ProjectionMethod reads the value through a zero-argument method.
type ProjectionMethod struct {
	MethodName  string
	ThrownTypes []TypeName
}

func (p ProjectionMethod) Thrown() []TypeName { return p.ThrownTypes }
func (ProjectionMethod) isProjection()        {}

// FieldAccess reads the value from a field directly.
type FieldAccess struct {
	FieldName string
}

func (FieldAccess) Thrown() []TypeName { return nil }
func (FieldAccess) isProjection()      {}
