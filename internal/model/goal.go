// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines GoalDescription, the validated, immutable description of one
// generation target, and its three variants.
package model

import "fmt"

// GoalKind is the flavour of executable or bean behind a goal.
type GoalKind int

const (
	GoalConstructor GoalKind = iota
	GoalStaticMethod
	GoalInstanceMethod
	GoalBean
)

func (k GoalKind) String() string {
	switch k {
	case GoalConstructor:
		return "constructor"
	case GoalStaticMethod:
		return "static method"
	case GoalInstanceMethod:
		return "instance method"
	case GoalBean:
		return "bean"
	}
	return fmt.Sprintf("GoalKind(%d)", int(k))
}

// GoalDetails are the attributes every goal variant shares.
type GoalDetails struct {
	// Name is unique within the container after conflict resolution.
	Name string
	// GoalType is the type the goal produces.
	GoalType TypeName
	Kind     GoalKind
	// Owner declares the constructor or method. For instance methods it is
	// also the receiver type.
	Owner TypeName
	// MethodName is set for method goals.
	MethodName string
	Options    GoalOptions
}

// Details returns d. Embedding GoalDetails gives every variant this method.
func (d GoalDetails) Details() GoalDetails { return d }

// GoalDescription is one of *SimpleRegularGoal, *ProjectedRegularGoal or *BeanGoal.
type GoalDescription interface {
	Details() GoalDetails
	// ThrownTypes are the declared exception types of the goal itself.
	ThrownTypes() []TypeName
	isGoalDescription()
}

// SimpleRegularGoal is a constructor or method goal without to-builder support.
type SimpleRegularGoal struct {
	GoalDetails
	Parameters []RegularParameter
	Thrown     []TypeName
}

func (g *SimpleRegularGoal) ThrownTypes() []TypeName { return g.Thrown }
func (*SimpleRegularGoal) isGoalDescription()        {}

// ProjectedRegularGoal is a constructor or method goal whose every parameter
// has a resolved projection.
type ProjectedRegularGoal struct {
	GoalDetails
	Parameters []RegularParameter
	Thrown     []TypeName
}

func (g *ProjectedRegularGoal) ThrownTypes() []TypeName { return g.Thrown }
func (*ProjectedRegularGoal) isGoalDescription()        {}

// BeanGoal builds a bean through its setters and lone getters.
type BeanGoal struct {
	GoalDetails
	Parameters []BeanParameter
}

func (g *BeanGoal) ThrownTypes() []TypeName { return nil }
func (*BeanGoal) isGoalDescription()        {}

// NewProjectedRegularGoal checks that every parameter carries a projection.
func NewProjectedRegularGoal(details GoalDetails, params []RegularParameter, thrown []TypeName) (*ProjectedRegularGoal, error) {
	if err := checkParameterNames(regularNames(params)); err != nil {
		return nil, err
	}
	for _, p := range params {
		if p.Projection == nil {
			return nil, fmt.Errorf("goal %s: parameter %s has no projection", details.Name, p.Name)
		}
	}
	return &ProjectedRegularGoal{GoalDetails: details, Parameters: params, Thrown: thrown}, nil
}

// NewSimpleRegularGoal checks the parameter list of a regular goal.
func NewSimpleRegularGoal(details GoalDetails, params []RegularParameter, thrown []TypeName) (*SimpleRegularGoal, error) {
	if err := checkParameterNames(regularNames(params)); err != nil {
		return nil, err
	}
	return &SimpleRegularGoal{GoalDetails: details, Parameters: params, Thrown: thrown}, nil
}

// NewBeanGoal checks the parameter list of a bean goal.
func NewBeanGoal(details GoalDetails, params []BeanParameter) (*BeanGoal, error) {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.ParamName()
	}
	if err := checkParameterNames(names); err != nil {
		return nil, err
	}
	return &BeanGoal{GoalDetails: details, Parameters: params}, nil
}

func regularNames(params []RegularParameter) []string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return names
}

func checkParameterNames(names []string) error {
	if len(names) == 0 {
		return fmt.Errorf("goal has no parameters")
	}
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, dup := seen[n]; dup {
			return fmt.Errorf("duplicate parameter name %q", n)
		}
		seen[n] = struct{}{}
	}
	return nil
}

// Parameters returns the goal's parameters in declaration order as the
// common Parameter view.
func Parameters(goal GoalDescription) []Parameter {
	switch g := goal.(type) {
	case *SimpleRegularGoal:
		return regularView(g.Parameters)
	case *ProjectedRegularGoal:
		return regularView(g.Parameters)
	case *BeanGoal:
		out := make([]Parameter, len(g.Parameters))
		for i, p := range g.Parameters {
			out[i] = p
		}
		return out
	}
	panic(fmt.Sprintf("model: unknown goal description %T", goal))
}

func regularView(params []RegularParameter) []Parameter {
	out := make([]Parameter, len(params))
	for i, p := range params {
		out[i] = p
	}
	return out
}

// IsInstance reports whether the goal calls a method on a receiver.
func IsInstance(goal GoalDescription) bool {
	return goal.Details().Kind == GoalInstanceMethod
}
