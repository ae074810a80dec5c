// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Step, one link in a goal's fluent chain, and Container, the
// unit the generator processes: one enclosing type and all of its goals.
package model

// CollectionInfo describes the zero-argument empty-collection shortcut of a
// step whose type is a built-in collection.
type CollectionInfo struct {
	MethodName string
	// Type is the collection type whose empty value the shortcut assigns.
	Type TypeName
}

// Step is one link of the chain. Steps are created once per goal and not
// modified afterwards.
type Step struct {
	// ThisType is the step interface identity, nested in the goal's contract.
	ThisType TypeName
	// NextType is the following step's ThisType, or the goal type for the
	// last step.
	NextType           TypeName
	Parameter          Parameter
	DeclaredExceptions []TypeName
	// EmptyOption is set when the step offers an empty-collection shortcut.
	EmptyOption *CollectionInfo
}

// EmptyOptionFor returns the shortcut for a parameter of type t, if t is a
// built-in collection.
func EmptyOptionFor(name string, t TypeName) *CollectionInfo {
	if !t.IsBuiltin() {
		return nil
	}
	return &CollectionInfo{MethodName: EmptyMethodName(name), Type: t}
}

// Container is one enclosing type with its goals, in declaration order.
type Container struct {
	// Type is the declared type the goals belong to.
	Type TypeName
	// Generated is the type that holds the generated code.
	Generated TypeName
	Access    Access
	Lifecycle Lifecycle
	Goals     []GoalDescription
}

// GeneratedTypeFor names the generated type of a container: FooBuilders for Foo.
func GeneratedTypeFor(t TypeName) TypeName {
	return TypeName{Package: t.Package, Names: []string{t.SimpleName() + "Builders"}}
}

// Recycles reports whether any goal of the container reuses instances.
func (c *Container) Recycles() bool {
	for _, g := range c.Goals {
		if g.Details().Options.Lifecycle.Recycle() {
			return true
		}
	}
	return false
}
