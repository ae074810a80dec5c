// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the declared shape of user types. Declarations come from
// manifests; the generator never inspects source code. The Universe indexes
// them for lookup during projection and bean discovery.
package model

import (
	"fmt"
	"strings"
)

// TypeDecl is the declared shape of one user type.
type TypeDecl struct {
	Name     TypeName
	Access   Access
	Abstract bool
	// DefaultConstructor is true when the type has a public no-argument
	// constructor.
	DefaultConstructor bool
	// Collection marks a type that accepts elements through add.
	Collection bool
	Methods    []MethodDecl
	Fields     []FieldDecl
}

// MethodDecl is one declared method.
type MethodDecl struct {
	Name   string
	Access Access
	Static bool
	Params []ParamDecl
	// Returns is nil for methods that return nothing.
	Returns *TypeName
	Thrown  []TypeName
	Ignore  bool
	Step    *StepAnnotation
}

// ParamDecl is one declared parameter of a method or constructor.
type ParamDecl struct {
	Name string
	Type TypeName
	Step *StepAnnotation
}

// StepAnnotation customizes a step: its explicit position and null policy.
type StepAnnotation struct {
	Position   *int
	NullPolicy NullPolicy
}

// FieldDecl is one declared field.
type FieldDecl struct {
	Name   string
	Type   TypeName
	Access Access
	Static bool
}

// IsGetterShaped reports whether m is a public, non-static, zero-argument,
// value-returning method named get* or is*, excluding getClass.
func (m MethodDecl) IsGetterShaped() bool {
	if m.Access != AccessPublic || m.Static || len(m.Params) != 0 || m.Returns == nil {
		return false
	}
	if m.Name == "getClass" {
		return false
	}
	return hasAccessorPrefix(m.Name, "get") || hasAccessorPrefix(m.Name, "is")
}

func hasAccessorPrefix(name, prefix string) bool {
	return len(name) > len(prefix) && strings.HasPrefix(name, prefix)
}

// TypeLookup resolves a type name to its declaration.
type TypeLookup interface {
	Lookup(t TypeName) (*TypeDecl, bool)
	IsCollection(t TypeName) bool
}

// Universe is the set of all declared types of one run.
type Universe struct {
	types map[string]*TypeDecl
}

// NewUniverse indexes decls. Declaring the same type twice is an error.
func NewUniverse(decls ...*TypeDecl) (*Universe, error) {
	u := &Universe{types: make(map[string]*TypeDecl, len(decls))}
	for _, d := range decls {
		key := d.Name.Raw()
		if _, exists := u.types[key]; exists {
			return nil, fmt.Errorf("type %s is declared more than once", key)
		}
		u.types[key] = d
	}
	return u, nil
}

// Lookup returns the declaration of t, ignoring generic arguments.
func (u *Universe) Lookup(t TypeName) (*TypeDecl, bool) {
	d, ok := u.types[t.Raw()]
	return d, ok
}

// IsCollection reports whether t accepts elements through add. list and set
// always do; declared types do when marked as collections.
func (u *Universe) IsCollection(t TypeName) bool {
	if t.IsBuiltin() {
		return t.Names[0] == ListName || t.Names[0] == SetName
	}
	d, ok := u.Lookup(t)
	return ok && d.Collection
}

// Len returns the number of declared types.
func (u *Universe) Len() int {
	return len(u.types)
}
