// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the small enumerations shared across the generator:
// access levels, null policies and instance lifecycles, together with the
// per-goal option set built from them.
package model

import "fmt"

// Access is the visibility of a declaration or of a generated method.
type Access int

const (
	AccessPublic Access = iota
	AccessPackage
	AccessPrivate
)

// ParseAccess parses "public", "package" or "private". An empty string is public.
func ParseAccess(s string) (Access, error) {
	switch s {
	case "", "public":
		return AccessPublic, nil
	case "package":
		return AccessPackage, nil
	case "private":
		return AccessPrivate, nil
	}
	return AccessPublic, fmt.Errorf("unknown access level %q", s)
}

func (a Access) String() string {
	switch a {
	case AccessPackage:
		return "package"
	case AccessPrivate:
		return "private"
	default:
		return "public"
	}
}

// NullPolicy controls whether a generated step guards against nil arguments.
type NullPolicy int

const (
	// NullDefault defers to the enclosing goal's policy.
	NullDefault NullPolicy = iota
	NullAllow
	NullReject
)

// ParseNullPolicy parses "default", "allow" or "reject". An empty string is default.
func ParseNullPolicy(s string) (NullPolicy, error) {
	switch s {
	case "", "default":
		return NullDefault, nil
	case "allow":
		return NullAllow, nil
	case "reject":
		return NullReject, nil
	}
	return NullDefault, fmt.Errorf("unknown null policy %q", s)
}

func (p NullPolicy) String() string {
	switch p {
	case NullAllow:
		return "allow"
	case NullReject:
		return "reject"
	default:
		return "default"
	}
}

// Lifecycle decides whether generated builder objects are allocated per call
// or drawn from a per-container cache.
type Lifecycle int

const (
	LifecycleNewInstance Lifecycle = iota
	LifecycleReuseInstances
)

// ParseLifecycle parses "new" or "reuse". An empty string is new.
func ParseLifecycle(s string) (Lifecycle, error) {
	switch s {
	case "", "new", "new_instance":
		return LifecycleNewInstance, nil
	case "reuse", "reuse_instances":
		return LifecycleReuseInstances, nil
	}
	return LifecycleNewInstance, fmt.Errorf("unknown lifecycle %q", s)
}

// Recycle reports whether instances come from the cache.
func (l Lifecycle) Recycle() bool {
	return l == LifecycleReuseInstances
}

func (l Lifecycle) String() string {
	if l.Recycle() {
		return "reuse"
	}
	return "new"
}

// GoalOptions are the recognized per-goal flags.
type GoalOptions struct {
	Builder         bool
	Updater         bool
	ToBuilder       bool
	BuilderAccess   Access
	UpdaterAccess   Access
	ToBuilderAccess Access
	Lifecycle       Lifecycle
}

// DefaultGoalOptions enables only the builder, with public access and fresh
// instances.
func DefaultGoalOptions() GoalOptions {
	return GoalOptions{Builder: true}
}
