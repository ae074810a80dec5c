// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines TypeName, the identity of a type as seen by the generator.
// A TypeName is either a primitive value type, one of the built-in generic
// containers (list, set, map), or a declared type with an optional package and
// a chain of enclosing names.
package model

import "strings"

// Built-in generic container names.
const (
	ListName = "list"
	SetName  = "set"
	MapName  = "map"
)

// primitiveNames are Go value types. They can never hold a nil value, so the
// generator never guards them.
var primitiveNames = map[string]struct{}{
	"bool": {}, "string": {}, "byte": {}, "rune": {},
	"int": {}, "int8": {}, "int16": {}, "int32": {}, "int64": {},
	"uint": {}, "uint8": {}, "uint16": {}, "uint32": {}, "uint64": {}, "uintptr": {},
	"float32": {}, "float64": {}, "complex64": {}, "complex128": {},
}

// TypeName identifies a type. Names holds the enclosing chain, outermost first,
// so a nested type Outer.Inner has Names ["Outer", "Inner"].
type TypeName struct {
	Package   string
	Names     []string
	Args      []TypeName
	Primitive bool
}

// AnyType is the element type of a raw (untyped) collection.
var AnyType = TypeName{Names: []string{"any"}}

// IsPrimitiveName reports whether name denotes a primitive value type.
func IsPrimitiveName(name string) bool {
	_, ok := primitiveNames[name]
	return ok
}

// Primitive returns the primitive type with the given name.
func Primitive(name string) TypeName {
	return TypeName{Names: []string{name}, Primitive: true}
}

// Named returns a declared type. An empty pkg means the type lives in the
// package being generated.
func Named(pkg string, names ...string) TypeName {
	return TypeName{Package: pkg, Names: append([]string(nil), names...)}
}

// List returns list(elem).
func List(elem TypeName) TypeName {
	return TypeName{Names: []string{ListName}, Args: []TypeName{elem}}
}

// Set returns set(elem).
func Set(elem TypeName) TypeName {
	return TypeName{Names: []string{SetName}, Args: []TypeName{elem}}
}

// Map returns map(key, value).
func Map(key, value TypeName) TypeName {
	return TypeName{Names: []string{MapName}, Args: []TypeName{key, value}}
}

// Generic returns t parameterized with args.
func (t TypeName) Generic(args ...TypeName) TypeName {
	out := t.raw()
	out.Args = append([]TypeName(nil), args...)
	return out
}

// Nested derives the identity of a type named name declared inside t.
func (t TypeName) Nested(name string) TypeName {
	names := make([]string, 0, len(t.Names)+1)
	names = append(names, t.Names...)
	names = append(names, name)
	return TypeName{Package: t.Package, Names: names}
}

// Enclosing returns the type t is nested in, and false for top-level types.
func (t TypeName) Enclosing() (TypeName, bool) {
	if len(t.Names) < 2 {
		return TypeName{}, false
	}
	return TypeName{Package: t.Package, Names: append([]string(nil), t.Names[:len(t.Names)-1]...)}, true
}

// SimpleName returns the innermost name.
func (t TypeName) SimpleName() string {
	if len(t.Names) == 0 {
		return ""
	}
	return t.Names[len(t.Names)-1]
}

// IsZero reports whether t is the zero TypeName.
func (t TypeName) IsZero() bool {
	return t.Package == "" && len(t.Names) == 0 && len(t.Args) == 0 && !t.Primitive
}

// IsBuiltin reports whether t is one of list, set or map.
func (t TypeName) IsBuiltin() bool {
	if t.Package != "" || len(t.Names) != 1 {
		return false
	}
	switch t.Names[0] {
	case ListName, SetName, MapName:
		return true
	}
	return false
}

// IsAny reports whether t is the untyped element type.
func (t TypeName) IsAny() bool {
	return t.Equal(AnyType)
}

// Raw returns the key used to look a declaration up: t without generic args.
func (t TypeName) Raw() string {
	return t.raw().String()
}

func (t TypeName) raw() TypeName {
	return TypeName{Package: t.Package, Names: append([]string(nil), t.Names...), Primitive: t.Primitive}
}

// Equal reports whether t and o denote the same type, including arguments.
func (t TypeName) Equal(o TypeName) bool {
	if t.Package != o.Package || t.Primitive != o.Primitive ||
		len(t.Names) != len(o.Names) || len(t.Args) != len(o.Args) {
		return false
	}
	for i := range t.Names {
		if t.Names[i] != o.Names[i] {
			return false
		}
	}
	for i := range t.Args {
		if !t.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

// String renders t in manifest notation: list(string), map(string, int),
// qual("example.com/pkg", "Outer.Inner") or generic(Box, string).
func (t TypeName) String() string {
	var b strings.Builder
	t.write(&b)
	return b.String()
}

func (t TypeName) write(b *strings.Builder) {
	if t.IsBuiltin() {
		b.WriteString(t.Names[0])
		b.WriteByte('(')
		writeArgs(b, t.Args)
		b.WriteByte(')')
		return
	}
	if len(t.Args) > 0 {
		b.WriteString("generic(")
		t.raw().write(b)
		b.WriteString(", ")
		writeArgs(b, t.Args)
		b.WriteByte(')')
		return
	}
	dotted := strings.Join(t.Names, ".")
	if t.Package != "" {
		b.WriteString(`qual("`)
		b.WriteString(t.Package)
		b.WriteString(`", "`)
		b.WriteString(dotted)
		b.WriteString(`")`)
		return
	}
	b.WriteString(dotted)
}

func writeArgs(b *strings.Builder, args []TypeName) {
	for i, a := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		a.write(b)
	}
}

// ContainsType reports whether set holds a type equal to t.
func ContainsType(set []TypeName, t TypeName) bool {
	for _, s := range set {
		if s.Equal(t) {
			return true
		}
	}
	return false
}

// UnionTypes returns the types of all lists in first-seen order, without
// duplicates.
func UnionTypes(lists ...[]TypeName) []TypeName {
	var out []TypeName
	for _, l := range lists {
		for _, t := range l {
			if !ContainsType(out, t) {
				out = append(out, t)
			}
		}
	}
	return out
}
