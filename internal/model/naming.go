// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package model

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Upcase returns s with its first rune in upper case.
func Upcase(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Downcase returns s with its first rune in lower case.
func Downcase(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// PropertyName strips a get or is prefix from an accessor name and downcases
// the rest: getFoo and isFoo both yield foo.
func PropertyName(accessor string) string {
	for _, prefix := range []string{"get", "is", "set"} {
		if len(accessor) > len(prefix) && strings.HasPrefix(accessor, prefix) {
			return Downcase(accessor[len(prefix):])
		}
	}
	return accessor
}

// SetterName returns the conventional setter for a property.
func SetterName(property string) string {
	return "set" + Upcase(property)
}

// EmptyMethodName names the zero-argument empty-collection variant of a step.
func EmptyMethodName(property string) string {
	return "empty" + Upcase(property)
}
