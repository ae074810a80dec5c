// Package hcl provides the concrete HCL implementation of the config.Loader
// interface. It is responsible for all HCL file parsing, HCL-to-model
// translation and cty-to-Go data binding.
//
// Type expressions are plain HCL expressions: `string`, `list(int)`,
// `map(string, User)`, `Outer.Inner`, `qual("example.com/pkg", "Name")` and
// `generic(Box, string)`. ParseType reads the same notation from a string so
// other manifest formats can share it.
package hcl
