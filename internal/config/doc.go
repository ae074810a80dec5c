// Package config defines the format-agnostic manifest model for the
// application, along with the Loader interface for reading manifests from
// various sources.
//
// The `config.Model` is the single source of truth for the `analyser`
// package. Concrete loaders, for HCL and for TOML and YAML, are provided in
// separate packages.
package config
