package app

import (
	"errors"
	"fmt"
)

// DefaultPackage is used when neither the flags nor the manifests name the
// package of the generated files.
const DefaultPackage = "builders"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ManifestPaths []string // manifest files or directories
	OutDir        string
	// Package overrides the package named by the manifests.
	Package string
	Format  string
	// DryRun renders to the output writer instead of files.
	DryRun bool

	LogFormat   string
	LogLevel    string
	WorkerCount int
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.ManifestPaths) == 0 {
		return nil, errors.New("at least one manifest path is required")
	}
	if cfg.WorkerCount < 1 {
		return nil, fmt.Errorf("workers must be at least 1, got %d", cfg.WorkerCount)
	}
	if cfg.OutDir == "" {
		cfg.OutDir = "."
	}
	if cfg.Format == "" {
		cfg.Format = "auto"
	}
	return &cfg, nil
}
