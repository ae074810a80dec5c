package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/stepbuilder/internal/app"
	"github.com/specialistvlad/stepbuilder/internal/manifest"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("stepbuilder", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
stepbuilder - generates type-safe step builders from declarative manifests.

Usage:
  stepbuilder [options] [MANIFEST_PATH...]

Arguments:
  MANIFEST_PATH
    A manifest file (.hcl, .toml, .yaml, .yml) or a directory searched
    recursively for manifests.

Options:
`)
		flagSet.PrintDefaults()
	}

	manifestFlag := flagSet.String("manifest", "", "Path to a manifest file or directory.")
	mFlag := flagSet.String("m", "", "Path to a manifest file or directory (shorthand).")
	outFlag := flagSet.String("out", ".", "Directory the generated files are written to.")
	packageFlag := flagSet.String("package", "", "Package of the generated files. Defaults to the manifests' package, then 'builders'.")
	formatFlag := flagSet.String("format", "auto", "Manifest format. Options: 'auto', 'hcl', 'toml', 'yaml'.")
	dryRunFlag := flagSet.Bool("dry-run", false, "Print the generated source instead of writing files.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	workersFlag := flagSet.Int("workers", 4, "Number of containers generated in parallel.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, usageError("%s", err.Error())
	}
	slog.Debug("Arguments parsed successfully.")

	var paths []string
	for _, p := range []string{*manifestFlag, *mFlag} {
		if p != "" {
			paths = append(paths, p)
		}
	}
	paths = append(paths, flagSet.Args()...)
	slog.Debug("Manifest paths determined.", "paths", paths)

	if len(paths) == 0 {
		slog.Debug("No manifest path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, usageError("invalid log-format: must be 'text' or 'json'")
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}

	format := strings.ToLower(*formatFlag)
	if _, ok := manifest.Formats[format]; !ok {
		return nil, false, usageError("invalid format: must be 'auto', 'hcl', 'toml' or 'yaml'")
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ManifestPaths: paths,
		OutDir:        *outFlag,
		Package:       *packageFlag,
		Format:        format,
		DryRun:        *dryRunFlag,
		LogFormat:     logFormat,
		LogLevel:      logLevel,
		WorkerCount:   *workersFlag,
	})
	if err != nil {
		return nil, false, usageError("%s", err.Error())
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
