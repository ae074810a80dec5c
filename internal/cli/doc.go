// Package cli turns the command line into an app.Config. It owns the flag
// set, the usage text and the exit codes: 2 for usage errors and 1 for a
// failed generation run.
package cli
