// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the generation run that loads manifests,
// analyses every container and writes its builders, decoupled from any
// specific entrypoint like a CLI.
package app
