// Package registry provides the central "glue" for the module system.
//
// The Registry maps the feature names a goal can enable ("builder",
// "updater", "toBuilder") to the compiled generators that implement them.
// Each generator lives in its own module under modules/ and registers itself
// through the Module interface.
//
// Before a container is generated the registry is validated against it, so a
// goal can never request a feature no compiled generator provides.
package registry
