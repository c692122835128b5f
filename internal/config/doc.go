// Package config defines the typed project configuration model: project-wide
// per-tool defaults plus an ordered list of build targets, each binding a
// device selection to per-tool overrides.
//
// Parse is the single point where malformed persisted configuration is
// rejected; every other package consumes an already validated, fully
// defaulted value. Step generators treat the model as read-only.
package config
