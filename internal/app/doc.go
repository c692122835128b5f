// Package app wires the application together: logger, device catalog,
// project codec, and the per-command orchestration that loads a project,
// asks a generator for a pipeline, and either prints it or executes it.
package app
