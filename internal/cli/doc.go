// Package cli defines the command-line surface: `init` to create a project
// file, plus one subcommand per tool pipeline that generates (and with
// --execute runs) the pipeline for a target. Process-level concerns like
// exit codes stay in cmd/cli.
package cli
