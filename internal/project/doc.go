// Package project owns the mutable project model: the input files, the
// output files produced by past pipeline runs, and the validated
// configuration. Step generators read this model; they never mutate it.
//
// Mutators run on a single logical thread of control. Each mutator declares
// the change-event kinds it produces; Batch coalesces the events of a block
// of mutations into one notification flushed when the outermost batch ends.
// Any change to input files or configuration marks existing outputs stale.
package project
