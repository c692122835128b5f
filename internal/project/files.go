package project

// InputFileType classifies an input file, which decides the generator
// pipelines that select it.
type InputFileType string

const (
	// Design files feed synthesis and the design half of simulation.
	Design InputFileType = "design"
	// Testbench files are simulation drivers; exactly one is picked per run.
	Testbench InputFileType = "testbench"
)

// InputFile is a project source file. Path is the unique key.
type InputFile struct {
	Path string
	Type InputFileType
}

// OutputFile is an artifact registered after a generator's declared outputs
// were produced. TargetID is empty for outputs whose owning target was
// removed; Stale marks the artifact as needing regeneration.
type OutputFile struct {
	Path     string
	TargetID string
	Stale    bool
}
