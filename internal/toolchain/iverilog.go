package toolchain

import (
	"github.com/cockroachdb/errors"

	"github.com/vk/fpgaflow/internal/catalog"
	"github.com/vk/fpgaflow/internal/config"
	"github.com/vk/fpgaflow/internal/project"
	"github.com/vk/fpgaflow/internal/resolver"
)

// GenerateSimulation emits the two-step simulation pipeline: iverilog
// compiles the design files plus one testbench into a simulation image, then
// vvp executes that image, producing a waveform trace named after the
// testbench.
func GenerateSimulation(cfg *config.ProjectConfiguration, targetID string, inputs []*project.InputFile, cat *catalog.Catalog) (*Plan, error) {
	g, err := newGeneration(cfg, targetID, inputs, cat, config.ToolIverilog)
	if err != nil {
		return nil, err
	}

	testbench, err := g.resolveTestbench()
	if err != nil {
		return nil, err
	}

	designs := g.effectiveList(config.ListInputFiles, g.designFiles(".v", ".sv"), resolver.Identity)

	imagePath := g.artifact(g.target.ID + ".vvp")
	wavePath := g.artifact(baseName(testbench) + ".vcd")

	compileArgs := append([]string{"-o", imagePath}, designs...)
	compileArgs = append(compileArgs, testbench)
	compileArgs = g.effectiveList(config.ListArguments, compileArgs, resolver.ShellWords)

	return &Plan{
		Tool:        config.ToolIverilog,
		Target:      g.target,
		Selection:   g.sel,
		InputFiles:  append(append([]string{}, designs...), testbench),
		OutputFiles: g.effectiveList(config.ListOutputFiles, []string{imagePath, wavePath}, resolver.Identity),
		Options:     g.opts,
		Steps: []Step{
			{Tool: "iverilog", Arguments: compileArgs},
			{Tool: "vvp", Arguments: []string{imagePath}},
		},
	}, nil
}

// resolveTestbench picks the simulation driver: the explicitly configured
// path when set, otherwise the first testbench-typed project file. The
// file-order tie-break when several exist is arbitrary but reproducible,
// since project file order is stable across load and save.
func (g *generation) resolveTestbench() (string, error) {
	if tb := g.opts.String(config.OptTestbench); tb != "" {
		return tb, nil
	}
	for _, f := range g.inputs {
		if f.Type == project.Testbench {
			return f.Path, nil
		}
	}
	return "", errors.Wrapf(ErrMissingTestbench,
		"target %q has no %q option and the project has no testbench-typed file", g.target.ID, config.OptTestbench)
}
