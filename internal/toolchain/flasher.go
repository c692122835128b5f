package toolchain

import (
	"github.com/cockroachdb/errors"

	"github.com/vk/fpgaflow/internal/catalog"
	"github.com/vk/fpgaflow/internal/config"
	"github.com/vk/fpgaflow/internal/project"
	"github.com/vk/fpgaflow/internal/resolver"
)

// GenerateFlash emits the two-step flashing pipeline: an architecture
// specific pack step that turns place-and-route output into a programmable
// image, then the common flashing-tool invocation over that image.
func GenerateFlash(cfg *config.ProjectConfiguration, targetID string, inputs []*project.InputFile, cat *catalog.Catalog) (*Plan, error) {
	g, err := newGeneration(cfg, targetID, inputs, cat, config.ToolFlasher)
	if err != nil {
		return nil, err
	}

	var pack Step
	var image, source string

	switch arch := g.sel.Architecture(); arch {
	case "ecp5":
		source = g.textcfgPath()
		image = g.artifact(g.target.ID + ".bit")
		pack = Step{Tool: "ecppack", Arguments: []string{source, image}}
	case "ice40":
		source = g.asciiPath()
		image = g.artifact(g.target.ID + ".bin")
		pack = Step{Tool: "icepack", Arguments: []string{source, image}}
	default:
		return nil, errors.Wrapf(ErrUnsupportedArchitecture, "no pack tool for %q", arch)
	}

	var flashArgs []string
	if board := g.opts.String(config.OptBoard); board != "" {
		flashArgs = append(flashArgs, "-b", board)
	}
	flashArgs = append(flashArgs, image)
	flashArgs = g.effectiveList(config.ListArguments, flashArgs, resolver.ShellWords)

	return &Plan{
		Tool:        config.ToolFlasher,
		Target:      g.target,
		Selection:   g.sel,
		InputFiles:  []string{source},
		OutputFiles: g.effectiveList(config.ListOutputFiles, []string{image}, resolver.Identity),
		Options:     g.opts,
		Steps: []Step{
			pack,
			{Tool: "openFPGALoader", Arguments: flashArgs},
		},
	}, nil
}
