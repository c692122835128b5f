// Package toolchain turns a validated project configuration plus the current
// project input files into concrete, ordered tool pipelines. One generator
// exists per external tool; all of them are pure functions over their inputs
// and either emit a complete plan or fail without emitting anything.
package toolchain

import (
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/vk/fpgaflow/internal/catalog"
	"github.com/vk/fpgaflow/internal/config"
	"github.com/vk/fpgaflow/internal/project"
	"github.com/vk/fpgaflow/internal/resolver"
)

// Generation failure sentinels. Callers branch with errors.Is; the wrapped
// message names the offending id or option.
var (
	ErrUnsupportedArchitecture = errors.New("no generation rule for this architecture")
	ErrUnsupportedPackage      = errors.New("no generation rule for this package")
	ErrMissingTopLevelModule   = errors.New("top-level module not configured")
	ErrMissingTestbench        = errors.New("no testbench file available")
)

// Step is one external-tool invocation: either a CLI argument vector or an
// ordered command script, never both.
type Step struct {
	Tool      string
	Arguments []string
	Commands  []string
}

// Plan is a generated pipeline for one tool and target. Steps execute
// strictly in order; later steps consume files produced by earlier ones.
type Plan struct {
	Tool        config.ToolID
	Target      *config.Target
	Selection   *catalog.Selection
	InputFiles  []string
	OutputFiles []string
	Options     config.Options
	Steps       []Step
}

// PipelineID selects which pipeline to generate. It is also the CLI
// subcommand name.
type PipelineID string

const (
	PipelineRTL      PipelineID = "rtl"
	PipelineYosys    PipelineID = "yosys"
	PipelineNextpnr  PipelineID = "nextpnr"
	PipelineIverilog PipelineID = "iverilog"
	PipelineFlash    PipelineID = "flash"
)

// PipelineIDs lists every pipeline in execution order.
var PipelineIDs = []PipelineID{PipelineRTL, PipelineYosys, PipelineNextpnr, PipelineIverilog, PipelineFlash}

// Generate dispatches to the generator for the given pipeline.
func Generate(id PipelineID, cfg *config.ProjectConfiguration, targetID string, inputs []*project.InputFile, cat *catalog.Catalog) (*Plan, error) {
	switch id {
	case PipelineRTL:
		return GenerateRTL(cfg, targetID, inputs, cat)
	case PipelineYosys:
		return GenerateSynthesis(cfg, targetID, inputs, cat)
	case PipelineNextpnr:
		return GeneratePlaceAndRoute(cfg, targetID, inputs, cat)
	case PipelineIverilog:
		return GenerateSimulation(cfg, targetID, inputs, cat)
	case PipelineFlash:
		return GenerateFlash(cfg, targetID, inputs, cat)
	}
	return nil, errors.Newf("unknown pipeline %q", id)
}

// builtinOptions is the lowest option layer, per tool.
var builtinOptions = map[config.ToolID]config.Options{
	config.ToolYosys:    {},
	config.ToolNextpnr:  {config.OptPlacedSVG: false, config.OptRoutedSVG: false, config.OptRoutedJSON: false},
	config.ToolIverilog: {},
	config.ToolFlasher:  {},
}

// generation carries the resolved state every generator works from.
type generation struct {
	cfg    *config.ProjectConfiguration
	target *config.Target
	sel    *catalog.Selection
	inputs []*project.InputFile
	tool   config.ToolID
	opts   config.Options
}

// newGeneration validates the target reference and its device tuple and
// resolves the tool's effective options. Every generator starts here, so a
// bad reference aborts before any step is assembled.
func newGeneration(cfg *config.ProjectConfiguration, targetID string, inputs []*project.InputFile, cat *catalog.Catalog, tool config.ToolID) (*generation, error) {
	t := cfg.Target(targetID)
	if t == nil {
		return nil, errors.Wrapf(config.ErrUnknownTarget, "%q", targetID)
	}
	sel, err := cat.Resolve(t.Vendor, t.Family, t.Device, t.Package)
	if err != nil {
		return nil, err
	}
	return &generation{
		cfg:    cfg,
		target: t,
		sel:    sel,
		inputs: inputs,
		tool:   tool,
		opts:   resolver.EffectiveOptions(cfg, targetID, tool, builtinOptions[tool]),
	}, nil
}

// outDir is where this target's artifacts land.
func (g *generation) outDir() string {
	if g.target.OutputDir != "" {
		return g.target.OutputDir
	}
	return filepath.Join("build", g.target.ID)
}

// artifact builds an output path under the target's output directory.
func (g *generation) artifact(name string) string {
	return filepath.Join(g.outDir(), name)
}

// Artifact paths shared across pipelines. The synthesis netlist feeds
// place-and-route; the textcfg/ASCII bitstreams feed the flasher's pack step.
func (g *generation) netlistPath() string    { return g.artifact(g.target.ID + ".json") }
func (g *generation) elaboratedPath() string { return g.artifact(g.target.ID + ".elab.json") }
func (g *generation) textcfgPath() string    { return g.artifact(g.target.ID + ".config") }
func (g *generation) asciiPath() string      { return g.artifact(g.target.ID + ".asc") }

// designFiles returns the project's design-typed files matching any of the
// given extensions, in project order.
func (g *generation) designFiles(exts ...string) []string {
	return g.typedFiles(project.Design, exts...)
}

func (g *generation) typedFiles(typ project.InputFileType, exts ...string) []string {
	var out []string
	for _, f := range g.inputs {
		if f.Type != typ {
			continue
		}
		for _, ext := range exts {
			if strings.EqualFold(filepath.Ext(f.Path), ext) {
				out = append(out, f.Path)
				break
			}
		}
	}
	return out
}

// effectiveList runs one value list through the resolver with the
// generator-computed list as the generated layer.
func (g *generation) effectiveList(key config.ListKey, generated []string, parse resolver.ParseFunc) []string {
	return resolver.EffectiveValues(g.cfg, g.target.ID, g.tool, key, generated, parse)
}

// filterByExt keeps only the entries of files whose extension matches one of
// exts. Used after list resolution, so user-appended files classify the same
// way generated ones do.
func filterByExt(files []string, exts ...string) []string {
	var out []string
	for _, f := range files {
		for _, ext := range exts {
			if strings.EqualFold(filepath.Ext(f), ext) {
				out = append(out, f)
				break
			}
		}
	}
	return out
}

// firstByExt returns the first entry with a matching extension, or "".
func firstByExt(files []string, exts ...string) string {
	m := filterByExt(files, exts...)
	if len(m) == 0 {
		return ""
	}
	return m[0]
}

// baseName strips the directory and extension from a path.
func baseName(path string) string {
	b := filepath.Base(path)
	return strings.TrimSuffix(b, filepath.Ext(b))
}
