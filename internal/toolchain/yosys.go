package toolchain

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/vk/fpgaflow/internal/catalog"
	"github.com/vk/fpgaflow/internal/config"
	"github.com/vk/fpgaflow/internal/project"
	"github.com/vk/fpgaflow/internal/resolver"
)

// HDL source extensions yosys can ingest.
var (
	vhdlExts    = []string{".vhd", ".vhdl"}
	verilogExts = []string{".v"}
	svExts      = []string{".sv"}
	hdlExts     = []string{".v", ".sv", ".vhd", ".vhdl"}
)

// ingestCommands builds the yosys script prologue that reads every source
// file. VHDL goes through the ghdl plugin and needs an explicit top-level
// module; (System)Verilog files each get their own read command. The closing
// hierarchy command pins the configured top module or lets yosys detect one.
func (g *generation) ingestCommands(files []string) ([]string, error) {
	var cmds []string

	vhdl := filterByExt(files, vhdlExts...)
	top := g.opts.String(config.OptTopLevelModule)
	if len(vhdl) > 0 {
		if top == "" {
			return nil, errors.Wrapf(ErrMissingTopLevelModule,
				"VHDL sources require the %q option on target %q", config.OptTopLevelModule, g.target.ID)
		}
		cmds = append(cmds,
			"plugin -i ghdl",
			fmt.Sprintf("ghdl --std=08 %s -e %s", strings.Join(vhdl, " "), top),
		)
	}
	for _, f := range filterByExt(files, verilogExts...) {
		cmds = append(cmds, "read_verilog "+f)
	}
	for _, f := range filterByExt(files, svExts...) {
		cmds = append(cmds, "read_verilog -sv "+f)
	}

	if top != "" {
		cmds = append(cmds, "hierarchy -top "+top)
	} else {
		cmds = append(cmds, "hierarchy -auto-top")
	}
	return cmds, nil
}

// GenerateRTL emits the single-step pipeline that elaborates the design and
// writes a statistics snapshot plus an RTL-level network JSON. The JSON is
// meant for visualization, not synthesis.
func GenerateRTL(cfg *config.ProjectConfiguration, targetID string, inputs []*project.InputFile, cat *catalog.Catalog) (*Plan, error) {
	g, err := newGeneration(cfg, targetID, inputs, cat, config.ToolYosys)
	if err != nil {
		return nil, err
	}

	files := g.effectiveList(config.ListInputFiles, g.designFiles(hdlExts...), resolver.Identity)
	ingest, err := g.ingestCommands(files)
	if err != nil {
		return nil, err
	}

	statsPath := g.artifact(g.target.ID + ".stats.json")
	rtlPath := g.artifact(g.target.ID + ".rtl.json")

	cmds := append(ingest,
		"proc",
		"opt",
		"memory -nomap",
		"wreduce -memx",
		"opt_clean",
		"tee -o "+statsPath+" stat -json",
		"write_json "+rtlPath,
	)
	cmds = g.effectiveList(config.ListCommands, cmds, resolver.Identity)

	return &Plan{
		Tool:        config.ToolYosys,
		Target:      g.target,
		Selection:   g.sel,
		InputFiles:  files,
		OutputFiles: g.effectiveList(config.ListOutputFiles, []string{statsPath, rtlPath}, resolver.Identity),
		Options:     g.opts,
		Steps:       []Step{{Tool: "yosys", Commands: cmds}},
	}, nil
}

// GenerateSynthesis emits the two-step synthesis pipeline. The prepare step
// elaborates the design into an intermediate JSON so it can be inspected or
// reused; the synth step reads that JSON back and runs the
// architecture-specific synthesis command, producing the netlist
// place-and-route consumes.
func GenerateSynthesis(cfg *config.ProjectConfiguration, targetID string, inputs []*project.InputFile, cat *catalog.Catalog) (*Plan, error) {
	g, err := newGeneration(cfg, targetID, inputs, cat, config.ToolYosys)
	if err != nil {
		return nil, err
	}

	files := g.effectiveList(config.ListInputFiles, g.designFiles(hdlExts...), resolver.Identity)
	ingest, err := g.ingestCommands(files)
	if err != nil {
		return nil, err
	}

	elabPath := g.elaboratedPath()
	netlistPath := g.netlistPath()

	prepare := append(ingest,
		"proc",
		"opt",
		"write_json "+elabPath,
	)

	synth := []string{"read_json " + elabPath}
	if arch := g.sel.Architecture(); arch == "generic" {
		// The generic pass has no JSON output flag, so the netlist is
		// written in a separate command.
		synth = append(synth, "synth", "write_json "+netlistPath)
	} else {
		synth = append(synth, fmt.Sprintf("synth_%s -json %s", arch, netlistPath))
	}
	synth = g.effectiveList(config.ListCommands, synth, resolver.Identity)

	return &Plan{
		Tool:        config.ToolYosys,
		Target:      g.target,
		Selection:   g.sel,
		InputFiles:  files,
		OutputFiles: g.effectiveList(config.ListOutputFiles, []string{elabPath, netlistPath}, resolver.Identity),
		Options:     g.opts,
		Steps: []Step{
			{Tool: "yosys", Commands: prepare},
			{Tool: "yosys", Commands: synth},
		},
	}, nil
}
