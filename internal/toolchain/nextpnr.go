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

// nexusPackageCodes translates catalog package ids into the code nextpnr's
// nexus device string expects. Packages outside this table cannot be placed.
var nexusPackageCodes = map[string]string{
	"QFN72":    "SG72",
	"WLCSP72":  "UWG72",
	"CABGA256": "BG256",
	"CABGA400": "BG400",
	"CSBGA121": "MG121",
	"CSBGA289": "MG289",
}

// gowinSpeedGrade is the fixed speed/grade suffix of a gowin device string.
const gowinSpeedGrade = "C6/I5"

// GeneratePlaceAndRoute emits the single-step nextpnr pipeline. The tool name
// and the leading arguments depend on the target architecture; the trailing
// arguments name the synthesized netlist and, when the corresponding option
// is enabled, the placed/routed visualization outputs.
func GeneratePlaceAndRoute(cfg *config.ProjectConfiguration, targetID string, inputs []*project.InputFile, cat *catalog.Catalog) (*Plan, error) {
	g, err := newGeneration(cfg, targetID, inputs, cat, config.ToolNextpnr)
	if err != nil {
		return nil, err
	}

	files := g.effectiveList(config.ListInputFiles, g.designFiles(".lpf", ".pcf"), resolver.Identity)

	arch := g.sel.Architecture()
	var args []string
	var outputs []string

	switch arch {
	case "ecp5":
		args = append(args, "--"+g.sel.Device.ID, "--package", strings.ToUpper(g.sel.Package.ID))
		if lpf := firstByExt(files, ".lpf"); lpf != "" {
			args = append(args, "--lpf", lpf)
		}
		args = append(args, "--textcfg", g.textcfgPath())
		outputs = append(outputs, g.textcfgPath())
	case "ice40":
		args = append(args, "--"+g.sel.Device.ID, "--package", g.sel.Package.ID)
		if pcf := firstByExt(files, ".pcf"); pcf != "" {
			args = append(args, "--pcf", pcf)
		}
		args = append(args, "--asc", g.asciiPath())
		outputs = append(outputs, g.asciiPath())
	case "gowin":
		args = append(args, "--device", gowinDeviceString(g.sel.Device.ID, g.sel.Package.ID))
	case "nexus":
		code, ok := nexusPackageCodes[g.sel.Package.ID]
		if !ok {
			return nil, errors.Wrapf(ErrUnsupportedPackage,
				"package %q of device %q has no nexus device string", g.sel.Package.ID, g.sel.Device.ID)
		}
		args = append(args, "--device", fmt.Sprintf("%s-9%sC", g.sel.Device.ID, code))
	case "generic":
		// No device arguments; the generic architecture places onto a
		// synthetic chip.
	default:
		return nil, errors.Wrapf(ErrUnsupportedArchitecture, "nextpnr has no rules for %q", arch)
	}

	args = append(args, "--json", g.netlistPath())

	if g.opts.Bool(config.OptPlacedSVG) {
		placed := g.artifact(g.target.ID + ".placed.svg")
		args = append(args, "--placed-svg", placed)
		outputs = append(outputs, placed)
	}
	if g.opts.Bool(config.OptRoutedSVG) {
		routed := g.artifact(g.target.ID + ".routed.svg")
		args = append(args, "--routed-svg", routed)
		outputs = append(outputs, routed)
	}
	if g.opts.Bool(config.OptRoutedJSON) {
		routedJSON := g.artifact(g.target.ID + ".pnr.json")
		args = append(args, "--write", routedJSON)
		outputs = append(outputs, routedJSON)
	}

	args = g.effectiveList(config.ListArguments, args, resolver.ShellWords)

	return &Plan{
		Tool:        config.ToolNextpnr,
		Target:      g.target,
		Selection:   g.sel,
		InputFiles:  append([]string{g.netlistPath()}, files...),
		OutputFiles: g.effectiveList(config.ListOutputFiles, outputs, resolver.Identity),
		Options:     g.opts,
		Steps:       []Step{{Tool: "nextpnr-" + arch, Arguments: args}},
	}, nil
}

// gowinDeviceString synthesizes the full nextpnr gowin device name: the
// catalog id gains the vendor's "LV" voltage infix after the hyphen, then the
// package and the fixed speed/grade suffix are appended.
// "GW1NR-9" + "QN88P" becomes "GW1NR-LV9QN88PC6/I5".
func gowinDeviceString(deviceID, packageID string) string {
	return strings.Replace(deviceID, "-", "-LV", 1) + packageID + gowinSpeedGrade
}
