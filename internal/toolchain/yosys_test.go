package toolchain

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/fpgaflow/internal/catalog"
	"github.com/vk/fpgaflow/internal/config"
	"github.com/vk/fpgaflow/internal/project"
	"github.com/vk/fpgaflow/internal/testutil"
)

func TestSynthesisECP5(t *testing.T) {
	cfg := testutil.Config(testutil.ECP5Target("board"))
	inputs := testutil.Inputs("counter.v", project.Design)

	plan, err := GenerateSynthesis(cfg, "board", inputs, catalog.Default())
	require.NoError(t, err)

	assert.Equal(t, config.ToolYosys, plan.Tool)
	require.Len(t, plan.Steps, 2)

	prepare, synth := plan.Steps[0], plan.Steps[1]
	assert.Equal(t, "yosys", prepare.Tool)
	assert.Empty(t, prepare.Arguments, "yosys steps are script-driven")
	assert.Contains(t, prepare.Commands, "read_verilog counter.v")
	assert.Contains(t, prepare.Commands, "hierarchy -auto-top")
	assert.Equal(t, "write_json build/board/board.elab.json", prepare.Commands[len(prepare.Commands)-1])

	require.NotEmpty(t, synth.Commands)
	assert.Equal(t, "read_json build/board/board.elab.json", synth.Commands[0])
	last := synth.Commands[len(synth.Commands)-1]
	assert.Equal(t, "synth_ecp5 -json build/board/board.json", last,
		"synthesis ends in the architecture pass writing the designated netlist")

	assert.Equal(t, []string{"build/board/board.elab.json", "build/board/board.json"}, plan.OutputFiles)
}

func TestSynthesisGenericArchitecture(t *testing.T) {
	cfg := testutil.Config(testutil.Target("sim", "generic", "generic", "generic", "generic"))
	inputs := testutil.Inputs("counter.v", project.Design)

	plan, err := GenerateSynthesis(cfg, "sim", inputs, catalog.Default())
	require.NoError(t, err)

	synth := plan.Steps[1]
	assert.Contains(t, synth.Commands, "synth")
	assert.Contains(t, synth.Commands, "write_json build/sim/sim.json")
}

func TestSynthesisTopLevelModule(t *testing.T) {
	target := testutil.ECP5Target("board")
	target.Yosys = &config.ToolConfig{Options: config.Options{config.OptTopLevelModule: "blinky"}}
	cfg := testutil.Config(target)
	inputs := testutil.Inputs("blinky.v", project.Design)

	plan, err := GenerateSynthesis(cfg, "board", inputs, catalog.Default())
	require.NoError(t, err)
	assert.Contains(t, plan.Steps[0].Commands, "hierarchy -top blinky")
}

func TestSynthesisVHDLRequiresTopLevelModule(t *testing.T) {
	cfg := testutil.Config(testutil.ECP5Target("board"))
	inputs := testutil.Inputs("design.vhd", project.Design)

	_, err := GenerateSynthesis(cfg, "board", inputs, catalog.Default())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingTopLevelModule))
	assert.Contains(t, err.Error(), "board")
}

func TestSynthesisVHDLIngestion(t *testing.T) {
	target := testutil.ECP5Target("board")
	target.Yosys = &config.ToolConfig{Options: config.Options{config.OptTopLevelModule: "core"}}
	cfg := testutil.Config(target)
	inputs := testutil.Inputs("a.vhd", project.Design, "b.vhdl", project.Design, "glue.v", project.Design)

	plan, err := GenerateSynthesis(cfg, "board", inputs, catalog.Default())
	require.NoError(t, err)

	cmds := plan.Steps[0].Commands
	assert.Equal(t, "plugin -i ghdl", cmds[0])
	assert.Equal(t, "ghdl --std=08 a.vhd b.vhdl -e core", cmds[1])
	assert.Contains(t, cmds, "read_verilog glue.v")
}

func TestSynthesisIgnoresTestbenches(t *testing.T) {
	cfg := testutil.Config(testutil.ECP5Target("board"))
	inputs := testutil.Inputs("counter.v", project.Design, "counter_tb.v", project.Testbench)

	plan, err := GenerateSynthesis(cfg, "board", inputs, catalog.Default())
	require.NoError(t, err)
	assert.Equal(t, []string{"counter.v"}, plan.InputFiles)
	assert.NotContains(t, plan.Steps[0].Commands, "read_verilog counter_tb.v")
}

func TestRTLView(t *testing.T) {
	cfg := testutil.Config(testutil.ECP5Target("board"))
	inputs := testutil.Inputs("counter.v", project.Design, "alu.sv", project.Design)

	plan, err := GenerateRTL(cfg, "board", inputs, catalog.Default())
	require.NoError(t, err)

	require.Len(t, plan.Steps, 1)
	cmds := plan.Steps[0].Commands
	assert.Contains(t, cmds, "read_verilog counter.v")
	assert.Contains(t, cmds, "read_verilog -sv alu.sv")
	assert.Contains(t, cmds, "memory -nomap")
	assert.Contains(t, cmds, "tee -o build/board/board.stats.json stat -json")
	assert.Equal(t, "write_json build/board/board.rtl.json", cmds[len(cmds)-1])
	assert.Equal(t, []string{"build/board/board.stats.json", "build/board/board.rtl.json"}, plan.OutputFiles)
}

func TestCommandOverridesAppend(t *testing.T) {
	target := testutil.ECP5Target("board")
	target.Yosys = &config.ToolConfig{
		Commands: &config.ValueList{Values: []string{"stat"}},
	}
	cfg := testutil.Config(target)
	inputs := testutil.Inputs("counter.v", project.Design)

	plan, err := GenerateSynthesis(cfg, "board", inputs, catalog.Default())
	require.NoError(t, err)

	synth := plan.Steps[1].Commands
	assert.Equal(t, "stat", synth[len(synth)-1], "target overrides append after generated commands")
}

func TestGenerateUnknownTarget(t *testing.T) {
	cfg := testutil.Config(testutil.ECP5Target("board"))
	_, err := GenerateSynthesis(cfg, "nope", nil, catalog.Default())
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrUnknownTarget))
}

func TestGenerateInvalidDeviceTuple(t *testing.T) {
	cfg := testutil.Config(testutil.Target("bad", "lattice", "ecp5", "25k", "QN88P"))
	_, err := GenerateSynthesis(cfg, "bad", nil, catalog.Default())
	require.Error(t, err)
	assert.True(t, errors.Is(err, catalog.ErrNotFound))
}

func TestCustomOutputDir(t *testing.T) {
	target := testutil.ECP5Target("board")
	target.OutputDir = "out"
	cfg := testutil.Config(target)
	inputs := testutil.Inputs("counter.v", project.Design)

	plan, err := GenerateSynthesis(cfg, "board", inputs, catalog.Default())
	require.NoError(t, err)
	assert.Equal(t, []string{"out/board.elab.json", "out/board.json"}, plan.OutputFiles)
}
