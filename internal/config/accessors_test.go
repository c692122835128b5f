package config

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTargetConfig(t *testing.T) *ProjectConfiguration {
	t.Helper()
	cfg, err := Parse([]byte(`{"targets": [{"id": "t", "vendor": "v", "family": "f", "device": "d", "package": "p"}]}`))
	require.NoError(t, err)
	return cfg
}

func TestSettersAutoVivify(t *testing.T) {
	cfg := newTargetConfig(t)

	require.NoError(t, cfg.SetTopLevelModule("t", "blinky"))
	assert.Equal(t, "blinky", cfg.Target("t").Yosys.Options.String(OptTopLevelModule))

	require.NoError(t, cfg.SetTestbench("t", "tb/blinky_tb.v"))
	assert.Equal(t, "tb/blinky_tb.v", cfg.Target("t").Iverilog.Options.String(OptTestbench))

	require.NoError(t, cfg.SetToolOption("t", ToolNextpnr, OptRoutedSVG, true))
	assert.True(t, cfg.Target("t").Nextpnr.Options.Bool(OptRoutedSVG))

	cfg.SetDefaultToolOption(ToolFlasher, OptBoard, "ulx3s")
	assert.Equal(t, "ulx3s", cfg.Defaults.Flasher.Options.String(OptBoard))
}

func TestListSetters(t *testing.T) {
	cfg := newTargetConfig(t)

	require.NoError(t, cfg.SetListValues("t", ToolYosys, ListCommands, []string{"opt -full"}))
	l := cfg.Target("t").Yosys.List(ListCommands)
	require.NotNil(t, l)
	assert.Equal(t, []string{"opt -full"}, l.Values)
	require.NotNil(t, l.UseDefault)
	assert.True(t, *l.UseDefault)

	require.NoError(t, cfg.SetUseGenerated("t", ToolYosys, ListCommands, false))
	require.NotNil(t, l.UseGenerated)
	assert.False(t, *l.UseGenerated)

	require.NoError(t, cfg.SetUseDefault("t", ToolYosys, ListCommands, false))
	assert.False(t, *l.UseDefault)
}

func TestSettersRejectUnknownTarget(t *testing.T) {
	cfg := newTargetConfig(t)

	err := cfg.SetTopLevelModule("missing", "top")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownTarget))

	err = cfg.SetListValues("missing", ToolYosys, ListCommands, nil)
	assert.True(t, errors.Is(err, ErrUnknownTarget))
}
