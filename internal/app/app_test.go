package app

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/fpgaflow/internal/config"
	"github.com/vk/fpgaflow/internal/project"
	"github.com/vk/fpgaflow/internal/testutil"
	"github.com/vk/fpgaflow/internal/toolchain"
)

func newTestApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	cfg, err := NewConfig(Config{})
	require.NoError(t, err)
	var out bytes.Buffer
	return NewApp(&out, io.Discard, cfg), &out
}

func TestNewConfig(t *testing.T) {
	cfg, err := NewConfig(Config{})
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)

	_, err = NewConfig(Config{LogFormat: "yaml"})
	require.Error(t, err)
	_, err = NewConfig(Config{LogLevel: "trace"})
	require.Error(t, err)
}

func TestInitProject(t *testing.T) {
	dir := testutil.TempProjectDir(t, map[string]string{
		"counter.v":    "module counter; endmodule",
		"counter_tb.v": "module counter_tb; endmodule",
	})
	a, _ := newTestApp(t)
	path := filepath.Join(dir, "project.json")

	require.NoError(t, a.InitProject(context.Background(), path, "blinky"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	p, err := project.Load(data, project.JSONCodec{})
	require.NoError(t, err)

	assert.Equal(t, "blinky", p.Name)
	require.Len(t, p.InputFiles, 2)
	assert.Equal(t, project.Design, p.InputFile("counter.v").Type, "paths are stored project-relative")
	assert.Equal(t, project.Testbench, p.InputFile("counter_tb.v").Type)
}

func TestInitProjectDefaultsNameToDirectory(t *testing.T) {
	dir := t.TempDir()
	a, _ := newTestApp(t)
	path := filepath.Join(dir, "project.json")

	require.NoError(t, a.InitProject(context.Background(), path, ""))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	p, err := project.Load(data, project.JSONCodec{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(dir), p.Name)
}

func TestInitProjectRefusesToOverwrite(t *testing.T) {
	dir := testutil.TempProjectDir(t, map[string]string{"project.json": "{}"})
	a, _ := newTestApp(t)

	err := a.InitProject(context.Background(), filepath.Join(dir, "project.json"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func writeProject(t *testing.T, dir string) string {
	t.Helper()
	p := project.New("demo")
	require.NoError(t, p.AddTarget(testutil.ECP5Target("board")))
	require.NoError(t, p.AddInputFile("counter.v", project.Design))
	data, err := project.Save(p, project.JSONCodec{})
	require.NoError(t, err)
	path := filepath.Join(dir, "project.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestRunPipelinePrintsPlan(t *testing.T) {
	dir := testutil.TempProjectDir(t, map[string]string{
		"counter.v": "module counter; endmodule",
	})
	path := writeProject(t, dir)
	a, out := newTestApp(t)

	err := a.RunPipeline(context.Background(), path, toolchain.PipelineYosys, "board", false)
	require.NoError(t, err)

	listing := out.String()
	assert.Contains(t, listing, `Pipeline yosys for target "board"`)
	assert.Contains(t, listing, "synth_ecp5 -json build/board/board.json")
	assert.Contains(t, listing, "outputs: build/board/board.elab.json, build/board/board.json")

	// Listing without executing leaves the project file untouched.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	p, err := project.Load(data, project.JSONCodec{})
	require.NoError(t, err)
	assert.Empty(t, p.OutputFiles)
}

func TestRunPipelineUnknownTarget(t *testing.T) {
	dir := t.TempDir()
	path := writeProject(t, dir)
	a, _ := newTestApp(t)

	err := a.RunPipeline(context.Background(), path, toolchain.PipelineYosys, "nope", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrUnknownTarget)
}

func TestRunPipelineMissingProjectFile(t *testing.T) {
	a, _ := newTestApp(t)
	err := a.RunPipeline(context.Background(), filepath.Join(t.TempDir(), "nope.json"), toolchain.PipelineYosys, "board", false)
	require.Error(t, err)
}
