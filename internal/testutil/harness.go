// Package testutil provides shared fixtures for package tests: temporary
// project directories and pre-wired configuration values for the catalog's
// well-known devices.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/fpgaflow/internal/config"
	"github.com/vk/fpgaflow/internal/project"
)

// TempProjectDir creates a temporary directory and writes the given files
// into it. Keys are paths relative to the directory root.
func TempProjectDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

// Target builds a target for one of the catalog's devices.
func Target(id, vendor, family, device, pkg string) *config.Target {
	return &config.Target{ID: id, Name: id, Vendor: vendor, Family: family, Device: device, Package: pkg}
}

// ECP5Target is a ready-made LFE5U-25F target.
func ECP5Target(id string) *config.Target {
	return Target(id, "lattice", "ecp5", "25k", "CABGA381")
}

// ICE40Target is a ready-made iCE40UP5K target.
func ICE40Target(id string) *config.Target {
	return Target(id, "lattice", "ice40", "up5k", "sg48")
}

// Config wraps targets into a parsed-equivalent configuration.
func Config(targets ...*config.Target) *config.ProjectConfiguration {
	return &config.ProjectConfiguration{Targets: targets}
}

// Inputs builds a project input file list from path/type pairs.
func Inputs(pairs ...any) []*project.InputFile {
	if len(pairs)%2 != 0 {
		panic("testutil.Inputs: want path/type pairs")
	}
	var out []*project.InputFile
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, &project.InputFile{
			Path: pairs[i].(string),
			Type: pairs[i+1].(project.InputFileType),
		})
	}
	return out
}
