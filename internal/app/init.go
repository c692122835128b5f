package app

import (
	"context"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/vk/fpgaflow/internal/ctxlog"
	"github.com/vk/fpgaflow/internal/fsutil"
	"github.com/vk/fpgaflow/internal/project"
)

// InitProject creates a fresh project file at projectPath, seeding its input
// files with the HDL sources discovered next to it. Discovered paths are
// stored relative to the project root so the file stays portable.
func (a *App) InitProject(ctx context.Context, projectPath, name string) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	logger := ctxlog.FromContext(ctx)

	if _, err := os.Stat(projectPath); err == nil {
		return errors.Newf("project file %q already exists", projectPath)
	}

	root := filepath.Dir(projectPath)
	if name == "" {
		abs, err := filepath.Abs(root)
		if err != nil {
			return errors.Wrap(err, "resolve project directory")
		}
		name = filepath.Base(abs)
	}

	p := project.New(name)
	sources, err := fsutil.FindHDLSources(root)
	if err != nil {
		return errors.Wrap(err, "discover HDL sources")
	}
	p.Batch(func() {
		for _, src := range sources {
			rel, relErr := filepath.Rel(root, src.Path)
			if relErr != nil {
				rel = src.Path
			}
			typ := project.Design
			if src.Testbench {
				typ = project.Testbench
			}
			// Duplicate paths cannot happen on a fresh walk.
			_ = p.AddInputFile(rel, typ)
		}
	})
	logger.Info("Discovered HDL sources.", "count", len(sources))

	data, err := project.Save(p, a.codec)
	if err != nil {
		return err
	}
	if err := os.WriteFile(projectPath, data, 0o644); err != nil {
		return errors.Wrapf(err, "write project file %q", projectPath)
	}
	logger.Info("Project created.", "path", projectPath, "name", name)
	return nil
}
