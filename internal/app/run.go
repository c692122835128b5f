package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/vk/fpgaflow/internal/ctxlog"
	"github.com/vk/fpgaflow/internal/executor"
	"github.com/vk/fpgaflow/internal/project"
	"github.com/vk/fpgaflow/internal/toolchain"
)

// RunPipeline loads the project, generates the requested pipeline for the
// target, and prints it. With execute set it also runs every step in order
// and, on success, registers the produced outputs and saves the project.
func (a *App) RunPipeline(ctx context.Context, projectPath string, id toolchain.PipelineID, targetID string, execute bool) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	logger := ctxlog.FromContext(ctx)

	data, err := os.ReadFile(projectPath)
	if err != nil {
		return errors.Wrapf(err, "read project file %q", projectPath)
	}
	p, err := project.Load(data, a.codec)
	if err != nil {
		return err
	}
	logger.Debug("Project loaded.", "name", p.Name, "inputs", len(p.InputFiles), "targets", len(p.Configuration.Targets))

	plan, err := toolchain.Generate(id, p.Configuration, targetID, p.InputFiles, a.catalog)
	if err != nil {
		return err
	}
	a.printPlan(plan)

	if !execute {
		return nil
	}

	runner := executor.New(filepath.Dir(projectPath))
	if err := runner.Run(ctx, plan); err != nil {
		return err
	}
	logger.Info("Pipeline finished.", "tool", string(plan.Tool), "target", targetID)

	p.RegisterOutputs(targetID, plan.OutputFiles)
	saved, err := project.Save(p, a.codec)
	if err != nil {
		return err
	}
	if err := os.WriteFile(projectPath, saved, 0o644); err != nil {
		return errors.Wrapf(err, "write project file %q", projectPath)
	}
	return nil
}

// printPlan writes a human-readable pipeline listing.
func (a *App) printPlan(plan *toolchain.Plan) {
	sel := plan.Selection
	fmt.Fprintf(a.outW, "Pipeline %s for target %q (%s %s, %s, package %s):\n",
		plan.Tool, plan.Target.ID, sel.Vendor.ID, sel.Family.ID, sel.Device.ID, sel.Package.ID)
	for i, step := range plan.Steps {
		if len(step.Commands) > 0 {
			fmt.Fprintf(a.outW, "  %d. %s (script):\n", i+1, step.Tool)
			for _, cmd := range step.Commands {
				fmt.Fprintf(a.outW, "       %s\n", cmd)
			}
			continue
		}
		fmt.Fprintf(a.outW, "  %d. %s %s\n", i+1, step.Tool, strings.Join(step.Arguments, " "))
	}
	if len(plan.OutputFiles) > 0 {
		fmt.Fprintf(a.outW, "  outputs: %s\n", strings.Join(plan.OutputFiles, ", "))
	}
}
