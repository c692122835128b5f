// Package executor runs a generated pipeline against the real external
// tools. Execution is strictly sequential in generation order: later steps
// consume files produced by earlier ones, so the run aborts at the first
// failing step with no retry and no rollback of already-produced files.
package executor

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/vk/fpgaflow/internal/ctxlog"
	"github.com/vk/fpgaflow/internal/toolchain"
)

// Runner executes pipelines with os/exec, writing script-driven steps to
// temporary script files first. Tools run with the project root as their
// working directory, since generated paths are project-relative.
type Runner struct {
	dir string
}

// New creates a Runner rooted at the project directory.
func New(dir string) *Runner {
	return &Runner{dir: dir}
}

// Run executes every step of the plan in order. Before the first step it
// creates the directories the plan's declared outputs land in.
func (r *Runner) Run(ctx context.Context, plan *toolchain.Plan) error {
	logger := ctxlog.FromContext(ctx).With("tool", string(plan.Tool), "target", plan.Target.ID)

	for _, out := range plan.OutputFiles {
		if dir := filepath.Dir(out); dir != "." {
			if err := os.MkdirAll(filepath.Join(r.dir, dir), 0o755); err != nil {
				return errors.Wrapf(err, "create output directory %q", dir)
			}
		}
	}

	for i, step := range plan.Steps {
		stepLogger := logger.With("step", i+1, "steps", len(plan.Steps))
		if err := r.runStep(ctx, stepLogger, step); err != nil {
			return errors.Wrapf(err, "step %d/%d (%s)", i+1, len(plan.Steps), step.Tool)
		}
	}
	return nil
}

// runStep invokes one tool. Steps carrying a command script get the script
// written to a temporary file and passed via the tool's script flag.
func (r *Runner) runStep(ctx context.Context, logger *slog.Logger, step toolchain.Step) error {
	args := step.Arguments
	if len(step.Commands) > 0 {
		script, err := writeScript(step)
		if err != nil {
			return err
		}
		defer os.Remove(script)
		args = []string{"-s", script}
	}

	logger.Info("Running tool.", "command", step.Tool+" "+strings.Join(args, " "))
	cmd := exec.CommandContext(ctx, step.Tool, args...)
	cmd.Dir = r.dir
	out, err := cmd.CombinedOutput()
	if len(out) > 0 {
		logger.Debug("Tool output.", "output", string(out))
	}
	if err != nil {
		return errors.Wrapf(err, "%s failed: %s", step.Tool, strings.TrimSpace(string(out)))
	}
	return nil
}

// writeScript persists a step's command script to a temporary file, one
// command per line.
func writeScript(step toolchain.Step) (string, error) {
	f, err := os.CreateTemp("", "fpgaflow-"+step.Tool+"-*.ys")
	if err != nil {
		return "", errors.Wrap(err, "create script file")
	}
	defer f.Close()

	if _, err := f.WriteString(strings.Join(step.Commands, "\n") + "\n"); err != nil {
		os.Remove(f.Name())
		return "", errors.Wrap(err, "write script file")
	}
	return f.Name(), nil
}
