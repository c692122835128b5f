package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/vk/fpgaflow/internal/app"
	"github.com/vk/fpgaflow/internal/toolchain"
)

// pipelineHelp is the one-line description of each pipeline subcommand.
var pipelineHelp = map[toolchain.PipelineID]string{
	toolchain.PipelineRTL:      "Elaborate the design and emit an RTL network JSON for visualization",
	toolchain.PipelineYosys:    "Synthesize the design into a netlist for place-and-route",
	toolchain.PipelineNextpnr:  "Place and route the synthesized netlist",
	toolchain.PipelineIverilog: "Compile and run the simulation testbench",
	toolchain.PipelineFlash:    "Pack the bitstream and flash it to the board",
}

// New builds the root command. Pipeline listings go to outW, logs to errW.
func New(outW, errW io.Writer) *cobra.Command {
	var logLevel, logFormat string

	root := &cobra.Command{
		Use:           "fpgaflow",
		Short:         "Generate and run FPGA toolchain pipelines from a declarative project file",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Logging level: debug, info, warn, or error")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log output format: text or json")

	newApp := func() (*app.App, error) {
		cfg, err := app.NewConfig(app.Config{LogLevel: logLevel, LogFormat: logFormat})
		if err != nil {
			return nil, err
		}
		return app.NewApp(outW, errW, cfg), nil
	}

	var initName string
	initCmd := &cobra.Command{
		Use:   "init <project-file>",
		Short: "Create a project file and seed it with the HDL sources found next to it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			return a.InitProject(cmd.Context(), args[0], initName)
		},
	}
	initCmd.Flags().StringVar(&initName, "name", "", "Project name (defaults to the directory name)")
	root.AddCommand(initCmd)

	for _, id := range toolchain.PipelineIDs {
		id := id
		var execute bool
		cmd := &cobra.Command{
			Use:   string(id) + " <project-file> <target>",
			Short: pipelineHelp[id],
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newApp()
				if err != nil {
					return err
				}
				return a.RunPipeline(cmd.Context(), args[0], id, args[1], execute)
			},
		}
		cmd.Flags().BoolVarP(&execute, "execute", "x", false, "Run the generated steps instead of only printing them")
		root.AddCommand(cmd)
	}

	return root
}
