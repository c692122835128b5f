package main

import (
	"fmt"
	"io"
	"os"

	"github.com/vk/fpgaflow/internal/cli"
)

func main() {
	// Any validation or lookup failure surfaces as a diagnostic plus a
	// non-zero exit code.
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing.
func run(outW, errW io.Writer, args []string) error {
	root := cli.New(outW, errW)
	root.SetOut(outW)
	root.SetErr(errW)
	root.SetArgs(args)
	return root.Execute()
}
