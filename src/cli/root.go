package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"llm-switch/src/logging"
)

// NewRootCmd returns the root cobra command for the llm-switch CLI. Streams
// are injected so tests can script stdin and capture output.
func NewRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "llm-switch",
		Short:         "Discover local LLM model files and switch them between inference backends",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")
		logging.Setup(stderr, verbose)
	}

	addGlobalFlags(cmd)

	cmd.AddCommand(newVersionCmd(stdout))
	cmd.AddCommand(newListCmd(stdout, stderr))
	cmd.AddCommand(newSwitchCmd(stdin, stdout, stderr))

	return cmd
}

// Execute runs the CLI with the process stdio. User cancellations surface as
// nil errors from the commands, so only real failures reach the non-zero
// exit path.
func Execute() int {
	root := NewRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
