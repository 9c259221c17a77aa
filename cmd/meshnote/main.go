package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/meshnote/internal/logging"
	"github.com/philipparndt/meshnote/version"
)

type rootOptions struct {
	debug  bool
	logger logging.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "meshnote",
		Short: "Annotate and measure STL surfaces from the command line",
		Long: `meshnote picks points on STL models and measures polylines and polygons
drawn on their surface. Interactive sessions can be replayed from YAML scripts
and rendered to PNG.`,
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.logger = newLogger(cmd, opts.debug)
		},
	}
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(
		newInfoCmd(opts),
		newEdgesCmd(opts),
		newPickCmd(opts),
		newMeasureCmd(),
		newReplayCmd(opts),
		newVersionCmd(),
	)
	return rootCmd
}

// newLogger logs to stderr so reports on stdout stay clean
func newLogger(cmd *cobra.Command, debug bool) logging.Logger {
	return logging.NewLogger(cmd.ErrOrStderr(), cmd.ErrOrStderr(), "meshnote", debug)
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
