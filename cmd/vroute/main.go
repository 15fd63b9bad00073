package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vroute/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(execute(rootCmd(), os.Stderr))
}

// execute runs cmd and prints any error to stderr. It returns the process
// exit code.
func execute(cmd *cobra.Command, stderr io.Writer) int {
	if err := cmd.Execute(); err != nil {
		errors.Fprint(stderr, err)
		return 1
	}
	return 0
}

func rootCmd() *cobra.Command {
	var noColor bool

	root := &cobra.Command{
		Use:   "vroute",
		Short: "Isomorphic routing for server-rendered Go applications",
		Long: `vroute maps URLs to views, renders them on the server and keeps
the browser in sync through a live session.

  • Ordered route table with :param and [param] segments
  • SSR with signed hydration tokens
  • History-synchronized navigation over WebSocket`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor || os.Getenv("NO_COLOR") != "" {
				errors.DisableColors()
			}
		},
	}
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored error output")

	root.AddCommand(
		serveCmd(),
		matchCmd(),
		versionCmd(),
	)
	return root
}
