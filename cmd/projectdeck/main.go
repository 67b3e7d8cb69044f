// Package main implements the projectdeck CLI: a client for the remote
// project generation service with a web console and a terminal live view.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// serverURL overrides remote.base_url when set.
	serverURL string
	// configPath overrides the default config file location.
	configPath string

	// Set via ldflags at build time.
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "projectdeck",
		Short: "Manage generated projects on a remote project service",
		Long: `projectdeck lists, creates, edits and deletes projects held by a remote
project generation service.

It can also serve a small web console (projectdeck serve) or run a live
terminal view (projectdeck watch).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVar(&serverURL, "server", "", "remote service base URL (overrides remote.base_url)")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/projectdeck/config.yaml)")

	root.AddCommand(
		newListCmd(),
		newCreateCmd(),
		newEditCmd(),
		newDeleteCmd(),
		newWatchCmd(),
		newServeCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "projectdeck by Fyrsmith Labs\n")
			fmt.Fprintf(out, "Version:    %s\n", version)
			fmt.Fprintf(out, "Commit:     %s\n", gitCommit)
			fmt.Fprintf(out, "Build Date: %s\n", buildDate)
		},
	}
}
