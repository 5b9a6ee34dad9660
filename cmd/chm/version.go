package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set at link time: -ldflags "-X main.version=v1.2.3".
var version = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the chm version",
		Args:  cobra.NoArgs,
		// Overrides the root hook: no config needed.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "chm %s\n", version)
		},
	}
}
