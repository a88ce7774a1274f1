package main

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eventgate",
		Short: "Cross-environment event handling with hotkey matching",
		Long: `eventgate normalizes native events, custom event channels and hotkey
descriptors. The run command drives it from the terminal keyboard; match
and keys inspect the hotkey matcher.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewRunCmd())
	cmd.AddCommand(NewMatchCmd())
	cmd.AddCommand(NewKeysCmd())

	return cmd
}
