package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/dshills/eventgate/internal/input/key"
	"github.com/spf13/cobra"
)

// NewKeysCmd creates the keys subcommand.
func NewKeysCmd() *cobra.Command {
	var gecko bool

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "List the key tables in resolution order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, t := range key.Tables(gecko) {
				fmt.Fprintf(out, "%s:\n", t.Name)
				for _, name := range slices.Sorted(maps.Keys(t.Keys)) {
					fmt.Fprintf(out, "  %-18s %d\n", name, t.Keys[name])
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&gecko, "gecko", false, "include the Gecko keypad table")
	return cmd
}
