package main

import (
	"fmt"

	"github.com/dshills/eventgate/internal/input/key"
	"github.com/spf13/cobra"
)

// NewMatchCmd creates the match subcommand.
func NewMatchCmd() *cobra.Command {
	var (
		shift, ctrl, alt bool
		gecko, strict    bool
		code             int
	)

	cmd := &cobra.Command{
		Use:   "match DESCRIPTOR",
		Short: "Report whether a key press satisfies a hotkey descriptor",
		Example: `  eventgate match --ctrl --code 83 "ctrl+s"
  eventgate match --code 27 "esc|space"
  eventgate match --gecko --code 49 "1"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := key.NewMatcher(key.WithGeckoPad(gecko), key.WithStrictModifiers(strict))
			mods := key.Modifiers(shift, ctrl, alt)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, m.Match(mods, key.Code(code), args[0]))

			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				d := key.ParseDescriptor(args[0])
				fmt.Fprintf(out, "kind=%s modifiers=%q keys=%q valid=%t\n",
					d.Kind, d.Modifiers.String(), d.Keys, d.Valid(gecko))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&shift, "shift", false, "shift is held")
	cmd.Flags().BoolVar(&ctrl, "ctrl", false, "ctrl is held")
	cmd.Flags().BoolVar(&alt, "alt", false, "alt is held")
	cmd.Flags().BoolVar(&gecko, "gecko", false, "consult the Gecko keypad table")
	cmd.Flags().BoolVar(&strict, "strict", false, "reject modifiers the descriptor does not name")
	cmd.Flags().IntVar(&code, "code", 0, "key code reported by the key press")
	cmd.Flags().BoolP("verbose", "v", false, "print the parsed descriptor")
	_ = cmd.MarkFlagRequired("code")

	return cmd
}
