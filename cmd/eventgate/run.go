package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/eventgate/internal/app"
	"github.com/spf13/cobra"
)

// NewRunCmd creates the run subcommand.
func NewRunCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Match configured hotkeys against terminal key presses",
		Long: `Open the terminal, bind the configured hotkeys on the root element, load
plugin scripts and report every match. The configuration file is reloaded
when it changes. Press ctrl+q to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := app.New(app.Options{
				ConfigPath: configPath,
				LogOutput:  cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return application.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file path")
	return cmd
}
