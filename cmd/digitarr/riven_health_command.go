package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AquaHorizonGaming/digitarr/internal/logging"
	"github.com/AquaHorizonGaming/digitarr/internal/riven"
)

func newRivenHealthCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "riven-health",
		Short: "Probe the Riven backend health endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			client := riven.New(cfg.Riven.APIURL, cfg.Riven.APIKey, logging.NewNop())
			if !client.Enabled() {
				fmt.Fprintln(cmd.OutOrStdout(), "Riven sink not configured")
				return nil
			}
			if err := client.Health(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Riven is healthy")
			return nil
		},
	}
}
