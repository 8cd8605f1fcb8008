package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AquaHorizonGaming/digitarr/internal/logging"
	"github.com/AquaHorizonGaming/digitarr/internal/notify"
)

func newTestNotifyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "test-notify",
		Short: "Send a test Discord notification",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			svc := notify.NewService(cfg.Discord.WebhookURL, logging.NewNop())
			if err := svc.Test(cmd.Context()); err != nil {
				if errors.Is(err, notify.ErrDisabled) {
					fmt.Fprintln(cmd.OutOrStdout(), "Discord webhook not configured")
					return nil
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Test notification sent")
			return nil
		},
	}
}
