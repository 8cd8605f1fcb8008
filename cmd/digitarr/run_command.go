package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/AquaHorizonGaming/digitarr/internal/pipeline"
	"github.com/AquaHorizonGaming/digitarr/internal/runlock"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Check today's digital releases and dispatch requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger(cfg)
			if err != nil {
				return err
			}

			lock, err := runlock.Acquire(cfg.Paths.LockDir)
			if err != nil {
				if errors.Is(err, runlock.ErrBusy) {
					logger.Warn("skipping run, another instance holds the lock")
					return nil
				}
				return err
			}
			defer func() {
				if err := lock.Release(); err != nil {
					logger.Warn("release run lock", "error", err)
				}
			}()

			p, err := pipeline.New(cfg, logger)
			if err != nil {
				return err
			}

			summary := p.Run(cmd.Context())

			out := cmd.OutOrStdout()
			if shouldRenderTable(out) && len(summary.Releases) > 0 {
				fmt.Fprintln(out, renderSummaryTable(summary))
			}
			fmt.Fprintf(out, "Run %s: %d found, %d after filters, %d accepted, %d notified in %s\n",
				summary.RunID, summary.Found, summary.Filtered, summary.Accepted,
				summary.Notified, summary.Duration.Round(time.Millisecond))
			return nil
		},
	}
}

func shouldRenderTable(out any) bool {
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
