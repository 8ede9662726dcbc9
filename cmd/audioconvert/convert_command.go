package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/backmassage/audioconvert/internal/check"
	"github.com/backmassage/audioconvert/internal/config"
	"github.com/backmassage/audioconvert/internal/lock"
	"github.com/backmassage/audioconvert/internal/logging"
	"github.com/backmassage/audioconvert/internal/pipeline"
)

func newConvertCommand(flags *config.Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <input_directory> <output_directory>",
		Short: "Convert input directory audio to output directory audio",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(cmd, flags)
			if err != nil {
				return err
			}
			defer log.Close()

			cfg.InputDir = config.NormalizeDirArg(args[0])
			cfg.OutputDir = config.NormalizeDirArg(args[1])
			return runConvert(cmd.Context(), cfg, log)
		},
	}
	flags.BindConvert(cmd.Flags())
	return cmd
}

// runConvert validates cfg, takes the output directory lock and runs the
// pipeline. Errors already logged are returned as errReported.
func runConvert(ctx context.Context, cfg *config.Config, log *logging.Logger) error {
	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		return errReported
	}
	if err := cfg.ValidatePaths(); err != nil {
		log.Error("%v", err)
		return errReported
	}

	if log.Verbose() {
		printBanner(log)
	}
	log.Debug(cfg.Verbose, "=== AudioConvert v%s (%s) ===", version, commit)
	if cfg.DryRun {
		log.Warn("DRY RUN: no files will be written")
	} else if err := check.CheckDeps(ctx, cfg); err != nil {
		log.Error("%v", err)
		return errReported
	}

	if err := pipeline.PrepareOutput(cfg, log); err != nil {
		log.Error("Cannot create output directory %s: %v", cfg.OutputDir, err)
		return errReported
	}

	runLock, err := lock.Acquire(cfg.OutputDir)
	if err != nil {
		log.Error("%v", err)
		return errReported
	}
	defer func() {
		if err := runLock.Release(); err != nil {
			log.Warn("%v", err)
		}
	}()

	// Cancel on SIGINT/SIGTERM: queued files are skipped and running
	// ffmpeg processes are killed, their partial outputs removed.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Received interrupt, stopping conversions")
			cancel()
		case <-ctx.Done():
		}
	}()

	stats, err := pipeline.Run(ctx, cfg, log)
	if err != nil {
		log.Error("%v", err)
		return errReported
	}
	if !stats.OK() {
		return errReported
	}
	return nil
}
