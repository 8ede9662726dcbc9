package main

import (
	"github.com/spf13/cobra"

	"github.com/backmassage/audioconvert/internal/check"
	"github.com/backmassage/audioconvert/internal/config"
)

func newCheckCommand(flags *config.Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Show ffmpeg, ffprobe and encoder availability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(cmd, flags)
			if err != nil {
				return err
			}
			defer log.Close()

			printBanner(log)
			if err := check.RunCheck(cmd.Context(), cfg, log); err != nil {
				return errReported
			}
			return nil
		},
	}
}
