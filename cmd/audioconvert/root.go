package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/backmassage/audioconvert/internal/config"
	"github.com/backmassage/audioconvert/internal/display"
	"github.com/backmassage/audioconvert/internal/logging"
)

func newRootCommand() *cobra.Command {
	flags := config.NewFlags()

	rootCmd := &cobra.Command{
		Use:           "audioconvert",
		Short:         "Batch audio converter",
		Long:          "Recursively convert the audio files of a directory to a single format with ffmpeg.",
		Version:       version + " (" + commit + ")",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags.BindGlobal(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newConvertCommand(flags))
	rootCmd.AddCommand(newCheckCommand(flags))

	return rootCmd
}

// setup resolves the effective config for cmd and opens the logger on the
// command's writers.
func setup(cmd *cobra.Command, flags *config.Flags) (*config.Config, *logging.Logger, error) {
	cfg, err := flags.Resolve(cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	log, err := logging.New(logging.Options{
		Verbose: cfg.Verbose,
		Color:   cfg.ColorMode,
		LogFile: cfg.LogFile,
		Out:     cmd.OutOrStdout(),
		Err:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func printBanner(log *logging.Logger) {
	var b strings.Builder
	display.PrintBanner(&b)
	log.Plain(b.String())
}
