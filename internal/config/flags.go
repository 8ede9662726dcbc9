package config

// This file binds command-line flags. Flags are grouped into global
// (persistent on the root command) and convert flags. Parsed values are
// held in a Flags struct and applied after Parse, and only for flags the
// user actually passed, so defaults and config file values hold otherwise.

import (
	"strings"

	"github.com/spf13/pflag"
)

// Flags captures parsed command-line values before they are merged into a
// Config by [Flags.Resolve].
type Flags struct {
	// Global.
	Verbose    bool
	ConfigPath string
	Color      ColorMode
	LogFile    string

	// convert.
	OutputFormat Format
	Codec        Codec
	Workers      int
	FailFast     bool
	DryRun       bool
}

// NewFlags returns Flags preset to DefaultConfig values so help output
// shows the real defaults.
func NewFlags() *Flags {
	d := DefaultConfig()
	return &Flags{
		Color:        d.ColorMode,
		OutputFormat: d.OutputFormat,
		Codec:        d.Codec,
		Workers:      d.Workers,
	}
}

// BindGlobal defines the flags shared by every subcommand.
func (f *Flags) BindGlobal(fs *pflag.FlagSet) {
	fs.BoolVarP(&f.Verbose, "verbose", "v", false, "Enable verbose logging")
	fs.StringVar(&f.ConfigPath, "config", "", "TOML configuration file")
	fs.Var(ColorValue{P: &f.Color}, "color", "Color output: auto, always or never")
	fs.StringVar(&f.LogFile, "log", "", "Append plain log lines to this file")
}

// BindConvert defines the convert subcommand flags.
func (f *Flags) BindConvert(fs *pflag.FlagSet) {
	fs.VarP(FormatValue{P: &f.OutputFormat}, "output-format", "o",
		"Target output format ("+formatList()+")")
	fs.VarP(CodecValue{P: &f.Codec}, "codec", "c", "Codec to convert to (pcm_mulaw)")
	fs.IntVarP(&f.Workers, "workers", "w", f.Workers, "Number of concurrent conversions")
	fs.BoolVar(&f.FailFast, "fail-fast", false, "Stop starting new conversions after the first failure")
	fs.BoolVar(&f.DryRun, "dry-run", false, "List planned conversions without writing anything")
}

// Resolve builds the effective Config: DefaultConfig, then the config file
// (when --config is given), then every flag set in fs that the user changed.
// fs must be the parsed flag set holding both global and command flags.
func (f *Flags) Resolve(fs *pflag.FlagSet) (*Config, error) {
	cfg := DefaultConfig()
	if path := strings.TrimSpace(f.ConfigPath); path != "" {
		if err := LoadFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	changed := func(name string) bool {
		fl := fs.Lookup(name)
		return fl != nil && fl.Changed
	}
	if changed("verbose") {
		cfg.Verbose = f.Verbose
	}
	if changed("color") {
		cfg.ColorMode = f.Color
	}
	if changed("log") {
		p, err := expandPath(f.LogFile)
		if err != nil {
			return nil, err
		}
		cfg.LogFile = p
	}
	if changed("output-format") {
		cfg.OutputFormat = f.OutputFormat
	}
	if changed("codec") {
		cfg.Codec = f.Codec
	}
	if changed("workers") {
		cfg.Workers = f.Workers
	}
	if changed("fail-fast") {
		cfg.FailFast = f.FailFast
	}
	if changed("dry-run") {
		cfg.DryRun = f.DryRun
	}
	return &cfg, nil
}
