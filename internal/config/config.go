// Package config holds runtime configuration: defaults, the optional TOML
// file, enum parsing and validation. CLI flags are bound directly onto a
// Config by cmd/audioconvert.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// ParseColorMode returns the ColorMode named by s.
func ParseColorMode(s string) (ColorMode, error) {
	switch ColorMode(strings.ToLower(strings.TrimSpace(s))) {
	case ColorAuto:
		return ColorAuto, nil
	case ColorAlways:
		return ColorAlways, nil
	case ColorNever:
		return ColorNever, nil
	}
	return "", fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", s)
}

// Validation errors returned by [Config.Validate] and [ValidatePaths].
var (
	ErrNeedPaths        = errors.New("need exactly input_directory and output_directory")
	ErrInvalidWorkers   = errors.New("workers must be a positive integer")
	ErrInputNotDir      = errors.New("input path is not a directory")
	ErrInputMissing     = errors.New("input directory does not exist")
	ErrOutputIsFile     = errors.New("output path exists and is a file")
	ErrCodecUnsupported = errors.New("codec not supported by output format")
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// optionally overlaid by [LoadFile], then mutated by flag parsing before
// being passed (by pointer) to packages that need it. Nothing writes to it
// after Validate succeeds.
type Config struct {
	// Paths (set from positional args).
	InputDir  string
	OutputDir string

	// Conversion.
	OutputFormat Format // Default: ".mp3".
	Codec        Codec  // Default: none (format's default encoder).
	Bitrate      string // Fixed: "192k".
	Workers      int    // Default: 5.

	// Behavior flags.
	FailFast bool // Stop dispatching after the first failed conversion.
	DryRun   bool

	// External tools.
	FFmpegPath  string // Default: "ffmpeg".
	FFprobePath string // Default: "ffprobe".

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
}

// DefaultConfig returns a Config with all defaults. Used as the base before
// the config file and CLI flags apply overrides.
func DefaultConfig() Config {
	return Config{
		OutputFormat: FormatMP3,
		Codec:        CodecNone,
		Bitrate:      "192k",
		Workers:      5,
		FFmpegPath:   "ffmpeg",
		FFprobePath:  "ffprobe",
		ColorMode:    ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path. A path made
// only of slashes collapses to the filesystem root "/".
func NormalizeDirArg(path string) string {
	trimmed := strings.TrimRight(path, "/")
	if trimmed == "" && path != "" {
		return "/"
	}
	return trimmed
}

// Validate checks enum fields, the worker count and the format/codec
// combination. It does not touch the filesystem; see [ValidatePaths].
func (c *Config) Validate() error {
	if !c.OutputFormat.valid() {
		return fmt.Errorf("invalid output format %q (use one of %s)", c.OutputFormat, formatList())
	}
	if _, err := ParseCodec(string(c.Codec)); err != nil {
		return err
	}
	if !c.Codec.SupportsFormat(c.OutputFormat) {
		return fmt.Errorf("%w: %s cannot be written to %s", ErrCodecUnsupported, c.Codec, c.OutputFormat)
	}
	if _, err := ParseColorMode(string(c.ColorMode)); err != nil {
		return err
	}
	if c.Workers <= 0 {
		return ErrInvalidWorkers
	}
	if strings.TrimSpace(c.Bitrate) == "" {
		return errors.New("bitrate must not be empty")
	}
	if c.InputDir == "" || c.OutputDir == "" {
		return ErrNeedPaths
	}
	return nil
}

// ValidatePaths checks the filesystem side of the paths: the input must be
// an existing directory, and the output, when it exists, must not be a
// file. It does not create anything.
func (c *Config) ValidatePaths() error {
	fi, err := os.Stat(c.InputDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrInputMissing, c.InputDir)
		}
		return fmt.Errorf("inspect input directory: %w", err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("%w: %s", ErrInputNotDir, c.InputDir)
	}

	fi, err = os.Stat(c.OutputDir)
	switch {
	case err == nil && !fi.IsDir():
		return fmt.Errorf("%w: %s", ErrOutputIsFile, c.OutputDir)
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("inspect output directory: %w", err)
	}
	return nil
}
