package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// fileConfig mirrors the keys accepted in the TOML config file. Pointer
// fields distinguish "absent" from a zero value so only keys present in the
// file override defaults.
type fileConfig struct {
	Workers      *int    `toml:"workers"`
	OutputFormat *string `toml:"output_format"`
	Codec        *string `toml:"codec"`
	Color        *string `toml:"color"`
	LogFile      *string `toml:"log_file"`
	FFmpegPath   *string `toml:"ffmpeg_path"`
	FFprobePath  *string `toml:"ffprobe_path"`
	FailFast     *bool   `toml:"fail_fast"`
	Verbose      *bool   `toml:"verbose"`
}

// LoadFile overlays the TOML file at path onto cfg. A leading "~/" is
// expanded. A missing file is an error: the path was asked for explicitly.
func LoadFile(path string, cfg *Config) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}

	file, err := os.Open(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config file not found: %s", expanded)
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var fc fileConfig
	decoder := toml.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&fc); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return fc.apply(cfg)
}

func (fc *fileConfig) apply(cfg *Config) error {
	if fc.Workers != nil {
		cfg.Workers = *fc.Workers
	}
	if fc.OutputFormat != nil {
		f, err := ParseFormat(*fc.OutputFormat)
		if err != nil {
			return fmt.Errorf("config output_format: %w", err)
		}
		cfg.OutputFormat = f
	}
	if fc.Codec != nil {
		c, err := ParseCodec(*fc.Codec)
		if err != nil {
			return fmt.Errorf("config codec: %w", err)
		}
		cfg.Codec = c
	}
	if fc.Color != nil {
		m, err := ParseColorMode(*fc.Color)
		if err != nil {
			return fmt.Errorf("config color: %w", err)
		}
		cfg.ColorMode = m
	}
	if fc.LogFile != nil {
		p, err := expandPath(*fc.LogFile)
		if err != nil {
			return err
		}
		cfg.LogFile = p
	}
	if fc.FFmpegPath != nil && strings.TrimSpace(*fc.FFmpegPath) != "" {
		cfg.FFmpegPath = strings.TrimSpace(*fc.FFmpegPath)
	}
	if fc.FFprobePath != nil && strings.TrimSpace(*fc.FFprobePath) != "" {
		cfg.FFprobePath = strings.TrimSpace(*fc.FFprobePath)
	}
	if fc.FailFast != nil {
		cfg.FailFast = *fc.FailFast
	}
	if fc.Verbose != nil {
		cfg.Verbose = *fc.Verbose
	}
	return nil
}

func expandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}
