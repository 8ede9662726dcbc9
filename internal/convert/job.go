package convert

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/backmassage/audioconvert/internal/config"
	"github.com/backmassage/audioconvert/internal/naming"
)

// ErrInvalidJob is wrapped by every [NewJob] validation error.
var ErrInvalidJob = errors.New("invalid job")

// Job bundles one file's conversion parameters. Jobs are values: built once
// by [NewJob], handed to a single worker, then discarded.
type Job struct {
	InputPath  string
	OutputDir  string
	OutputPath string
	Format     config.Format
	Codec      config.Codec
	Bitrate    string
	Verbose    bool
}

// NewJob builds a Job for input using cfg's format, codec, bitrate and
// verbosity. outputPath may be empty, in which case it is derived with
// [naming.GetOutputPath]; callers pass a collision-resolved path otherwise.
func NewJob(input, outputPath string, cfg *config.Config) (Job, error) {
	ext := filepath.Ext(input)
	if !config.IsAudioExt(ext) {
		return Job{}, fmt.Errorf("%w: %s has unsupported extension %q", ErrInvalidJob, input, ext)
	}
	if _, err := config.ParseFormat(string(cfg.OutputFormat)); err != nil {
		return Job{}, fmt.Errorf("%w: %v", ErrInvalidJob, err)
	}
	if !cfg.Codec.SupportsFormat(cfg.OutputFormat) {
		return Job{}, fmt.Errorf("%w: %w: %s in %s", ErrInvalidJob, config.ErrCodecUnsupported, cfg.Codec, cfg.OutputFormat)
	}
	if outputPath == "" {
		outputPath = naming.GetOutputPath(input, cfg.OutputDir, cfg.OutputFormat)
	}
	return Job{
		InputPath:  input,
		OutputDir:  cfg.OutputDir,
		OutputPath: outputPath,
		Format:     cfg.OutputFormat,
		Codec:      cfg.Codec,
		Bitrate:    cfg.Bitrate,
		Verbose:    cfg.Verbose,
	}, nil
}

// InputFormat returns the format implied by the input file's extension.
func (j Job) InputFormat() config.Format {
	f, _ := config.ParseFormat(filepath.Ext(j.InputPath))
	return f
}

// Name is the input base name.
func (j Job) Name() string { return filepath.Base(j.InputPath) }

// Stem is the input base name without its extension, used in log lines.
func (j Job) Stem() string {
	name := j.Name()
	if i := strings.LastIndex(name, "."); i > 0 {
		return name[:i]
	}
	return name
}
