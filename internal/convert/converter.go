// Package convert turns one [Job] into one ffmpeg invocation.
package convert

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/backmassage/audioconvert/internal/ffmpeg"
	"github.com/backmassage/audioconvert/internal/logging"
	"github.com/backmassage/audioconvert/internal/probe"
)

// Converter runs conversions. A single Converter is shared by all workers.
type Converter struct {
	FFmpegPath string
	Prober     *probe.Prober // Optional; used for verbose output details.
	Log        *logging.Logger
}

// Convert decodes job.InputPath using its extension as a format hint and
// writes job.OutputPath, overwriting any existing file. ffmpeg writes to a
// temporary file next to the output which is renamed into place only on
// success, so a failed job never touches an existing file and an output that
// is the input itself is re-encoded in place.
func (c *Converter) Convert(ctx context.Context, job Job) error {
	c.Log.Debug(job.Verbose, "Converting %s to %s", job.Stem(), job.Format.Name())

	if err := os.MkdirAll(job.OutputDir, 0o755); err != nil {
		return fmt.Errorf("convert %s: create output directory: %w", job.Name(), err)
	}
	tmp, err := createPartial(job)
	if err != nil {
		return fmt.Errorf("convert %s: %w", job.Name(), err)
	}

	err = ffmpeg.Execute(ctx, ffmpeg.Request{
		Binary:      c.FFmpegPath,
		InputPath:   job.InputPath,
		InputFormat: job.InputFormat(),
		OutputPath:  tmp,
		Format:      job.Format,
		Codec:       job.Codec,
		Bitrate:     job.Bitrate,
		Verbose:     job.Verbose,
	})
	if err == nil {
		if err = os.Rename(tmp, job.OutputPath); err != nil {
			err = fmt.Errorf("move output into place: %w", err)
		}
	}
	if err != nil {
		if rmErr := os.Remove(tmp); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			c.Log.Warn("Could not remove partial output %s: %v", tmp, rmErr)
		}
		return fmt.Errorf("convert %s: %w", job.Name(), err)
	}

	c.Log.Debug(job.Verbose, "%s converted", job.Stem())
	if job.Verbose && c.Prober != nil {
		if info, err := c.Prober.Inspect(ctx, job.OutputPath); err == nil {
			c.Log.Debug(true, "%s: %s", job.OutputPath, info)
		} else {
			c.Log.Debug(true, "probe %s: %v", job.OutputPath, err)
		}
	}
	return nil
}

// partialPattern names temporary outputs, e.g. ".song.123456.mp3.part". The
// .part suffix keeps a leftover out of discovery; ffmpeg is always given an
// explicit muxer so it does not need the real extension.
const partialPattern = ".%s.*%s.part"

// createPartial reserves a unique temporary file in the output directory.
func createPartial(job Job) (string, error) {
	f, err := os.CreateTemp(job.OutputDir, fmt.Sprintf(partialPattern, job.Stem(), string(job.Format)))
	if err != nil {
		return "", fmt.Errorf("create temporary output: %w", err)
	}
	name := f.Name()
	// CreateTemp uses 0600; outputs get the usual permissions.
	if err := f.Chmod(0o644); err != nil {
		f.Close()
		os.Remove(name)
		return "", fmt.Errorf("create temporary output: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(name)
		return "", fmt.Errorf("create temporary output: %w", err)
	}
	return name, nil
}
