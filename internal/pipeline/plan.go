package pipeline

import (
	"context"
	"path/filepath"

	"github.com/backmassage/audioconvert/internal/config"
	"github.com/backmassage/audioconvert/internal/convert"
	"github.com/backmassage/audioconvert/internal/display"
	"github.com/backmassage/audioconvert/internal/logging"
	"github.com/backmassage/audioconvert/internal/probe"
)

// printPlan renders the dry-run table: one row per job with the probed
// source properties and the output it would produce. Probe failures leave
// the source columns empty; nothing is written.
func printPlan(ctx context.Context, cfg *config.Config, log *logging.Logger, jobs []convert.Job) {
	if len(jobs) == 0 {
		log.Success("[DRY] Nothing to convert")
		return
	}
	prober := &probe.Prober{FFprobePath: cfg.FFprobePath}

	rows := make([][]string, 0, len(jobs))
	for _, job := range jobs {
		row := []string{job.InputPath, "", "", "", filepath.Base(job.OutputPath)}
		if info, err := prober.Inspect(ctx, job.InputPath); err == nil {
			row[1] = info.Codec
			row[2] = sampleRate(info.SampleRate)
			row[3] = display.FormatDuration(info.Duration)
		} else {
			log.Debug(cfg.Verbose, "probe %s: %v", job.InputPath, err)
		}
		rows = append(rows, row)
	}

	log.Plain(display.RenderTable(
		[]string{"Input", "Codec", "Rate", "Length", "Output"},
		rows,
		[]display.Align{display.AlignLeft, display.AlignLeft, display.AlignRight, display.AlignRight, display.AlignLeft},
	) + "\n")
	log.Success("[DRY] Would convert %d file(s) to %s in %s", len(jobs), display.FormatLabel(cfg.OutputFormat), cfg.OutputDir)
}

func sampleRate(hz int) string {
	if hz <= 0 {
		return ""
	}
	return display.FormatHz(hz)
}
