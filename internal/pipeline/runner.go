package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/backmassage/audioconvert/internal/config"
	"github.com/backmassage/audioconvert/internal/convert"
	"github.com/backmassage/audioconvert/internal/display"
	"github.com/backmassage/audioconvert/internal/ffmpeg"
	"github.com/backmassage/audioconvert/internal/logging"
	"github.com/backmassage/audioconvert/internal/naming"
	"github.com/backmassage/audioconvert/internal/pool"
	"github.com/backmassage/audioconvert/internal/probe"
)

// PrepareOutput creates cfg.OutputDir if it does not exist yet.
func PrepareOutput(cfg *config.Config, log *logging.Logger) error {
	if _, err := os.Stat(cfg.OutputDir); err == nil {
		return nil
	}
	log.Debug(cfg.Verbose, "Creating output directory %s", cfg.OutputDir)
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return nil
}

// Run is the top-level batch entry point. It discovers audio files under
// cfg.InputDir, builds one job per file, converts them on cfg.Workers
// goroutines, and returns aggregate stats. Per-file failures are collected;
// with cfg.FailFast the first failure cancels every job not yet started.
// A non-nil error means the batch could not start.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) (RunStats, error) {
	start := time.Now()
	stats := RunStats{RunID: uuid.NewString()}

	log.Info("Starting conversion of %s.", cfg.InputDir)
	logBatchHeader(cfg, log, &stats)

	files, err := Discover(cfg.InputDir, cfg.OutputDir)
	if err != nil {
		return stats, fmt.Errorf("discover %s: %w", cfg.InputDir, err)
	}
	stats.Total = len(files)
	log.Info("Found %d audio file(s)", stats.Total)

	jobs, renamed, err := buildJobs(cfg, log, files)
	if err != nil {
		return stats, err
	}
	stats.Renamed = renamed

	if cfg.DryRun {
		printPlan(ctx, cfg, log, jobs)
		stats.Elapsed = time.Since(start)
		return stats, nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	conv := &convert.Converter{
		FFmpegPath: cfg.FFmpegPath,
		Prober:     &probe.Prober{FFprobePath: cfg.FFprobePath},
		Log:        log,
	}
	// Sizes are taken up front because an in-place job replaces its source.
	inputSizes := sourceSizes(jobs)
	var done atomic.Int32
	results := pool.Run(runCtx, jobs, cfg.Workers, func(ctx context.Context, job convert.Job) error {
		t0 := time.Now()
		err := conv.Convert(ctx, job)
		n := done.Add(1)
		switch {
		case err == nil:
			log.Success("[%d/%d] %s -> %s (%s)", n, len(jobs), job.Name(),
				filepath.Base(job.OutputPath), display.FormatDuration(time.Since(t0)))
		case ctx.Err() != nil:
			log.Warn("[%d/%d] %s interrupted", n, len(jobs), job.Name())
		default:
			log.Error("[%d/%d] %v", n, len(jobs), err)
			logStderr(log, err, cfg.Verbose)
			if cfg.FailFast {
				log.Warn("Stopping after first failure (--fail-fast)")
				cancel()
			}
		}
		return err
	})

	for _, r := range results {
		stats.add(toResult(r, inputSizes))
	}
	stats.Elapsed = time.Since(start)

	logSummary(cfg, log, &stats)
	return stats, nil
}

// buildJobs turns discovered files into jobs, resolving output name
// collisions in discovery order. A source file that lives directly in the
// output directory keeps its own name: no other job may write over it, and
// when its output name is its own name it is re-encoded in place.
func buildJobs(cfg *config.Config, log *logging.Logger, files []string) ([]convert.Job, int, error) {
	resolver := naming.NewCollisionResolver()
	sources := reserveSources(cfg.OutputDir, files, resolver)

	jobs := make([]convert.Job, 0, len(files))
	for _, path := range files {
		requested := naming.GetOutputPath(path, cfg.OutputDir, cfg.OutputFormat)
		out := resolver.Resolve(path, requested)
		if out != requested {
			log.Warn("Output name collision: %s -> %s", path, filepath.Base(out))
		}
		if sources[path] && strings.EqualFold(filepath.Base(out), filepath.Base(path)) {
			log.Warn("%s is replaced by its re-encoded version", path)
		}
		job, err := convert.NewJob(path, out, cfg)
		if err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, job)
	}
	return jobs, resolver.Renamed(), nil
}

// reserveSources reserves the output-directory name of every file whose
// parent directory is the output directory, however either path is spelled.
// It returns the set of those files.
func reserveSources(outputDir string, files []string, resolver *naming.CollisionResolver) map[string]bool {
	outInfo, err := os.Stat(outputDir)
	if err != nil {
		// Not created yet, so it holds no sources.
		return nil
	}
	inOutput := make(map[string]bool) // parent dir -> is the output dir
	sources := make(map[string]bool)
	for _, path := range files {
		dir := filepath.Dir(path)
		same, seen := inOutput[dir]
		if !seen {
			if fi, err := os.Stat(dir); err == nil {
				same = os.SameFile(fi, outInfo)
			}
			inOutput[dir] = same
		}
		if !same {
			continue
		}
		resolver.Reserve(filepath.Join(outputDir, filepath.Base(path)), path)
		sources[path] = true
	}
	return sources
}

func toResult(r pool.Result[convert.Job], inputSizes map[string]int64) Result {
	res := Result{Job: r.Item, Err: r.Err, Skipped: r.Skipped, Elapsed: r.Elapsed}
	if errors.Is(r.Err, context.Canceled) {
		res.Skipped = true
	}
	if r.Err == nil {
		res.InputBytes = inputSizes[r.Item.InputPath]
		if fi, err := os.Stat(r.Item.OutputPath); err == nil {
			res.OutputBytes = fi.Size()
		}
	}
	return res
}

func sourceSizes(jobs []convert.Job) map[string]int64 {
	sizes := make(map[string]int64, len(jobs))
	for _, job := range jobs {
		if fi, err := os.Stat(job.InputPath); err == nil {
			sizes[job.InputPath] = fi.Size()
		}
	}
	return sizes
}

// --- Logging helpers ---

func logBatchHeader(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	log.Debug(cfg.Verbose, "Run ID: %s", stats.RunID)
	log.Debug(cfg.Verbose, "Input : %s", cfg.InputDir)
	log.Debug(cfg.Verbose, "Output: %s", cfg.OutputDir)
	log.Debug(cfg.Verbose, "Workers: %d", cfg.Workers)
	log.Debug(cfg.Verbose, "Format: %s, codec: %s, bitrate: %s",
		display.FormatLabel(cfg.OutputFormat), display.CodecLabel(cfg.Codec), cfg.Bitrate)
	if cfg.FailFast {
		log.Debug(cfg.Verbose, "Failure policy: stop after first failure")
	}
}

// logStderr prints the trailing ffmpeg stderr lines of a failed job.
func logStderr(log *logging.Logger, err error, verbose bool) {
	var execErr *ffmpeg.ExecError
	if !errors.As(err, &execErr) {
		return
	}
	n := 3
	if verbose {
		n = 20
	}
	for _, l := range execErr.Tail(n) {
		log.Error("  %s", l)
	}
}

func logSummary(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	log.Info("==============================")
	log.Info("Done: %d converted, %d failed, %d skipped in %s",
		stats.Converted, stats.Failed, stats.Skipped, display.FormatDuration(stats.Elapsed))
	if stats.Renamed > 0 {
		log.Info("  Renamed on collision: %d", stats.Renamed)
	}
	if stats.Converted > 0 {
		log.Info("  Input %s -> output %s (%s)",
			display.FormatBytes(stats.TotalInputBytes),
			display.FormatBytes(stats.TotalOutputBytes),
			display.FormatBytesWithSign(stats.SizeDelta()))
	}

	if !stats.OK() {
		log.Plain(failureTable(stats) + "\n")
		log.Warn("%d of %d file(s) not converted. See %s for converted audio.",
			stats.Failed+stats.Skipped, stats.Total, cfg.OutputDir)
		return
	}
	log.Success("See %s for converted audio.", cfg.OutputDir)
}

func failureTable(stats *RunStats) string {
	var rows [][]string
	for _, r := range stats.Results {
		switch {
		case r.Skipped:
			rows = append(rows, []string{r.Job.InputPath, "skipped", r.Err.Error()})
		case r.Err != nil:
			rows = append(rows, []string{r.Job.InputPath, "failed", r.Err.Error()})
		}
	}
	return display.RenderTable([]string{"File", "Status", "Error"}, rows, nil)
}
