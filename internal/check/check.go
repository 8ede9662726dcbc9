// Package check provides system diagnostics (the check subcommand) and
// pre-run dependency validation (CheckDeps) for ffmpeg, ffprobe and the
// encoders the chosen output format needs.
package check

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/backmassage/audioconvert/internal/config"
)

// Sentinel errors returned by CheckDeps when a required tool or encoder is missing.
var (
	ErrFFmpegNotFound  = errors.New("ffmpeg not found")
	ErrFFprobeNotFound = errors.New("ffprobe not found")
	ErrEncoderMissing  = errors.New("required encoder not available")
)

// Logger is the minimal logging interface needed by RunCheck.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// encoderCandidates lists, per output format, the ffmpeg encoders any one of
// which ffmpeg would pick as the format's default audio codec.
var encoderCandidates = map[config.Format][]string{
	config.FormatAIFF: {"pcm_s16be"},
	config.FormatFLAC: {"flac"},
	config.FormatM4A:  {"aac", "libfdk_aac"},
	config.FormatMP3:  {"libmp3lame", "libshine", "mp3_mf"},
	config.FormatMP4:  {"aac", "libfdk_aac"},
	config.FormatOGG:  {"libvorbis", "flac"},
	config.FormatWAV:  {"pcm_s16le"},
}

// RequiredEncoders returns the encoder candidates for format f with codec c.
// A selected codec replaces the format default.
func RequiredEncoders(f config.Format, c config.Codec) []string {
	if c != config.CodecNone {
		return []string{string(c)}
	}
	return encoderCandidates[f]
}

// RunCheck prints availability of ffmpeg, ffprobe and every encoder the
// supported output formats use. It is informational and returns an error
// only when ffmpeg itself is unusable.
func RunCheck(ctx context.Context, cfg *config.Config, log Logger) error {
	log.Info("=== System Check ===")

	version, err := toolVersion(ctx, cfg.FFmpegPath, "ffmpeg")
	if err != nil {
		log.Error("ffmpeg: %v", err)
		return fmt.Errorf("%w: %v", ErrFFmpegNotFound, err)
	}
	log.Success("ffmpeg: %s", version)

	if version, err := toolVersion(ctx, cfg.FFprobePath, "ffprobe"); err != nil {
		log.Warn("ffprobe: %v (verbose output details and dry-run probing disabled)", err)
	} else {
		log.Success("ffprobe: %s", version)
	}

	available, err := ListEncoders(ctx, cfg.FFmpegPath)
	if err != nil {
		log.Warn("Could not list encoders: %v", err)
		return nil
	}

	log.Info("Output formats:")
	for _, f := range config.Formats {
		if name, ok := firstAvailable(available, RequiredEncoders(f, config.CodecNone)); ok {
			log.Success("  %-5s %s", f.Name(), name)
		} else {
			log.Warn("  %-5s no encoder (%s)", f.Name(), strings.Join(encoderCandidates[f], ", "))
		}
	}
	log.Info("Codecs:")
	for _, c := range config.Codecs {
		if available[string(c)] {
			log.Success("  %s", c)
		} else {
			log.Warn("  %s not available", c)
		}
	}
	return nil
}

// CheckDeps is the pre-run validation: it verifies that ffmpeg is runnable
// and that an encoder for cfg's format and codec exists. ffprobe is only
// required in verbose mode, where converted outputs are probed.
func CheckDeps(ctx context.Context, cfg *config.Config) error {
	if _, err := exec.LookPath(binary(cfg.FFmpegPath, "ffmpeg")); err != nil {
		return fmt.Errorf("%w: %v", ErrFFmpegNotFound, err)
	}
	if cfg.Verbose {
		if _, err := exec.LookPath(binary(cfg.FFprobePath, "ffprobe")); err != nil {
			return fmt.Errorf("%w: %v", ErrFFprobeNotFound, err)
		}
	}

	available, err := ListEncoders(ctx, cfg.FFmpegPath)
	if err != nil {
		return err
	}
	need := RequiredEncoders(cfg.OutputFormat, cfg.Codec)
	if _, ok := firstAvailable(available, need); !ok {
		return fmt.Errorf("%w: %s output needs one of %s", ErrEncoderMissing, cfg.OutputFormat, strings.Join(need, ", "))
	}
	return nil
}

// ListEncoders runs `ffmpeg -encoders` and returns the set of audio encoder names.
func ListEncoders(ctx context.Context, ffmpegPath string) (map[string]bool, error) {
	out, err := exec.CommandContext(ctx, binary(ffmpegPath, "ffmpeg"), "-hide_banner", "-encoders").Output()
	if err != nil {
		return nil, fmt.Errorf("list encoders: %w", err)
	}
	return ParseEncoders(string(out)), nil
}

// ParseEncoders extracts audio encoder names from `ffmpeg -encoders` output.
// Encoder lines start with a six-character capability field whose first
// letter is the media type (A for audio).
func ParseEncoders(out string) map[string]bool {
	encoders := make(map[string]bool)
	inList := false
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		if !inList {
			inList = strings.HasPrefix(fields[0], "---")
			continue
		}
		if len(fields[0]) == 6 && fields[0][0] == 'A' {
			encoders[fields[1]] = true
		}
	}
	return encoders
}

func firstAvailable(available map[string]bool, names []string) (string, bool) {
	for _, n := range names {
		if available[n] {
			return n, true
		}
	}
	return "", false
}

// toolVersion returns the first line of `<bin> -version`.
func toolVersion(ctx context.Context, bin, fallback string) (string, error) {
	out, err := exec.CommandContext(ctx, binary(bin, fallback), "-version").Output()
	if err != nil {
		return "", err
	}
	first := strings.TrimSpace(string(out))
	if idx := strings.Index(first, "\n"); idx > 0 {
		first = first[:idx]
	}
	return first, nil
}

func binary(configured, fallback string) string {
	if configured != "" {
		return configured
	}
	return fallback
}

