package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
)

// ErrNoAudioStream is returned when a file has no audio stream.
var ErrNoAudioStream = errors.New("no audio stream")

// Prober inspects audio files. WAV and MP3 are read natively; every other
// format (and any native read failure) goes through ffprobe.
type Prober struct {
	FFprobePath string // Default: "ffprobe".
}

// Inspect returns the primary audio stream properties of path.
func (p *Prober) Inspect(ctx context.Context, path string) (*Info, error) {
	var (
		info *Info
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		info, err = InspectWAV(path)
	case ".mp3":
		info, err = InspectMP3(path)
	default:
		err = errors.ErrUnsupported
	}
	if err == nil {
		return info, nil
	}
	return p.FFprobe(ctx, path)
}

// InspectWAV reads the RIFF/WAVE header of path.
func InspectWAV(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	d.ReadInfo()
	if err := d.Err(); err != nil {
		return nil, fmt.Errorf("read wav header %q: %w", path, err)
	}
	if d.SampleRate == 0 || d.NumChans == 0 {
		return nil, fmt.Errorf("read wav header %q: %w", path, ErrNoAudioStream)
	}

	info := &Info{
		Codec:      wavCodec(d.WavAudioFormat, int(d.BitDepth)),
		SampleRate: int(d.SampleRate),
		Channels:   int(d.NumChans),
		BitDepth:   int(d.BitDepth),
		Source:     SourceWAV,
	}
	if dur, err := d.Duration(); err == nil {
		info.Duration = dur
	}
	if fi, err := f.Stat(); err == nil {
		info.Size = fi.Size()
	}
	return info, nil
}

// wavCodec maps a WAVE format tag to the ffmpeg codec name.
func wavCodec(tag uint16, bitDepth int) string {
	switch tag {
	case 1, 0xFFFE:
		return fmt.Sprintf("pcm_s%dle", bitDepth)
	case 3:
		return fmt.Sprintf("pcm_f%dle", bitDepth)
	case 6:
		return "pcm_alaw"
	case 7:
		return "pcm_mulaw"
	}
	return fmt.Sprintf("wav_0x%04x", tag)
}

// InspectMP3 decodes the first MPEG audio frame of path. go-mp3 always
// outputs 16-bit stereo, so the source channel count is not reported.
func InspectMP3(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("decode mp3 %q: %w", path, err)
	}
	info := &Info{
		Codec:      "mp3",
		SampleRate: d.SampleRate(),
		Source:     SourceMP3,
	}
	// Length is in decoded bytes: 2 channels * 2 bytes per sample.
	if n := d.Length(); n > 0 && info.SampleRate > 0 {
		info.Duration = time.Duration(float64(n/4) / float64(info.SampleRate) * float64(time.Second))
	}
	if fi, err := f.Stat(); err == nil {
		info.Size = fi.Size()
	}
	return info, nil
}

// FFprobe runs a single ffprobe JSON call against path.
func (p *Prober) FFprobe(ctx context.Context, path string) (*Info, error) {
	bin := p.FFprobePath
	if bin == "" {
		bin = "ffprobe"
	}
	cmd := exec.CommandContext(ctx, bin,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format", "-show_streams",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe %q: %w", path, err)
	}
	return ParseJSON(out)
}

// ParseJSON converts raw ffprobe JSON output into an Info for the first
// audio stream. Exported for testing without a real ffprobe binary.
func ParseJSON(data []byte) (*Info, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse ffprobe JSON: %w", err)
	}
	for i := range raw.Streams {
		s := &raw.Streams[i]
		if s.CodecType != "audio" {
			continue
		}
		dur := parseFloat(s.Duration)
		if dur <= 0 {
			dur = parseFloat(raw.Format.Duration)
		}
		return &Info{
			Codec:      s.CodecName,
			SampleRate: parseInt(s.SampleRate),
			Channels:   s.Channels,
			BitDepth:   s.BitsPerSample,
			Duration:   time.Duration(dur * float64(time.Second)),
			Size:       parseInt64(raw.Format.Size),
			Source:     SourceFFprobe,
		}, nil
	}
	return nil, ErrNoAudioStream
}

// --- Numeric parsing helpers (ffprobe returns numbers as strings) ---

func parseInt64(s string) int64 {
	n, _ := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func parseInt(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}
