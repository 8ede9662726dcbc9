package ffmpeg

import (
	"github.com/backmassage/audioconvert/internal/config"
)

// Request describes one conversion in ffmpeg terms.
type Request struct {
	Binary      string // ffmpeg executable; "ffmpeg" when empty.
	InputPath   string
	InputFormat config.Format
	OutputPath  string
	Format      config.Format
	Codec       config.Codec
	Bitrate     string
	Verbose     bool
}

// demuxers maps an input extension to the ffmpeg demuxer used as a format
// hint. The mov demuxer answers to "mp4" for both .mp4 and .m4a.
var demuxers = map[config.Format]string{
	config.FormatAIFF: "aiff",
	config.FormatFLAC: "flac",
	config.FormatM4A:  "mp4",
	config.FormatMP3:  "mp3",
	config.FormatMP4:  "mp4",
	config.FormatOGG:  "ogg",
	config.FormatWAV:  "wav",
}

// muxers maps an output extension to the ffmpeg muxer. ffmpeg has no "m4a"
// muxer; "ipod" writes the same audio-only MPEG-4 file.
var muxers = map[config.Format]string{
	config.FormatAIFF: "aiff",
	config.FormatFLAC: "flac",
	config.FormatM4A:  "ipod",
	config.FormatMP3:  "mp3",
	config.FormatMP4:  "mp4",
	config.FormatOGG:  "ogg",
	config.FormatWAV:  "wav",
}

// Demuxer returns the ffmpeg input format name for f.
func Demuxer(f config.Format) string { return demuxers[f] }

// Muxer returns the ffmpeg output format name for f.
func Muxer(f config.Format) string { return muxers[f] }

// Build constructs the complete argument slice for req, binary first.
func Build(req Request) []string {
	bin := req.Binary
	if bin == "" {
		bin = "ffmpeg"
	}
	args := make([]string, 0, 32)

	// --- Preamble ---
	args = append(args, bin, "-hide_banner", "-nostdin", "-y")
	if req.Verbose {
		args = append(args, "-loglevel", "warning")
	} else {
		args = append(args, "-loglevel", "error")
	}

	// --- Input (extension as demuxer hint) ---
	if d := Demuxer(req.InputFormat); d != "" {
		args = append(args, "-f", d)
	}
	args = append(args, "-i", req.InputPath)

	// --- Streams: first audio stream, drop cover art and data ---
	args = append(args, "-map", "0:a:0", "-vn", "-sn", "-dn", "-map_metadata", "0")

	// --- Codec ---
	if req.Codec != config.CodecNone {
		args = append(args, "-c:a", string(req.Codec))
	}
	if req.Bitrate != "" {
		args = append(args, "-b:a", req.Bitrate)
	}
	args = append(args, req.Codec.ExtraParams()...)

	// --- Output ---
	if m := Muxer(req.Format); m != "" {
		args = append(args, "-f", m)
	}
	args = append(args, req.OutputPath)

	return args
}
