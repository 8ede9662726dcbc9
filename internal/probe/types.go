package probe

import (
	"fmt"
	"time"
)

// Source identifies which reader produced an [Info].
type Source string

const (
	SourceWAV     Source = "wav"     // Native RIFF header read (go-audio/wav).
	SourceMP3     Source = "mp3"     // Native frame decode (go-mp3).
	SourceFFprobe Source = "ffprobe" // ffprobe JSON.
)

// Info holds the properties of a file's primary audio stream. Zero values
// mean "unknown".
type Info struct {
	Codec      string
	SampleRate int
	Channels   int
	BitDepth   int
	Duration   time.Duration
	Size       int64
	Source     Source
}

// String renders a short one-line description, e.g. "pcm_mulaw 8000 Hz 1 ch 2.0s".
func (i *Info) String() string {
	s := i.Codec
	if s == "" {
		s = "audio"
	}
	if i.SampleRate > 0 {
		s += fmt.Sprintf(" %d Hz", i.SampleRate)
	}
	if i.Channels > 0 {
		s += fmt.Sprintf(" %d ch", i.Channels)
	}
	if i.Duration > 0 {
		s += fmt.Sprintf(" %.1fs", i.Duration.Seconds())
	}
	return s
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Filename   string `json:"filename"`
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
	BitRate    string `json:"bit_rate"`
}

type ffprobeStream struct {
	Index         int    `json:"index"`
	CodecName     string `json:"codec_name"`
	CodecType     string `json:"codec_type"`
	SampleRate    string `json:"sample_rate"`
	Channels      int    `json:"channels"`
	BitsPerSample int    `json:"bits_per_sample"`
	Duration      string `json:"duration"`
}
