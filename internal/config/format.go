package config

import (
	"fmt"
	"strings"
)

// Format is a supported audio file extension, always lowercase with a
// leading dot. The same set is accepted as input and offered as output.
type Format string

const (
	FormatAIFF Format = ".aiff"
	FormatFLAC Format = ".flac"
	FormatM4A  Format = ".m4a"
	FormatMP3  Format = ".mp3" // Default output.
	FormatMP4  Format = ".mp4"
	FormatOGG  Format = ".ogg"
	FormatWAV  Format = ".wav"
)

// Formats lists every supported format in help-text order.
var Formats = []Format{FormatAIFF, FormatFLAC, FormatM4A, FormatMP3, FormatMP4, FormatOGG, FormatWAV}

// ParseFormat accepts "mp3", ".mp3" or ".MP3" and returns the canonical Format.
func ParseFormat(s string) (Format, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v != "" && !strings.HasPrefix(v, ".") {
		v = "." + v
	}
	for _, f := range Formats {
		if Format(v) == f {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid output format %q (use one of %s)", s, formatList())
}

// IsAudioExt reports whether ext (any case, with dot) is a supported audio extension.
func IsAudioExt(ext string) bool {
	_, err := ParseFormat(ext)
	return err == nil && strings.HasPrefix(ext, ".")
}

// Name returns the extension without its leading dot (e.g. "mp3").
func (f Format) Name() string { return strings.TrimPrefix(string(f), ".") }

func (f Format) valid() bool {
	for _, x := range Formats {
		if f == x {
			return true
		}
	}
	return false
}

func formatList() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// Codec is an optional output codec applied on top of the container format.
type Codec string

const (
	CodecNone     Codec = ""
	CodecPCMMulaw Codec = "pcm_mulaw" // G.711 μ-law, forced to 8000 Hz.
)

// Codecs lists every selectable codec.
var Codecs = []Codec{CodecPCMMulaw}

// ParseCodec returns the canonical Codec for s. The empty string selects
// the format's default encoder.
func ParseCodec(s string) (Codec, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return CodecNone, nil
	}
	for _, c := range Codecs {
		if Codec(v) == c {
			return c, nil
		}
	}
	return "", fmt.Errorf("invalid codec %q (use pcm_mulaw)", s)
}

// SupportsFormat reports whether the codec can be stored in format f.
func (c Codec) SupportsFormat(f Format) bool {
	switch c {
	case CodecNone:
		return true
	case CodecPCMMulaw:
		return f == FormatWAV || f == FormatAIFF
	}
	return false
}

// ExtraParams returns the fixed encoder parameters the codec requires.
func (c Codec) ExtraParams() []string {
	if c == CodecPCMMulaw {
		return []string{"-ar", "8000"}
	}
	return nil
}

// pflag.Value adapters so the enum types can be bound with cmd.Flags().VarP.

// FormatValue binds a *Format to a command-line flag.
type FormatValue struct{ P *Format }

func (v FormatValue) String() string {
	if v.P == nil {
		return ""
	}
	return string(*v.P)
}

func (v FormatValue) Set(s string) error {
	f, err := ParseFormat(s)
	if err != nil {
		return err
	}
	*v.P = f
	return nil
}

func (v FormatValue) Type() string { return "format" }

// CodecValue binds a *Codec to a command-line flag.
type CodecValue struct{ P *Codec }

func (v CodecValue) String() string {
	if v.P == nil {
		return ""
	}
	return string(*v.P)
}

func (v CodecValue) Set(s string) error {
	c, err := ParseCodec(s)
	if err != nil {
		return err
	}
	*v.P = c
	return nil
}

func (v CodecValue) Type() string { return "codec" }

// ColorValue binds a *ColorMode to a command-line flag.
type ColorValue struct{ P *ColorMode }

func (v ColorValue) String() string {
	if v.P == nil {
		return ""
	}
	return string(*v.P)
}

func (v ColorValue) Set(s string) error {
	m, err := ParseColorMode(s)
	if err != nil {
		return err
	}
	*v.P = m
	return nil
}

func (v ColorValue) Type() string { return "mode" }
