package display

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/backmassage/audioconvert/internal/config"
	"github.com/backmassage/audioconvert/internal/term"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"zero", 0, "0 B"},
		{"small bytes", 512, "512 B"},
		{"exactly 1 KiB", 1024, "1.0 KiB"},
		{"1.5 KiB", 1536, "1.5 KiB"},
		{"1 MiB", 1024 * 1024, "1.0 MiB"},
		{"typical mp3 4.5 MiB", 4718592, "4.5 MiB"},
		{"1 GiB", 1024 * 1024 * 1024, "1.0 GiB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatBytes(tt.bytes))
		})
	}
}

func TestFormatBytesWithSign(t *testing.T) {
	assert.Equal(t, "+ 1.0 MiB", FormatBytesWithSign(1024*1024))
	assert.Equal(t, "- 1.0 MiB", FormatBytesWithSign(-1024*1024))
	assert.Equal(t, "0 B", FormatBytesWithSign(0))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0.4s", FormatDuration(420*time.Millisecond))
	assert.Equal(t, "12.0s", FormatDuration(12*time.Second))
	assert.Equal(t, "2m5s", FormatDuration(2*time.Minute+5200*time.Millisecond))
}

func TestFormatLabel(t *testing.T) {
	assert.Equal(t, "MP3", FormatLabel(config.FormatMP3))
	assert.Equal(t, "FLAC", FormatLabel(config.FormatFLAC))
	assert.Equal(t, "default", CodecLabel(config.CodecNone))
	assert.Equal(t, "PCM_MULAW", CodecLabel(config.CodecPCMMulaw))
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(
		[]string{"File", "Error"},
		[][]string{{"a.wav", "decode failed"}, {"b.flac"}},
		[]Align{AlignLeft, AlignLeft},
	)
	assert.Contains(t, out, "FILE")
	assert.Contains(t, out, "a.wav")
	assert.Contains(t, out, "decode failed")
	assert.Contains(t, out, "b.flac")
	assert.Equal(t, 6, strings.Count(out, "\n")+1, out)

	assert.Empty(t, RenderTable(nil, nil, nil))
}

func TestPrintBanner(t *testing.T) {
	term.Configure(config.ColorNever, nil)
	var buf bytes.Buffer
	PrintBanner(&buf)
	assert.NotContains(t, buf.String(), "\033[")
	assert.Contains(t, buf.String(), "/_/")
}

func TestFormatHz(t *testing.T) {
	assert.Equal(t, "8 kHz", FormatHz(8000))
	assert.Equal(t, "44.1 kHz", FormatHz(44100))
	assert.Equal(t, "48 kHz", FormatHz(48000))
	assert.Equal(t, "500 Hz", FormatHz(500))
}
