package display

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/backmassage/audioconvert/internal/config"
)

// FormatBytes returns a human-readable size (B, KiB, MiB, GiB, TiB, PiB).
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	suffixes := []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), suffixes[exp])
}

// FormatBytesWithSign prefixes with + or - for delta display (e.g. "- 1.2 MiB").
func FormatBytesWithSign(bytes int64) string {
	sign := ""
	if bytes > 0 {
		sign = "+ "
	} else if bytes < 0 {
		sign = "- "
		bytes = -bytes
	}
	return sign + FormatBytes(bytes)
}

// FormatDuration renders d rounded to tenths of a second below a minute
// and to whole seconds above ("0.4s", "12.0s", "2m5s").
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return d.Round(time.Second).String()
}

var upper = cases.Upper(language.Und)

// FormatLabel returns the display label for an output format ("MP3", "FLAC").
func FormatLabel(f config.Format) string {
	return upper.String(f.Name())
}

// CodecLabel returns the display label for a codec; the container default
// is shown as "default".
func CodecLabel(c config.Codec) string {
	if c == config.CodecNone {
		return "default"
	}
	return upper.String(string(c))
}

// FormatHz renders a sample rate ("8 kHz", "44.1 kHz", "500 Hz").
func FormatHz(hz int) string {
	if hz < 1000 {
		return fmt.Sprintf("%d Hz", hz)
	}
	s := fmt.Sprintf("%.1f", float64(hz)/1000)
	s = strings.TrimSuffix(s, ".0")
	return s + " kHz"
}
