package naming

import (
	"path/filepath"
	"strings"

	"github.com/backmassage/audioconvert/internal/config"
)

// OutputName returns the converted file name for input: the base name up to
// its last '.' followed by the target format's extension.
//
//	/music/a/song.wav, .mp3   -> song.mp3
//	/music/live.set.flac, .ogg -> live.set.ogg
func OutputName(input string, format config.Format) string {
	base := filepath.Base(input)
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	return base + string(format)
}

// GetOutputPath joins outputDir and [OutputName].
func GetOutputPath(input, outputDir string, format config.Format) string {
	return filepath.Join(outputDir, OutputName(input, format))
}
