package ffmpeg

import (
	"errors"
	"regexp"
)

// Sentinel errors wrapped by [Execute] so callers can use errors.Is.
var (
	ErrDecode             = errors.New("input could not be decoded")
	ErrEncoderUnavailable = errors.New("encoder not available in this ffmpeg build")
	ErrNoAudio            = errors.New("input has no audio stream")
	ErrOutput             = errors.New("output could not be written")
	ErrFailed             = errors.New("ffmpeg failed")
)

// Pre-compiled regexes for classifying ffmpeg stderr output. Checked in
// order by [Classify]; the first match wins.
var (
	reNoAudio = regexp.MustCompile(
		`(?i)Stream map '0:a:0' matches no streams|` +
			`does not contain any stream`)

	reEncoderUnavailable = regexp.MustCompile(
		`(?i)Unknown encoder|` +
			`Encoder .* not found|` +
			`Requested output format .* is not a suitable output format|` +
			`Could not find tag for codec|` +
			`codec not currently supported in container`)

	reDecode = regexp.MustCompile(
		`(?i)Invalid data found when processing input|` +
			`could not find codec parameters|` +
			`Error while decoding stream|` +
			`moov atom not found|` +
			`Format .* detected only with low score|` +
			`Failed to read frame size`)

	reOutput = regexp.MustCompile(
		`(?i)Permission denied|` +
			`No space left on device|` +
			`Read-only file system|` +
			`Could not open file|` +
			`Error opening output`)
)

// Classify maps ffmpeg stderr to one of the sentinel errors. Unrecognized
// output yields [ErrFailed].
func Classify(stderr string) error {
	switch {
	case reNoAudio.MatchString(stderr):
		return ErrNoAudio
	case reEncoderUnavailable.MatchString(stderr):
		return ErrEncoderUnavailable
	case reDecode.MatchString(stderr):
		return ErrDecode
	case reOutput.MatchString(stderr):
		return ErrOutput
	}
	return ErrFailed
}
