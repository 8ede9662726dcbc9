package ffmpeg

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/audioconvert/internal/config"
)

func TestBuild_DefaultMP3(t *testing.T) {
	args := Build(Request{
		InputPath:   "/in/song.wav",
		InputFormat: config.FormatWAV,
		OutputPath:  "/out/song.mp3",
		Format:      config.FormatMP3,
		Bitrate:     "192k",
	})

	want := []string{
		"ffmpeg", "-hide_banner", "-nostdin", "-y", "-loglevel", "error",
		"-f", "wav", "-i", "/in/song.wav",
		"-map", "0:a:0", "-vn", "-sn", "-dn", "-map_metadata", "0",
		"-b:a", "192k",
		"-f", "mp3", "/out/song.mp3",
	}
	assert.Equal(t, want, args)
}

func TestBuild_MulawForcesSampleRate(t *testing.T) {
	args := Build(Request{
		Binary:      "/opt/bin/ffmpeg",
		InputPath:   "/in/call.flac",
		InputFormat: config.FormatFLAC,
		OutputPath:  "/out/call.wav",
		Format:      config.FormatWAV,
		Codec:       config.CodecPCMMulaw,
		Bitrate:     "192k",
		Verbose:     true,
	})

	assert.Equal(t, "/opt/bin/ffmpeg", args[0])
	assert.Subset(t, args, []string{"-c:a", "pcm_mulaw", "-ar", "8000"})
	assert.Contains(t, args, "warning")

	idx := indexOf(args, "-c:a")
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, "pcm_mulaw", args[idx+1])
	idx = indexOf(args, "-ar")
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, "8000", args[idx+1])
	assert.Equal(t, "/out/call.wav", args[len(args)-1])
}

func TestMuxerAndDemuxerCoverEveryFormat(t *testing.T) {
	for _, f := range config.Formats {
		assert.NotEmpty(t, Demuxer(f), "demuxer for %s", f)
		assert.NotEmpty(t, Muxer(f), "muxer for %s", f)
	}
	assert.Equal(t, "ipod", Muxer(config.FormatM4A))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		stderr string
		want   error
	}{
		{"garbage input", "/in/x.mp3: Invalid data found when processing input", ErrDecode},
		{"missing encoder", "Unknown encoder 'libmp3lame'", ErrEncoderUnavailable},
		{"codec not in container", "Could not find tag for codec pcm_mulaw in stream #0, codec not currently supported in container", ErrEncoderUnavailable},
		{"no audio", "Stream map '0:a:0' matches no streams.", ErrNoAudio},
		{"disk full", "av_interleaved_write_frame(): No space left on device", ErrOutput},
		{"unknown", "something else entirely", ErrFailed},
		{"empty", "", ErrFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.stderr))
		})
	}
}

func TestExecError(t *testing.T) {
	procErr := errors.New("exit status 1")
	e := &ExecError{
		Kind:   ErrDecode,
		Err:    procErr,
		Stderr: "line one\n\nline two\nInvalid data found when processing input\n",
	}

	assert.ErrorIs(t, e, ErrDecode)
	assert.ErrorIs(t, e, procErr)
	assert.Equal(t, []string{"line two", "Invalid data found when processing input"}, e.Tail(2))
	assert.Contains(t, e.Error(), "input could not be decoded")
	assert.Contains(t, e.Error(), "Invalid data found")
}

func TestExecute_InvalidInput(t *testing.T) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not available")
	}
	dir := t.TempDir()
	in := filepath.Join(dir, "bogus.wav")
	require.NoError(t, os.WriteFile(in, []byte("definitely not a wav file"), 0o644))

	err := Execute(context.Background(), Request{
		InputPath:   in,
		InputFormat: config.FormatWAV,
		OutputPath:  filepath.Join(dir, "bogus.mp3"),
		Format:      config.FormatMP3,
		Bitrate:     "192k",
	})
	require.Error(t, err)

	var execErr *ExecError
	require.ErrorAs(t, err, &execErr)
	assert.NotEmpty(t, execErr.Stderr)
}

func TestExecute_Cancelled(t *testing.T) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not available")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dir := t.TempDir()
	err := Execute(ctx, Request{
		InputPath:   filepath.Join(dir, "in.wav"),
		InputFormat: config.FormatWAV,
		OutputPath:  filepath.Join(dir, "out.mp3"),
		Format:      config.FormatMP3,
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func indexOf(args []string, s string) int {
	for i, a := range args {
		if a == s {
			return i
		}
	}
	return -1
}
