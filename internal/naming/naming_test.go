package naming

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/backmassage/audioconvert/internal/config"
)

func TestOutputName(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format config.Format
		want   string
	}{
		{"wav to mp3", "/music/song.wav", config.FormatMP3, "song.mp3"},
		{"nested path", "/music/a/b/track 01.flac", config.FormatOGG, "track 01.ogg"},
		{"dots in stem", "/music/live.at.venue.m4a", config.FormatWAV, "live.at.venue.wav"},
		{"uppercase ext", "/music/LOUD.MP3", config.FormatFLAC, "LOUD.flac"},
		{"same format", "/music/x.mp3", config.FormatMP3, "x.mp3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OutputName(tt.input, tt.format))
		})
	}
}

func TestGetOutputPath(t *testing.T) {
	got := GetOutputPath("/in/sub/song.wav", "/out", config.FormatMP3)
	assert.Equal(t, filepath.Join("/out", "song.mp3"), got)
}

func TestCollisionResolver(t *testing.T) {
	cr := NewCollisionResolver()

	first := cr.Resolve("/in/a/song.wav", "/out/song.mp3")
	assert.Equal(t, "/out/song.mp3", first)

	// Same input asking again keeps its path.
	assert.Equal(t, "/out/song.mp3", cr.Resolve("/in/a/song.wav", "/out/song.mp3"))

	second := cr.Resolve("/in/b/song.flac", "/out/song.mp3")
	assert.Equal(t, "/out/song - dup1.mp3", second)

	third := cr.Resolve("/in/c/Song.ogg", "/out/Song.mp3")
	assert.Equal(t, "/out/Song - dup2.mp3", third, "collisions are case-insensitive")

	assert.Equal(t, 2, cr.Renamed())
}

func TestCollisionResolver_Deterministic(t *testing.T) {
	inputs := []string{"/in/a/x.wav", "/in/b/x.wav", "/in/c/x.wav"}
	run := func() []string {
		cr := NewCollisionResolver()
		var out []string
		for _, in := range inputs {
			out = append(out, cr.Resolve(in, GetOutputPath(in, "/out", config.FormatMP3)))
		}
		return out
	}
	assert.Equal(t, run(), run())
}

func TestCollisionResolver_Reserve(t *testing.T) {
	cr := NewCollisionResolver()
	cr.Reserve("/music/a.mp3", "/music/a.mp3")

	assert.Equal(t, "/music/a - dup1.mp3", cr.Resolve("/music/a.flac", "/music/a.mp3"))
	assert.Equal(t, "/music/a.mp3", cr.Resolve("/music/a.mp3", "/music/a.mp3"), "owner keeps its own name")

	// A second reservation never steals an existing claim.
	cr.Reserve("/music/A.MP3", "/music/A.MP3")
	assert.Equal(t, "/music/a.mp3", cr.Resolve("/music/a.mp3", "/music/a.mp3"))
	assert.Equal(t, 1, cr.Renamed())
}
