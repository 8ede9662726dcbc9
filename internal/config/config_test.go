package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDirArg(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no trailing slash", "/music/library", "/music/library"},
		{"single trailing slash", "/music/library/", "/music/library"},
		{"multiple trailing slashes", "/music/library///", "/music/library"},
		{"root path", "/", "/"},
		{"doubled root", "//", "/"},
		{"only slashes", "////", "/"},
		{"relative path", "output", "output"},
		{"relative with slash", "output/", "output"},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDirArg(tt.in))
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{".mp3", FormatMP3, false},
		{"mp3", FormatMP3, false},
		{".FLAC", FormatFLAC, false},
		{" wav ", FormatWAV, false},
		{".m4a", FormatM4A, false},
		{".aiff", FormatAIFF, false},
		{".aac", "", true},
		{"", "", true},
		{".", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsAudioExt(t *testing.T) {
	assert.True(t, IsAudioExt(".mp3"))
	assert.True(t, IsAudioExt(".OGG"))
	assert.False(t, IsAudioExt("mp3"), "extension without dot is not a file extension")
	assert.False(t, IsAudioExt(".txt"))
	assert.False(t, IsAudioExt(""))
}

func TestParseCodec(t *testing.T) {
	c, err := ParseCodec("")
	require.NoError(t, err)
	assert.Equal(t, CodecNone, c)

	c, err = ParseCodec("PCM_MULAW")
	require.NoError(t, err)
	assert.Equal(t, CodecPCMMulaw, c)

	_, err = ParseCodec("pcm_alaw")
	assert.Error(t, err)
}

func TestCodec_ExtraParams(t *testing.T) {
	assert.Equal(t, []string{"-ar", "8000"}, CodecPCMMulaw.ExtraParams())
	assert.Nil(t, CodecNone.ExtraParams())
}

func TestCodec_SupportsFormat(t *testing.T) {
	for _, f := range Formats {
		assert.True(t, CodecNone.SupportsFormat(f), "no codec works with %s", f)
	}
	assert.True(t, CodecPCMMulaw.SupportsFormat(FormatWAV))
	assert.True(t, CodecPCMMulaw.SupportsFormat(FormatAIFF))
	assert.False(t, CodecPCMMulaw.SupportsFormat(FormatMP3))
	assert.False(t, CodecPCMMulaw.SupportsFormat(FormatOGG))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{"defaults with paths", func(c *Config) {}, nil},
		{"zero workers", func(c *Config) { c.Workers = 0 }, ErrInvalidWorkers},
		{"negative workers", func(c *Config) { c.Workers = -3 }, ErrInvalidWorkers},
		{"mulaw in wav", func(c *Config) { c.OutputFormat = FormatWAV; c.Codec = CodecPCMMulaw }, nil},
		{"mulaw in mp3", func(c *Config) { c.Codec = CodecPCMMulaw }, ErrCodecUnsupported},
		{"missing paths", func(c *Config) { c.InputDir = "" }, ErrNeedPaths},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.InputDir = "/in"
			cfg.OutputDir = "/out"
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_RejectsUnknownEnums(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InputDir, cfg.OutputDir = "/in", "/out"
	cfg.OutputFormat = ".wma"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.InputDir, cfg.OutputDir = "/in", "/out"
	cfg.Codec = "opus"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.InputDir, cfg.OutputDir = "/in", "/out"
	cfg.ColorMode = "rainbow"
	assert.Error(t, cfg.Validate())
}

func TestValidatePaths(t *testing.T) {
	root := t.TempDir()
	in := filepath.Join(root, "in")
	require.NoError(t, os.Mkdir(in, 0o755))
	file := filepath.Join(root, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	tests := []struct {
		name    string
		input   string
		output  string
		wantErr error
	}{
		{"existing output dir", in, root, nil},
		{"missing output dir is fine", in, filepath.Join(root, "new"), nil},
		{"missing input", filepath.Join(root, "nope"), root, ErrInputMissing},
		{"input is a file", file, root, ErrInputNotDir},
		{"output is a file", in, file, ErrOutputIsFile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.InputDir = tt.input
			cfg.OutputDir = tt.output
			err := cfg.ValidatePaths()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDefaultConfig_SaneDefaults(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, FormatMP3, cfg.OutputFormat)
	assert.Equal(t, CodecNone, cfg.Codec)
	assert.Equal(t, "192k", cfg.Bitrate)
	assert.Equal(t, 5, cfg.Workers)
	assert.Equal(t, ColorAuto, cfg.ColorMode)
	assert.False(t, cfg.FailFast)
	assert.False(t, cfg.DryRun)
}

func TestFlagValues(t *testing.T) {
	cfg := DefaultConfig()

	fv := FormatValue{&cfg.OutputFormat}
	require.NoError(t, fv.Set("flac"))
	assert.Equal(t, FormatFLAC, cfg.OutputFormat)
	assert.Equal(t, ".flac", fv.String())
	assert.Error(t, fv.Set("xm"))

	cv := CodecValue{&cfg.Codec}
	require.NoError(t, cv.Set("pcm_mulaw"))
	assert.Equal(t, CodecPCMMulaw, cfg.Codec)

	mv := ColorValue{&cfg.ColorMode}
	require.NoError(t, mv.Set("never"))
	assert.Equal(t, ColorNever, cfg.ColorMode)
	assert.Error(t, mv.Set("sometimes"))
}
