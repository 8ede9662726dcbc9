package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseFlags(t *testing.T, args ...string) (*Flags, *pflag.FlagSet) {
	t.Helper()
	f := NewFlags()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.BindGlobal(fs)
	f.BindConvert(fs)
	require.NoError(t, fs.Parse(args))
	return f, fs
}

func TestResolve_DefaultsWithoutFlags(t *testing.T) {
	f, fs := parseFlags(t)
	cfg, err := f.Resolve(fs)
	require.NoError(t, err)

	want := DefaultConfig()
	assert.Equal(t, &want, cfg)
}

func TestResolve_FlagsOverride(t *testing.T) {
	f, fs := parseFlags(t, "-o", "WAV", "-c", "pcm_mulaw", "-w", "2", "-v",
		"--fail-fast", "--dry-run", "--color", "never", "--log", "/tmp/run.log")
	cfg, err := f.Resolve(fs)
	require.NoError(t, err)

	assert.Equal(t, FormatWAV, cfg.OutputFormat)
	assert.Equal(t, CodecPCMMulaw, cfg.Codec)
	assert.Equal(t, 2, cfg.Workers)
	assert.True(t, cfg.Verbose)
	assert.True(t, cfg.FailFast)
	assert.True(t, cfg.DryRun)
	assert.Equal(t, ColorNever, cfg.ColorMode)
	assert.Equal(t, "/tmp/run.log", cfg.LogFile)
}

func TestResolve_FileThenFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audioconvert.toml")
	require.NoError(t, os.WriteFile(path, []byte("workers = 8\noutput_format = \"flac\"\nfail_fast = true\n"), 0o644))

	f, fs := parseFlags(t, "--config", path, "-w", "3")
	cfg, err := f.Resolve(fs)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Workers, "flag wins over file")
	assert.Equal(t, FormatFLAC, cfg.OutputFormat, "file wins over default")
	assert.True(t, cfg.FailFast)
}

func TestResolve_MissingConfigFile(t *testing.T) {
	f, fs := parseFlags(t, "--config", filepath.Join(t.TempDir(), "absent.toml"))
	_, err := f.Resolve(fs)
	assert.ErrorContains(t, err, "config file not found")
}

func TestBindConvert_RejectsUnknownEnums(t *testing.T) {
	f := NewFlags()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.SetOutput(new(discardWriter))
	f.BindConvert(fs)

	assert.Error(t, fs.Parse([]string{"-o", "wma"}))
	assert.Error(t, fs.Parse([]string{"--codec", "opus"}))
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
