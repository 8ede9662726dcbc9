package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// FailingFFmpeg writes a shell script standing in for ffmpeg. It writes a
// few bytes to its last argument (the output path), prints stderr and exits
// with code 1. Skips on Windows.
func FailingFFmpeg(t *testing.T, stderr string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}
	path := filepath.Join(t.TempDir(), "ffmpeg")
	script := fmt.Sprintf(`#!/bin/sh
for arg in "$@"; do out="$arg"; done
printf partial > "$out"
echo %q >&2
exit 1
`, stderr)
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write fake ffmpeg: %v", err)
	}
	return path
}
