package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// ExecError is returned by [Execute] when ffmpeg exits non-zero. It wraps
// both the classified sentinel (see [Classify]) and the process error.
type ExecError struct {
	Kind   error
	Err    error
	Stderr string
}

func (e *ExecError) Error() string {
	msg := fmt.Sprintf("%v (%v)", e.Kind, e.Err)
	if last := e.Tail(1); len(last) == 1 {
		msg += ": " + last[0]
	}
	return msg
}

func (e *ExecError) Unwrap() []error { return []error{e.Kind, e.Err} }

// Tail returns up to n trailing non-empty stderr lines.
func (e *ExecError) Tail(n int) []string {
	var lines []string
	for _, l := range strings.Split(strings.TrimSpace(e.Stderr), "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}

// Execute builds and runs the ffmpeg command for req. Stderr is captured
// for classification; when req.Verbose is set it is also tee'd to
// os.Stderr in real time. Cancelling ctx kills the process.
func Execute(ctx context.Context, req Request) error {
	args := Build(req)

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	var stderrBuf bytes.Buffer
	if req.Verbose {
		cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)
	} else {
		cmd.Stderr = &stderrBuf
	}

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		stderr := stderrBuf.String()
		return &ExecError{Kind: Classify(stderr), Err: err, Stderr: stderr}
	}
	return nil
}
