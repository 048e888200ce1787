package legacy

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/tsawler/docextract/model"
)

// Extractor flattens a legacy document to plain text.
type Extractor interface {
	Extract(ctx context.Context, path string) ([]byte, error)
}

// DefaultAntiwordArgs requests plain text output.
var DefaultAntiwordArgs = []string{"-t"}

// Antiword runs the antiword command line tool. The source path is passed
// as the last argument and standard output is captured whole.
type Antiword struct {
	// Path is the executable, looked up in PATH when not absolute.
	// Empty means "antiword".
	Path string

	// Args precede the source path. Nil means DefaultAntiwordArgs.
	Args []string

	// Timeout bounds a single run. Zero means no limit beyond ctx.
	Timeout time.Duration
}

// Extract implements Extractor. A missing tool, a failed start or a
// non-zero exit status is reported as model.ErrExternalTool.
func (a Antiword) Extract(ctx context.Context, path string) ([]byte, error) {
	name := a.Path
	if name == "" {
		name = "antiword"
	}
	args := a.Args
	if args == nil {
		args = DefaultAntiwordArgs
	}

	if a.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, append(append([]string{}, args...), path)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		switch {
		case ctx.Err() != nil:
			return nil, fmt.Errorf("%s: %v: %w", name, ctx.Err(), model.ErrExternalTool)
		case errors.As(err, &exitErr):
			msg := strings.TrimSpace(stderr.String())
			if msg == "" {
				msg = exitErr.Error()
			}
			return nil, fmt.Errorf("%s exited with status %d: %s: %w",
				name, exitErr.ExitCode(), msg, model.ErrExternalTool)
		default:
			return nil, fmt.Errorf("running %s: %v: %w", name, err, model.ErrExternalTool)
		}
	}
	return stdout.Bytes(), nil
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(ctx context.Context, path string) ([]byte, error)

// Extract implements Extractor.
func (f ExtractorFunc) Extract(ctx context.Context, path string) ([]byte, error) {
	return f(ctx, path)
}
