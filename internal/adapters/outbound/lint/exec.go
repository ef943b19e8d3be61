// Package lint implements the language oracles by invoking the standard
// checking tools (python, flake8, bandit, node, eslint) as subprocesses.
package lint

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/vieraprotocol/subvet/internal/domain"
)

// toolOutput captures a finished tool invocation. Linters exit non-zero when
// they find issues, so a non-zero code with parseable output is a success.
type toolOutput struct {
	stdout   string
	stderr   string
	exitCode int
}

// runTool executes a checking tool under the caller's context. A missing
// binary maps to ErrOracleUnavailable; a killed process maps to the context
// error so stages can apply their timeout fallback.
func runTool(ctx context.Context, bin string, args []string, stdin string) (toolOutput, error) {
	cmd := exec.CommandContext(ctx, bin, args...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := toolOutput{stdout: stdout.String(), stderr: stderr.String()}

	if err != nil {
		if ctx.Err() != nil {
			return out, ctx.Err()
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			out.exitCode = exitErr.ExitCode()
			return out, nil
		}
		return out, fmt.Errorf("%w: %s: %v", domain.ErrOracleUnavailable, bin, err)
	}
	return out, nil
}

// writeScratch materializes source text so file-based tools can consume it.
// The caller must invoke cleanup on every exit path.
func writeScratch(source, ext string) (path string, cleanup func(), err error) {
	f, err := os.CreateTemp("", "subvet-*"+ext)
	if err != nil {
		return "", nil, fmt.Errorf("creating scratch file: %w", err)
	}
	path = f.Name()
	cleanup = func() { os.Remove(path) }

	if _, err := f.WriteString(source); err != nil {
		f.Close()
		cleanup()
		return "", nil, fmt.Errorf("writing scratch file: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("closing scratch file: %w", err)
	}
	return path, cleanup, nil
}

// Available reports whether a tool binary can be resolved on PATH.
func Available(bin string) bool {
	_, err := exec.LookPath(bin)
	return err == nil
}
