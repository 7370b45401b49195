// Package runner executes external read-only commands and parses their
// line-oriented output.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Command describes one external invocation. Dir, when set, becomes the
// working directory of the spawned process only; the calling process never
// changes directory.
type Command struct {
	Name string
	Args []string
	Dir  string
}

// String renders the command the way it would appear on a shell line.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// ProcessError reports a command that exited non-zero or could not run.
type ProcessError struct {
	Command  string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ProcessError) Error() string {
	msg := fmt.Sprintf("command %q failed with exit status %d", e.Command, e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

// LineTransform rewrites a single output line.
type LineTransform func(string) string

// ChompQuotes strips an enclosing double-quote pair left by quoted
// --format arguments.
func ChompQuotes(line string) string {
	return strings.Trim(line, `"`)
}

// Runner spawns one OS process per call. It performs no retries; a failure
// propagates immediately to the caller.
type Runner struct{}

// New creates a process runner.
func New() *Runner {
	return &Runner{}
}

// Lines runs the command, splits its stdout into lines and applies each
// transform in order to every line. Empty output yields an empty slice.
func (r *Runner) Lines(ctx context.Context, cmd Command, transforms ...LineTransform) ([]string, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	if err := c.Run(); err != nil {
		code := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			code = exitErr.ExitCode()
		}
		return nil, &ProcessError{
			Command:  cmd.String(),
			ExitCode: code,
			Stderr:   strings.TrimSpace(stderr.String()),
			Err:      err,
		}
	}

	out := strings.TrimSpace(stdout.String())
	if out == "" {
		return nil, nil
	}

	lines := strings.Split(out, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	for _, transform := range transforms {
		for i, line := range lines {
			lines[i] = transform(line)
		}
	}
	return lines, nil
}

// First runs the command and reduces its output to the first line.
func (r *Runner) First(ctx context.Context, cmd Command, transforms ...LineTransform) (string, error) {
	lines, err := r.Lines(ctx, cmd, transforms...)
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return "", fmt.Errorf("command %q produced no output", cmd.String())
	}
	return lines[0], nil
}

// Joined runs the command and reduces its output to a single trimmed block
// with lines rejoined by newlines.
func (r *Runner) Joined(ctx context.Context, cmd Command, transforms ...LineTransform) (string, error) {
	lines, err := r.Lines(ctx, cmd, transforms...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}
