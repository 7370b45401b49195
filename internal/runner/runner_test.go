package runner

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available in PATH")
	}
}

func TestRunner_Lines(t *testing.T) {
	requireShell(t)

	lines, err := New().Lines(context.Background(), Command{
		Name: "sh",
		Args: []string{"-c", `printf 'one\ntwo\nthree\n'`},
	})
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	if len(lines) != 3 || lines[0] != "one" || lines[2] != "three" {
		t.Fatalf("Lines = %v, expected [one two three]", lines)
	}
}

func TestRunner_Lines_EmptyOutput(t *testing.T) {
	requireShell(t)

	lines, err := New().Lines(context.Background(), Command{
		Name: "sh",
		Args: []string{"-c", "true"},
	})
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("Lines = %v, expected empty", lines)
	}
}

func TestRunner_Lines_Transforms(t *testing.T) {
	requireShell(t)

	upper := func(s string) string { return strings.ToUpper(s) }
	lines, err := New().Lines(context.Background(), Command{
		Name: "sh",
		Args: []string{"-c", `printf '"abc"\n"def"\n'`},
	}, ChompQuotes, upper)
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	if len(lines) != 2 || lines[0] != "ABC" || lines[1] != "DEF" {
		t.Fatalf("Lines = %v, expected [ABC DEF]", lines)
	}
}

func TestRunner_NonZeroExit(t *testing.T) {
	requireShell(t)

	_, err := New().Lines(context.Background(), Command{
		Name: "sh",
		Args: []string{"-c", "echo oops >&2; exit 3"},
	})
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}

	var procErr *ProcessError
	if !errors.As(err, &procErr) {
		t.Fatalf("error type = %T, expected *ProcessError", err)
	}
	if procErr.ExitCode != 3 {
		t.Errorf("ExitCode = %d, expected 3", procErr.ExitCode)
	}
	if procErr.Stderr != "oops" {
		t.Errorf("Stderr = %q, expected oops", procErr.Stderr)
	}
	if !strings.Contains(procErr.Error(), "sh") {
		t.Errorf("Error() = %q, expected command name", procErr.Error())
	}
}

func TestRunner_MissingBinary(t *testing.T) {
	_, err := New().Lines(context.Background(), Command{Name: "definitely-not-a-real-binary"})
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
	var procErr *ProcessError
	if !errors.As(err, &procErr) {
		t.Fatalf("error type = %T, expected *ProcessError", err)
	}
}

func TestRunner_DirScopesWorkingDirectory(t *testing.T) {
	requireShell(t)

	dir := t.TempDir()
	out, err := New().First(context.Background(), Command{
		Name: "sh",
		Args: []string{"-c", "pwd"},
		Dir:  dir,
	})
	if err != nil {
		t.Fatalf("First: %v", err)
	}

	want, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatalf("EvalSymlinks: %v", err)
	}
	got, err := filepath.EvalSymlinks(out)
	if err != nil {
		t.Fatalf("EvalSymlinks: %v", err)
	}
	if got != want {
		t.Fatalf("pwd = %q, expected %q", got, want)
	}
}

func TestRunner_First(t *testing.T) {
	requireShell(t)

	out, err := New().First(context.Background(), Command{
		Name: "sh",
		Args: []string{"-c", `printf '"head"\ntail\n'`},
	}, ChompQuotes)
	if err != nil {
		t.Fatalf("First: %v", err)
	}
	if out != "head" {
		t.Fatalf("First = %q, expected head", out)
	}

	_, err = New().First(context.Background(), Command{
		Name: "sh",
		Args: []string{"-c", "true"},
	})
	if err == nil {
		t.Fatal("expected error for empty output")
	}
}

func TestRunner_Joined(t *testing.T) {
	requireShell(t)

	out, err := New().Joined(context.Background(), Command{
		Name: "sh",
		Args: []string{"-c", `printf 'subject\n\nbody line\n\n'`},
	})
	if err != nil {
		t.Fatalf("Joined: %v", err)
	}
	if out != "subject\n\nbody line" {
		t.Fatalf("Joined = %q", out)
	}
}

func TestChompQuotes(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{in: `"abc"`, expected: "abc"},
		{in: "abc", expected: "abc"},
		{in: `""`, expected: ""},
		{in: `"unbalanced`, expected: "unbalanced"},
	}

	for _, tt := range tests {
		if got := ChompQuotes(tt.in); got != tt.expected {
			t.Errorf("ChompQuotes(%q) = %q, expected %q", tt.in, got, tt.expected)
		}
	}
}
