// Package runtime runs shell commands on behalf of the dispatcher and
// captures their output.
package runtime

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Result holds the captured output of one child process. ExitCode is the
// child's own status; a non-zero value is data, not an error.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// RunShell executes command through the user's current shell, blocking
// until the child exits with stdout and stderr fully captured. The
// returned error is reserved for failures to start the process; the
// command's own exit status is reported in Result.
func RunShell(ctx context.Context, command string) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	shell, args := shellInvocation(command)
	return run(exec.CommandContext(ctx, shell, args...))
}

// RunArgs executes a program directly with no shell in between, so
// arguments like paths with spaces are never re-tokenized. Capture and
// exit-status reporting match RunShell.
func RunArgs(ctx context.Context, name string, args ...string) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return run(exec.CommandContext(ctx, name, args...))
}

func run(cmd *exec.Cmd) (Result, error) {
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, err
	}
	return result, nil
}

func shellInvocation(command string) (string, []string) {
	if runtime.GOOS == "windows" {
		comspec := strings.TrimSpace(os.Getenv("COMSPEC"))
		if comspec == "" {
			comspec = "cmd"
		}
		return comspec, []string{"/C", command}
	}

	shell := strings.TrimSpace(os.Getenv("SHELL"))
	if shell != "" {
		if filepath.IsAbs(shell) {
			if _, err := os.Stat(shell); err == nil {
				return shell, []string{"-c", command}
			}
		} else if resolved, err := exec.LookPath(shell); err == nil {
			return resolved, []string{"-c", command}
		}
	}
	return "sh", []string{"-c", command}
}

// Shell reports the user's shell for prompt context, or "unknown" when
// the environment does not say.
func Shell() string {
	if shell := strings.TrimSpace(os.Getenv("SHELL")); shell != "" {
		return shell
	}
	if runtime.GOOS == "windows" {
		if comspec := strings.TrimSpace(os.Getenv("COMSPEC")); comspec != "" {
			return comspec
		}
	}
	return "unknown"
}
