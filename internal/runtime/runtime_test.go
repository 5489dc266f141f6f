package runtime

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestShellInvocationUsesShellEnvWhenValid(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell selection test is unix-specific")
	}

	t.Setenv("SHELL", "/bin/sh")
	shell, args := shellInvocation("echo hi")
	if shell != "/bin/sh" {
		t.Fatalf("expected /bin/sh from SHELL, got %q", shell)
	}
	if len(args) != 2 || args[0] != "-c" {
		t.Fatalf("expected -c invocation args, got %#v", args)
	}
}

func TestShellInvocationFallsBackWhenShellEnvInvalid(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell selection test is unix-specific")
	}

	t.Setenv("SHELL", filepath.Join(t.TempDir(), "missing-shell"))
	shell, _ := shellInvocation("echo hi")
	if shell != "sh" {
		t.Fatalf("expected fallback shell sh, got %q", shell)
	}
}

func TestRunShellCapturesStdout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("capture test is unix-specific")
	}

	t.Setenv("SHELL", "/bin/sh")
	result, err := RunShell(context.Background(), "echo hi")
	if err != nil {
		t.Fatalf("RunShell failed: %v", err)
	}
	if strings.TrimSpace(result.Stdout) != "hi" {
		t.Fatalf("expected hi on stdout, got %q", result.Stdout)
	}
	if result.ExitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", result.ExitCode)
	}
}

func TestRunShellReportsNonZeroExitAsData(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("capture test is unix-specific")
	}

	t.Setenv("SHELL", "/bin/sh")
	result, err := RunShell(context.Background(), "echo oops >&2; exit 3")
	if err != nil {
		t.Fatalf("expected no error for non-zero exit, got %v", err)
	}
	if result.ExitCode != 3 {
		t.Fatalf("expected exit code 3, got %d", result.ExitCode)
	}
	if strings.TrimSpace(result.Stderr) != "oops" {
		t.Fatalf("expected oops on stderr, got %q", result.Stderr)
	}
}

func TestRunArgsKeepsSpacedPathIntact(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("capture test is unix-specific")
	}

	dir := filepath.Join(t.TempDir(), "Application Support", "scripts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	path := filepath.Join(dir, "greet.sh")
	if err := os.WriteFile(path, []byte("echo hello from script\n"), 0o644); err != nil {
		t.Fatalf("write script failed: %v", err)
	}

	result, err := RunArgs(context.Background(), "sh", path)
	if err != nil {
		t.Fatalf("RunArgs failed: %v", err)
	}
	if result.ExitCode != 0 {
		t.Fatalf("expected exit code 0, got %d with stderr %q", result.ExitCode, result.Stderr)
	}
	if strings.TrimSpace(result.Stdout) != "hello from script" {
		t.Fatalf("expected script output, got %q", result.Stdout)
	}
}

func TestRunArgsReportsNonZeroExitAsData(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("capture test is unix-specific")
	}

	result, err := RunArgs(context.Background(), "sh", "-c", "exit 5")
	if err != nil {
		t.Fatalf("expected no error for non-zero exit, got %v", err)
	}
	if result.ExitCode != 5 {
		t.Fatalf("expected exit code 5, got %d", result.ExitCode)
	}
}

func TestShellFallsBackToUnknown(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("SHELL env test is unix-specific")
	}

	t.Setenv("SHELL", "")
	if got := Shell(); got != "unknown" {
		t.Fatalf("expected unknown, got %q", got)
	}
}
