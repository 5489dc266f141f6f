package dispatch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/p90ai/p90/internal/intent"
	"github.com/p90ai/p90/internal/runtime"
)

type scriptCall struct {
	interpreter string
	path        string
}

type fakeShell struct {
	commands []string
	scripts  []scriptCall
	result   runtime.Result
	err      error
}

func (f *fakeShell) run(_ context.Context, command string) (runtime.Result, error) {
	f.commands = append(f.commands, command)
	return f.result, f.err
}

func (f *fakeShell) runScript(_ context.Context, interpreter, path string) (runtime.Result, error) {
	f.scripts = append(f.scripts, scriptCall{interpreter, path})
	return f.result, f.err
}

func newTestDispatcher(t *testing.T, shell *fakeShell) (*Dispatcher, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	return &Dispatcher{
		ScriptsDir:  filepath.Join(t.TempDir(), "scripts"),
		Interpreter: "python",
		Run:         shell.run,
		RunScript:   shell.runScript,
		Render:      func(s string) string { return s },
		Out:         &out,
		Err:         &errOut,
	}, &out, &errOut
}

func TestDispatchTextRendersWithoutSideEffects(t *testing.T) {
	shell := &fakeShell{}
	d, out, _ := newTestDispatcher(t, shell)

	outcome, err := d.Dispatch(context.Background(), intent.Text("no tags here"))
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if outcome.Kind != intent.KindText {
		t.Fatalf("expected text outcome, got %s", outcome.Kind)
	}
	if len(shell.commands) != 0 {
		t.Fatalf("expected no subprocess for text intent, got %v", shell.commands)
	}
	if !strings.Contains(out.String(), "no tags here") {
		t.Fatalf("expected content rendered, got %q", out.String())
	}
	if _, statErr := os.Stat(d.ScriptsDir); !os.IsNotExist(statErr) {
		t.Fatalf("expected scripts dir untouched for text intent")
	}
}

func TestDispatchCommandPrintsCapturedStreams(t *testing.T) {
	shell := &fakeShell{result: runtime.Result{Stdout: "hi\n"}}
	d, out, _ := newTestDispatcher(t, shell)

	outcome, err := d.Dispatch(context.Background(), intent.Command("echo hi"))
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if len(shell.commands) != 1 || shell.commands[0] != "echo hi" {
		t.Fatalf("expected echo hi to run, got %v", shell.commands)
	}
	if !strings.Contains(out.String(), "Executing: echo hi") {
		t.Fatalf("expected Executing line, got %q", out.String())
	}
	if !strings.Contains(out.String(), "hi\n") {
		t.Fatalf("expected stdout printed verbatim, got %q", out.String())
	}
	if outcome.Stdout != "hi\n" {
		t.Fatalf("expected stdout recorded, got %q", outcome.Stdout)
	}
}

func TestDispatchCommandNonZeroExitIsNotAnError(t *testing.T) {
	shell := &fakeShell{result: runtime.Result{Stderr: "boom\n", ExitCode: 2}}
	d, _, errOut := newTestDispatcher(t, shell)

	outcome, err := d.Dispatch(context.Background(), intent.Command("false"))
	if err != nil {
		t.Fatalf("expected no dispatch error for failing command, got %v", err)
	}
	if outcome.ExitCode != 2 {
		t.Fatalf("expected exit code 2 recorded, got %d", outcome.ExitCode)
	}
	if !strings.Contains(errOut.String(), "boom") {
		t.Fatalf("expected stderr surfaced, got %q", errOut.String())
	}
}

func TestDispatchScriptSavesThenRuns(t *testing.T) {
	shell := &fakeShell{}
	d, out, _ := newTestDispatcher(t, shell)

	outcome, err := d.Dispatch(context.Background(), intent.Script("foo.py", "print('hello')"))
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	path := filepath.Join(d.ScriptsDir, "foo.py")
	if outcome.ScriptPath != path {
		t.Fatalf("expected script path %q, got %q", path, outcome.ScriptPath)
	}
	body, readErr := os.ReadFile(path)
	if readErr != nil {
		t.Fatalf("expected script written: %v", readErr)
	}
	if string(body) != "print('hello')" {
		t.Fatalf("unexpected script body %q", body)
	}

	entries, _ := os.ReadDir(d.ScriptsDir)
	if len(entries) != 1 {
		t.Fatalf("expected exactly one file in scripts dir, got %d", len(entries))
	}
	if len(shell.scripts) != 1 || shell.scripts[0] != (scriptCall{"python", path}) {
		t.Fatalf("expected one interpreter invocation, got %v", shell.scripts)
	}
	if len(shell.commands) != 0 {
		t.Fatalf("expected no shell invocation for a script, got %v", shell.commands)
	}
	if !strings.Contains(out.String(), "Saved script to ") {
		t.Fatalf("expected save announcement, got %q", out.String())
	}
}

func TestDispatchScriptRunsFromDirWithSpaces(t *testing.T) {
	shell := &fakeShell{}
	d, _, _ := newTestDispatcher(t, shell)
	d.ScriptsDir = filepath.Join(t.TempDir(), "Application Support", "scripts")

	outcome, err := d.Dispatch(context.Background(), intent.Script("foo.py", "print('hello')"))
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	path := filepath.Join(d.ScriptsDir, "foo.py")
	if outcome.ScriptPath != path {
		t.Fatalf("expected script path %q, got %q", path, outcome.ScriptPath)
	}
	if len(shell.scripts) != 1 || shell.scripts[0].path != path {
		t.Fatalf("expected interpreter to receive full path %q, got %v", path, shell.scripts)
	}
}

func TestDispatchScriptAppendsMissingExtension(t *testing.T) {
	shell := &fakeShell{}
	d, _, _ := newTestDispatcher(t, shell)

	outcome, err := d.Dispatch(context.Background(), intent.Script("cleanup", "pass"))
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if filepath.Base(outcome.ScriptPath) != "cleanup.py" {
		t.Fatalf("expected .py appended, got %q", outcome.ScriptPath)
	}
}

func TestDispatchScriptOverwritesExistingFile(t *testing.T) {
	shell := &fakeShell{}
	d, _, _ := newTestDispatcher(t, shell)

	if _, err := d.Dispatch(context.Background(), intent.Script("job.py", "old")); err != nil {
		t.Fatalf("first Dispatch failed: %v", err)
	}
	if _, err := d.Dispatch(context.Background(), intent.Script("job.py", "new")); err != nil {
		t.Fatalf("second Dispatch failed: %v", err)
	}

	body, err := os.ReadFile(filepath.Join(d.ScriptsDir, "job.py"))
	if err != nil {
		t.Fatalf("read script failed: %v", err)
	}
	if string(body) != "new" {
		t.Fatalf("expected overwrite, got %q", body)
	}
}

func TestDispatchScriptWriteFailureSkipsExecution(t *testing.T) {
	shell := &fakeShell{}
	d, _, _ := newTestDispatcher(t, shell)

	// A regular file where the scripts dir should be makes MkdirAll fail.
	parent := filepath.Dir(d.ScriptsDir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		t.Fatalf("mkdir parent failed: %v", err)
	}
	if err := os.WriteFile(d.ScriptsDir, []byte("in the way"), 0o644); err != nil {
		t.Fatalf("write blocker failed: %v", err)
	}

	_, err := d.Dispatch(context.Background(), intent.Script("x.py", "pass"))
	if err == nil {
		t.Fatalf("expected error when scripts dir cannot be created")
	}
	if len(shell.commands) != 0 || len(shell.scripts) != 0 {
		t.Fatalf("expected no execution after failed save, got %v %v", shell.commands, shell.scripts)
	}
}
