// Package dispatch performs the one side effect a parsed intent permits:
// render prose, run a shell command, or save and run a script.
//
// Command and script contents arrive exactly as the model produced them;
// nothing here filters or sandboxes what gets executed. That is the
// tool's accepted-risk boundary, the same one the system prompt warns the
// model about.
package dispatch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/p90ai/p90/internal/intent"
	"github.com/p90ai/p90/internal/runtime"
	"github.com/p90ai/p90/internal/ui"
)

// DefaultInterpreter runs saved scripts, matching the .py default the
// dispatcher appends to extension-less script names.
const DefaultInterpreter = "python"

const scriptExtension = ".py"

// Outcome records what dispatching an intent did. Exit codes and stderr
// from executed commands are data here, never dispatch failures.
type Outcome struct {
	Kind       intent.Kind
	Rendered   string
	Command    string
	ScriptPath string
	ExitCode   int
	Stdout     string
	Stderr     string
}

// ShellRunner matches runtime.RunShell; tests substitute a fake.
type ShellRunner func(ctx context.Context, command string) (runtime.Result, error)

// ScriptRunner invokes the interpreter on a saved script directly, with
// no shell in between, so scripts dirs containing spaces stay one
// argument. Tests substitute a fake.
type ScriptRunner func(ctx context.Context, interpreter, path string) (runtime.Result, error)

// Dispatcher is constructed with its collaborators spelled out so tests
// can run it against a temp directory and a stub shell.
type Dispatcher struct {
	ScriptsDir  string
	Interpreter string
	Run         ShellRunner
	RunScript   ScriptRunner
	Render      func(string) string
	Out         io.Writer
	Err         io.Writer
}

func New(scriptsDir string) *Dispatcher {
	return &Dispatcher{
		ScriptsDir:  scriptsDir,
		Interpreter: DefaultInterpreter,
		Run:         runtime.RunShell,
		RunScript:   runScript,
		Render:      ui.RenderMarkdown,
		Out:         os.Stdout,
		Err:         os.Stderr,
	}
}

func runScript(ctx context.Context, interpreter, path string) (runtime.Result, error) {
	return runtime.RunArgs(ctx, interpreter, path)
}

// Dispatch performs the side effect for it. The returned error is
// reserved for filesystem failures while saving a script and for a shell
// that could not be started; a command that ran and failed is reported
// through the Outcome and the printed stderr, not as an error.
func (d *Dispatcher) Dispatch(ctx context.Context, it intent.Intent) (Outcome, error) {
	switch it.Kind {
	case intent.KindCommand:
		return d.execute(ctx, it.Command, Outcome{Kind: intent.KindCommand})
	case intent.KindScript:
		return d.saveAndRun(ctx, it)
	default:
		rendered := d.Render(it.Content)
		fmt.Fprintln(d.Out, rendered)
		return Outcome{Kind: intent.KindText, Rendered: rendered}, nil
	}
}

func (d *Dispatcher) saveAndRun(ctx context.Context, it intent.Intent) (Outcome, error) {
	outcome := Outcome{Kind: intent.KindScript}

	name := ensureScriptExtension(it.ScriptName)
	if err := os.MkdirAll(d.ScriptsDir, 0o755); err != nil {
		return outcome, fmt.Errorf("could not create scripts dir: %w", err)
	}
	path := filepath.Join(d.ScriptsDir, name)
	if err := os.WriteFile(path, []byte(it.ScriptBody), 0o644); err != nil {
		return outcome, fmt.Errorf("could not write script %s: %w", name, err)
	}
	outcome.ScriptPath = path
	fmt.Fprintf(d.Out, "Saved script to %s\n", ui.Path(path))

	outcome.Command = d.interpreter() + " " + path
	fmt.Fprintf(d.Out, "Executing: %s\n", outcome.Command)

	result, err := d.RunScript(ctx, d.interpreter(), path)
	if err != nil {
		return outcome, fmt.Errorf("could not run script: %w", err)
	}
	return d.report(outcome, result), nil
}

func (d *Dispatcher) execute(ctx context.Context, command string, outcome Outcome) (Outcome, error) {
	outcome.Command = command
	fmt.Fprintf(d.Out, "Executing: %s\n", command)

	result, err := d.Run(ctx, command)
	if err != nil {
		return outcome, fmt.Errorf("could not run command: %w", err)
	}
	return d.report(outcome, result), nil
}

func (d *Dispatcher) report(outcome Outcome, result runtime.Result) Outcome {
	outcome.ExitCode = result.ExitCode
	outcome.Stdout = result.Stdout
	outcome.Stderr = result.Stderr

	if result.Stdout != "" {
		fmt.Fprint(d.Out, result.Stdout)
	}
	if result.Stderr != "" {
		fmt.Fprintln(d.Err, ui.StderrBlock(result.Stderr))
	}
	return outcome
}

func (d *Dispatcher) interpreter() string {
	if d.Interpreter != "" {
		return d.Interpreter
	}
	return DefaultInterpreter
}

func ensureScriptExtension(name string) string {
	if filepath.Ext(name) == "" {
		return name + scriptExtension
	}
	return name
}
