// Package editor captures interactive input and opens files through the
// user's preferred editor. Both calls block until the editor exits.
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

const fallbackEditor = "nano"

// Editor returns $EDITOR, falling back to nano.
func Editor() string {
	if editor := strings.TrimSpace(os.Getenv("EDITOR")); editor != "" {
		return editor
	}
	return fallbackEditor
}

// CaptureText opens a temp file in the editor and returns its trimmed
// contents once the editor exits. The temp file is removed afterwards.
func CaptureText() (string, error) {
	tempFile, err := os.CreateTemp("", "p90-input-*.txt")
	if err != nil {
		return "", fmt.Errorf("could not create input file: %w", err)
	}
	path := tempFile.Name()
	defer os.Remove(path)
	if err := tempFile.Close(); err != nil {
		return "", fmt.Errorf("could not close input file: %w", err)
	}

	if err := OpenFile(path); err != nil {
		return "", err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("could not read input file: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

// OpenFile runs the editor on path, wired to the terminal.
func OpenFile(path string) error {
	cmd := exec.Command(Editor(), path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor %s failed: %w", Editor(), err)
	}
	return nil
}
