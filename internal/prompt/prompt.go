// Package prompt loads the system prompt and hydrates its environment
// placeholders before each completion request.
package prompt

import (
	"errors"
	"fmt"
	"os"
	goruntime "runtime"
	"strings"
	"time"

	"github.com/p90ai/p90/internal/appdirs"
	"github.com/p90ai/p90/internal/runtime"
)

var nowFunc = time.Now

// LoadOrCreate returns the raw system prompt, seeding system_prompt.md
// with the default on first run.
func LoadOrCreate() (string, error) {
	path, err := appdirs.SystemPromptPath()
	if err != nil {
		return "", err
	}
	return loadOrCreate(path)
}

func loadOrCreate(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err == nil {
		return string(raw), nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("could not read system prompt: %w", err)
	}
	if _, err := appdirs.EnsureConfigDir(); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(defaultSystemPrompt), 0o600); err != nil {
		return "", fmt.Errorf("could not write default system prompt: %w", err)
	}
	return defaultSystemPrompt, nil
}

// Reset overwrites the stored prompt with the shipped default.
func Reset() error {
	path, err := appdirs.SystemPromptPath()
	if err != nil {
		return err
	}
	if _, err := appdirs.EnsureConfigDir(); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(defaultSystemPrompt), 0o600); err != nil {
		return fmt.Errorf("could not reset system prompt: %w", err)
	}
	return nil
}

// Hydrate substitutes the ${{OS}}, ${{CWD}}, ${{DATE}} and ${{SHELL}}
// placeholders with the current environment.
func Hydrate(content string) string {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "unknown"
	}
	replacements := map[string]string{
		"${{OS}}":    goruntime.GOOS,
		"${{CWD}}":   cwd,
		"${{DATE}}":  nowFunc().Format("2006-01-02 15:04:05"),
		"${{SHELL}}": runtime.Shell(),
	}
	for placeholder, value := range replacements {
		content = strings.ReplaceAll(content, placeholder, value)
	}
	return content
}
