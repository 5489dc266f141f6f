// Package ui renders p90's terminal output: markdown answers, styled
// error and stderr lines, and the saved-scripts table.
package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const wordWrap = 100

// RenderMarkdown formats model prose for the terminal. When the renderer
// cannot be built the content is returned as-is; rendering is cosmetic
// and must never fail the run.
func RenderMarkdown(content string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return content
	}
	out, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}
