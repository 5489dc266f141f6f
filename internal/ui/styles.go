package ui

import "github.com/charmbracelet/lipgloss"

var (
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	stderrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("178"))
	pathStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("45"))
)

// ErrorLine styles a single user-facing error message.
func ErrorLine(msg string) string {
	return errorStyle.Render(msg)
}

// StderrBlock highlights a child process's captured stderr stream.
func StderrBlock(stderr string) string {
	return stderrStyle.Render(stderr)
}

// Notice styles informational one-liners like "No scripts found".
func Notice(msg string) string {
	return noticeStyle.Render(msg)
}

// Path highlights a filesystem path in a message.
func Path(path string) string {
	return pathStyle.Render(path)
}
