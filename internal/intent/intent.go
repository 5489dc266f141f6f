// Package intent resolves a raw model reply into exactly one action.
//
// The model is instructed to answer with precisely one of three tag
// blocks:
//
//	<response>...free text...</response>
//	<cli>...shell command or pipeline...</cli>
//	<python-script>
//	  <script-name>name.py</script-name>
//	  <script-body>...script source...</script-body>
//	</python-script>
//
// Parse never fails: a reply matching none of the blocks degrades to a
// text intent carrying the reply verbatim. Command and script contents
// are passed through without inspection or sanitization; executing them
// is an accepted risk of the tool, not something this package guards
// against.
package intent

import (
	"regexp"
	"strings"
)

// Kind selects which Intent variant is populated.
type Kind int

const (
	KindText Kind = iota
	KindCommand
	KindScript
)

func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindScript:
		return "script"
	default:
		return "text"
	}
}

// Intent is the single parsed action for one model reply. Exactly one
// variant is active, selected by Kind; the other fields are zero.
type Intent struct {
	Kind       Kind
	Content    string // KindText
	Command    string // KindCommand
	ScriptName string // KindScript
	ScriptBody string // KindScript
}

func Text(content string) Intent {
	return Intent{Kind: KindText, Content: content}
}

func Command(command string) Intent {
	return Intent{Kind: KindCommand, Command: command}
}

func Script(name, body string) Intent {
	return Intent{Kind: KindScript, ScriptName: name, ScriptBody: body}
}

// Tag names are case-sensitive; (?s) lets bodies span newlines, and the
// non-greedy capture stops at the first closing tag.
var (
	responsePattern   = regexp.MustCompile(`(?s)<response>(.*?)</response>`)
	cliPattern        = regexp.MustCompile(`(?s)<cli>(.*?)</cli>`)
	scriptPattern     = regexp.MustCompile(`(?s)<python-script>(.*?)</python-script>`)
	scriptNamePattern = regexp.MustCompile(`(?s)<script-name>(.*?)</script-name>`)
	scriptBodyPattern = regexp.MustCompile(`(?s)<script-body>(.*?)</script-body>`)
)

// Parse resolves raw to one intent. Matching is ordered and first match
// wins: a <response> block beats <cli>, which beats <python-script>; only
// the first block of the winning type is read. The script sub-fields are
// scanned only inside the outer <python-script> capture, and both must be
// present or the block is ignored. Anything unmatched falls back to a
// text intent with raw unmodified.
func Parse(raw string) Intent {
	if m := responsePattern.FindStringSubmatch(raw); m != nil {
		return Text(strings.TrimSpace(m[1]))
	}
	if m := cliPattern.FindStringSubmatch(raw); m != nil {
		return Command(strings.TrimSpace(m[1]))
	}
	if m := scriptPattern.FindStringSubmatch(raw); m != nil {
		name := scriptNamePattern.FindStringSubmatch(m[1])
		body := scriptBodyPattern.FindStringSubmatch(m[1])
		if name != nil && body != nil {
			return Script(strings.TrimSpace(name[1]), strings.TrimSpace(body[1]))
		}
	}
	return Text(raw)
}
