// Package session orchestrates one invocation: resolve the user's
// request, call the completion endpoint, parse the reply and dispatch
// the resulting intent. Each run is one linear pass with no retained
// state and no retries.
package session

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/p90ai/p90/internal/dispatch"
	"github.com/p90ai/p90/internal/intent"
	"github.com/p90ai/p90/internal/ui"
)

// Completer is the remote chat endpoint.
type Completer interface {
	Complete(ctx context.Context, system, user string, headers map[string]string, params map[string]any) (string, error)
}

// Dispatcher consumes the parsed intent.
type Dispatcher interface {
	Dispatch(ctx context.Context, it intent.Intent) (dispatch.Outcome, error)
}

// Driver holds the collaborators for one run, passed in explicitly so
// the sequencing can be tested without the real filesystem or network.
type Driver struct {
	AuthHeaders  func() map[string]string
	ModelParams  func() map[string]any
	SystemPrompt func() (string, error)
	CaptureInput func() (string, error)
	Completer    Completer
	Dispatcher   Dispatcher
	Out          io.Writer
	Err          io.Writer
}

// Run performs the single pass. Missing credentials, empty input and
// completion failures are normal terminations reported to the user, not
// errors; only input-capture and dispatch filesystem failures propagate.
func (d *Driver) Run(ctx context.Context, args []string) error {
	headers := d.AuthHeaders()
	if len(headers) == 0 {
		fmt.Fprintln(d.Out, "OpenRouter API key not configured. Run 'p90 config' to set openrouter_api_key.")
		return nil
	}

	// Supplied args are the input; the editor opens only when there are
	// none at all.
	var input string
	if len(args) > 0 {
		input = strings.Join(args, " ")
	} else {
		captured, err := d.CaptureInput()
		if err != nil {
			return err
		}
		input = strings.TrimSpace(captured)
	}
	if strings.TrimSpace(input) == "" {
		fmt.Fprintln(d.Out, "No input provided")
		return nil
	}

	system, err := d.SystemPrompt()
	if err != nil {
		fmt.Fprintln(d.Err, ui.ErrorLine(fmt.Sprintf("Error: %v", err)))
		return nil
	}

	raw, err := d.Completer.Complete(ctx, system, input, headers, d.ModelParams())
	if err != nil {
		fmt.Fprintln(d.Err, ui.ErrorLine(fmt.Sprintf("Error: %v", err)))
		return nil
	}

	_, err = d.Dispatcher.Dispatch(ctx, intent.Parse(raw))
	return err
}
