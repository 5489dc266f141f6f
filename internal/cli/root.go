// Package cli wires the cobra command tree: the default request flow plus
// the config and script management commands around it.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/p90ai/p90/internal/appdirs"
	"github.com/p90ai/p90/internal/config"
	"github.com/p90ai/p90/internal/dispatch"
	"github.com/p90ai/p90/internal/editor"
	"github.com/p90ai/p90/internal/openrouter"
	"github.com/p90ai/p90/internal/prompt"
	"github.com/p90ai/p90/internal/session"
	"github.com/p90ai/p90/internal/ui"
)

// Execute is the entry point for the CLI.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.ErrorLine(err.Error()))
		os.Exit(1)
	}
}

// NewRootCmd wires the cobra tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "p90 [request...]",
		Short: "Ask a model for an answer, a shell command, or a script",
		Long: "p90 forwards a free-text request to an OpenRouter chat model and acts\n" +
			"on the structured reply: plain answers are rendered, shell commands are\n" +
			"executed, and small scripts are saved and run.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequest(cmd, args)
		},
	}

	root.AddCommand(
		newConfigCmd(),
		newResetCmd(),
		newSetupCmd(),
		newScriptsCmd(),
		newDeleteCmd(),
	)
	return root
}

func runRequest(cmd *cobra.Command, args []string) error {
	cfg, _, err := config.LoadOrCreate()
	if err != nil {
		return err
	}
	scriptsDir, err := appdirs.ScriptsDir()
	if err != nil {
		return err
	}

	driver := &session.Driver{
		AuthHeaders: cfg.AuthHeaders,
		ModelParams: cfg.ModelParameters,
		SystemPrompt: func() (string, error) {
			content, err := prompt.LoadOrCreate()
			if err != nil {
				return "", err
			}
			return prompt.Hydrate(content), nil
		},
		CaptureInput: editor.CaptureText,
		Completer:    openrouter.NewClient(""),
		Dispatcher:   dispatch.New(scriptsDir),
		Out:          cmd.OutOrStdout(),
		Err:          cmd.ErrOrStderr(),
	}
	return driver.Run(cmd.Context(), args)
}
