package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/p90ai/p90/internal/config"
	"github.com/p90ai/p90/internal/editor"
	"github.com/p90ai/p90/internal/prompt"
)

// newConfigCmd opens the model and sampler config in the user's editor,
// creating it from defaults first when needed.
func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Open the config file in your editor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, path, err := config.LoadOrCreate()
			if err != nil {
				return err
			}
			return editor.OpenFile(path)
		},
	}
}

// newResetCmd restores config and system prompt defaults. The stored API
// key survives the reset.
func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset config and system prompt to defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, path, err := config.LoadOrCreate()
			if err != nil {
				return err
			}
			if _, err := config.Reset(path); err != nil {
				return err
			}
			if err := prompt.Reset(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Config and system prompt reset to defaults (API key preserved)")
			return nil
		},
	}
}
