package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/p90ai/p90/internal/config"
)

// newSetupCmd walks through the two settings a fresh install needs: the
// OpenRouter API key and the model.
func newSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Interactively set the API key and model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := config.LoadOrCreate()
			if err != nil {
				return err
			}

			key := cfg.OpenRouterAPIKey
			model := cfg.Model
			form := huh.NewForm(
				huh.NewGroup(
					huh.NewInput().
						Title("OpenRouter API key").
						Description("From openrouter.ai/keys; stored in config.toml").
						EchoMode(huh.EchoModePassword).
						Value(&key),
					huh.NewInput().
						Title("Model").
						Description("Any OpenRouter model id").
						Value(&model),
				),
			)
			if err := form.Run(); err != nil {
				return err
			}

			cfg.OpenRouterAPIKey = strings.TrimSpace(key)
			cfg.Model = strings.TrimSpace(model)
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved to %s\n", path)
			return nil
		},
	}
}
