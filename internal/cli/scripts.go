package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/p90ai/p90/internal/appdirs"
	"github.com/p90ai/p90/internal/ui"
)

const scriptExtension = ".py"

// newScriptsCmd lists the scripts the dispatcher has saved.
func newScriptsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scripts",
		Short: "List saved scripts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := appdirs.ScriptsDir()
			if err != nil {
				return err
			}
			listing, err := listScripts(dir)
			if err != nil {
				return err
			}
			if len(listing) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Notice("No scripts found"))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.ScriptsTable(listing))
			return nil
		},
	}
}

// newDeleteCmd removes one saved script by name, appending the script
// extension when the caller leaves it off.
func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <script-name>",
		Short: "Delete a saved script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := appdirs.ScriptsDir()
			if err != nil {
				return err
			}
			name, deleted, err := deleteScript(dir, args[0])
			if err != nil {
				return err
			}
			if !deleted {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Notice(fmt.Sprintf("Script %q does not exist in %s", name, dir)))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted script %q\n", name)
			return nil
		},
	}
}

func listScripts(dir string) ([][]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("could not read scripts dir: %w", err)
	}

	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		rows = append(rows, []string{
			entry.Name(),
			fmt.Sprintf("%d bytes", info.Size()),
			info.ModTime().Format("2006-01-02 15:04"),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i][0] < rows[j][0] })
	return rows, nil
}

func deleteScript(dir, name string) (string, bool, error) {
	if filepath.Ext(name) == "" {
		name += scriptExtension
	}
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return name, false, nil
		}
		return name, false, fmt.Errorf("could not stat script: %w", err)
	}
	if err := os.Remove(path); err != nil {
		return name, false, fmt.Errorf("could not delete script: %w", err)
	}
	return name, true, nil
}
