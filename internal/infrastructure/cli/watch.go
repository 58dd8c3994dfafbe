package cli

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/specvet/specvet/internal/infrastructure/wiring"
	"github.com/specvet/specvet/pkg/storage"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run the simulation whenever the draft spec changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := getProjectRoot()
		if err != nil {
			return fmt.Errorf("resolve project path: %w", err)
		}
		workspace := wiring.NewWorkspace(cwd)

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("failed to create watcher: %w", err)
		}
		defer watcher.Close() //nolint:errcheck // best-effort close on shutdown

		specDir := filepath.Join(cwd, storage.SpecvetDir)
		if err := watcher.Add(specDir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", specDir, err)
		}

		draftPath := filepath.Join(specDir, storage.DraftFile)
		fmt.Printf("Watching %s for changes...\n", draftPath)

		for {
			select {
			case <-cmd.Context().Done():
				return nil
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if event.Name != draftPath || !event.Has(fsnotify.Write|fsnotify.Create) {
					continue
				}

				draft, err := workspace.Repo.LoadDraft()
				if err != nil {
					fmt.Printf("draft unreadable: %v\n", err)
					continue
				}

				result, err := workspace.Simulator.Simulate(cmd.Context(), draft)
				if err != nil {
					fmt.Printf("simulation failed: %v\n", err)
					continue
				}

				fmt.Println()
				printSimulation(result)
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				fmt.Printf("watch error: %v\n", err)
			}
		}
	},
}

func init() {
	RootCmd.AddCommand(watchCmd)
}
