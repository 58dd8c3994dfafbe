package cli

import (
	"fmt"

	"github.com/specvet/specvet/pkg/storage"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a specvet workspace in the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := getProjectRoot()
		if err != nil {
			return fmt.Errorf("resolve project path: %w", err)
		}

		repo := storage.NewFilesystemRepository(cwd)
		if repo.IsInitialized() {
			fmt.Println("Workspace already initialized.")
			return nil
		}
		if err := repo.Initialize(); err != nil {
			return err
		}

		fmt.Println("Initialized empty specvet workspace in .specvet/")
		fmt.Println("Put your draft spec in .specvet/spec.yaml and run 'specvet simulate'.")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(initCmd)
}
