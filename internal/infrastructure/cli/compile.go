package cli

import (
	"fmt"

	"github.com/specvet/specvet/internal/infrastructure/wiring"
	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile <feature>",
	Short: "Compile the draft spec into a versioned, hashed document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := getProjectRoot()
		if err != nil {
			return fmt.Errorf("resolve project path: %w", err)
		}
		workspace := wiring.NewWorkspace(cwd)

		doc, err := workspace.Compiler.Compile(args[0])
		if err != nil {
			return MapError(err)
		}

		fmt.Printf("Compiled %s v%s\n", doc.Feature, doc.Version)
		fmt.Printf("  id:   %s\n", doc.ID)
		fmt.Printf("  hash: %s\n", doc.Hash)
		fmt.Printf("  requirements: %d, constraints: %d, risks: %d\n",
			len(doc.Layers.Requirements), len(doc.Layers.Constraints), len(doc.Layers.Risks))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(compileCmd)
}
