package cli

import (
	"fmt"

	"github.com/specvet/specvet/internal/infrastructure/wiring"
	"github.com/spf13/cobra"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <spec-id>",
	Short: "Run adversarial review and persist outcome quality scores",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := getProjectRoot()
		if err != nil {
			return fmt.Errorf("resolve project path: %w", err)
		}
		workspace := wiring.NewWorkspace(cwd)

		// The evaluator grades the accepted artifact, so the document
		// must exist; the scored layers come from the working draft it
		// was compiled from.
		doc, err := workspace.Repo.LoadDocument(args[0])
		if err != nil {
			return MapError(err)
		}
		draft, err := workspace.Repo.LoadDraft()
		if err != nil {
			return MapError(err)
		}

		review := workspace.Evaluator.RunAdversarialReview(cmd.Context(), draft)
		scores := workspace.Evaluator.Evaluate(doc.ID, draft, review)

		fmt.Printf("Quality scores for %s v%s:\n", doc.Feature, doc.Version)
		fmt.Printf("  completeness: %d\n", scores.CompletenessScore)
		fmt.Printf("  grounding:    %d\n", scores.GroundingScore)
		fmt.Printf("  testability:  %d\n", scores.TestabilityScore)
		fmt.Printf("  adversarial:  %d\n", scores.AdversarialScore)
		fmt.Printf("  overall:      %d\n", scores.OverallScore)

		if !review.Approved {
			fmt.Println("\nAdversarial reviewer did not approve:")
			for _, issue := range review.Issues {
				fmt.Printf("  [%s] %s\n", issue.Severity, issue.Description)
			}
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(evaluateCmd)
}
