package cli

import (
	"fmt"

	"github.com/specvet/specvet/internal/infrastructure/wiring"
	"github.com/spf13/cobra"
)

var approvedBy string

var approveCmd = &cobra.Command{
	Use:   "approve <spec-id>",
	Short: "Lock a spec document; locked specs are write-once",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := getProjectRoot()
		if err != nil {
			return fmt.Errorf("resolve project path: %w", err)
		}
		workspace := wiring.NewWorkspace(cwd)

		receipt, err := workspace.Approval.Approve(args[0], approvedBy)
		if err != nil {
			return MapError(err)
		}

		fmt.Printf("Locked %s\n", receipt.SpecID)
		fmt.Printf("  approved by: %s at %s\n", receipt.ApprovedBy, receipt.ApprovedAt.Format("2006-01-02 15:04:05"))
		fmt.Printf("  content hash: %s\n", receipt.ContentHash[:12])
		fmt.Printf("  audit entry:  %s\n", receipt.AuditLogID)
		return nil
	},
}

func init() {
	approveCmd.Flags().StringVar(&approvedBy, "by", "", "approver identity (required)")
	_ = approveCmd.MarkFlagRequired("by")
	RootCmd.AddCommand(approveCmd)
}
