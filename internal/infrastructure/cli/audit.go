package cli

import (
	"fmt"
	"os"

	"github.com/specvet/specvet/internal/infrastructure/wiring"
	"github.com/spf13/cobra"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect and verify the audit trail",
}

var auditTimelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Print the audit trail in order",
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := getProjectRoot()
		if err != nil {
			return fmt.Errorf("resolve project path: %w", err)
		}
		workspace := wiring.NewWorkspace(cwd)

		events, err := workspace.Audit.GetTimeline()
		if err != nil {
			return err
		}
		for _, e := range events {
			fmt.Printf("%s  %-18s %-8s %s\n",
				e.Timestamp.Format("2006-01-02 15:04:05"), e.Action, e.Actor, e.ID)
		}
		return nil
	},
}

var auditVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify the integrity of the audit hash chain",
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := getProjectRoot()
		if err != nil {
			return fmt.Errorf("resolve project path: %w", err)
		}
		workspace := wiring.NewWorkspace(cwd)

		violations, err := workspace.Audit.VerifyIntegrity()
		if err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}

		if len(violations) == 0 {
			fmt.Println("Audit trail is intact and verified.")
			return nil
		}

		fmt.Printf("Found %d integrity violations:\n", len(violations))
		for _, v := range violations {
			fmt.Printf("  - %s\n", v)
		}
		os.Exit(1)
		return nil
	},
}

func init() {
	auditCmd.AddCommand(auditTimelineCmd)
	auditCmd.AddCommand(auditVerifyCmd)
	RootCmd.AddCommand(auditCmd)
}
