package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "specvet",
	Version: Version,
	Short:   "Vet executable specifications before code generation",
	Long: `Specvet decides whether a specification is ready to hand to an
autonomous coding agent. It scores completeness, ambiguity,
contradiction and testability, aggregates them into a pass/fail
simulation verdict, grades accepted specs after adversarial review,
and gates the one-way approval lock.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	return RootCmd.Execute()
}

func getProjectRoot() (string, error) {
	return os.Getwd()
}
