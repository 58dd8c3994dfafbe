package cli

import (
	"fmt"
	"os"

	"github.com/specvet/specvet/internal/infrastructure/wiring"
	"github.com/specvet/specvet/pkg/domain/check"
	"github.com/specvet/specvet/pkg/domain/spec"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [file]",
	Short: "Run the pre-code quality simulation on a draft spec",
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := getProjectRoot()
		if err != nil {
			return fmt.Errorf("resolve project path: %w", err)
		}
		workspace := wiring.NewWorkspace(cwd)

		var draft *spec.ExecutableSpec
		if len(args) > 0 {
			draft, err = loadSpecFile(args[0])
		} else {
			draft, err = workspace.Repo.LoadDraft()
		}
		if err != nil {
			return MapError(err)
		}

		result, err := workspace.Simulator.Simulate(cmd.Context(), draft)
		if err != nil {
			return MapError(err)
		}

		printSimulation(result)

		if !result.Passed {
			os.Exit(1)
		}
		return nil
	},
}

func loadSpecFile(path string) (*spec.ExecutableSpec, error) {
	// #nosec G304 -- user-supplied CLI argument, read-only
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read spec file: %w", err)
	}
	var s spec.ExecutableSpec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse spec file: %w", err)
	}
	return &s, nil
}

func printSimulation(result *check.SimulationResult) {
	verdict := "FAILED"
	if result.Passed {
		verdict = "PASSED"
	}
	fmt.Printf("Simulation %s (coverage %d/100)\n\n", verdict, result.CoverageScore)

	printCheck("Completeness", result.Checks.Completeness)
	printCheck("Ambiguity", result.Checks.Ambiguity)
	printCheck("Contradiction", result.Checks.Contradiction)
	printCheck("Testability", result.Checks.Testability)

	fmt.Printf("\nScenarios: %d/%d estimated testable\n", result.PassedScenarios, result.TotalScenarios)
	for _, f := range result.Failures {
		fmt.Printf("  - %s: %s\n", f.Scenario, f.Reason)
	}

	if len(result.Suggestions) > 0 {
		fmt.Println("\nSuggestions:")
		for _, s := range result.Suggestions {
			fmt.Printf("  - %s\n", s)
		}
	}
}

func printCheck(name string, c check.CheckResult) {
	status := "fail"
	if c.Passed {
		status = "ok"
	}
	fmt.Printf("  %-14s %3d  [%s]\n", name, c.Score, status)
	for _, issue := range c.Issues {
		fmt.Printf("    ! %s\n", issue)
	}
}

func init() {
	RootCmd.AddCommand(simulateCmd)
}
