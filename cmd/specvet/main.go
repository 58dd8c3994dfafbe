package main

import (
	"os"

	"github.com/specvet/specvet/internal/infrastructure/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
