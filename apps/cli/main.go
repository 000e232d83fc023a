package main

import (
	"os"

	"github.com/fatih/color"

	"github.com/trezcool/lifetrack/apps/cli/commands"
)

func main() {
	if err := commands.New(commands.Options{}).Execute(); err != nil {
		_, _ = color.New(color.FgRed).Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
