package main

import (
	"os"

	"github.com/fincast-dev/fincast/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
