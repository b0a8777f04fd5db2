package main

import (
	"os"

	"github.com/fleetfin-dev/fleetfin/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
