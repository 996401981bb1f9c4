package main

import (
	"os"

	"quip/cmd/quip/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
