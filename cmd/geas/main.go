package main

import (
	"os"

	"geas/cmd/geas/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
