package main

import (
	"os"

	"github.com/mmynk/tripsplit/cmd/tripctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
