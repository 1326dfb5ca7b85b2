package main

import (
	"os"

	"github.com/MARTINA-MOUSA/Retail-Analytics-Copilot/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		// Cobra already printed the error.
		os.Exit(1)
	}
}
