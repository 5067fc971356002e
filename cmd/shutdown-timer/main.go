package main

import (
	"os"

	"shutdown-timer/internal/adapter/primary/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
