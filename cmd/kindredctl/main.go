package main

import (
	"os"

	"github.com/kindred-ai/kindred/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
