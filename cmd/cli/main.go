// Package main is the entry point for the cldurl CLI.
package main

import (
	"os"

	"cldurl/cmd/cli/cmd"
	"cldurl/internal/logging"
)

func main() {
	err := cmd.Execute()
	logging.Sync()
	if err != nil {
		os.Exit(1)
	}
}
