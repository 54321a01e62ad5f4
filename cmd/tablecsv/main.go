// Package main is the entry point for the tablecsv CLI.
package main

import (
	"os"

	"github.com/jmylchreest/tablecsv/cmd/tablecsv/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
