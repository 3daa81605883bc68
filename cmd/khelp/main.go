// Package main is the entry point for the khelp CLI.
package main

import (
	"os"

	"github.com/thoreinstein/khelp/cmd/khelp/commands"
)

func main() {
	os.Exit(commands.Execute())
}
