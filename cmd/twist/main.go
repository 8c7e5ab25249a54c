// SPDX-License-Identifier: MIT

// Command twist searches periodic approximants of twisted bilayers.
package main

import (
	"os"

	"github.com/pterm/pterm"

	"github.com/goirijo/casm-utilities-sub000/cmd/twist/commands"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
