// Package main is the entry point for the pacewatch CLI.
package main

import (
	"os"

	"github.com/pacewatch/pacewatch/cmd/pacewatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
