package main

import (
	"fmt"
	"os"

	"github.com/temirov/gitscan/cmd/cli"
)

const (
	exitErrorTemplateConstant = "gitscan: %v\n"
)

// main executes the gitscan command-line application.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(1)
	}
}
