// Package main provides the motif CLI.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/motif/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
