// Package main is the entry point for the dockman CLI.
//
// It delegates all functionality to the internal/cli package, which
// defines the cobra commands: the interactive session on the root
// command and the one-shot "list" subcommand.
package main

import (
	"github.com/shinji-kodama/dockman/internal/cli"
)

// version, commit, and date are set by GoReleaser at build time via
// ldflags. They provide binary identification for --version output.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	rootCmd := cli.NewRootCommand()
	cli.Execute(rootCmd)
}
