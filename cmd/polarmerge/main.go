// Package main provides the entry point for the polarmerge CLI tool.
package main

import (
	"github.com/polarmerge/polarmerge/cmd/polarmerge/cmd"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	cmd.Execute(version, commit, date, builtBy)
}
