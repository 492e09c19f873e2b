package main

import (
	"errors"
	"os"

	"github.com/Swochhanda14/frontbooth/internal/cli"
)

// These variables are set at build time via -ldflags
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

const (
	exitError   = 1
	exitBlocked = 2
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.BuildDate = date
	if err := cli.Execute(); err != nil {
		if errors.Is(err, cli.ErrBlocked) {
			os.Exit(exitBlocked)
		}
		os.Exit(exitError)
	}
}
