package main

import (
	"fmt"
	"os"

	"github.com/iudanet/matchsync/internal/cli"
	"github.com/iudanet/matchsync/internal/cli/iocli"
	"github.com/iudanet/matchsync/internal/cli/matchctl"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	info := cli.BuildInfo{Version: Version, BuildDate: BuildDate, GitCommit: GitCommit}
	cmd := matchctl.NewRootCommand(info, iocli.NewStdio(os.Stdin, os.Stdout, os.Stderr))
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
