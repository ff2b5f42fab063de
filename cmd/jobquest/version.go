package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pakkurthi/jobquest-client/internal/platform/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show build information",
	// The default PersistentPreRun wires the whole service; version needs none
	// of it and must work without a reachable backend.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {},
	Run: func(cmd *cobra.Command, args []string) {
		info := version.Get()
		fmt.Printf("jobquest %s (commit %s, built %s, %s)\n",
			info.Version, info.Commit, info.BuildTime, info.GoVersion)
	},
}
