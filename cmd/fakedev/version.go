package main

import (
	"github.com/spf13/cobra"

	"github.com/charlie0129/fakedev/pkg/version"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("%s %s\n", version.Version, version.GitCommit)

			if daemonVersion, err := newClient().GetVersion(); err == nil {
				cmd.Printf("daemon: %s\n", daemonVersion)
			}
		},
	}
}
