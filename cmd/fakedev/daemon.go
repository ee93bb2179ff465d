package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/fakedev/pkg/client"
	"github.com/charlie0129/fakedev/pkg/daemon"
	"github.com/charlie0129/fakedev/pkg/version"
)

// NewDaemonCommand .
func NewDaemonCommand() *cobra.Command {
	var alwaysAllowNonRootAccess bool

	cmd := &cobra.Command{
		Use:     "daemon",
		Short:   "Run fakedev daemon in the foreground",
		GroupID: gAdvanced,
		Long: `Run fakedev daemon in the foreground.

The daemon opens the charger and the battery, then serves them on the unix
socket given by --daemon-socket. A socket left behind by a daemon that is no
longer running is removed first.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := clearStaleSocket(unixSocketPath); err != nil {
				return err
			}

			logrus.WithFields(logrus.Fields{
				"version": version.Version,
				"commit":  version.GitCommit,
				"socket":  unixSocketPath,
				"config":  configPath,
			}).Info("fakedev daemon starting")

			return daemon.Run(configPath, unixSocketPath, alwaysAllowNonRootAccess)
		},
	}

	cmd.Flags().BoolVar(&alwaysAllowNonRootAccess, "always-allow-non-root-access", false,
		"Always allow non-root users to access the daemon.")

	return cmd
}

func clearStaleSocket(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	_, err := client.NewClient(path).GetVersion()
	switch {
	case err == nil:
		return fmt.Errorf("another daemon is already listening on %s", path)
	case errors.Is(err, client.ErrDaemonNotRunning):
		logrus.Warnf("removing stale socket %s", path)
		return os.Remove(path)
	default:
		return fmt.Errorf("failed to check existing socket %s: %w", path, err)
	}
}
