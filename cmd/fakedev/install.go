package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/fakedev/pkg/utils/service"
)

func NewInstallCommand() *cobra.Command {
	var allowNonRootAccess bool

	cmd := &cobra.Command{
		Use:     "install",
		Short:   "Install fakedev daemon as a systemd service",
		GroupID: gInstallation,
		Long: `Install fakedev daemon as a systemd service.

The unit runs this binary with the current --config and --daemon-socket
values and is started right away. Root privileges are required.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			err := service.Install(service.UnitDir, service.Options{
				ConfigPath:         configPath,
				SocketPath:         unixSocketPath,
				AllowNonRootAccess: allowNonRootAccess,
			})
			if err != nil {
				return fmt.Errorf("failed to install daemon: %w. Are you root?", err)
			}

			logrus.Infof("installation succeeded")

			return nil
		},
	}

	cmd.Flags().BoolVar(&allowNonRootAccess, "allow-non-root-access", false,
		"Allow non-root users to access fakedev daemon.")

	return cmd
}

func NewUninstallCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "uninstall",
		Short:   "Uninstall fakedev daemon",
		GroupID: gInstallation,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := service.Uninstall(service.UnitDir); err != nil {
				return fmt.Errorf("failed to uninstall daemon: %w", err)
			}

			logrus.Infof("successfully uninstalled fakedev")

			return nil
		},
	}
}
