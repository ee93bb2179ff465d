package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/charlie0129/fakedev/pkg/client"
	"github.com/charlie0129/fakedev/pkg/hal"
)

var (
	logLevel       = "info"
	unixSocketPath = "/var/run/fakedev.sock"
	configPath     = "/etc/fakedev.json"
)

var (
	gBasic        = "Basic:"
	gModules      = "Modules:"
	gAdvanced     = "Advanced:"
	gInstallation = "Installation:"
	commandGroups = []string{
		gBasic,
		gModules,
		gAdvanced,
		gInstallation,
	}
)

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	return nil
}

func handleCmdError(err error) {
	switch {
	case errors.Is(err, client.ErrDaemonNotRunning):
		fmt.Fprintln(os.Stderr, "\nError: fakedev daemon is not running")
		fmt.Fprintf(os.Stderr, "Start it with 'fakedev daemon' or check --daemon-socket (%s)\n", unixSocketPath)
	case errors.Is(err, client.ErrPermissionDenied):
		fmt.Fprintln(os.Stderr, "\nError: Permission Denied")
		fmt.Fprintln(os.Stderr, "  - Try running the command again with 'sudo'")
		fmt.Fprintln(os.Stderr, "  - Or set allowNonRootAccess in the config file and restart the daemon")
	case errors.Is(err, client.ErrNotFound):
		fmt.Fprintln(os.Stderr, "\nError: the module is not open in the daemon")
		fmt.Fprintln(os.Stderr, "Run 'fakedev modules' to see module states, or 'fakedev battery reopen'")
	case errors.Is(err, hal.ErrNotImplemented):
		fmt.Fprintln(os.Stderr, "\nError: the emulated device does not implement this operation")
	}
}

func main() {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		handleCmdError(err)
		os.Exit(1)
	}
}

func newClient() *client.Client {
	return client.NewClient(unixSocketPath)
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fakedev",
		Short: "fakedev emulates battery, charger and touchpanel devices",
		Long: `fakedev emulates battery, charger and touchpanel devices for systems
running without real power hardware.

The battery reports values provisioned into a directory of flat files,
the charger reports a fixed connected state, and touchpanel events can be
synthesized for testing input consumers.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setupLogger()
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVar(&configPath, "config", configPath, "config file path")
	globalFlags.StringVar(&unixSocketPath, "daemon-socket", unixSocketPath, "fakedev daemon unix socket path")

	for _, i := range commandGroups {
		cmd.AddGroup(&cobra.Group{
			ID:    i,
			Title: i,
		})
	}

	cmd.AddCommand(
		NewDaemonCommand(),
		NewVersionCommand(),
		NewStatusCommand(),
		NewModulesCommand(),
		NewBatteryCommand(),
		NewChargerCommand(),
		NewTouchpanelCommand(),
		NewProvisionCommand(),
		NewEventsCommand(),
		NewInstallCommand(),
		NewUninstallCommand(),
	)

	return cmd
}
