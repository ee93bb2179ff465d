package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func NewBatteryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "battery",
		Short:   "Query and control the emulated battery",
		GroupID: gModules,
	}

	fakeMode := newEnableDisableCommand(
		"fake-mode",
		"battery fake mode",
		`Get or set battery fake mode.

The emulated battery is always fake, so setting the mode is not supported
and the daemon reports it as not implemented.`,
		func() (string, error) { return newClient().SetFakeMode(true) },
		func() (string, error) { return newClient().SetFakeMode(false) },
	)
	fakeMode.RunE = func(cmd *cobra.Command, _ []string) error {
		enabled, err := newClient().GetFakeMode()
		if err != nil {
			return fmt.Errorf("failed to get fake mode: %w", err)
		}
		cmd.Printf("Fake mode: %s\n", bool2Text(enabled))
		return nil
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "status",
			Short: "Print the battery status snapshot",
			RunE: func(cmd *cobra.Command, _ []string) error {
				s, err := newClient().GetBatteryStatus()
				if err != nil {
					return fmt.Errorf("failed to get battery status: %w", err)
				}
				printBatteryStatus(cmd, s)
				return nil
			},
		},
		&cobra.Command{
			Use:   "ctia",
			Short: "Print the battery CTIA parameters",
			RunE: func(cmd *cobra.Command, _ []string) error {
				p, err := newClient().GetBatteryCTIA()
				if err != nil {
					return fmt.Errorf("failed to get CTIA parameters: %w", err)
				}
				cmd.Printf("  Charge min temperature: %s\n", bold("%d °C", p.ChargeMinTempC))
				cmd.Printf("  Charge max temperature: %s\n", bold("%d °C", p.ChargeMaxTempC))
				cmd.Printf("  Critical max temperature: %s\n", bold("%d °C", p.BatteryCritMaxTemp))
				cmd.Printf("  Skip authentication: %s\n", bool2Text(p.SkipBatteryAuthentication))
				return nil
			},
		},
		&cobra.Command{
			Use:   "authenticate",
			Short: "Authenticate the battery",
			RunE: func(cmd *cobra.Command, _ []string) error {
				ok, err := newClient().Authenticate()
				if err != nil {
					return fmt.Errorf("failed to authenticate battery: %w", err)
				}
				cmd.Printf("Authenticated: %s\n", bool2Text(ok))
				return nil
			},
		},
		&cobra.Command{
			Use:   "wakeup-percentage [percentage]",
			Short: "Set the wakeup percentage",
			Long: `Set the battery percentage at which the system is woken up.

This is a percentage from 0 to 100. The emulated battery does not support it.`,
			RunE: func(_ *cobra.Command, args []string) error {
				p, err := parseIntArg(args, "percentage")
				if err != nil {
					return err
				}

				ret, err := newClient().SetWakeupPercentage(p)
				if err != nil {
					return fmt.Errorf("failed to set wakeup percentage: %w", err)
				}

				if ret != "" {
					logrus.Infof("daemon responded: %s", ret)
				}

				return nil
			},
		},
		&cobra.Command{
			Use:   "reopen",
			Short: "Close and reopen the battery",
			Long: `Close and reopen the battery.

The battery values are provisioned and read again, using the current
configuration of the daemon. Handles held before the reopen become invalid.`,
			RunE: func(_ *cobra.Command, _ []string) error {
				h, err := newClient().ReopenBattery()
				if err != nil {
					return fmt.Errorf("failed to reopen battery: %w", err)
				}

				logrus.Infof("successfully reopened battery, new handle %s", h)

				return nil
			},
		},
		fakeMode,
	)

	return cmd
}
