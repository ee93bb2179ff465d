package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/charlie0129/fakedev/pkg/charger"
)

func setCharging(enable bool) (string, error) {
	s, err := newClient().SetCharging(enable)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("charging=%t", s.Charging), nil
}

func NewChargerCommand() *cobra.Command {
	cmd := newEnableDisableCommand(
		"charger",
		"charging",
		`Query and control the emulated charger.

The charger always reports a connected state. Enabling or disabling charging
is accepted but does not change the reported state.`,
		func() (string, error) { return setCharging(true) },
		func() (string, error) { return setCharging(false) },
	)
	cmd.GroupID = gModules

	cmd.AddCommand(
		&cobra.Command{
			Use:   "status",
			Short: "Print the charger status",
			RunE: func(cmd *cobra.Command, _ []string) error {
				s, err := newClient().GetChargerStatus()
				if err != nil {
					return fmt.Errorf("failed to get charger status: %w", err)
				}
				printChargerStatus(cmd, s)
				return nil
			},
		},
		&cobra.Command{
			Use:   "event",
			Short: "Print the pending charger event",
			RunE: func(cmd *cobra.Command, _ []string) error {
				e, err := newClient().GetChargerEvent()
				if err != nil {
					return fmt.Errorf("failed to get charger event: %w", err)
				}
				cmd.Printf("Event: %s\n", bold("%s", e))
				return nil
			},
		},
	)

	return cmd
}

func printChargerStatus(cmd *cobra.Command, s charger.Status) {
	cmd.Printf("  Connected: %s\n", bool2Text(s.Connected))
	cmd.Printf("  Powered: %s\n", bool2Text(s.Powered))
	cmd.Printf("  Max current: %s\n", bold("%d mA", s.MaxCurrent))
	if s.DockSerialNumber != "" {
		cmd.Printf("  Dock serial number: %s\n", bold("%s", s.DockSerialNumber))
	}
	cmd.Printf("  Charging: %s\n", bool2Text(s.Charging))
}
