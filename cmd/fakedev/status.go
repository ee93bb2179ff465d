package main

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/charlie0129/fakedev/pkg/battery"
	"github.com/charlie0129/fakedev/pkg/charger"
	"github.com/charlie0129/fakedev/pkg/client"
	"github.com/charlie0129/fakedev/pkg/daemon"
)

type statusData struct {
	Modules []daemon.ModuleInfo `json:"modules"`
	Battery *battery.Status     `json:"battery,omitempty"`
	Charger *charger.Status     `json:"charger,omitempty"`
}

// fetchStatusData gathers all data required for the status command from the daemon.
// A module that is not open is left out instead of failing the whole command.
func fetchStatusData(c *client.Client) (*statusData, error) {
	modules, err := c.GetModules()
	if err != nil {
		return nil, fmt.Errorf("failed to get modules: %w", err)
	}

	data := &statusData{Modules: modules}

	for _, m := range modules {
		if m.State != "open" {
			continue
		}
		switch m.Name {
		case battery.Name:
			s, err := c.GetBatteryStatus()
			if err != nil {
				return nil, fmt.Errorf("failed to get battery status: %w", err)
			}
			data.Battery = &s
		case charger.Name:
			s, err := c.GetChargerStatus()
			if err != nil {
				return nil, fmt.Errorf("failed to get charger status: %w", err)
			}
			data.Charger = &s
		}
	}

	return data, nil
}

func NewStatusCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "status",
		GroupID: gBasic,
		Short:   "Get the current status of the emulated devices",
		Long:    `Get module states, the battery snapshot and the charger status.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := fetchStatusData(newClient())
			if err != nil {
				return err
			}

			if asJSON {
				b, err := json.MarshalIndent(data, "", "  ")
				if err != nil {
					return err
				}
				cmd.Println(string(b))
				return nil
			}

			cmd.Println(bold("Modules:"))
			printModules(cmd, data.Modules)
			cmd.Println()

			cmd.Println(bold("Battery status:"))
			if data.Battery != nil {
				printBatteryStatus(cmd, *data.Battery)
			} else {
				cmd.Println("  battery is not open")
			}
			cmd.Println()

			cmd.Println(bold("Charger status:"))
			if data.Charger != nil {
				printChargerStatus(cmd, *data.Charger)
			} else {
				cmd.Println("  charger is not open")
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print status as JSON")

	return cmd
}

func NewModulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "modules",
		GroupID: gBasic,
		Short:   "List hosted modules and their registered methods",
		RunE: func(cmd *cobra.Command, _ []string) error {
			modules, err := newClient().GetModules()
			if err != nil {
				return fmt.Errorf("failed to get modules: %w", err)
			}

			printModules(cmd, modules)
			for _, m := range modules {
				if len(m.Methods) == 0 {
					continue
				}
				cmd.Printf("\n%s methods:\n", bold("%s", m.Name))
				for _, name := range m.Methods {
					cmd.Printf("  %s\n", name)
				}
			}

			return nil
		},
	}
}

func printModules(cmd *cobra.Command, modules []daemon.ModuleInfo) {
	for _, m := range modules {
		state := m.State
		if state == "open" {
			state = color.GreenString(state)
		} else {
			state = color.RedString(state)
		}
		cmd.Printf("  %s: %s (handle %s)\n", m.Name, bold("%s", state), m.Handle)
	}
}

func printBatteryStatus(cmd *cobra.Command, s battery.Status) {
	cmd.Printf("  Present: %s\n", bool2Text(s.Present))
	if !s.Present {
		return
	}

	state := "not charging"
	if s.Charging {
		state = color.GreenString("charging")
	} else if s.AvgCurrent < 0 {
		state = color.RedString("discharging")
	}
	cmd.Printf("  State: %s\n", bold("%s", state))
	cmd.Printf("  Current charge: %s\n", bold("%d%%", s.Percentage))
	cmd.Printf("  Temperature: %s\n", bold("%d °C", s.Temperature))
	cmd.Printf("  Voltage: %s\n", bold("%d mV", s.Voltage))
	cmd.Printf("  Current: %s\n", bold("%d mA", s.Current))
	cmd.Printf("  Average current: %s\n", bold("%d mA", s.AvgCurrent))
	cmd.Printf("  Capacity: %s\n", bold("%.1f mAh", s.Capacity))
	cmd.Printf("  Raw capacity: %s\n", bold("%.1f mAh", s.CapacityRaw))
	cmd.Printf("  Full capacity at 40 °C: %s\n", bold("%.1f mAh", s.CapacityFull40))
	cmd.Printf("  Age: %s\n", bold("%.1f%%", s.Age))
}
