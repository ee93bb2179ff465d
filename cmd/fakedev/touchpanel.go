package main

import (
	"encoding/json"
	"time"

	"github.com/spf13/cobra"

	"github.com/charlie0129/fakedev/pkg/touchpanel"
)

func NewTouchpanelCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "touchpanel",
		Short:   "Synthesize touchpanel input events",
		GroupID: gModules,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "tap [x] [y]",
		Short: "Print the input events of a single tap",
		Long: `Print the input events of a single finger tapping (x, y), as JSON.

The finger is lifted 50ms after touching down.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			xy, err := parseInt32Args(args, "x", "y")
			if err != nil {
				return err
			}

			events := touchpanel.Tap(xy[0], xy[1], time.Now())

			b, err := json.MarshalIndent(events, "", "  ")
			if err != nil {
				return err
			}
			cmd.Println(string(b))

			return nil
		},
	})

	return cmd
}
