package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/fakedev/pkg/events"
)

func NewEventsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "events",
		Short:   "Follow module open and close events",
		GroupID: gAdvanced,
		Long: `Follow module open and close events from the daemon until interrupted.

The most recent events are printed first, so the current module states are
visible right away.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			ch, err := newClient().SubscribeEvents(ctx)
			if err != nil {
				return err
			}

			for ev := range ch {
				line, err := formatEvent(ev)
				if err != nil {
					logrus.WithField("event", ev.Name).Errorf("failed to decode event: %v", err)
					continue
				}
				cmd.Println(line)
			}

			return nil
		},
	}
}

func formatEvent(ev events.Event) (string, error) {
	switch ev.Name {
	case events.ModuleOpened, events.ModuleClosed:
	default:
		return fmt.Sprintf("%s %s", ev.Name, ev.Data), nil
	}

	p, err := events.DecodeAs[events.ModuleEvent](ev)
	if err != nil {
		return "", err
	}

	ts := time.Unix(p.Ts, 0).Format(time.Kitchen)
	if p.Error != "" {
		return fmt.Sprintf("%s %s %s: %s", ts, bold("%s", p.Module), color.RedString("open failed"), p.Error), nil
	}

	action := color.GreenString("opened")
	if ev.Name == events.ModuleClosed {
		action = color.YellowString("closed")
	}
	return fmt.Sprintf("%s %s %s (handle %s)", ts, bold("%s", p.Module), action, p.Handle), nil
}
