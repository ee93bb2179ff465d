package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/fakedev/pkg/config"
	"github.com/charlie0129/fakedev/pkg/source"
)

func NewProvisionCommand() *cobra.Command {
	var kind, dir, script, profile string

	cmd := &cobra.Command{
		Use:     "provision",
		Short:   "Provision battery value files without the daemon",
		GroupID: gAdvanced,
		Long: `Provision battery value files without the daemon.

Runs the provisioner selected by the config file. Flags override the
corresponding config values. Run 'fakedev battery reopen' afterwards for a
running daemon to pick up the new values.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := config.NewFile(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			f := cmd.Flags()
			if f.Changed("provisioner") {
				if err := validateProvisionerKind(kind); err != nil {
					return err
				}
				conf.SetProvisioner(kind)
			}
			if f.Changed("battery-dir") {
				conf.SetBatteryDir(dir)
			}
			if f.Changed("script") {
				conf.SetProvisionScript(script)
			}
			if f.Changed("profile") {
				conf.SetProfilePath(profile)
			}

			p, err := config.NewProvisioner(conf)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			logrus.WithFields(conf.LogrusFields()).Info("provisioning battery values")
			if err := p.Provision(ctx); err != nil {
				return fmt.Errorf("failed to provision battery values: %w", err)
			}

			logrus.Infof("successfully provisioned battery values in %s", conf.BatteryDir())

			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&kind, "provisioner", "", "provisioner kind (script, profile, host, none)")
	f.StringVar(&dir, "battery-dir", "", "directory the battery values are written to")
	f.StringVar(&script, "script", "", "provisioning script path")
	f.StringVar(&profile, "profile", "", "YAML profile path")

	return cmd
}

var provisionerKinds = []string{
	source.KindScript,
	source.KindProfile,
	source.KindHost,
	source.KindNone,
}

func validateProvisionerKind(kind string) error {
	for _, k := range provisionerKinds {
		if kind == k {
			return nil
		}
	}
	return fmt.Errorf("invalid provisioner %q, must be one of %s", kind, strings.Join(provisionerKinds, ", "))
}
