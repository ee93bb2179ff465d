package service

import (
	"fmt"
	"strings"
)

const (
	// UnitName is the systemd unit fakedev installs itself as.
	UnitName = "fakedev.service"
	// UnitDir is where UnitName is written.
	UnitDir = "/etc/systemd/system"
)

const unitTemplate = `[Unit]
Description=fakedev emulated battery, charger and touchpanel
After=local-fs.target

[Service]
Type=simple
ExecStart={{exe}} daemon --config {{config}} --daemon-socket {{socket}}{{extra}}
Restart=on-failure

[Install]
WantedBy=multi-user.target
`

// Options are the daemon flags baked into the unit.
type Options struct {
	Executable         string
	ConfigPath         string
	SocketPath         string
	AllowNonRootAccess bool
}

// Unit renders the systemd unit for o.
func Unit(o Options) (string, error) {
	if o.Executable == "" || o.ConfigPath == "" || o.SocketPath == "" {
		return "", fmt.Errorf("executable, config and socket paths are required")
	}

	extra := ""
	if o.AllowNonRootAccess {
		extra = " --always-allow-non-root-access"
	}

	return strings.NewReplacer(
		"{{exe}}", o.Executable,
		"{{config}}", o.ConfigPath,
		"{{socket}}", o.SocketPath,
		"{{extra}}", extra,
	).Replace(unitTemplate), nil
}
