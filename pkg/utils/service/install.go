package service

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// systemctl is swapped out in tests.
var systemctl = func(args ...string) error {
	out, err := exec.Command("systemctl", args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("systemctl %v: %w: %s", args, err, out)
	}
	return nil
}

func unitPath(dir string) string {
	return filepath.Join(dir, UnitName)
}

// Install writes the unit into dir and enables it. o.Executable defaults
// to the running binary.
func Install(dir string, o Options) error {
	if o.Executable == "" {
		exePath, err := os.Executable()
		if err != nil {
			return fmt.Errorf("failed to get the path to the current executable: %w", err)
		}
		exePath, err = filepath.Abs(exePath)
		if err != nil {
			return fmt.Errorf("failed to get the absolute path to the current executable: %w", err)
		}
		o.Executable = exePath
	}

	logrus.Infof("current executable path: %s", o.Executable)

	unit, err := Unit(o)
	if err != nil {
		return err
	}

	// mkdir -p
	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	p := unitPath(dir)

	// warn if the file already exists
	_, err = os.Stat(p)
	if err == nil {
		logrus.Warnf("%s already exists, overwriting", p)
	}

	logrus.Infof("writing systemd unit to %s", p)
	err = os.WriteFile(p, []byte(unit), 0644)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", p, err)
	}

	logrus.Infof("starting fakedev")

	if err := systemctl("daemon-reload"); err != nil {
		return err
	}
	return systemctl("enable", "--now", UnitName)
}

// Uninstall stops the unit and removes it from dir.
func Uninstall(dir string) error {
	logrus.Infof("stopping fakedev")

	err := systemctl("disable", "--now", UnitName)
	if err != nil {
		return fmt.Errorf("%w. Are you root?", err)
	}

	logrus.Infof("removing systemd unit")

	p := unitPath(dir)

	// if the file doesn't exist, we don't need to remove it
	_, err = os.Stat(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat %s: %w", p, err)
	}

	err = os.Remove(p)
	if err != nil {
		return fmt.Errorf("failed to remove %s: %w. Are you root?", p, err)
	}

	return systemctl("daemon-reload")
}
