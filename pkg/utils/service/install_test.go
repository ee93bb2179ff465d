package service

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func fakeSystemctl(t *testing.T) *[][]string {
	t.Helper()

	var calls [][]string
	orig := systemctl
	systemctl = func(args ...string) error {
		calls = append(calls, args)
		return nil
	}
	t.Cleanup(func() { systemctl = orig })

	return &calls
}

func TestUnit(t *testing.T) {
	unit, err := Unit(Options{
		Executable:         "/usr/bin/fakedev",
		ConfigPath:         "/etc/fakedev.json",
		SocketPath:         "/run/fakedev.sock",
		AllowNonRootAccess: true,
	})
	if err != nil {
		t.Fatalf("Unit() error = %v", err)
	}

	want := "ExecStart=/usr/bin/fakedev daemon --config /etc/fakedev.json --daemon-socket /run/fakedev.sock --always-allow-non-root-access\n"
	if !strings.Contains(unit, want) {
		t.Errorf("Unit() = %q, want it to contain %q", unit, want)
	}

	if _, err := Unit(Options{Executable: "/usr/bin/fakedev"}); err == nil {
		t.Error("Unit() with missing paths should fail")
	}
}

func TestInstallUninstall(t *testing.T) {
	calls := fakeSystemctl(t)
	dir := filepath.Join(t.TempDir(), "system")

	err := Install(dir, Options{
		Executable: "/usr/bin/fakedev",
		ConfigPath: "/etc/fakedev.json",
		SocketPath: "/run/fakedev.sock",
	})
	if err != nil {
		t.Fatalf("Install() error = %v", err)
	}

	b, err := os.ReadFile(filepath.Join(dir, UnitName))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(b), "always-allow-non-root-access") {
		t.Errorf("unit should not allow non-root access:\n%s", b)
	}

	if err := Uninstall(dir); err != nil {
		t.Fatalf("Uninstall() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, UnitName)); !os.IsNotExist(err) {
		t.Errorf("unit still exists after Uninstall(), stat error = %v", err)
	}

	want := [][]string{
		{"daemon-reload"},
		{"enable", "--now", UnitName},
		{"disable", "--now", UnitName},
		{"daemon-reload"},
	}
	if !reflect.DeepEqual(*calls, want) {
		t.Errorf("systemctl calls = %v, want %v", *calls, want)
	}
}
