package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charlie0129/fakedev/pkg/source"
)

func TestFileDefaults(t *testing.T) {
	f, err := NewFile(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("NewFile() error = %v", err)
	}

	if got := f.BatteryDir(); got != source.DefaultBatteryDir {
		t.Errorf("BatteryDir() = %q, want %q", got, source.DefaultBatteryDir)
	}
	if got := f.Provisioner(); got != source.KindScript {
		t.Errorf("Provisioner() = %q, want %q", got, source.KindScript)
	}
	if got := f.ProvisionScript(); got != source.DefaultScript {
		t.Errorf("ProvisionScript() = %q, want %q", got, source.DefaultScript)
	}
	if f.AllowNonRootAccess() {
		t.Errorf("AllowNonRootAccess() = true, want false")
	}
}

func TestFileLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fakedev.json")
	if err := os.WriteFile(path, []byte(`{"batteryDir": "/var/fake", "provisioner": "none"}`), 0644); err != nil {
		t.Fatal(err)
	}

	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile() error = %v", err)
	}
	if f.BatteryDir() != "/var/fake" || f.Provisioner() != source.KindNone {
		t.Errorf("loaded %v", f.LogrusFields())
	}

	f.SetProvisioner(source.KindProfile)
	f.SetProfilePath("/etc/fakedev/profile.yaml")
	if err := f.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	g, err := NewFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if g.Provisioner() != source.KindProfile || g.ProfilePath() != "/etc/fakedev/profile.yaml" {
		t.Errorf("reloaded %v", g.LogrusFields())
	}
	if g.BatteryDir() != "/var/fake" {
		t.Errorf("BatteryDir() = %q, want /var/fake", g.BatteryDir())
	}
}

func TestFileLoadEmptyAndInvalid(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(empty, []byte("  \n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFile(empty); err != nil {
		t.Errorf("NewFile(empty) error = %v", err)
	}

	broken := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(broken, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFile(broken); err == nil {
		t.Errorf("NewFile(broken) should fail")
	}
}

func TestNewProvisioner(t *testing.T) {
	f := NewFileFromConfig(nil, "")

	p, err := NewProvisioner(f)
	if err != nil {
		t.Fatalf("NewProvisioner() error = %v", err)
	}
	if _, ok := p.(*source.ScriptProvisioner); !ok {
		t.Errorf("default provisioner is %T, want *source.ScriptProvisioner", p)
	}

	f.SetProvisioner(source.KindProfile)
	if _, err := NewProvisioner(f); err == nil {
		t.Errorf("profile provisioner without a path should fail")
	}
}

func TestSetProvisionerPanicsOnUnknown(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("SetProvisioner(unknown) did not panic")
		}
	}()
	NewFileFromConfig(nil, "").SetProvisioner("magic")
}
