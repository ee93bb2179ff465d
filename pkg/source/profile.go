package source

import (
	"context"
	"os"

	pkgerrors "github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Profile is a YAML document describing fixed battery readings.
//
//	battery:
//	  percent: 80
//	  temperature: 30
//	  voltageMicroVolts: 3700000
type Profile struct {
	Battery Values `yaml:"battery"`
}

// LoadProfile parses the profile at path.
func LoadProfile(path string) (*Profile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to read profile %s", path)
	}

	p := &Profile{}
	err = yaml.Unmarshal(b, p)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to parse profile %s", path)
	}

	return p, nil
}

// ProfileProvisioner writes the readings of a YAML profile into Dir.
// The profile is read on every Provision, so edits apply on the next open.
type ProfileProvisioner struct {
	Path string
	Dir  string
}

var _ Provisioner = &ProfileProvisioner{}

// Provision implements Provisioner.
func (p *ProfileProvisioner) Provision(_ context.Context) error {
	prof, err := LoadProfile(p.Path)
	if err != nil {
		return err
	}
	return WriteValues(p.Dir, prof.Battery)
}
