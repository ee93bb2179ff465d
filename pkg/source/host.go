package source

import (
	"context"
	"math"

	"github.com/distatus/battery"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DefaultTemperature is written when the host does not report one.
const DefaultTemperature = 30

// HostProvisioner writes readings derived from the first battery of the
// machine it runs on.
type HostProvisioner struct {
	Dir string

	// getAll is battery.GetAll outside tests.
	getAll func() ([]*battery.Battery, error)
}

var _ Provisioner = &HostProvisioner{}

// NewHostProvisioner returns a provisioner writing into dir.
func NewHostProvisioner(dir string) *HostProvisioner {
	return &HostProvisioner{
		Dir:    dir,
		getAll: battery.GetAll,
	}
}

// Provision implements Provisioner.
func (p *HostProvisioner) Provision(_ context.Context) error {
	getAll := p.getAll
	if getAll == nil {
		getAll = battery.GetAll
	}

	batteries, err := getAll()
	var bat *battery.Battery
	for _, b := range batteries {
		if b != nil {
			bat = b
			break
		}
	}
	if bat == nil {
		if err == nil {
			err = pkgerrors.New("no batteries found")
		}
		return pkgerrors.Wrap(err, "failed to read host battery")
	}
	if err != nil {
		logrus.Warnf("partial host battery info: %v", err)
	}

	return WriteValues(p.Dir, ValuesFromHost(bat))
}

// ValuesFromHost converts a host battery reading to raw value files.
// Capacities are reported in mAh, current is negative while discharging.
func ValuesFromHost(b *battery.Battery) Values {
	v := Values{
		Temperature: DefaultTemperature,
		VoltageUV:   int(math.Round(b.Voltage * 1e6)),
	}

	if b.Full > 0 {
		v.Percent = int(math.Round(b.Current / b.Full * 100))
	}
	if b.Design > 0 {
		v.Age = math.Round(b.Full/b.Design*1000) / 10
	}

	if b.Voltage > 0 {
		// mW / V = mA
		ma := b.ChargeRate / b.Voltage
		if b.State == battery.Discharging {
			ma = -ma
		}
		v.CurrentUA = int(math.Round(ma * 1000))
		v.AvgCurrentUA = v.CurrentUA

		// mWh / V = mAh
		v.Coulomb = math.Round(b.Current / b.Voltage)
		v.RawCoulomb = v.Coulomb
		v.Full40 = math.Round(b.Full / b.Voltage)
	}

	return v
}
