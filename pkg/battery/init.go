package battery

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/charlie0129/fakedev/pkg/source"
)

// readStatus builds a snapshot from r. Individual read failures leave the
// field at Unread; they never fail the snapshot as a whole.
func readStatus(r source.Reader) Status {
	var s Status

	s.Present = voltage(r) > 0
	if !s.Present {
		s.Charging = false
		return s
	}

	s.Percentage = readInt(r, source.Percent, 1)
	s.Temperature = readInt(r, source.Temperature, 1)
	s.Voltage = voltage(r)
	s.Current = readInt(r, source.Current, 1000)
	s.AvgCurrent = readInt(r, source.AvgCurrent, 1000)
	s.Capacity = readFloat(r, source.Coulomb)
	s.CapacityRaw = readFloat(r, source.RawCoulomb)
	s.CapacityFull40 = readFloat(r, source.Full40)
	s.Age = readFloat(r, source.Age)

	s.Charging = s.AvgCurrent > 0

	return s
}

// voltage is in mV; the source is in uV.
func voltage(r source.Reader) int {
	return readInt(r, source.Voltage, 1000)
}

// readInt reads name and divides it by div, truncating. Negative raw values
// are treated like read failures.
func readInt(r source.Reader, name string, div int) int {
	v, err := r.ReadInt(name)
	if err != nil {
		logrus.WithField("name", name).Debugf("failed to read value: %v", err)
		return Unread
	}
	if v < 0 {
		return Unread
	}
	return v / div
}

func readFloat(r source.Reader, name string) float64 {
	v, err := r.ReadFloat(name)
	if err != nil {
		logrus.WithField("name", name).Debugf("failed to read value: %v", err)
		return Unread
	}
	return v
}

// ctiaParameters is fixed; it does not depend on the battery readings.
func ctiaParameters() CTIA {
	return CTIA{
		ChargeMinTempC:            ChargeMinTemperatureC,
		ChargeMaxTempC:            ChargeMaxTemperatureC,
		BatteryCritMaxTemp:        BatteryMaxTemperatureC,
		SkipBatteryAuthentication: true,
	}
}

func provision(ctx context.Context, p source.Provisioner) error {
	if p == nil {
		return nil
	}
	return p.Provision(ctx)
}
