package source

import (
	"os"
	"path/filepath"
	"strconv"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Values is a full set of raw battery readings as they appear on disk.
// Voltage and currents are in micro-units.
type Values struct {
	Percent      int     `yaml:"percent" json:"percent"`
	Temperature  int     `yaml:"temperature" json:"temperature"`
	VoltageUV    int     `yaml:"voltageMicroVolts" json:"voltageMicroVolts"`
	CurrentUA    int     `yaml:"currentMicroAmps" json:"currentMicroAmps"`
	AvgCurrentUA int     `yaml:"avgCurrentMicroAmps" json:"avgCurrentMicroAmps"`
	Full40       float64 `yaml:"full40" json:"full40"`
	RawCoulomb   float64 `yaml:"rawCoulomb" json:"rawCoulomb"`
	Coulomb      float64 `yaml:"coulomb" json:"coulomb"`
	Age          float64 `yaml:"age" json:"age"`
}

// Files returns the file name to content mapping for v.
func (v Values) Files() map[string]string {
	return map[string]string{
		Percent:     strconv.Itoa(v.Percent),
		Temperature: strconv.Itoa(v.Temperature),
		Voltage:     strconv.Itoa(v.VoltageUV),
		Current:     strconv.Itoa(v.CurrentUA),
		AvgCurrent:  strconv.Itoa(v.AvgCurrentUA),
		Full40:      strconv.FormatFloat(v.Full40, 'f', -1, 64),
		RawCoulomb:  strconv.FormatFloat(v.RawCoulomb, 'f', -1, 64),
		Coulomb:     strconv.FormatFloat(v.Coulomb, 'f', -1, 64),
		Age:         strconv.FormatFloat(v.Age, 'f', -1, 64),
	}
}

// WriteValues writes every value file into dir, creating dir if needed.
func WriteValues(dir string, v Values) error {
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to create %s", dir)
	}

	for name, content := range v.Files() {
		p := filepath.Join(dir, name)
		err := os.WriteFile(p, []byte(content+"\n"), 0644)
		if err != nil {
			return pkgerrors.Wrapf(err, "failed to write %s", p)
		}
	}

	logrus.WithField("dir", dir).Debug("battery values written")

	return nil
}
