package config

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/fakedev/pkg/source"
	"github.com/charlie0129/fakedev/pkg/utils/ptr"
)

var (
	defaultFileConfig = &RawFileConfig{
		BatteryDir:         ptr.To(source.DefaultBatteryDir),
		Provisioner:        ptr.To(source.KindScript),
		ProvisionScript:    ptr.To(source.DefaultScript),
		ProfilePath:        ptr.To(""),
		AllowNonRootAccess: ptr.To(false),
	}
)

var _ Config = &File{}

type File struct {
	c        *RawFileConfig
	mu       *sync.RWMutex
	filepath string
}

func NewFile(configPath string) (*File, error) {
	f := &File{
		filepath: configPath,
		mu:       &sync.RWMutex{},
	}
	err := f.Load()
	if err != nil {
		return nil, err
	}

	return f, nil
}

func NewFileFromConfig(c *RawFileConfig, configPath string) *File {
	if c == nil {
		c = &RawFileConfig{}
	}

	f := &File{
		c:        c,
		mu:       &sync.RWMutex{},
		filepath: configPath,
	}

	return f
}

type RawFileConfig struct {
	BatteryDir         *string `json:"batteryDir,omitempty"`
	Provisioner        *string `json:"provisioner,omitempty"`
	ProvisionScript    *string `json:"provisionScript,omitempty"`
	ProfilePath        *string `json:"profilePath,omitempty"`
	AllowNonRootAccess *bool   `json:"allowNonRootAccess,omitempty"`
}

func NewRawFileConfigFromConfig(c Config) (*RawFileConfig, error) {
	if c == nil {
		return nil, pkgerrors.New("config is nil")
	}

	rawConfig := &RawFileConfig{
		BatteryDir:         ptr.To(c.BatteryDir()),
		Provisioner:        ptr.To(c.Provisioner()),
		ProvisionScript:    ptr.To(c.ProvisionScript()),
		ProfilePath:        ptr.To(c.ProfilePath()),
		AllowNonRootAccess: ptr.To(c.AllowNonRootAccess()),
	}

	return rawConfig, nil
}

func pick[T any](v, def *T) T {
	if v != nil {
		return *v
	}
	return *def
}

func (f *File) BatteryDir() string {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	return pick(f.c.BatteryDir, defaultFileConfig.BatteryDir)
}

func (f *File) Provisioner() string {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	return pick(f.c.Provisioner, defaultFileConfig.Provisioner)
}

func (f *File) ProvisionScript() string {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	return pick(f.c.ProvisionScript, defaultFileConfig.ProvisionScript)
}

func (f *File) ProfilePath() string {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	return pick(f.c.ProfilePath, defaultFileConfig.ProfilePath)
}

func (f *File) AllowNonRootAccess() bool {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	return pick(f.c.AllowNonRootAccess, defaultFileConfig.AllowNonRootAccess)
}

func (f *File) SetBatteryDir(s string) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.BatteryDir = &s
}

func (f *File) SetProvisioner(s string) {
	if f.c == nil {
		panic("config is nil")
	}

	switch s {
	case source.KindScript, source.KindProfile, source.KindHost, source.KindNone:
	default:
		panic("unknown provisioner " + s)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.Provisioner = &s
}

func (f *File) SetProvisionScript(s string) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.ProvisionScript = &s
}

func (f *File) SetProfilePath(s string) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.ProfilePath = &s
}

func (f *File) SetAllowNonRootAccess(b bool) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.AllowNonRootAccess = &b
}

// NewProvisioner builds the provisioner the configuration selects.
func NewProvisioner(c Config) (source.Provisioner, error) {
	return source.New(c.Provisioner(), c.BatteryDir(), c.ProvisionScript(), c.ProfilePath())
}

func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fp, err := os.Open(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			// A missing file means all defaults.
			f.c = &RawFileConfig{}
			return nil
		}
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	b, err := io.ReadAll(fp)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to read file %s", f.filepath)
	}

	if strings.TrimSpace(string(b)) == "" {
		f.c = &RawFileConfig{}
		return nil
	}

	conf := RawFileConfig{}
	err = json.Unmarshal(b, &conf)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to unmarshal config from file %s", f.filepath)
	}
	f.c = &conf

	return nil
}

func (f *File) Save() error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		return pkgerrors.New("config is nil")
	}

	fp, err := os.OpenFile(f.filepath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	enc := json.NewEncoder(fp)
	enc.SetIndent("", "  ")
	err = enc.Encode(f.c)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to encode config to file %s", f.filepath)
	}

	return nil
}

// Path returns the file the configuration is loaded from.
func (f *File) Path() string {
	return f.filepath
}

func (f *File) LogrusFields() logrus.Fields {
	if f.c == nil {
		panic("config is nil")
	}

	return logrus.Fields{
		"batteryDir":         f.BatteryDir(),
		"provisioner":        f.Provisioner(),
		"provisionScript":    f.ProvisionScript(),
		"profilePath":        f.ProfilePath(),
		"allowNonRootAccess": f.AllowNonRootAccess(),
	}
}
