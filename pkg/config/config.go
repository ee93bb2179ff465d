package config

type Config interface {
	BatteryDir() string
	Provisioner() string
	ProvisionScript() string
	ProfilePath() string
	AllowNonRootAccess() bool

	SetBatteryDir(string)
	SetProvisioner(string)
	SetProvisionScript(string)
	SetProfilePath(string)
	SetAllowNonRootAccess(bool)

	// Load reads the configuration from the source.
	Load() error
	// Save saves the configuration to the source.
	Save() error
}
