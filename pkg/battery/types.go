package battery

import "github.com/charlie0129/fakedev/pkg/hal"

// Status is the snapshot of battery readings taken when the module opens.
// Voltage is in mV, currents in mA. A field that could not be read is -1.
type Status struct {
	Present        bool    `json:"present"`
	Percentage     int     `json:"percentage"`
	Temperature    int     `json:"temperature"`
	Voltage        int     `json:"voltage"`
	Current        int     `json:"current"`
	AvgCurrent     int     `json:"avgCurrent"`
	Capacity       float64 `json:"capacity"`
	CapacityRaw    float64 `json:"capacityRaw"`
	CapacityFull40 float64 `json:"capacityFull40"`
	Age            float64 `json:"age"`
	Charging       bool    `json:"charging"`
}

// CTIA holds the charging safety thresholds reported to callers.
type CTIA struct {
	ChargeMinTempC            int  `json:"chargeMinTempC"`
	ChargeMaxTempC            int  `json:"chargeMaxTempC"`
	BatteryCritMaxTemp        int  `json:"batteryCritMaxTemp"`
	SkipBatteryAuthentication bool `json:"skipBatteryAuthentication"`
}

// Charging temperature limits in degrees Celsius.
const (
	ChargeMinTemperatureC  = 0
	ChargeMaxTemperatureC  = 57
	BatteryMaxTemperatureC = 60
)

// Unread marks a field whose value could not be read.
const Unread = -1

// Module method ids.
const (
	QueryBatteryStatus hal.MethodID = iota
	RegisterBatteryStatusCallback
	AuthenticateBattery
	GetCTIAParameters
	SetWakeupParameters
	SetFakeMode
	GetFakeMode
)

// Methods is what the battery module registers with the host runtime.
var Methods = []hal.Method{
	{ID: QueryBatteryStatus, Name: "battery_query_battery_status"},
	{ID: RegisterBatteryStatusCallback, Name: "battery_register_battery_status_callback"},
	{ID: AuthenticateBattery, Name: "battery_authenticate_battery"},
	{ID: GetCTIAParameters, Name: "battery_get_ctia_parameters"},
	{ID: SetWakeupParameters, Name: "battery_set_wakeup_percentage"},
	{ID: SetFakeMode, Name: "battery_set_fake_mode"},
	{ID: GetFakeMode, Name: "battery_get_fake_mode"},
}

// Name is the module name used for dispatch and logging.
const Name = "battery"
