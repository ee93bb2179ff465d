package charger

import "github.com/charlie0129/fakedev/pkg/hal"

// Status describes the charger.
type Status struct {
	MaxCurrent       int    `json:"maxCurrent"`
	Connected        bool   `json:"connected"`
	Powered          bool   `json:"powered"`
	DockSerialNumber string `json:"dockSerialNumber"`
	Charging         bool   `json:"charging"`
}

// Event is a charger event reported by QueryEvent.
type Event int

const (
	// NoNewEvent means nothing happened since the last query.
	NoNewEvent Event = iota
	// ChargerEventConnected means a charger was plugged in.
	ChargerEventConnected
	// ChargerEventDisconnected means a charger was removed.
	ChargerEventDisconnected
	// ChargerEventFault means the charger reported a fault.
	ChargerEventFault
)

func (e Event) String() string {
	switch e {
	case NoNewEvent:
		return "none"
	case ChargerEventConnected:
		return "connected"
	case ChargerEventDisconnected:
		return "disconnected"
	case ChargerEventFault:
		return "fault"
	default:
		return "unknown"
	}
}

// Module method ids.
const (
	QueryChargerStatus hal.MethodID = iota
	RegisterChargerStatusCallback
	EnableCharging
	DisableCharging
	RegisterStateChangeCallback
	QueryChargerEvent
)

// Methods is what the charger module registers with the host runtime.
var Methods = []hal.Method{
	{ID: QueryChargerStatus, Name: "charger_query_charger_status"},
	{ID: RegisterChargerStatusCallback, Name: "charger_register_charger_status_callback"},
	{ID: EnableCharging, Name: "charger_enable_charging"},
	{ID: DisableCharging, Name: "charger_disable_charging"},
	{ID: RegisterStateChangeCallback, Name: "charger_register_state_change_callback"},
	{ID: QueryChargerEvent, Name: "charger_query_charger_event"},
}

// Name is the module name used for dispatch and logging.
const Name = "charger"

// fixedStatus is what the emulated charger always reports.
var fixedStatus = Status{
	MaxCurrent:       0,
	Connected:        false,
	Powered:          false,
	DockSerialNumber: "",
	Charging:         true,
}
