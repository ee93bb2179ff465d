// Package touchpanel builds the input events an emulated touchpanel emits.
package touchpanel

import (
	"time"

	"github.com/charlie0129/fakedev/pkg/diag"
)

// Event types and codes, as in linux/input-event-codes.h.
const (
	EvSyn = 0x00
	EvKey = 0x01
	EvAbs = 0x03

	SynReport = 0

	BtnTouch = 0x14a

	AbsX              = 0x00
	AbsY              = 0x01
	AbsMTPositionX    = 0x35
	AbsMTPositionY    = 0x36
	AbsMTTrackingID   = 0x39
	AbsMTTouchMajor   = 0x30
	AbsMTPressure     = 0x3a
	releasedTrackerID = -1
)

// Timeval is a seconds and microseconds timestamp.
type Timeval struct {
	Sec  int64 `json:"sec"`
	Usec int64 `json:"usec"`
}

// NewTimeval converts t to a Timeval.
func NewTimeval(t time.Time) Timeval {
	return Timeval{
		Sec:  t.Unix(),
		Usec: int64(t.Nanosecond() / 1000),
	}
}

// Time converts tv back to a time.Time.
func (tv Timeval) Time() time.Time {
	return time.Unix(tv.Sec, tv.Usec*1000)
}

// InputEvent is one raw input event.
type InputEvent struct {
	Time  Timeval `json:"time"`
	Type  uint16  `json:"type"`
	Code  uint16  `json:"code"`
	Value int32   `json:"value"`
}

// SetEventParams fills in the type, code and value of ev, and copies the
// timestamp of ev into ts. Nil arguments are reported and ignored.
func SetEventParams(ev *InputEvent, ts *Timeval, typ, code uint16, value int32) {
	if ev == nil || ts == nil {
		diag.Errorf(diag.Default, diag.TPEventNullErr, "NULL parameter passed")
		return
	}

	*ts = ev.Time

	ev.Type = typ
	ev.Code = code
	ev.Value = value
}
