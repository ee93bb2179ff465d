package touchpanel

import "time"

// TapDuration is how long a synthesized finger stays down.
const TapDuration = 50 * time.Millisecond

type step struct {
	typ   uint16
	code  uint16
	value int32
}

// Tap returns the event sequence of a single finger touching (x, y) at
// the given time and lifting TapDuration later.
func Tap(x, y int32, at time.Time) []InputEvent {
	down := []step{
		{EvAbs, AbsMTTrackingID, 0},
		{EvAbs, AbsMTPositionX, x},
		{EvAbs, AbsMTPositionY, y},
		{EvKey, BtnTouch, 1},
		{EvAbs, AbsX, x},
		{EvAbs, AbsY, y},
		{EvSyn, SynReport, 0},
	}
	up := []step{
		{EvAbs, AbsMTTrackingID, releasedTrackerID},
		{EvKey, BtnTouch, 0},
		{EvSyn, SynReport, 0},
	}

	events := make([]InputEvent, 0, len(down)+len(up))
	var last Timeval

	emit := func(steps []step, t time.Time) {
		for _, s := range steps {
			ev := InputEvent{Time: NewTimeval(t)}
			SetEventParams(&ev, &last, s.typ, s.code, s.value)
			events = append(events, ev)
		}
	}

	emit(down, at)
	emit(up, at.Add(TapDuration))

	return events
}
