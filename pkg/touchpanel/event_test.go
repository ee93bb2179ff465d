package touchpanel

import (
	"testing"
	"time"

	"github.com/charlie0129/fakedev/pkg/diag"
)

func TestSetEventParams(t *testing.T) {
	ev := InputEvent{Time: Timeval{Sec: 100, Usec: 250}}
	var ts Timeval

	SetEventParams(&ev, &ts, EvAbs, AbsMTPositionX, 320)

	if ts != (Timeval{Sec: 100, Usec: 250}) {
		t.Errorf("timestamp = %+v, want the event time", ts)
	}
	if ev.Type != EvAbs || ev.Code != AbsMTPositionX || ev.Value != 320 {
		t.Errorf("event = %+v", ev)
	}
}

func TestSetEventParamsNil(t *testing.T) {
	rec := &diag.Recorder{}
	orig := diag.Default
	diag.Default = rec
	defer func() { diag.Default = orig }()

	var ts Timeval
	SetEventParams(nil, &ts, EvKey, BtnTouch, 1)

	ev := InputEvent{}
	SetEventParams(&ev, nil, EvKey, BtnTouch, 1)
	if ev != (InputEvent{}) {
		t.Errorf("event modified with a nil timestamp: %+v", ev)
	}

	if n := len(rec.Entries()); n != 2 {
		t.Fatalf("got %d diagnostics, want 2", n)
	}
	if !rec.Has(diag.TPEventNullErr) {
		t.Errorf("expected a %s diagnostic", diag.TPEventNullErr)
	}
}

func TestTap(t *testing.T) {
	at := time.Unix(1700000000, 123456000)
	events := Tap(200, 400, at)

	if len(events) != 10 {
		t.Fatalf("Tap() returned %d events, want 10", len(events))
	}

	first := events[0]
	if first.Time.Time() != at {
		t.Errorf("first event time = %v, want %v", first.Time.Time(), at)
	}

	var touches, syncs int
	for _, ev := range events {
		if ev.Type == EvKey && ev.Code == BtnTouch {
			touches++
		}
		if ev.Type == EvSyn {
			syncs++
		}
	}
	if touches != 2 || syncs != 2 {
		t.Errorf("touches = %d, syncs = %d; want 2, 2", touches, syncs)
	}

	last := events[len(events)-1]
	if got := last.Time.Time().Sub(at); got != TapDuration {
		t.Errorf("tap lasted %v, want %v", got, TapDuration)
	}
	if x := events[1]; x.Code != AbsMTPositionX || x.Value != 200 {
		t.Errorf("second event = %+v, want x position 200", x)
	}
}
