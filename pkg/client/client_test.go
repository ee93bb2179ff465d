package client

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/charlie0129/fakedev/pkg/events"
	"github.com/charlie0129/fakedev/pkg/hal"
)

func serveUnix(t *testing.T, handler http.Handler) string {
	t.Helper()

	// t.TempDir paths can exceed the unix socket path limit.
	dir, err := os.MkdirTemp("", "fakedev")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	sock := filepath.Join(dir, "d.sock")
	l, err := net.Listen("unix", sock)
	if err != nil {
		t.Fatal(err)
	}
	srv := &http.Server{Handler: handler}
	go func() { _ = srv.Serve(l) }()
	t.Cleanup(func() { _ = srv.Close() })

	return sock
}

func TestDaemonNotRunning(t *testing.T) {
	c := NewClient(filepath.Join(os.TempDir(), "fakedev-does-not-exist.sock"))
	if _, err := c.Get("/version"); !errors.Is(err, ErrDaemonNotRunning) {
		t.Errorf("Get() error = %v, want %v", err, ErrDaemonNotRunning)
	}
}

func TestStatusErrors(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/version", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `"v1.2.3"`)
	})
	mux.HandleFunc("/battery/fake-mode", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			w.WriteHeader(http.StatusNotImplemented)
			_, _ = io.WriteString(w, `"not implemented"`)
			return
		}
		_, _ = io.WriteString(w, "false")
	})
	mux.HandleFunc("/battery/wakeup-percentage", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	mux.HandleFunc("/battery/status", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})
	mux.HandleFunc("/battery/ctia", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"chargeMinTempC":0,"chargeMaxTempC":57,"batteryCritMaxTemp":60,"skipBatteryAuthentication":true}`)
	})
	mux.HandleFunc("/battery/reopen", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = io.WriteString(w, `{"error":"device already open","code":"already_open"}`)
	})
	mux.HandleFunc("/charger/event", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"charger_query_charger_event is not registered","code":"not_open"}`)
	})
	c := NewClient(serveUnix(t, mux))

	v, err := c.GetVersion()
	if err != nil || v != "v1.2.3" {
		t.Errorf("GetVersion() = %q, %v", v, err)
	}

	fake, err := c.GetFakeMode()
	if err != nil || fake {
		t.Errorf("GetFakeMode() = %v, %v", fake, err)
	}

	if _, err := c.SetFakeMode(true); !errors.Is(err, hal.ErrNotImplemented) {
		t.Errorf("SetFakeMode() error = %v, want %v", err, hal.ErrNotImplemented)
	}
	if _, err := c.SetWakeupPercentage(200); !errors.Is(err, hal.ErrInvalidArgument) {
		t.Errorf("SetWakeupPercentage() error = %v, want %v", err, hal.ErrInvalidArgument)
	}
	if _, err := c.GetBatteryStatus(); !errors.Is(err, hal.ErrInvalidHandle) {
		t.Errorf("GetBatteryStatus() error = %v, want %v", err, hal.ErrInvalidHandle)
	}
	if _, err := c.GetChargerStatus(); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetChargerStatus() error = %v, want %v", err, ErrNotFound)
	}

	if _, err := c.ReopenBattery(); !errors.Is(err, hal.ErrAlreadyOpen) {
		t.Errorf("ReopenBattery() error = %v, want %v", err, hal.ErrAlreadyOpen)
	}
	if _, err := c.GetChargerEvent(); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetChargerEvent() error = %v, want %v", err, ErrNotFound)
	}

	p, err := c.GetBatteryCTIA()
	if err != nil {
		t.Fatalf("GetBatteryCTIA() error = %v", err)
	}
	if p.ChargeMaxTempC != 57 || !p.SkipBatteryAuthentication {
		t.Errorf("GetBatteryCTIA() = %+v", p)
	}
}

func TestSubscribeEvents(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/events", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = io.WriteString(w, "event:module.opened\ndata:{\"module\":\"battery\",\"handle\":\"1.1\",\"ts\":7}\n\n")
		_, _ = io.WriteString(w, "event: module.closed\ndata: {\"module\":\"charger\",\"handle\":\"2.1\",\"ts\":8}\n\n")
	})
	c := NewClient(serveUnix(t, mux))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := c.SubscribeEvents(ctx)
	if err != nil {
		t.Fatalf("SubscribeEvents() error = %v", err)
	}

	var got []string
	for ev := range ch {
		p, err := events.DecodeAs[events.ModuleEvent](ev)
		if err != nil {
			t.Fatalf("DecodeAs(%s) error = %v", ev.Data, err)
		}
		got = append(got, ev.Name+":"+p.Module+":"+p.Handle)
	}

	want := []string{"module.opened:battery:1.1", "module.closed:charger:2.1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
}
