package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/charlie0129/fakedev/pkg/battery"
	"github.com/charlie0129/fakedev/pkg/charger"
	"github.com/charlie0129/fakedev/pkg/diag"
	"github.com/charlie0129/fakedev/pkg/events"
	"github.com/charlie0129/fakedev/pkg/source"
)

func newTestHost(t *testing.T, values source.Values) (*Host, *gin.Engine, string) {
	t.Helper()

	dir := t.TempDir()
	if err := source.WriteValues(dir, values); err != nil {
		t.Fatal(err)
	}

	src := func() (source.Reader, source.Provisioner, error) {
		return source.NewDir(dir), source.Nop, nil
	}
	h := NewHost(
		battery.New(nil, nil, battery.WithSink(&diag.Recorder{})),
		charger.New(charger.WithSink(&diag.Recorder{})),
		src,
		events.NewEventHub(),
	)

	return h, setupRoutes(h), dir
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

var testValues = source.Values{
	Percent:      76,
	Temperature:  28,
	VoltageUV:    3700000,
	CurrentUA:    500000,
	AvgCurrentUA: 480000,
	Full40:       3000,
	RawCoulomb:   2300,
	Coulomb:      2280,
	Age:          95,
}

func TestModulesClosedBeforeOpen(t *testing.T) {
	_, r, _ := newTestHost(t, testValues)

	routes := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/battery/status", ""},
		{http.MethodGet, "/battery/ctia", ""},
		{http.MethodPut, "/battery/wakeup-percentage", "120"},
		{http.MethodPut, "/battery/fake-mode", "true"},
		{http.MethodGet, "/charger/status", ""},
		{http.MethodGet, "/charger/event", ""},
	}
	for _, rt := range routes {
		w := do(t, r, rt.method, rt.path, rt.body)
		if w.Code != http.StatusNotFound {
			t.Errorf("%s %s before open = %d, want %d", rt.method, rt.path, w.Code, http.StatusNotFound)
		}
		var resp ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Code != CodeNotOpen {
			t.Errorf("%s %s before open body = %s, want code %q", rt.method, rt.path, w.Body.String(), CodeNotOpen)
		}
	}
}

func TestBatteryRoutes(t *testing.T) {
	h, r, _ := newTestHost(t, testValues)
	if err := h.OpenAll(context.Background()); err != nil {
		t.Fatalf("OpenAll() error = %v", err)
	}
	defer h.CloseAll()

	w := do(t, r, http.MethodGet, "/battery/status", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /battery/status = %d: %s", w.Code, w.Body.String())
	}
	var s battery.Status
	if err := json.Unmarshal(w.Body.Bytes(), &s); err != nil {
		t.Fatal(err)
	}
	if !s.Present || s.Voltage != 3700 || s.AvgCurrent != 480 || !s.Charging || s.Percentage != 76 {
		t.Errorf("status = %+v", s)
	}

	w = do(t, r, http.MethodGet, "/battery/ctia", "")
	var ctia battery.CTIA
	_ = json.Unmarshal(w.Body.Bytes(), &ctia)
	if w.Code != http.StatusOK || ctia.ChargeMaxTempC != 57 || !ctia.SkipBatteryAuthentication {
		t.Errorf("GET /battery/ctia = %d %+v", w.Code, ctia)
	}

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/battery/authenticate", "", http.StatusOK},
		{http.MethodGet, "/battery/fake-mode", "", http.StatusOK},
		{http.MethodPut, "/battery/fake-mode", "true", http.StatusNotImplemented},
		{http.MethodPut, "/battery/fake-mode", "yes", http.StatusBadRequest},
		{http.MethodPut, "/battery/wakeup-percentage", "20", http.StatusNotImplemented},
		{http.MethodPut, "/battery/wakeup-percentage", "120", http.StatusNotImplemented},
		{http.MethodPut, "/battery/wakeup-percentage", "-5", http.StatusNotImplemented},
		{http.MethodPut, "/battery/wakeup-percentage", "many", http.StatusBadRequest},
	}
	for _, tt := range tests {
		if w := do(t, r, tt.method, tt.path, tt.body); w.Code != tt.want {
			t.Errorf("%s %s %q = %d, want %d", tt.method, tt.path, tt.body, w.Code, tt.want)
		}
	}
}

func TestBatteryReopen(t *testing.T) {
	h, r, dir := newTestHost(t, testValues)
	if err := h.OpenAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer h.CloseAll()

	before := h.battery.Handle()

	changed := testValues
	changed.Percent = 15
	if err := source.WriteValues(dir, changed); err != nil {
		t.Fatal(err)
	}

	var s battery.Status
	_ = json.Unmarshal(do(t, r, http.MethodGet, "/battery/status", "").Body.Bytes(), &s)
	if s.Percentage != 76 {
		t.Errorf("Percentage = %d before reopen, want the snapshot value 76", s.Percentage)
	}

	if w := do(t, r, http.MethodPost, "/battery/reopen", ""); w.Code != http.StatusCreated {
		t.Fatalf("POST /battery/reopen = %d: %s", w.Code, w.Body.String())
	}
	if h.battery.Handle() == before {
		t.Errorf("reopen kept the old handle")
	}

	_ = json.Unmarshal(do(t, r, http.MethodGet, "/battery/status", "").Body.Bytes(), &s)
	if s.Percentage != 15 {
		t.Errorf("Percentage = %d after reopen, want 15", s.Percentage)
	}
}

func TestBatteryOpenFailure(t *testing.T) {
	h, r, _ := newTestHost(t, testValues)
	h.batterySource = func() (source.Reader, source.Provisioner, error) {
		return source.NewDir(t.TempDir()), source.ProvisionerFunc(func(context.Context) error {
			return errors.New("script failed")
		}), nil
	}

	if err := h.OpenAll(context.Background()); err == nil {
		t.Fatalf("OpenAll() should report the battery failure")
	}

	if w := do(t, r, http.MethodGet, "/battery/status", ""); w.Code != http.StatusNotFound {
		t.Errorf("GET /battery/status = %d, want %d", w.Code, http.StatusNotFound)
	}
	if w := do(t, r, http.MethodGet, "/charger/status", ""); w.Code != http.StatusOK {
		t.Errorf("GET /charger/status = %d, want %d: charger opens independently", w.Code, http.StatusOK)
	}
	if w := do(t, r, http.MethodPost, "/battery/reopen", ""); w.Code != http.StatusInternalServerError {
		t.Errorf("POST /battery/reopen = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}

func TestChargerRoutes(t *testing.T) {
	h, r, _ := newTestHost(t, testValues)
	if err := h.OpenAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer h.CloseAll()

	for _, body := range []string{"true", "false"} {
		w := do(t, r, http.MethodPut, "/charger/charging", body)
		if w.Code != http.StatusCreated {
			t.Fatalf("PUT /charger/charging %s = %d", body, w.Code)
		}
		var s charger.Status
		_ = json.Unmarshal(w.Body.Bytes(), &s)
		if s.Connected || s.Powered || !s.Charging {
			t.Errorf("PUT /charger/charging %s = %+v", body, s)
		}
	}

	w := do(t, r, http.MethodGet, "/charger/event", "")
	var ev string
	_ = json.Unmarshal(w.Body.Bytes(), &ev)
	if w.Code != http.StatusOK || ev != "none" {
		t.Errorf("GET /charger/event = %d %q", w.Code, ev)
	}
}

func TestModulesRoute(t *testing.T) {
	h, r, _ := newTestHost(t, testValues)
	if err := h.OpenAll(context.Background()); err != nil {
		t.Fatal(err)
	}

	var mods []ModuleInfo
	_ = json.Unmarshal(do(t, r, http.MethodGet, "/modules", "").Body.Bytes(), &mods)
	if len(mods) != 2 {
		t.Fatalf("got %d modules, want 2", len(mods))
	}
	if mods[0].Name != "battery" || len(mods[0].Methods) != 7 || mods[0].State != "open" {
		t.Errorf("battery = %+v", mods[0])
	}
	if mods[1].Name != "charger" || len(mods[1].Methods) != 6 {
		t.Errorf("charger = %+v", mods[1])
	}

	h.CloseAll()
	_ = json.Unmarshal(do(t, r, http.MethodGet, "/modules", "").Body.Bytes(), &mods)
	if mods[0].State != "closed" || len(mods[0].Methods) != 0 || mods[0].Handle != "null" {
		t.Errorf("battery after close = %+v", mods[0])
	}
}

func TestLifecycleEvents(t *testing.T) {
	h, _, _ := newTestHost(t, testValues)
	ch := h.hub.Subscribe()

	if err := h.OpenAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	h.CloseAll()

	var names []string
	for len(ch) > 0 {
		ev := <-ch
		p, err := events.DecodeAs[events.ModuleEvent](ev)
		if err != nil {
			t.Fatal(err)
		}
		names = append(names, ev.Name+":"+p.Module)
	}

	want := []string{
		"module.opened:charger",
		"module.opened:battery",
		"module.closed:battery",
		"module.closed:charger",
	}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("events = %v, want %v", names, want)
	}
}
