package daemon

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/charlie0129/fakedev/pkg/battery"
	"github.com/charlie0129/fakedev/pkg/charger"
	"github.com/charlie0129/fakedev/pkg/events"
	"github.com/charlie0129/fakedev/pkg/hal"
	"github.com/charlie0129/fakedev/pkg/source"
)

// SourceFunc returns the reader and provisioner for the next battery open.
type SourceFunc func() (source.Reader, source.Provisioner, error)

// Host plays the host runtime for the emulated modules: it owns one of
// each module, opens them, and routes calls to them by method name.
// All module calls go through mu; the modules themselves do no locking.
type Host struct {
	mu sync.Mutex

	battery      *battery.Module
	batteryTable *hal.Table
	charger      *charger.Module
	chargerTable *hal.Table

	batterySource SourceFunc
	hub           *events.EventHub
}

// ModuleInfo describes one hosted module.
type ModuleInfo struct {
	Name    string   `json:"name"`
	State   string   `json:"state"`
	Handle  string   `json:"handle"`
	Methods []string `json:"methods"`
}

// NewHost returns a host with both modules closed. src is consulted on
// every battery open, so configuration changes apply on reopen.
func NewHost(b *battery.Module, c *charger.Module, src SourceFunc, hub *events.EventHub) *Host {
	return &Host{
		battery:       b,
		batteryTable:  hal.NewTable(battery.Name),
		charger:       c,
		chargerTable:  hal.NewTable(charger.Name),
		batterySource: src,
		hub:           hub,
	}
}

// OpenAll opens every module. A module that fails to open stays closed and
// its error is returned; the others are still opened.
func (h *Host) OpenAll(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	_, cerr := h.openCharger()
	_, berr := h.openBattery(ctx)

	if berr != nil {
		return berr
	}
	return cerr
}

// CloseAll closes every open module.
func (h *Host) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closeBattery()
	h.closeCharger()
}

// ReopenBattery closes the battery module and opens it again, which
// re-runs provisioning and takes a new snapshot.
func (h *Host) ReopenBattery(ctx context.Context) (hal.Handle, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closeBattery()
	return h.openBattery(ctx)
}

// Modules describes the hosted modules.
func (h *Host) Modules() []ModuleInfo {
	h.mu.Lock()
	defer h.mu.Unlock()

	return []ModuleInfo{
		{
			Name:    battery.Name,
			State:   h.battery.State().String(),
			Handle:  h.battery.Handle().String(),
			Methods: h.batteryTable.Names(),
		},
		{
			Name:    charger.Name,
			State:   h.charger.State().String(),
			Handle:  h.charger.Handle().String(),
			Methods: h.chargerTable.Names(),
		},
	}
}

func (h *Host) openBattery(ctx context.Context) (hal.Handle, error) {
	if h.batterySource != nil {
		r, p, err := h.batterySource()
		if err != nil {
			logrus.WithField("module", battery.Name).Errorf("failed to configure battery source: %v", err)
			h.publish(events.ModuleOpened, battery.Name, hal.Handle{}, err)
			return hal.Handle{}, err
		}
		if err := h.battery.SetSource(r, p); err != nil {
			return hal.Handle{}, err
		}
	}

	hd, err := h.battery.Open(ctx, h.batteryTable)
	if err != nil {
		logrus.WithField("module", battery.Name).Errorf("failed to open: %v", err)
	}
	h.publish(events.ModuleOpened, battery.Name, hd, err)
	return hd, err
}

func (h *Host) openCharger() (hal.Handle, error) {
	hd, err := h.charger.Open(h.chargerTable)
	if err != nil {
		logrus.WithField("module", charger.Name).Errorf("failed to open: %v", err)
	}
	h.publish(events.ModuleOpened, charger.Name, hd, err)
	return hd, err
}

func (h *Host) closeBattery() {
	hd := h.battery.Handle()
	if hd.IsZero() {
		return
	}
	if err := h.battery.Close(hd); err != nil {
		logrus.WithField("module", battery.Name).Errorf("failed to close: %v", err)
	}
	h.publish(events.ModuleClosed, battery.Name, hd, nil)
}

func (h *Host) closeCharger() {
	hd := h.charger.Handle()
	if hd.IsZero() {
		return
	}
	if err := h.charger.Close(hd); err != nil {
		logrus.WithField("module", charger.Name).Errorf("failed to close: %v", err)
	}
	h.publish(events.ModuleClosed, charger.Name, hd, nil)
}

func (h *Host) publish(name, module string, hd hal.Handle, err error) {
	ev := events.ModuleEvent{
		Module: module,
		Handle: hd.String(),
		Ts:     time.Now().Unix(),
	}
	if err != nil {
		ev.Error = err.Error()
	}
	h.hub.Publish(name, ev)
}

// call runs fn with the handle bound to method in tbl. It reports false if
// the method is not bound, which means the module is not open.
func (h *Host) call(tbl *hal.Table, method string, fn func(hal.Handle) error) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	b, ok := tbl.Lookup(method)
	if !ok {
		return false, nil
	}

	logrus.WithFields(logrus.Fields{
		"module": b.Module,
		"method": b.Method.Name,
		"handle": b.Handle,
	}).Debug("dispatching call")

	return true, fn(b.Handle)
}
