// Package charger is an emulated charger device module. It reads nothing:
// every status query returns the same fixed record.
package charger

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/charlie0129/fakedev/pkg/diag"
	"github.com/charlie0129/fakedev/pkg/hal"
)

type device struct {
	callbacks hal.Callbacks
}

// Module is the charger device module. Calls must be serialized by the caller.
type Module struct {
	sink  diag.Sink
	alloc func() *device

	slot  *hal.Slot[device]
	rt    hal.Runtime
	state hal.State
}

// Option configures a Module.
type Option func(*Module)

// WithSink sets where diagnostics go.
func WithSink(s diag.Sink) Option {
	return func(m *Module) {
		m.sink = s
	}
}

// New returns a closed charger module.
func New(opts ...Option) *Module {
	m := &Module{
		sink:  diag.Default,
		alloc: func() *device { return &device{} },
		slot:  hal.NewSlot[device](),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Open opens the device and registers the charger methods with rt.
func (m *Module) Open(rt hal.Runtime) (hal.Handle, error) {
	if rt == nil {
		diag.Errorf(m.sink, diag.ChgOpenErr, "Charger device  open error.")
		return hal.Handle{}, hal.ErrInvalidArgument
	}

	h, _, err := m.slot.Acquire(m.alloc)
	if err != nil {
		if errors.Is(err, hal.ErrOutOfMemory) {
			diag.Errorf(m.sink, diag.ChgOutOfMemory, "Out of memory")
		}
		return hal.Handle{}, err
	}

	hal.RegisterAll(rt, h, Methods)

	m.rt = rt
	m.state = hal.Open

	logrus.WithFields(logrus.Fields{
		"module": Name,
		"handle": h,
	}).Info("device opened")

	return h, nil
}

// Close releases the open device. A null handle is reported as
// ErrInvalidArgument, but the device is released regardless.
func (m *Module) Close(h hal.Handle) error {
	var result error
	if h.IsZero() {
		result = hal.ErrInvalidArgument
	}

	cur := m.slot.Current()
	if m.slot.Release() {
		hal.Unbind(m.rt, cur)
		m.rt = nil
		m.state = hal.Closed
		logrus.WithFields(logrus.Fields{
			"module": Name,
			"handle": cur,
		}).Info("device closed")
	}

	return result
}

// State returns the lifecycle state of the module.
func (m *Module) State() hal.State {
	return m.state
}

// Handle returns the live handle, or the null handle when closed.
func (m *Module) Handle() hal.Handle {
	return m.slot.Current()
}

// QueryStatus copies the charger status into status.
func (m *Module) QueryStatus(h hal.Handle, status *Status) error {
	logrus.Tracef("QueryStatus called")
	return m.copyStatus(h, status)
}

// EnableCharging reports the charger status. The emulated charger has no
// switch to flip, so nothing changes.
func (m *Module) EnableCharging(h hal.Handle, status *Status) error {
	logrus.Tracef("EnableCharging called")
	return m.copyStatus(h, status)
}

// DisableCharging reports the charger status without changing it.
func (m *Module) DisableCharging(h hal.Handle, status *Status) error {
	logrus.Tracef("DisableCharging called")
	return m.copyStatus(h, status)
}

func (m *Module) copyStatus(h hal.Handle, status *Status) error {
	if _, err := m.slot.Lookup(h); err != nil {
		return err
	}
	if status == nil {
		return hal.ErrInvalidArgument
	}

	*status = fixedStatus
	return nil
}

// RegisterStatusCallback stores the charger status callback.
func (m *Module) RegisterStatusCallback(h hal.Handle, fn hal.Callback, ctx any) error {
	logrus.Tracef("RegisterStatusCallback called")
	return m.register(h, hal.StatusChanged, fn, ctx)
}

// RegisterStateChangeCallback stores the state change callback.
func (m *Module) RegisterStateChangeCallback(h hal.Handle, fn hal.Callback, ctx any) error {
	logrus.Tracef("RegisterStateChangeCallback called")
	return m.register(h, hal.StateChanged, fn, ctx)
}

func (m *Module) register(h hal.Handle, c hal.Category, fn hal.Callback, ctx any) error {
	dev, err := m.slot.Lookup(h)
	if err != nil {
		return err
	}
	if fn == nil {
		return hal.ErrInvalidArgument
	}

	dev.callbacks.Set(c, fn, ctx)
	return nil
}

// Callback returns the callback registered for c.
func (m *Module) Callback(h hal.Handle, c hal.Category) (hal.Subscription, bool) {
	dev, err := m.slot.Lookup(h)
	if err != nil {
		return hal.Subscription{}, false
	}
	return dev.callbacks.Get(c)
}

// QueryEvent always reports NoNewEvent.
func (m *Module) QueryEvent(h hal.Handle, event *Event) error {
	logrus.Tracef("QueryEvent called")

	if _, err := m.slot.Lookup(h); err != nil {
		return err
	}
	if event == nil {
		return hal.ErrInvalidArgument
	}

	*event = NoNewEvent
	return nil
}
