// Package battery is an emulated battery device module. It reports a
// snapshot of values read from flat files once, when the module opens.
package battery

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/charlie0129/fakedev/pkg/diag"
	"github.com/charlie0129/fakedev/pkg/hal"
	"github.com/charlie0129/fakedev/pkg/source"
)

type device struct {
	status    Status
	callbacks hal.Callbacks
}

// Module is the battery device module. Each Module admits one open device
// at a time. Calls must be serialized by the caller.
type Module struct {
	reader      source.Reader
	provisioner source.Provisioner
	sink        diag.Sink
	alloc       func() *device

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

// New returns a closed battery module reading from r. A nil r reads from
// source.DefaultBatteryDir. p runs once on every open before anything is
// read; it may be nil.
func New(r source.Reader, p source.Provisioner, opts ...Option) *Module {
	if r == nil {
		r = source.NewDir(source.DefaultBatteryDir)
	}
	m := &Module{
		reader:      r,
		provisioner: p,
		sink:        diag.Default,
		alloc:       func() *device { return &device{} },
		slot:        hal.NewSlot[device](),
	}
	for _, o := range opts {
		o(m)
	}
	m.reader = m.withSink(r)
	return m
}

// withSink makes a Dir without its own sink report to the module's sink.
func (m *Module) withSink(r source.Reader) source.Reader {
	if d, ok := r.(*source.Dir); ok && d.Sink == nil {
		return d.WithSink(m.sink)
	}
	return r
}

// SetSource replaces the reader and provisioner used by the next open.
// It fails with hal.ErrAlreadyOpen while a device is open.
func (m *Module) SetSource(r source.Reader, p source.Provisioner) error {
	if m.slot.Open() {
		return hal.ErrAlreadyOpen
	}
	if r == nil {
		r = source.NewDir(source.DefaultBatteryDir)
	}
	m.reader = m.withSink(r)
	m.provisioner = p
	return nil
}

// Open opens the device, registers the battery methods with rt and takes
// the status snapshot.
func (m *Module) Open(ctx context.Context, rt hal.Runtime) (hal.Handle, error) {
	if rt == nil {
		diag.Errorf(m.sink, diag.BatOpenErr, "Battery device  open error.")
		return hal.Handle{}, hal.ErrInvalidArgument
	}

	h, dev, err := m.slot.Acquire(m.alloc)
	if err != nil {
		if errors.Is(err, hal.ErrOutOfMemory) {
			diag.Errorf(m.sink, diag.BatOutOfMemory, "Out of memory")
		}
		return hal.Handle{}, err
	}

	hal.RegisterAll(rt, h, Methods)

	err = provision(ctx, m.provisioner)
	if err != nil {
		logrus.WithField("module", Name).Errorf("failed to provision battery values: %v", err)
		m.slot.Release()
		hal.Unbind(rt, h)
		return hal.Handle{}, fmt.Errorf("%w: %v", hal.ErrGeneric, err)
	}

	dev.status = readStatus(m.reader)

	m.rt = rt
	m.state = hal.Open

	logrus.WithFields(logrus.Fields{
		"module":   Name,
		"handle":   h,
		"present":  dev.status.Present,
		"charging": dev.status.Charging,
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

// QueryStatus copies the status snapshot into status.
func (m *Module) QueryStatus(h hal.Handle, status *Status) error {
	logrus.Tracef("QueryStatus called")

	dev, err := m.slot.Lookup(h)
	if err != nil {
		return err
	}
	if status == nil {
		return hal.ErrInvalidArgument
	}

	*status = dev.status
	return nil
}

// RegisterStatusCallback stores fn and ctx, replacing any earlier callback.
func (m *Module) RegisterStatusCallback(h hal.Handle, fn hal.Callback, ctx any) error {
	logrus.Tracef("RegisterStatusCallback called")

	dev, err := m.slot.Lookup(h)
	if err != nil {
		return err
	}
	if fn == nil {
		return hal.ErrInvalidArgument
	}

	dev.callbacks.Set(hal.StatusChanged, fn, ctx)
	return nil
}

// StatusCallback returns the registered status callback, for whatever
// event source delivers notifications.
func (m *Module) StatusCallback(h hal.Handle) (hal.Subscription, bool) {
	dev, err := m.slot.Lookup(h)
	if err != nil {
		return hal.Subscription{}, false
	}
	return dev.callbacks.Get(hal.StatusChanged)
}

// Authenticate always succeeds: authentication is skipped in emulation.
func (m *Module) Authenticate(h hal.Handle, result *bool) error {
	logrus.Tracef("Authenticate called")

	if _, err := m.slot.Lookup(h); err != nil {
		return err
	}
	if result == nil {
		return hal.ErrInvalidArgument
	}

	*result = true
	return nil
}

// GetCTIAParameters copies the charging thresholds into param.
func (m *Module) GetCTIAParameters(h hal.Handle, param *CTIA) error {
	logrus.Tracef("GetCTIAParameters called")

	if _, err := m.slot.Lookup(h); err != nil {
		return err
	}
	if param == nil {
		return hal.ErrInvalidArgument
	}

	*param = ctiaParameters()
	return nil
}

// SetWakeupPercentage is not supported.
func (m *Module) SetWakeupPercentage(h hal.Handle, _ int) error {
	logrus.Tracef("SetWakeupPercentage called")

	if _, err := m.slot.Lookup(h); err != nil {
		return err
	}
	return hal.ErrNotImplemented
}

// SetFakeMode is not supported.
func (m *Module) SetFakeMode(h hal.Handle, _ bool) error {
	logrus.Tracef("SetFakeMode called")

	if _, err := m.slot.Lookup(h); err != nil {
		return err
	}
	return hal.ErrNotImplemented
}

// GetFakeMode reports false. enable is checked before the handle.
func (m *Module) GetFakeMode(h hal.Handle, enable *bool) error {
	logrus.Tracef("GetFakeMode called")

	if enable == nil {
		return hal.ErrInvalidArgument
	}
	if _, err := m.slot.Lookup(h); err != nil {
		return err
	}

	*enable = false
	return nil
}
