package hal

import (
	"fmt"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Handle identifies the open instance of a device module. Handles are
// compared by value: a handle is valid only while it equals the handle
// returned by the most recent successful open of the same module.
//
// The zero Handle is the null handle.
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h is the null handle.
func (h Handle) IsZero() bool {
	return h == Handle{}
}

func (h Handle) String() string {
	if h.IsZero() {
		return "null"
	}
	return fmt.Sprintf("%d.%d", h.index, h.gen)
}

var nextIndex atomic.Uint32

// Slot holds at most one live device record of type T. A module owns
// exactly one Slot; that is what makes the module single-instance.
//
// Slot does no locking. Callers serialize Acquire, Lookup and Release.
type Slot[T any] struct {
	index uint32
	gen   uint32
	dev   *T
}

// NewSlot returns an empty slot with its own handle index, so handles of
// one module never validate against another.
func NewSlot[T any]() *Slot[T] {
	return &Slot[T]{index: nextIndex.Add(1)}
}

// Acquire stores the record returned by alloc and returns a fresh handle.
func (s *Slot[T]) Acquire(alloc func() *T) (Handle, *T, error) {
	if s.dev != nil {
		return Handle{}, nil, ErrAlreadyOpen
	}

	dev := alloc()
	if dev == nil {
		return Handle{}, nil, ErrOutOfMemory
	}

	s.gen++
	if s.gen == 0 {
		s.gen++
	}
	s.dev = dev

	h := s.current()
	logrus.WithField("handle", h).Trace("slot acquired")

	return h, dev, nil
}

// Lookup returns the live record if h is the current handle.
func (s *Slot[T]) Lookup(h Handle) (*T, error) {
	if s.dev == nil || h.IsZero() || h != s.current() {
		return nil, ErrInvalidHandle
	}
	return s.dev, nil
}

// Release drops the live record, if any. It reports whether one was dropped.
func (s *Slot[T]) Release() bool {
	if s.dev == nil {
		return false
	}
	logrus.WithField("handle", s.current()).Trace("slot released")
	s.dev = nil
	return true
}

// Open reports whether the slot currently holds a record.
func (s *Slot[T]) Open() bool {
	return s.dev != nil
}

// Current returns the live handle, or the null handle if the slot is empty.
func (s *Slot[T]) Current() Handle {
	if s.dev == nil {
		return Handle{}
	}
	return s.current()
}

func (s *Slot[T]) current() Handle {
	return Handle{index: s.index, gen: s.gen}
}
