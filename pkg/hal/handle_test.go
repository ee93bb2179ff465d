package hal

import (
	"errors"
	"testing"
)

type record struct {
	n int
}

func TestSlotAcquire(t *testing.T) {
	s := NewSlot[record]()

	h, dev, err := s.Acquire(func() *record { return &record{n: 1} })
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if h.IsZero() {
		t.Fatalf("Acquire() returned the null handle")
	}

	_, _, err = s.Acquire(func() *record { return &record{n: 2} })
	if !errors.Is(err, ErrAlreadyOpen) {
		t.Fatalf("second Acquire() error = %v, want %v", err, ErrAlreadyOpen)
	}

	got, err := s.Lookup(h)
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if got != dev || got.n != 1 {
		t.Errorf("Lookup() = %+v, want the first record", got)
	}
}

func TestSlotAcquireOutOfMemory(t *testing.T) {
	s := NewSlot[record]()

	h, _, err := s.Acquire(func() *record { return nil })
	if !errors.Is(err, ErrOutOfMemory) {
		t.Fatalf("Acquire() error = %v, want %v", err, ErrOutOfMemory)
	}
	if !h.IsZero() {
		t.Errorf("Acquire() handle = %v, want null", h)
	}
	if s.Open() {
		t.Errorf("slot should stay empty after a failed allocation")
	}
}

func TestSlotLookup(t *testing.T) {
	s := NewSlot[record]()
	other := NewSlot[record]()

	if _, err := s.Lookup(Handle{}); !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("Lookup(null) before open error = %v, want %v", err, ErrInvalidHandle)
	}

	h, _, _ := s.Acquire(func() *record { return &record{} })
	oh, _, _ := other.Acquire(func() *record { return &record{} })

	tests := []struct {
		name    string
		handle  Handle
		wantErr error
	}{
		{name: "current handle", handle: h},
		{name: "null handle", handle: Handle{}, wantErr: ErrInvalidHandle},
		{name: "handle of another slot", handle: oh, wantErr: ErrInvalidHandle},
		{name: "stale generation", handle: Handle{index: h.index, gen: h.gen + 1}, wantErr: ErrInvalidHandle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Lookup(tt.handle)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Lookup() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSlotReopenInvalidatesOldHandle(t *testing.T) {
	s := NewSlot[record]()

	h1, _, _ := s.Acquire(func() *record { return &record{} })
	if !s.Release() {
		t.Fatalf("Release() = false, want true")
	}
	if s.Release() {
		t.Errorf("second Release() = true, want false")
	}

	h2, _, err := s.Acquire(func() *record { return &record{} })
	if err != nil {
		t.Fatalf("Acquire() after release error = %v", err)
	}
	if h1 == h2 {
		t.Fatalf("reopen returned the same handle %v", h1)
	}
	if _, err := s.Lookup(h1); !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("Lookup(old handle) error = %v, want %v", err, ErrInvalidHandle)
	}
	if s.Current() != h2 {
		t.Errorf("Current() = %v, want %v", s.Current(), h2)
	}
}
