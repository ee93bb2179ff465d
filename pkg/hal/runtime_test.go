package hal

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
)

func TestTableRegisterAndUnbind(t *testing.T) {
	tbl := NewTable("battery")
	s := NewSlot[record]()
	h, _, _ := s.Acquire(func() *record { return &record{} })

	RegisterAll(tbl, h, []Method{
		{ID: 1, Name: "b_query"},
		{ID: 0, Name: "a_query"},
	})

	if got, want := tbl.Names(), []string{"a_query", "b_query"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	b, ok := tbl.Lookup("b_query")
	if !ok {
		t.Fatalf("Lookup() did not find b_query")
	}
	if b.Handle != h || b.Method.ID != 1 || b.Module != "battery" {
		t.Errorf("Lookup() = %+v", b)
	}

	tbl.Unbind(h)
	if n := len(tbl.Names()); n != 0 {
		t.Errorf("Names() after Unbind has %d entries, want 0", n)
	}
}

func TestCallbacksOverwrite(t *testing.T) {
	var cb Callbacks
	var calls []string

	first := func(Handle, error, any) { calls = append(calls, "first") }
	second := func(Handle, error, any) { calls = append(calls, "second") }

	if _, ok := cb.Get(StatusChanged); ok {
		t.Fatalf("Get() on empty registry returned a subscription")
	}

	cb.Set(StatusChanged, first, "ctx1")
	cb.Set(StatusChanged, second, "ctx2")

	sub, ok := cb.Get(StatusChanged)
	if !ok {
		t.Fatalf("Get() returned nothing")
	}
	if sub.Context != "ctx2" {
		t.Errorf("Context = %v, want ctx2", sub.Context)
	}
	sub.Func(Handle{}, nil, sub.Context)
	if !reflect.DeepEqual(calls, []string{"second"}) {
		t.Errorf("calls = %v, want only the second callback", calls)
	}
	if _, ok := cb.Get(StateChanged); ok {
		t.Errorf("StateChanged should be independent of StatusChanged")
	}
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{ErrInvalidHandle, "invalid_handle"},
		{fmt.Errorf("open: %w", ErrAlreadyOpen), "already_open"},
		{ErrNotImplemented, "not_implemented"},
		{errors.New("boom"), "generic"},
	}
	for _, tt := range tests {
		if got := StatusCode(tt.err); got != tt.want {
			t.Errorf("StatusCode(%v) = %q, want %q", tt.err, got, tt.want)
		}
		if tt.want != "generic" {
			if back := ErrorFromCode(tt.want); !errors.Is(tt.err, back) && !(tt.err == nil && back == nil) {
				t.Errorf("ErrorFromCode(%q) = %v, want %v", tt.want, back, tt.err)
			}
		}
	}
}
