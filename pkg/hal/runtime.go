package hal

import (
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
)

// MethodID identifies an operation a module exposes to the host runtime.
type MethodID int

// Method pairs a MethodID with the name the host runtime dispatches on.
type Method struct {
	ID   MethodID
	Name string
}

// Runtime is the host side of a module. Modules announce their operations
// to it during open, bound to the handle being opened.
type Runtime interface {
	RegisterMethod(h Handle, id MethodID, name string)
}

// Binding is one registered method.
type Binding struct {
	Module string
	Handle Handle
	Method Method
}

// Table is an in-process Runtime that records method registrations so
// calls can be routed by name.
type Table struct {
	module string

	mu       sync.RWMutex
	bindings map[string]Binding
}

var _ Runtime = &Table{}

// NewTable returns an empty dispatch table for the named module.
func NewTable(module string) *Table {
	return &Table{
		module:   module,
		bindings: make(map[string]Binding),
	}
}

// RegisterMethod implements Runtime. A later registration of the same name
// replaces the earlier one.
func (t *Table) RegisterMethod(h Handle, id MethodID, name string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.bindings[name] = Binding{
		Module: t.module,
		Handle: h,
		Method: Method{ID: id, Name: name},
	}

	logrus.WithFields(logrus.Fields{
		"module": t.module,
		"handle": h,
		"method": name,
	}).Trace("method registered")
}

// Lookup returns the binding registered under name.
func (t *Table) Lookup(name string) (Binding, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	b, ok := t.bindings[name]
	return b, ok
}

// Unbind removes every method bound to h.
func (t *Table) Unbind(h Handle) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for name, b := range t.bindings {
		if b.Handle == h {
			delete(t.bindings, name)
		}
	}
}

// Names returns the registered method names, sorted.
func (t *Table) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	names := make([]string, 0, len(t.bindings))
	for name := range t.bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Module returns the module name the table was created for.
func (t *Table) Module() string {
	return t.module
}

// RegisterAll registers every method in methods against h.
func RegisterAll(rt Runtime, h Handle, methods []Method) {
	for _, m := range methods {
		rt.RegisterMethod(h, m.ID, m.Name)
	}
}

// Unbind removes the methods bound to h from rt, if rt supports it.
func Unbind(rt Runtime, h Handle) {
	if u, ok := rt.(interface{ Unbind(Handle) }); ok {
		u.Unbind(h)
	}
}
