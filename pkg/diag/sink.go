// Package diag carries tagged diagnostics out of the device modules.
// Diagnostics are a side channel: they never change what an operation returns.
package diag

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Sink receives (id, message) pairs.
type Sink interface {
	Report(id MsgID, msg string)
}

// Logrus reports diagnostics as error entries on the standard logger.
type Logrus struct{}

// Report implements Sink.
func (Logrus) Report(id MsgID, msg string) {
	logrus.WithField("msgid", string(id)).Error(msg)
}

// Default is used by modules that were not given a sink.
var Default Sink = Logrus{}

// Errorf formats a message and reports it to s, falling back to Default.
func Errorf(s Sink, id MsgID, format string, a ...interface{}) {
	if s == nil {
		s = Default
	}
	s.Report(id, fmt.Sprintf(format, a...))
}

// Entry is one recorded diagnostic.
type Entry struct {
	ID  MsgID
	Msg string
}

// Recorder keeps every reported diagnostic in memory. Used in tests.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// Report implements Sink.
func (r *Recorder) Report(id MsgID, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{ID: id, Msg: msg})
}

// Entries returns a copy of the recorded diagnostics.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Has reports whether a diagnostic with the given id was recorded.
func (r *Recorder) Has(id MsgID) bool {
	for _, e := range r.Entries() {
		if e.ID == id {
			return true
		}
	}
	return false
}
