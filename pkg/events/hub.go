package events

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"
)

const (
	// subscriberBuffer is how many events a slow subscriber may lag behind
	// before events are dropped for it.
	subscriberBuffer = 16
	// replayLimit is how many past events a new subscriber receives first.
	replayLimit = 8
)

// EventHub fans module lifecycle events out to SSE subscribers. New
// subscribers first receive the most recent events so they see the
// current module states without polling.
type EventHub struct {
	mu     sync.Mutex
	subs   map[chan Event]struct{}
	recent []Event
}

func NewEventHub() *EventHub {
	return &EventHub{subs: make(map[chan Event]struct{})}
}

// Subscribe returns a channel of events, pre-filled with the recent ones.
func (h *EventHub) Subscribe() chan Event {
	ch := make(chan Event, subscriberBuffer)

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ev := range h.recent {
		ch <- ev
	}
	h.subs[ch] = struct{}{}

	return ch
}

// Unsubscribe closes ch. Unknown or already closed channels are ignored.
func (h *EventHub) Unsubscribe(ch chan Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subs[ch]; !ok {
		return
	}
	delete(h.subs, ch)
	close(ch)
}

// Publish encodes payload and hands it to every subscriber without
// blocking. A nil hub drops everything.
func (h *EventHub) Publish(name string, payload any) {
	if h == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		logrus.WithField("event", name).Warnf("failed to encode event: %v", err)
		return
	}
	ev := Event{Name: name, Data: data}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.recent = append(h.recent, ev)
	if len(h.recent) > replayLimit {
		h.recent = h.recent[len(h.recent)-replayLimit:]
	}

	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
			logrus.WithFields(logrus.Fields{
				"event":   name,
				"pending": len(ch),
			}).Debug("subscriber too slow, event dropped")
		}
	}
}
