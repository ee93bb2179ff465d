package events

import "encoding/json"

// Event name constants
const (
	ModuleOpened = "module.opened"
	ModuleClosed = "module.closed"
)

// Event is a generic SSE event from daemon.
type Event struct {
	Name string          // SSE event name
	Data json.RawMessage // Raw JSON payload
}

// ModuleEvent is the payload of module.opened and module.closed.
type ModuleEvent struct {
	Module string `json:"module"`
	Handle string `json:"handle"`
	Error  string `json:"error,omitempty"`
	Ts     int64  `json:"ts"`
}

// DecodeAs decodes the event payload into T. An empty payload decodes to
// the zero value of T.
func DecodeAs[T any](e Event) (T, error) {
	var zero T
	if len(e.Data) == 0 {
		return zero, nil
	}
	var v T
	if err := json.Unmarshal(e.Data, &v); err != nil {
		return zero, err
	}
	return v, nil
}
