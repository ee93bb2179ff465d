package hal

// State is the lifecycle state of a module.
type State int

const (
	// Unopened means the module has never been opened.
	Unopened State = iota
	// Open means a device handle is live.
	Open
	// Closed means the last handle was closed. A new open starts a new cycle.
	Closed
)

func (s State) String() string {
	switch s {
	case Unopened:
		return "unopened"
	case Open:
		return "open"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}
