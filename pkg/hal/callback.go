package hal

// Callback is a subscriber to device notifications. ctx is the opaque value
// given at registration.
type Callback func(h Handle, err error, ctx any)

// Category selects which notification a callback subscribes to.
type Category int

const (
	// StatusChanged fires when the device status changes.
	StatusChanged Category = iota
	// StateChanged fires when the device state changes (charger only).
	StateChanged
)

func (c Category) String() string {
	switch c {
	case StatusChanged:
		return "status-changed"
	case StateChanged:
		return "state-changed"
	default:
		return "unknown"
	}
}

// Subscription is a stored callback and its context.
type Subscription struct {
	Func    Callback
	Context any
}

// Callbacks holds at most one subscription per category. Nothing in this
// package invokes them; an external event source reads them with Get.
type Callbacks struct {
	subs map[Category]Subscription
}

// Set stores fn and ctx for c, replacing any earlier subscription.
func (cb *Callbacks) Set(c Category, fn Callback, ctx any) {
	if cb.subs == nil {
		cb.subs = make(map[Category]Subscription)
	}
	cb.subs[c] = Subscription{Func: fn, Context: ctx}
}

// Get returns the subscription for c.
func (cb *Callbacks) Get(c Category) (Subscription, bool) {
	s, ok := cb.subs[c]
	return s, ok
}
