package hal

import "errors"

var (
	// ErrInvalidArgument is returned when a required argument or output
	// destination is nil.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidHandle is returned when a handle does not refer to the
	// currently open device.
	ErrInvalidHandle = errors.New("invalid handle")

	// ErrAlreadyOpen is returned by Open while a device is already open.
	ErrAlreadyOpen = errors.New("device already open")

	// ErrOutOfMemory is returned when the device record cannot be allocated.
	ErrOutOfMemory = errors.New("out of memory")

	// ErrNotImplemented is returned by operations that exist but are not
	// supported in emulation.
	ErrNotImplemented = errors.New("not implemented")

	// ErrGeneric is returned when device initialization fails.
	ErrGeneric = errors.New("generic error")
)

var codes = []struct {
	err  error
	code string
}{
	{ErrInvalidArgument, "invalid_argument"},
	{ErrInvalidHandle, "invalid_handle"},
	{ErrAlreadyOpen, "already_open"},
	{ErrOutOfMemory, "out_of_memory"},
	{ErrNotImplemented, "not_implemented"},
	{ErrGeneric, "generic"},
}

// StatusCode returns a short stable code for err. It returns "ok" for nil
// and "generic" for errors outside the taxonomy.
func StatusCode(err error) string {
	if err == nil {
		return "ok"
	}
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return "generic"
}

// ErrorFromCode is the inverse of StatusCode. Unknown codes map to ErrGeneric.
func ErrorFromCode(code string) error {
	if code == "ok" {
		return nil
	}
	for _, c := range codes {
		if c.code == code {
			return c.err
		}
	}
	return ErrGeneric
}
