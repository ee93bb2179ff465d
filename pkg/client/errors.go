package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/charlie0129/fakedev/pkg/daemon"
	"github.com/charlie0129/fakedev/pkg/hal"
)

// Connection failures.
var (
	ErrDaemonNotRunning = errors.New("fakedev daemon not running")
	ErrPermissionDenied = errors.New("permission denied on daemon socket")
)

// ErrNotFound means the daemon has no route bound for the request, which
// usually means the module behind it is not open.
var ErrNotFound = errors.New("404 not found")

// responseError turns a failed daemon response into an error callers can
// test with errors.Is against ErrNotFound or the hal sentinels. The error
// code in the body wins; the HTTP status is the fallback.
func responseError(status int, body []byte) error {
	var resp daemon.ErrorResponse
	if err := json.Unmarshal(body, &resp); err != nil || resp.Code == "" {
		return fmt.Errorf("%w: got %d: %s", statusError(status), status, strings.TrimSpace(string(body)))
	}
	if resp.Code == daemon.CodeNotOpen {
		return fmt.Errorf("%w: %s", ErrNotFound, resp.Error)
	}
	return fmt.Errorf("%w: %s", hal.ErrorFromCode(resp.Code), resp.Error)
}

func statusError(status int) error {
	switch status {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest:
		return hal.ErrInvalidArgument
	case http.StatusConflict:
		return hal.ErrInvalidHandle
	case http.StatusNotImplemented:
		return hal.ErrNotImplemented
	default:
		return hal.ErrGeneric
	}
}
