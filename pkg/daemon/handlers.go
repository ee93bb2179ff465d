package daemon

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/fakedev/pkg/battery"
	"github.com/charlie0129/fakedev/pkg/charger"
	"github.com/charlie0129/fakedev/pkg/hal"
	"github.com/charlie0129/fakedev/pkg/version"
)

// CodeNotOpen is the error code of a route whose module is not open.
const CodeNotOpen = "not_open"

// httpStatus maps a module error to the HTTP status the client expects.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, hal.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, hal.ErrInvalidHandle), errors.Is(err, hal.ErrAlreadyOpen):
		return http.StatusConflict
	case errors.Is(err, hal.ErrNotImplemented):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse is the body of every failed request. Code is
// hal.StatusCode of the module error, or "not_open" when the route's
// method is not bound.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func abort(c *gin.Context, status int, err error) {
	code := hal.StatusCode(err)
	if status == http.StatusNotFound {
		code = CodeNotOpen
	}
	c.IndentedJSON(status, ErrorResponse{Error: err.Error(), Code: code})
	_ = c.AbortWithError(status, err)
}

// dispatch calls fn through the host and writes its error, if any. It
// returns true when the caller should write a successful response.
func (h *Host) dispatch(c *gin.Context, tbl *hal.Table, method string, fn func(hal.Handle) error) bool {
	found, err := h.call(tbl, method, fn)
	if !found {
		abort(c, http.StatusNotFound, fmt.Errorf("%s is not registered; is the %s module open?", method, tbl.Module()))
		return false
	}
	if err != nil {
		logrus.Errorf("%s failed: %v", method, err)
		abort(c, httpStatus(err), err)
		return false
	}
	return true
}

func (h *Host) getModules(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, h.Modules())
}

func (h *Host) getBatteryStatus(c *gin.Context) {
	var s battery.Status
	if h.dispatch(c, h.batteryTable, "battery_query_battery_status", func(hd hal.Handle) error {
		return h.battery.QueryStatus(hd, &s)
	}) {
		c.IndentedJSON(http.StatusOK, s)
	}
}

func (h *Host) getBatteryCTIA(c *gin.Context) {
	var p battery.CTIA
	if h.dispatch(c, h.batteryTable, "battery_get_ctia_parameters", func(hd hal.Handle) error {
		return h.battery.GetCTIAParameters(hd, &p)
	}) {
		c.IndentedJSON(http.StatusOK, p)
	}
}

func (h *Host) getBatteryAuthenticate(c *gin.Context) {
	var ok bool
	if h.dispatch(c, h.batteryTable, "battery_authenticate_battery", func(hd hal.Handle) error {
		return h.battery.Authenticate(hd, &ok)
	}) {
		c.IndentedJSON(http.StatusOK, ok)
	}
}

func (h *Host) getBatteryFakeMode(c *gin.Context) {
	var enabled bool
	if h.dispatch(c, h.batteryTable, "battery_get_fake_mode", func(hd hal.Handle) error {
		return h.battery.GetFakeMode(hd, &enabled)
	}) {
		c.IndentedJSON(http.StatusOK, enabled)
	}
}

func (h *Host) setBatteryFakeMode(c *gin.Context) {
	var enabled bool
	if err := c.BindJSON(&enabled); err != nil {
		abort(c, http.StatusBadRequest, fmt.Errorf("%w: %v", hal.ErrInvalidArgument, err))
		return
	}

	if h.dispatch(c, h.batteryTable, "battery_set_fake_mode", func(hd hal.Handle) error {
		return h.battery.SetFakeMode(hd, enabled)
	}) {
		c.IndentedJSON(http.StatusCreated, "ok")
	}
}

func (h *Host) setBatteryWakeupPercentage(c *gin.Context) {
	var p int
	if err := c.BindJSON(&p); err != nil {
		abort(c, http.StatusBadRequest, fmt.Errorf("%w: %v", hal.ErrInvalidArgument, err))
		return
	}

	if h.dispatch(c, h.batteryTable, "battery_set_wakeup_percentage", func(hd hal.Handle) error {
		return h.battery.SetWakeupPercentage(hd, p)
	}) {
		c.IndentedJSON(http.StatusCreated, "ok")
	}
}

func (h *Host) reopenBattery(c *gin.Context) {
	hd, err := h.ReopenBattery(c.Request.Context())
	if err != nil {
		abort(c, httpStatus(err), err)
		return
	}

	logrus.Infof("battery reopened with handle %s", hd)

	c.IndentedJSON(http.StatusCreated, hd.String())
}

func (h *Host) getChargerStatus(c *gin.Context) {
	var s charger.Status
	if h.dispatch(c, h.chargerTable, "charger_query_charger_status", func(hd hal.Handle) error {
		return h.charger.QueryStatus(hd, &s)
	}) {
		c.IndentedJSON(http.StatusOK, s)
	}
}

func (h *Host) setChargerCharging(c *gin.Context) {
	var enable bool
	if err := c.BindJSON(&enable); err != nil {
		abort(c, http.StatusBadRequest, fmt.Errorf("%w: %v", hal.ErrInvalidArgument, err))
		return
	}

	var s charger.Status
	method, fn := "charger_disable_charging", h.charger.DisableCharging
	if enable {
		method, fn = "charger_enable_charging", h.charger.EnableCharging
	}

	if h.dispatch(c, h.chargerTable, method, func(hd hal.Handle) error {
		return fn(hd, &s)
	}) {
		c.IndentedJSON(http.StatusCreated, s)
	}
}

func (h *Host) getChargerEvent(c *gin.Context) {
	var e charger.Event
	if h.dispatch(c, h.chargerTable, "charger_query_charger_event", func(hd hal.Handle) error {
		return h.charger.QueryEvent(hd, &e)
	}) {
		c.IndentedJSON(http.StatusOK, e.String())
	}
}

func (h *Host) streamEvents(c *gin.Context) {
	ch := h.hub.Subscribe()
	defer h.hub.Unsubscribe(ch)

	c.Stream(func(_ io.Writer) bool {
		select {
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(ev.Name, string(ev.Data))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

func getVersion(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, version.Version)
}
