package client

import (
	"encoding/json"
	"strconv"

	pkgerrors "github.com/pkg/errors"

	"github.com/charlie0129/fakedev/pkg/battery"
	"github.com/charlie0129/fakedev/pkg/charger"
	"github.com/charlie0129/fakedev/pkg/daemon"
)

func getJSON[T any](c *Client, path, what string) (T, error) {
	var v T
	ret, err := c.Get(path)
	if err != nil {
		return v, pkgerrors.Wrapf(err, "failed to get %s", what)
	}
	err = json.Unmarshal([]byte(ret), &v)
	if err != nil {
		return v, pkgerrors.Wrapf(err, "failed to unmarshal %s", what)
	}
	return v, nil
}

func (c *Client) GetModules() ([]daemon.ModuleInfo, error) {
	return getJSON[[]daemon.ModuleInfo](c, "/modules", "modules")
}

func (c *Client) GetBatteryStatus() (battery.Status, error) {
	return getJSON[battery.Status](c, "/battery/status", "battery status")
}

func (c *Client) GetBatteryCTIA() (battery.CTIA, error) {
	return getJSON[battery.CTIA](c, "/battery/ctia", "CTIA parameters")
}

func (c *Client) Authenticate() (bool, error) {
	return getJSON[bool](c, "/battery/authenticate", "authentication result")
}

func (c *Client) GetFakeMode() (bool, error) {
	return getJSON[bool](c, "/battery/fake-mode", "fake mode")
}

func (c *Client) SetFakeMode(enabled bool) (string, error) {
	return c.Put("/battery/fake-mode", strconv.FormatBool(enabled))
}

func (c *Client) SetWakeupPercentage(p int) (string, error) {
	return c.Put("/battery/wakeup-percentage", strconv.Itoa(p))
}

func (c *Client) ReopenBattery() (string, error) {
	ret, err := c.Post("/battery/reopen", "")
	if err != nil {
		return "", err
	}
	var handle string
	if err := json.Unmarshal([]byte(ret), &handle); err != nil {
		return "", pkgerrors.Wrap(err, "failed to unmarshal handle")
	}
	return handle, nil
}

func (c *Client) GetChargerStatus() (charger.Status, error) {
	return getJSON[charger.Status](c, "/charger/status", "charger status")
}

func (c *Client) SetCharging(enable bool) (charger.Status, error) {
	var s charger.Status
	ret, err := c.Put("/charger/charging", strconv.FormatBool(enable))
	if err != nil {
		return s, err
	}
	if err := json.Unmarshal([]byte(ret), &s); err != nil {
		return s, pkgerrors.Wrap(err, "failed to unmarshal charger status")
	}
	return s, nil
}

func (c *Client) GetChargerEvent() (string, error) {
	return getJSON[string](c, "/charger/event", "charger event")
}

func (c *Client) GetVersion() (string, error) {
	return getJSON[string](c, "/version", "version")
}
