package daemon

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/fakedev/pkg/battery"
	"github.com/charlie0129/fakedev/pkg/charger"
	"github.com/charlie0129/fakedev/pkg/config"
	"github.com/charlie0129/fakedev/pkg/events"
	"github.com/charlie0129/fakedev/pkg/source"
)

func setupRoutes(h *Host) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ginLogger(logrus.StandardLogger()))
	router.GET("/modules", h.getModules)
	router.GET("/battery/status", h.getBatteryStatus)
	router.GET("/battery/ctia", h.getBatteryCTIA)
	router.GET("/battery/authenticate", h.getBatteryAuthenticate)
	router.GET("/battery/fake-mode", h.getBatteryFakeMode)
	router.PUT("/battery/fake-mode", h.setBatteryFakeMode)
	router.PUT("/battery/wakeup-percentage", h.setBatteryWakeupPercentage)
	router.POST("/battery/reopen", h.reopenBattery)
	router.GET("/charger/status", h.getChargerStatus)
	router.PUT("/charger/charging", h.setChargerCharging)
	router.GET("/charger/event", h.getChargerEvent)
	router.GET("/events", h.streamEvents)
	router.GET("/version", getVersion)

	return router
}

// configSource reads the battery source settings from conf each time the
// battery opens.
func configSource(conf config.Config) SourceFunc {
	return func() (source.Reader, source.Provisioner, error) {
		p, err := config.NewProvisioner(conf)
		if err != nil {
			return nil, nil, err
		}
		return source.NewDir(conf.BatteryDir()), p, nil
	}
}

func Run(configPath string, unixSocketPath string, allowNonRoot bool) error {
	conf, err := config.NewFile(configPath)
	if err != nil {
		logrus.Fatalf("failed to parse config during startup: %v", err)
	}
	logrus.WithFields(conf.LogrusFields()).Infof("config loaded")

	reload := func() {
		err := conf.Load()
		if err != nil {
			logrus.Errorf("failed to reload config: %v", err)
			return
		}
		logrus.WithFields(conf.LogrusFields()).Infof("config reloaded, battery values change on next reopen")
	}

	// Receive SIGHUP to reload config
	go func() {
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGHUP)
		for range sigc {
			reload()
		}
	}()

	stopWatching, err := watchConfig(configPath, reload)
	if err != nil {
		logrus.Warnf("config file will only be reloaded on SIGHUP: %v", err)
		stopWatching = func() {}
	}

	host := NewHost(
		battery.New(nil, nil),
		charger.New(),
		configSource(conf),
		events.NewEventHub(),
	)
	if err := host.OpenAll(context.Background()); err != nil {
		logrus.Errorf("not every module could be opened: %v", err)
	}

	router := setupRoutes(host)
	srv := &http.Server{
		Handler: router,
	}

	// Create the socket to listen on:
	l, err := net.Listen("unix", unixSocketPath)
	if err != nil {
		logrus.Fatal(err)
	}

	if conf.AllowNonRootAccess() || allowNonRoot {
		logrus.Infof("non-root access is allowed, changing permissions of %s to 0777", unixSocketPath)
		err = os.Chmod(unixSocketPath, 0777)
		if err != nil {
			logrus.Fatal(err)
		}
	}

	// Serve HTTP on unix socket
	go func() {
		logrus.Infof("http server listening on %s", l.Addr().String())
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatal(err)
		}
	}()

	// Handle common process-killing signals, so we can gracefully shut down:
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	// Wait for a SIGINT or SIGTERM:
	sig := <-sigc
	logrus.Infof("caught signal \"%s\": shutting down.", sig)

	logrus.Info("shutting down http server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = srv.Shutdown(ctx)
	if err != nil {
		logrus.Errorf("failed to shutdown http server: %v", err)
	}
	cancel()

	stopWatching()

	logrus.Info("closing modules")
	host.CloseAll()

	logrus.Info("exiting")
	return nil
}
