package daemon

import (
	"fmt"
	"math"
	"net/http"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Logger is the logrus logger handler
func ginLogger(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// other handler can change c.Path so:
		path := c.Request.URL.Path
		start := time.Now()
		c.Next()
		stop := time.Since(start)
		latency := int(math.Ceil(float64(stop.Nanoseconds()) / 1000000.0))
		statusCode := c.Writer.Status()
		dataLength := c.Writer.Size()
		if dataLength < 0 {
			dataLength = 0
		}

		entry := logger.WithFields(logrus.Fields{
			"statusCode": statusCode,
			"latency":    latency, // time to process
			"method":     c.Request.Method,
			"path":       path,
			"dataLength": dataLength,
		})

		msg := fmt.Sprintf("%s %s %d (%dms)", c.Request.Method, path, statusCode, latency)
		switch {
		case statusCode >= http.StatusInternalServerError:
			entry.Error(msg)
		case statusCode >= http.StatusBadRequest:
			// Module errors are part of normal operation, e.g. the
			// operations emulation does not support.
			entry.Warn(msg)
		default:
			entry.Debug(msg)
		}
	}
}

// watchConfig calls reload whenever the file at path is written or
// replaced. The directory is watched so editors that rename over the file
// are caught too.
func watchConfig(path string, reload func()) (func(), error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	err = w.Add(filepath.Dir(path))
	if err != nil {
		_ = w.Close()
		return nil, err
	}

	target := filepath.Clean(path)

	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				logrus.WithField("op", ev.Op.String()).Debug("config file changed")
				reload()
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logrus.Warnf("config watcher error: %v", err)
			}
		}
	}()

	return func() {
		if err := w.Close(); err != nil {
			logrus.Warnf("failed to stop config watcher: %v", err)
		}
	}, nil
}
