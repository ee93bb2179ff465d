package client

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/charlie0129/fakedev/pkg/events"
)

// SubscribeEvents streams daemon events until ctx is done or the daemon
// closes the stream. The returned channel is closed in either case.
func (c *Client) SubscribeEvents(ctx context.Context) (<-chan events.Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://unix/events", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to events: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: got %d subscribing to events", statusError(resp.StatusCode), resp.StatusCode)
	}

	ch := make(chan events.Event)
	go func() {
		defer close(ch)
		defer func() {
			if err := resp.Body.Close(); err != nil {
				logrus.Debugf("failed to close event stream: %v", err)
			}
		}()

		var name string
		var data []string
		sc := bufio.NewScanner(resp.Body)
		for sc.Scan() {
			line := sc.Text()
			switch {
			case line == "":
				if name == "" && len(data) == 0 {
					continue
				}
				ev := events.Event{Name: name, Data: []byte(strings.Join(data, "\n"))}
				name, data = "", nil
				select {
				case ch <- ev:
				case <-ctx.Done():
					return
				}
			case strings.HasPrefix(line, "event:"):
				name = strings.TrimPrefix(strings.TrimPrefix(line, "event:"), " ")
			case strings.HasPrefix(line, "data:"):
				data = append(data, strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
			}
		}
		if err := sc.Err(); err != nil && ctx.Err() == nil {
			logrus.Warnf("event stream ended: %v", err)
		}
	}()

	return ch, nil
}
