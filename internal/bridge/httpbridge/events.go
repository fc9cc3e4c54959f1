package httpbridge

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/leapstack-labs/dbnav/pkg/core"
)

// Subscribe opens the event stream. Events are delivered in arrival order.
// A dropped stream is reopened with exponential backoff until ctx is done,
// at which point the channel is closed.
func (c *Client) Subscribe(ctx context.Context) (<-chan core.Event, error) {
	out := make(chan core.Event)
	go func() {
		defer close(out)
		delay := c.minBackoff
		for {
			connected, err := c.readStream(ctx, out)
			if ctx.Err() != nil {
				return
			}
			if connected {
				delay = c.minBackoff
			}
			c.logger.Warn("event stream dropped, reconnecting", "error", err, "delay", delay)

			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
			delay = min(delay*2, c.maxBackoff)
		}
	}()
	return out, nil
}

// readStream reads one connection until it ends. connected reports whether
// the connection was established.
func (c *Client) readStream(ctx context.Context, out chan<- core.Event) (connected bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+eventsPath, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.stream.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("events: HTTP %d: %w", resp.StatusCode, ErrStatus)
	}
	c.logger.Info("event stream connected", "url", c.base+eventsPath)

	err = ReadEvents(resp.Body, func(ev core.Event) bool {
		select {
		case out <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	})
	if err == nil {
		err = io.EOF
	}
	return true, err
}

// ReadEvents parses a text/event-stream body and calls emit for each
// event terminated by a blank line. It stops when emit returns false or the
// body ends; a trailing event cut off by the end of the body is dropped.
// Events without a name are reported as "message".
func ReadEvents(r io.Reader, emit func(core.Event) bool) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		ev   core.Event
		data []string
	)
	flush := func() bool {
		if ev.Name == "" && len(data) == 0 {
			return true
		}
		if ev.Name == "" {
			ev.Name = "message"
		}
		if len(data) > 0 {
			ev.Payload = []byte(strings.Join(data, "\n"))
		}
		ok := emit(ev)
		ev, data = core.Event{}, nil
		return ok
	}

	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			if !flush() {
				return nil
			}
			continue
		}
		if strings.HasPrefix(line, ":") {
			continue
		}
		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")
		switch field {
		case "event":
			ev.Name = value
		case "data":
			data = append(data, value)
		case "id":
			ev.ID = value
		}
	}
	return sc.Err()
}
