// Package alert implements transient notification channels with auto-expiry.
package alert

import (
	"sync"
	"time"

	"github.com/leapstack-labs/dbnav/pkg/core"
)

// Default expiry durations.
const (
	DefaultDuration       = 3 * time.Second
	DefaultResultDuration = 5 * time.Second
)

// Channel is one notification slot. A Trigger makes it visible and arms a
// single expiry timer; a newer Trigger cancels the pending one.
type Channel struct {
	name     string
	fallback time.Duration
	onChange func(core.Notification)

	mu    sync.Mutex
	state core.Notification
	timer *time.Timer
	gen   uint64
}

// NewChannel creates a channel whose Trigger falls back to fallback when
// called without a positive duration. onChange, if set, is called after
// every visible change, outside the channel lock.
func NewChannel(name string, fallback time.Duration, onChange func(core.Notification)) *Channel {
	if fallback <= 0 {
		fallback = DefaultDuration
	}
	return &Channel{
		name:     name,
		fallback: fallback,
		onChange: onChange,
		state: core.Notification{
			Severity: core.SeveritySuccess,
			Duration: fallback,
		},
	}
}

// Name returns the channel name.
func (c *Channel) Name() string {
	return c.name
}

// Trigger shows msg with the given severity for duration.
func (c *Channel) Trigger(msg string, severity core.Severity, duration time.Duration) {
	if duration <= 0 {
		duration = c.fallback
	}
	if !severity.Valid() {
		severity = core.SeveritySuccess
	}

	c.mu.Lock()
	c.stopLocked()
	c.gen++
	gen := c.gen
	c.state = core.Notification{
		Message:  msg,
		Severity: severity,
		Visible:  true,
		Duration: duration,
	}
	c.timer = time.AfterFunc(duration, func() { c.expire(gen) })
	snap := c.state
	c.mu.Unlock()

	c.notify(snap)
}

// Show is Trigger with the channel's default duration.
func (c *Channel) Show(msg string, severity core.Severity) {
	c.Trigger(msg, severity, 0)
}

// expire hides the notification armed by generation gen. A timer that fired
// after being superseded finds a newer generation and does nothing.
func (c *Channel) expire(gen uint64) {
	c.mu.Lock()
	if gen != c.gen || !c.state.Visible {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	c.state.Message = ""
	c.state.Visible = false
	snap := c.state
	c.mu.Unlock()

	c.notify(snap)
}

// Dismiss hides the notification now and cancels its expiry.
func (c *Channel) Dismiss() {
	c.mu.Lock()
	if !c.state.Visible {
		c.mu.Unlock()
		return
	}
	c.stopLocked()
	c.gen++
	c.state.Message = ""
	c.state.Visible = false
	snap := c.state
	c.mu.Unlock()

	c.notify(snap)
}

// Current returns the channel state.
func (c *Channel) Current() core.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Generation returns how many times the channel was triggered or dismissed.
func (c *Channel) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// Close cancels any pending expiry without changing the state.
func (c *Channel) Close() {
	c.mu.Lock()
	c.stopLocked()
	c.gen++
	c.mu.Unlock()
}

func (c *Channel) stopLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Channel) notify(n core.Notification) {
	if c.onChange == nil {
		return
	}
	defer func() { _ = recover() }()
	c.onChange(n)
}
