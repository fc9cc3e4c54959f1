package alert

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/dbnav/pkg/core"
)

func TestChannel_TriggerShowsImmediately(t *testing.T) {
	c := NewChannel("alert", DefaultDuration, nil)
	defer c.Close()

	c.Trigger("saved", core.SeverityInfo, time.Second)

	got := c.Current()
	assert.True(t, got.Visible)
	assert.Equal(t, "saved", got.Message)
	assert.Equal(t, core.SeverityInfo, got.Severity)
	assert.Equal(t, time.Second, got.Duration)
}

func TestChannel_ExpiresAfterDuration(t *testing.T) {
	c := NewChannel("alert", DefaultDuration, nil)
	defer c.Close()

	start := time.Now()
	c.Trigger("boom", core.SeverityError, 40*time.Millisecond)

	require.Eventually(t, func() bool { return !c.Current().Visible }, time.Second, 5*time.Millisecond)
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)

	got := c.Current()
	assert.Empty(t, got.Message)
	assert.Equal(t, core.SeverityError, got.Severity, "severity is retained after expiry")
}

func TestChannel_SupersedingCancelsStaleExpiry(t *testing.T) {
	c := NewChannel("alert", DefaultDuration, nil)
	defer c.Close()

	c.Trigger("first", core.SeveritySuccess, 30*time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	c.Trigger("second", core.SeverityWarning, 300*time.Millisecond)

	// The first timer would have fired at ~30ms; the channel must stay visible.
	assert.Never(t, func() bool { return !c.Current().Visible }, 120*time.Millisecond, 5*time.Millisecond)

	got := c.Current()
	assert.Equal(t, "second", got.Message)
	assert.Equal(t, core.SeverityWarning, got.Severity)
	assert.Equal(t, 300*time.Millisecond, got.Duration)

	require.Eventually(t, func() bool { return !c.Current().Visible }, time.Second, 5*time.Millisecond)
}

func TestChannel_StaleExpireIsNoop(t *testing.T) {
	c := NewChannel("alert", DefaultDuration, nil)
	defer c.Close()

	c.Trigger("first", core.SeveritySuccess, time.Hour)
	stale := c.Generation()
	c.Trigger("second", core.SeveritySuccess, time.Hour)

	// Simulate a timer that fired just before being stopped.
	c.expire(stale)

	got := c.Current()
	assert.True(t, got.Visible)
	assert.Equal(t, "second", got.Message)
}

func TestChannel_DefaultsAndFallbacks(t *testing.T) {
	c := NewChannel("result", DefaultResultDuration, nil)
	defer c.Close()

	c.Show("done", core.Severity("bogus"))

	got := c.Current()
	assert.Equal(t, DefaultResultDuration, got.Duration)
	assert.Equal(t, core.SeveritySuccess, got.Severity)

	zero := NewChannel("zero", 0, nil)
	assert.Equal(t, DefaultDuration, zero.Current().Duration)
}

func TestChannel_Dismiss(t *testing.T) {
	var mu sync.Mutex
	var changes []core.Notification
	c := NewChannel("alert", DefaultDuration, func(n core.Notification) {
		mu.Lock()
		changes = append(changes, n)
		mu.Unlock()
	})
	defer c.Close()

	c.Dismiss() // nothing visible: no change reported
	c.Trigger("hello", core.SeveritySuccess, time.Hour)
	c.Dismiss()

	assert.False(t, c.Current().Visible)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, changes, 2)
	assert.True(t, changes[0].Visible)
	assert.False(t, changes[1].Visible)
}

func TestChannel_OnChangePanicIsContained(t *testing.T) {
	c := NewChannel("alert", DefaultDuration, func(core.Notification) { panic("renderer bug") })
	defer c.Close()

	assert.NotPanics(t, func() { c.Trigger("x", core.SeverityInfo, 10*time.Millisecond) })
	require.Eventually(t, func() bool { return !c.Current().Visible }, time.Second, 5*time.Millisecond)
}

func TestChannels_AreIndependent(t *testing.T) {
	general := NewChannel("alert", DefaultDuration, nil)
	result := NewChannel("resultAlert", DefaultResultDuration, nil)
	defer general.Close()
	defer result.Close()

	general.Trigger("nav refreshed", core.SeveritySuccess, time.Hour)
	before := result.Current()

	result.Trigger("3 rows", core.SeverityInfo, 20*time.Millisecond)
	assert.Equal(t, "nav refreshed", general.Current().Message)
	assert.NotEqual(t, before, result.Current())

	require.Eventually(t, func() bool { return !result.Current().Visible }, time.Second, 5*time.Millisecond)
	assert.True(t, general.Current().Visible)
	assert.Equal(t, "nav refreshed", general.Current().Message)
}
