package playground

import (
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	MinDelaySeconds = 0
	MaxDelaySeconds = 10
)

// DelayReader exposes the current artificial latency. Dispatchers receive it
// as a read-only accessor and sample it once per gesture.
type DelayReader interface {
	DelaySeconds() int
}

// DelayPolicy stores the artificial latency setting shared by delayable
// widgets.
type DelayPolicy struct {
	mu      sync.RWMutex
	seconds int
}

// NewDelayPolicy builds a policy with the initial value clamped to range.
func NewDelayPolicy(seconds int) *DelayPolicy {
	return &DelayPolicy{seconds: ClampDelay(seconds)}
}

// DelaySeconds returns the current setting.
func (p *DelayPolicy) DelaySeconds() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.seconds
}

// Duration returns the setting as a time.Duration.
func (p *DelayPolicy) Duration() time.Duration {
	return time.Duration(p.DelaySeconds()) * time.Second
}

// SetDelaySeconds stores n clamped to [0,10] and returns the stored value.
func (p *DelayPolicy) SetDelaySeconds(n int) int {
	n = ClampDelay(n)
	p.mu.Lock()
	p.seconds = n
	p.mu.Unlock()
	return n
}

// SetDelayInput parses raw user input. Non-numeric input counts as 0 and
// fractional input is truncated.
func (p *DelayPolicy) SetDelayInput(raw string) int {
	return p.SetDelaySeconds(ParseDelayInput(raw))
}

// ParseDelayInput converts text input into whole seconds.
func ParseDelayInput(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != f {
		return 0
	}
	if f > MaxDelaySeconds {
		return MaxDelaySeconds
	}
	if f < MinDelaySeconds {
		return MinDelaySeconds
	}
	return int(f)
}

// ClampDelay bounds n to [MinDelaySeconds, MaxDelaySeconds].
func ClampDelay(n int) int {
	if n < MinDelaySeconds {
		return MinDelaySeconds
	}
	if n > MaxDelaySeconds {
		return MaxDelaySeconds
	}
	return n
}
