package playground

import "time"

// Duplicate locator variants.
const (
	LocatorBlue   = "blue"
	LocatorYellow = "yellow"
)

// Fixed timings for widgets that run their own timers instead of the shared
// delay.
const (
	UploadDuration       = 2000 * time.Millisecond
	TimedActionBaseDelay = 3000 * time.Millisecond
)

// ApplyFunc writes a status and pushes the matching notification.
type ApplyFunc func(key WidgetKey, text string)

// Dispatcher applies gesture effects, optionally after the shared delay.
type Dispatcher struct {
	scheduler Scheduler
	delay     DelayReader
	apply     ApplyFunc
}

// NewDispatcher wires a dispatcher to its scheduler, delay accessor and
// effect sink.
func NewDispatcher(scheduler Scheduler, delay DelayReader, apply ApplyFunc) *Dispatcher {
	if scheduler == nil {
		scheduler = NewTimerScheduler()
	}
	if delay == nil {
		delay = NewDelayPolicy(0)
	}
	return &Dispatcher{scheduler: scheduler, delay: delay, apply: apply}
}

// Dispatch sets the status of key to text and pushes a notification. When
// usesGlobalDelay is set and the delay is positive the effect is deferred;
// the delay is sampled now so later changes do not affect this dispatch. A nil
// handle means the effect was applied synchronously.
func (d *Dispatcher) Dispatch(key WidgetKey, text string, usesGlobalDelay bool) *TaskHandle {
	if usesGlobalDelay {
		if wait := time.Duration(d.delay.DelaySeconds()) * time.Second; wait > 0 {
			return d.scheduler.Schedule(wait, func() { d.apply(key, text) })
		}
	}
	d.apply(key, text)
	return nil
}

// DispatchAfter applies text to key once wait has elapsed, independent of the
// shared delay.
func (d *Dispatcher) DispatchAfter(wait time.Duration, key WidgetKey, text string) *TaskHandle {
	return d.scheduler.Schedule(wait, func() { d.apply(key, text) })
}

// After runs fn once wait has elapsed.
func (d *Dispatcher) After(wait time.Duration, fn func()) *TaskHandle {
	return d.scheduler.Schedule(wait, fn)
}

// DelaySeconds samples the current shared delay.
func (d *Dispatcher) DelaySeconds() int {
	return d.delay.DelaySeconds()
}
