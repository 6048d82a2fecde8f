package loop

import "time"

// Debouncer collapses a burst of triggers into one action that fires once
// the burst has been quiet for Delay. It is polled from the frame loop
// rather than backed by a timer, so the action runs on the caller's
// goroutine.
type Debouncer struct {
	Delay time.Duration

	deadline time.Time
	armed    bool
}

// NewDebouncer returns a debouncer with the given quiet period.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{Delay: delay}
}

// Trigger (re)arms the deadline at now+Delay, cancelling any earlier one.
func (d *Debouncer) Trigger(now time.Time) {
	d.deadline = now.Add(d.Delay)
	d.armed = true
}

// Poll reports true exactly once after the deadline of the latest trigger
// has passed.
func (d *Debouncer) Poll(now time.Time) bool {
	if !d.armed || now.Before(d.deadline) {
		return false
	}
	d.armed = false
	return true
}

// Pending reports whether a trigger is waiting to fire.
func (d *Debouncer) Pending() bool { return d.armed }

// Cancel drops any pending trigger.
func (d *Debouncer) Cancel() { d.armed = false }
