package ravenscube

import "time"

// Scheduler runs deferred work. Engine uses it to commit a rotation once its
// animation has played and to space shuffle steps.
//
// A host with its own event loop can implement Scheduler so that completions
// run on the loop's goroutine.
type Scheduler interface {
	// AfterFunc arranges for f to run once d has elapsed. The returned stop
	// function prevents f from running if it has not started yet and reports
	// whether it did so.
	AfterFunc(d time.Duration, f func()) (stop func() bool)
}

// TimerScheduler schedules with time.AfterFunc. Callbacks run on their own
// goroutine.
type TimerScheduler struct{}

// AfterFunc implements Scheduler.
func (TimerScheduler) AfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}
