package checkout

import "time"

// Scheduler runs a function after a delay. The payment simulation goes
// through this interface so a real gateway integration can replace the
// timer without reshaping the state machine, and so tests can fire the
// callback deterministically.
type Scheduler interface {
	// Schedule arranges for fn to run after d and returns a cancel
	// function. Cancel is a no-op once fn has started.
	Schedule(d time.Duration, fn func()) (cancel func())
}

type timerScheduler struct{}

// NewTimerScheduler returns the production Scheduler, backed by the runtime
// timer.
func NewTimerScheduler() Scheduler {
	return timerScheduler{}
}

func (timerScheduler) Schedule(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}
