package widget

import "time"

// Timer is a pending one-shot callback.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type clockScheduler struct{}

func (clockScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// HeldScheduler never runs its callbacks. Static renders use it so a pending
// auto-open cannot change the page while it is being serialized.
type HeldScheduler struct{}

func (HeldScheduler) AfterFunc(time.Duration, func()) Timer { return heldTimer{} }

type heldTimer struct{}

func (heldTimer) Stop() bool { return true }
