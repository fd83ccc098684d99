package kernel

import "time"

// Clock is the time source used by the state machine and the sync engine.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// ClockFunc adapts a plain function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

// UnixMilli is the wire representation of envelope timestamps.
func UnixMilli(t time.Time) int64 {
	return t.UnixMilli()
}
