//go:build linux || darwin

package main

import (
	"time"

	"golang.org/x/sys/unix"
)

type unixClock struct{}

func init() {
	processClock = unixClock{}
}

func (unixClock) Wall() (instant, error) { return clockGettime(unix.CLOCK_REALTIME) }

// CPU returns the time used by this process plus every child it has reaped,
// so codecs that run an external program are charged for its work.
func (unixClock) CPU() (instant, error) {
	self, err := clockGettime(unix.CLOCK_PROCESS_CPUTIME_ID)
	if err != nil {
		return instant{}, err
	}
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_CHILDREN, &ru); err != nil {
		return instant{}, err
	}
	ns := self.nsec + timevalNanos(ru.Utime) + timevalNanos(ru.Stime)
	return instant{
		sec:  self.sec + ns/int64(time.Second),
		nsec: ns % int64(time.Second),
	}, nil
}

func clockGettime(id int32) (instant, error) {
	var ts unix.Timespec
	if err := unix.ClockGettime(id, &ts); err != nil {
		return instant{}, err
	}
	sec, nsec := ts.Unix()
	return instant{sec: sec, nsec: nsec}, nil
}

func timevalNanos(tv unix.Timeval) int64 {
	return tv.Nano()
}
