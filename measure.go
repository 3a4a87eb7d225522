package main

// instant is a clock reading split the way the kernel reports it.
type instant struct {
	sec  int64
	nsec int64
}

// clock reads the wall clock and the CPU time consumed by this process.
type clock interface {
	Wall() (instant, error)
	CPU() (instant, error)
}

var processClock clock

// timer brackets one benchmark phase.
type timer struct {
	clock clock

	startWall instant
	endWall   instant
	startCPU  instant
	endCPU    instant
}

func newTimer(c clock) *timer {
	return &timer{clock: c}
}

func (t *timer) Start() (err error) {
	if t.startWall, err = t.clock.Wall(); err != nil {
		return environmentError(err, "unable to get wall clock time")
	}
	if t.startCPU, err = t.clock.CPU(); err != nil {
		return environmentError(err, "unable to get CPU clock time")
	}
	return nil
}

// Stop reads the CPU clock before the wall clock so the wall interval
// always contains the CPU one.
func (t *timer) Stop() (err error) {
	if t.endCPU, err = t.clock.CPU(); err != nil {
		return environmentError(err, "unable to get CPU clock time")
	}
	if t.endWall, err = t.clock.Wall(); err != nil {
		return environmentError(err, "unable to get wall clock time")
	}
	return nil
}

func (t *timer) ElapsedWall() float64 { return elapsed(t.startWall, t.endWall) }

func (t *timer) ElapsedCPU() float64 { return elapsed(t.startCPU, t.endCPU) }

// elapsed returns end-start in seconds. The nanosecond delta may be negative
// when the second delta carries it.
func elapsed(start, end instant) float64 {
	return float64(end.sec-start.sec) + float64(end.nsec-start.nsec)/1e9
}
