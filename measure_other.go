//go:build !linux && !darwin && !windows

package main

import (
	"errors"
	"time"
)

type fallbackClock struct{}

func init() {
	processClock = fallbackClock{}
}

func (fallbackClock) Wall() (instant, error) {
	now := time.Now()
	return instant{sec: now.Unix(), nsec: int64(now.Nanosecond())}, nil
}

func (fallbackClock) CPU() (instant, error) {
	return instant{}, errors.New("process CPU clock not supported on this platform")
}
