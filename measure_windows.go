//go:build windows

package main

import (
	"time"

	"golang.org/x/sys/windows"

	"github.com/violenttestpen/shukusho/codec"
)

// https://learn.microsoft.com/en-us/windows/win32/api/processthreadsapi/nf-processthreadsapi-getprocesstimes

const hundredNSTicks = 100

type windowsClock struct{}

func init() {
	processClock = windowsClock{}
}

func (windowsClock) Wall() (instant, error) {
	now := time.Now()
	return instant{sec: now.Unix(), nsec: int64(now.Nanosecond())}, nil
}

// CPU returns user plus kernel time of the current process and of the
// external compressors it has waited for.
func (windowsClock) CPU() (instant, error) {
	var creation, exit, kernel, user windows.Filetime
	if err := windows.GetProcessTimes(windows.CurrentProcess(), &creation, &exit, &kernel, &user); err != nil {
		return instant{}, err
	}
	ns := (filetimeTicks(kernel)+filetimeTicks(user))*hundredNSTicks + int64(codec.ChildCPUTime())
	return instant{sec: ns / int64(time.Second), nsec: ns % int64(time.Second)}, nil
}

func filetimeTicks(ft windows.Filetime) int64 {
	return int64(ft.HighDateTime)<<32 | int64(ft.LowDateTime)
}
