package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/violenttestpen/shukusho/codec"
)

var denominators = []int64{int64(time.Hour), int64(time.Minute), int64(time.Second), int64(time.Millisecond), int64(time.Microsecond), int64(time.Nanosecond)}
var units = []string{"h", "m", "s", "ms", "µs", "ns"}

func getMeasurementMetrics(timing int64) (float64, string) {
	for i, denominator := range denominators {
		if timing/denominator > 0 {
			return float64(denominator), units[i]
		}
	}
	return float64(time.Nanosecond), "ns"
}

// humanSeconds formats seconds in the largest unit that keeps the value >= 1.
func humanSeconds(seconds float64) string {
	ns := int64(seconds * float64(time.Second))
	denominator, unit := getMeasurementMetrics(ns)
	return fmt.Sprintf("%.2f %s", float64(ns)/denominator, unit)
}

// reporter prints human progress. It never touches the result document.
type reporter struct {
	w     io.Writer
	quiet bool
}

func newReporter(w io.Writer, quiet bool) *reporter {
	return &reporter{w: w, quiet: quiet}
}

func (r *reporter) printf(format string, args ...interface{}) {
	if r == nil || r.quiet {
		return
	}
	fmt.Fprintf(r.w, format, args...)
}

func (r *reporter) dataset(name string) {
	r.printf("Using %s:\n", color.CyanString(name))
}

func (r *reporter) codec(c *codec.Codec) {
	r.printf("  %s:%s\n", c.Plugin().Name, color.GreenString(c.Name()))
}

func (r *reporter) phase(verb string) {
	r.printf("    %s... ", verb)
}

func (r *reporter) done(wall float64) {
	r.printf("done. %s\n", color.HiBlackString("(%s)", humanSeconds(wall)))
}
