// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"fmt"
	"time"
)

// Result holds the measured samples for one experiment run, plus the
// comparison samples when a baseline environment was available.
type Result struct {
	// Samples are the per-iteration exercise durations in the target.
	Samples []time.Duration
	// BaselineSamples are the comparison durations; empty when no
	// comparison ran.
	BaselineSamples []time.Duration
	// BaselineRef labels the comparison environment.
	BaselineRef string
}

// Mean returns the arithmetic mean of the target samples.
func (r *Result) Mean() time.Duration {
	return mean(r.Samples)
}

// Spread returns half the min-to-max range of the target samples, the
// tolerance printed after the mean.
func (r *Result) Spread() time.Duration {
	return spread(r.Samples)
}

// Ratio returns the target/baseline mean ratio, or 0 when no comparison ran.
func (r *Result) Ratio() float64 {
	base := mean(r.BaselineSamples)
	if base == 0 {
		return 0
	}
	return float64(r.Mean()) / float64(base)
}

// String renders the human summary line fragment, e.g.
//
//	12.4ms ± 1.2ms (v1.2.0: 11.9ms ± 0.8ms, x1.04)
func (r *Result) String() string {
	if len(r.Samples) == 0 {
		return "no samples"
	}
	s := fmt.Sprintf("%s ± %s", round(r.Mean()), round(r.Spread()))
	if len(r.BaselineSamples) > 0 {
		s += fmt.Sprintf(" (%s: %s ± %s, x%.2f)",
			r.BaselineRef,
			round(mean(r.BaselineSamples)),
			round(spread(r.BaselineSamples)),
			r.Ratio())
	}
	return s
}

func mean(samples []time.Duration) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	var total time.Duration
	for _, s := range samples {
		total += s
	}
	return total / time.Duration(len(samples))
}

func spread(samples []time.Duration) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	lo, hi := samples[0], samples[0]
	for _, s := range samples[1:] {
		if s < lo {
			lo = s
		}
		if s > hi {
			hi = s
		}
	}
	return (hi - lo) / 2
}

func round(d time.Duration) time.Duration {
	return d.Round(time.Microsecond)
}
