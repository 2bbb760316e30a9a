package stats

import (
	moremath "github.com/aclements/go-moremath/stats"
)

// Summary holds the descriptive statistics of one pooled timing metric.
type Summary struct {
	Count int     `json:"count"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Mean  float64 `json:"avg"`
	Std   float64 `json:"std"`
}

// Summarize reduces a sample to min, max, mean and sample standard
// deviation (Bessel-corrected, divisor n-1). The standard deviation of
// a single value is exactly 0.0. An empty sample has no summary and
// reports ok=false.
func Summarize(values []float64) (Summary, bool) {
	if len(values) == 0 {
		return Summary{}, false
	}

	s := Summary{
		Count: len(values),
		Mean:  moremath.Mean(values),
	}
	s.Min, s.Max = moremath.Bounds(values)
	if len(values) > 1 {
		s.Std = moremath.StdDev(values)
	}
	return s, true
}
