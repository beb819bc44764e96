// Package margin implements the percentile-margin core: bound calculation,
// majority-value detection at the column extremes, and per-cell
// classification into the upper or lower colourization margin.
package margin

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Domain errors
var (
	ErrNoValues      = errors.New("column has no numeric values")
	ErrPercentRange  = errors.New("percentage outside [0, 100]")
	ErrUndefinedMode = errors.New("undefined formatting mode")
)

// Bounds is the per-column threshold pair. Upper is the value at the
// (1 - upperPct/100) quantile, Lower the value at the (lowerPct/100)
// quantile. Computed once per column per pass and reused for every row.
type Bounds struct {
	Upper float64
	Lower float64
}

// CalculateBounds derives the threshold pair for one column. upperPct and
// lowerPct are percentages in [0, 100]. With upperPct=0 and lowerPct=0 the
// bounds collapse to (max, min).
func CalculateBounds(values []float64, upperPct, lowerPct float64) (Bounds, error) {
	if len(values) == 0 {
		return Bounds{}, ErrNoValues
	}
	if err := checkPercent("upper margin", upperPct); err != nil {
		return Bounds{}, err
	}
	if err := checkPercent("lower margin", lowerPct); err != nil {
		return Bounds{}, err
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return Bounds{
		Upper: quantile(sorted, 1.0-upperPct/100.0),
		Lower: quantile(sorted, lowerPct/100.0),
	}, nil
}

// quantile evaluates the linearly interpolated quantile q in [0, 1] over an
// ascending sample: position h = (n-1)*q, interpolated between the
// neighbouring order statistics.
func quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}

	h := float64(n-1) * q
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}
	if lo < 0 {
		return sorted[0]
	}

	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

func checkPercent(what string, pct float64) error {
	if pct < 0 || pct > 100 || math.IsNaN(pct) {
		return fmt.Errorf("%w: %s %v", ErrPercentRange, what, pct)
	}
	return nil
}
