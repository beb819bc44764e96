package margin

import (
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
)

// Extremes carries a column's max/min and whether each one is a majority
// value. A majority extreme is excluded from its margin's inclusive
// boundary during classification.
type Extremes struct {
	Max         float64
	Min         float64
	MaxMajority bool
	MinMajority bool
}

// DetectExtremes computes the column extremes and flags each one as a
// majority value when its frequency (occurrences / totalRows) meets or
// exceeds majorityPct. totalRows is the full row count of the column,
// missing cells included, so sparse columns are not over-flagged.
func DetectExtremes(values []float64, totalRows int, majorityPct float64) (Extremes, error) {
	if len(values) == 0 || totalRows == 0 {
		return Extremes{}, ErrNoValues
	}
	if err := checkPercent("majority", majorityPct); err != nil {
		return Extremes{}, err
	}

	max, err := stats.Max(values)
	if err != nil {
		return Extremes{}, err
	}
	min, err := stats.Min(values)
	if err != nil {
		return Extremes{}, err
	}

	threshold := majorityPct / 100.0
	maxCount := floats.Count(func(v float64) bool { return v == max }, values)
	minCount := floats.Count(func(v float64) bool { return v == min }, values)

	return Extremes{
		Max:         max,
		Min:         min,
		MaxMajority: float64(maxCount)/float64(totalRows) >= threshold,
		MinMajority: float64(minCount)/float64(totalRows) >= threshold,
	}, nil
}
