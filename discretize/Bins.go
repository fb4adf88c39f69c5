// Package discretize maps continuous observations onto a finite set of
// tabular state indices by binning each dimension independently and
// concatenating the bin indices as decimal digits.
package discretize

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// ErrMultiDigitBin is returned when a bin index cannot be written as a
// single decimal digit and so cannot take part in a state index.
var ErrMultiDigitBin = errors.New("bin index is not a single digit")

// Bins returns the n-1 interior boundaries of n equal-width intervals
// over [lower, upper]. The outer edges are dropped so that values
// outside the range fall into the first or last bin.
func Bins(lower, upper float64, n int) []float64 {
	if n < 1 {
		panic(fmt.Sprintf("bins: number of bins must be positive, got %d", n))
	}
	if n == 1 {
		return []float64{}
	}

	edges := floats.Span(make([]float64, n+1), lower, upper)
	return edges[1:n]
}

// ToBin returns the index of the bin that value falls into given the
// ascending interior boundaries bins. The index is the number of
// boundaries less than or equal to value, so intervals are closed on
// the left. Values below the first boundary map to 0 and values above
// the last boundary map to len(bins).
func ToBin(value float64, bins []float64) int {
	return sort.Search(len(bins), func(i int) bool {
		return bins[i] > value
	})
}

// StateIndex concatenates the decimal digits of bins in order. For
// example, [3 5 2 7] becomes 3527.
func StateIndex(bins []int) (int, error) {
	index := 0
	for i, b := range bins {
		if b < 0 || b > 9 {
			return 0, fmt.Errorf("stateIndex: dimension %d has bin %d: %w",
				i, b, ErrMultiDigitBin)
		}
		index = index*10 + b
	}
	return index, nil
}
