package discretize

import (
	"fmt"
	"math"

	"github.com/cosimrl/cartpoleql/utils/intutils"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

// Dimension describes how a single observation feature is binned
type Dimension struct {
	Feature int // index of the feature in the observation vector
	Bounds  r1.Interval
	NumBins int
}

// Discretizer converts continuous observations into state indices. The
// order of its dimensions determines the order of the digits in the
// state index.
type Discretizer struct {
	dims []Dimension
	bins [][]float64
}

// New returns a Discretizer over the argument dimensions, which are
// binned in the order given. Each dimension may have at most 10 bins.
func New(dims ...Dimension) (*Discretizer, error) {
	if len(dims) == 0 {
		return nil, fmt.Errorf("new: at least one dimension is required")
	}

	bins := make([][]float64, len(dims))
	for i, d := range dims {
		if d.NumBins < 1 || d.NumBins > 10 {
			return nil, fmt.Errorf("new: dimension %d must have between 1 "+
				"and 10 bins, got %d: %w", i, d.NumBins, ErrMultiDigitBin)
		}
		if d.Bounds.Min >= d.Bounds.Max {
			return nil, fmt.Errorf("new: dimension %d has empty bounds %v",
				i, d.Bounds)
		}
		if d.Feature < 0 {
			return nil, fmt.Errorf("new: dimension %d has negative feature "+
				"index %d", i, d.Feature)
		}
		bins[i] = Bins(d.Bounds.Min, d.Bounds.Max, d.NumBins)
	}

	return &Discretizer{dims: dims, bins: bins}, nil
}

// Bin returns the per-dimension bin indices of obs, in the order of the
// Discretizer's dimensions
func (d *Discretizer) Bin(obs mat.Vector) ([]int, error) {
	out := make([]int, len(d.dims))
	for i, dim := range d.dims {
		if dim.Feature >= obs.Len() {
			return nil, fmt.Errorf("bin: feature %d out of range for "+
				"observation of length %d", dim.Feature, obs.Len())
		}
		value := obs.AtVec(dim.Feature)
		if math.IsNaN(value) {
			return nil, fmt.Errorf("bin: feature %d is NaN", dim.Feature)
		}
		out[i] = ToBin(value, d.bins[i])
	}
	return out, nil
}

// Index returns the state index of obs
func (d *Discretizer) Index(obs mat.Vector) (int, error) {
	bins, err := d.Bin(obs)
	if err != nil {
		return 0, fmt.Errorf("index: %w", err)
	}
	return StateIndex(bins)
}

// NumStates returns the size of the state index space. Indices are
// decimal concatenations, so the space has 10^d entries for d
// dimensions regardless of how many bins each dimension uses.
func (d *Discretizer) NumStates() int {
	return intutils.Pow(10, len(d.dims))
}

// Dimensions returns a copy of the dimensions of the Discretizer
func (d *Discretizer) Dimensions() []Dimension {
	dims := make([]Dimension, len(d.dims))
	copy(dims, d.dims)
	return dims
}

// Boundaries returns the interior bin boundaries of the i-th dimension
func (d *Discretizer) Boundaries(i int) []float64 {
	b := make([]float64, len(d.bins[i]))
	copy(b, d.bins[i])
	return b
}
