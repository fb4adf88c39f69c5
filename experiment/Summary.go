package experiment

import (
	"math"

	"github.com/cosimrl/cartpoleql/utils/matutils"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Summary describes a sequence of episode lengths
type Summary struct {
	Mean float64
	Std  float64 // population standard deviation
	Max  float64
}

// Summarize computes the Summary of lengths. The Summary of an empty
// sequence is all NaN.
func Summarize(lengths []float64) Summary {
	if len(lengths) == 0 {
		return Summary{math.NaN(), math.NaN(), math.NaN()}
	}
	mean, std := stat.PopMeanStdDev(lengths, nil)
	return Summary{Mean: mean, Std: std, Max: floats.Max(lengths)}
}

// Summary returns the Summary of the episode lengths of repetition rep
func (r *Result) Summary(rep int) Summary {
	return Summarize(mat.Col(nil, rep, r.Lengths))
}

// MeanCurve returns the episode lengths averaged over repetitions
func (r *Result) MeanCurve() *mat.VecDense {
	return matutils.RowMean(r.Lengths)
}
