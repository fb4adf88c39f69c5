package discretize

import (
	"errors"
	"math"
	"testing"
)

func TestBins(t *testing.T) {
	bins := Bins(-2.4, 2.4, 10)
	if len(bins) != 9 {
		t.Fatalf("expected 9 interior boundaries, got %d", len(bins))
	}

	want := []float64{-1.92, -1.44, -0.96, -0.48, 0, 0.48, 0.96, 1.44, 1.92}
	for i := range want {
		if math.Abs(bins[i]-want[i]) > 1e-9 {
			t.Errorf("boundary %d: expected %v, got %v", i, want[i], bins[i])
		}
	}

	if b := Bins(0, 1, 1); len(b) != 0 {
		t.Errorf("a single bin should have no interior boundaries, got %v", b)
	}
}

func TestToBin(t *testing.T) {
	bins := Bins(-2.4, 2.4, 10)

	tests := []struct {
		name  string
		value float64
		want  int
	}{
		{"FarBelow", -10, 0},
		{"JustBelowFirst", -1.95, 0},
		{"FarAbove", 10, 9},
		{"JustAboveLast", 1.95, 9},
		{"Interior", 0.5, 6},
		{"NegativeInterior", -0.5, 3},
		{"Centre", 0.0, 5},
		{"Infinity", math.Inf(1), 9},
		{"NegativeInfinity", math.Inf(-1), 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := ToBin(test.value, bins); got != test.want {
				t.Errorf("ToBin(%v) = %d, want %d", test.value, got, test.want)
			}
		})
	}
}

func TestToBinOnBoundary(t *testing.T) {
	bins := []float64{-3, -1, 0.5, 2, 7}

	// A value equal to the k-th boundary (1-based) falls in bin k
	for i, b := range bins {
		if got := ToBin(b, bins); got != i+1 {
			t.Errorf("ToBin(%v) = %d, want %d", b, got, i+1)
		}
	}
}

func TestToBinMonotone(t *testing.T) {
	bins := Bins(-1, 1, 10)
	last := 0
	for v := -2.0; v <= 2.0; v += 0.01 {
		got := ToBin(v, bins)
		if got < last {
			t.Fatalf("ToBin is not monotone at %v: %d < %d", v, got, last)
		}
		if got < 0 || got > len(bins) {
			t.Fatalf("ToBin(%v) = %d outside [0, %d]", v, got, len(bins))
		}
		last = got
	}
}

func TestStateIndex(t *testing.T) {
	index, err := StateIndex([]int{3, 5, 2, 7})
	if err != nil {
		t.Fatal(err)
	}
	if index != 3527 {
		t.Errorf("expected 3527, got %d", index)
	}

	index, err = StateIndex([]int{0, 0, 0, 4})
	if err != nil {
		t.Fatal(err)
	}
	if index != 4 {
		t.Errorf("expected 4, got %d", index)
	}
}

func TestStateIndexMultiDigit(t *testing.T) {
	for _, bins := range [][]int{{1, 10, 2, 3}, {-1, 0, 0, 0}} {
		if _, err := StateIndex(bins); !errors.Is(err, ErrMultiDigitBin) {
			t.Errorf("StateIndex(%v): expected ErrMultiDigitBin, got %v",
				bins, err)
		}
	}
}

func TestStateIndexBijection(t *testing.T) {
	seen := make(map[int]bool, 10000)

	for a := 0; a < 10; a++ {
		for b := 0; b < 10; b++ {
			for c := 0; c < 10; c++ {
				for d := 0; d < 10; d++ {
					index, err := StateIndex([]int{a, b, c, d})
					if err != nil {
						t.Fatal(err)
					}
					if index < 0 || index >= 10000 {
						t.Fatalf("index %d out of range", index)
					}
					if seen[index] {
						t.Fatalf("index %d produced twice", index)
					}
					seen[index] = true
				}
			}
		}
	}

	if len(seen) != 10000 {
		t.Errorf("expected 10000 distinct indices, got %d", len(seen))
	}
}
