package intutils

import "testing"

func TestPow(t *testing.T) {
	tests := []struct {
		base, exp, want int
	}{
		{10, 0, 1},
		{10, 1, 10},
		{10, 4, 10000},
		{2, 10, 1024},
		{3, 3, 27},
	}

	for _, test := range tests {
		if got := Pow(test.base, test.exp); got != test.want {
			t.Errorf("Pow(%d, %d) = %d, want %d", test.base, test.exp, got,
				test.want)
		}
	}
}
