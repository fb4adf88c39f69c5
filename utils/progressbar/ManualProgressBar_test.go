package progressbar

import (
	"bytes"
	"strings"
	"testing"
)

func TestManualProgressBar(t *testing.T) {
	var buf bytes.Buffer
	bar := NewManualProgressBarTo(&buf, 10, 4)

	for i := 0; i < 6; i++ {
		bar.Increment()
	}
	if p := bar.Progress(); p != 1 {
		t.Errorf("progress should saturate at 1, got %v", p)
	}

	bar.Display()
	out := buf.String()
	if !strings.Contains(out, "100.00%") {
		t.Errorf("expected a full bar, got %q", out)
	}
	if n := strings.Count(out, "█"); n != 10 {
		t.Errorf("expected 10 filled cells, got %d", n)
	}
}
