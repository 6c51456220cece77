package extraction

import (
	"math"
	"testing"
)

func TestSimilarityRatio(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"", "", 1.0},
		{"abc", "abc", 1.0},
		{"abc", "xyz", 0.0},
		// "ria" is a full block inside "bria": 2*3/(4+3).
		{"bria", "ria", 6.0 / 7.0},
		// "bcd" matches: 2*3/(4+4).
		{"abcd", "bcde", 6.0 / 8.0},
		{"sneha", "sneha kumar", 2.0 * 5.0 / 16.0},
	}

	for _, tt := range tests {
		got := similarityRatio(tt.a, tt.b)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("similarityRatio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSimilarityRatioSymmetricRange(t *testing.T) {
	pairs := [][2]string{
		{"documentation", "documentations"},
		{"power point presentation", "presentation"},
		{"john smith", "jon smith"},
	}

	for _, p := range pairs {
		ab := similarityRatio(p[0], p[1])
		ba := similarityRatio(p[1], p[0])
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("similarityRatio not symmetric for %q/%q: %v vs %v", p[0], p[1], ab, ba)
		}
		if ab < 0 || ab > 1 {
			t.Errorf("similarityRatio(%q, %q) out of range: %v", p[0], p[1], ab)
		}
	}
}
