package verify

import (
	"fmt"
	"math"
)

// EuclideanDistance computes the Euclidean distance between two facial
// templates. Returns ErrShapeMismatch if the vectors have different
// lengths or are empty; templates are never truncated or padded.
func EuclideanDistance(a, b []float32) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, fmt.Errorf("empty template: %w", ErrShapeMismatch)
	}
	if len(a) != len(b) {
		return 0, fmt.Errorf("got %d and %d dimensions: %w", len(a), len(b), ErrShapeMismatch)
	}

	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum), nil
}

// Compare evaluates a freshly captured template against an enrolled one.
// A match means the distance is within tolerance (lower = stricter).
//
// Confidence is 1 - distance and is deliberately NOT clamped to [0,1]:
// a distance above 1 yields a negative confidence. This preserves the
// scoring behavior the rest of the system was tuned against.
func Compare(sample, enrolled []float32, tolerance float64) (bool, float64, error) {
	distance, err := EuclideanDistance(sample, enrolled)
	if err != nil {
		return false, 0, err
	}

	isMatch := distance <= tolerance
	confidence := 1 - distance
	return isMatch, confidence, nil
}
