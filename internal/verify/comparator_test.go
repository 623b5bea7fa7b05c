package verify

import (
	"errors"
	"math"
	"testing"
)

func TestEuclideanDistanceIdentical(t *testing.T) {
	a := []float32{0.1, 0.2, 0.3, 0.4}
	d, err := EuclideanDistance(a, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != 0 {
		t.Errorf("expected distance 0 for identical vectors, got %v", d)
	}
}

func TestEuclideanDistanceKnownValue(t *testing.T) {
	a := []float32{0, 0}
	b := []float32{3, 4}
	d, err := EuclideanDistance(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(d-5) > 1e-9 {
		t.Errorf("expected distance 5, got %v", d)
	}
}

func TestEuclideanDistanceShapeMismatch(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
	}{
		{"different lengths", []float32{1, 2, 3}, []float32{1, 2}},
		{"empty a", nil, []float32{1, 2}},
		{"empty b", []float32{1, 2}, nil},
		{"both empty", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EuclideanDistance(tt.a, tt.b)
			if !errors.Is(err, ErrShapeMismatch) {
				t.Errorf("expected ErrShapeMismatch, got %v", err)
			}
		})
	}
}

func TestCompareSelfMatchFullConfidence(t *testing.T) {
	a := []float32{0.5, -0.25, 0.75, 0.1}
	match, confidence, err := Compare(a, a, 0.6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !match {
		t.Error("expected self comparison to match")
	}
	if confidence != 1.0 {
		t.Errorf("expected confidence exactly 1.0, got %v", confidence)
	}
}

func TestCompareSymmetric(t *testing.T) {
	a := []float32{0.1, 0.9, -0.3}
	b := []float32{0.4, 0.2, 0.5}

	_, confAB, err := Compare(a, b, 0.6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, confBA, err := Compare(b, a, 0.6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if confAB != confBA {
		t.Errorf("expected symmetric confidence, got %v and %v", confAB, confBA)
	}
}

func TestCompareMonotonicTolerance(t *testing.T) {
	a := []float32{0, 0, 0}
	b := []float32{0.3, 0, 0}

	// distance is 0.3: matches at 0.3 and above, not below
	tolerances := []float64{0.1, 0.2, 0.3, 0.5, 0.9}
	var prev bool
	for i, tol := range tolerances {
		match, _, err := Compare(a, b, tol)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if i > 0 && prev && !match {
			t.Errorf("match at tolerance %v but not at larger %v", tolerances[i-1], tol)
		}
		prev = match
	}
	if !prev {
		t.Error("expected match at the largest tolerance")
	}
}

func TestCompareConfidenceUnclamped(t *testing.T) {
	// Distance > 1 must yield a negative confidence; the arithmetic is
	// deliberately not clamped.
	a := []float32{0, 0}
	b := []float32{2, 0}

	match, confidence, err := Compare(a, b, 0.6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if match {
		t.Error("expected no match at distance 2")
	}
	if confidence != -1.0 {
		t.Errorf("expected confidence -1.0, got %v", confidence)
	}
}

func TestCompareBoundary(t *testing.T) {
	// distance exactly equal to tolerance counts as a match
	a := []float32{0, 0}
	b := []float32{0.6, 0}

	match, _, err := Compare(a, b, 0.6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !match {
		t.Error("expected match when distance equals tolerance")
	}
}

func TestDeviceMatches(t *testing.T) {
	tests := []struct {
		name      string
		presented string
		bound     string
		want      bool
	}{
		{"exact match", "abc-123", "abc-123", true},
		{"mismatch", "abc-123", "def-456", false},
		{"case sensitive", "ABC-123", "abc-123", false},
		{"no trimming", " abc-123", "abc-123", false},
		{"both empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeviceMatches(tt.presented, tt.bound); got != tt.want {
				t.Errorf("DeviceMatches(%q, %q) = %v, want %v", tt.presented, tt.bound, got, tt.want)
			}
		})
	}
}
