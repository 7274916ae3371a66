package model

import (
	"math"
	"testing"
)

func TestCosineSimilarityIdenticalVectors(t *testing.T) {
	v := []float32{0.3, -1.2, 4.5}
	if got := CosineSimilarity(v, v); math.Abs(got-1.0) > 1e-6 {
		t.Fatalf("expected self-similarity 1.0, got %v", got)
	}
}

func TestCosineSimilarityOrthogonalVectors(t *testing.T) {
	if got := CosineSimilarity([]float32{1, 0}, []float32{0, 1}); got != 0 {
		t.Fatalf("expected 0 for orthogonal vectors, got %v", got)
	}
}

func TestCosineSimilarityOppositeVectors(t *testing.T) {
	if got := CosineSimilarity([]float32{1, 0}, []float32{-1, 0}); math.Abs(got+1.0) > 1e-6 {
		t.Fatalf("expected -1.0 for opposite vectors, got %v", got)
	}
}

func TestCosineSimilarityZeroVectorPolicy(t *testing.T) {
	zero := []float32{0, 0, 0}
	v := []float32{1, 2, 3}
	if got := CosineSimilarity(v, zero); got != 0 {
		t.Fatalf("expected 0 against zero vector, got %v", got)
	}
	if got := CosineSimilarity(zero, v); got != 0 {
		t.Fatalf("expected 0 from zero vector, got %v", got)
	}
	if got := CosineSimilarity(zero, zero); got != 0 {
		t.Fatalf("expected 0 for zero against itself, got %v", got)
	}
}

func TestCosineSimilarityEmptyVectors(t *testing.T) {
	if got := CosineSimilarity(nil, []float32{1, 2}); got != 0 {
		t.Fatalf("expected 0 for empty query, got %v", got)
	}
	if got := CosineSimilarity([]float32{1, 2}, []float32{}); got != 0 {
		t.Fatalf("expected 0 for empty candidate, got %v", got)
	}
}

func TestCosineSimilarityUnequalLengths(t *testing.T) {
	// The dot product pairs positions up to the shorter vector; magnitudes
	// use the full vectors. [1,0] against [1,0,1] shares only the first
	// position, so the score is 1/sqrt(2).
	got := CosineSimilarity([]float32{1, 0}, []float32{1, 0, 1})
	want := 1.0 / math.Sqrt2
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("expected %v for truncated overlap, got %v", want, got)
	}
}

func TestCosineSimilarityKnownValue(t *testing.T) {
	got := CosineSimilarity([]float32{1, 2, 3}, []float32{4, 5, 6})
	want := 32.0 / (math.Sqrt(14) * math.Sqrt(77))
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
