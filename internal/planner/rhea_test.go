package planner

import (
	"testing"
	"time"

	"github.com/efreeman/polite-betrayal/api/internal/scorer"
)

func TestRunRHEAReturnsANonNilBestNode(t *testing.T) {
	s := setupGame(t, 5)
	result := RunRHEA(s, Config{
		BeamWidth: 3,
		MaxSteps:  3,
		TimeLimit: 2 * time.Second,
		Weights:   scorer.DefaultWeights(),
	}, 42)
	if result.Best == nil {
		t.Fatal("expected a non-nil best node")
	}
}

func TestRunRHEAIsDeterministicForAFixedSeed(t *testing.T) {
	cfg := Config{BeamWidth: 3, MaxSteps: 3, TimeLimit: 2 * time.Second, Weights: scorer.DefaultWeights()}

	s1 := setupGame(t, 21)
	r1 := RunRHEA(s1, cfg, 77)

	s2 := setupGame(t, 21)
	r2 := RunRHEA(s2, cfg, 77)

	if r1.Best.Signature != r2.Best.Signature {
		t.Fatalf("same seeds produced different best signatures: %s vs %s", r1.Best.Signature, r2.Best.Signature)
	}
}
