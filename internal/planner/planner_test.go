package planner

import (
	"testing"
	"time"

	"github.com/efreeman/polite-betrayal/api/internal/scorer"
	"github.com/efreeman/polite-betrayal/api/pkg/hullbreach"
)

func setupGame(t *testing.T, seed uint64) *hullbreach.GameState {
	t.Helper()
	s := hullbreach.NewGame(seed, hullbreach.LayoutStar)
	for _, id := range []hullbreach.PlayerID{"p1", "p2"} {
		next, err := hullbreach.Apply(s, id, hullbreach.Action{Type: hullbreach.ActionJoin, Name: string(id)})
		if err != nil {
			t.Fatalf("join %s: %v", id, err)
		}
		s = next
	}
	s, err := hullbreach.Stabilize(s)
	if err != nil {
		t.Fatalf("stabilize: %v", err)
	}
	return s
}

func TestRunReturnsANonNilBestNode(t *testing.T) {
	s := setupGame(t, 7)
	result := Run(s, Config{
		BeamWidth: 4,
		MaxSteps:  3,
		TimeLimit: 2 * time.Second,
		Weights:   scorer.DefaultWeights(),
	})
	if result.Best == nil {
		t.Fatal("expected a non-nil best node")
	}
}

func TestRunRespectsMaxSteps(t *testing.T) {
	s := setupGame(t, 11)
	result := Run(s, Config{
		BeamWidth: 4,
		MaxSteps:  2,
		TimeLimit: 2 * time.Second,
		Weights:   scorer.DefaultWeights(),
	})
	if result.StepsTaken > 2 {
		t.Fatalf("expected at most 2 steps, took %d", result.StepsTaken)
	}
}

func TestRunIsDeterministicAcrossRepeats(t *testing.T) {
	cfg := Config{BeamWidth: 4, MaxSteps: 3, TimeLimit: 2 * time.Second, Weights: scorer.DefaultWeights()}

	s1 := setupGame(t, 99)
	r1 := Run(s1, cfg)

	s2 := setupGame(t, 99)
	r2 := Run(s2, cfg)

	if r1.Best == nil || r2.Best == nil {
		t.Fatal("expected non-nil best nodes")
	}
	if r1.Best.Signature != r2.Best.Signature {
		t.Fatalf("same seed and config produced different best signatures: %s vs %s", r1.Best.Signature, r2.Best.Signature)
	}
}

func TestRecentHistoryWalksParentChainInOrder(t *testing.T) {
	s := setupGame(t, 3)
	root := &Node{State: s, Signature: s.Signature()}
	a := &Node{Parent: root, LastPlayer: "p1", LastAction: hullbreach.Action{Type: hullbreach.ActionPass}}
	b := &Node{Parent: a, LastPlayer: "p1", LastAction: hullbreach.Action{Type: hullbreach.ActionBake}}

	hist := b.RecentHistory(10)
	if len(hist) != 2 {
		t.Fatalf("expected 2 history entries (root itself carries no action), got %d", len(hist))
	}
	if hist[0].Action != hullbreach.ActionPass || hist[1].Action != hullbreach.ActionBake {
		t.Fatalf("expected oldest-first ordering [Pass, Bake], got %v", hist)
	}
}
