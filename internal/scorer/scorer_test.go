package scorer

import (
	"testing"

	"github.com/efreeman/polite-betrayal/api/pkg/hullbreach"
)

func TestVictoryDominatesEveryOtherSignal(t *testing.T) {
	s := hullbreach.NewGame(1, hullbreach.LayoutStar)
	s.Phase = hullbreach.PhaseVictory
	s.HullIntegrity = 0

	total, d := Score(nil, s, nil, DefaultWeights(), s.Map)
	if total != DefaultWeights().TerminalVictory {
		t.Fatalf("expected victory score to equal the terminal weight, got %f", total)
	}
	if d.Total() != total {
		t.Fatalf("details total %f does not match returned scalar %f", d.Total(), total)
	}
}

func TestGameOverIsLargeNegative(t *testing.T) {
	s := hullbreach.NewGame(1, hullbreach.LayoutStar)
	s.Phase = hullbreach.PhaseGameOver

	total, _ := Score(nil, s, nil, DefaultWeights(), s.Map)
	if total >= 0 {
		t.Fatalf("expected a large negative score for GameOver, got %f", total)
	}
}

func TestLowerHullScoresWorse(t *testing.T) {
	w := DefaultWeights()
	healthy := hullbreach.NewGame(1, hullbreach.LayoutStar)
	damaged := healthy.Clone()
	damaged.HullIntegrity = 2

	healthyScore, _ := Score(nil, healthy, nil, w, healthy.Map)
	damagedScore, _ := Score(nil, damaged, nil, w, damaged.Map)
	if damagedScore >= healthyScore {
		t.Fatalf("expected damaged hull to score worse: healthy=%f damaged=%f", healthyScore, damagedScore)
	}
}

func TestOscillationPenaltyAppliesToABAMoveLoop(t *testing.T) {
	w := DefaultWeights()
	recent := []HistoryEntry{
		{Player: "p1", Action: hullbreach.ActionMove, Room: hullbreach.RoomBow},
		{Player: "p1", Action: hullbreach.ActionMove, Room: hullbreach.RoomDormitory},
		{Player: "p1", Action: hullbreach.ActionMove, Room: hullbreach.RoomBow},
	}
	penalty := antiOscillation(recent, w)
	if penalty >= 0 {
		t.Fatalf("expected a negative anti-oscillation term for an A->B->A loop, got %f", penalty)
	}
}

func TestRepeatedPassIsPenalized(t *testing.T) {
	w := DefaultWeights()
	recent := []HistoryEntry{
		{Player: "p1", Action: hullbreach.ActionPass},
		{Player: "p1", Action: hullbreach.ActionPass},
		{Player: "p1", Action: hullbreach.ActionPass},
	}
	penalty := antiOscillation(recent, w)
	if penalty >= 0 {
		t.Fatalf("expected repeated Pass to be penalized, got %f", penalty)
	}
}
