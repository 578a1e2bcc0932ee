package hullbreach

import "testing"

// fataler is the subset of *testing.T (and the *rapid.T adapter in
// properties_test.go) the shared game builders below need.
type fataler interface {
	Helper()
	Fatalf(format string, args ...any)
}

func newTwoPlayerGame(t fataler, seed uint64) *GameState {
	t.Helper()
	s := NewGame(seed, LayoutStar)
	for _, id := range []PlayerID{"p1", "p2"} {
		next, err := Apply(s, id, Action{Type: ActionJoin, Name: string(id)})
		if err != nil {
			t.Fatalf("join %s: %v", id, err)
		}
		s = next
	}
	return s
}

func voteAllReady(t fataler, s *GameState) *GameState {
	t.Helper()
	var err error
	for _, id := range s.SortedPlayerIDs() {
		s, err = Apply(s, id, Action{Type: ActionVoteReady})
		if err != nil {
			t.Fatalf("vote ready %s: %v", id, err)
		}
	}
	return s
}

func TestJoinIsIdempotent(t *testing.T) {
	s := NewGame(1, LayoutStar)
	s, err := Apply(s, "p1", Action{Type: ActionJoin, Name: "Alice"})
	if err != nil {
		t.Fatal(err)
	}
	s2, err := Apply(s, "p1", Action{Type: ActionJoin, Name: "Alice"})
	if err != nil {
		t.Fatal(err)
	}
	if len(s2.Players) != 1 {
		t.Fatalf("expected 1 player, got %d", len(s2.Players))
	}
}

func TestJoinRejectsDuplicateName(t *testing.T) {
	s := NewGame(1, LayoutStar)
	s, err := Apply(s, "p1", Action{Type: ActionJoin, Name: "Alice"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Apply(s, "p2", Action{Type: ActionJoin, Name: "Alice"}); err == nil {
		t.Fatal("expected name collision error")
	}
}

func TestPhaseLoopReachesTacticalPlanning(t *testing.T) {
	s := newTwoPlayerGame(t, 42)
	s = voteAllReady(t, s) // Lobby -> MorningReport
	if s.Phase != PhaseMorningReport {
		t.Fatalf("expected MorningReport, got %s", s.Phase)
	}
	s = voteAllReady(t, s) // MorningReport -> EnemyTelegraph
	if s.Phase != PhaseEnemyTelegraph {
		t.Fatalf("expected EnemyTelegraph, got %s", s.Phase)
	}
	s = voteAllReady(t, s) // EnemyTelegraph -> TacticalPlanning
	if s.Phase != PhaseTacticalPlanning {
		t.Fatalf("expected TacticalPlanning, got %s", s.Phase)
	}
}

// TestPhaseLoopAPRemaining is scenario 4 from spec §8: a single player with
// 2 AP loops Execution back into TacticalPlanning once, then continues on
// to EnemyAction once AP is exhausted.
func TestPhaseLoopAPRemaining(t *testing.T) {
	s := NewGame(7, LayoutStar)
	s, err := Apply(s, "p1", Action{Type: ActionJoin, Name: "Solo"})
	if err != nil {
		t.Fatal(err)
	}
	s = voteAllReady(t, s) // -> MorningReport
	s = voteAllReady(t, s) // -> EnemyTelegraph
	s = voteAllReady(t, s) // -> TacticalPlanning
	s.Players["p1"].AP = 2

	neighbor := s.Map.Adjacency[s.Players["p1"].RoomID][0]
	s, err = Apply(s, "p1", Action{Type: ActionMove, TargetRoom: neighbor})
	if err != nil {
		t.Fatal(err)
	}
	s, err = Apply(s, "p1", Action{Type: ActionVoteReady})
	if err != nil {
		t.Fatal(err)
	}
	if s.Phase != PhaseTacticalPlanning {
		t.Fatalf("expected loop back to TacticalPlanning with AP remaining, got %s", s.Phase)
	}
	if s.Players["p1"].AP != 1 {
		t.Fatalf("expected 1 AP remaining, got %d", s.Players["p1"].AP)
	}

	back := s.Players["p1"].RoomID
	s, err = Apply(s, "p1", Action{Type: ActionMove, TargetRoom: s.Map.Adjacency[back][0]})
	if err != nil {
		t.Fatal(err)
	}
	s, err = Apply(s, "p1", Action{Type: ActionVoteReady})
	if err != nil {
		t.Fatal(err)
	}
	if s.Phase != PhaseEnemyAction {
		t.Fatalf("expected EnemyAction once AP is exhausted, got %s", s.Phase)
	}
}

// TestUndoPreservesSeed is scenario 6 from spec §8.
func TestUndoPreservesSeed(t *testing.T) {
	s := newTwoPlayerGame(t, 99)
	s = voteAllReady(t, s)
	s = voteAllReady(t, s)
	s = voteAllReady(t, s)

	seedBefore := s.RNGSeed
	p1 := s.Players["p1"]
	neighbor := s.Map.Adjacency[p1.RoomID][0]
	s, err := Apply(s, "p1", Action{Type: ActionMove, TargetRoom: neighbor})
	if err != nil {
		t.Fatal(err)
	}
	if len(s.ProposalQueue) != 1 {
		t.Fatalf("expected 1 queued proposal, got %d", len(s.ProposalQueue))
	}
	id := s.ProposalQueue[0].ID

	s, err = Apply(s, "p1", Action{Type: ActionUndo, ProposalID: id})
	if err != nil {
		t.Fatal(err)
	}
	if s.RNGSeed != seedBefore {
		t.Fatalf("expected rng_seed unchanged by Undo, got %d want %d", s.RNGSeed, seedBefore)
	}
	if len(s.ProposalQueue) != 0 {
		t.Fatalf("expected queue empty after undo, got %d", len(s.ProposalQueue))
	}
}

// TestSimulationMasksRNG is scenario 3 from spec §8.
func TestSimulationMasksRNG(t *testing.T) {
	s := newTwoPlayerGame(t, 12345)
	s = voteAllReady(t, s)
	s = voteAllReady(t, s)
	s = voteAllReady(t, s)

	p1 := s.Players["p1"]
	p1.RoomID = RoomCannons
	p1.Inventory = []ItemType{ItemPeppernut}

	seedBefore := s.RNGSeed
	hpBefore := s.Enemy.HP

	s, err := Apply(s, "p1", Action{Type: ActionShoot})
	if err != nil {
		t.Fatal(err)
	}
	if s.RNGSeed != seedBefore {
		t.Fatal("expected rng_seed unchanged after queuing (simulation projection only)")
	}
	if s.Enemy.HP != hpBefore {
		t.Fatal("expected enemy.hp unchanged after queuing")
	}
	if s.Players["p1"].HasItem(ItemPeppernut) {
		t.Fatal("expected ammo consumed by projection even though the shot hasn't resolved")
	}

	if err := ResolveProposalQueue(s, false); err != nil {
		t.Fatal(err)
	}
	if s.RNGSeed == seedBefore {
		t.Fatal("expected rng_seed to advance after execution-mode resolution")
	}
}
