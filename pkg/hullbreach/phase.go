package hullbreach

// Phase is the game's coarse state-machine position (spec §4.3).
type Phase string

const (
	PhaseLobby            Phase = "Lobby"
	PhaseMorningReport     Phase = "MorningReport"
	PhaseEnemyTelegraph    Phase = "EnemyTelegraph"
	PhaseTacticalPlanning  Phase = "TacticalPlanning"
	PhaseExecution         Phase = "Execution"
	PhaseEnemyAction       Phase = "EnemyAction"
	PhaseGameOver          Phase = "GameOver"
	PhaseVictory           Phase = "Victory"
)

// IsTerminal reports whether no further transitions are possible.
func (p Phase) IsTerminal() bool { return p == PhaseGameOver || p == PhaseVictory }

func resetReadiness(s *GameState) {
	for _, p := range s.Players {
		p.IsReady = false
	}
}

func resetAP(s *GameState) {
	ap := MaxAP
	if s.IsResting {
		ap = RestAP
	}
	for _, p := range s.Players {
		if p.HasStatus(StatusFainted) {
			p.AP = 0
			continue
		}
		p.AP = ap
	}
}

// drawAndApplyCard draws the next card into latest_event and, for a
// Situation/Timebomb, activates it; Flash cards resolve immediately via
// their registered on_draw hook and go straight to discard.
func drawAndApplyCard(s *GameState, rng *RNG) {
	id, ok := Draw(s, rng)
	if !ok {
		return
	}
	s.LatestEvent = id
	c := CardByID(id)

	switch c.Type {
	case CardSituation, CardTimebomb:
		sit := &ActiveSituation{CardID: id, RoundsLeft: c.RoundsLeft}
		ids := s.SortedPlayerIDs()
		if len(ids) > 0 && cardAssignsPlayer(id) {
			sit.Assigned = ids[rng.Intn(len(ids))]
		}
		s.ActiveSituations = append(s.ActiveSituations, sit)
	default:
		BehaviorFor(id).OnDraw(s, rng)
		s.Discard = append(s.Discard, id)
	}
}

// cardAssignsPlayer reports whether a card singles out one player at draw
// time (Afternoon Nap naps someone specific; Shoe Setting likewise).
func cardAssignsPlayer(id CardID) bool {
	return id == CardAfternoonNap || id == CardShoeSetting
}

// AdvanceIfReady performs every queued phase transition made legal by the
// current all-ready state, looping until no further automatic transition
// applies (Execution always auto-continues into TacticalPlanning or
// EnemyAction without a fresh ready vote, per spec §4.1's description of
// Pass driving Execution straight through).
func AdvanceIfReady(s *GameState) error {
	for {
		advanced, err := advanceOnce(s)
		if err != nil {
			return err
		}
		if !advanced {
			return nil
		}
	}
}

func advanceOnce(s *GameState) (bool, error) {
	if s.Phase.IsTerminal() {
		return false, nil
	}
	switch s.Phase {
	case PhaseLobby:
		if !s.AllReady() {
			return false, nil
		}
		rng := NewRNG(s.RNGSeed)
		s.TurnCount++
		resetReadiness(s)
		resetAP(s)
		drawAndApplyCard(s, rng)
		s.RNGSeed = rng.Seed()
		s.Phase = PhaseMorningReport
		RunOnRoundStart(s)
		return true, nil

	case PhaseMorningReport:
		if !s.AllReady() {
			return false, nil
		}
		resetReadiness(s)
		if s.IsResting {
			// A rest round skips the telegraph entirely.
			s.Phase = PhaseTacticalPlanning
			return true, nil
		}
		rng := NewRNG(s.RNGSeed)
		RollTelegraph(s, rng)
		s.RNGSeed = rng.Seed()
		s.Phase = PhaseEnemyTelegraph
		return true, nil

	case PhaseEnemyTelegraph:
		if !s.AllReady() {
			return false, nil
		}
		resetReadiness(s)
		s.Phase = PhaseTacticalPlanning
		return true, nil

	case PhaseTacticalPlanning:
		if !s.AllReady() {
			return false, nil
		}
		resetReadiness(s)
		if err := enterExecution(s); err != nil {
			return false, err
		}
		return true, nil

	case PhaseEnemyAction:
		if !s.AllReady() {
			return false, nil
		}
		resetReadiness(s)
		advanceRound(s)
		return true, nil
	}
	return false, nil
}

// enterExecution runs the resolver in execution mode, then immediately
// routes to TacticalPlanning (AP remains) or EnemyAction (AP exhausted),
// per spec §4.3's Execution loop.
func enterExecution(s *GameState) error {
	s.Phase = PhaseExecution
	if err := ResolveProposalQueue(s, false); err != nil {
		return err
	}
	if s.AnyAPRemaining() {
		s.Phase = PhaseTacticalPlanning
		return nil
	}
	s.Phase = PhaseEnemyAction
	rng := NewRNG(s.RNGSeed)
	ResolveEnemyAttack(s, rng)
	ResolveHazards(s, rng)
	s.RNGSeed = rng.Seed()
	checkGameOver(s)
	return nil
}

// advanceRound performs EnemyAction→MorningReport bookkeeping: round++,
// rest-round handling, timebomb countdown/expiry, new card draw, and
// fainted-player respawn.
func advanceRound(s *GameState) {
	if s.Enemy != nil && s.Enemy.State == EnemyDefeated && !s.IsResting {
		s.IsResting = true
		s.BossLevel++
		if s.BossLevel >= MaxBossLevel {
			s.Phase = PhaseVictory
			return
		}
		s.Enemy = NewEnemy(s.BossLevel)
	} else if s.IsResting {
		s.IsResting = false
	}

	s.TurnCount++
	resetAP(s)
	RunOnRoundEnd(s)

	if !s.IsResting {
		rng := NewRNG(s.RNGSeed)
		drawAndApplyCard(s, rng)
		s.RNGSeed = rng.Seed()
	}

	for _, id := range s.SortedPlayerIDs() {
		p := s.Players[id]
		if p.HasStatus(StatusFainted) {
			p.HP = MaxHP
			p.RoomID = RoomDormitory
			p.SyncFaintedStatus()
		}
	}

	s.Phase = PhaseMorningReport
	RunOnRoundStart(s)
	checkGameOver(s)
}

func checkGameOver(s *GameState) {
	if s.Phase.IsTerminal() {
		return
	}
	if s.HullIntegrity <= 0 || s.AllFainted() {
		s.Phase = PhaseGameOver
	}
}
