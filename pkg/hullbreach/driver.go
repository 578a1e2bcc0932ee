package hullbreach

// Stabilize wraps the reducer to keep the engine in a decision-required
// state (spec §4.7): outside TacticalPlanning it auto-votes-ready for the
// least-indexed unready player (nothing more to decide in those phases),
// and inside TacticalPlanning it auto-readies any player already out of AP.
// This reduces every strategic decision to a single Apply call, which is
// what the planner and the seeded scenario tests build on.
func Stabilize(s *GameState) (*GameState, error) {
	cur := s
	for {
		id, ok := nextAutoReadyPlayer(cur)
		if !ok {
			return cur, nil
		}
		next, err := Apply(cur, id, Action{Type: ActionVoteReady})
		if err != nil {
			return nil, err
		}
		cur = next
	}
}

func nextAutoReadyPlayer(s *GameState) (PlayerID, bool) {
	if s.Phase.IsTerminal() {
		return "", false
	}
	ids := s.SortedPlayerIDs()
	if s.Phase != PhaseTacticalPlanning {
		for _, id := range ids {
			if !s.Players[id].IsReady {
				return id, true
			}
		}
		return "", false
	}
	for _, id := range ids {
		p := s.Players[id]
		if p.AP == 0 && !p.IsReady {
			return id, true
		}
	}
	return "", false
}
