package hullbreach

// GetValidActions enumerates every action that would currently succeed if
// applied by p, by projecting the proposal queue in simulation mode and
// checking each candidate against the projected position, AP, and
// inventory (spec §4.5). It is the single source of truth the planner and
// any UI "what can I do" affordance both use.
func GetValidActions(s *GameState, playerID PlayerID) ([]Action, error) {
	p, err := s.PlayerByID(playerID)
	if err != nil {
		return nil, err
	}

	if s.Phase != PhaseTacticalPlanning {
		var out []Action
		out = append(out, Action{Type: ActionChat})
		out = append(out, Action{Type: ActionVoteReady})
		return out, nil
	}

	proj := s.Clone()
	if err := ResolveProposalQueue(proj, true); err != nil {
		return nil, err
	}
	pp, err := proj.PlayerByID(playerID)
	if err != nil {
		return nil, err
	}

	var out []Action
	tryAdd := func(a Action) {
		h, ok := handlers[a.Type]
		if !ok {
			return
		}
		if err := h.Validate(proj, pp, a); err != nil {
			return
		}
		if err := ValidateAgainstSituations(proj, pp, a); err != nil {
			return
		}
		cost := ModifyCostBySituations(proj, pp, a, h.BaseCost(proj, pp, a))
		if pp.AP < cost {
			return
		}
		out = append(out, a)
	}

	for _, room := range proj.Map.Adjacency[pp.RoomID] {
		tryAdd(Action{Type: ActionMove, TargetRoom: room})
	}
	tryAdd(Action{Type: ActionBake})
	tryAdd(Action{Type: ActionShoot})
	tryAdd(Action{Type: ActionRaiseShields})
	tryAdd(Action{Type: ActionEvasiveManeuvers})
	tryAdd(Action{Type: ActionExtinguish})
	tryAdd(Action{Type: ActionRepair})
	tryAdd(Action{Type: ActionLookout})
	tryAdd(Action{Type: ActionFirstAid})
	tryAdd(Action{Type: ActionInteract})

	if room := proj.Rooms[pp.RoomID]; room != nil {
		for _, it := range room.Items {
			tryAdd(Action{Type: ActionPickUp, Item: it})
		}
	}
	for _, it := range pp.Inventory {
		tryAdd(Action{Type: ActionDrop, Item: it})
	}
	for _, otherID := range proj.SortedPlayerIDs() {
		if otherID == playerID {
			continue
		}
		other := proj.Players[otherID]
		if other.RoomID != pp.RoomID && !proj.Map.AreAdjacent(pp.RoomID, other.RoomID) {
			continue
		}
		for _, it := range pp.Inventory {
			tryAdd(Action{Type: ActionThrow, TargetPlayer: otherID, Item: it})
		}
		if other.HasStatus(StatusFainted) {
			tryAdd(Action{Type: ActionRevive, TargetPlayer: otherID})
		}
	}

	out = append(out, Action{Type: ActionChat})
	if p.AP > 0 {
		out = append(out, Action{Type: ActionPass})
	}
	out = append(out, Action{Type: ActionVoteReady})

	for _, prop := range s.ProposalQueue {
		if prop.PlayerID == playerID {
			out = append(out, Action{Type: ActionUndo, ProposalID: prop.ID})
		}
	}

	return out, nil
}
