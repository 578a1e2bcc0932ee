package hullbreach

import "fmt"

// Apply is the sole legal mutator (spec §4.1): same (state, player, action)
// always yields the same output, and on error the input is left untouched
// because every mutation happens on a clone that is only returned on
// success.
func Apply(s *GameState, playerID PlayerID, action Action) (*GameState, error) {
	next := s.Clone()
	if err := applyInner(next, playerID, action); err != nil {
		return nil, err
	}
	next.SequenceID++
	return next, nil
}

func applyInner(s *GameState, playerID PlayerID, action Action) error {
	switch action.Type {
	case ActionJoin:
		return applyJoin(s, playerID, action)
	case ActionSetName:
		return applySetName(s, playerID, action)
	case ActionSetMapLayout:
		return applySetMapLayout(s, playerID, action)
	case ActionFullSync:
		return applyFullSync(s, action)
	}

	p, err := s.PlayerByID(playerID)
	if err != nil {
		return err
	}

	if s.Phase != PhaseTacticalPlanning && !alwaysLegalOutOfPlanning(action.Type) {
		return NewInvalidAction(fmt.Sprintf("Cannot act during %s", s.Phase))
	}

	switch action.Type {
	case ActionChat:
		return applyChat(s, p, action)
	case ActionVoteReady:
		return applyVoteReady(s, p)
	case ActionPass:
		return applyPass(s, p)
	case ActionUndo:
		return applyUndo(s, p, action)
	}

	return applyQueueableAction(s, p, action)
}

// applyQueueableAction runs the projection → validation → cost → commit
// pipeline shared by every queued Game action (spec §4.1 steps 3-8).
func applyQueueableAction(s *GameState, p *Player, action Action) error {
	projected := s.Clone()
	if err := ResolveProposalQueue(projected, true); err != nil {
		return err
	}
	pp, err := projected.PlayerByID(p.ID)
	if err != nil {
		return err
	}

	handler, ok := handlers[action.Type]
	if !ok {
		return NewInvalidAction("unknown action")
	}

	if action.Type == ActionMove {
		return applyQueuedMove(s, p, action)
	}

	if err := handler.Validate(projected, pp, action); err != nil {
		return err
	}
	if err := ValidateAgainstSituations(projected, pp, action); err != nil {
		return err
	}

	baseCost := handler.BaseCost(projected, pp, action)
	cost := ModifyCostBySituations(projected, pp, action, baseCost)
	if pp.AP < cost {
		return ErrNotEnoughAP
	}

	rng := NewRNG(s.RNGSeed)
	id := rng.NextID()
	s.RNGSeed = rng.Seed()
	s.ProposalQueue = append(s.ProposalQueue, ProposedAction{ID: id, PlayerID: p.ID, Action: action, Cost: cost})
	p.AP -= cost
	return nil
}

// applyQueuedMove expands a Move to a non-adjacent room into per-step
// proposals along the BFS shortest path (spec §4.2), costing each step
// after card modifiers are applied to the incrementally projected
// position, then deducting the aggregate cost up front.
func applyQueuedMove(s *GameState, p *Player, action Action) error {
	path := s.Map.ShortestPath(p.RoomID, action.TargetRoom)
	if len(path) < 2 {
		return ErrInvalidMove
	}

	proj := s.Clone()
	if err := ResolveProposalQueue(proj, true); err != nil {
		return err
	}
	pp, err := proj.PlayerByID(p.ID)
	if err != nil {
		return err
	}

	type step struct {
		room RoomID
		cost int
	}
	var steps []step
	total := 0
	for i := 1; i < len(path); i++ {
		stepAction := Action{Type: ActionMove, TargetRoom: path[i]}
		if err := handlers[ActionMove].Validate(proj, pp, stepAction); err != nil {
			return err
		}
		if err := ValidateAgainstSituations(proj, pp, stepAction); err != nil {
			return err
		}
		base := handlers[ActionMove].BaseCost(proj, pp, stepAction)
		cost := ModifyCostBySituations(proj, pp, stepAction, base)
		total += cost
		steps = append(steps, step{room: path[i], cost: cost})
		pp.RoomID = path[i]
	}

	if p.AP < total {
		return ErrNotEnoughAP
	}

	rng := NewRNG(s.RNGSeed)
	group := rng.NextID()
	for _, st := range steps {
		s.ProposalQueue = append(s.ProposalQueue, ProposedAction{
			ID:        rng.NextID(),
			PlayerID:  p.ID,
			Action:    Action{Type: ActionMove, TargetRoom: st.room},
			Cost:      st.cost,
			MoveGroup: group,
		})
	}
	s.RNGSeed = rng.Seed()
	p.AP -= total
	return nil
}

func applyChat(s *GameState, p *Player, a Action) error {
	if err := ValidateAgainstSituations(s, p, a); err != nil {
		return err
	}
	s.ChatLog = append(s.ChatLog, ChatMessage{Sender: p.ID, Text: a.Text, Seq: s.SequenceID})
	return nil
}

func applyVoteReady(s *GameState, p *Player) error {
	p.IsReady = !p.IsReady
	return AdvanceIfReady(s)
}

func applyPass(s *GameState, p *Player) error {
	if p.AP <= 0 {
		return NewInvalidAction("Cannot Pass with 0 AP")
	}
	if err := ValidateAgainstSituations(s, p, Action{Type: ActionPass}); err != nil {
		return err
	}
	p.AP = 0
	p.IsReady = !p.IsReady
	return AdvanceIfReady(s)
}

// applyUndo removes a proposal owned by the caller and refunds its cost
// recomputed against the currently active situations rather than the cost
// paid at commit time (spec §4.1 step "Undo"); it never touches rng_seed,
// which is how safe replanning works (spec §8 "Undo safety").
func applyUndo(s *GameState, p *Player, a Action) error {
	var target *ProposedAction
	for i := range s.ProposalQueue {
		if s.ProposalQueue[i].ID == a.ProposalID && s.ProposalQueue[i].PlayerID == p.ID {
			target = &s.ProposalQueue[i]
			break
		}
	}
	if target == nil {
		return NewInvalidAction("no such proposal to undo")
	}

	group := target.MoveGroup
	var kept []ProposedAction
	refund := 0
	for _, prop := range s.ProposalQueue {
		matches := prop.ID == a.ProposalID
		if group != "" {
			matches = prop.MoveGroup == group && prop.PlayerID == p.ID
		}
		if !matches {
			kept = append(kept, prop)
			continue
		}
		handler, ok := handlers[prop.Action.Type]
		cost := prop.Cost
		if ok {
			base := handler.BaseCost(s, p, prop.Action)
			cost = ModifyCostBySituations(s, p, prop.Action, base)
		}
		refund += cost
	}
	s.ProposalQueue = kept
	p.AP += refund
	return nil
}

func applyJoin(s *GameState, playerID PlayerID, a Action) error {
	if _, exists := s.Players[playerID]; exists {
		return nil
	}
	name := a.Name
	if name == "" {
		name = string(playerID)
	}
	for _, other := range s.Players {
		if other.Name == name {
			return NewInvalidAction("name already taken")
		}
	}
	s.Players[playerID] = &Player{
		ID:     playerID,
		Name:   name,
		RoomID: RoomDormitory,
		HP:     MaxHP,
		AP:     MaxAP,
		Status: map[Status]bool{},
	}
	return nil
}

func applySetName(s *GameState, playerID PlayerID, a Action) error {
	if s.Phase != PhaseLobby {
		return NewInvalidAction("SetName is only allowed in the Lobby")
	}
	p, err := s.PlayerByID(playerID)
	if err != nil {
		return err
	}
	for id, other := range s.Players {
		if id != playerID && other.Name == a.Name {
			return NewInvalidAction("name already taken")
		}
	}
	p.Name = a.Name
	return nil
}

func applySetMapLayout(s *GameState, playerID PlayerID, a Action) error {
	if s.Phase != PhaseLobby {
		return NewInvalidAction("SetMapLayout is only allowed in the Lobby")
	}
	if _, err := s.PlayerByID(playerID); err != nil {
		return err
	}
	s.Layout = a.Layout
	s.Map = GenerateMap(a.Layout)
	s.Rooms = NewRooms(s.Map)
	for _, p := range s.Players {
		p.RoomID = RoomDormitory
	}
	return nil
}

func applyFullSync(s *GameState, a Action) error {
	if a.Snapshot == nil {
		return NewInvalidAction("FullSync requires a snapshot")
	}
	*s = *a.Snapshot.Clone()
	return nil
}
