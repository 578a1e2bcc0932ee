package hullbreach

// ResolveProposalQueue is the single entry point for replaying the queue in
// either simulation or execution mode (spec §4.5), generalizing the
// teacher's pkg/diplomacy/resolve.go Resolver: there, every order for a
// season is adjudicated together against every other order; here proposals
// are independent and replayed strictly in submission order, but the
// simulation/execution split and the "never leak RNG in projection" rule
// are the same discipline.
func ResolveProposalQueue(s *GameState, simulation bool) error {
	queue := s.ProposalQueue
	s.ProposalQueue = nil
	rng := NewRNG(s.RNGSeed)

	for _, prop := range queue {
		p, err := s.PlayerByID(prop.PlayerID)
		if err != nil {
			continue // player left the game after queuing
		}

		if !simulation {
			blocked, err := CheckResolutionBySituations(s, p, prop.Action, rng)
			if err != nil {
				return err
			}
			if blocked {
				refundProposal(s, p, prop)
				continue
			}
		}

		handler, ok := handlers[prop.Action.Type]
		if !ok {
			continue
		}

		if prop.Action.Type == ActionMove && !s.Map.AreAdjacent(p.RoomID, prop.Action.TargetRoom) {
			refundProposal(s, p, prop)
			continue
		}

		if err := handler.Execute(s, p, prop.Action, simulation, rng); err != nil {
			refundProposal(s, p, prop)
			continue
		}
	}

	if !simulation {
		s.RNGSeed = rng.Seed()
	}
	return nil
}

func refundProposal(s *GameState, p *Player, prop ProposedAction) {
	cost := ModifyCostBySituations(s, p, prop.Action, prop.Cost)
	p.AP += cost
}

// ResolveEnemyAttack unmasks and applies the telegraphed attack at the end
// of Execution (spec §4.6 "Enemy-attack resolution").
func ResolveEnemyAttack(s *GameState, rng *RNG) {
	if s.Enemy == nil || s.Enemy.NextAttack == nil || s.Enemy.State != EnemyActive {
		s.ShieldsActive = false
		s.EvasionActive = false
		return
	}
	attack := s.Enemy.NextAttack
	ResolveTelegraphBySituations(s, attack)

	reps := EnemyAttackCount(s)
	for i := 0; i < reps; i++ {
		if s.EvasionActive {
			s.ChatLog = append(s.ChatLog, ChatMessage{Text: "The attack is evaded!", Seq: s.SequenceID})
			continue
		}
		if s.ShieldsActive {
			s.ChatLog = append(s.ChatLog, ChatMessage{Text: "Shields absorb the attack!", Seq: s.SequenceID})
			continue
		}
		applyAttackEffect(s, attack, rng)
	}

	s.Enemy.NextAttack = nil
	s.ShieldsActive = false
	s.EvasionActive = false
}

func applyAttackEffect(s *GameState, attack *Telegraph, _ *RNG) {
	room := s.Rooms[attack.TargetRoom]
	if room == nil {
		return
	}
	extra := HazardModifier(s)
	switch attack.Effect {
	case AttackFireball:
		n := 1 + extra
		for i := 0; i < n; i++ {
			room.Hazards = append(room.Hazards, HazardFire)
		}
		if s.HullIntegrity > 0 {
			s.HullIntegrity--
		}
	case AttackLeak:
		n := 1 + extra
		for i := 0; i < n; i++ {
			room.Hazards = append(room.Hazards, HazardWater)
		}
	case AttackBoarding:
		// Boarding has no hazard type of its own; it leaves a single Water
		// token, since boarding raiders flood the passage with debris rather
		// than burn it.
		room.Hazards = append(room.Hazards, HazardWater)
	case AttackMiss:
		// no-op
	}
}

// ResolveHazards runs the end-of-Execution hazard pass deterministically by
// sorted room id (spec §4.6 "Hazard resolution").
func ResolveHazards(s *GameState, rng *RNG) {
	rooms := s.SortedRoomIDs()

	spreads := map[RoomID]bool{}
	for _, id := range rooms {
		room := s.Rooms[id]
		fires := room.FireCount()
		for i := 0; i < fires; i++ {
			if room.SystemHealth > 0 {
				room.SystemHealth--
			}
			if room.SystemHealth == 0 && !room.IsBroken {
				room.IsBroken = true
				if s.HullIntegrity > 0 {
					s.HullIntegrity--
				}
			}
		}

		threshold := 2
		if room.System == SystemCargo {
			threshold = 1
		}
		if fires >= threshold {
			for _, nb := range room.Neighbors {
				if rng.Chance(1, 2) {
					spreads[nb] = true
				}
			}
		}
	}

	for _, id := range rooms {
		player := s.playersInRoom(id)
		room := s.Rooms[id]
		if room.FireCount() == 0 {
			continue
		}
		for _, p := range player {
			p.HP--
			p.SyncFaintedStatus()
		}
	}

	for nb := range spreads {
		if room := s.Rooms[nb]; room != nil {
			room.Hazards = append(room.Hazards, HazardFire)
		}
	}

	for _, id := range rooms {
		room := s.Rooms[id]
		if room.System == SystemStorage {
			continue
		}
		if room.WaterCount() > 0 {
			for room.RemoveItem(ItemPeppernut) {
			}
		}
	}

	for _, id := range rooms {
		room := s.Rooms[id]
		if room.FireCount() == 0 && room.SystemHealth > 0 && room.SystemHealth < SystemHealthMax && !room.IsBroken {
			room.SystemHealth++
		}
	}
}

// playersInRoom returns players currently occupying a room, sorted by id.
func (s *GameState) playersInRoom(id RoomID) []*Player {
	var out []*Player
	for _, pid := range s.SortedPlayerIDs() {
		p := s.Players[pid]
		if p.RoomID == id {
			out = append(out, p)
		}
	}
	return out
}

// RollTelegraph rolls a fresh attack at EnemyTelegraph: the target room is
// drawn uniformly from the system rooms and a 2d6 roll picks the effect,
// then active situations may rewrite it (e.g. Fog Bank masking).
func RollTelegraph(s *GameState, rng *RNG) {
	if s.Enemy == nil || s.Enemy.State != EnemyActive {
		return
	}
	roomIDs := s.SortedRoomIDs()
	// Exclude hub rooms with no system: a telegraph always targets a system
	// room (spec §3 room invariant: "Hallway/empty hub rooms never appear
	// as a system-action target" extends naturally to attack targets).
	var targets []RoomID
	for _, id := range roomIDs {
		if sys := s.Rooms[id].System; sys != SystemNone && sys != SystemHallway {
			targets = append(targets, id)
		}
	}
	if len(targets) == 0 {
		return
	}
	target := targets[rng.Intn(len(targets))]

	roll := rng.DiceRoll(6) + rng.DiceRoll(6)
	effect := telegraphEffectForRoll(roll)

	attack := &Telegraph{TargetRoom: target, TargetSystem: s.Rooms[target].System, Effect: effect}
	ModifyTelegraphBySituations(s, attack)
	s.Enemy.NextAttack = attack
}

func telegraphEffectForRoll(roll int) AttackEffect {
	switch {
	case roll <= 4:
		return AttackMiss
	case roll <= 8:
		return AttackFireball
	case roll <= 10:
		return AttackLeak
	default:
		return AttackBoarding
	}
}
