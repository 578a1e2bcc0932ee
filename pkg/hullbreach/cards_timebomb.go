package hullbreach

import "sort"

// This file registers the Timebomb countdown cards and the reward
// ("on_solved") Situation cards, grouped together as the second half of the
// card-behavior table (spec §4.4 on_round_start/on_round_end/on_solved).

func init() {
	register(CardFluWave, fluWaveBehavior{})
	register(CardMonsterDough, monsterDoughBehavior{})
	register(CardMicePlague, micePlagueBehavior{})
	register(CardShoeSetting, shoeSettingBehavior{})
	register(CardAmerigo, amerigoBehavior{})
	register(CardOverheating, overheatingBehavior{})
	register(CardRecipe, recipeBehavior{})
	register(CardTheStaff, theStaffBehavior{})
	register(CardGoldenNut, goldenNutBehavior{})
	register(CardTheBook, theBookBehavior{})
	register(CardBigLeak, bigLeakBehavior{})
}

func sortedPlayerIDs(s *GameState) []PlayerID {
	ids := make([]PlayerID, 0, len(s.Players))
	for id := range s.Players {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// fluWaveBehavior saps 1 AP from every player once it expires. Because round
// advancement resets AP before running expired-timebomb hooks (spec §4.3),
// this lands on the round that just began rather than the one that ended.
type fluWaveBehavior struct{ DefaultBehavior }

func (fluWaveBehavior) OnRoundEnd(s *GameState, _ *ActiveSituation) {
	for _, id := range sortedPlayerIDs(s) {
		p := s.Players[id]
		if p.AP > 0 {
			p.AP--
		}
	}
}
func (fluWaveBehavior) Sentiment() Sentiment { return SentimentNegative }

// monsterDoughBehavior explodes the Kitchen if left unsolved.
type monsterDoughBehavior struct{ DefaultBehavior }

func (monsterDoughBehavior) OnRoundEnd(s *GameState, _ *ActiveSituation) {
	room := s.Rooms[RoomKitchen]
	if room == nil {
		return
	}
	room.Hazards = append(room.Hazards, HazardFire, HazardFire)
	if s.HullIntegrity > 0 {
		s.HullIntegrity--
	}
}
func (monsterDoughBehavior) Sentiment() Sentiment { return SentimentNegative }

// micePlagueBehavior eats one Peppernut from every room and inventory.
type micePlagueBehavior struct{ DefaultBehavior }

func (micePlagueBehavior) OnRoundEnd(s *GameState, _ *ActiveSituation) {
	for _, id := range s.Map.RoomOrder {
		s.Rooms[id].RemoveItem(ItemPeppernut)
	}
	for _, id := range sortedPlayerIDs(s) {
		s.Players[id].RemoveItem(ItemPeppernut)
	}
}
func (micePlagueBehavior) Sentiment() Sentiment { return SentimentNegative }

// shoeSettingBehavior blocks its assigned player for the one round it's
// active; removal on expiry is handled by the generic registry bookkeeping.
type shoeSettingBehavior struct{ DefaultBehavior }

func (shoeSettingBehavior) ValidateAction(_ *GameState, p *Player, a Action, sit *ActiveSituation) error {
	if sit.Assigned != "" && p.ID == sit.Assigned && isGameAction(a.Type) && a.Type != ActionChat {
		return NewInvalidAction(p.Name + " is busy polishing a boot")
	}
	return nil
}
func (shoeSettingBehavior) Sentiment() Sentiment { return SentimentNeutral }

// amerigoBehavior eats every Peppernut out of Storage once it expires.
type amerigoBehavior struct{ DefaultBehavior }

func (amerigoBehavior) OnRoundEnd(s *GameState, _ *ActiveSituation) {
	room := s.Rooms[RoomStorage]
	if room == nil {
		return
	}
	for room.RemoveItem(ItemPeppernut) {
	}
}
func (amerigoBehavior) Sentiment() Sentiment { return SentimentNeutral }

// overheatingBehavior saps 1 AP each round from anyone standing in Engine,
// for as long as the card is active (not just at expiry).
type overheatingBehavior struct{ DefaultBehavior }

func (overheatingBehavior) OnRoundStart(s *GameState, _ *ActiveSituation) {
	for _, id := range sortedPlayerIDs(s) {
		p := s.Players[id]
		if p.RoomID == RoomEngine && p.AP > 0 {
			p.AP--
		}
	}
}
func (overheatingBehavior) Sentiment() Sentiment { return SentimentNegative }

// recipeBehavior grants 2 Peppernuts to the solver, spilling overflow into
// the room if their inventory is full.
type recipeBehavior struct{ DefaultBehavior }

func (recipeBehavior) OnSolved(s *GameState, p *Player, _ *ActiveSituation) {
	for i := 0; i < 2; i++ {
		if p.CanCarry(ItemPeppernut) {
			p.Inventory = append(p.Inventory, ItemPeppernut)
		} else if room := s.Rooms[p.RoomID]; room != nil {
			room.Items = append(room.Items, ItemPeppernut)
		}
	}
}
func (recipeBehavior) Sentiment() Sentiment { return SentimentPositive }

// theStaffBehavior heals the solver to full and revives every fainted
// player back to 1 HP.
type theStaffBehavior struct{ DefaultBehavior }

func (theStaffBehavior) OnSolved(s *GameState, p *Player, _ *ActiveSituation) {
	p.HP = MaxHP
	p.SyncFaintedStatus()
	for _, id := range sortedPlayerIDs(s) {
		other := s.Players[id]
		if other.HasStatus(StatusFainted) {
			other.HP = 1
			other.RoomID = RoomSickbay
			other.SyncFaintedStatus()
		}
	}
}
func (theStaffBehavior) Sentiment() Sentiment { return SentimentPositive }

// goldenNutBehavior deals direct damage to the boss.
type goldenNutBehavior struct{ DefaultBehavior }

func (goldenNutBehavior) OnSolved(s *GameState, _ *Player, _ *ActiveSituation) {
	if s.Enemy == nil {
		return
	}
	s.Enemy.HP -= 2
	if s.Enemy.HP < 0 {
		s.Enemy.HP = 0
	}
}
func (goldenNutBehavior) Sentiment() Sentiment { return SentimentPositive }

// theBookBehavior cancels the pending telegraphed attack outright.
type theBookBehavior struct{ DefaultBehavior }

func (theBookBehavior) OnSolved(s *GameState, _ *Player, _ *ActiveSituation) {
	if s.Enemy != nil {
		s.Enemy.NextAttack = nil
	}
}
func (theBookBehavior) Sentiment() Sentiment { return SentimentPositive }

// bigLeakBehavior floods a little more Cargo water in every round it stays
// active; it has no on-solved effect of its own.
type bigLeakBehavior struct{ DefaultBehavior }

func (bigLeakBehavior) OnRoundStart(s *GameState, _ *ActiveSituation) {
	if room := s.Rooms[RoomCargo]; room != nil {
		room.Hazards = append(room.Hazards, HazardWater)
	}
}
func (bigLeakBehavior) Sentiment() Sentiment { return SentimentNegative }
