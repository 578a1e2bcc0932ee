package hullbreach

// This file registers Flash cards whose effect fires once, immediately at
// draw time, via on_draw (spec §4.4's table extended with the one hook Flash
// cards need: everything else about them — discard straight after drawing,
// no ActiveSituation entry — is handled generically by phase.go's
// drawAndApplyCard).

func init() {
	register(CardManOverboard, manOverboardBehavior{})
	register(CardPeppernutRain, peppernutRainBehavior{})
	register(CardHighWaves, highWavesBehavior{})
	register(CardCostumeParty, costumePartyBehavior{})
	register(CardShortCircuit, shortCircuitBehavior{})
	register(CardLeak, leakBehavior{})
	register(CardSingASong, singASongBehavior{})
	register(CardLuckyDip, luckyDipBehavior{})
	register(CardPanic, panicBehavior{})
	register(CardWeirdGifts, weirdGiftsBehavior{})
	register(CardStowaway, stowawayBehavior{})
	register(CardPresent, presentBehavior{})
}

// randomPlayer picks a uniformly random player by sorted id, or "" if none.
func randomPlayer(s *GameState, rng *RNG) PlayerID {
	ids := s.SortedPlayerIDs()
	if len(ids) == 0 {
		return ""
	}
	return ids[rng.Intn(len(ids))]
}

// manOverboardBehavior evicts a random crewmate outright.
type manOverboardBehavior struct{ DefaultBehavior }

func (manOverboardBehavior) OnDraw(s *GameState, rng *RNG) {
	if victim := randomPlayer(s, rng); victim != "" {
		delete(s.Players, victim)
	}
}
func (manOverboardBehavior) Sentiment() Sentiment { return SentimentNegative }

// peppernutRainBehavior drops a free peppernut in a random crewmate's room.
type peppernutRainBehavior struct{ DefaultBehavior }

func (peppernutRainBehavior) OnDraw(s *GameState, rng *RNG) {
	target := randomPlayer(s, rng)
	if target == "" {
		return
	}
	if room := s.Rooms[s.Players[target].RoomID]; room != nil {
		room.Items = append(room.Items, ItemPeppernut)
	}
}
func (peppernutRainBehavior) Sentiment() Sentiment { return SentimentPositive }

// highWavesBehavior shoves a random crewmate one BFS step toward the Engine.
type highWavesBehavior struct{ DefaultBehavior }

func (highWavesBehavior) OnDraw(s *GameState, rng *RNG) {
	target := randomPlayer(s, rng)
	if target == "" {
		return
	}
	p := s.Players[target]
	path := s.Map.ShortestPath(p.RoomID, RoomEngine)
	if len(path) > 1 {
		p.RoomID = path[1]
	}
}
func (highWavesBehavior) Sentiment() Sentiment { return SentimentNegative }

// costumePartyBehavior rotates the three lowest-sorted crewmates' rooms.
type costumePartyBehavior struct{ DefaultBehavior }

func (costumePartyBehavior) OnDraw(s *GameState, _ *RNG) {
	ids := s.SortedPlayerIDs()
	if len(ids) < 3 {
		return
	}
	three := ids[:3]
	old := [3]RoomID{s.Players[three[0]].RoomID, s.Players[three[1]].RoomID, s.Players[three[2]].RoomID}
	s.Players[three[0]].RoomID = old[1]
	s.Players[three[1]].RoomID = old[2]
	s.Players[three[2]].RoomID = old[0]
}
func (costumePartyBehavior) Sentiment() Sentiment { return SentimentNeutral }

// shortCircuitBehavior sets a Fire token loose in the Engine room.
type shortCircuitBehavior struct{ DefaultBehavior }

func (shortCircuitBehavior) OnDraw(s *GameState, _ *RNG) {
	if room := s.Rooms[RoomEngine]; room != nil {
		room.Hazards = append(room.Hazards, HazardFire)
	}
}
func (shortCircuitBehavior) Sentiment() Sentiment { return SentimentNegative }

// leakBehavior sets a Water token loose in the Cargo hold.
type leakBehavior struct{ DefaultBehavior }

func (leakBehavior) OnDraw(s *GameState, _ *RNG) {
	if room := s.Rooms[RoomCargo]; room != nil {
		room.Hazards = append(room.Hazards, HazardWater)
	}
}
func (leakBehavior) Sentiment() Sentiment { return SentimentNegative }

// singASongBehavior clears every hazard out of the hub passageway.
type singASongBehavior struct{ DefaultBehavior }

func (singASongBehavior) OnDraw(s *GameState, _ *RNG) {
	if room := s.Rooms[RoomHallway]; room != nil {
		room.Hazards = nil
	}
}
func (singASongBehavior) Sentiment() Sentiment { return SentimentPositive }

// presentBehavior clears every hazard out of the hub passageway, same relief
// as Sing a Song with different flavor.
type presentBehavior struct{ DefaultBehavior }

func (presentBehavior) OnDraw(s *GameState, _ *RNG) {
	if room := s.Rooms[RoomHallway]; room != nil {
		room.Hazards = nil
	}
}
func (presentBehavior) Sentiment() Sentiment { return SentimentPositive }

// luckyDipBehavior swaps the first inventory item between the two
// lowest-sorted crewmates, if both are carrying something.
type luckyDipBehavior struct{ DefaultBehavior }

func (luckyDipBehavior) OnDraw(s *GameState, _ *RNG) {
	ids := s.SortedPlayerIDs()
	if len(ids) < 2 {
		return
	}
	a, b := s.Players[ids[0]], s.Players[ids[1]]
	if len(a.Inventory) == 0 || len(b.Inventory) == 0 {
		return
	}
	a.Inventory[0], b.Inventory[0] = b.Inventory[0], a.Inventory[0]
}
func (luckyDipBehavior) Sentiment() Sentiment { return SentimentNeutral }

// panicBehavior sends whoever is on the Bridge bolting for the Dormitory.
type panicBehavior struct{ DefaultBehavior }

func (panicBehavior) OnDraw(s *GameState, _ *RNG) {
	for _, id := range s.SortedPlayerIDs() {
		p := s.Players[id]
		if p.RoomID == RoomBridge {
			p.RoomID = RoomDormitory
			return
		}
	}
}
func (panicBehavior) Sentiment() Sentiment { return SentimentNegative }

// weirdGiftsBehavior's parcels turn out to be smoldering: Cargo takes the
// worst of it, Sickbay a token's worth.
type weirdGiftsBehavior struct{ DefaultBehavior }

func (weirdGiftsBehavior) OnDraw(s *GameState, _ *RNG) {
	if room := s.Rooms[RoomCargo]; room != nil {
		room.Hazards = append(room.Hazards, HazardFire, HazardFire, HazardFire)
	}
	if room := s.Rooms[RoomSickbay]; room != nil {
		room.Hazards = append(room.Hazards, HazardFire)
	}
}
func (weirdGiftsBehavior) Sentiment() Sentiment { return SentimentNegative }

// stowawayBehavior empties a random crewmate's pockets.
type stowawayBehavior struct{ DefaultBehavior }

func (stowawayBehavior) OnDraw(s *GameState, rng *RNG) {
	target := randomPlayer(s, rng)
	if target == "" {
		return
	}
	s.Players[target].Inventory = nil
}
func (stowawayBehavior) Sentiment() Sentiment { return SentimentNegative }
