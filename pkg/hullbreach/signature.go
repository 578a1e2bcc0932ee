package hullbreach

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Signature returns a canonical hash over the phase, counters, enemy,
// players, rooms, active situations and queued proposals (the RNG seed,
// deck, discard pile and chat log are not included), used by the planner
// to deduplicate equivalent search nodes (spec
// §4.9). Construction is entirely by sorted-id iteration so two states
// that differ only by map/player insertion order hash identically.
func (s *GameState) Signature() string {
	var b strings.Builder

	fmt.Fprintf(&b, "phase=%s|turn=%d|hull=%d|boss=%d|rest=%t|shields=%t|evasion=%t|",
		s.Phase, s.TurnCount, s.HullIntegrity, s.BossLevel, s.IsResting, s.ShieldsActive, s.EvasionActive)

	if s.Enemy != nil {
		fmt.Fprintf(&b, "enemy=%d/%d/%s/", s.Enemy.HP, s.Enemy.MaxHP, s.Enemy.State)
		if s.Enemy.NextAttack != nil {
			fmt.Fprintf(&b, "attack=%s-%s-%s/", s.Enemy.NextAttack.TargetRoom, s.Enemy.NextAttack.TargetSystem, s.Enemy.NextAttack.Effect)
		}
	}

	for _, id := range s.SortedPlayerIDs() {
		p := s.Players[id]
		fmt.Fprintf(&b, "p:%s=%s,%d,%d,%v,%t;", id, p.RoomID, p.HP, p.AP, p.Inventory, p.IsReady)
	}

	for _, id := range s.SortedRoomIDs() {
		r := s.Rooms[id]
		fmt.Fprintf(&b, "r:%s=%v,%v,%d,%t;", id, r.Hazards, r.Items, r.SystemHealth, r.IsBroken)
	}

	for _, sit := range sortedActiveSituations(s) {
		fmt.Fprintf(&b, "s:%s,%d,%s;", sit.CardID, sit.RoundsLeft, sit.Assigned)
	}

	for _, prop := range s.ProposalQueue {
		fmt.Fprintf(&b, "q:%s,%s,%s;", prop.PlayerID, prop.Action.Type, prop.Action.TargetRoom)
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// TotalAP sums every player's current AP, used to break signature
// collisions in favor of the node with strictly more total AP (spec §4.9
// step 3).
func (s *GameState) TotalAP() int {
	total := 0
	for _, p := range s.Players {
		total += p.AP
	}
	return total
}
