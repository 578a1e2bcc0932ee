// Package scorer implements the heuristic evaluation function the planner
// uses to rank search nodes, in the spirit of internal/bot's hardScoreMoves:
// additive weighted terms over raw game-state signals rather than a single
// opaque model.
package scorer

import (
	"github.com/efreeman/polite-betrayal/api/pkg/hullbreach"
)

// Weights holds every tunable coefficient. All are plain float64s so an
// outer optimizer can perturb them without touching scoring logic.
type Weights struct {
	TerminalVictory float64
	TerminalDefeat  float64

	HullWeight       float64
	HullCriticalMult float64

	FireWeight        float64
	WaterWeight       float64
	BrokenSystemPenal float64

	OffenseWeight float64

	PanicPerFaintedPlayer float64
	PanicPerSilencedState float64

	DistanceToRoleWeight float64
	FirefighterSwitch    float64 // hull threshold below which everyone becomes a firefighter

	SituationNegativeWeight float64
	SituationPositiveWeight float64

	ThreatWeight float64

	ProgressionWeight float64

	OscillationPenalty      float64
	RepeatedPassPenalty     float64
	CommitmentBonus         float64
	OscillationWindow       int
}

// DefaultWeights returns a reasonable starting point, tuned by hand against
// the seeded scenarios rather than learned.
func DefaultWeights() Weights {
	return Weights{
		TerminalVictory:         1_000_000,
		TerminalDefeat:          -1_000_000,
		HullWeight:              50,
		HullCriticalMult:        3,
		FireWeight:              -20,
		WaterWeight:             -8,
		BrokenSystemPenal:       -30,
		OffenseWeight:           15,
		PanicPerFaintedPlayer:   -40,
		PanicPerSilencedState:   -5,
		DistanceToRoleWeight:    -2,
		FirefighterSwitch:       8,
		SituationNegativeWeight: -10,
		SituationPositiveWeight: 10,
		ThreatWeight:            -6,
		ProgressionWeight:       4,
		OscillationPenalty:      -25,
		RepeatedPassPenalty:     -15,
		CommitmentBonus:         3,
		OscillationWindow:       6,
	}
}

// HistoryEntry is one step of the planner's recent-action trail, used only
// for the anti-oscillation terms.
type HistoryEntry struct {
	Player hullbreach.PlayerID
	Action hullbreach.ActionType
	Room   hullbreach.RoomID
}

// Details breaks the total score down by named component, returned
// alongside the scalar so callers (and tests) can inspect why a node was
// ranked the way it was.
type Details struct {
	Vitals          float64
	Hazards         float64
	Offense         float64
	Panic           float64
	Logistics       float64
	Situations      float64
	Threats         float64
	Progression     float64
	AntiOscillation float64
}

// Total sums every component into the scalar the planner sorts on.
func (d Details) Total() float64 {
	return d.Vitals + d.Hazards + d.Offense + d.Panic + d.Logistics +
		d.Situations + d.Threats + d.Progression + d.AntiOscillation
}

// Score evaluates current relative to parent (the prior planning step, used
// for the Progression and Commitment terms), given the recent per-player
// action trail and a precomputed room distance matrix (spec §4.8).
func Score(parent, current *hullbreach.GameState, recent []HistoryEntry, w Weights, m *hullbreach.ShipMap) (float64, Details) {
	if current.Phase == hullbreach.PhaseVictory {
		return w.TerminalVictory, Details{Vitals: w.TerminalVictory}
	}
	projectedHull := projectHull(current)
	if current.Phase == hullbreach.PhaseGameOver || projectedHull <= 0 {
		return w.TerminalDefeat, Details{Vitals: w.TerminalDefeat}
	}

	d := Details{}
	d.Vitals = vitals(current, projectedHull, w)
	d.Hazards = hazards(current, projectedHull, w)
	d.Offense = offense(current, w)
	d.Panic = panic_(current, w)
	d.Logistics = logistics(current, projectedHull, m, w)
	d.Situations = situations(current, w)
	d.Threats = threats(current, w)
	if parent != nil {
		d.Progression = progression(parent, current, w)
	}
	d.AntiOscillation = antiOscillation(clampWindow(recent, w.OscillationWindow), w)
	if parent != nil {
		d.AntiOscillation += commitment(parent, current, m, w)
	}

	return d.Total(), d
}

// projectHull estimates hull integrity after in-flight fire damage that
// hasn't been applied yet, so the scorer doesn't undervalue a plan that is
// one Execution away from taking damage (spec §4.8 "projected hull").
func projectHull(s *hullbreach.GameState) int {
	hull := s.HullIntegrity
	for _, id := range s.SortedRoomIDs() {
		room := s.Rooms[id]
		if room.FireCount() > 0 && room.SystemHealth <= 1 {
			hull--
		}
	}
	return hull
}

func vitals(s *hullbreach.GameState, projectedHull int, w Weights) float64 {
	mult := 1.0
	if projectedHull <= hullbreach.MaxHull/4 {
		mult = w.HullCriticalMult
	}
	return float64(projectedHull) / float64(hullbreach.MaxHull) * w.HullWeight * mult
}

func hazards(s *hullbreach.GameState, projectedHull int, w Weights) float64 {
	mult := 1.0
	if projectedHull <= hullbreach.MaxHull/4 {
		mult = w.HullCriticalMult
	}
	total := 0.0
	for _, id := range s.SortedRoomIDs() {
		room := s.Rooms[id]
		total += float64(room.FireCount()) * w.FireWeight * mult
		total += float64(room.WaterCount()) * w.WaterWeight
		if room.IsBroken {
			total += w.BrokenSystemPenal
		}
	}
	return total
}

func offense(s *hullbreach.GameState, w Weights) float64 {
	if s.Enemy == nil {
		return 0
	}
	dealt := float64(s.Enemy.MaxHP - s.Enemy.HP)
	return dealt * w.OffenseWeight
}

func panic_(s *hullbreach.GameState, w Weights) float64 {
	total := 0.0
	for _, p := range s.Players {
		if p.HasStatus(hullbreach.StatusFainted) {
			total += w.PanicPerFaintedPlayer
		}
		if p.HasStatus(hullbreach.StatusSilenced) {
			total += w.PanicPerSilencedState
		}
	}
	return total
}

// stationFor is the default role assignment before the firefighter
// override kicks in.
var stationFor = map[int]hullbreach.System{
	0: hullbreach.SystemKitchen,
	1: hullbreach.SystemBridge,
	2: hullbreach.SystemEngine,
	3: hullbreach.SystemCannons,
}

func logistics(s *hullbreach.GameState, projectedHull int, m *hullbreach.ShipMap, w Weights) float64 {
	fireRooms := 0
	for _, r := range s.Rooms {
		if r.FireCount() > 0 {
			fireRooms++
		}
	}
	firefighterMode := projectedHull <= hullbreach.MaxHull/4 || fireRooms >= len(s.Rooms)/3

	total := 0.0
	for i, id := range s.SortedPlayerIDs() {
		p := s.Players[id]
		if p.HasStatus(hullbreach.StatusFainted) {
			continue
		}
		target := nearestFireRoom(s, m, p.RoomID)
		if !firefighterMode {
			if station, ok := stationFor[i%len(stationFor)]; ok {
				target = nearestRoomWithSystem(s, m, p.RoomID, station)
			}
		}
		if target == "" {
			continue
		}
		dist := m.Distance(p.RoomID, target)
		if dist > 0 {
			total += float64(dist) * w.DistanceToRoleWeight
		}
	}
	if firefighterMode {
		total += w.FirefighterSwitch
	}
	return total
}

func nearestFireRoom(s *hullbreach.GameState, m *hullbreach.ShipMap, from hullbreach.RoomID) hullbreach.RoomID {
	best := hullbreach.RoomID("")
	bestDist := -1
	for _, id := range s.SortedRoomIDs() {
		if s.Rooms[id].FireCount() == 0 {
			continue
		}
		d := m.Distance(from, id)
		if d < 0 {
			continue
		}
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = id
		}
	}
	return best
}

func nearestRoomWithSystem(s *hullbreach.GameState, m *hullbreach.ShipMap, from hullbreach.RoomID, sys hullbreach.System) hullbreach.RoomID {
	best := hullbreach.RoomID("")
	bestDist := -1
	for _, id := range s.SortedRoomIDs() {
		if s.Rooms[id].System != sys {
			continue
		}
		d := m.Distance(from, id)
		if d < 0 {
			continue
		}
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = id
		}
	}
	return best
}

func situations(s *hullbreach.GameState, w Weights) float64 {
	total := 0.0
	for _, sit := range s.ActiveSituations {
		c := hullbreach.CardByID(sit.CardID)
		switch c.Sentiment {
		case hullbreach.SentimentNegative:
			total += w.SituationNegativeWeight
		case hullbreach.SentimentPositive:
			total += w.SituationPositiveWeight
		}
	}
	return total
}

func threats(s *hullbreach.GameState, w Weights) float64 {
	if s.Enemy == nil || s.Enemy.NextAttack == nil {
		return 0
	}
	mult := 1.0
	if s.ShieldsActive || s.EvasionActive {
		mult = 0.25
	}
	return w.ThreatWeight * mult
}

func progression(parent, current *hullbreach.GameState, w Weights) float64 {
	return float64(current.TurnCount-parent.TurnCount) * w.ProgressionWeight
}

// antiOscillation penalizes A→B→A room loops and repeated Pass/VoteReady by
// the same player within the trailing window (spec §4.8).
func antiOscillation(recent []HistoryEntry, w Weights) float64 {
	total := 0.0
	for i := 2; i < len(recent); i++ {
		a, b, c := recent[i-2], recent[i-1], recent[i]
		if a.Player != b.Player || b.Player != c.Player {
			continue
		}
		if a.Action == hullbreach.ActionMove && c.Action == hullbreach.ActionMove && a.Room == c.Room && b.Room != a.Room {
			total += w.OscillationPenalty
		}
	}
	passStreak := map[hullbreach.PlayerID]int{}
	for _, h := range recent {
		if h.Action != hullbreach.ActionPass && h.Action != hullbreach.ActionVoteReady {
			passStreak[h.Player] = 0
			continue
		}
		passStreak[h.Player]++
		if passStreak[h.Player] > 1 {
			total += w.RepeatedPassPenalty
		}
	}
	return total
}

// commitment rewards a Move that reduces distance to the nearest fire room,
// breaking ties toward plans that make tangible progress (spec §4.8).
func commitment(parent, current *hullbreach.GameState, m *hullbreach.ShipMap, w Weights) float64 {
	total := 0.0
	for _, id := range current.SortedPlayerIDs() {
		cp, ok := current.Players[id]
		if !ok {
			continue
		}
		pp, ok := parent.Players[id]
		if !ok {
			continue
		}
		fireBefore := nearestFireRoom(parent, m, pp.RoomID)
		fireAfter := nearestFireRoom(current, m, cp.RoomID)
		if fireBefore == "" || fireAfter == "" {
			continue
		}
		before := m.Distance(pp.RoomID, fireBefore)
		after := m.Distance(cp.RoomID, fireAfter)
		if before >= 0 && after >= 0 && after < before {
			total += w.CommitmentBonus
		}
	}
	return total
}

// clampWindow trims history to the trailing N entries the weights request.
func clampWindow(recent []HistoryEntry, n int) []HistoryEntry {
	if n <= 0 || len(recent) <= n {
		return recent
	}
	return recent[len(recent)-n:]
}
