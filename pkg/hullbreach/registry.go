package hullbreach

import "sort"

// CardBehavior is the capability bundle spec §4.4 describes: a table from
// card id to hooks, each defaulting to a no-op. Concrete cards embed
// DefaultBehavior and override only what they need, following the spec §9
// guidance ("table keyed by card id; each entry carries function handles
// with default no-ops for unused hooks").
type CardBehavior interface {
	ValidateAction(s *GameState, p *Player, a Action, sit *ActiveSituation) error
	ModifyActionCost(s *GameState, p *Player, a Action, sit *ActiveSituation, base int) int
	GetHitThreshold(s *GameState, sit *ActiveSituation) int
	GetEnemyAttackCount(s *GameState, sit *ActiveSituation) int
	GetHazardModifier(s *GameState, sit *ActiveSituation) int
	ModifyTelegraph(s *GameState, sit *ActiveSituation, t *Telegraph)
	ResolveTelegraph(s *GameState, sit *ActiveSituation, t *Telegraph)
	// CheckResolution runs only in execution mode (spec §4.5); blocked=true
	// means the proposal is refunded and skipped.
	CheckResolution(s *GameState, p *Player, a Action, sit *ActiveSituation, rng *RNG) (blocked bool, err error)
	OnRoundStart(s *GameState, sit *ActiveSituation)
	// OnRoundEnd runs only for a Timebomb, once, when round-end bookkeeping
	// brings its countdown to zero; other situations never receive it.
	OnRoundEnd(s *GameState, sit *ActiveSituation)
	OnSolved(s *GameState, p *Player, sit *ActiveSituation)
	// OnDraw runs once for a Flash card the instant it is drawn, before it
	// goes to discard. Every Flash card (Man Overboard, Peppernut Rain, ...)
	// uses it for its one-shot effect.
	OnDraw(s *GameState, rng *RNG)
	Sentiment() Sentiment
}

// DefaultBehavior implements every CardBehavior method as a no-op so
// concrete cards only need to override the hooks they use.
type DefaultBehavior struct{ sentiment Sentiment }

func (DefaultBehavior) ValidateAction(*GameState, *Player, Action, *ActiveSituation) error { return nil }
func (DefaultBehavior) ModifyActionCost(_ *GameState, _ *Player, _ Action, _ *ActiveSituation, base int) int {
	return base
}
func (DefaultBehavior) GetHitThreshold(*GameState, *ActiveSituation) int    { return 0 }
func (DefaultBehavior) GetEnemyAttackCount(*GameState, *ActiveSituation) int { return 0 }
func (DefaultBehavior) GetHazardModifier(*GameState, *ActiveSituation) int  { return 0 }
func (DefaultBehavior) ModifyTelegraph(*GameState, *ActiveSituation, *Telegraph)  {}
func (DefaultBehavior) ResolveTelegraph(*GameState, *ActiveSituation, *Telegraph) {}
func (DefaultBehavior) CheckResolution(*GameState, *Player, Action, *ActiveSituation, *RNG) (bool, error) {
	return false, nil
}
func (DefaultBehavior) OnRoundStart(*GameState, *ActiveSituation) {}
func (DefaultBehavior) OnRoundEnd(*GameState, *ActiveSituation)   {}
func (DefaultBehavior) OnSolved(*GameState, *Player, *ActiveSituation) {}
func (DefaultBehavior) OnDraw(*GameState, *RNG)                       {}
func (d DefaultBehavior) Sentiment() Sentiment {
	if d.sentiment == "" {
		return SentimentNeutral
	}
	return d.sentiment
}

// registry is the package-level card id -> behavior table, built in
// cards_situation.go, cards_timebomb.go and cards_flash.go's init functions.
var registry = map[CardID]CardBehavior{}

func register(id CardID, b CardBehavior) {
	registry[id] = b
}

// BehaviorFor returns the registered behavior for a card, or a neutral
// DefaultBehavior carrying the catalog's declared sentiment if none is
// registered (every catalog card is registered, so this fallback only
// serves unknown ids).
func BehaviorFor(id CardID) CardBehavior {
	if b, ok := registry[id]; ok {
		return b
	}
	return DefaultBehavior{sentiment: catalog[id].Sentiment}
}

// sortedActiveSituations returns GameState.ActiveSituations sorted by card
// id, the iteration order every aggregation and dispatch must use (spec
// §4.4 "Cards are queried by sorted id in every aggregation").
func sortedActiveSituations(s *GameState) []*ActiveSituation {
	out := append([]*ActiveSituation(nil), s.ActiveSituations...)
	sort.Slice(out, func(i, j int) bool { return out[i].CardID < out[j].CardID })
	return out
}

// ValidateAgainstSituations runs every active situation's validator,
// returning the first rejection found in sorted-id order.
func ValidateAgainstSituations(s *GameState, p *Player, a Action) error {
	for _, sit := range sortedActiveSituations(s) {
		if err := BehaviorFor(sit.CardID).ValidateAction(s, p, a, sit); err != nil {
			return err
		}
	}
	return nil
}

// ModifyCostBySituations applies every active situation's cost modifier in
// sorted-id order, threading the running cost through each.
func ModifyCostBySituations(s *GameState, p *Player, a Action, base int) int {
	cost := base
	for _, sit := range sortedActiveSituations(s) {
		cost = BehaviorFor(sit.CardID).ModifyActionCost(s, p, a, sit, cost)
	}
	if cost < 0 {
		cost = 0
	}
	return cost
}

// DefaultHitThreshold is the baseline dice threshold for Shoot to hit.
const DefaultHitThreshold = 3

// HitThreshold returns the max of the default and every situation's
// override (Strong Headwind raises it to 5).
func HitThreshold(s *GameState) int {
	th := DefaultHitThreshold
	for _, sit := range sortedActiveSituations(s) {
		if v := BehaviorFor(sit.CardID).GetHitThreshold(s, sit); v > th {
			th = v
		}
	}
	return th
}

// EnemyAttackCount aggregates by maximum across active situations (spec §9
// open-question resolution: "Preserve the max-semantics").
func EnemyAttackCount(s *GameState) int {
	count := 1
	for _, sit := range sortedActiveSituations(s) {
		if v := BehaviorFor(sit.CardID).GetEnemyAttackCount(s, sit); v > count {
			count = v
		}
	}
	return count
}

// HazardModifier sums every situation's extra hazard tokens per hit
// (Rudderless adds +1); summation, not max, since the spec names this card
// as additive ("adds +1 hazard token per hit").
func HazardModifier(s *GameState) int {
	total := 0
	for _, sit := range sortedActiveSituations(s) {
		total += BehaviorFor(sit.CardID).GetHazardModifier(s, sit)
	}
	return total
}

// ModifyTelegraphBySituations lets every active situation rewrite the
// freshly-rolled attack (Fog Bank masks it).
func ModifyTelegraphBySituations(s *GameState, t *Telegraph) {
	for _, sit := range sortedActiveSituations(s) {
		BehaviorFor(sit.CardID).ModifyTelegraph(s, sit, t)
	}
}

// ResolveTelegraphBySituations unmasks the attack at Execution.
func ResolveTelegraphBySituations(s *GameState, t *Telegraph) {
	for _, sit := range sortedActiveSituations(s) {
		BehaviorFor(sit.CardID).ResolveTelegraph(s, sit, t)
	}
}

// CheckResolutionBySituations runs the execution-only resolution gate
// (skipped entirely in simulation mode to avoid leaking RNG-driven blocks,
// spec §4.4 check_resolution).
func CheckResolutionBySituations(s *GameState, p *Player, a Action, rng *RNG) (bool, error) {
	for _, sit := range sortedActiveSituations(s) {
		blocked, err := BehaviorFor(sit.CardID).CheckResolution(s, p, a, sit, rng)
		if err != nil {
			return false, err
		}
		if blocked {
			return true, nil
		}
	}
	return false, nil
}

// RunOnRoundStart dispatches on_round_start to every active situation.
func RunOnRoundStart(s *GameState) {
	for _, sit := range sortedActiveSituations(s) {
		BehaviorFor(sit.CardID).OnRoundStart(s, sit)
	}
}

// RunOnRoundEnd ticks every Timebomb's countdown, runs on_round_end for
// expired ones, and removes expired entries.
func RunOnRoundEnd(s *GameState) {
	var remaining []*ActiveSituation
	for _, sit := range sortedActiveSituations(s) {
		if CardByID(sit.CardID).Type == CardTimebomb {
			sit.RoundsLeft--
		}
		if CardByID(sit.CardID).Type == CardTimebomb && sit.RoundsLeft <= 0 {
			BehaviorFor(sit.CardID).OnRoundEnd(s, sit)
			s.Discard = append(s.Discard, sit.CardID)
			continue
		}
		remaining = append(remaining, sit)
	}
	s.ActiveSituations = remaining
}

// FindSolvable returns the first active situation (by sorted id) whose
// solution is fully satisfied by the player at their current room, the
// open-question resolution for simultaneous Interact targets (spec §9).
func FindSolvable(s *GameState, p *Player) *ActiveSituation {
	for _, sit := range sortedActiveSituations(s) {
		c := CardByID(sit.CardID)
		if c.Solution == nil {
			continue
		}
		room, ok := s.Rooms[p.RoomID]
		if !ok || room.System != c.Solution.TargetSystem {
			continue
		}
		if c.Solution.ItemCost != "" && !p.HasItem(c.Solution.ItemCost) {
			continue
		}
		if p.AP < c.Solution.APCost {
			continue
		}
		return sit
	}
	return nil
}
