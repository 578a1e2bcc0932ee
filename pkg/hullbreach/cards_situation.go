package hullbreach

import "fmt"

// This file registers the non-timebomb Situation cards whose behavior goes
// beyond the catalog's static sentiment: validators, cost modifiers, and
// telegraph hooks named in spec §4.4.

func init() {
	register(CardAfternoonNap, afternoonNapBehavior{})
	register(CardStaticNoise, staticNoiseBehavior{})
	register(CardWailingAlarm, wailingAlarmBehavior{})
	register(CardJammedCannon, jammedCannonBehavior{})
	register(CardSilentForce, silentForceBehavior{})
	register(CardNoLight, noLightBehavior{})
	register(CardSugarRush, sugarRushBehavior{})
	register(CardSlipperyDeck, slipperyDeckBehavior{})
	register(CardStickyFloor, stickyFloorBehavior{})
	register(CardLightsOut, lightsOutBehavior{})
	register(CardTurboMode, turboModeBehavior{})
	register(CardStrongHeadwind, strongHeadwindBehavior{})
	register(CardAttackWave, attackWaveBehavior{})
	register(CardRudderless, rudderlessBehavior{})
	register(CardFogBank, fogBankBehavior{})
	register(CardSeagullAttack, seagullAttackBehavior{})
	register(CardMutiny, mutinyBehavior{})
	register(CardAnchorStuck, anchorStuckBehavior{})
	register(CardAnchorLoose, anchorLooseBehavior{})
	register(CardListing, listingBehavior{})
	register(CardCloggedPipe, cloggedPipeBehavior{})
	register(CardSeasick, seasickBehavior{})
	register(CardBlockade, blockadeBehavior{})
	register(CardWheelClamp, wheelClampBehavior{})
}

// afternoonNapBehavior blocks the card's assigned player from acting.
type afternoonNapBehavior struct{ DefaultBehavior }

func (afternoonNapBehavior) ValidateAction(_ *GameState, p *Player, _ Action, sit *ActiveSituation) error {
	if sit.Assigned != "" && p.ID == sit.Assigned {
		return NewInvalidAction(fmt.Sprintf("%s is napping and cannot act", p.Name))
	}
	return nil
}
func (afternoonNapBehavior) Sentiment() Sentiment { return SentimentNegative }

// staticNoiseBehavior restricts Chat content to short messages.
type staticNoiseBehavior struct{ DefaultBehavior }

func (staticNoiseBehavior) ValidateAction(_ *GameState, _ *Player, a Action, _ *ActiveSituation) error {
	if a.Type == ActionChat && len(a.Text) > 12 {
		return ErrSilenced
	}
	return nil
}
func (staticNoiseBehavior) Sentiment() Sentiment { return SentimentNeutral }

// wailingAlarmBehavior blocks RaiseShields and EvasiveManeuvers.
type wailingAlarmBehavior struct{ DefaultBehavior }

func (wailingAlarmBehavior) ValidateAction(_ *GameState, _ *Player, a Action, _ *ActiveSituation) error {
	if a.Type == ActionRaiseShields || a.Type == ActionEvasiveManeuvers {
		return NewInvalidAction("the alarm drowns out the command")
	}
	return nil
}
func (wailingAlarmBehavior) Sentiment() Sentiment { return SentimentNegative }

// jammedCannonBehavior blocks Shoot entirely until solved.
type jammedCannonBehavior struct{ DefaultBehavior }

func (jammedCannonBehavior) ValidateAction(_ *GameState, _ *Player, a Action, _ *ActiveSituation) error {
	if a.Type == ActionShoot {
		return NewInvalidAction("the cannon is jammed")
	}
	return nil
}
func (jammedCannonBehavior) Sentiment() Sentiment { return SentimentNegative }

// silentForceBehavior blocks all Chat outright.
type silentForceBehavior struct{ DefaultBehavior }

func (silentForceBehavior) ValidateAction(_ *GameState, _ *Player, a Action, _ *ActiveSituation) error {
	if a.Type == ActionChat {
		return ErrSilenced
	}
	return nil
}
func (silentForceBehavior) Sentiment() Sentiment { return SentimentNegative }

// noLightBehavior blocks Lookout (nothing visible) until solved.
type noLightBehavior struct{ DefaultBehavior }

func (noLightBehavior) ValidateAction(_ *GameState, _ *Player, a Action, _ *ActiveSituation) error {
	if a.Type == ActionLookout {
		return NewInvalidAction("it's too dark to see the deck")
	}
	return nil
}
func (noLightBehavior) Sentiment() Sentiment { return SentimentNegative }

// sugarRushBehavior forbids Pass while the crew is wired.
type sugarRushBehavior struct{ DefaultBehavior }

func (sugarRushBehavior) ValidateAction(_ *GameState, _ *Player, a Action, _ *ActiveSituation) error {
	if a.Type == ActionPass {
		return NewInvalidAction("too jittery to pass")
	}
	return nil
}
func (sugarRushBehavior) Sentiment() Sentiment { return SentimentNeutral }

// slipperyDeckBehavior makes Move free but raises every system action's
// cost by 1.
type slipperyDeckBehavior struct{ DefaultBehavior }

func (slipperyDeckBehavior) ModifyActionCost(_ *GameState, _ *Player, a Action, _ *ActiveSituation, base int) int {
	if a.Type == ActionMove {
		return 0
	}
	if isSystemAction(a.Type) {
		return base + 1
	}
	return base
}
func (slipperyDeckBehavior) Sentiment() Sentiment { return SentimentNeutral }

// stickyFloorBehavior raises Move-to-Kitchen cost and, at real resolution,
// has a chance to cancel the move outright.
type stickyFloorBehavior struct{ DefaultBehavior }

func (stickyFloorBehavior) ModifyActionCost(_ *GameState, _ *Player, a Action, _ *ActiveSituation, base int) int {
	if a.Type == ActionMove && a.TargetRoom == RoomKitchen {
		return base + 1
	}
	return base
}
func (stickyFloorBehavior) CheckResolution(_ *GameState, _ *Player, a Action, _ *ActiveSituation, rng *RNG) (bool, error) {
	if a.Type == ActionMove && a.TargetRoom == RoomKitchen {
		return rng.Chance(1, 2), nil
	}
	return false, nil
}
func (stickyFloorBehavior) Sentiment() Sentiment { return SentimentNeutral }

// lightsOutBehavior raises the cost of every Move.
type lightsOutBehavior struct{ DefaultBehavior }

func (lightsOutBehavior) ModifyActionCost(_ *GameState, _ *Player, a Action, _ *ActiveSituation, base int) int {
	if a.Type == ActionMove {
		return base + 1
	}
	return base
}
func (lightsOutBehavior) Sentiment() Sentiment { return SentimentNegative }

// turboModeBehavior grants every action 1 extra AP worth of discount.
type turboModeBehavior struct{ DefaultBehavior }

func (turboModeBehavior) ModifyActionCost(_ *GameState, _ *Player, _ Action, _ *ActiveSituation, base int) int {
	if base > 0 {
		return base - 1
	}
	return base
}
func (turboModeBehavior) Sentiment() Sentiment { return SentimentPositive }

// strongHeadwindBehavior raises the hit threshold for Shoot.
type strongHeadwindBehavior struct{ DefaultBehavior }

func (strongHeadwindBehavior) GetHitThreshold(*GameState, *ActiveSituation) int { return 5 }
func (strongHeadwindBehavior) Sentiment() Sentiment                            { return SentimentNegative }

// attackWaveBehavior doubles the enemy's attack repetitions.
type attackWaveBehavior struct{ DefaultBehavior }

func (attackWaveBehavior) GetEnemyAttackCount(*GameState, *ActiveSituation) int { return 2 }
func (attackWaveBehavior) Sentiment() Sentiment                               { return SentimentNegative }

// rudderlessBehavior adds an extra hazard token per successful attack.
type rudderlessBehavior struct{ DefaultBehavior }

func (rudderlessBehavior) GetHazardModifier(*GameState, *ActiveSituation) int { return 1 }
func (rudderlessBehavior) Sentiment() Sentiment                             { return SentimentNegative }

// fogBankBehavior masks the telegraph until Execution.
type fogBankBehavior struct{ DefaultBehavior }

func (fogBankBehavior) ModifyTelegraph(_ *GameState, _ *ActiveSituation, t *Telegraph) {
	t.Masked = true
}
func (fogBankBehavior) ResolveTelegraph(_ *GameState, _ *ActiveSituation, t *Telegraph) {
	t.Masked = false
}
func (fogBankBehavior) Sentiment() Sentiment { return SentimentNeutral }

// seagullAttackBehavior dive-bombs anyone holding peppernuts the moment they
// try to move; it never expires on its own, and the check looks only at the
// moving player, so a player with no peppernuts moves freely.
type seagullAttackBehavior struct{ DefaultBehavior }

func (seagullAttackBehavior) ValidateAction(_ *GameState, p *Player, a Action, _ *ActiveSituation) error {
	if a.Type == ActionMove && p.HasItem(ItemPeppernut) {
		return NewInvalidAction("gulls won't let go of " + p.Name + " while they're carrying peppernuts")
	}
	return nil
}
func (seagullAttackBehavior) Sentiment() Sentiment { return SentimentNegative }

// mutinyBehavior has the crew drag their feet: every Move costs an extra AP.
type mutinyBehavior struct{ DefaultBehavior }

func (mutinyBehavior) ModifyActionCost(_ *GameState, _ *Player, a Action, _ *ActiveSituation, base int) int {
	if a.Type == ActionMove {
		return base + 1
	}
	return base
}
func (mutinyBehavior) Sentiment() Sentiment { return SentimentNegative }

// anchorStuckBehavior blocks evasive maneuvers until the anchor is freed.
type anchorStuckBehavior struct{ DefaultBehavior }

func (anchorStuckBehavior) ValidateAction(_ *GameState, _ *Player, a Action, _ *ActiveSituation) error {
	if a.Type == ActionEvasiveManeuvers {
		return NewInvalidAction("the stuck anchor won't let the ship turn")
	}
	return nil
}
func (anchorStuckBehavior) Sentiment() Sentiment { return SentimentNegative }

// anchorLooseBehavior drags against the hull, worsening every hit taken.
type anchorLooseBehavior struct{ DefaultBehavior }

func (anchorLooseBehavior) GetHazardModifier(*GameState, *ActiveSituation) int { return 1 }
func (anchorLooseBehavior) Sentiment() Sentiment                              { return SentimentNegative }

// listingBehavior tilts the ship, throwing off the cannon's aim.
type listingBehavior struct{ DefaultBehavior }

func (listingBehavior) GetHitThreshold(*GameState, *ActiveSituation) int { return 4 }
func (listingBehavior) Sentiment() Sentiment                            { return SentimentNegative }

// cloggedPipeBehavior shuts the oven down until cleared.
type cloggedPipeBehavior struct{ DefaultBehavior }

func (cloggedPipeBehavior) ValidateAction(_ *GameState, _ *Player, a Action, _ *ActiveSituation) error {
	if a.Type == ActionBake {
		return NewInvalidAction("the clogged pipe has killed the oven")
	}
	return nil
}
func (cloggedPipeBehavior) Sentiment() Sentiment { return SentimentNegative }

// seasickBehavior leaves whoever's queasy unable to aim a throw.
type seasickBehavior struct{ DefaultBehavior }

func (seasickBehavior) ValidateAction(_ *GameState, _ *Player, a Action, _ *ActiveSituation) error {
	if a.Type == ActionThrow {
		return NewInvalidAction("too queasy to throw straight")
	}
	return nil
}
func (seasickBehavior) Sentiment() Sentiment { return SentimentNegative }

// blockadeBehavior has boarders holding the Cargo hold; nobody gets in.
type blockadeBehavior struct{ DefaultBehavior }

func (blockadeBehavior) ValidateAction(_ *GameState, _ *Player, a Action, _ *ActiveSituation) error {
	if a.Type == ActionMove && a.TargetRoom == RoomCargo {
		return ErrRoomBlocked
	}
	return nil
}
func (blockadeBehavior) Sentiment() Sentiment { return SentimentNegative }

// wheelClampBehavior drags anyone who wanders into Storage back to the hub,
// every round it stays active.
type wheelClampBehavior struct{ DefaultBehavior }

func (wheelClampBehavior) OnRoundStart(s *GameState, _ *ActiveSituation) {
	for _, id := range s.SortedPlayerIDs() {
		p := s.Players[id]
		if p.RoomID == RoomStorage {
			p.RoomID = RoomHallway
		}
	}
}
func (wheelClampBehavior) Sentiment() Sentiment { return SentimentNegative }

// isSystemAction reports whether t targets a room system rather than being
// a pure movement/meta/communication action.
func isSystemAction(t ActionType) bool {
	switch t {
	case ActionBake, ActionShoot, ActionRaiseShields, ActionEvasiveManeuvers,
		ActionExtinguish, ActionRepair, ActionLookout, ActionFirstAid, ActionInteract:
		return true
	default:
		return false
	}
}
