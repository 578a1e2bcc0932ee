package hullbreach

// ActionType tags the variant of a player command, following the flat
// tagged-struct convention of pkg/diplomacy/order.go's Order type: one
// struct, fields used depending on Type, rather than an interface per
// variant. This keeps (de)serialization and dispatch tables simple.
type ActionType string

// Meta actions: never queued. Join and FullSync are accepted in any phase;
// SetName and SetMapLayout only in the Lobby.
const (
	ActionJoin         ActionType = "Join"
	ActionSetName      ActionType = "SetName"
	ActionSetMapLayout ActionType = "SetMapLayout"
	ActionFullSync     ActionType = "FullSync"
)

// Game actions: gated by phase, most are queued rather than applied inline.
const (
	ActionMove              ActionType = "Move"
	ActionBake              ActionType = "Bake"
	ActionShoot             ActionType = "Shoot"
	ActionRaiseShields       ActionType = "RaiseShields"
	ActionEvasiveManeuvers   ActionType = "EvasiveManeuvers"
	ActionInteract          ActionType = "Interact"
	ActionExtinguish        ActionType = "Extinguish"
	ActionRepair            ActionType = "Repair"
	ActionThrow             ActionType = "Throw"
	ActionPickUp            ActionType = "PickUp"
	ActionDrop              ActionType = "Drop"
	ActionRevive            ActionType = "Revive"
	ActionLookout           ActionType = "Lookout"
	ActionFirstAid          ActionType = "FirstAid"
	ActionChat              ActionType = "Chat"
	ActionVoteReady         ActionType = "VoteReady"
	ActionPass              ActionType = "Pass"
	ActionUndo              ActionType = "Undo"
)

// Action is the public command a player issues. Only the fields relevant to
// Type are populated; the rest are left zero. All fields are exported so
// the type round-trips through JSON unchanged (spec §6 serialization).
type Action struct {
	Type ActionType `json:"type"`

	// Meta payloads.
	Name   string `json:"name,omitempty"`
	Layout Layout `json:"layout,omitempty"`
	Snapshot *GameState `json:"snapshot,omitempty"`

	// Game payloads.
	TargetRoom   RoomID   `json:"targetRoom,omitempty"`
	TargetPlayer PlayerID `json:"targetPlayer,omitempty"`
	Item         ItemType `json:"item,omitempty"`
	Text         string   `json:"text,omitempty"`
	ProposalID   string   `json:"proposalId,omitempty"`
}

// ProposedAction is a queued action awaiting resolution, tagged with the
// deterministic id drawn from the seeded PRNG at commit time (spec §4.1
// step 7) and the player who proposed it.
type ProposedAction struct {
	ID       string   `json:"id"`
	PlayerID PlayerID `json:"playerId"`
	Action   Action   `json:"action"`
	Cost     int      `json:"cost"`

	// MoveGroup links every per-step proposal generated by a single queued
	// Move command so Undo can refund the aggregate rather than one step
	// (spec §4.2 "a mid-queue Undo refunds the aggregate"). Empty for
	// non-Move proposals, which are their own group of one.
	MoveGroup string `json:"moveGroup,omitempty"`
}

// isGameAction reports whether t is a Game (phase-gated, cost-bearing)
// action type rather than a Meta one.
func isGameAction(t ActionType) bool {
	switch t {
	case ActionJoin, ActionSetName, ActionSetMapLayout, ActionFullSync:
		return false
	default:
		return true
	}
}

// alwaysLegalOutOfPlanning are the Game actions accepted outside
// TacticalPlanning (spec §4.1 step 2).
func alwaysLegalOutOfPlanning(t ActionType) bool {
	switch t {
	case ActionChat, ActionVoteReady, ActionPass, ActionUndo:
		return true
	default:
		return false
	}
}
