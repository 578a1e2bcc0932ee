package hullbreach

import "testing"

// newSeededRNG gives tests a deterministic generator without going through
// GameState.RNGSeed bookkeeping.
func newSeededRNG(seed uint64) *RNG { return NewRNG(seed) }

func TestSeagullAttackBlocksMoveWhileCarryingPeppernut(t *testing.T) {
	s := newTwoPlayerGame(t, 1)
	p := s.Players["p1"]
	p.Inventory = []ItemType{ItemPeppernut}
	sit := &ActiveSituation{CardID: CardSeagullAttack}

	if err := (seagullAttackBehavior{}).ValidateAction(s, p, Action{Type: ActionMove}, sit); err == nil {
		t.Fatal("expected move to be blocked while carrying a peppernut")
	}
	p.Inventory = nil
	if err := (seagullAttackBehavior{}).ValidateAction(s, p, Action{Type: ActionMove}, sit); err != nil {
		t.Fatalf("expected move to be allowed once peppernuts are gone, got %v", err)
	}
}

func TestBlockadeBlocksMoveIntoCargo(t *testing.T) {
	s := newTwoPlayerGame(t, 1)
	p := s.Players["p1"]
	sit := &ActiveSituation{CardID: CardBlockade}

	if err := (blockadeBehavior{}).ValidateAction(s, p, Action{Type: ActionMove, TargetRoom: RoomCargo}, sit); err != ErrRoomBlocked {
		t.Fatalf("expected ErrRoomBlocked, got %v", err)
	}
	if err := (blockadeBehavior{}).ValidateAction(s, p, Action{Type: ActionMove, TargetRoom: RoomBridge}, sit); err != nil {
		t.Fatalf("expected move to other rooms to stay legal, got %v", err)
	}
}

func TestCloggedPipeBlocksBake(t *testing.T) {
	s := newTwoPlayerGame(t, 1)
	p := s.Players["p1"]
	sit := &ActiveSituation{CardID: CardCloggedPipe}
	if err := (cloggedPipeBehavior{}).ValidateAction(s, p, Action{Type: ActionBake}, sit); err == nil {
		t.Fatal("expected Bake to be blocked")
	}
}

func TestAnchorStuckBlocksEvasiveManeuvers(t *testing.T) {
	s := newTwoPlayerGame(t, 1)
	p := s.Players["p1"]
	sit := &ActiveSituation{CardID: CardAnchorStuck}
	if err := (anchorStuckBehavior{}).ValidateAction(s, p, Action{Type: ActionEvasiveManeuvers}, sit); err == nil {
		t.Fatal("expected evasive maneuvers to be blocked")
	}
}

func TestMutinyRaisesMoveCost(t *testing.T) {
	s := newTwoPlayerGame(t, 1)
	p := s.Players["p1"]
	sit := &ActiveSituation{CardID: CardMutiny}
	got := mutinyBehavior{}.ModifyActionCost(s, p, Action{Type: ActionMove}, sit, 1)
	if got != 2 {
		t.Fatalf("expected move cost 2, got %d", got)
	}
	if got := (mutinyBehavior{}).ModifyActionCost(s, p, Action{Type: ActionChat}, sit, 0); got != 0 {
		t.Fatalf("expected chat cost untouched, got %d", got)
	}
}

func TestListingRaisesHitThreshold(t *testing.T) {
	if got := (listingBehavior{}).GetHitThreshold(nil, nil); got != 4 {
		t.Fatalf("expected threshold 4, got %d", got)
	}
}

func TestWheelClampDragsStorageOccupantsToHub(t *testing.T) {
	s := newTwoPlayerGame(t, 1)
	s.Players["p1"].RoomID = RoomStorage
	s.Players["p2"].RoomID = RoomBridge

	wheelClampBehavior{}.OnRoundStart(s, &ActiveSituation{CardID: CardWheelClamp})

	if s.Players["p1"].RoomID != RoomHallway {
		t.Fatalf("expected p1 dragged to hub, still at %s", s.Players["p1"].RoomID)
	}
	if s.Players["p2"].RoomID != RoomBridge {
		t.Fatalf("expected p2 untouched, got %s", s.Players["p2"].RoomID)
	}
}

func TestBigLeakFloodsCargoEveryRound(t *testing.T) {
	s := newTwoPlayerGame(t, 1)
	before := s.Rooms[RoomCargo].WaterCount()
	bigLeakBehavior{}.OnRoundStart(s, &ActiveSituation{CardID: CardBigLeak})
	if got := s.Rooms[RoomCargo].WaterCount(); got != before+1 {
		t.Fatalf("expected one more water token, got %d want %d", got, before+1)
	}
}

func TestHighWavesShovesPlayerTowardEngine(t *testing.T) {
	s := newTwoPlayerGame(t, 1)
	p := s.Players["p1"]
	p.RoomID = RoomDormitory
	want := s.Map.ShortestPath(RoomDormitory, RoomEngine)[1]

	highWavesBehavior{}.OnDraw(s, newSeededRNG(7))

	moved := s.Players["p1"].RoomID == want || s.Players["p2"].RoomID == want
	if !moved {
		t.Fatalf("expected some player to take the first BFS step (%s) toward the Engine", want)
	}
}

func TestShortCircuitAndLeakSpawnHazards(t *testing.T) {
	s := newTwoPlayerGame(t, 1)
	shortCircuitBehavior{}.OnDraw(s, nil)
	if s.Rooms[RoomEngine].FireCount() != 1 {
		t.Fatalf("expected a fire token in Engine, got %d", s.Rooms[RoomEngine].FireCount())
	}
	leakBehavior{}.OnDraw(s, nil)
	if s.Rooms[RoomCargo].WaterCount() != 1 {
		t.Fatalf("expected a water token in Cargo, got %d", s.Rooms[RoomCargo].WaterCount())
	}
}

func TestCostumePartyRotatesThreeRooms(t *testing.T) {
	s := NewGame(1, LayoutStar)
	for _, id := range []PlayerID{"p1", "p2", "p3"} {
		next, err := Apply(s, id, Action{Type: ActionJoin, Name: string(id)})
		if err != nil {
			t.Fatalf("join %s: %v", id, err)
		}
		s = next
	}
	s.Players["p1"].RoomID = RoomDormitory
	s.Players["p2"].RoomID = RoomKitchen
	s.Players["p3"].RoomID = RoomCannons

	costumePartyBehavior{}.OnDraw(s, nil)

	if s.Players["p1"].RoomID != RoomKitchen {
		t.Fatalf("expected p1 in Kitchen, got %s", s.Players["p1"].RoomID)
	}
	if s.Players["p2"].RoomID != RoomCannons {
		t.Fatalf("expected p2 in Cannons, got %s", s.Players["p2"].RoomID)
	}
	if s.Players["p3"].RoomID != RoomDormitory {
		t.Fatalf("expected p3 in Dormitory, got %s", s.Players["p3"].RoomID)
	}
}

func TestLuckyDipSwapsFirstItems(t *testing.T) {
	s := newTwoPlayerGame(t, 1)
	s.Players["p1"].Inventory = []ItemType{ItemExtinguisher}
	s.Players["p2"].Inventory = []ItemType{ItemWheelbarrow}

	luckyDipBehavior{}.OnDraw(s, nil)

	if s.Players["p1"].Inventory[0] != ItemWheelbarrow {
		t.Fatalf("expected p1 to now hold the wheelbarrow, got %v", s.Players["p1"].Inventory)
	}
	if s.Players["p2"].Inventory[0] != ItemExtinguisher {
		t.Fatalf("expected p2 to now hold the extinguisher, got %v", s.Players["p2"].Inventory)
	}
}

func TestPanicMovesBridgeOccupantToDormitory(t *testing.T) {
	s := newTwoPlayerGame(t, 1)
	s.Players["p1"].RoomID = RoomBridge
	s.Players["p2"].RoomID = RoomCannons

	panicBehavior{}.OnDraw(s, nil)

	if s.Players["p1"].RoomID != RoomDormitory {
		t.Fatalf("expected p1 to flee to Dormitory, got %s", s.Players["p1"].RoomID)
	}
	if s.Players["p2"].RoomID != RoomCannons {
		t.Fatalf("expected p2 untouched, got %s", s.Players["p2"].RoomID)
	}
}

func TestWeirdGiftsBurnsCargoAndSickbay(t *testing.T) {
	s := newTwoPlayerGame(t, 1)
	weirdGiftsBehavior{}.OnDraw(s, nil)
	if got := s.Rooms[RoomCargo].FireCount(); got != 3 {
		t.Fatalf("expected 3 fire tokens in Cargo, got %d", got)
	}
	if got := s.Rooms[RoomSickbay].FireCount(); got != 1 {
		t.Fatalf("expected 1 fire token in Sickbay, got %d", got)
	}
}

func TestStowawayEmptiesInventory(t *testing.T) {
	s := newTwoPlayerGame(t, 1)
	s.Players["p1"].Inventory = []ItemType{ItemPeppernut, ItemExtinguisher}
	s.Players["p2"].Inventory = []ItemType{ItemPeppernut}

	stowawayBehavior{}.OnDraw(s, newSeededRNG(3))

	cleared := 0
	for _, id := range []PlayerID{"p1", "p2"} {
		if len(s.Players[id].Inventory) == 0 {
			cleared++
		}
	}
	if cleared != 1 {
		t.Fatalf("expected exactly one player's inventory cleared, got %d cleared", cleared)
	}
}

func TestPresentAndSingASongClearHubHazards(t *testing.T) {
	s := newTwoPlayerGame(t, 1)
	s.Rooms[RoomHallway].Hazards = []HazardType{HazardFire, HazardWater}
	presentBehavior{}.OnDraw(s, nil)
	if len(s.Rooms[RoomHallway].Hazards) != 0 {
		t.Fatalf("expected Present to clear the hub, got %v", s.Rooms[RoomHallway].Hazards)
	}

	s.Rooms[RoomHallway].Hazards = []HazardType{HazardWater}
	singASongBehavior{}.OnDraw(s, nil)
	if len(s.Rooms[RoomHallway].Hazards) != 0 {
		t.Fatalf("expected Sing a Song to clear the hub, got %v", s.Rooms[RoomHallway].Hazards)
	}
}

func TestManOverboardEvictsOnePlayer(t *testing.T) {
	s := newTwoPlayerGame(t, 1)
	manOverboardBehavior{}.OnDraw(s, newSeededRNG(5))
	if len(s.Players) != 1 {
		t.Fatalf("expected exactly one player left, got %d", len(s.Players))
	}
}

func TestPeppernutRainDropsItemInTargetRoom(t *testing.T) {
	s := newTwoPlayerGame(t, 1)
	s.Players["p1"].RoomID = RoomBow
	s.Players["p2"].RoomID = RoomSickbay

	peppernutRainBehavior{}.OnDraw(s, newSeededRNG(9))

	if !s.Rooms[RoomBow].HasItem(ItemPeppernut) && !s.Rooms[RoomSickbay].HasItem(ItemPeppernut) {
		t.Fatal("expected a peppernut to land in one of the two occupied rooms")
	}
}

func TestSeasickBlocksThrow(t *testing.T) {
	s := newTwoPlayerGame(t, 1)
	p := s.Players["p1"]
	sit := &ActiveSituation{CardID: CardSeasick}
	if err := (seasickBehavior{}).ValidateAction(s, p, Action{Type: ActionThrow}, sit); err == nil {
		t.Fatal("expected throw to be blocked")
	}
}

func TestAnchorLooseAddsHazardModifier(t *testing.T) {
	if got := (anchorLooseBehavior{}).GetHazardModifier(nil, nil); got != 1 {
		t.Fatalf("expected +1 hazard modifier, got %d", got)
	}
}

func TestCatalogHasNoUnregisteredMechanicalCard(t *testing.T) {
	for _, id := range AllCardIDs() {
		if _, ok := registry[id]; !ok {
			t.Fatalf("card %s has no registered CardBehavior", id)
		}
	}
}
