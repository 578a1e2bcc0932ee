package hullbreach

import "fmt"

// Handler is the three-piece contract spec §4.6 assigns to every action
// variant, mirroring internal/service/order_service.go's per-order-type
// dispatch.
type Handler interface {
	Validate(s *GameState, p *Player, a Action) error
	BaseCost(s *GameState, p *Player, a Action) int
	Execute(s *GameState, p *Player, a Action, simulation bool, rng *RNG) error
}

var handlers = map[ActionType]Handler{
	ActionMove:             moveHandler{},
	ActionBake:             bakeHandler{},
	ActionShoot:            shootHandler{},
	ActionRaiseShields:     raiseShieldsHandler{},
	ActionEvasiveManeuvers: evasiveManeuversHandler{},
	ActionExtinguish:       extinguishHandler{},
	ActionRepair:           repairHandler{},
	ActionPickUp:           pickUpHandler{},
	ActionDrop:             dropHandler{},
	ActionThrow:            throwHandler{},
	ActionRevive:           reviveHandler{},
	ActionFirstAid:         firstAidHandler{},
	ActionLookout:          lookoutHandler{},
	ActionInteract:         interactHandler{},
}

// --- Move ---

type moveHandler struct{}

func (moveHandler) Validate(s *GameState, p *Player, a Action) error {
	if a.TargetRoom == "" {
		return NewInvalidAction("move requires a target room")
	}
	if _, err := s.RoomByID(a.TargetRoom); err != nil {
		return err
	}
	if !s.Map.AreAdjacent(p.RoomID, a.TargetRoom) && s.Map.Distance(p.RoomID, a.TargetRoom) < 0 {
		return ErrInvalidMove
	}
	return nil
}
func (moveHandler) BaseCost(*GameState, *Player, Action) int { return 1 }
func (moveHandler) Execute(s *GameState, p *Player, a Action, _ bool, _ *RNG) error {
	if !s.Map.AreAdjacent(p.RoomID, a.TargetRoom) {
		return ErrInvalidMove
	}
	p.RoomID = a.TargetRoom
	return nil
}

// --- Bake ---

type bakeHandler struct{}

func (bakeHandler) Validate(s *GameState, p *Player, _ Action) error {
	room, err := s.RoomByID(p.RoomID)
	if err != nil {
		return err
	}
	if room.System != SystemKitchen {
		return NewInvalidAction("must be in the Kitchen to bake")
	}
	if len(room.Hazards) > 0 {
		return ErrRoomBlocked
	}
	return nil
}
func (bakeHandler) BaseCost(*GameState, *Player, Action) int { return 1 }
func (bakeHandler) Execute(s *GameState, p *Player, _ Action, _ bool, _ *RNG) error {
	room, err := s.RoomByID(p.RoomID)
	if err != nil {
		return err
	}
	room.Items = append(room.Items, ItemPeppernut, ItemPeppernut, ItemPeppernut)
	return nil
}

// --- Shoot ---

type shootHandler struct{}

func (shootHandler) Validate(s *GameState, p *Player, _ Action) error {
	room, err := s.RoomByID(p.RoomID)
	if err != nil {
		return err
	}
	if room.System != SystemCannons {
		return NewInvalidAction("must be at the Cannons to shoot")
	}
	if !p.HasItem(ItemPeppernut) {
		return NewInvalidAction("no ammo to shoot")
	}
	return nil
}
func (shootHandler) BaseCost(*GameState, *Player, Action) int { return 1 }
func (shootHandler) Execute(s *GameState, p *Player, _ Action, simulation bool, rng *RNG) error {
	if !p.RemoveItem(ItemPeppernut) {
		return NewInvalidAction("no ammo to shoot")
	}
	if simulation || s.Enemy == nil || s.Enemy.State != EnemyActive {
		return nil
	}
	roll := rng.DiceRoll(6)
	if roll >= HitThreshold(s) {
		s.Enemy.HP--
		if s.Enemy.HP <= 0 {
			s.Enemy.HP = 0
			s.Enemy.State = EnemyDefeated
		}
	}
	return nil
}

// --- RaiseShields ---

type raiseShieldsHandler struct{}

func (raiseShieldsHandler) Validate(s *GameState, p *Player, _ Action) error {
	room, err := s.RoomByID(p.RoomID)
	if err != nil {
		return err
	}
	if room.System != SystemEngine {
		return NewInvalidAction("must be in Engine to raise shields")
	}
	if len(room.Hazards) > 0 {
		return ErrRoomBlocked
	}
	return nil
}
func (raiseShieldsHandler) BaseCost(*GameState, *Player, Action) int { return 1 }
func (raiseShieldsHandler) Execute(s *GameState, _ *Player, _ Action, _ bool, _ *RNG) error {
	s.ShieldsActive = true
	return nil
}

// --- EvasiveManeuvers ---

type evasiveManeuversHandler struct{}

func (evasiveManeuversHandler) Validate(s *GameState, p *Player, _ Action) error {
	room, err := s.RoomByID(p.RoomID)
	if err != nil {
		return err
	}
	if room.System != SystemBridge {
		return NewInvalidAction("must be on the Bridge for evasive maneuvers")
	}
	if len(room.Hazards) > 0 {
		return ErrRoomBlocked
	}
	return nil
}
func (evasiveManeuversHandler) BaseCost(*GameState, *Player, Action) int { return 1 }
func (evasiveManeuversHandler) Execute(s *GameState, _ *Player, _ Action, _ bool, _ *RNG) error {
	s.EvasionActive = true
	return nil
}

// --- Extinguish ---

type extinguishHandler struct{}

func (extinguishHandler) Validate(s *GameState, p *Player, _ Action) error {
	room, err := s.RoomByID(p.RoomID)
	if err != nil {
		return err
	}
	if room.FireCount() == 0 {
		return NewInvalidAction("no fire here to extinguish")
	}
	return nil
}
func (extinguishHandler) BaseCost(*GameState, *Player, Action) int { return 1 }
func (extinguishHandler) Execute(s *GameState, p *Player, _ Action, _ bool, _ *RNG) error {
	room, err := s.RoomByID(p.RoomID)
	if err != nil {
		return err
	}
	n := 1
	if p.HasItem(ItemExtinguisher) {
		n = 2
	}
	room.RemoveHazard(HazardFire, n)
	return nil
}

// --- Repair ---

type repairHandler struct{}

func (repairHandler) repairTarget(s *GameState, p *Player) (water bool, system bool, hull bool) {
	room, err := s.RoomByID(p.RoomID)
	if err != nil {
		return false, false, false
	}
	if room.WaterCount() > 0 {
		return true, false, false
	}
	if room.System == SystemCargo && room.SystemHealth < SystemHealthMax {
		return false, true, false
	}
	if room.System == SystemCargo && s.HullIntegrity < MaxHull && room.SystemHealth >= SystemHealthMax {
		return false, false, true
	}
	return false, false, false
}
func (h repairHandler) Validate(s *GameState, p *Player, _ Action) error {
	water, system, hull := h.repairTarget(s, p)
	if !water && !system && !hull {
		return NewInvalidAction("nothing to repair here")
	}
	return nil
}
func (repairHandler) BaseCost(*GameState, *Player, Action) int { return 1 }
func (h repairHandler) Execute(s *GameState, p *Player, _ Action, _ bool, _ *RNG) error {
	water, system, hull := h.repairTarget(s, p)
	room, err := s.RoomByID(p.RoomID)
	if err != nil {
		return err
	}
	switch {
	case water:
		room.RemoveHazard(HazardWater, 1)
	case system:
		room.SystemHealth++
		if room.SystemHealth > SystemHealthMax {
			room.SystemHealth = SystemHealthMax
		}
		room.IsBroken = room.SystemHealth == 0
	case hull:
		if s.HullIntegrity < MaxHull {
			s.HullIntegrity++
		}
	default:
		return NewInvalidAction("nothing to repair here")
	}
	return nil
}

// --- PickUp ---

type pickUpHandler struct{}

func (pickUpHandler) Validate(s *GameState, p *Player, a Action) error {
	room, err := s.RoomByID(p.RoomID)
	if err != nil {
		return err
	}
	if !room.HasItem(a.Item) {
		return ErrInvalidItem
	}
	if !p.CanCarry(a.Item) {
		return ErrInventoryFull
	}
	return nil
}
func (pickUpHandler) BaseCost(*GameState, *Player, Action) int { return 1 }
func (pickUpHandler) Execute(s *GameState, p *Player, a Action, _ bool, _ *RNG) error {
	room, err := s.RoomByID(p.RoomID)
	if err != nil {
		return err
	}
	if !room.RemoveItem(a.Item) {
		return ErrInvalidItem
	}
	p.Inventory = append(p.Inventory, a.Item)
	return nil
}

// --- Drop ---

type dropHandler struct{}

func (dropHandler) Validate(s *GameState, p *Player, a Action) error {
	if !p.HasItem(a.Item) {
		return ErrInvalidItem
	}
	if a.Item == ItemWheelbarrow && p.CountItem(ItemPeppernut) > 1 {
		return NewInvalidAction("cannot drop the wheelbarrow while carrying more than one peppernut")
	}
	return nil
}
func (dropHandler) BaseCost(*GameState, *Player, Action) int { return 0 }
func (dropHandler) Execute(s *GameState, p *Player, a Action, _ bool, _ *RNG) error {
	if !p.RemoveItem(a.Item) {
		return ErrInvalidItem
	}
	room, err := s.RoomByID(p.RoomID)
	if err != nil {
		return err
	}
	if a.Item == ItemPeppernut && room.WaterCount() > 0 {
		return nil // destroyed on drop
	}
	room.Items = append(room.Items, a.Item)
	return nil
}

// --- Throw ---

type throwHandler struct{}

func (throwHandler) Validate(s *GameState, p *Player, a Action) error {
	if !p.HasItem(a.Item) {
		return ErrInvalidItem
	}
	target, err := s.PlayerByID(a.TargetPlayer)
	if err != nil {
		return err
	}
	if target.RoomID != p.RoomID && !s.Map.AreAdjacent(p.RoomID, target.RoomID) {
		return NewInvalidAction("target is out of throwing range")
	}
	if !target.CanCarry(a.Item) {
		return ErrInventoryFull
	}
	return nil
}
func (throwHandler) BaseCost(*GameState, *Player, Action) int { return 1 }
func (throwHandler) Execute(s *GameState, p *Player, a Action, _ bool, _ *RNG) error {
	target, err := s.PlayerByID(a.TargetPlayer)
	if err != nil {
		return err
	}
	if !p.RemoveItem(a.Item) {
		return ErrInvalidItem
	}
	target.Inventory = append(target.Inventory, a.Item)
	return nil
}

// --- Revive ---

type reviveHandler struct{}

func (reviveHandler) Validate(s *GameState, p *Player, a Action) error {
	target, err := s.PlayerByID(a.TargetPlayer)
	if err != nil {
		return err
	}
	if !target.HasStatus(StatusFainted) {
		return NewInvalidAction(fmt.Sprintf("%s is not fainted", target.Name))
	}
	if target.RoomID != p.RoomID && !s.Map.AreAdjacent(p.RoomID, target.RoomID) {
		return NewInvalidAction("target is out of range")
	}
	return nil
}
func (reviveHandler) BaseCost(*GameState, *Player, Action) int { return 2 }
func (reviveHandler) Execute(s *GameState, _ *Player, a Action, _ bool, _ *RNG) error {
	target, err := s.PlayerByID(a.TargetPlayer)
	if err != nil {
		return err
	}
	target.HP = 1
	target.SyncFaintedStatus()
	return nil
}

// --- FirstAid ---

type firstAidHandler struct{}

func (firstAidHandler) Validate(s *GameState, p *Player, _ Action) error {
	room, err := s.RoomByID(p.RoomID)
	if err != nil {
		return err
	}
	if room.System != SystemSickbay {
		return NewInvalidAction("must be in Sickbay for first aid")
	}
	return nil
}
func (firstAidHandler) BaseCost(*GameState, *Player, Action) int { return 1 }
func (firstAidHandler) Execute(s *GameState, p *Player, _ Action, _ bool, _ *RNG) error {
	if p.HP < MaxHP {
		p.HP++
	}
	p.SyncFaintedStatus()
	return nil
}

// --- Lookout ---

type lookoutHandler struct{}

func (lookoutHandler) Validate(s *GameState, p *Player, _ Action) error {
	room, err := s.RoomByID(p.RoomID)
	if err != nil {
		return err
	}
	if room.System != SystemBow {
		return NewInvalidAction("must be at the Bow to look out")
	}
	if len(room.Hazards) > 0 {
		return ErrRoomBlocked
	}
	return nil
}
func (lookoutHandler) BaseCost(*GameState, *Player, Action) int { return 1 }
func (lookoutHandler) Execute(s *GameState, p *Player, _ Action, simulation bool, _ *RNG) error {
	if simulation || len(s.Deck) == 0 {
		return nil
	}
	s.ChatLog = append(s.ChatLog, ChatMessage{
		Sender: p.ID,
		Text:   fmt.Sprintf("Lookout spots the next card: %s", s.Deck[0]),
		Seq:    s.SequenceID,
	})
	return nil
}

// --- Interact ---

type interactHandler struct{}

func (interactHandler) Validate(s *GameState, p *Player, _ Action) error {
	if FindSolvable(s, p) == nil {
		return NewInvalidAction("nothing to interact with here")
	}
	return nil
}
func (interactHandler) BaseCost(s *GameState, p *Player, _ Action) int {
	if sit := FindSolvable(s, p); sit != nil {
		return CardByID(sit.CardID).Solution.APCost
	}
	return 1
}
func (interactHandler) Execute(s *GameState, p *Player, _ Action, simulation bool, _ *RNG) error {
	sit := FindSolvable(s, p)
	if sit == nil {
		return NewInvalidAction("nothing to interact with here")
	}
	if simulation {
		return nil
	}
	c := CardByID(sit.CardID)
	if c.Solution.ItemCost != "" {
		if !p.RemoveItem(c.Solution.ItemCost) {
			return ErrInvalidItem
		}
	}
	BehaviorFor(sit.CardID).OnSolved(s, p, sit)
	for i, cur := range s.ActiveSituations {
		if cur == sit {
			s.ActiveSituations = append(s.ActiveSituations[:i], s.ActiveSituations[i+1:]...)
			break
		}
	}
	s.Discard = append(s.Discard, sit.CardID)
	return nil
}
