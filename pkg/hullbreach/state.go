package hullbreach

import "sort"

// MaxHull is the hull-integrity ceiling (spec §3 invariant).
const MaxHull = 20

// ChatMessage is one ordered entry in GameState.ChatLog.
type ChatMessage struct {
	Sender PlayerID `json:"sender"`
	Text   string   `json:"text"`
	Seq    uint64   `json:"seq"`
}

// GameState is the single root aggregate (spec §3). Every mutator returns a
// new value; callers never observe a partially-mutated state on error,
// mirroring pkg/diplomacy/state.go's GameState/Clone discipline.
type GameState struct {
	SequenceID uint64 `json:"sequenceId"`
	RNGSeed    uint64 `json:"rngSeed"`

	Phase      Phase  `json:"phase"`
	TurnCount  uint32 `json:"turnCount"`
	BossLevel  uint32 `json:"bossLevel"`
	IsResting  bool   `json:"isResting"`

	HullIntegrity int `json:"hullIntegrity"`

	Layout Layout             `json:"layout"`
	Map    *ShipMap           `json:"-"`
	Rooms  map[RoomID]*Room   `json:"rooms"`
	Players map[PlayerID]*Player `json:"players"`
	Enemy  *Enemy             `json:"enemy"`

	ChatLog []ChatMessage `json:"chatLog"`

	ShieldsActive bool `json:"shieldsActive"`
	EvasionActive bool `json:"evasionActive"`

	ProposalQueue    []ProposedAction   `json:"proposalQueue"`
	ActiveSituations []*ActiveSituation `json:"activeSituations"`
	LatestEvent      CardID             `json:"latestEvent"`

	Deck    []CardID `json:"deck"`
	Discard []CardID `json:"discard"`
}

// NewGame creates a fresh Lobby-phase state, with no players, for the given
// seed and map layout. Players join via the Join action afterward and then
// vote ready.
func NewGame(seed uint64, layout Layout) *GameState {
	m := GenerateMap(layout)
	rng := NewRNG(seed)
	deck := AllCardIDs()
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })

	return &GameState{
		RNGSeed:       rng.Seed(),
		Phase:         PhaseLobby,
		HullIntegrity: MaxHull,
		Layout:        layout,
		Map:           m,
		Rooms:         NewRooms(m),
		Players:       map[PlayerID]*Player{},
		Enemy:         NewEnemy(0),
		Deck:          deck,
	}
}

// SortedPlayerIDs returns player ids sorted ascending, the canonical
// iteration order for every observable computation (spec §4.1 "Ordering").
func (s *GameState) SortedPlayerIDs() []PlayerID {
	return sortedPlayerIDs(s)
}

// SortedRoomIDs returns room ids in canonical sorted order.
func (s *GameState) SortedRoomIDs() []RoomID {
	ids := make([]RoomID, 0, len(s.Rooms))
	for id := range s.Rooms {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Clone returns a deep copy so the reducer can mutate freely and discard the
// copy on error without the caller ever observing a half-applied state.
func (s *GameState) Clone() *GameState {
	out := &GameState{
		SequenceID:    s.SequenceID,
		RNGSeed:       s.RNGSeed,
		Phase:         s.Phase,
		TurnCount:     s.TurnCount,
		BossLevel:     s.BossLevel,
		IsResting:     s.IsResting,
		HullIntegrity: s.HullIntegrity,
		Layout:        s.Layout,
		Map:           s.Map, // immutable topology, safe to share
		LatestEvent:   s.LatestEvent,
		ShieldsActive: s.ShieldsActive,
		EvasionActive: s.EvasionActive,
	}
	out.Enemy = s.Enemy.Clone()

	out.Rooms = make(map[RoomID]*Room, len(s.Rooms))
	for id, r := range s.Rooms {
		out.Rooms[id] = r.Clone()
	}

	out.Players = make(map[PlayerID]*Player, len(s.Players))
	for id, p := range s.Players {
		out.Players[id] = p.Clone()
	}

	if len(s.ChatLog) > 0 {
		out.ChatLog = append([]ChatMessage(nil), s.ChatLog...)
	}
	if len(s.ProposalQueue) > 0 {
		out.ProposalQueue = append([]ProposedAction(nil), s.ProposalQueue...)
	}
	if len(s.ActiveSituations) > 0 {
		out.ActiveSituations = make([]*ActiveSituation, len(s.ActiveSituations))
		for i, sit := range s.ActiveSituations {
			out.ActiveSituations[i] = sit.Clone()
		}
	}
	if len(s.Deck) > 0 {
		out.Deck = append([]CardID(nil), s.Deck...)
	}
	if len(s.Discard) > 0 {
		out.Discard = append([]CardID(nil), s.Discard...)
	}
	return out
}

// PlayerByID is a convenience lookup used throughout the handlers.
func (s *GameState) PlayerByID(id PlayerID) (*Player, error) {
	p, ok := s.Players[id]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	return p, nil
}

// RoomByID is a convenience lookup used throughout the handlers.
func (s *GameState) RoomByID(id RoomID) (*Room, error) {
	r, ok := s.Rooms[id]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return r, nil
}

// AllReady reports whether every player has voted ready.
func (s *GameState) AllReady() bool {
	if len(s.Players) == 0 {
		return false
	}
	for _, p := range s.Players {
		if !p.IsReady {
			return false
		}
	}
	return true
}

// AnyAPRemaining reports whether any player still has AP to spend.
func (s *GameState) AnyAPRemaining() bool {
	for _, p := range s.Players {
		if p.AP > 0 && !p.HasStatus(StatusFainted) {
			return true
		}
	}
	return false
}

// AllFainted reports whether every player is fainted (a GameOver condition).
func (s *GameState) AllFainted() bool {
	if len(s.Players) == 0 {
		return false
	}
	for _, p := range s.Players {
		if !p.HasStatus(StatusFainted) {
			return false
		}
	}
	return true
}
