package hullbreach

import "sort"

// Layout selects one of the small set of fixed topologies the map generator
// can produce (spec §2 "Map generator & pathfinding").
type Layout string

const (
	LayoutStar  Layout = "Star"
	LayoutTorus Layout = "Torus"
)

// ShipMap is the immutable topology produced at generation time: adjacency
// only. Mutable per-room gameplay state (hazards, items, system health)
// lives alongside it in GameState.Rooms, keyed by the same RoomID.
type ShipMap struct {
	Layout    Layout
	RoomOrder []RoomID // sorted; canonical iteration order
	Adjacency map[RoomID][]RoomID

	// dist is a precomputed all-pairs BFS shortest-path matrix, flattened
	// row-major over RoomOrder, following internal/bot/eval.go's
	// distMatrix. -1 means unreachable (never happens on a connected map).
	dist  []int
	index map[RoomID]int
}

// GenerateMap builds a fixed-topology map for the given layout and
// precomputes its all-pairs distance matrix.
func GenerateMap(layout Layout) *ShipMap {
	var adj map[RoomID][]RoomID
	switch layout {
	case LayoutTorus:
		adj = torusAdjacency()
	default:
		layout = LayoutStar
		adj = starAdjacency()
	}

	ids := make([]RoomID, 0, len(adj))
	for id := range adj {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	m := &ShipMap{Layout: layout, RoomOrder: ids, Adjacency: adj}
	m.buildDistances()
	return m
}

func (m *ShipMap) buildDistances() {
	n := len(m.RoomOrder)
	m.index = make(map[RoomID]int, n)
	for i, id := range m.RoomOrder {
		m.index[id] = i
	}
	m.dist = make([]int, n*n)
	for i := range m.dist {
		m.dist[i] = -1
	}
	for src := 0; src < n; src++ {
		m.dist[src*n+src] = 0
		queue := []int{src}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			curDist := m.dist[src*n+cur]
			for _, nb := range m.Adjacency[m.RoomOrder[cur]] {
				ni := m.index[nb]
				if m.dist[src*n+ni] == -1 {
					m.dist[src*n+ni] = curDist + 1
					queue = append(queue, ni)
				}
			}
		}
	}
}

// Distance returns the precomputed BFS shortest-path length, or -1 if
// either room is unknown (never true for a fully-connected generated map).
func (m *ShipMap) Distance(from, to RoomID) int {
	fi, ok1 := m.index[from]
	ti, ok2 := m.index[to]
	if !ok1 || !ok2 {
		return -1
	}
	n := len(m.RoomOrder)
	return m.dist[fi*n+ti]
}

// AreAdjacent reports whether b is a direct neighbor of a.
func (m *ShipMap) AreAdjacent(a, b RoomID) bool {
	for _, nb := range m.Adjacency[a] {
		if nb == b {
			return true
		}
	}
	return false
}

// ShortestPath returns the BFS shortest path from `from` to `to`, inclusive
// of both endpoints. Ties are broken by always preferring the
// lexicographically smallest neighbor, which keeps expansion deterministic
// (spec §4.1 "Ordering": iteration order must be by sorted identifier).
func (m *ShipMap) ShortestPath(from, to RoomID) []RoomID {
	if from == to {
		return []RoomID{from}
	}
	prev := map[RoomID]RoomID{}
	visited := map[RoomID]bool{from: true}
	queue := []RoomID{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		nbs := append([]RoomID(nil), m.Adjacency[cur]...)
		sort.Slice(nbs, func(i, j int) bool { return nbs[i] < nbs[j] })
		for _, nb := range nbs {
			if visited[nb] {
				continue
			}
			visited[nb] = true
			prev[nb] = cur
			if nb == to {
				queue = nil
				break
			}
			queue = append(queue, nb)
		}
	}
	if !visited[to] {
		return nil
	}
	path := []RoomID{to}
	for path[len(path)-1] != from {
		path = append(path, prev[path[len(path)-1]])
	}
	// reverse
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// NewRooms builds the mutable Room records for a freshly generated map,
// every system starting at full health and every room, the hub included
// (Hallway), mapped to its fixed System value.
func NewRooms(m *ShipMap) map[RoomID]*Room {
	systems := roomSystems(m.Layout)
	rooms := make(map[RoomID]*Room, len(m.RoomOrder))
	for _, id := range m.RoomOrder {
		nbs := append([]RoomID(nil), m.Adjacency[id]...)
		sort.Slice(nbs, func(i, j int) bool { return nbs[i] < nbs[j] })
		rooms[id] = &Room{
			ID:           id,
			Name:         string(id),
			System:       systems[id],
			Neighbors:    nbs,
			SystemHealth: SystemHealthMax,
		}
	}
	return rooms
}
