package relay

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// sendBufSize bounds each peer's outbound queue (spec §5 "bounded
// capacity"); a peer that falls behind past this many queued messages loses
// its oldest queued message to a gap notice rather than blocking the
// broadcaster.
const sendBufSize = 256

// Peer is one subscriber's outbound queue, written to by BroadcastToRoom and
// drained by the transport-specific writer goroutine that owns the socket.
type Peer struct {
	ID   string
	send chan []byte
}

// NewPeer creates a peer with a freshly allocated bounded outbound queue.
func NewPeer(id string) *Peer {
	return &Peer{ID: id, send: make(chan []byte, sendBufSize)}
}

// Send returns the channel the peer's writer goroutine should range over.
func (p *Peer) Send() <-chan []byte { return p.send }

// room holds the subscriber set for one room id. No game state lives here;
// envelopes are opaque blobs the relay never interprets (spec §5).
type room struct {
	mu    sync.RWMutex
	peers map[*Peer]bool
}

// Hub is the concurrent room registry (spec §5 "rooms stored in a
// concurrent map keyed by room id; entries created on first join"). The
// zero value is not usable; construct with NewHub.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]*room
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{rooms: make(map[string]*room)}
}

// getOrCreateRoom implements the get-or-insert policy (spec §5).
func (h *Hub) getOrCreateRoom(roomID string) *room {
	h.mu.RLock()
	r, ok := h.rooms[roomID]
	h.mu.RUnlock()
	if ok {
		return r
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if r, ok := h.rooms[roomID]; ok {
		return r
	}
	r = &room{peers: make(map[*Peer]bool)}
	h.rooms[roomID] = r
	return r
}

// Join subscribes p to roomID, creating the room if absent, and returns a
// Welcome envelope for the caller to send back to p.
func (h *Hub) Join(roomID string, p *Peer) []byte {
	r := h.getOrCreateRoom(roomID)
	r.mu.Lock()
	r.peers[p] = true
	r.mu.Unlock()
	return mustMarshal(ServerMessage{Type: ServerWelcome, RoomID: roomID})
}

// Leave removes p from roomID and garbage-collects the room entry once its
// last subscriber departs (spec §5, implementer's choice exercised here).
func (h *Hub) Leave(roomID string, p *Peer) {
	h.mu.RLock()
	r, ok := h.rooms[roomID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	r.mu.Lock()
	delete(r.peers, p)
	empty := len(r.peers) == 0
	r.mu.Unlock()

	if empty {
		h.mu.Lock()
		if cur, ok := h.rooms[roomID]; ok && cur == r {
			cur.mu.RLock()
			stillEmpty := len(cur.peers) == 0
			cur.mu.RUnlock()
			if stillEmpty {
				delete(h.rooms, roomID)
			}
		}
		h.mu.Unlock()
	}
}

// Broadcast relays msg to every subscriber of roomID (including the
// sender, per spec §6 "echoed to all room peers including sender"). Send is
// non-blocking: when a peer's queue is full, msg is dropped for that peer
// (which stays subscribed) and logged, and the oldest queued message is
// discarded to make room for a gap notification so the peer knows to
// request a SyncRequest.
func (h *Hub) Broadcast(roomID string, msg ServerMessage) {
	h.mu.RLock()
	r, ok := h.rooms[roomID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	data := mustMarshal(msg)
	gap := mustMarshal(ServerMessage{Type: ServerError, RoomID: roomID, Msg: "gap: messages were dropped, request a SyncRequest"})

	r.mu.RLock()
	defer r.mu.RUnlock()
	for p := range r.peers {
		select {
		case p.send <- data:
		default:
			log.Warn().Str("roomId", roomID).Str("peerId", p.ID).Msg("relay: dropping message, peer queue full")
			select {
			case <-p.send:
			default:
			}
			select {
			case p.send <- gap:
			default:
			}
		}
	}
}

// RoomIDs lists every room with at least one subscriber, sorted by the
// caller if order matters (spec §6 "GET /api/rooms").
func (h *Hub) RoomIDs() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	ids := make([]string, 0, len(h.rooms))
	for id := range h.rooms {
		ids = append(ids, id)
	}
	return ids
}

// RoomSubscriberCount reports how many peers are subscribed to roomID.
func (h *Hub) RoomSubscriberCount(roomID string) int {
	h.mu.RLock()
	r, ok := h.rooms[roomID]
	h.mu.RUnlock()
	if !ok {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.peers)
}
