package relay

import (
	"net/http"
	"sync"
	"time"

	"encoding/json"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second // must be less than pongWait
	maxMsgSize = 1 << 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // no auth/origin policy at the relay: envelopes are opaque (spec §5)
	},
}

// Handler upgrades HTTP connections to the relay's WebSocket protocol and
// owns the reader/writer goroutine pair per peer socket (spec §5 "many
// parallel worker tasks, one pair per peer socket").
type Handler struct {
	hub *Hub
}

// NewHandler wires a Handler to hub.
func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

// ServeWS handles the relay's single WebSocket endpoint.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("relay: websocket upgrade failed")
		return
	}

	peerID := r.URL.Query().Get("playerId")
	p := NewPeer(peerID)
	sess := &session{peer: p, hub: h.hub, conn: conn, rooms: map[string]bool{}}

	go sess.writePump()
	go sess.readPump()
}

// session tracks the room subscriptions of one socket so a disconnect can
// unwind every Join it accumulated.
type session struct {
	peer  *Peer
	hub   *Hub
	conn  *websocket.Conn
	mu    sync.Mutex
	rooms map[string]bool
}

func (s *session) readPump() {
	defer func() {
		s.mu.Lock()
		for roomID := range s.rooms {
			s.hub.Leave(roomID, s.peer)
		}
		s.mu.Unlock()
		close(s.peer.send)
		s.conn.Close()
		log.Info().Str("peerId", s.peer.ID).Msg("relay: peer disconnected")
	}()

	s.conn.SetReadLimit(maxMsgSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("peerId", s.peer.ID).Msg("relay: unexpected close")
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			log.Debug().Err(err).Str("peerId", s.peer.ID).Msg("relay: dropping malformed envelope")
			continue
		}
		s.handle(msg)
	}
}

// handle dispatches one parsed ClientMessage (spec §6). Malformed or
// unrecognized envelopes are dropped and logged, never rejected with an
// Error reply — the relay has no notion of "invalid" beyond parse failure.
func (s *session) handle(msg ClientMessage) {
	switch msg.Type {
	case ClientJoin:
		if msg.RoomID == "" {
			return
		}
		welcome := s.hub.Join(msg.RoomID, s.peer)
		s.mu.Lock()
		s.rooms[msg.RoomID] = true
		s.mu.Unlock()
		select {
		case s.peer.send <- welcome:
		default:
		}

	case ClientEvent:
		if msg.RoomID == "" {
			return
		}
		s.hub.Broadcast(msg.RoomID, ServerMessage{Type: ServerEvent, RoomID: msg.RoomID, SequenceID: msg.SequenceID, Data: msg.Data})

	case ClientSyncRequest:
		if msg.RoomID == "" {
			return
		}
		s.hub.Broadcast(msg.RoomID, ServerMessage{Type: ServerSyncRequest, RoomID: msg.RoomID, RequestorID: msg.RequestorID})

	default:
		log.Debug().Str("type", msg.Type).Str("peerId", s.peer.ID).Msg("relay: ignoring unknown envelope type")
	}
}

func (s *session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case message, ok := <-s.peer.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
