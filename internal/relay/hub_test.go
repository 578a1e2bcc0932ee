package relay

import (
	"encoding/json"
	"testing"
)

func TestJoinCreatesRoomAndReturnsWelcome(t *testing.T) {
	h := NewHub()
	p := NewPeer("p1")

	welcome := h.Join("room1", p)
	var msg ServerMessage
	if err := json.Unmarshal(welcome, &msg); err != nil {
		t.Fatal(err)
	}
	if msg.Type != ServerWelcome || msg.RoomID != "room1" {
		t.Fatalf("unexpected welcome: %+v", msg)
	}
	if h.RoomSubscriberCount("room1") != 1 {
		t.Fatalf("expected 1 subscriber, got %d", h.RoomSubscriberCount("room1"))
	}
}

func TestBroadcastReachesAllSubscribersIncludingSender(t *testing.T) {
	h := NewHub()
	a := NewPeer("a")
	b := NewPeer("b")
	h.Join("room1", a)
	h.Join("room1", b)

	h.Broadcast("room1", ServerMessage{Type: ServerEvent, RoomID: "room1", Data: json.RawMessage(`{"x":1}`)})

	for _, p := range []*Peer{a, b} {
		select {
		case raw := <-p.send:
			var msg ServerMessage
			if err := json.Unmarshal(raw, &msg); err != nil {
				t.Fatal(err)
			}
			if msg.Type != ServerEvent {
				t.Fatalf("expected Event, got %s", msg.Type)
			}
		default:
			t.Fatalf("peer %s did not receive the broadcast", p.ID)
		}
	}
}

func TestLeaveGarbageCollectsEmptyRoom(t *testing.T) {
	h := NewHub()
	p := NewPeer("p1")
	h.Join("room1", p)
	h.Leave("room1", p)

	ids := h.RoomIDs()
	if len(ids) != 0 {
		t.Fatalf("expected room to be collected, still present: %v", ids)
	}
}

func TestBroadcastToUnknownRoomIsNoop(t *testing.T) {
	h := NewHub()
	h.Broadcast("ghost", ServerMessage{Type: ServerEvent})
}

func TestFullQueuePeerIsDroppedNotBlocked(t *testing.T) {
	h := NewHub()
	p := NewPeer("slow")
	h.Join("room1", p)

	for i := 0; i < sendBufSize+5; i++ {
		h.Broadcast("room1", ServerMessage{Type: ServerEvent, RoomID: "room1"})
	}
	// The call above must not deadlock even though p never drains its queue.
}
