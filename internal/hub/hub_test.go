package hub

import (
	"encoding/json"
	"testing"
)

func TestNotifyReachesAllStreamsOfUser(t *testing.T) {
	h := NewHub()
	first := make(Client, 1)
	second := make(Client, 1)
	h.Subscribe(1, first)
	h.Subscribe(1, second)

	h.Notify(1, Event{Type: EventFriendRequest, Payload: map[string]uint{"from_user_id": 2}})

	for _, client := range []Client{first, second} {
		select {
		case raw := <-client:
			var event Event
			if err := json.Unmarshal(raw, &event); err != nil {
				t.Fatalf("unmarshal event: %v", err)
			}
			if event.Type != EventFriendRequest {
				t.Errorf("event type = %q, want %q", event.Type, EventFriendRequest)
			}
		default:
			t.Fatal("client did not receive the event")
		}
	}
}

func TestNotifyOtherUserGetsNothing(t *testing.T) {
	h := NewHub()
	client := make(Client, 1)
	h.Subscribe(1, client)

	h.Notify(2, Event{Type: EventPostLiked})

	select {
	case <-client:
		t.Fatal("event delivered to the wrong user")
	default:
	}
}

func TestNotifySkipsFullStream(t *testing.T) {
	h := NewHub()
	client := make(Client) // unbuffered and never drained
	h.Subscribe(1, client)

	done := make(chan struct{})
	go func() {
		h.Notify(1, Event{Type: EventPostCommented})
		close(done)
	}()

	select {
	case <-done:
	case <-client:
		t.Fatal("unexpected delivery on a blocked stream")
	}
}

func TestUnsubscribeClosesStream(t *testing.T) {
	h := NewHub()
	client := make(Client, 1)
	h.Subscribe(1, client)
	h.Unsubscribe(1, client)

	if _, open := <-client; open {
		t.Fatal("stream still open after unsubscribe")
	}

	// Unsubscribing again must not panic on the closed channel.
	h.Unsubscribe(1, client)
	h.Notify(1, Event{Type: EventPostLiked})
}
