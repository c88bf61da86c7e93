package hub

import (
	"encoding/json"
	"testing"
)

func TestBroadcastRoutesByTopic(t *testing.T) {
	h := NewHub()
	games := make(Client, 1)
	consoles := make(Client, 1)
	all := make(Client, 2)
	h.Subscribe("games", games)
	h.Subscribe("consoles", consoles)
	h.Subscribe(TopicAll, all)

	h.Broadcast(Event{Type: "game.created", Topic: "games", Payload: map[string]int{"id": 1}})

	select {
	case msg := <-games:
		var got Event
		if err := json.Unmarshal(msg, &got); err != nil {
			t.Fatalf("Invalid event JSON: %v", err)
		}
		if got.Type != "game.created" || got.Topic != "games" {
			t.Errorf("Unexpected event: %+v", got)
		}
	default:
		t.Fatal("Expected games subscriber to receive the event")
	}
	if len(all) != 1 {
		t.Errorf("Expected the all-topic subscriber to receive the event, got %d", len(all))
	}
	if len(consoles) != 0 {
		t.Error("Consoles subscriber should not receive game events")
	}
}

func TestBroadcastToAllDeliversOnce(t *testing.T) {
	h := NewHub()
	all := make(Client, 2)
	h.Subscribe(TopicAll, all)

	h.Broadcast(Event{Type: "catalog.reloaded", Topic: TopicAll})

	if len(all) != 1 {
		t.Errorf("Expected exactly one delivery, got %d", len(all))
	}
}

func TestBroadcastDoesNotBlockOnFullClient(t *testing.T) {
	h := NewHub()
	slow := make(Client)
	h.Subscribe("games", slow)

	h.Broadcast(Event{Type: "game.updated", Topic: "games"})
}

func TestUnsubscribeClosesClient(t *testing.T) {
	h := NewHub()
	c := make(Client, 1)
	h.Subscribe("reviews", c)
	if h.Subscribers("reviews") != 1 {
		t.Fatalf("Expected 1 subscriber, got %d", h.Subscribers("reviews"))
	}

	h.Unsubscribe("reviews", c)
	if _, ok := <-c; ok {
		t.Error("Expected client channel to be closed")
	}
	if h.Subscribers("reviews") != 0 {
		t.Errorf("Expected no subscribers, got %d", h.Subscribers("reviews"))
	}
	// A second unsubscribe must not close the channel twice.
	h.Unsubscribe("reviews", c)
}
