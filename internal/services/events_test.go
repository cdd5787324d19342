package services

import (
	"testing"
	"time"
)

func TestEventHub_SubscribeAndPublish(t *testing.T) {
	hub := NewEventHub()

	ch := hub.Subscribe("client-1")
	if hub.ClientCount() != 1 {
		t.Errorf("ClientCount() = %d, expected 1", hub.ClientCount())
	}

	event := AuditEventMessage{
		ID:        1,
		Action:    "forms.create",
		ActorName: "jmorris",
		Message:   "jmorris POST /api/forms ok",
		CreatedAt: time.Now(),
	}
	hub.Publish(event)

	select {
	case got := <-ch:
		if got.Action != "forms.create" {
			t.Errorf("Action = %q, expected %q", got.Action, "forms.create")
		}
		if got.ActorName != "jmorris" {
			t.Errorf("ActorName = %q, expected %q", got.ActorName, "jmorris")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestEventHub_BroadcastToAllClients(t *testing.T) {
	hub := NewEventHub()

	ch1 := hub.Subscribe("client-1")
	ch2 := hub.Subscribe("client-2")

	hub.Publish(AuditEventMessage{Action: "categories.create"})

	for i, ch := range []<-chan AuditEventMessage{ch1, ch2} {
		select {
		case got := <-ch:
			if got.Action != "categories.create" {
				t.Errorf("client %d Action = %q, expected %q", i+1, got.Action, "categories.create")
			}
		case <-time.After(time.Second):
			t.Fatalf("client %d timed out waiting for event", i+1)
		}
	}
}

func TestEventHub_Unsubscribe(t *testing.T) {
	hub := NewEventHub()

	ch := hub.Subscribe("client-1")
	hub.Unsubscribe("client-1")

	if hub.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d, expected 0", hub.ClientCount())
	}

	// Channel is closed after unsubscribe
	if _, ok := <-ch; ok {
		t.Error("channel should be closed after unsubscribe")
	}
}

func TestEventHub_UnsubscribeUnknownClient(t *testing.T) {
	hub := NewEventHub()
	// Must not panic
	hub.Unsubscribe("never-subscribed")
}

func TestEventHub_SlowSubscriberDoesNotBlock(t *testing.T) {
	hub := NewEventHub()
	hub.Subscribe("slow-client")

	done := make(chan struct{})
	go func() {
		// Overflow the 100-slot buffer; Publish must drop, not block
		for i := 0; i < 150; i++ {
			hub.Publish(AuditEventMessage{ID: uint(i), Action: "forms.update"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a slow subscriber")
	}
}

func TestGetEventHub_Singleton(t *testing.T) {
	hub1 := GetEventHub()
	hub2 := GetEventHub()

	if hub1 != hub2 {
		t.Error("GetEventHub() should return the same instance")
	}
}
