package layout

import (
	"context"
	"testing"
)

func TestBroadcastHookSubscribe(t *testing.T) {
	hook := NewBroadcastHook()
	ch, cancel := hook.Subscribe()
	defer cancel()
	event := LayoutEvent{UserID: "u1", Reason: "customize"}
	if err := hook.LayoutChanged(context.Background(), event); err != nil {
		t.Fatalf("LayoutChanged returned error: %v", err)
	}
	select {
	case e := <-ch:
		if e.UserID != event.UserID || e.Reason != event.Reason {
			t.Fatalf("expected event %v, got %v", event, e)
		}
	default:
		t.Fatalf("expected event to be delivered")
	}
}

func TestBroadcastHookCancelStopsDelivery(t *testing.T) {
	hook := NewBroadcastHook()
	ch, cancel := hook.Subscribe()
	cancel()
	if err := hook.LayoutChanged(context.Background(), LayoutEvent{UserID: "u1"}); err != nil {
		t.Fatalf("LayoutChanged returned error: %v", err)
	}
	if _, ok := <-ch; ok {
		t.Fatalf("expected closed channel after cancel")
	}
}

func TestBroadcastHookSkipsSlowSubscribers(t *testing.T) {
	hook := NewBroadcastHook()
	ch, cancel := hook.Subscribe()
	defer cancel()
	for i := 0; i < 20; i++ {
		if err := hook.LayoutChanged(context.Background(), LayoutEvent{UserID: "u1"}); err != nil {
			t.Fatalf("LayoutChanged returned error: %v", err)
		}
	}
	// The buffer holds 8; overflow is dropped rather than blocking.
	received := 0
	for {
		select {
		case <-ch:
			received++
			continue
		default:
		}
		break
	}
	if received != 8 {
		t.Fatalf("expected 8 buffered events, got %d", received)
	}
}
