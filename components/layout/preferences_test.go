package layout

import (
	"context"
	"testing"
)

func TestPreferenceStoreLoadMissingReturnsNil(t *testing.T) {
	store := NewInMemoryPreferenceStore()
	layout, err := store.LoadLayout(context.Background(), ViewerContext{UserID: "u1"})
	if err != nil {
		t.Fatalf("LoadLayout returned error: %v", err)
	}
	if layout != nil {
		t.Fatalf("expected nil for unknown user, got %#v", layout)
	}
}

func TestPreferenceStoreSaveRequiresUserID(t *testing.T) {
	store := NewInMemoryPreferenceStore()
	if err := store.SaveLayout(context.Background(), ViewerContext{}, PersistedLayout{}); err == nil {
		t.Fatalf("expected error when user id missing")
	}
}

func TestPreferenceStoreRoundTripCopies(t *testing.T) {
	store := NewInMemoryPreferenceStore()
	viewer := ViewerContext{UserID: "u1"}
	in := PersistedLayout{
		Widgets: []WidgetPreference{{ID: "overview", Visible: true, Order: 0, Span: 2}},
		Version: 5,
	}
	if err := store.SaveLayout(context.Background(), viewer, in); err != nil {
		t.Fatalf("SaveLayout returned error: %v", err)
	}
	in.Widgets[0].Visible = false

	out, err := store.LoadLayout(context.Background(), viewer)
	if err != nil || out == nil {
		t.Fatalf("LoadLayout returned %v %v", out, err)
	}
	if !out.Widgets[0].Visible || out.Version != 5 {
		t.Fatalf("expected stored copy isolated from caller, got %#v", out)
	}
	out.Widgets[0].Span = 1

	again, _ := store.LoadLayout(context.Background(), viewer)
	if again.Widgets[0].Span != 2 {
		t.Fatalf("expected loaded copy isolated from store, got %#v", again)
	}
}

func TestPreferenceStoreClampsSpansOnSave(t *testing.T) {
	store := NewInMemoryPreferenceStore()
	viewer := ViewerContext{UserID: "u1"}
	_ = store.SaveLayout(context.Background(), viewer, PersistedLayout{
		Widgets: []WidgetPreference{{ID: "overview", Span: 12}},
	})
	out, _ := store.LoadLayout(context.Background(), viewer)
	if out.Widgets[0].Span != 3 {
		t.Fatalf("expected span clamped on save, got %#v", out.Widgets[0])
	}
}

func TestPreferenceStoreReset(t *testing.T) {
	store := NewInMemoryPreferenceStore()
	viewer := ViewerContext{UserID: "u1"}
	_ = store.SaveLayout(context.Background(), viewer, PersistedLayout{
		Widgets: []WidgetPreference{{ID: "overview", Visible: true}},
	})
	if err := store.ResetLayout(context.Background(), viewer); err != nil {
		t.Fatalf("ResetLayout returned error: %v", err)
	}
	out, err := store.LoadLayout(context.Background(), viewer)
	if err != nil {
		t.Fatalf("LoadLayout returned error: %v", err)
	}
	if out != nil {
		t.Fatalf("expected cleared layout, got %#v", out)
	}
}
