package layout

import (
	"context"
	"testing"

	"github.com/sitedeck/go-layout/pkg/activity"
)

func TestToggleVisibilityEmitsActivity(t *testing.T) {
	capture := &activity.CaptureHook{}
	service := NewService(Options{
		Registry:       newTestRegistry(),
		ActivityHooks:  activity.Hooks{capture},
		ActivityConfig: activity.Config{Enabled: true, Channel: "dashboard"},
	})
	viewer := ViewerContext{UserID: "user-1", Role: RoleMember}

	ctx := ContextWithActivity(context.Background(), ActivityContext{
		ActorID:  "actor-1",
		TenantID: "tenant-1",
	})
	if _, err := service.ToggleVisibility(ctx, viewer, "timeline"); err != nil {
		t.Fatalf("ToggleVisibility returned error: %v", err)
	}

	if len(capture.Events) != 1 {
		t.Fatalf("expected 1 activity event, got %d", len(capture.Events))
	}
	event := capture.Events[0]
	if event.Verb != "layout.toggle_visibility" || event.ObjectType != "widget" {
		t.Fatalf("unexpected event payload: %+v", event)
	}
	if event.ObjectID != "timeline" {
		t.Fatalf("expected widget object id, got %q", event.ObjectID)
	}
	if event.ActorID != "actor-1" || event.UserID != "user-1" || event.TenantID != "tenant-1" {
		t.Fatalf("unexpected actor context: %+v", event)
	}
	if event.Metadata["widget_id"] != "timeline" {
		t.Fatalf("expected widget_id metadata, got %+v", event.Metadata)
	}
}

func TestResetEmitsLayoutActivity(t *testing.T) {
	capture := &activity.CaptureHook{}
	service := NewService(Options{
		Registry:       newTestRegistry(),
		ActivityHooks:  activity.Hooks{capture},
		ActivityConfig: activity.Config{Enabled: true},
	})
	viewer := ViewerContext{UserID: "user-1", Role: RoleMember}

	if _, err := service.ResetLayout(context.Background(), viewer); err != nil {
		t.Fatalf("ResetLayout returned error: %v", err)
	}
	if len(capture.Events) != 1 {
		t.Fatalf("expected 1 activity event, got %d", len(capture.Events))
	}
	event := capture.Events[0]
	if event.Verb != "layout.reset" || event.ObjectType != "layout" {
		t.Fatalf("unexpected event payload: %+v", event)
	}
	// Actor falls back to the viewer when the context carries none.
	if event.ActorID != "user-1" {
		t.Fatalf("expected actor default, got %q", event.ActorID)
	}
}

func TestNoActivityWhenDisabled(t *testing.T) {
	capture := &activity.CaptureHook{}
	service := NewService(Options{
		Registry:      newTestRegistry(),
		ActivityHooks: activity.Hooks{capture},
	})
	viewer := ViewerContext{UserID: "user-1", Role: RoleMember}

	if _, err := service.ToggleVisibility(context.Background(), viewer, "timeline"); err != nil {
		t.Fatalf("ToggleVisibility returned error: %v", err)
	}
	if len(capture.Events) != 0 {
		t.Fatalf("expected no events when disabled, got %d", len(capture.Events))
	}
}
