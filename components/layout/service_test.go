package layout

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestRegistry() *Registry {
	reg := NewEmptyRegistry()
	for _, desc := range testDescriptors() {
		_ = reg.RegisterDescriptor(desc)
	}
	_ = reg.RegisterDescriptor(WidgetDescriptor{
		ID:      "budget",
		Title:   "Budget",
		MinRole: RoleProjectManager,
	})
	return reg
}

func TestConfigureLayoutRequiresUserID(t *testing.T) {
	service := NewService(Options{Registry: newTestRegistry()})
	if _, err := service.ConfigureLayout(context.Background(), ViewerContext{}); !errors.Is(err, errMissingUserID) {
		t.Fatalf("expected missing user id error, got %v", err)
	}
}

func TestConfigureLayoutFiltersByRole(t *testing.T) {
	service := NewService(Options{Registry: newTestRegistry()})
	member, err := service.ConfigureLayout(context.Background(), ViewerContext{UserID: "u1", Role: RoleMember})
	if err != nil {
		t.Fatalf("ConfigureLayout returned error: %v", err)
	}
	if len(member) != 3 {
		t.Fatalf("expected member to see 3 widgets, got %#v", member)
	}
	manager, err := service.ConfigureLayout(context.Background(), ViewerContext{UserID: "u1", Role: RoleProjectManager})
	if err != nil {
		t.Fatalf("ConfigureLayout returned error: %v", err)
	}
	if len(manager) != 4 {
		t.Fatalf("expected manager to see budget widget too, got %#v", manager)
	}
}

func TestConfigureLayoutDegradesOnLoadError(t *testing.T) {
	telemetry := &recordingTelemetry{}
	service := NewService(Options{
		Registry:  newTestRegistry(),
		Store:     failingStore{err: errors.New("db down")},
		Telemetry: telemetry,
	})
	working, err := service.ConfigureLayout(context.Background(), ViewerContext{UserID: "u1", Role: RoleMember})
	if err != nil {
		t.Fatalf("expected degraded defaults, got error %v", err)
	}
	if len(working) != 3 {
		t.Fatalf("expected default layout, got %#v", working)
	}
	if telemetry.count("layout.load.error") != 1 {
		t.Fatalf("expected load error recorded, got %v", telemetry.events)
	}
}

func TestToggleVisibilityPersistsAndNotifies(t *testing.T) {
	store := NewInMemoryPreferenceStore()
	hook := &collectingHook{}
	service := NewService(Options{Registry: newTestRegistry(), Store: store, RefreshHook: hook})
	viewer := ViewerContext{UserID: "u1", Role: RoleMember}

	working, err := service.ToggleVisibility(context.Background(), viewer, "timeline")
	if err != nil {
		t.Fatalf("ToggleVisibility returned error: %v", err)
	}
	if working[1].ID != "timeline" || working[1].Visible {
		t.Fatalf("expected timeline hidden, got %#v", working[1])
	}
	stored, err := store.LoadLayout(context.Background(), viewer)
	if err != nil || stored == nil {
		t.Fatalf("expected persisted layout, got %v %v", stored, err)
	}
	if hook.events != 1 {
		t.Fatalf("expected refresh hook notified once, got %d", hook.events)
	}
}

func TestMutationsSurviveRoundTrips(t *testing.T) {
	store := NewInMemoryPreferenceStore()
	service := NewService(Options{Registry: newTestRegistry(), Store: store})
	viewer := ViewerContext{UserID: "u1", Role: RoleMember}

	if _, err := service.CycleSpan(context.Background(), viewer, "checklists"); err != nil {
		t.Fatalf("CycleSpan returned error: %v", err)
	}
	if _, err := service.ToggleCollapsed(context.Background(), viewer, "overview"); err != nil {
		t.Fatalf("ToggleCollapsed returned error: %v", err)
	}
	if _, err := service.Reorder(context.Background(), viewer, 0, 2); err != nil {
		t.Fatalf("Reorder returned error: %v", err)
	}

	working, err := service.ConfigureLayout(context.Background(), viewer)
	if err != nil {
		t.Fatalf("ConfigureLayout returned error: %v", err)
	}
	byID := map[string]WidgetPreference{}
	for _, pref := range working {
		byID[pref.ID] = pref
	}
	if byID["checklists"].Span != 2 {
		t.Fatalf("expected cycled span persisted, got %#v", byID["checklists"])
	}
	if !byID["overview"].Collapsed {
		t.Fatalf("expected collapse persisted, got %#v", byID["overview"])
	}
	if working[0].ID != "checklists" || working[2].ID != "overview" {
		t.Fatalf("expected swapped order persisted, got %v", idsInOrder(working))
	}
}

func TestMutationUnknownWidgetDoesNotPersist(t *testing.T) {
	store := NewInMemoryPreferenceStore()
	service := NewService(Options{Registry: newTestRegistry(), Store: store})
	viewer := ViewerContext{UserID: "u1", Role: RoleMember}

	if _, err := service.ToggleVisibility(context.Background(), viewer, "unknown"); err != nil {
		t.Fatalf("ToggleVisibility returned error: %v", err)
	}
	stored, err := store.LoadLayout(context.Background(), viewer)
	if err != nil {
		t.Fatalf("LoadLayout returned error: %v", err)
	}
	if stored != nil {
		t.Fatalf("expected no persist for unmatched widget, got %#v", stored)
	}
}

func TestResetLayoutClearsStore(t *testing.T) {
	store := NewInMemoryPreferenceStore()
	service := NewService(Options{Registry: newTestRegistry(), Store: store})
	viewer := ViewerContext{UserID: "u1", Role: RoleMember}

	if _, err := service.ToggleVisibility(context.Background(), viewer, "timeline"); err != nil {
		t.Fatalf("ToggleVisibility returned error: %v", err)
	}
	working, err := service.ResetLayout(context.Background(), viewer)
	if err != nil {
		t.Fatalf("ResetLayout returned error: %v", err)
	}
	if len(working) != 3 || !working[1].Visible {
		t.Fatalf("expected defaults after reset, got %#v", working)
	}
	stored, err := store.LoadLayout(context.Background(), viewer)
	if err != nil {
		t.Fatalf("LoadLayout returned error: %v", err)
	}
	if stored != nil {
		t.Fatalf("expected stored layout cleared, got %#v", stored)
	}
}

func TestMutationPreservesRetainedEntries(t *testing.T) {
	store := NewInMemoryPreferenceStore()
	viewer := ViewerContext{UserID: "u1", Role: RoleMember}
	_ = store.SaveLayout(context.Background(), viewer, PersistedLayout{
		Widgets: []WidgetPreference{
			{ID: "overview", Visible: true, Order: 0, Span: 2},
			{ID: "timeline", Visible: true, Order: 1, Span: 3},
			{ID: "checklists", Visible: true, Order: 2, Span: 1},
			{ID: "budget", Visible: true, Collapsed: true, Order: 3, Span: 3},
		},
		Version: 7,
	})
	service := NewService(Options{Registry: newTestRegistry(), Store: store})

	if _, err := service.ToggleCollapsed(context.Background(), viewer, "overview"); err != nil {
		t.Fatalf("ToggleCollapsed returned error: %v", err)
	}
	stored, err := store.LoadLayout(context.Background(), viewer)
	if err != nil || stored == nil {
		t.Fatalf("LoadLayout returned %v %v", stored, err)
	}
	if stored.Version != 7 {
		t.Fatalf("expected version preserved, got %d", stored.Version)
	}
	found := false
	for _, pref := range stored.Widgets {
		if pref.ID == "budget" && pref.Collapsed && pref.Span == 3 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected role-restricted entry retained in storage, got %#v", stored.Widgets)
	}
}

func TestOpenEditorPersistsThroughQueue(t *testing.T) {
	store := NewInMemoryPreferenceStore()
	hook := &collectingHook{}
	service := NewService(Options{Registry: newTestRegistry(), Store: store, RefreshHook: hook})
	viewer := ViewerContext{UserID: "u1", Role: RoleMember}

	editor, err := service.OpenEditor(context.Background(), viewer)
	if err != nil {
		t.Fatalf("OpenEditor returned error: %v", err)
	}
	defer editor.queue.Close()

	editor.ToggleVisibility("timeline")
	deadline := time.Now().Add(time.Second)
	for editor.Saving() {
		if time.Now().After(deadline) {
			t.Fatalf("expected queued persist to drain")
		}
		time.Sleep(time.Millisecond)
	}
	stored, err := store.LoadLayout(context.Background(), viewer)
	if err != nil || stored == nil {
		t.Fatalf("expected layout persisted via queue, got %v %v", stored, err)
	}
	if hook.events == 0 {
		t.Fatalf("expected refresh hook notified from queue save")
	}
}

func TestGridUsesProviders(t *testing.T) {
	reg := newTestRegistry()
	_ = reg.RegisterProvider("overview", ProviderFunc(func(context.Context, WidgetContext) (WidgetData, error) {
		return WidgetData{"open_rfis": 14}, nil
	}))
	service := NewService(Options{Registry: reg})
	grid, err := service.Grid(context.Background(), ViewerContext{UserID: "u1", Role: RoleMember})
	if err != nil {
		t.Fatalf("Grid returned error: %v", err)
	}
	if len(grid.Widgets) != 3 {
		t.Fatalf("expected 3 widgets, got %#v", grid.Widgets)
	}
	if grid.Widgets[0].Data["open_rfis"] != 14 {
		t.Fatalf("expected provider data attached, got %#v", grid.Widgets[0])
	}
}

func TestGridSkipsProviderForCollapsedWidget(t *testing.T) {
	reg := newTestRegistry()
	calls := 0
	_ = reg.RegisterProvider("overview", ProviderFunc(func(context.Context, WidgetContext) (WidgetData, error) {
		calls++
		return WidgetData{}, nil
	}))
	store := NewInMemoryPreferenceStore()
	service := NewService(Options{Registry: reg, Store: store})
	viewer := ViewerContext{UserID: "u1", Role: RoleMember}
	if _, err := service.ToggleCollapsed(context.Background(), viewer, "overview"); err != nil {
		t.Fatalf("ToggleCollapsed returned error: %v", err)
	}
	if _, err := service.Grid(context.Background(), viewer); err != nil {
		t.Fatalf("Grid returned error: %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected no provider fetch for collapsed widget, got %d", calls)
	}
}

func TestGridContinuesOnProviderError(t *testing.T) {
	reg := newTestRegistry()
	_ = reg.RegisterProvider("overview", ProviderFunc(func(context.Context, WidgetContext) (WidgetData, error) {
		return nil, errors.New("upstream timeout")
	}))
	telemetry := &recordingTelemetry{}
	service := NewService(Options{Registry: reg, Telemetry: telemetry})
	grid, err := service.Grid(context.Background(), ViewerContext{UserID: "u1", Role: RoleMember})
	if err != nil {
		t.Fatalf("Grid returned error: %v", err)
	}
	if len(grid.Widgets) != 3 {
		t.Fatalf("expected widgets rendered without data, got %#v", grid.Widgets)
	}
	if telemetry.count("layout.provider.error") != 1 {
		t.Fatalf("expected provider error recorded, got %v", telemetry.events)
	}
}

type failingStore struct {
	err error
}

func (f failingStore) LoadLayout(context.Context, ViewerContext) (*PersistedLayout, error) {
	return nil, f.err
}

func (f failingStore) SaveLayout(context.Context, ViewerContext, PersistedLayout) error {
	return f.err
}

func (f failingStore) ResetLayout(context.Context, ViewerContext) error {
	return f.err
}

type collectingHook struct {
	events int
}

func (h *collectingHook) LayoutChanged(context.Context, LayoutEvent) error {
	h.events++
	return nil
}

var _ RefreshHook = (*collectingHook)(nil)
