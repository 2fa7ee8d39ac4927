package layout

import (
	"context"
	"errors"
	"fmt"

	"github.com/sitedeck/go-layout/pkg/activity"
)

var (
	errMissingUserID = errors.New("layout: viewer context missing user id")
)

// Options configures the layout Service. Every collaborator is provided via
// interface so applications can swap implementations without importing
// go-layout internals.
type Options struct {
	Store       PreferenceStore
	Registry    DescriptorRegistry
	RefreshHook RefreshHook
	Telemetry   Telemetry

	// ActivityHooks receive audit events for layout mutations when enabled.
	ActivityHooks  activity.Hooks
	ActivityConfig activity.Config
}

// Service orchestrates per-user dashboard layouts: it loads persisted
// preferences, narrows the registry by role, reconciles, and applies
// customize mutations.
type Service struct {
	opts    Options
	emitter *activity.Emitter
}

// NewService builds a Service instance with safe defaults.
func NewService(opts Options) *Service {
	if opts.Store == nil {
		opts.Store = NewInMemoryPreferenceStore()
	}
	if opts.Registry == nil {
		opts.Registry = NewRegistry()
	}
	if opts.RefreshHook == nil {
		opts.RefreshHook = noopRefreshHook{}
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	return &Service{
		opts:    opts,
		emitter: activity.NewEmitter(opts.ActivityHooks, opts.ActivityConfig),
	}
}

// VisibleWidgets returns the registry narrowed to the viewer's role.
func (s *Service) VisibleWidgets(viewer ViewerContext) []WidgetDescriptor {
	return FilterByRole(s.opts.Registry.Descriptors(), viewer.Role)
}

// ConfigureLayout resolves the working layout for a viewer: persisted
// preferences merged with the role-filtered registry.
func (s *Service) ConfigureLayout(ctx context.Context, viewer ViewerContext) ([]WidgetPreference, error) {
	if viewer.UserID == "" {
		return nil, errMissingUserID
	}
	working := Reconcile(s.loadPersisted(ctx, viewer), s.VisibleWidgets(viewer))
	s.record(ctx, "layout.resolve", map[string]any{"user_id": viewer.UserID})
	return working, nil
}

// OpenEditor builds a session-owned editor whose mutations persist through a
// serialized per-session queue. Callers must Close() the editor's queue when
// the session ends.
func (s *Service) OpenEditor(ctx context.Context, viewer ViewerContext) (*Editor, error) {
	if viewer.UserID == "" {
		return nil, errMissingUserID
	}
	visible := s.VisibleWidgets(viewer)
	persisted := s.loadPersisted(ctx, viewer)
	queue := NewPersistQueue(func(ctx context.Context, l PersistedLayout) error {
		if err := s.opts.Store.SaveLayout(ctx, viewer, l); err != nil {
			return err
		}
		return s.opts.RefreshHook.LayoutChanged(ctx, LayoutEvent{
			UserID:  viewer.UserID,
			Reason:  "customize",
			Widgets: l.Widgets,
		})
	}, s.opts.Telemetry)
	return NewEditor(viewer, visible, persisted, queue), nil
}

// ToggleVisibility flips the widget's visible flag and persists the layout.
func (s *Service) ToggleVisibility(ctx context.Context, viewer ViewerContext, widgetID string) ([]WidgetPreference, error) {
	return s.mutate(ctx, viewer, "toggle_visibility", map[string]any{"widget_id": widgetID}, func(working []WidgetPreference) bool {
		return toggleVisibility(working, widgetID)
	})
}

// ToggleCollapsed flips the widget's collapsed flag and persists the layout.
func (s *Service) ToggleCollapsed(ctx context.Context, viewer ViewerContext, widgetID string) ([]WidgetPreference, error) {
	return s.mutate(ctx, viewer, "toggle_collapsed", map[string]any{"widget_id": widgetID}, func(working []WidgetPreference) bool {
		return toggleCollapsed(working, widgetID)
	})
}

// CycleSpan advances the widget's column span and persists the layout.
func (s *Service) CycleSpan(ctx context.Context, viewer ViewerContext, widgetID string) ([]WidgetPreference, error) {
	return s.mutate(ctx, viewer, "cycle_span", map[string]any{"widget_id": widgetID}, func(working []WidgetPreference) bool {
		return cycleSpan(working, widgetID)
	})
}

// Reorder swaps the order values of the visible entries at the given drag
// positions and persists the layout.
func (s *Service) Reorder(ctx context.Context, viewer ViewerContext, from, to int) ([]WidgetPreference, error) {
	return s.mutate(ctx, viewer, "reorder", map[string]any{"from": from, "to": to}, func(working []WidgetPreference) bool {
		return reorderVisible(working, from, to)
	})
}

// ResetLayout clears the stored layout so the next load rebuilds pure registry
// defaults, and returns that default working layout.
func (s *Service) ResetLayout(ctx context.Context, viewer ViewerContext) ([]WidgetPreference, error) {
	if viewer.UserID == "" {
		return nil, errMissingUserID
	}
	if err := s.opts.Store.ResetLayout(ctx, viewer); err != nil {
		s.record(ctx, "layout.reset.error", map[string]any{
			"user_id": viewer.UserID,
			"error":   err.Error(),
		})
	}
	working := defaultPreferences(s.VisibleWidgets(viewer))
	s.notify(ctx, viewer, "reset", working)
	s.record(ctx, "layout.reset", map[string]any{"user_id": viewer.UserID})
	s.emitActivity(ctx, viewer, "layout.reset", nil)
	return working, nil
}

// SaveLayout writes a client-supplied layout wholesale, last write wins.
func (s *Service) SaveLayout(ctx context.Context, viewer ViewerContext, l PersistedLayout) error {
	if viewer.UserID == "" {
		return errMissingUserID
	}
	for i := range l.Widgets {
		l.Widgets[i].Span = clampSpan(l.Widgets[i].Span)
	}
	if err := s.opts.Store.SaveLayout(ctx, viewer, l); err != nil {
		return fmt.Errorf("layout: save layout for %s: %w", viewer.UserID, err)
	}
	s.notify(ctx, viewer, "save", l.Widgets)
	s.record(ctx, "layout.save", map[string]any{
		"user_id": viewer.UserID,
		"count":   len(l.Widgets),
	})
	s.emitActivity(ctx, viewer, "layout.save", map[string]any{"count": len(l.Widgets)})
	return nil
}

// Grid resolves the full render model for a viewer, including provider data
// for expanded visible widgets.
func (s *Service) Grid(ctx context.Context, viewer ViewerContext) (GridModel, error) {
	working, err := s.ConfigureLayout(ctx, viewer)
	if err != nil {
		return GridModel{}, err
	}
	return s.GridFromLayout(ctx, viewer, working), nil
}

// GridFromLayout builds the render model for an already-resolved working
// layout, avoiding a second store round-trip.
func (s *Service) GridFromLayout(ctx context.Context, viewer ViewerContext, working []WidgetPreference) GridModel {
	visible := s.VisibleWidgets(viewer)
	return BuildGrid(working, visible, s.fetchWidgetData(ctx, viewer, working, visible))
}

func (s *Service) mutate(ctx context.Context, viewer ViewerContext, reason string, meta map[string]any, apply func([]WidgetPreference) bool) ([]WidgetPreference, error) {
	if viewer.UserID == "" {
		return nil, errMissingUserID
	}
	visible := s.VisibleWidgets(viewer)
	persisted := s.loadPersisted(ctx, viewer)
	working := Reconcile(persisted, visible)
	if !apply(working) {
		return working, nil
	}
	version := 0
	if persisted != nil {
		version = persisted.Version
	}
	merged := mergePersisted(working, Retained(persisted, visible), version)
	if err := s.opts.Store.SaveLayout(ctx, viewer, merged); err != nil {
		return working, fmt.Errorf("layout: persist %s for %s: %w", reason, viewer.UserID, err)
	}
	s.notify(ctx, viewer, reason, working)
	s.record(ctx, "layout."+reason, map[string]any{"user_id": viewer.UserID})
	s.emitActivity(ctx, viewer, "layout."+reason, meta)
	return working, nil
}

// loadPersisted degrades to registry defaults on store failure: nothing in
// this engine is fatal to the hosting page.
func (s *Service) loadPersisted(ctx context.Context, viewer ViewerContext) *PersistedLayout {
	persisted, err := s.opts.Store.LoadLayout(ctx, viewer)
	if err != nil {
		s.record(ctx, "layout.load.error", map[string]any{
			"user_id": viewer.UserID,
			"error":   err.Error(),
		})
		return nil
	}
	return persisted
}

func (s *Service) fetchWidgetData(ctx context.Context, viewer ViewerContext, working []WidgetPreference, visible []WidgetDescriptor) map[string]WidgetData {
	descs := make(map[string]WidgetDescriptor, len(visible))
	for _, desc := range visible {
		descs[desc.ID] = desc
	}
	data := make(map[string]WidgetData)
	for _, pref := range working {
		if !pref.Visible || pref.Collapsed {
			continue
		}
		provider, ok := s.opts.Registry.Provider(pref.ID)
		if !ok || provider == nil {
			continue
		}
		payload, err := provider.Fetch(ctx, WidgetContext{
			Descriptor: descs[pref.ID],
			Preference: pref,
			Viewer:     viewer,
		})
		if err != nil {
			s.record(ctx, "layout.provider.error", map[string]any{
				"widget_id": pref.ID,
				"error":     err.Error(),
			})
			continue
		}
		data[pref.ID] = payload
	}
	return data
}

func (s *Service) notify(ctx context.Context, viewer ViewerContext, reason string, widgets []WidgetPreference) {
	_ = s.opts.RefreshHook.LayoutChanged(ctx, LayoutEvent{
		UserID:  viewer.UserID,
		Reason:  reason,
		Widgets: widgets,
	})
}

func (s *Service) record(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}

// emitActivity publishes an audit event when activity hooks are configured.
// The viewer owns the layout; the actor defaults to the viewer unless the
// request context says otherwise.
func (s *Service) emitActivity(ctx context.Context, viewer ViewerContext, verb string, meta map[string]any) {
	if !s.emitter.Enabled() {
		return
	}
	actor := activityContextFrom(ctx)
	if actor.ActorID == "" {
		actor.ActorID = viewer.UserID
	}
	objectType, objectID := "layout", viewer.UserID
	if id, ok := meta["widget_id"].(string); ok && id != "" {
		objectType, objectID = "widget", id
	}
	_ = s.emitter.Emit(ctx, activity.Event{
		Verb:       verb,
		ActorID:    actor.ActorID,
		UserID:     viewer.UserID,
		TenantID:   actor.TenantID,
		ObjectType: objectType,
		ObjectID:   objectID,
		Metadata:   meta,
	})
}

type noopRefreshHook struct{}

func (noopRefreshHook) LayoutChanged(context.Context, LayoutEvent) error { return nil }
